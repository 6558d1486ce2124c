package main

import (
	"fmt"

	"github.com/alimarchal/maharat-sub001/internal/infra"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, _ []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		if err := infra.Migrate(db); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "schema migrated")
		return nil
	},
}

var seedOpts infra.SeedOptions

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the admin role, admin user and notification catalogue",
	RunE: func(cmd *cobra.Command, _ []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		res, err := infra.Seed(cmd.Context(), db, seedOpts)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "notification types created: %d\n", res.Types)
		fmt.Fprintf(out, "notification channels created: %d\n", res.Channels)
		if res.AdminCreated {
			fmt.Fprintf(out, "admin user %s created\n", seedOpts.AdminEmail)
		} else {
			fmt.Fprintf(out, "admin user %s already present\n", seedOpts.AdminEmail)
		}
		return nil
	},
}

var hashCost int

var genhashCmd = &cobra.Command{
	Use:   "genhash <password>",
	Short: "Print a bcrypt hash for a password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := bcrypt.GenerateFromPassword([]byte(args[0]), hashCost)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(h))
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedOpts.AdminName, "admin-name", "Administrator", "Admin display name")
	seedCmd.Flags().StringVar(&seedOpts.AdminEmail, "admin-email", "admin@maharat.local", "Admin email (login)")
	seedCmd.Flags().StringVar(&seedOpts.AdminPassword, "admin-password", "", "Admin password; required when the user does not exist")
	seedCmd.Flags().StringVar(&seedOpts.AdminRole, "admin-role", "admin", "Role granted to the admin user")

	genhashCmd.Flags().IntVar(&hashCost, "cost", bcrypt.DefaultCost, "bcrypt cost")

	rootCmd.AddCommand(migrateCmd, seedCmd, genhashCmd)
}
