package model

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User is a back-office account. Roles decide what it may see and do.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	IsActive     bool      `gorm:"not null" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Password is a plaintext set by requests; BeforeSave hashes it.
	Password string `gorm:"-" json:"-"`

	Roles []Role `gorm:"many2many:user_roles" json:"roles,omitempty"`
}

// BeforeSave hashes a pending plaintext password.
func (u *User) BeforeSave(_ *gorm.DB) error {
	if u.Password == "" {
		return nil
	}
	hash, err := HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	u.Password = ""
	return nil
}

// HashPassword returns the bcrypt hash stored in PasswordHash.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword reports whether plain matches the stored hash.
func (u User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)) == nil
}

// RoleNames lists the names of the preloaded roles.
func (u User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}
