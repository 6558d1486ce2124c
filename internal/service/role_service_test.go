package service

import (
	"context"
	"testing"

	"github.com/alimarchal/maharat-sub001/internal/apierror"
	"github.com/alimarchal/maharat-sub001/internal/model"
	"github.com/alimarchal/maharat-sub001/internal/rbac"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(users []model.User) []string {
	out := make([]string, 0, len(users))
	for _, u := range users {
		out = append(out, u.Name)
	}
	return out
}

func TestSubordinateUsers_UnionWithoutDuplicates(t *testing.T) {
	users := newStubUserRepo()
	roles := newStubRoleRepo(users)
	manager, lead, clerk, auditor := roles.role(), roles.role(), roles.role(), roles.role()
	roles.link(manager, clerk)
	roles.link(lead, clerk)
	roles.link(lead, auditor)

	boss := users.add("boss", manager, lead)
	users.add("carol", clerk)
	users.add("dave", clerk, auditor)
	users.add("erin", auditor)
	users.add("frank")

	svc := NewRoleService(roles, users, rbac.SingleLevel)
	got, err := svc.SubordinateUsers(context.Background(), boss.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"carol", "dave", "erin"}, names(got))
}

func TestSubordinateUsers_NoRoles(t *testing.T) {
	users := newStubUserRepo()
	roles := newStubRoleRepo(users)
	loner := users.add("loner")

	svc := NewRoleService(roles, users, rbac.SingleLevel)
	got, err := svc.SubordinateUsers(context.Background(), loner.ID)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Zero(t, users.listCalls)
}

func TestSubordinateUsers_RoleWithoutSubordinates(t *testing.T) {
	users := newStubUserRepo()
	roles := newStubRoleRepo(users)
	clerk := roles.role()
	u := users.add("carol", clerk)

	svc := NewRoleService(roles, users, rbac.SingleLevel)
	got, err := svc.SubordinateUsers(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Zero(t, users.listCalls)
}

func TestSubordinateUsers_SingleLevelVersusTransitive(t *testing.T) {
	users := newStubUserRepo()
	roles := newStubRoleRepo(users)
	director, manager, clerk := roles.role(), roles.role(), roles.role()
	roles.link(director, manager)
	roles.link(manager, clerk)

	d := users.add("diana", director)
	users.add("mike", manager)
	users.add("carol", clerk)

	single := NewRoleService(roles, users, rbac.SingleLevel)
	got, err := single.SubordinateUsers(context.Background(), d.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"mike"}, names(got))
	assert.Equal(t, []uuid.UUID{director}, roles.edgeCalls[len(roles.edgeCalls)-1])

	transitive := NewRoleService(roles, users, rbac.Transitive)
	got, err = transitive.SubordinateUsers(context.Background(), d.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"carol", "mike"}, names(got))
	assert.Empty(t, roles.edgeCalls[len(roles.edgeCalls)-1])
}

func TestSubordinateUsers_CycleTerminates(t *testing.T) {
	users := newStubUserRepo()
	roles := newStubRoleRepo(users)
	a, b := roles.role(), roles.role()
	roles.link(a, b)
	roles.link(b, a)

	ua := users.add("anna", a)
	users.add("bob", b)

	svc := NewRoleService(roles, users, rbac.Transitive)
	got, err := svc.SubordinateUsers(context.Background(), ua.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"anna", "bob"}, names(got))
}

func TestSubordinateUsers_UnknownUser(t *testing.T) {
	users := newStubUserRepo()
	svc := NewRoleService(newStubRoleRepo(users), users, rbac.SingleLevel)
	_, err := svc.SubordinateUsers(context.Background(), uuid.New())
	requireKind(t, err, apierror.KindNotFound, "User not found")
}

func TestSyncSubordinates(t *testing.T) {
	users := newStubUserRepo()
	roles := newStubRoleRepo(users)
	svc := NewRoleService(roles, users, rbac.SingleLevel)
	ctx := context.Background()
	a, b, c := roles.role(), roles.role(), roles.role()

	require.NoError(t, svc.SyncSubordinates(ctx, a, []uuid.UUID{b, c}))
	require.NoError(t, svc.SyncSubordinates(ctx, a, []uuid.UUID{c}))
	assert.Equal(t, []rbac.Edge{{RoleID: a, SubordinateID: c}}, roles.edges)

	err := svc.SyncSubordinates(ctx, uuid.New(), []uuid.UUID{b})
	requireKind(t, err, apierror.KindNotFound, "Role not found")

	err = svc.SyncSubordinates(ctx, a, []uuid.UUID{b, uuid.New()})
	requireKind(t, err, apierror.KindNotFound, "Role not found")
	assert.Len(t, roles.edges, 1)
}

func TestSyncPermissions_UnknownPermission(t *testing.T) {
	users := newStubUserRepo()
	roles := newStubRoleRepo(users)
	svc := NewRoleService(roles, users, rbac.SingleLevel)
	perm := uuid.New()
	roles.permissions.Add(perm)
	role := roles.role()

	assert.NoError(t, svc.SyncPermissions(context.Background(), role, []uuid.UUID{perm, perm}))
	err := svc.SyncPermissions(context.Background(), role, []uuid.UUID{uuid.New()})
	requireKind(t, err, apierror.KindNotFound, "Permission not found")
}

func TestSyncUserRoles(t *testing.T) {
	users := newStubUserRepo()
	roles := newStubRoleRepo(users)
	svc := NewRoleService(roles, users, rbac.SingleLevel)
	role := roles.role()
	u := users.add("carol")

	require.NoError(t, svc.SyncUserRoles(context.Background(), u.ID, []uuid.UUID{role}))
	assert.Equal(t, []uuid.UUID{role}, users.roles[u.ID])

	err := svc.SyncUserRoles(context.Background(), uuid.New(), []uuid.UUID{role})
	requireKind(t, err, apierror.KindNotFound, "User not found")
}
