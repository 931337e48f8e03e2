package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talkincode/flowershop/internal/auth"
	"github.com/talkincode/flowershop/internal/domain"
	"github.com/talkincode/flowershop/internal/testutil"
)

func newService(t *testing.T) *auth.Service {
	db := testutil.OpenDB(t)
	admin := &domain.Role{Name: domain.RoleAdmin}
	manager := &domain.Role{Name: domain.RoleManager}
	testutil.Seed(t, db, admin, manager)
	testutil.Seed(t, db,
		&domain.User{Surname: "Никифорова", Name: "Весения", Patronymic: "Николаевна", Login: "admin@mail.ru", Password: "2L6KZG", RoleID: admin.ID},
		&domain.User{Surname: "Степанов", Name: "Михаил", Login: "manager@mail.ru", Password: "uzWC67", RoleID: manager.ID},
	)
	return auth.NewService(db)
}

func TestAuthenticate(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	id, err := svc.Authenticate(ctx, "  admin@mail.ru ", " 2L6KZG")
	require.NoError(t, err)
	assert.Equal(t, "Никифорова Весения Николаевна", id.FullName)
	assert.Equal(t, domain.RoleAdmin, id.Role)
	assert.False(t, id.IsGuest())
	assert.True(t, id.Can(auth.EditProduct))

	id, err = svc.Authenticate(ctx, "manager@mail.ru", "uzWC67")
	require.NoError(t, err)
	assert.Equal(t, "Степанов Михаил", id.FullName)
	assert.Equal(t, domain.RoleManager, id.Role)
}

func TestAuthenticate_Mismatch(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	for _, c := range [][2]string{
		{"admin@mail.ru", "wrong"},
		{"ADMIN@mail.ru", "2L6KZG"},
		{"admin@mail.ru", "2l6kzg"},
		{"nobody", ""},
		{"", ""},
	} {
		_, err := svc.Authenticate(ctx, c[0], c[1])
		assert.ErrorIs(t, err, auth.ErrNotFound, c[0])
	}
}

func TestListUsers(t *testing.T) {
	svc := newService(t)

	rows, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "admin@mail.ru", rows[0].Login)
	assert.Equal(t, "2L6KZG", rows[0].Password)
	assert.Equal(t, domain.RoleAdmin, rows[0].Role)
	assert.Equal(t, domain.RoleManager, rows[1].Role)
}
