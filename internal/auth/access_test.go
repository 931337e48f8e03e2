package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talkincode/flowershop/internal/domain"
)

func TestPermitted(t *testing.T) {
	actions := []Action{ViewCatalog, EditProduct, ViewOrders, EditOrder, ExportCatalog, Import}
	matrix := map[string][]bool{
		domain.RoleAdmin:          {true, true, true, true, true, true},
		domain.RoleManager:        {true, false, true, false, true, false},
		domain.RoleClient:         {true, false, false, false, false, false},
		domain.RoleGuest:          {true, false, false, false, false, false},
		"Авторизированный клиент": {true, false, false, false, false, false},
		"":                        {true, false, false, false, false, false},
	}
	for role, want := range matrix {
		for i, action := range actions {
			assert.Equal(t, want[i], Permitted(role, action), "%q %s", role, action)
		}
	}
}

func TestGuestIdentity(t *testing.T) {
	assert.True(t, Guest.IsGuest())
	assert.True(t, Guest.Can(ViewCatalog))
	assert.False(t, Guest.Can(ViewOrders))
	assert.ErrorIs(t, Guest.Require(EditOrder), ErrAccessDenied)
	assert.Equal(t, "Гость", Guest.Title())

	admin := Identity{ID: 1, FullName: "Никифорова Весения", Role: "Администратор"}
	assert.NoError(t, admin.Require(EditOrder))
	assert.Equal(t, "Никифорова Весения (Администратор)", admin.Title())
}
