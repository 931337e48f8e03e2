// Package auth looks up users by plain-text credentials.
package auth

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/talkincode/flowershop/internal/domain"
)

var (
	ErrNotFound     = errors.New("invalid login or password")
	ErrAccessDenied = errors.New("access denied")
)

// Identity the signed-in user
type Identity struct {
	ID       int64
	FullName string
	Role     string
}

// Guest is used when nobody signed in.
var Guest = Identity{FullName: domain.RoleGuest, Role: domain.RoleGuest}

func (i Identity) IsGuest() bool {
	return i.ID == 0
}

func (i Identity) Can(action Action) bool {
	return Permitted(i.Role, action)
}

// Require returns ErrAccessDenied unless the identity may perform action
func (i Identity) Require(action Action) error {
	if i.Can(action) {
		return nil
	}
	zap.L().Info("access denied", zap.String("role", i.Role), zap.Stringer("action", action))
	return ErrAccessDenied
}

// Title "full name (role)", or just the role for guests
func (i Identity) Title() string {
	if i.IsGuest() {
		return i.Role
	}
	return i.FullName + " (" + i.Role + ")"
}

// UserRow one line of the users listing
type UserRow struct {
	ID       int64
	Login    string
	Password string
	Role     string
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Authenticate matches the trimmed login and password exactly.
func (s *Service) Authenticate(ctx context.Context, login, password string) (*Identity, error) {
	login, password = strings.TrimSpace(login), strings.TrimSpace(password)
	var u domain.User
	err := s.db.WithContext(ctx).
		Preload("Role").
		Where("login = ? AND password = ?", login, password).
		First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		zap.L().Info("login failed", zap.String("login", login))
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "query user")
	}

	id := &Identity{ID: u.ID, FullName: u.FullName()}
	if u.Role != nil {
		id.Role = u.Role.Name
	}
	zap.L().Info("login", zap.String("login", login), zap.String("role", id.Role))
	return id, nil
}

// ListUsers every account with its role, by id
func (s *Service) ListUsers(ctx context.Context) ([]UserRow, error) {
	var rows []UserRow
	err := s.db.WithContext(ctx).
		Table("user AS u").
		Select("u.id, u.login, u.password, r.name AS role").
		Joins("JOIN role r ON r.id = u.role_id").
		Order("u.id").
		Scan(&rows).Error
	return rows, errors.Wrap(err, "list users")
}
