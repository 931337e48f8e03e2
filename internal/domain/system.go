package domain

import "strings"

// Role names as they appear in the user import sheet.
const (
	RoleAdmin   = "Администратор"
	RoleManager = "Менеджер"
	RoleClient  = "Клиент"
	RoleGuest   = "Гость"
)

type Role struct {
	ID   int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"not null;uniqueIndex" json:"name"`
}

// TableName Specify table name
func (Role) TableName() string {
	return "role"
}

// User an employee or client account. Passwords are kept in plain text.
type User struct {
	ID         int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Surname    string `gorm:"not null" json:"surname"`
	Name       string `gorm:"not null" json:"name"`
	Patronymic string `gorm:"not null" json:"patronymic"`
	Login      string `gorm:"not null;uniqueIndex" json:"login"`
	Password   string `gorm:"not null" json:"password"`
	RoleID     int64  `gorm:"not null" json:"role_id"`
	Role       *Role  `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}

// TableName Specify table name
func (User) TableName() string {
	return "user"
}

// FullName "surname name patronymic" with missing parts dropped
func (u User) FullName() string {
	return strings.TrimSpace(strings.Join([]string{u.Surname, u.Name, u.Patronymic}, " "))
}

// SplitFullName splits a full name into surname, name and patronymic,
// padding missing parts with empty strings. Extra words are ignored.
func SplitFullName(fio string) (surname, name, patronymic string) {
	parts := strings.Fields(fio)
	for len(parts) < 3 {
		parts = append(parts, "")
	}
	return parts[0], parts[1], parts[2]
}
