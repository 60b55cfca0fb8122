package domain

import "strings"

// Role - закрытое множество ролей, кэшируемых на клиенте.
type Role string

const (
	RoleNone    Role = ""
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleUser    Role = "user"
)

// ParseRole - разбирает строку в роль; неизвестное значение -> (RoleNone, false).
func ParseRole(s string) (Role, bool) {
	switch r := Role(strings.TrimSpace(s)); r {
	case RoleAdmin, RoleManager, RoleUser:
		return r, true
	default:
		return RoleNone, false
	}
}

// Valid - роль входит в закрытое множество (RoleNone не входит).
func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

func (r Role) String() string { return string(r) }

// Session - роль и токен; задаются и очищаются только вместе.
type Session struct {
	Role  Role
	Token string
}

// LoginResult - полезная нагрузка ответа POST /auth/login.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	Role        string `json:"role"`
}

// Credentials - тело POST /auth/login.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Registration - тело POST /auth/register.
type Registration struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// User - учётная запись, как её возвращает GET /auth/users.
type User struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
