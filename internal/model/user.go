package model

// Role : уровень доступа пользователя
type Role string

const (
	RoleGuest     Role = "guest"
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// Roles : все допустимые роли в порядке возрастания прав
var Roles = []Role{RoleGuest, RoleUser, RoleModerator, RoleAdmin}

func (r Role) Valid() bool {
	for _, role := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

// ParseRole : возвращает роль и признак того, что она допустима
func ParseRole(s string) (Role, bool) {
	role := Role(s)
	return role, role.Valid()
}

type User struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       Role   `json:"rol"`
	IsVerified bool   `json:"isVerified"`
	Company    string `json:"company,omitempty"`
}

// DisplayName : имя для приветствия, email если имя не указано
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}
