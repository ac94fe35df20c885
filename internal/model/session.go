package model

// Session : токен и пользователь, которому он принадлежит.
// Наличие токена не означает, что он действителен, это решает API
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.User != nil && s.User.Role == RoleAdmin
}

func (s *Session) UserID() string {
	if s == nil || s.User == nil {
		return ""
	}
	return s.User.ID
}
