package models

// Session is the currently authenticated user and its bearer credential.
// A session may exist without a token when the backend does not issue one.
type Session struct {
	User  User   `json:"user"`
	Token string `json:"token,omitempty"`
}

// HasToken reports whether the session carries a bearer token.
func (s *Session) HasToken() bool {
	return s != nil && s.Token != ""
}

// Valid reports whether the session identifies a user with a known role.
func (s *Session) Valid() bool {
	return s != nil && s.User.ID != 0 && s.User.Role.Valid()
}
