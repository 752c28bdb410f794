// internal/session/session.go
package session

// Session identifies the user a state container belongs to. It is built
// once (by the provider on sign-in, or by the HTTP layer from validated
// token claims) and passed by reference to the services that need it;
// there is no ambient global auth state.
type Session struct {
	userID  uint
	email   string
	isAdmin bool
	authed  bool
}

// Anonymous returns a session with no authenticated user
func Anonymous() *Session {
	return &Session{}
}

// ForUser returns an authenticated session
func ForUser(userID uint, email string, isAdmin bool) *Session {
	return &Session{
		userID:  userID,
		email:   email,
		isAdmin: isAdmin,
		authed:  true,
	}
}

// UserID returns the authenticated user's ID, or false when anonymous
func (s *Session) UserID() (uint, bool) {
	if s == nil || !s.authed {
		return 0, false
	}
	return s.userID, true
}

// Email returns the authenticated user's email (empty when anonymous)
func (s *Session) Email() string {
	if s == nil {
		return ""
	}
	return s.email
}

// IsAdmin reports whether the session user is an admin
func (s *Session) IsAdmin() bool {
	return s != nil && s.authed && s.isAdmin
}
