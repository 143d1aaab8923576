package sessions

// Session is the explicit per-browser session context. It carries the
// pending anti-forgery state token plus the five identity record fields.
// The identity fields are populated only after a credential passes full
// verification, and deleted together on logout.
type Session struct {
	StateToken string

	AccessToken string
	SubjectID   string
	DisplayName string
	Email       string
	AvatarURL   string
}

// Authenticated reports whether the session holds a verified identity.
func (s Session) Authenticated() bool {
	return s.AccessToken != ""
}
