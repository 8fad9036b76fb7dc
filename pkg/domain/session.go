package domain

// Session is the state handed out by a successful login.
type Session struct {
	ID       string `json:"id"`
	PersonID string `json:"person_id"`
}

// Valid reports whether both halves of the session are set.
func (s Session) Valid() bool {
	return s.ID != "" && s.PersonID != ""
}
