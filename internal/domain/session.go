package domain

// Session is the identity resolved for the browser making a request.
// IsNew is set when the identity was issued during this request.
type Session struct {
	ID    string
	IsNew bool
}

const SessionContextKey = "session_id"
