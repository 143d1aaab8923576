package sessions

import "errors"

// ErrNotFound is returned by Get when no session exists for the ID.
var ErrNotFound = errors.New("session not found")

// Repo stores browser sessions keyed by session ID. Each session is owned
// exclusively by one browser; implementations only need to guard the map
// itself, not individual records.
type Repo interface {
	Get(sessionID string) (Session, error)
	Put(sessionID string, session Session) error
	Delete(sessionID string) error
}
