package auth

import (
	"context"
	"errors"
)

// ErrNoSession is returned when an operation requires an authenticated
// session and none is present.
var ErrNoSession = errors.New("no authenticated session")

// Session is the authenticated identity attached to a request. Operations
// that need identity take a *Session explicitly; a nil session always means
// "not authenticated", never an error.
type Session struct {
	UserID   string
	Username string
}

type sessionKey struct{}

// WithSession attaches a session to a context.
func WithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, sess)
}

// SessionFromContext extracts the session from a context, or nil when the
// request is unauthenticated.
func SessionFromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(sessionKey{}).(*Session)
	return sess
}
