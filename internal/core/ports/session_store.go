package ports

import (
	"context"
	"time"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/domain/model/user"
)

// Session is the server-side record of a logged-in user. There is at most one
// per username; dropping it revokes every credential issued for that user.
type Session struct {
	ID        kernel.UUID
	Username  string
	Role      user.Role
	CreatedAt time.Time
	LastSeen  time.Time
}

// SessionStore keeps live sessions keyed by username.
type SessionStore interface {
	// Save creates or replaces the session of s.Username.
	Save(ctx context.Context, s Session) error

	// Get returns the session or errs.ErrObjectNotFound.
	Get(ctx context.Context, username string) (Session, error)

	// Touch moves LastSeen forward. Missing sessions yield errs.ErrObjectNotFound.
	Touch(ctx context.Context, username string, at time.Time) error

	// Delete drops the session. Deleting a missing session is not an error.
	Delete(ctx context.Context, username string) error

	// DeleteIdle drops sessions last seen before the cutoff and reports how many.
	DeleteIdle(ctx context.Context, before time.Time) (int, error)
}
