package db

import (
	"context"
	"errors"
	"time"

	"whispr/feedback-api/internal/model"
)

// ErrNotFound is returned by store lookups when no document matches.
var ErrNotFound = errors.New("not found")

// Store is the persistence surface the handlers work against. The Mongo
// implementation is the real one, tests swap in an in-memory fake.
type Store interface {
	// FindVerifiedByUsername returns a verified user holding the exact
	// username. Unverified sign-ups don't count.
	FindVerifiedByUsername(ctx context.Context, username string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)

	CreateUser(ctx context.Context, u *model.User) error

	// ReissueVerification restarts verification for an unverified account:
	// new password hash, new code, new expiry.
	ReissueVerification(ctx context.Context, id string, passwordHash, code string, expiry time.Time) error
	MarkVerified(ctx context.Context, id string) error

	// SetAcceptingMessages flips the intake gate and returns the updated user.
	SetAcceptingMessages(ctx context.Context, id string, accepting bool) (*model.User, error)

	AppendMessage(ctx context.Context, id string, msg model.Message) error
	// MessagesSortedDesc returns the user's messages newest first. A user
	// without messages yields an empty slice, not an error.
	MessagesSortedDesc(ctx context.Context, id string) ([]model.Message, error)
	// RemoveMessage pulls one message owned by the user. Reports whether
	// anything was actually removed.
	RemoveMessage(ctx context.Context, userID, messageID string) (bool, error)

	// DeleteStaleUnverified removes unverified accounts whose code expired
	// before the cutoff. Returns the number of deleted accounts.
	DeleteStaleUnverified(ctx context.Context, cutoff time.Time) (int64, error)
}
