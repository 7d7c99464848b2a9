package ports

import (
	"context"
	"time"

	"github.com/taskdesk/todo-system/internal/core/domain"
)

// PasswordHasher is a one-way salted credential transform. Hashing the same
// plaintext twice yields different opaque strings, both of which verify.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// TokenCodec encodes and decodes signed, time-bounded identity assertions.
// Decode returns domain.ErrInvalidToken for malformed, forged, expired, or
// claim-incomplete tokens.
type TokenCodec interface {
	Encode(username, userID string, ttl time.Duration) (string, error)
	Decode(token string) (domain.Identity, error)
}

// LoginLimiter throttles repeated failed logins per username.
type LoginLimiter interface {
	// TooMany reports whether the username has exceeded the failure budget.
	TooMany(ctx context.Context, username string) (bool, error)
	// RecordFailure counts one failed attempt inside the rolling window.
	RecordFailure(ctx context.Context, username string) error
	// Reset clears the failure counter after a successful login.
	Reset(ctx context.Context, username string) error
}

// AuditRecorder accepts audit events for asynchronous persistence.
type AuditRecorder interface {
	Record(event domain.AuditEvent)
}
