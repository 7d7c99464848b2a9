package domain

import "time"

// Audit actions recorded by the auth layer.
const (
	AuditRegister       = "register"
	AuditLogin          = "login"
	AuditLoginFailed    = "login_failed"
	AuditPasswordChange = "password_change"
)

// AuditEvent records a security-relevant action performed by (or against) an
// account. Events are written asynchronously to an append-only trail.
type AuditEvent struct {
	Actor     string
	Action    string
	Detail    string // optional
	Timestamp time.Time
}
