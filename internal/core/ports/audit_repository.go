package ports

import (
	"context"

	"github.com/taskdesk/todo-system/internal/core/domain"
)

// AuditRepository persists audit events to the append-only trail.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
}
