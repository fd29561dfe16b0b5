package identity

import "github.com/shopfront/backend/internal/domain/shared"

const AggregateTypeAdmin = "Admin"

// Event types
const (
	EventTypeAdminCreated = "admin.created"
)

// AdminCreatedEvent is published when a new admin account is created
type AdminCreatedEvent struct {
	shared.BaseDomainEvent
	Username string `json:"username"`
}

// NewAdminCreatedEvent creates a new admin created event
func NewAdminCreatedEvent(a *Admin) *AdminCreatedEvent {
	return &AdminCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAdminCreated, AggregateTypeAdmin, a.ID),
		Username:        a.Username,
	}
}
