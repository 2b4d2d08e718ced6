// internal/app/features/auditlog/types.go
package auditlog

import (
	"time"

	"github.com/dalemusser/rolehub/internal/app/store/audit"
)

// listItem is one audit event in the JSON listing.
type listItem struct {
	ID            string            `json:"id"`
	Timestamp     time.Time         `json:"timestamp"`
	Category      string            `json:"category"`
	EventType     string            `json:"event_type"`
	ActorID       string            `json:"actor_id,omitempty"`
	TargetID      string            `json:"target_id,omitempty"`
	IP            string            `json:"ip"`
	Success       bool              `json:"success"`
	FailureReason string            `json:"failure_reason,omitempty"`
	Details       map[string]string `json:"details,omitempty"`
}

type listResponse struct {
	Items      []listItem `json:"items"`
	Page       int        `json:"page"`
	TotalPages int        `json:"total_pages"`
	Total      int64      `json:"total"`
	HasNext    bool       `json:"has_next"`
}

// knownEventTypes lists the event types accepted by the event_type filter.
// An empty category returns every type.
func knownEventTypes(category string) []string {
	switch category {
	case "", audit.CategoryAdmin:
		return []string{
			audit.EventRoleTypeAddedToList,
			audit.EventRoleTypeRemovedFromList,
			audit.EventRoleTypeCreated,
			audit.EventRoleTypeListCreated,
			audit.EventGroupCategoryCreated,
			audit.EventGroupCategoryUpdated,
			audit.EventGroupCategoryDeleted,
		}
	default:
		return nil
	}
}
