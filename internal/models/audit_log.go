package models

import "time"

// AuditLog records one mutation against an entity. Written asynchronously,
// best effort; never on the request path.
type AuditLog struct {
	ID         int64          `json:"id"`
	EntityType string         `json:"entityType"`
	EntityID   int64          `json:"entityId"`
	Action     string         `json:"action"`
	Details    map[string]any `json:"details,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
}
