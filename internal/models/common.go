package models

import "time"

// AuditFields holds standard audit columns shared by database models.
type AuditFields struct {
	CreatedAt     time.Time
	LastUpdatedAt time.Time
}
