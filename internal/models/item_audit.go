package models

import (
	"time"

	"gorm.io/datatypes"
)

// ItemAudit records who performed a mutation and with what request context.
// Payload is the authoritative copy of the metadata; the typed columns are a
// denormalized projection kept for indexed queries and backfilled from Payload.
type ItemAudit struct {
	ID          int64          `gorm:"primaryKey" json:"id"`
	ItemID      *int64         `gorm:"index" json:"item_id"`
	Action      string         `gorm:"size:32;not null" json:"action"` // e.g. "create"
	Payload     datatypes.JSON `gorm:"type:json" json:"payload"`
	UserID      *string        `gorm:"size:255;index" json:"user_id"`
	IP          *string        `gorm:"size:64;index" json:"ip"`
	Method      *string        `gorm:"size:16;index" json:"method"`
	UserAgent   *string        `gorm:"size:255" json:"user_agent"`
	RequestPath *string        `gorm:"size:255" json:"request_path"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
}

// TableName is the default; the audit service may address a different table
// via configuration.
func (ItemAudit) TableName() string {
	return "item_audit"
}
