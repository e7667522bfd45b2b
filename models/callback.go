package models

import (
	"time"
)

// Callback outcome constants
const (
	CallbackOutcomeSettled  = "settled"
	CallbackOutcomeRejected = "rejected"
)

// CallbackRecord is one received APC callback, kept for manual
// reconciliation regardless of whether it settled an order.
type CallbackRecord struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	OrderID       *uint     `gorm:"index" json:"order_id,omitempty"`
	OrderGUID     string    `gorm:"size:36;index" json:"order_guid,omitempty"`
	TransactionID string    `json:"transaction_id,omitempty"`
	Status        string    `json:"status,omitempty"`
	RawPayload    string    `gorm:"type:text" json:"raw_payload"`
	Outcome       string    `json:"outcome"`
	Reason        string    `json:"reason,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
