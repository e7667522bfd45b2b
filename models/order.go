package models

import (
	"errors"
	"time"
)

// ErrNotEligibleForPayment is returned when an order no longer
// qualifies for the Paid transition at commit time.
var ErrNotEligibleForPayment = errors.New("order is not eligible to be marked as paid")

// Payment status constants
const (
	PaymentStatusPending  = "Pending"
	PaymentStatusPaid     = "Paid"
	PaymentStatusRefunded = "Refunded"
	PaymentStatusVoided   = "Voided"
)

// Order status constants
const (
	OrderStatusPlaced     = "Placed"
	OrderStatusProcessing = "Processing"
	OrderStatusComplete   = "Complete"
	OrderStatusCancelled  = "Cancelled"
)

type Order struct {
	ID                         uint        `gorm:"primaryKey" json:"id"`
	OrderGUID                  string      `gorm:"size:36;uniqueIndex" json:"order_guid"`
	TotalAmount                float64     `json:"total_amount"`
	PaymentStatus              string      `json:"payment_status"`
	Status                     string      `json:"status"`
	AuthorizationTransactionID string      `json:"authorization_transaction_id,omitempty"`
	PaymentInitiatedAt         *time.Time  `json:"payment_initiated_at,omitempty"`
	PaidAt                     *time.Time  `json:"paid_at,omitempty"`
	ShippingRequired           bool        `json:"shipping_required"`
	BillingAddressID           uint        `json:"billing_address_id"`
	BillingAddress             Address     `json:"billing_address" gorm:"foreignKey:BillingAddressID"`
	ShippingAddressID          *uint       `json:"shipping_address_id,omitempty"`
	ShippingAddress            *Address    `json:"shipping_address,omitempty" gorm:"foreignKey:ShippingAddressID"`
	CreatedAt                  time.Time   `json:"created_at"`
	UpdatedAt                  time.Time   `json:"updated_at"`
	Notes                      []OrderNote `json:"notes" gorm:"foreignKey:OrderID"`
}

// OrderNote is an append-only audit entry attached to an order.
type OrderNote struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	OrderID           uint      `gorm:"index" json:"order_id"`
	Note              string    `gorm:"type:text" json:"note"`
	DisplayToCustomer bool      `json:"display_to_customer"`
	CreatedAt         time.Time `json:"created_at"`
}
