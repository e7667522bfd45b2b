package models

import (
	"time"
)

// Gateway mode tokens as they appear in the APC status field.
const (
	ModeTest = "test"
	ModeLive = "live"
)

// PaymentSettings holds the Nochex configuration for one store scope.
// StoreID 0 is the all-stores default; a row with a non-zero StoreID
// overrides it for that store.
type PaymentSettings struct {
	ID                       uint      `gorm:"primaryKey" json:"id"`
	StoreID                  uint      `gorm:"uniqueIndex" json:"store_id"`
	MerchantID               string    `json:"merchant_id"`
	UseTestMode              bool      `json:"use_test_mode"`
	UseCallback              bool      `json:"use_callback"`
	OrderDescription         string    `json:"order_description"`
	AdditionalFee            float64   `json:"additional_fee"`
	AdditionalFeePercentage  bool      `json:"additional_fee_percentage"`
	HideBillingDetails       bool      `json:"hide_billing_details"`
	RedirectToOrderDetails   bool      `json:"redirect_to_order_details"`
	RedirectToTopicOnSuccess bool      `json:"redirect_to_topic_on_success"`
	SuccessTopicName         string    `json:"success_topic_name"`
	CreatedAt                time.Time `json:"created_at"`
	UpdatedAt                time.Time `json:"updated_at"`
}

// ModeToken returns the status value a genuine callback must carry for
// the current mode.
func (s *PaymentSettings) ModeToken() string {
	if s.UseTestMode {
		return ModeTest
	}
	return ModeLive
}

// DefaultPaymentSettings returns the configuration seeded on first boot.
func DefaultPaymentSettings() *PaymentSettings {
	return &PaymentSettings{
		StoreID:                  0,
		MerchantID:               "MerchantId",
		UseTestMode:              true,
		UseCallback:              true,
		OrderDescription:         "Order Number %OrderNumber%",
		AdditionalFee:            0,
		AdditionalFeePercentage:  false,
		HideBillingDetails:       false,
		RedirectToOrderDetails:   true,
		RedirectToTopicOnSuccess: false,
		SuccessTopicName:         "ordersuccess",
	}
}
