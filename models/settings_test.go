package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentSettingsModeToken(t *testing.T) {
	assert.Equal(t, "test", (&PaymentSettings{UseTestMode: true}).ModeToken())
	assert.Equal(t, "live", (&PaymentSettings{}).ModeToken())
}

func TestDefaultPaymentSettings(t *testing.T) {
	s := DefaultPaymentSettings()
	assert.Equal(t, uint(0), s.StoreID)
	assert.True(t, s.UseTestMode)
	assert.True(t, s.UseCallback)
	assert.Equal(t, "Order Number %OrderNumber%", s.OrderDescription)
	assert.True(t, s.RedirectToOrderDetails)
	assert.Equal(t, "ordersuccess", s.SuccessTopicName)
}
