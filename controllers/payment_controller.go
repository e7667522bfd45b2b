package controllers

import (
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/paybridge/nochex/config"
	"github.com/paybridge/nochex/gateway"
	"github.com/paybridge/nochex/models"
	"github.com/paybridge/nochex/utils"
)

// lastOrderKey tracks the shopper's current order in the session so
// the success/cancel return pages can find it.
const lastOrderKey = "nochex_last_order_id"

// minRepostAge is how old an order must be before the redirect form may
// be re-submitted for it.
const minRepostAge = time.Minute

// POST /payment/nochex/initiate
func InitiateNochexPayment(c *gin.Context) {
	utils.LogInfo("InitiateNochexPayment called")

	var req struct {
		OrderID uint `json:"order_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid initiate request: %v", err)
		utils.BadRequest(c, "Invalid request. order_id is required", err.Error())
		return
	}

	settings, err := utils.GetPaymentSettings(storeScope(c))
	if err != nil {
		utils.LogError("Failed to load payment settings: %v", err)
		utils.InternalServerError(c, "Payment method is not configured", nil)
		return
	}

	var order models.Order
	if err := config.DB.Preload("BillingAddress").Preload("ShippingAddress").
		First(&order, req.OrderID).Error; err != nil {
		utils.LogError("Order not found for ID: %d", req.OrderID)
		utils.NotFound(c, "Order not found")
		return
	}
	utils.LogInfo("Found order ID: %d", order.ID)

	if order.PaymentStatus != models.PaymentStatusPending {
		utils.LogError("Payment already completed for order ID: %d, status: %s", order.ID, order.PaymentStatus)
		utils.BadRequest(c, "Payment for this order has already been completed", nil)
		return
	}

	// Repeat initiations are held off until the order is a minute old,
	// in case the first redirect is still in flight.
	if order.PaymentInitiatedAt != nil && time.Since(order.CreatedAt) < minRepostAge {
		utils.LogError("Payment re-initiated too soon for order ID: %d", order.ID)
		utils.BadRequest(c, "A payment is already in progress for this order", nil)
		return
	}

	now := time.Now().UTC()
	if err := config.DB.Model(&order).Update("payment_initiated_at", now).Error; err != nil {
		utils.LogError("Failed to mark payment initiated for order ID: %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to update order details", err.Error())
		return
	}

	session := sessions.Default(c)
	session.Set(lastOrderKey, order.ID)
	if err := session.Save(); err != nil {
		utils.LogError("Failed to save session for order ID: %d: %v", order.ID, err)
	}

	redirect := gateway.BuildRedirect(settings, &order, config.StoreLocation())
	utils.LogInfo("Built Nochex redirect for order ID: %d, amount: %s", order.ID,
		gateway.FormatAmount(gateway.PayableAmount(settings, &order)))

	utils.Success(c, "Redirect to Nochex to complete the payment", gin.H{
		"redirect": redirect,
		"order": gin.H{
			"id":         order.ID,
			"order_guid": order.OrderGUID,
			"amount":     gateway.FormatAmount(gateway.PayableAmount(settings, &order)),
		},
	})
}
