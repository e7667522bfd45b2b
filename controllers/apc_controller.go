package controllers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/paybridge/nochex/config"
	"github.com/paybridge/nochex/gateway"
	"github.com/paybridge/nochex/models"
	"github.com/paybridge/nochex/utils"
)

// The handler's collaborators are package-level vars so tests can
// substitute fakes without a database or a live Nochex endpoint.
var (
	apcVerifier = gateway.NewVerifier()

	apcSettings = utils.GetPaymentSettings

	newAPCSettler = func(settings *models.PaymentSettings) gateway.Settler {
		return gateway.Settler{
			Store:     utils.NewOrderRepository(),
			Processor: utils.NewOrderProcessingService(),
			Settings:  settings,
		}
	}

	saveCallbackRecord = func(record *models.CallbackRecord) error {
		return config.DB.Create(record).Error
	}

	sendPaymentEmail = utils.SendPaymentReceivedEmail
)

// APCHandler receives Nochex's Automatic Payment Confirmation callback.
// The response is always an empty 200: Nochex only needs delivery
// confirmation, and a retried callback would not change the outcome of
// a permanently-invalid payload. Rejections are logged and recorded for
// manual reconciliation, never surfaced over HTTP.
func APCHandler(c *gin.Context) {
	utils.LogInfo("APCHandler called")

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.LogError("Nochex APC: failed to read callback body: %v", err)
		c.String(http.StatusOK, "")
		return
	}
	raw := string(body)

	storeID := storeScope(c)
	settings, err := apcSettings(storeID)
	if err != nil {
		utils.LogError("Nochex APC: failed to load settings for store %d: %v", storeID, err)
		c.String(http.StatusOK, "")
		return
	}

	msg, verified := apcVerifier.Verify(raw)
	if !verified {
		utils.LogError("Nochex APC: message could not be verified: %s", raw)
		recordCallback(gateway.Outcome{Reason: "unverified"}, raw)
		c.String(http.StatusOK, "")
		return
	}

	settler := newAPCSettler(settings)
	outcome := settler.Apply(msg, raw)
	recordCallback(outcome, raw)

	if outcome.Err != nil {
		utils.LogError("Nochex APC: unexpected error settling order %s: %v", outcome.OrderGUID, outcome.Err)
	}
	if outcome.Settled {
		if err := sendPaymentEmail(outcome.Order); err != nil {
			utils.LogError("Failed to send payment received email for order %d: %v", outcome.Order.ID, err)
		}
	}

	c.String(http.StatusOK, "")
}

// recordCallback persists the callback for reconciliation. A failure
// here must not affect the APC response.
func recordCallback(outcome gateway.Outcome, raw string) {
	record := models.CallbackRecord{
		OrderGUID:     outcome.OrderGUID,
		TransactionID: outcome.TransactionID,
		Status:        outcome.Status,
		RawPayload:    raw,
		Outcome:       models.CallbackOutcomeRejected,
		Reason:        outcome.Reason,
	}
	if outcome.Order != nil {
		record.OrderID = &outcome.Order.ID
	}
	if outcome.Settled {
		record.Outcome = models.CallbackOutcomeSettled
		record.Reason = ""
	}
	if outcome.Err != nil {
		record.Reason = outcome.Err.Error()
	}
	if err := saveCallbackRecord(&record); err != nil {
		utils.LogError("Failed to record APC callback: %v", err)
	}
}

// storeScope resolves the store a request applies to. Store 0 is the
// all-stores default.
func storeScope(c *gin.Context) uint {
	id, err := strconv.ParseUint(c.DefaultQuery("store_id", "0"), 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}
