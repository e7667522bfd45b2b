package gateway

import (
	"errors"
	"strings"

	"github.com/paybridge/nochex/models"
	"github.com/paybridge/nochex/utils"
)

// Rejection reasons recorded against a callback.
const (
	ReasonMissingData   = "missing required data"
	ReasonOrderNotFound = "order not found"
	ReasonWrongStatus   = "wrong status"
	ReasonNotEligible   = "order cannot be marked as paid"
)

// OrderStore loads orders and appends audit notes for settlement.
type OrderStore interface {
	GetOrderByGUID(guid string) (*models.Order, error)
	AddOrderNote(order *models.Order, note string) error
}

// OrderProcessor owns the payment state transition. Implementations
// must make the eligibility check and the transition effectively atomic
// per order, since duplicate callbacks can arrive concurrently.
type OrderProcessor interface {
	CanMarkOrderAsPaid(order *models.Order) bool
	MarkOrderAsPaid(order *models.Order, transactionID string) error
}

// Outcome reports what a callback did. Exactly one of Settled, Reason
// or Err is meaningful; Order is set once the callback resolved to one.
type Outcome struct {
	Settled       bool
	Reason        string
	Err           error
	Order         *models.Order
	OrderGUID     string
	TransactionID string
	Status        string
}

// Settler applies verified APC payloads to orders.
type Settler struct {
	Store     OrderStore
	Processor OrderProcessor
	Settings  *models.PaymentSettings
}

// Apply runs the settlement sequence for one verified payload. Checks
// short-circuit on first failure; every rejection is logged with the
// full payload and leaves the order unchanged, apart from the audit
// note recorded as soon as the order is found.
func (s *Settler) Apply(msg Message, raw string) Outcome {
	outcome := Outcome{
		OrderGUID:     msg.Get("custom"),
		TransactionID: msg.Get("transaction_id"),
		Status:        msg.Get("status"),
	}

	if outcome.OrderGUID == "" || outcome.TransactionID == "" || outcome.Status == "" {
		utils.LogError("Nochex APC: missing required data: %s", raw)
		outcome.Reason = ReasonMissingData
		return outcome
	}

	order, err := s.Store.GetOrderByGUID(outcome.OrderGUID)
	if err != nil {
		utils.LogError("Nochex APC: order not found: %s: %s", outcome.OrderGUID, raw)
		outcome.Reason = ReasonOrderNotFound
		return outcome
	}
	outcome.Order = order

	// The callback is recorded on the order before any accept/reject
	// decision so rejected callbacks still leave a trail.
	note := "Nochex APC message received:\n\n" + msg.Friendly()
	if err := s.Store.AddOrderNote(order, note); err != nil {
		outcome.Err = err
		return outcome
	}

	expected := s.Settings.ModeToken()
	if !strings.EqualFold(outcome.Status, expected) {
		utils.LogError("Nochex APC: received wrong status %s for order %s: %s", outcome.Status, outcome.OrderGUID, raw)
		outcome.Reason = ReasonWrongStatus
		return outcome
	}

	if !s.Processor.CanMarkOrderAsPaid(order) {
		utils.LogError("Nochex APC: cannot mark order as paid: %s: %s", outcome.OrderGUID, raw)
		outcome.Reason = ReasonNotEligible
		return outcome
	}

	if err := s.Processor.MarkOrderAsPaid(order, outcome.TransactionID); err != nil {
		if errors.Is(err, models.ErrNotEligibleForPayment) {
			// A concurrent callback won the race inside the store's
			// critical section.
			utils.LogError("Nochex APC: cannot mark order as paid: %s: %s", outcome.OrderGUID, raw)
			outcome.Reason = ReasonNotEligible
			return outcome
		}
		outcome.Err = err
		return outcome
	}

	utils.LogInfo("Nochex APC: order %s marked as paid, transaction %s", outcome.OrderGUID, outcome.TransactionID)
	outcome.Settled = true
	return outcome
}
