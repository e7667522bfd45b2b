package controllers

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/paybridge/nochex/gateway"
	"github.com/paybridge/nochex/models"
)

type recordedCallbacks struct {
	records []models.CallbackRecord
}

type fakeOrderStore struct {
	order *models.Order
	notes []string
}

func (f *fakeOrderStore) GetOrderByGUID(guid string) (*models.Order, error) {
	if f.order == nil || f.order.OrderGUID != guid {
		return nil, errors.New("record not found")
	}
	return f.order, nil
}

func (f *fakeOrderStore) AddOrderNote(order *models.Order, note string) error {
	f.notes = append(f.notes, note)
	return nil
}

type fakeOrderProcessor struct {
	marked []string
}

func (f *fakeOrderProcessor) CanMarkOrderAsPaid(order *models.Order) bool {
	return order.PaymentStatus == models.PaymentStatusPending && order.Status != models.OrderStatusCancelled
}

func (f *fakeOrderProcessor) MarkOrderAsPaid(order *models.Order, transactionID string) error {
	order.PaymentStatus = models.PaymentStatusPaid
	order.AuthorizationTransactionID = transactionID
	f.marked = append(f.marked, transactionID)
	return nil
}

// apcTestHarness swaps every handler collaborator for an in-memory fake
// and restores the originals when the test finishes.
func apcTestHarness(t *testing.T, verdict string, store *fakeOrderStore, processor *fakeOrderProcessor) (*gin.Engine, *recordedCallbacks) {
	t.Helper()

	echo := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, verdict)
	}))
	t.Cleanup(echo.Close)

	origVerifier := apcVerifier
	origSettings := apcSettings
	origSettler := newAPCSettler
	origSave := saveCallbackRecord
	origEmail := sendPaymentEmail
	t.Cleanup(func() {
		apcVerifier = origVerifier
		apcSettings = origSettings
		newAPCSettler = origSettler
		saveCallbackRecord = origSave
		sendPaymentEmail = origEmail
	})

	apcVerifier = &gateway.Verifier{Client: echo.Client(), URL: echo.URL}
	apcSettings = func(storeID uint) (*models.PaymentSettings, error) {
		return &models.PaymentSettings{UseTestMode: true}, nil
	}
	newAPCSettler = func(settings *models.PaymentSettings) gateway.Settler {
		return gateway.Settler{Store: store, Processor: processor, Settings: settings}
	}
	saved := &recordedCallbacks{}
	saveCallbackRecord = func(record *models.CallbackRecord) error {
		saved.records = append(saved.records, *record)
		return nil
	}
	sendPaymentEmail = func(order *models.Order) error { return nil }

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/payment/nochex/apc", APCHandler)
	return router, saved
}

func postAPC(router *gin.Engine, payload string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payment/nochex/apc", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)
	return w
}

func pendingOrder() *models.Order {
	return &models.Order{
		ID:            42,
		OrderGUID:     "ORDER-GUID-1",
		PaymentStatus: models.PaymentStatusPending,
		Status:        models.OrderStatusPlaced,
	}
}

func TestAPCHandlerSettlesVerifiedCallback(t *testing.T) {
	store := &fakeOrderStore{order: pendingOrder()}
	processor := &fakeOrderProcessor{}
	router, saved := apcTestHarness(t, "AUTHORISED", store, processor)

	w := postAPC(router, "custom=ORDER-GUID-1&transaction_id=TX100&status=test")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Equal(t, models.PaymentStatusPaid, store.order.PaymentStatus)
	assert.Equal(t, []string{"TX100"}, processor.marked)
	if assert.Len(t, saved.records, 1) {
		assert.Equal(t, models.CallbackOutcomeSettled, saved.records[0].Outcome)
		assert.Equal(t, "TX100", saved.records[0].TransactionID)
	}
}

func TestAPCHandlerUnverifiedStillRespondsEmpty200(t *testing.T) {
	store := &fakeOrderStore{order: pendingOrder()}
	processor := &fakeOrderProcessor{}
	router, saved := apcTestHarness(t, "DECLINED", store, processor)

	w := postAPC(router, "custom=ORDER-GUID-1&transaction_id=TX100&status=test")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Equal(t, models.PaymentStatusPending, store.order.PaymentStatus)
	assert.Empty(t, processor.marked)
	if assert.Len(t, saved.records, 1) {
		assert.Equal(t, models.CallbackOutcomeRejected, saved.records[0].Outcome)
		assert.Equal(t, "unverified", saved.records[0].Reason)
	}
}

func TestAPCHandlerMissingDataRespondsEmpty200(t *testing.T) {
	store := &fakeOrderStore{order: pendingOrder()}
	processor := &fakeOrderProcessor{}
	router, saved := apcTestHarness(t, "AUTHORISED", store, processor)

	w := postAPC(router, "transaction_id=TX100&status=test")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Empty(t, processor.marked)
	if assert.Len(t, saved.records, 1) {
		assert.Equal(t, models.CallbackOutcomeRejected, saved.records[0].Outcome)
	}
}

func TestAPCHandlerSettingsFailureRespondsEmpty200(t *testing.T) {
	store := &fakeOrderStore{order: pendingOrder()}
	processor := &fakeOrderProcessor{}
	router, saved := apcTestHarness(t, "AUTHORISED", store, processor)
	apcSettings = func(storeID uint) (*models.PaymentSettings, error) {
		return nil, errors.New("settings unavailable")
	}

	w := postAPC(router, "custom=ORDER-GUID-1&transaction_id=TX100&status=test")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Empty(t, processor.marked)
	assert.Empty(t, saved.records)
}

func TestAPCHandlerResolvesStoreScopeFromQuery(t *testing.T) {
	store := &fakeOrderStore{order: pendingOrder()}
	processor := &fakeOrderProcessor{}
	router, _ := apcTestHarness(t, "AUTHORISED", store, processor)

	var resolved uint
	apcSettings = func(storeID uint) (*models.PaymentSettings, error) {
		resolved = storeID
		return &models.PaymentSettings{UseTestMode: true}, nil
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payment/nochex/apc?store_id=5", strings.NewReader("custom=ORDER-GUID-1&transaction_id=TX100&status=test"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(5), resolved)
}
