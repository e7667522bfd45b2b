package gateway

import (
	"math"
	"strconv"
	"strings"

	"github.com/paybridge/nochex/models"
)

// Store-relative paths Nochex sends the shopper (or its APC) back to.
const (
	SuccessPath  = "payment/nochex/success"
	CancelPath   = "payment/nochex/cancel"
	CallbackPath = "payment/nochex/apc"
)

// Field is a single hosted-payment-page form field. Order is preserved
// so the generated form stays stable.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// RedirectRequest describes the auto-submit form that carries the
// shopper to the hosted payment page.
type RedirectRequest struct {
	URL    string  `json:"url"`
	Method string  `json:"method"`
	Fields []Field `json:"fields"`
}

// BuildRedirect assembles the form fields for the hosted payment page.
// Billing fields are always present; delivery fields only when the
// order requires shipping.
func BuildRedirect(settings *models.PaymentSettings, order *models.Order, storeURL string) RedirectRequest {
	if storeURL != "" && !strings.HasSuffix(storeURL, "/") {
		storeURL += "/"
	}

	// The effective settings row's store scope rides along on every
	// return URL so the callback and return handlers resolve the same
	// configuration the form was built from.
	scope := ""
	if settings.StoreID != 0 {
		scope = "?store_id=" + strconv.FormatUint(uint64(settings.StoreID), 10)
	}

	fields := make([]Field, 0, 18)
	add := func(name, value string) {
		fields = append(fields, Field{Name: name, Value: value})
	}

	add("merchant_id", settings.MerchantID)

	if settings.UseTestMode {
		add("test_success_url", storeURL+SuccessPath+scope)
	} else {
		add("success_url", storeURL+SuccessPath+scope)
	}
	add("cancel_url", storeURL+CancelPath+scope)

	add("order_id", strconv.FormatUint(uint64(order.ID), 10))
	add("optional_1", order.OrderGUID)
	add("description", OrderDescription(settings.OrderDescription, order.ID))
	add("amount", FormatAmount(PayableAmount(settings, order)))

	billing := order.BillingAddress
	add("billing_fullname", billing.FullName())
	add("billing_address", billing.Lines())
	add("billing_city", billing.City)
	add("billing_postcode", billing.PostalCode)
	add("email_address", billing.Email)
	add("customer_phone_number", billing.Phone)

	if order.ShippingRequired && order.ShippingAddress != nil {
		shipping := order.ShippingAddress
		add("delivery_fullname", shipping.FullName())
		add("delivery_address", shipping.Lines())
		add("delivery_city", shipping.City)
		add("delivery_postcode", shipping.PostalCode)
	}

	if settings.UseTestMode {
		add("test_transaction", "100")
	}
	if settings.UseCallback {
		add("callback_url", storeURL+CallbackPath+scope)
	}
	if settings.HideBillingDetails {
		add("hide_billing_details", "true")
	}

	return RedirectRequest{URL: PaymentURL, Method: "POST", Fields: fields}
}

// PayableAmount applies the configured additional fee to the order total.
func PayableAmount(settings *models.PaymentSettings, order *models.Order) float64 {
	if settings.AdditionalFee == 0 {
		return order.TotalAmount
	}
	if settings.AdditionalFeePercentage {
		return order.TotalAmount * (1 + settings.AdditionalFee/100)
	}
	return order.TotalAmount + settings.AdditionalFee
}

// FormatAmount renders a monetary value with exactly two decimal digits
// and a dot separator regardless of host locale.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', 2, 64)
}

// OrderDescription substitutes %OrderNumber% in the configured template
// with the order's numeric id.
func OrderDescription(template string, orderID uint) string {
	return strings.ReplaceAll(template, "%OrderNumber%", strconv.FormatUint(uint64(orderID), 10))
}
