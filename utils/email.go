package utils

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"

	"github.com/paybridge/nochex/models"
)

// SendPaymentReceivedEmail notifies the billing contact that the
// payment for their order was confirmed.
func SendPaymentReceivedEmail(order *models.Order) error {
	host := os.Getenv("SMTP_HOST")
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}
	username := os.Getenv("SMTP_USERNAME")
	password := os.Getenv("SMTP_PASSWORD")
	from := os.Getenv("SMTP_FROM")

	to := order.BillingAddress.Email
	if to == "" {
		return fmt.Errorf("order %d has no billing email", order.ID)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Payment received for order #%d", order.ID))

	body := fmt.Sprintf(`
		<h2>Thank you for your payment!</h2>
		<p>We have received your payment of %.2f for order #%d.</p>
		<p>Transaction reference: %s</p>
		<p>Your order is now being processed.</p>
	`, order.TotalAmount, order.ID, order.AuthorizationTransactionID)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(host, port, username, password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}

	return nil
}
