package utils

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/paybridge/nochex/config"
	"github.com/paybridge/nochex/models"
)

// OrderRepository loads and annotates orders.
type OrderRepository struct {
	DB *gorm.DB
}

// NewOrderRepository returns a repository over the shared connection.
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{DB: config.DB}
}

// GetOrderByGUID resolves an order by its external reference.
func (r *OrderRepository) GetOrderByGUID(guid string) (*models.Order, error) {
	var order models.Order
	if err := r.DB.Preload("BillingAddress").Preload("ShippingAddress").
		Where("order_guid = ?", guid).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// AddOrderNote appends an audit note to the order.
func (r *OrderRepository) AddOrderNote(order *models.Order, note string) error {
	n := models.OrderNote{
		OrderID:           order.ID,
		Note:              note,
		DisplayToCustomer: false,
	}
	if err := r.DB.Create(&n).Error; err != nil {
		return WrapError(err, "failed to add order note")
	}
	order.Notes = append(order.Notes, n)
	return nil
}

// OrderProcessingService owns payment state transitions.
type OrderProcessingService struct {
	DB *gorm.DB
}

// NewOrderProcessingService returns a processing service over the
// shared connection.
func NewOrderProcessingService() *OrderProcessingService {
	return &OrderProcessingService{DB: config.DB}
}

// CanMarkOrderAsPaid reports whether the order still qualifies for the
// Paid transition.
func (s *OrderProcessingService) CanMarkOrderAsPaid(order *models.Order) bool {
	return order.PaymentStatus == models.PaymentStatusPending &&
		order.Status != models.OrderStatusCancelled
}

// MarkOrderAsPaid records the transaction reference and transitions the
// order to Paid. Eligibility is re-checked under a row lock inside the
// transaction so two concurrent callbacks for the same order cannot
// both settle it.
func (s *OrderProcessingService) MarkOrderAsPaid(order *models.Order, transactionID string) error {
	now := time.Now().UTC()

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var locked models.Order
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&locked, order.ID).Error; err != nil {
			return err
		}

		if !s.CanMarkOrderAsPaid(&locked) {
			return models.ErrNotEligibleForPayment
		}

		if err := tx.Model(&locked).Updates(map[string]interface{}{
			"authorization_transaction_id": transactionID,
			"payment_status":               models.PaymentStatusPaid,
			"paid_at":                      now,
		}).Error; err != nil {
			return err
		}

		note := models.OrderNote{
			OrderID: locked.ID,
			Note:    "Order has been marked as paid",
		}
		return tx.Create(&note).Error
	})
	if err != nil {
		return err
	}

	order.AuthorizationTransactionID = transactionID
	order.PaymentStatus = models.PaymentStatusPaid
	order.PaidAt = &now
	return nil
}
