package services

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tasteline/restaurant-app/events"
	"github.com/tasteline/restaurant-app/models"
	"github.com/tasteline/restaurant-app/utils"
)

// upiPattern accepts <localpart>@<provider>: alphanumeric/dot/underscore/
// hyphen local part, at least three letters after the @.
var upiPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+@[A-Za-z]{3,}$`)

var (
	ErrInvalidUPIID     = errors.New("invalid UPI ID")
	ErrAlreadyConfirmed = errors.New("payment already confirmed")
)

type PaymentService struct {
	DB *gorm.DB
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{DB: db}
}

// ValidateUPIID checks the customer-entered UPI ID format. Format is all we
// can check; there is no gateway behind this flow.
func ValidateUPIID(id string) bool {
	return upiPattern.MatchString(id)
}

// Open creates a pending payment against an order. UPI payments carry the
// entered UPI ID; the scan-QR entry mode submits without one.
func (ps *PaymentService) Open(orderID uint, method, upiID string, amount float64) (*models.Payment, error) {
	var order models.Order
	if err := ps.DB.First(&order, orderID).Error; err != nil {
		return nil, fmt.Errorf("order not found")
	}
	if order.PaymentStatus == models.PaymentPaid {
		return nil, ErrAlreadyConfirmed
	}
	if method == models.MethodUPI && upiID != "" && !ValidateUPIID(upiID) {
		return nil, ErrInvalidUPIID
	}

	payment := models.Payment{
		OrderID:       orderID,
		Amount:        amount,
		Status:        models.PaymentStatusPending,
		PaymentMethod: method,
		UPIID:         upiID,
		ReferenceID:   uuid.NewString(),
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if err := ps.DB.Create(&payment).Error; err != nil {
		return nil, err
	}

	events.PaymentPending(payment)
	return &payment, nil
}

// Confirm applies the customer's self-reported "I've paid": the payment is
// marked success, the order paid, and an append-only transaction written.
// The claim is trusted as-is; nothing verifies it upstream.
func (ps *PaymentService) Confirm(paymentID uint) (*models.Payment, error) {
	var payment models.Payment
	if err := ps.DB.First(&payment, paymentID).Error; err != nil {
		return nil, fmt.Errorf("payment not found")
	}
	if payment.Status == models.PaymentStatusSuccess {
		return nil, ErrAlreadyConfirmed
	}

	var order models.Order
	if err := ps.DB.First(&order, payment.OrderID).Error; err != nil {
		return nil, fmt.Errorf("order not found")
	}

	now := time.Now()
	err := ps.DB.Transaction(func(tx *gorm.DB) error {
		payment.Status = models.PaymentStatusSuccess
		payment.PaymentTime = &now
		payment.UpdatedAt = now
		if err := tx.Save(&payment).Error; err != nil {
			return err
		}

		order.PaymentStatus = models.PaymentPaid
		order.UpdatedAt = now
		if err := tx.Save(&order).Error; err != nil {
			return err
		}

		txn := models.Transaction{
			Reference:     payment.ReferenceID,
			OrderID:       order.ID,
			Amount:        payment.Amount,
			PaymentMethod: payment.PaymentMethod,
			Status:        models.PaymentStatusSuccess,
			CreatedAt:     now,
		}
		return tx.Create(&txn).Error
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Payment %d confirmed for order %d (%s, %.2f)",
		payment.ID, order.ID, payment.PaymentMethod, payment.Amount)

	events.PaymentSucceeded(payment)
	events.OrderUpdated(order)
	return &payment, nil
}
