package services

import (
	"errors"
	"strings"

	"github.com/restohub/restopos/models"
	"github.com/shopspring/decimal"
)

var (
	ErrNegativePrice        = errors.New("price must be >= 0")
	ErrInvalidQuantity      = errors.New("quantity must be >= 1")
	ErrInvalidPercent       = errors.New("percent must be between 0 and 100")
	ErrNegativeCharge       = errors.New("delivery charge must be >= 0")
	ErrCustomerNameRequired = errors.New("customer_name is required for Credit orders")
	ErrInvalidPaymentStatus = errors.New("invalid payment_status")
)

var hundred = decimal.NewFromInt(100)

// ComputeItemsTotal sums price*quantity over the line items.
func ComputeItemsTotal(items []models.OrderItem) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, it := range items {
		if it.Price.IsNegative() {
			return decimal.Zero, ErrNegativePrice
		}
		if it.Quantity < 1 {
			return decimal.Zero, ErrInvalidQuantity
		}
		total = total.Add(it.Subtotal())
	}
	return total, nil
}

type PricingResult struct {
	DiscountAmount decimal.Decimal
	VatAmount      decimal.Decimal
	FinalAmount    decimal.Decimal
}

// ApplyDiscountAndVat computes the money breakdown for an order.
// VAT applies to the discounted base; the delivery charge is added
// after VAT and is never taxed.
func ApplyDiscountAndVat(itemsTotal, discountPercent, vatPercent, deliveryCharge decimal.Decimal) (PricingResult, error) {
	if !percentValid(discountPercent) || !percentValid(vatPercent) {
		return PricingResult{}, ErrInvalidPercent
	}
	if deliveryCharge.IsNegative() {
		return PricingResult{}, ErrNegativeCharge
	}

	discount := itemsTotal.Mul(discountPercent).Div(hundred)
	discounted := itemsTotal.Sub(discount)
	vat := discounted.Mul(vatPercent).Div(hundred)
	final := discounted.Add(vat).Add(deliveryCharge)

	return PricingResult{
		DiscountAmount: discount,
		VatAmount:      vat,
		FinalAmount:    final,
	}, nil
}

// ApplyPayment splits the final amount into paid and due. Credit keeps
// the full amount due and requires a customer name to collect from.
func ApplyPayment(finalAmount decimal.Decimal, paymentStatus, customerName string) (paid, due decimal.Decimal, err error) {
	switch paymentStatus {
	case models.PaymentPaid:
		return finalAmount, decimal.Zero, nil
	case models.PaymentDue:
		return decimal.Zero, finalAmount, nil
	case models.PaymentCredit:
		if strings.TrimSpace(customerName) == "" {
			return decimal.Zero, decimal.Zero, ErrCustomerNameRequired
		}
		return decimal.Zero, finalAmount, nil
	default:
		return decimal.Zero, decimal.Zero, ErrInvalidPaymentStatus
	}
}

// SettleDue recomputes the paid/due split at checkout time. A forced
// checkout collects everything outstanding.
func SettleDue(finalAmount, alreadyPaid decimal.Decimal, force bool) (paid, due decimal.Decimal) {
	if force || alreadyPaid.GreaterThanOrEqual(finalAmount) {
		return finalAmount, decimal.Zero
	}
	return alreadyPaid, finalAmount.Sub(alreadyPaid)
}

func percentValid(p decimal.Decimal) bool {
	return !p.IsNegative() && p.LessThanOrEqual(hundred)
}
