package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/restohub/restopos/models"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestComputeItemsTotal(t *testing.T) {
	items := []models.OrderItem{
		{ItemName: "Beef Burger", Price: dec("50"), Quantity: 2},
		{ItemName: "Cold Coffee", Price: dec("100"), Quantity: 1},
	}
	total, err := ComputeItemsTotal(items)
	assert.NoError(t, err)
	assert.True(t, total.Equal(dec("200")), "got %s", total)
}

func TestComputeItemsTotalRejectsBadLines(t *testing.T) {
	_, err := ComputeItemsTotal([]models.OrderItem{{Price: dec("-1"), Quantity: 1}})
	assert.ErrorIs(t, err, ErrNegativePrice)

	_, err = ComputeItemsTotal([]models.OrderItem{{Price: dec("10"), Quantity: 0}})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestApplyDiscountAndVat(t *testing.T) {
	// 200 - 10% = 180, VAT 13% of 180 = 23.4, no delivery.
	res, err := ApplyDiscountAndVat(dec("200"), dec("10"), dec("13"), decimal.Zero)
	assert.NoError(t, err)
	assert.True(t, res.DiscountAmount.Equal(dec("20")), "discount %s", res.DiscountAmount)
	assert.True(t, res.VatAmount.Equal(dec("23.4")), "vat %s", res.VatAmount)
	assert.True(t, res.FinalAmount.Equal(dec("203.4")), "final %s", res.FinalAmount)
}

func TestApplyDiscountAndVatDeliveryNotTaxed(t *testing.T) {
	res, err := ApplyDiscountAndVat(dec("100"), decimal.Zero, dec("10"), dec("40"))
	assert.NoError(t, err)
	assert.True(t, res.VatAmount.Equal(dec("10")), "vat %s", res.VatAmount)
	assert.True(t, res.FinalAmount.Equal(dec("150")), "final %s", res.FinalAmount)
}

func TestApplyDiscountAndVatValidation(t *testing.T) {
	_, err := ApplyDiscountAndVat(dec("100"), dec("101"), decimal.Zero, decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidPercent)

	_, err = ApplyDiscountAndVat(dec("100"), decimal.Zero, dec("-5"), decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidPercent)

	_, err = ApplyDiscountAndVat(dec("100"), decimal.Zero, decimal.Zero, dec("-1"))
	assert.ErrorIs(t, err, ErrNegativeCharge)
}

func TestApplyPayment(t *testing.T) {
	paid, due, err := ApplyPayment(dec("150"), models.PaymentPaid, "")
	assert.NoError(t, err)
	assert.True(t, paid.Equal(dec("150")))
	assert.True(t, due.IsZero())

	paid, due, err = ApplyPayment(dec("150"), models.PaymentDue, "")
	assert.NoError(t, err)
	assert.True(t, paid.IsZero())
	assert.True(t, due.Equal(dec("150")))

	_, _, err = ApplyPayment(dec("150"), models.PaymentCredit, "  ")
	assert.ErrorIs(t, err, ErrCustomerNameRequired)

	paid, due, err = ApplyPayment(dec("150"), models.PaymentCredit, "Karim")
	assert.NoError(t, err)
	assert.True(t, paid.IsZero())
	assert.True(t, due.Equal(dec("150")))

	_, _, err = ApplyPayment(dec("150"), "Partial", "")
	assert.ErrorIs(t, err, ErrInvalidPaymentStatus)
}

func TestSettleDue(t *testing.T) {
	paid, due := SettleDue(dec("200"), dec("50"), false)
	assert.True(t, paid.Equal(dec("50")))
	assert.True(t, due.Equal(dec("150")))

	paid, due = SettleDue(dec("200"), dec("50"), true)
	assert.True(t, paid.Equal(dec("200")))
	assert.True(t, due.IsZero())

	paid, due = SettleDue(dec("200"), dec("200"), false)
	assert.True(t, paid.Equal(dec("200")))
	assert.True(t, due.IsZero())
}
