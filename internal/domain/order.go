package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPreparing      OrderStatus = "PREPARING"
	OrderStatusPaymentPending OrderStatus = "PAYMENT_PENDING"
	OrderStatusCancelled      OrderStatus = "CANCELLED"
)

type PaymentMethod string

const (
	PaymentPix        PaymentMethod = "PIX"
	PaymentCash       PaymentMethod = "CASH"
	PaymentCreditCard PaymentMethod = "CREDIT_CARD"
	PaymentDebitCard  PaymentMethod = "DEBIT_CARD"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentPix, PaymentCash, PaymentCreditCard, PaymentDebitCard:
		return true
	}
	return false
}

// InitialStatus is PREPARING for payments settled up front or on delivery,
// PAYMENT_PENDING for cards until the gateway confirms.
func (m PaymentMethod) InitialStatus() OrderStatus {
	if m == PaymentPix || m == PaymentCash {
		return OrderStatusPreparing
	}
	return OrderStatusPaymentPending
}

type Address struct {
	PostalCode string `json:"postal_code" binding:"required"`
	Street     string `json:"street" binding:"required"`
	Number     string `json:"number" binding:"required"`
	District   string `json:"district" binding:"required"`
	Complement string `json:"complement,omitempty"`
}

type Customer struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
	CPF   string `json:"cpf" binding:"required"`
	Phone string `json:"phone,omitempty"`
}

type Order struct {
	OrderID       string          `json:"order_id"`
	ClientID      string          `json:"client_id"`
	Customer      Customer        `json:"customer"`
	Items         []CartLine      `json:"items"`
	Address       Address         `json:"address"`
	Totals        OrderTotals     `json:"totals"`
	OfferID       string          `json:"offer_id,omitempty"`
	CouponCode    string          `json:"coupon_code,omitempty"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	PaymentID     string          `json:"payment_id,omitempty"`
	CashTendered  decimal.Decimal `json:"cash_tendered,omitempty"`
	Change        decimal.Decimal `json:"change,omitempty"`
	Status        OrderStatus     `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type CheckoutRequest struct {
	Address Address `json:"address" binding:"required"`
}

type PlaceOrderRequest struct {
	Customer      Customer         `json:"customer" binding:"required"`
	PaymentMethod PaymentMethod    `json:"payment_method" binding:"required"`
	PaymentID     string           `json:"payment_id"`
	CashTendered  *decimal.Decimal `json:"cash_tendered"`
}

type CreateOrderResponse struct {
	OrderID    string          `json:"order_id"`
	Status     OrderStatus     `json:"status"`
	GrandTotal decimal.Decimal `json:"grand_total"`
	Change     decimal.Decimal `json:"change"`
	Message    string          `json:"message"`
}
