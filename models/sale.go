package models

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Sale struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	// OrderID is a weak reference to the originating order, kept only for
	// cascade-delete bookkeeping. Manual point-of-sale entries leave it empty.
	OrderID       string     `bson:"orderId,omitempty" json:"orderId,omitempty"`
	CustomerName  string     `bson:"customerName" json:"customerName" binding:"required"`
	CustomerPhone string     `bson:"customerPhone,omitempty" json:"customerPhone,omitempty"`
	Items         []SaleItem `bson:"items" json:"items" binding:"required"`
	Total         float64    `bson:"total" json:"total"`
	PaymentMethod string     `bson:"paymentMethod,omitempty" json:"paymentMethod,omitempty"`
	ReceiptNumber string     `bson:"receiptNumber" json:"receiptNumber"`
	Notes         string     `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt     time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// SaleItem has the same snapshot shape as OrderItem minus the product id.
type SaleItem struct {
	Name     string  `bson:"name" json:"name"`
	Price    float64 `bson:"price" json:"price"`
	Quantity int     `bson:"quantity" json:"quantity"`
}

func SaleItemsTotal(items []SaleItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

func SaleTotalMatches(total float64, items []SaleItem) bool {
	return math.Abs(total-SaleItemsTotal(items)) <= TotalTolerance
}
