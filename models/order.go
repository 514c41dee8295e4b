package models

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TotalTolerance is the currency-rounding slack allowed between a submitted
// total and the recomputed items sum.
const TotalTolerance = 0.01

type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        string             `bson:"userId,omitempty" json:"userId,omitempty"`
	Name          string             `bson:"name" json:"name" binding:"required"`
	Email         string             `bson:"email,omitempty" json:"email,omitempty"`
	Phone         string             `bson:"phone" json:"phone" binding:"required"`
	Address       string             `bson:"address" json:"address" binding:"required"`
	Items         []OrderItem        `bson:"items" json:"items" binding:"required"`
	Total         float64            `bson:"total" json:"total"`
	Status        string             `bson:"status" json:"status"`
	PaymentMethod string             `bson:"paymentMethod,omitempty" json:"paymentMethod,omitempty"`
	// SalePending marks a completed order whose sale record has not been
	// written yet. Set together with the completed status, cleared once the
	// sale exists.
	SalePending bool      `bson:"salePending,omitempty" json:"-"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// OrderItem is a snapshot of the product at checkout time. Later edits to
// the live product never change historical orders.
type OrderItem struct {
	ProductID string  `bson:"id" json:"id"`
	Name      string  `bson:"name" json:"name"`
	Price     float64 `bson:"price" json:"price"`
	Quantity  int     `bson:"quantity" json:"quantity"`
}

// ItemsTotal recomputes the order total from the item snapshot.
func ItemsTotal(items []OrderItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// TotalMatches checks a client-submitted total against the items sum within
// the rounding tolerance.
func TotalMatches(total float64, items []OrderItem) bool {
	return math.Abs(total-ItemsTotal(items)) <= TotalTolerance
}

// CanonicalStatus resolves the stored status through the spelling table.
// Unknown spellings are reported as-is with ok=false.
func (o *Order) CanonicalStatus() (OrderStatus, bool) {
	return ParseStatus(o.Status)
}
