package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	NotificationContact = "contact"
	NotificationOrder   = "order"
	NotificationSale    = "sale"
	NotificationAuth    = "auth"
	NotificationSystem  = "system"
)

// NotificationListLimit caps how many notifications the admin inbox gets per
// poll. The unread count is computed over the whole collection regardless.
const NotificationListLimit = 50

type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Type      string             `bson:"type" json:"type"`
	Title     string             `bson:"title" json:"title"`
	Message   string             `bson:"message" json:"message"`
	Link      string             `bson:"link,omitempty" json:"link,omitempty"`
	IsRead    bool               `bson:"isRead" json:"isRead"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
