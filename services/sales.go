package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"boutique-service/database"
	"boutique-service/models"
	"boutique-service/rabbitmq"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

var rabbitMQ *rabbitmq.RabbitMQ

func SetRabbitMQ(rmq *rabbitmq.RabbitMQ) {
	rabbitMQ = rmq
}

// NewReceiptNumber generates a short printable receipt identifier.
func NewReceiptNumber() string {
	return "RC-" + strings.ToUpper(uuid.NewString()[:8])
}

// EnsureSaleForOrder converts a completed order into its sale record.
// Idempotent on the order id: if a sale already exists it is returned and
// the salePending marker is cleared, so both the synchronous completion
// path and the event-consumer retry path can call it safely.
func EnsureSaleForOrder(ctx context.Context, order *models.Order) (*models.Sale, error) {
	orderID := order.ID.Hex()

	var existing models.Sale
	err := database.Sales().FindOne(ctx, bson.M{"orderId": orderID}).Decode(&existing)
	if err == nil {
		clearSalePending(ctx, order.ID)
		return &existing, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	items := make([]models.SaleItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, models.SaleItem{
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		})
	}

	now := time.Now()
	sale := models.Sale{
		OrderID:       orderID,
		CustomerName:  order.Name,
		CustomerPhone: order.Phone,
		Items:         items,
		Total:         order.Total,
		PaymentMethod: order.PaymentMethod,
		ReceiptNumber: NewReceiptNumber(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	result, err := database.Sales().InsertOne(ctx, sale)
	if err != nil {
		logger.Error().Err(err).Str("orderId", orderID).Msg("Failed to create sale for completed order")
		return nil, err
	}
	sale.ID = result.InsertedID.(primitive.ObjectID)

	clearSalePending(ctx, order.ID)
	logger.Info().Str("orderId", orderID).Str("saleId", sale.ID.Hex()).Msg("Order converted to sale")

	if rabbitMQ != nil {
		event := rabbitmq.Event{
			Kind:    rabbitmq.EventSaleCreated,
			RefID:   sale.ID.Hex(),
			Title:   "Nouvelle vente",
			Message: fmt.Sprintf("Vente de %.2f pour %s (reçu %s)", sale.Total, sale.CustomerName, sale.ReceiptNumber),
			Link:    "/admin/sales/" + sale.ID.Hex(),
		}
		if err := rabbitMQ.PublishEvent(event); err != nil {
			logger.Error().Err(err).Msg("Failed to publish sale created event")
		}
	}

	return &sale, nil
}

func clearSalePending(ctx context.Context, orderID primitive.ObjectID) {
	_, err := database.Orders().UpdateOne(ctx,
		bson.M{"_id": orderID},
		bson.M{"$unset": bson.M{"salePending": ""}},
	)
	if err != nil {
		logger.Error().Err(err).Str("orderId", orderID.Hex()).Msg("Failed to clear salePending marker")
	}
}
