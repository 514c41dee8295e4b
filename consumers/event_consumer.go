package consumers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"boutique-service/config"
	"boutique-service/database"
	"boutique-service/models"
	"boutique-service/rabbitmq"
	"boutique-service/services"
)

// StartEventConsumer turns bus events into admin notifications and retries
// pending sale conversions. Fire-and-forget from the publishers' side; the
// admin UI polls the notifications collection.
func StartEventConsumer(ch *amqp.Channel, cfg *config.Config) {
	msgs, err := ch.Consume(
		cfg.EventQueue,
		"boutique-service", // consumer tag
		false,              // auto-ack
		false,              // exclusive
		false,              // no-local
		false,              // no-wait
		nil,
	)
	if err != nil {
		log.Fatalf("Failed to register event consumer: %v", err)
	}

	go func() {
		for msg := range msgs {
			processEventMessage(msg)
		}
	}()

	dlqMsgs, err := ch.Consume(
		cfg.DeadLetterQueue,
		"boutique-service-dlq",
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		log.Printf("Failed to register DLQ consumer: %v", err)
		return
	}

	go func() {
		for msg := range dlqMsgs {
			processDeadLetterMessage(msg)
		}
	}()
}

func processEventMessage(msg amqp.Delivery) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic in event processing: %v", r)
		}
	}()

	var event rabbitmq.Event
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		log.Printf("Invalid event payload: %s", msg.Body)
		_ = msg.Nack(false, false) // straight to the DLQ
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	switch event.Kind {
	case rabbitmq.EventOrderCreated:
		createNotification(ctx, models.NotificationOrder, event)
	case rabbitmq.EventSaleCreated:
		createNotification(ctx, models.NotificationSale, event)
	case rabbitmq.EventContactCreated:
		createNotification(ctx, models.NotificationContact, event)
	case rabbitmq.EventOrderCompleted:
		handleOrderCompleted(ctx, event.RefID)
	default:
		log.Printf("Unknown event kind: %s", event.Kind)
	}

	_ = msg.Ack(false)
}

func processDeadLetterMessage(msg amqp.Delivery) {
	log.Printf("Received dead letter: %s", msg.Body)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	now := time.Now()
	notification := models.Notification{
		ID:        primitive.NewObjectID(),
		Type:      models.NotificationSystem,
		Title:     "Evenement non traite",
		Message:   string(msg.Body),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := database.Notifications().InsertOne(ctx, notification); err != nil {
		log.Printf("Failed to record dead letter: %v", err)
	}

	_ = msg.Ack(false)
}

func createNotification(ctx context.Context, notifType string, event rabbitmq.Event) {
	now := time.Now()
	notification := models.Notification{
		ID:        primitive.NewObjectID(),
		Type:      notifType,
		Title:     event.Title,
		Message:   event.Message,
		Link:      event.Link,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := database.Notifications().InsertOne(ctx, notification); err != nil {
		log.Printf("Failed to create notification for %s: %v", event.Kind, err)
	}
}

// handleOrderCompleted is the retry half of the order -> sale conversion:
// if the synchronous path crashed between the status write and the sale
// insert, the salePending marker is still set and the conversion reruns
// here. EnsureSaleForOrder is idempotent, so the normal case is a lookup
// and nothing else.
func handleOrderCompleted(ctx context.Context, orderIDHex string) {
	orderID, err := primitive.ObjectIDFromHex(orderIDHex)
	if err != nil {
		log.Printf("Invalid order id in completed event: %s", orderIDHex)
		return
	}

	var order models.Order
	err = database.Orders().FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			log.Printf("Completed order %s no longer exists", orderIDHex)
			return
		}
		log.Printf("Failed to load completed order %s: %v", orderIDHex, err)
		return
	}

	if _, err := services.EnsureSaleForOrder(ctx, &order); err != nil {
		log.Printf("Sale conversion retry failed for order %s: %v", orderIDHex, err)
	}
}
