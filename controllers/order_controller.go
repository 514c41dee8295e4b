package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"boutique-service/database"
	"boutique-service/middlewares"
	"boutique-service/models"
	"boutique-service/rabbitmq"
	"boutique-service/services"
)

var rabbitMQ *rabbitmq.RabbitMQ

func SetRabbitMQ(rmq *rabbitmq.RabbitMQ) {
	rabbitMQ = rmq
	services.SetRabbitMQ(rmq)
}

// retentionWindow hides terminal orders from the operational views once they
// are a day old. Display filter only, the documents stay put.
const retentionWindow = 24 * time.Hour

func filterActiveOrders(orders []models.Order, now time.Time) []models.Order {
	active := make([]models.Order, 0, len(orders))
	for _, order := range orders {
		st, ok := order.CanonicalStatus()
		if ok && st.IsTerminal() && now.Sub(order.UpdatedAt) > retentionWindow {
			continue
		}
		active = append(active, order)
	}
	return active
}

func CreateOrder(c *gin.Context) {
	defer func() {
		success := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordOperation("order", "create", success)
	}()

	var order models.Order
	if err := c.ShouldBindJSON(&order); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(order.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order must contain at least one item"})
		return
	}

	// The items are a snapshot resolved at checkout time; the total still has
	// to agree with them.
	if !models.TotalMatches(order.Total, order.Items) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Total does not match order items"})
		return
	}

	if order.Status == "" {
		order.Status = string(models.StatusPending)
	} else {
		st, ok := models.ParseStatus(order.Status)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown order status"})
			return
		}
		// Checkout only opens orders. Every other state is reached through
		// the admin status updates, so the completion side effects (sale
		// conversion, revenue) cannot be skipped by the public endpoint.
		if st != models.StatusPending {
			c.JSON(http.StatusBadRequest, gin.H{"error": "New orders must start as pending"})
			return
		}
		order.Status = string(st)
	}

	order.ID = primitive.NewObjectID()
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt

	if _, err := database.Orders().InsertOne(c.Request.Context(), order); err != nil {
		log.Printf("Failed to insert order: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"orderId": order.ID.Hex()})

	if rabbitMQ != nil {
		event := rabbitmq.Event{
			Kind:    rabbitmq.EventOrderCreated,
			RefID:   order.ID.Hex(),
			Title:   "Nouvelle commande",
			Message: fmt.Sprintf("Commande de %.2f par %s", order.Total, order.Name),
			Link:    "/admin/orders/" + order.ID.Hex(),
		}
		if err := rabbitMQ.PublishEvent(event); err != nil {
			log.Printf("Failed to publish order created event: %v", err)
		}
	}
}

func GetOrders(c *gin.Context) {
	defer func() {
		success := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordOperation("order", "list", success)
	}()

	ctx := c.Request.Context()
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := database.Orders().Find(ctx, bson.M{}, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}

	if c.Query("view") == "active" {
		orders = filterActiveOrders(orders, time.Now())
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func GetUserOrders(c *gin.Context) {
	defer func() {
		success := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordOperation("order", "list_user", success)
	}()

	ctx := c.Request.Context()
	// userId is a weak reference: no existence check against the users
	// collection, an unknown id just yields an empty list.
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := database.Orders().Find(ctx, bson.M{"userId": c.Param("id")}, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func GetOrderDetails(c *gin.Context) {
	defer func() {
		success := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordOperation("order", "details", success)
	}()

	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	var order models.Order
	err = database.Orders().FindOne(c.Request.Context(), bson.M{"_id": orderID}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, order)
}

type orderUpdate struct {
	Name          *string             `json:"name"`
	Email         *string             `json:"email"`
	Phone         *string             `json:"phone"`
	Address       *string             `json:"address"`
	Items         *[]models.OrderItem `json:"items"`
	Total         *float64            `json:"total"`
	Status        *string             `json:"status"`
	PaymentMethod *string             `json:"paymentMethod"`
}

func UpdateOrder(c *gin.Context) {
	defer func() {
		success := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordOperation("order", "update", success)
	}()

	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	var update orderUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	var order models.Order
	err = database.Orders().FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.Phone != nil {
		set["phone"] = *update.Phone
	}
	if update.Address != nil {
		set["address"] = *update.Address
	}
	if update.PaymentMethod != nil {
		set["paymentMethod"] = *update.PaymentMethod
	}

	if update.Items != nil || update.Total != nil {
		items := order.Items
		if update.Items != nil {
			items = *update.Items
		}
		total := order.Total
		if update.Total != nil {
			total = *update.Total
		}
		if len(items) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Order must contain at least one item"})
			return
		}
		if !models.TotalMatches(total, items) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Total does not match order items"})
			return
		}
		if update.Items != nil {
			set["items"] = items
		}
		if update.Total != nil {
			set["total"] = total
		}
	}

	completing := false
	if update.Status != nil {
		next, ok := models.ParseStatus(*update.Status)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown order status"})
			return
		}
		// Historical documents may carry a spelling outside both vocabularies;
		// those are treated as non-terminal and allowed to move anywhere.
		if current, known := order.CanonicalStatus(); known {
			if !models.CanTransition(current, next) {
				c.JSON(http.StatusConflict, gin.H{
					"error": fmt.Sprintf("Illegal status transition %s -> %s", current, next),
				})
				return
			}
			completing = next == models.StatusCompleted && current != models.StatusCompleted
		} else {
			completing = next == models.StatusCompleted
		}
		set["status"] = string(next)
		if completing {
			// Marker for the order -> sale conversion: written in the same
			// document update as the status, cleared once the sale exists.
			set["salePending"] = true
		}
	}

	if _, err := database.Orders().UpdateOne(ctx, bson.M{"_id": orderID}, bson.M{"$set": set}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		return
	}

	if completing {
		var updated models.Order
		if err := database.Orders().FindOne(ctx, bson.M{"_id": orderID}).Decode(&updated); err != nil {
			log.Printf("Failed to reload completed order %s: %v", orderID.Hex(), err)
		} else if _, err := services.EnsureSaleForOrder(ctx, &updated); err != nil {
			// The salePending marker stays set; the event consumer retries the
			// conversion when it sees the completed event.
			log.Printf("Sale conversion failed for order %s: %v", orderID.Hex(), err)
		}
		if rabbitMQ != nil {
			event := rabbitmq.Event{
				Kind:  rabbitmq.EventOrderCompleted,
				RefID: orderID.Hex(),
			}
			if err := rabbitMQ.PublishEvent(event); err != nil {
				log.Printf("Failed to publish order completed event: %v", err)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order updated", "orderId": orderID.Hex()})
}

// DeleteOrder is idempotent: malformed or unknown ids are a no-op success,
// which the sale cascade relies on.
func DeleteOrder(c *gin.Context) {
	defer func() {
		success := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordOperation("order", "delete", success)
	}()

	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"message": "Order deleted"})
		return
	}

	ctx := c.Request.Context()
	if _, err := database.Orders().DeleteOne(ctx, bson.M{"_id": orderID}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order"})
		return
	}

	// Cascade the other direction of the weak link: a sale converted from
	// this order goes with it. Best-effort, mirroring the sale -> order path.
	if _, err := database.Sales().DeleteOne(ctx, bson.M{"orderId": orderID.Hex()}); err != nil {
		log.Printf("Best-effort sale delete failed for order %s: %v", orderID.Hex(), err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order deleted"})
}
