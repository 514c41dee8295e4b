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

func CreateSale(c *gin.Context) {
	defer func() {
		success := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordOperation("sale", "create", success)
	}()

	var sale models.Sale
	if err := c.ShouldBindJSON(&sale); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(sale.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Sale must contain at least one item"})
		return
	}
	if !models.SaleTotalMatches(sale.Total, sale.Items) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Total does not match sale items"})
		return
	}

	if sale.ReceiptNumber == "" {
		sale.ReceiptNumber = services.NewReceiptNumber()
	}
	sale.ID = primitive.NewObjectID()
	sale.CreatedAt = time.Now()
	sale.UpdatedAt = sale.CreatedAt

	if _, err := database.Sales().InsertOne(c.Request.Context(), sale); err != nil {
		log.Printf("Failed to insert sale: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create sale"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"saleId": sale.ID.Hex(), "receiptNumber": sale.ReceiptNumber})

	if rabbitMQ != nil {
		event := rabbitmq.Event{
			Kind:    rabbitmq.EventSaleCreated,
			RefID:   sale.ID.Hex(),
			Title:   "Nouvelle vente",
			Message: fmt.Sprintf("Vente de %.2f pour %s (reçu %s)", sale.Total, sale.CustomerName, sale.ReceiptNumber),
			Link:    "/admin/sales/" + sale.ID.Hex(),
		}
		if err := rabbitMQ.PublishEvent(event); err != nil {
			log.Printf("Failed to publish sale created event: %v", err)
		}
	}
}

func GetSales(c *gin.Context) {
	defer func() {
		success := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordOperation("sale", "list", success)
	}()

	ctx := c.Request.Context()
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := database.Sales().Find(ctx, bson.M{}, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	var sales []models.Sale
	if err := cursor.All(ctx, &sales); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if sales == nil {
		sales = []models.Sale{}
	}

	c.JSON(http.StatusOK, gin.H{"sales": sales})
}

// UpdateSale is a full replace of the customer and items fields. The order
// link, receipt number and creation time never change after the fact.
func UpdateSale(c *gin.Context) {
	defer func() {
		success := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordOperation("sale", "update", success)
	}()

	saleID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
		return
	}

	var input models.Sale
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(input.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Sale must contain at least one item"})
		return
	}
	if !models.SaleTotalMatches(input.Total, input.Items) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Total does not match sale items"})
		return
	}

	result, err := database.Sales().UpdateOne(c.Request.Context(),
		bson.M{"_id": saleID},
		bson.M{"$set": bson.M{
			"customerName":  input.CustomerName,
			"customerPhone": input.CustomerPhone,
			"items":         input.Items,
			"total":         input.Total,
			"paymentMethod": input.PaymentMethod,
			"notes":         input.Notes,
			"updatedAt":     time.Now(),
		}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update sale"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Sale updated", "saleId": saleID.Hex()})
}

// DeleteSale removes the sale and then best-effort deletes a linked order.
// The order reference is weak: a dangling or malformed orderId must not
// fail the delete.
func DeleteSale(c *gin.Context) {
	defer func() {
		success := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordOperation("sale", "delete", success)
	}()

	saleID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
		return
	}

	ctx := c.Request.Context()
	var sale models.Sale
	err = database.Sales().FindOne(ctx, bson.M{"_id": saleID}).Decode(&sale)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if _, err := database.Sales().DeleteOne(ctx, bson.M{"_id": saleID}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete sale"})
		return
	}

	if sale.OrderID != "" {
		if orderID, err := primitive.ObjectIDFromHex(sale.OrderID); err == nil {
			if _, err := database.Orders().DeleteOne(ctx, bson.M{"_id": orderID}); err != nil {
				log.Printf("Best-effort order delete failed for sale %s: %v", saleID.Hex(), err)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Sale deleted"})
}
