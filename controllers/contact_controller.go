package controllers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"boutique-service/database"
	"boutique-service/middlewares"
	"boutique-service/models"
	"boutique-service/rabbitmq"
)

func CreateContact(c *gin.Context) {
	defer func() {
		success := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordOperation("contact", "create", success)
	}()

	var contact models.Contact
	if err := c.ShouldBindJSON(&contact); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contact.ID = primitive.NewObjectID()
	contact.CreatedAt = time.Now()

	if _, err := database.Contacts().InsertOne(c.Request.Context(), contact); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create contact"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"contactId": contact.ID.Hex()})

	if rabbitMQ != nil {
		event := rabbitmq.Event{
			Kind:    rabbitmq.EventContactCreated,
			RefID:   contact.ID.Hex(),
			Title:   "Nouveau message",
			Message: fmt.Sprintf("Message de %s (%s)", contact.Name, contact.Email),
			Link:    "/admin/contacts/" + contact.ID.Hex(),
		}
		if err := rabbitMQ.PublishEvent(event); err != nil {
			log.Printf("Failed to publish contact created event: %v", err)
		}
	}
}

func GetContacts(c *gin.Context) {
	ctx := c.Request.Context()
	cursor, err := database.Contacts().Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	var contacts []models.Contact
	if err := cursor.All(ctx, &contacts); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if contacts == nil {
		contacts = []models.Contact{}
	}

	c.JSON(http.StatusOK, gin.H{"contacts": contacts})
}

func DeleteContact(c *gin.Context) {
	contactID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contact not found"})
		return
	}

	if _, err := database.Contacts().DeleteOne(c.Request.Context(), bson.M{"_id": contactID}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete contact"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Contact deleted"})
}
