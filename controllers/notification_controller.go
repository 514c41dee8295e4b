package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"boutique-service/database"
	"boutique-service/middlewares"
	"boutique-service/models"
)

// GetNotifications returns the 50 most recent notifications newest-first,
// plus the unread count over the whole collection. Admin clients poll this.
func GetNotifications(c *gin.Context) {
	defer func() {
		success := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordOperation("notification", "list", success)
	}()

	ctx := c.Request.Context()
	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(models.NotificationListLimit)
	cursor, err := database.Notifications().Find(ctx, bson.M{}, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	var notifications []models.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}

	unreadCount, err := database.Notifications().CountDocuments(ctx, bson.M{"isRead": false})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"unreadCount":   unreadCount,
	})
}

// MarkNotificationRead marks one notification read. Marking an already-read
// or unknown notification is a no-op success.
func MarkNotificationRead(c *gin.Context) {
	defer func() {
		success := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordOperation("notification", "mark_read", success)
	}()

	notificationID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	_, err = database.Notifications().UpdateOne(c.Request.Context(),
		bson.M{"_id": notificationID, "isRead": false},
		bson.M{"$set": bson.M{"isRead": true, "updatedAt": time.Now()}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

func MarkAllNotificationsRead(c *gin.Context) {
	defer func() {
		success := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordOperation("notification", "mark_all_read", success)
	}()

	result, err := database.Notifications().UpdateMany(c.Request.Context(),
		bson.M{"isRead": false},
		bson.M{"$set": bson.M{"isRead": true, "updatedAt": time.Now()}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read", "modified": result.ModifiedCount})
}
