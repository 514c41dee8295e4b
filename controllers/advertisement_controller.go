package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"boutique-service/database"
	"boutique-service/models"
)

func CreateAdvertisement(c *gin.Context) {
	var ad models.Advertisement
	if err := c.ShouldBindJSON(&ad); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ad.ID = primitive.NewObjectID()
	ad.CreatedAt = time.Now()
	ad.UpdatedAt = ad.CreatedAt

	if _, err := database.Advertisements().InsertOne(c.Request.Context(), ad); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create advertisement"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"advertisementId": ad.ID.Hex()})
}

func GetAdvertisements(c *gin.Context) {
	listAdvertisements(c, bson.M{})
}

// GetActiveAdvertisements serves the storefront banner rotation.
func GetActiveAdvertisements(c *gin.Context) {
	listAdvertisements(c, bson.M{"isActive": true})
}

func listAdvertisements(c *gin.Context, filter bson.M) {
	ctx := c.Request.Context()
	cursor, err := database.Advertisements().Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	var ads []models.Advertisement
	if err := cursor.All(ctx, &ads); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if ads == nil {
		ads = []models.Advertisement{}
	}

	c.JSON(http.StatusOK, gin.H{"advertisements": ads})
}

func UpdateAdvertisement(c *gin.Context) {
	adID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Advertisement not found"})
		return
	}

	var ad models.Advertisement
	if err := c.ShouldBindJSON(&ad); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := database.Advertisements().UpdateOne(c.Request.Context(),
		bson.M{"_id": adID},
		bson.M{"$set": bson.M{
			"title":     ad.Title,
			"image":     ad.Image,
			"link":      ad.Link,
			"isActive":  ad.IsActive,
			"updatedAt": time.Now(),
		}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update advertisement"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Advertisement not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Advertisement updated"})
}

func DeleteAdvertisement(c *gin.Context) {
	adID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Advertisement not found"})
		return
	}

	if _, err := database.Advertisements().DeleteOne(c.Request.Context(), bson.M{"_id": adID}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete advertisement"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Advertisement deleted"})
}
