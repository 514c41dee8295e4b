package controllers

import (
	"errors"
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
)

// lookupCategoryType resolves the product's category to drive the stock
// representation check.
func lookupCategoryType(c *gin.Context, categoryID string) (string, bool) {
	id, err := primitive.ObjectIDFromHex(categoryID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category id"})
		return "", false
	}

	var category models.Category
	err = database.Categories().FindOne(c.Request.Context(), bson.M{"_id": id}).Decode(&category)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category"})
			return "", false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return "", false
	}

	return category.CategoryType, true
}

func CreateProduct(c *gin.Context) {
	defer func() {
		success := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordOperation("product", "create", success)
	}()

	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	categoryType, ok := lookupCategoryType(c, product.CategoryID)
	if !ok {
		return
	}
	if err := models.ValidateStock(categoryType, &product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product.ID = primitive.NewObjectID()
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt

	if _, err := database.Products().InsertOne(c.Request.Context(), product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"productId": product.ID.Hex()})
}

func GetProducts(c *gin.Context) {
	ctx := c.Request.Context()
	filter := bson.M{}
	if categoryID := c.Query("category"); categoryID != "" {
		filter["categoryId"] = categoryID
	}
	if brandID := c.Query("brand"); brandID != "" {
		filter["brandId"] = brandID
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := database.Products().Find(ctx, filter, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if products == nil {
		products = []models.Product{}
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

func GetProduct(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var product models.Product
	err = database.Products().FindOne(c.Request.Context(), bson.M{"_id": productID}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, product)
}

func UpdateProduct(c *gin.Context) {
	defer func() {
		success := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordOperation("product", "update", success)
	}()

	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	categoryType, ok := lookupCategoryType(c, product.CategoryID)
	if !ok {
		return
	}
	if err := models.ValidateStock(categoryType, &product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := database.Products().UpdateOne(c.Request.Context(),
		bson.M{"_id": productID},
		bson.M{"$set": bson.M{
			"name":        product.Name,
			"description": product.Description,
			"price":       product.Price,
			"categoryId":  product.CategoryID,
			"brandId":     product.BrandID,
			"images":      product.Images,
			"sizes":       product.Sizes,
			"colors":      product.Colors,
			"stock":       product.Stock,
			"updatedAt":   time.Now(),
		}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product updated", "productId": productID.Hex()})
}

func DeleteProduct(c *gin.Context) {
	defer func() {
		success := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordOperation("product", "delete", success)
	}()

	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	if _, err := database.Products().DeleteOne(c.Request.Context(), bson.M{"_id": productID}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}
