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

func CreateCategory(c *gin.Context) {
	var category models.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidCategoryType(category.CategoryType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category type"})
		return
	}

	category.ID = primitive.NewObjectID()
	category.CreatedAt = time.Now()
	category.UpdatedAt = category.CreatedAt

	if _, err := database.Categories().InsertOne(c.Request.Context(), category); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"categoryId": category.ID.Hex()})
}

func GetCategories(c *gin.Context) {
	ctx := c.Request.Context()
	cursor, err := database.Categories().Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	var categories []models.Category
	if err := cursor.All(ctx, &categories); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func UpdateCategory(c *gin.Context) {
	categoryID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	var category models.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidCategoryType(category.CategoryType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category type"})
		return
	}

	result, err := database.Categories().UpdateOne(c.Request.Context(),
		bson.M{"_id": categoryID},
		bson.M{"$set": bson.M{
			"name":         category.Name,
			"categoryType": category.CategoryType,
			"updatedAt":    time.Now(),
		}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category updated"})
}

func DeleteCategory(c *gin.Context) {
	categoryID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	if _, err := database.Categories().DeleteOne(c.Request.Context(), bson.M{"_id": categoryID}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}

func CreateBrand(c *gin.Context) {
	var brand models.Brand
	if err := c.ShouldBindJSON(&brand); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	brand.ID = primitive.NewObjectID()
	brand.CreatedAt = time.Now()
	brand.UpdatedAt = brand.CreatedAt

	if _, err := database.Brands().InsertOne(c.Request.Context(), brand); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create brand"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"brandId": brand.ID.Hex()})
}

func GetBrands(c *gin.Context) {
	ctx := c.Request.Context()
	cursor, err := database.Brands().Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	var brands []models.Brand
	if err := cursor.All(ctx, &brands); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if brands == nil {
		brands = []models.Brand{}
	}

	c.JSON(http.StatusOK, gin.H{"brands": brands})
}

func UpdateBrand(c *gin.Context) {
	brandID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Brand not found"})
		return
	}

	var brand models.Brand
	if err := c.ShouldBindJSON(&brand); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := database.Brands().UpdateOne(c.Request.Context(),
		bson.M{"_id": brandID},
		bson.M{"$set": bson.M{
			"name":      brand.Name,
			"logo":      brand.Logo,
			"updatedAt": time.Now(),
		}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update brand"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Brand not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Brand updated"})
}

func DeleteBrand(c *gin.Context) {
	brandID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Brand not found"})
		return
	}

	if _, err := database.Brands().DeleteOne(c.Request.Context(), bson.M{"_id": brandID}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete brand"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Brand deleted"})
}
