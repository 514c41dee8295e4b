package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"boutique-service/database"
	"boutique-service/middlewares"
	"boutique-service/models"
)

type DashboardStats struct {
	TotalRevenue   float64        `json:"totalRevenue"`
	TodayRevenue   float64        `json:"todayRevenue"`
	MonthRevenue   float64        `json:"monthRevenue"`
	TotalOrders    int            `json:"totalOrders"`
	PendingOrders  int            `json:"pendingOrders"`
	OrdersByStatus map[string]int `json:"ordersByStatus"`
	SalesCount     int            `json:"salesCount"`
	SalesRevenue   float64        `json:"salesRevenue"`
	ProductCount   int64          `json:"productCount"`
	UserCount      int64          `json:"userCount"`
}

// computeOrderStats aggregates revenue and counts from a full order scan.
// Only completed orders count toward revenue, in either status spelling;
// cancelled orders are excluded. Day and month buckets use the server-local
// boundaries of now.
func computeOrderStats(orders []models.Order, now time.Time) DashboardStats {
	stats := DashboardStats{
		OrdersByStatus: make(map[string]int),
		TotalOrders:    len(orders),
	}

	year, month, day := now.Date()
	for _, order := range orders {
		st, ok := order.CanonicalStatus()
		if !ok {
			continue
		}
		stats.OrdersByStatus[string(st)]++
		if st == models.StatusPending {
			stats.PendingOrders++
		}
		if st != models.StatusCompleted {
			continue
		}

		stats.TotalRevenue += order.Total
		oy, om, od := order.CreatedAt.Date()
		if oy == year && om == month {
			stats.MonthRevenue += order.Total
			if od == day {
				stats.TodayRevenue += order.Total
			}
		}
	}

	return stats
}

func addSaleStats(stats *DashboardStats, sales []models.Sale) {
	stats.SalesCount = len(sales)
	for _, sale := range sales {
		stats.SalesRevenue += sale.Total
	}
}

// GetDashboardStats recomputes every aggregate from collection scans on each
// call. Pure read, no incremental counters to drift.
func GetDashboardStats(c *gin.Context) {
	defer func() {
		success := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordOperation("dashboard", "stats", success)
	}()

	ctx := c.Request.Context()

	cursor, err := database.Orders().Find(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	cursor, err = database.Sales().Find(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	var sales []models.Sale
	if err := cursor.All(ctx, &sales); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	stats := computeOrderStats(orders, time.Now())
	addSaleStats(&stats, sales)

	if stats.ProductCount, err = database.Products().CountDocuments(ctx, bson.M{}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if stats.UserCount, err = database.Users().CountDocuments(ctx, bson.M{}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
