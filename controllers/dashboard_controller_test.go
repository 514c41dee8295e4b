package controllers

import (
	"testing"
	"time"

	"boutique-service/models"
)

var statsNow = time.Date(2024, time.March, 15, 14, 0, 0, 0, time.Local)

func orderAt(status string, total float64, createdAt time.Time) models.Order {
	return models.Order{Status: status, Total: total, CreatedAt: createdAt, UpdatedAt: createdAt}
}

func TestComputeOrderStatsRevenueBuckets(t *testing.T) {
	orders := []models.Order{
		orderAt("completed", 40, statsNow.Add(-2*time.Hour)),                // today
		orderAt("terminee", 60, statsNow.AddDate(0, 0, -3)),                 // this month, legacy spelling
		orderAt("completed", 100, statsNow.AddDate(0, -2, 0)),               // older
		orderAt("annulee", 500, statsNow.Add(-1*time.Hour)),                 // cancelled, excluded
		orderAt("cancelled", 300, statsNow.AddDate(0, 0, -1)),               // cancelled, excluded
		orderAt("pending", 25, statsNow.Add(-30*time.Minute)),               // not revenue
		orderAt("en_cours", 75, statsNow.AddDate(0, 0, -2)),                 // not revenue
		orderAt("terminee", 10, time.Date(2024, time.March, 15, 23, 30, 0, 0, time.Local)), // today, late evening
	}

	stats := computeOrderStats(orders, statsNow)

	if stats.TotalRevenue != 210 {
		t.Errorf("TotalRevenue = %v, want 210", stats.TotalRevenue)
	}
	if stats.MonthRevenue != 110 {
		t.Errorf("MonthRevenue = %v, want 110", stats.MonthRevenue)
	}
	if stats.TodayRevenue != 50 {
		t.Errorf("TodayRevenue = %v, want 50", stats.TodayRevenue)
	}
	if stats.TotalOrders != len(orders) {
		t.Errorf("TotalOrders = %d, want %d", stats.TotalOrders, len(orders))
	}
	if stats.PendingOrders != 1 {
		t.Errorf("PendingOrders = %d, want 1", stats.PendingOrders)
	}
	if stats.OrdersByStatus["completed"] != 4 {
		t.Errorf("OrdersByStatus[completed] = %d, want 4", stats.OrdersByStatus["completed"])
	}
	if stats.OrdersByStatus["cancelled"] != 2 {
		t.Errorf("OrdersByStatus[cancelled] = %d, want 2", stats.OrdersByStatus["cancelled"])
	}
}

// Both spellings of the terminal status must be treated identically by the
// revenue computation.
func TestComputeOrderStatsDualVocabularyEquivalence(t *testing.T) {
	english := []models.Order{orderAt("completed", 40, statsNow)}
	french := []models.Order{orderAt("terminee", 40, statsNow)}

	a := computeOrderStats(english, statsNow)
	b := computeOrderStats(french, statsNow)

	if a.TotalRevenue != b.TotalRevenue || a.TodayRevenue != b.TodayRevenue || a.MonthRevenue != b.MonthRevenue {
		t.Fatalf("spellings diverge: english=%+v french=%+v", a, b)
	}
	if a.OrdersByStatus["completed"] != 1 || b.OrdersByStatus["completed"] != 1 {
		t.Fatalf("status counts diverge: english=%v french=%v", a.OrdersByStatus, b.OrdersByStatus)
	}
}

// Pure read: recomputing over the same snapshot yields the same result.
func TestComputeOrderStatsIdempotent(t *testing.T) {
	orders := []models.Order{
		orderAt("terminee", 40, statsNow),
		orderAt("pending", 10, statsNow),
	}
	first := computeOrderStats(orders, statsNow)
	second := computeOrderStats(orders, statsNow)
	if first.TotalRevenue != second.TotalRevenue || first.TotalOrders != second.TotalOrders {
		t.Fatalf("repeated computation diverged: %+v vs %+v", first, second)
	}
}

func TestComputeOrderStatsSkipsUnknownSpellings(t *testing.T) {
	orders := []models.Order{
		orderAt("livree", 999, statsNow), // neither vocabulary
		orderAt("completed", 40, statsNow),
	}
	stats := computeOrderStats(orders, statsNow)
	if stats.TotalRevenue != 40 {
		t.Errorf("unknown status counted toward revenue: %v", stats.TotalRevenue)
	}
	if stats.TotalOrders != 2 {
		t.Errorf("TotalOrders = %d, want 2", stats.TotalOrders)
	}
}

func TestAddSaleStats(t *testing.T) {
	stats := DashboardStats{}
	addSaleStats(&stats, []models.Sale{{Total: 40}, {Total: 12.5}})
	if stats.SalesCount != 2 {
		t.Errorf("SalesCount = %d, want 2", stats.SalesCount)
	}
	if stats.SalesRevenue != 52.5 {
		t.Errorf("SalesRevenue = %v, want 52.5", stats.SalesRevenue)
	}
}
