package models

import "testing"

func TestItemsTotal(t *testing.T) {
	items := []OrderItem{
		{ProductID: "p1", Name: "Shirt", Price: 20, Quantity: 2},
		{ProductID: "p2", Name: "Belt", Price: 15.5, Quantity: 1},
	}
	if got := ItemsTotal(items); got != 55.5 {
		t.Fatalf("ItemsTotal = %v, want 55.5", got)
	}
	if got := ItemsTotal(nil); got != 0 {
		t.Fatalf("ItemsTotal(nil) = %v, want 0", got)
	}
}

func TestTotalMatchesWithinTolerance(t *testing.T) {
	items := []OrderItem{{ProductID: "p1", Name: "Shirt", Price: 20, Quantity: 2}}

	if !TotalMatches(40, items) {
		t.Errorf("exact total rejected")
	}
	if !TotalMatches(40.009, items) {
		t.Errorf("total within rounding tolerance rejected")
	}
	if TotalMatches(40.02, items) {
		t.Errorf("total outside tolerance accepted")
	}
	if TotalMatches(0, items) {
		t.Errorf("zero total accepted for non-empty items")
	}
}

func TestSaleTotalMatches(t *testing.T) {
	items := []SaleItem{
		{Name: "Bracelet", Price: 12.5, Quantity: 2},
		{Name: "Bague", Price: 30, Quantity: 1},
	}
	if got := SaleItemsTotal(items); got != 55 {
		t.Fatalf("SaleItemsTotal = %v, want 55", got)
	}
	if !SaleTotalMatches(55, items) {
		t.Errorf("exact sale total rejected")
	}
	if SaleTotalMatches(56, items) {
		t.Errorf("wrong sale total accepted")
	}
}

func TestCanonicalStatusNormalizesLegacyData(t *testing.T) {
	order := Order{Status: "terminee"}
	st, ok := order.CanonicalStatus()
	if !ok || st != StatusCompleted {
		t.Fatalf("CanonicalStatus(terminee) = %s, %v", st, ok)
	}

	order.Status = "completed"
	st2, ok := order.CanonicalStatus()
	if !ok || st2 != st {
		t.Fatalf("the two spellings of completed are not equivalent")
	}

	order.Status = "livree"
	if _, ok := order.CanonicalStatus(); ok {
		t.Fatalf("unknown spelling reported as canonical")
	}
}
