package models

import (
	"fmt"
	"strconv"
)

// Category types and the stock representation each one mandates.
const (
	CategoryChaussures = "chaussures" // numeric sizes (36, 37, ...)
	CategoryVetements  = "vetements"  // letter sizes (XS..XXL)
	CategoryBijoux     = "bijoux"     // per-color stock
	CategoryAutre      = "autre"      // flat stock integer
)

var letterSizes = map[string]bool{
	"XS": true, "S": true, "M": true, "L": true, "XL": true, "XXL": true, "XXXL": true,
}

func ValidCategoryType(t string) bool {
	switch t {
	case CategoryChaussures, CategoryVetements, CategoryBijoux, CategoryAutre:
		return true
	}
	return false
}

// ValidateStock enforces the category-type decision table: shoes carry
// numeric sizes, clothing carries letter sizes, jewelry carries colors, and
// everything else carries a flat stock count. The representations are
// mutually exclusive per product.
func ValidateStock(categoryType string, p *Product) error {
	switch categoryType {
	case CategoryChaussures:
		if len(p.Sizes) == 0 {
			return fmt.Errorf("category %s requires a sizes array", categoryType)
		}
		if len(p.Colors) > 0 || p.Stock != 0 {
			return fmt.Errorf("category %s only supports per-size stock", categoryType)
		}
		for _, s := range p.Sizes {
			if _, err := strconv.Atoi(s.Size); err != nil {
				return fmt.Errorf("category %s requires numeric sizes, got %q", categoryType, s.Size)
			}
		}
	case CategoryVetements:
		if len(p.Sizes) == 0 {
			return fmt.Errorf("category %s requires a sizes array", categoryType)
		}
		if len(p.Colors) > 0 || p.Stock != 0 {
			return fmt.Errorf("category %s only supports per-size stock", categoryType)
		}
		for _, s := range p.Sizes {
			if !letterSizes[s.Size] {
				return fmt.Errorf("category %s requires letter sizes, got %q", categoryType, s.Size)
			}
		}
	case CategoryBijoux:
		if len(p.Colors) == 0 {
			return fmt.Errorf("category %s requires a colors array", categoryType)
		}
		if len(p.Sizes) > 0 || p.Stock != 0 {
			return fmt.Errorf("category %s only supports per-color stock", categoryType)
		}
	case CategoryAutre:
		if len(p.Sizes) > 0 || len(p.Colors) > 0 {
			return fmt.Errorf("category %s only supports a flat stock count", categoryType)
		}
		if p.Stock < 0 {
			return fmt.Errorf("stock cannot be negative")
		}
	default:
		return fmt.Errorf("unknown category type %q", categoryType)
	}
	return nil
}
