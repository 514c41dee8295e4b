package models

import "testing"

func TestValidateStockChaussures(t *testing.T) {
	p := &Product{Sizes: []SizeStock{{Size: "40", Stock: 3}, {Size: "41", Stock: 0}}}
	if err := ValidateStock(CategoryChaussures, p); err != nil {
		t.Fatalf("numeric sizes rejected: %v", err)
	}

	p = &Product{Sizes: []SizeStock{{Size: "M", Stock: 3}}}
	if err := ValidateStock(CategoryChaussures, p); err == nil {
		t.Fatalf("letter size accepted for shoes")
	}

	p = &Product{}
	if err := ValidateStock(CategoryChaussures, p); err == nil {
		t.Fatalf("shoes without sizes accepted")
	}
}

func TestValidateStockVetements(t *testing.T) {
	p := &Product{Sizes: []SizeStock{{Size: "S", Stock: 2}, {Size: "XL", Stock: 1}}}
	if err := ValidateStock(CategoryVetements, p); err != nil {
		t.Fatalf("letter sizes rejected: %v", err)
	}

	p = &Product{Sizes: []SizeStock{{Size: "42", Stock: 2}}}
	if err := ValidateStock(CategoryVetements, p); err == nil {
		t.Fatalf("numeric size accepted for clothing")
	}
}

func TestValidateStockBijoux(t *testing.T) {
	p := &Product{Colors: []ColorStock{{Color: "or", Stock: 5}}}
	if err := ValidateStock(CategoryBijoux, p); err != nil {
		t.Fatalf("colors rejected: %v", err)
	}

	p = &Product{Colors: []ColorStock{{Color: "or", Stock: 5}}, Stock: 3}
	if err := ValidateStock(CategoryBijoux, p); err == nil {
		t.Fatalf("mixed color and flat stock accepted")
	}

	p = &Product{}
	if err := ValidateStock(CategoryBijoux, p); err == nil {
		t.Fatalf("jewelry without colors accepted")
	}
}

func TestValidateStockAutre(t *testing.T) {
	p := &Product{Stock: 10}
	if err := ValidateStock(CategoryAutre, p); err != nil {
		t.Fatalf("flat stock rejected: %v", err)
	}

	p = &Product{Stock: 10, Sizes: []SizeStock{{Size: "M", Stock: 1}}}
	if err := ValidateStock(CategoryAutre, p); err == nil {
		t.Fatalf("sizes accepted for flat-stock category")
	}

	p = &Product{Stock: -1}
	if err := ValidateStock(CategoryAutre, p); err == nil {
		t.Fatalf("negative stock accepted")
	}
}

func TestValidateStockRepresentationsAreExclusive(t *testing.T) {
	p := &Product{
		Sizes:  []SizeStock{{Size: "40", Stock: 1}},
		Colors: []ColorStock{{Color: "noir", Stock: 1}},
	}
	for _, categoryType := range []string{CategoryChaussures, CategoryVetements, CategoryBijoux, CategoryAutre} {
		if err := ValidateStock(categoryType, p); err == nil {
			t.Errorf("category %s accepted both sizes and colors", categoryType)
		}
	}
}

func TestValidateStockUnknownCategoryType(t *testing.T) {
	if err := ValidateStock("meubles", &Product{Stock: 1}); err == nil {
		t.Fatalf("unknown category type accepted")
	}
	if ValidCategoryType("meubles") {
		t.Fatalf("ValidCategoryType accepted an unknown type")
	}
}
