package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name" binding:"required"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Price       float64            `bson:"price" json:"price"`
	CategoryID  string             `bson:"categoryId" json:"categoryId" binding:"required"`
	BrandID     string             `bson:"brandId,omitempty" json:"brandId,omitempty"`
	Images      []string           `bson:"images,omitempty" json:"images,omitempty"`

	// Exactly one of the three stock representations is populated, driven by
	// the category's type. See ValidateStock.
	Sizes  []SizeStock  `bson:"sizes,omitempty" json:"sizes,omitempty"`
	Colors []ColorStock `bson:"colors,omitempty" json:"colors,omitempty"`
	Stock  int          `bson:"stock,omitempty" json:"stock,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

type SizeStock struct {
	Size  string `bson:"size" json:"size"`
	Stock int    `bson:"stock" json:"stock"`
}

type ColorStock struct {
	Color string `bson:"color" json:"color"`
	Stock int    `bson:"stock" json:"stock"`
}

type Category struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name" binding:"required"`
	CategoryType string             `bson:"categoryType" json:"categoryType" binding:"required"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type Brand struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name" binding:"required"`
	Logo      string             `bson:"logo,omitempty" json:"logo,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
