package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	client *mongo.Client
	db     *mongo.Database
)

// InitDB connects to MongoDB and pings it before handing out collections.
func InitDB(uri, dbName string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return err
	}

	if err := c.Ping(ctx, nil); err != nil {
		return err
	}

	client = c
	db = c.Database(dbName)
	log.Printf("Connected to MongoDB database %q", dbName)
	return nil
}

// SetDatabase swaps the active database handle. Handler tests use it to
// point the package at a mock client.
func SetDatabase(d *mongo.Database) {
	db = d
}

func CloseDB() {
	if client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		log.Printf("Error disconnecting from MongoDB: %v", err)
	}
}

func Orders() *mongo.Collection         { return db.Collection("orders") }
func Sales() *mongo.Collection          { return db.Collection("sales") }
func Notifications() *mongo.Collection  { return db.Collection("notifications") }
func Products() *mongo.Collection       { return db.Collection("products") }
func Categories() *mongo.Collection     { return db.Collection("categories") }
func Brands() *mongo.Collection         { return db.Collection("brands") }
func Users() *mongo.Collection          { return db.Collection("users") }
func Contacts() *mongo.Collection       { return db.Collection("contacts") }
func Advertisements() *mongo.Collection { return db.Collection("advertisements") }
