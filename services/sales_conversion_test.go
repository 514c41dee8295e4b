package services

import (
	"context"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"boutique-service/database"
	"boutique-service/models"
)

func conversionOrder() *models.Order {
	return &models.Order{
		ID:            primitive.NewObjectID(),
		Name:          "Ali",
		Phone:         "123",
		Address:       "X",
		PaymentMethod: "cash",
		Total:         40,
		Items: []models.OrderItem{
			{ProductID: "p1", Name: "Shirt", Price: 20, Quantity: 2},
		},
	}
}

func TestEnsureSaleForOrderCreatesOnce(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("first completion inserts the sale", func(mt *mtest.T) {
		database.SetDatabase(mt.Coll.Database())
		order := conversionOrder()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "boutique.sales", mtest.FirstBatch),
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
		)

		sale, err := EnsureSaleForOrder(context.Background(), order)
		if err != nil {
			mt.Fatalf("EnsureSaleForOrder: %v", err)
		}
		if sale.OrderID != order.ID.Hex() {
			mt.Fatalf("sale.OrderID = %q, want %q", sale.OrderID, order.ID.Hex())
		}
		if !strings.HasPrefix(sale.ReceiptNumber, "RC-") {
			mt.Fatalf("receipt %q missing RC- prefix", sale.ReceiptNumber)
		}
		if len(sale.Items) != 1 || sale.Items[0].Name != "Shirt" || sale.Items[0].Quantity != 2 {
			mt.Fatalf("sale items not copied from order: %+v", sale.Items)
		}
		if sale.Total != order.Total {
			mt.Fatalf("sale total %v, want %v", sale.Total, order.Total)
		}

		for _, want := range []string{"find", "insert", "update"} {
			evt := mt.GetStartedEvent()
			if evt == nil || evt.CommandName != want {
				mt.Fatalf("expected %s command, got %+v", want, evt)
			}
		}
	})

	mt.Run("repeat completion returns the existing sale", func(mt *mtest.T) {
		database.SetDatabase(mt.Coll.Database())
		order := conversionOrder()
		existingID := primitive.NewObjectID()
		existingDoc := bson.D{
			{Key: "_id", Value: existingID},
			{Key: "orderId", Value: order.ID.Hex()},
			{Key: "customerName", Value: order.Name},
			{Key: "total", Value: order.Total},
			{Key: "receiptNumber", Value: "RC-AABBCCDD"},
		}
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "boutique.sales", mtest.FirstBatch, existingDoc),
			mtest.CreateSuccessResponse(),
		)

		sale, err := EnsureSaleForOrder(context.Background(), order)
		if err != nil {
			mt.Fatalf("EnsureSaleForOrder: %v", err)
		}
		if sale.ID != existingID {
			mt.Fatalf("expected the existing sale %s back, got %s", existingID.Hex(), sale.ID.Hex())
		}
		if sale.ReceiptNumber != "RC-AABBCCDD" {
			mt.Fatalf("existing receipt replaced: %q", sale.ReceiptNumber)
		}

		// Only a find plus the marker cleanup: no second sale is written.
		for _, want := range []string{"find", "update"} {
			evt := mt.GetStartedEvent()
			if evt == nil || evt.CommandName != want {
				mt.Fatalf("expected %s command, got %+v", want, evt)
			}
		}
		if evt := mt.GetStartedEvent(); evt != nil {
			mt.Fatalf("unexpected extra command %s", evt.CommandName)
		}
	})
}

func TestEnsureSaleForOrderClearsMarker(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("marker unset targets the order", func(mt *mtest.T) {
		database.SetDatabase(mt.Coll.Database())
		order := conversionOrder()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "boutique.sales", mtest.FirstBatch),
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
		)

		if _, err := EnsureSaleForOrder(context.Background(), order); err != nil {
			mt.Fatalf("EnsureSaleForOrder: %v", err)
		}

		var evt *struct {
			CommandName string
			Command     bson.Raw
		}
		for {
			started := mt.GetStartedEvent()
			if started == nil {
				break
			}
			if started.CommandName == "update" {
				evt = &struct {
					CommandName string
					Command     bson.Raw
				}{started.CommandName, started.Command}
			}
		}
		if evt == nil {
			mt.Fatalf("no update command recorded")
		}

		var cmd struct {
			Updates []struct {
				Q bson.M `bson:"q"`
				U bson.M `bson:"u"`
			} `bson:"updates"`
		}
		if err := bson.Unmarshal(evt.Command, &cmd); err != nil {
			mt.Fatalf("decode update command: %v", err)
		}
		if len(cmd.Updates) != 1 {
			mt.Fatalf("expected 1 update, got %d", len(cmd.Updates))
		}
		if _, ok := cmd.Updates[0].U["$unset"]; !ok {
			mt.Fatalf("update %+v does not unset the pending marker", cmd.Updates[0].U)
		}
	})
}
