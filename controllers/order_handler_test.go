package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"boutique-service/database"
)

const checkoutBody = `{"name":"Ali","phone":"123","address":"X","items":[{"id":"p1","name":"Shirt","price":20,"quantity":2}],"total":40`

// Checkout can only open orders: a caller-supplied status in any state other
// than pending would skip the completion side effects (sale conversion,
// completed event), so it is rejected before anything is stored.
func TestCreateOrderRejectsNonPendingStatus(t *testing.T) {
	statuses := []string{
		"terminee", "completed",
		"annulee", "cancelled",
		"en_cours", "processing",
		"confirmee", "confirmed",
		"en_livraison", "shipping",
	}
	for _, status := range statuses {
		body := checkoutBody + fmt.Sprintf(`,"status":%q}`, status)
		w := performRequest(CreateOrder, http.MethodPost, "/api/orders", body, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("checkout accepted status %q: code %d body %s", status, w.Code, w.Body.String())
		}
	}

	w := performRequest(CreateOrder, http.MethodPost, "/api/orders", checkoutBody+`,"status":"livree"}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("checkout accepted an unknown status: code %d", w.Code)
	}
}

func TestCreateOrderStoresPending(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	insertedStatus := func(mt *mtest.T) string {
		evt := mt.GetStartedEvent()
		if evt == nil || evt.CommandName != "insert" {
			mt.Fatalf("expected an insert command, got %+v", evt)
		}
		var cmd struct {
			Documents []struct {
				Status string `bson:"status"`
			} `bson:"documents"`
		}
		if err := bson.Unmarshal(evt.Command, &cmd); err != nil {
			mt.Fatalf("decode insert command: %v", err)
		}
		if len(cmd.Documents) != 1 {
			mt.Fatalf("expected 1 inserted document, got %d", len(cmd.Documents))
		}
		return cmd.Documents[0].Status
	}

	mt.Run("status defaults to pending when omitted", func(mt *mtest.T) {
		database.SetDatabase(mt.Coll.Database())
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		w := performRequest(CreateOrder, http.MethodPost, "/api/orders", checkoutBody+`}`, nil)
		if w.Code != http.StatusCreated {
			mt.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
		}
		if status := insertedStatus(mt); status != "pending" {
			mt.Fatalf("stored status = %q, want pending", status)
		}
	})

	mt.Run("legacy pending spelling is normalized", func(mt *mtest.T) {
		database.SetDatabase(mt.Coll.Database())
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		w := performRequest(CreateOrder, http.MethodPost, "/api/orders", checkoutBody+`,"status":"en_attente"}`, nil)
		if w.Code != http.StatusCreated {
			mt.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
		}
		if status := insertedStatus(mt); status != "pending" {
			mt.Fatalf("stored status = %q, want pending", status)
		}
	})
}

// Malformed ids never reach the store: this is the no-op half of the
// sale -> order cascade, which deletes by a weak string reference.
func TestDeleteOrderMalformedIDIsNoOp(t *testing.T) {
	params := gin.Params{{Key: "id", Value: "not-a-hex-id"}}
	w := performRequest(DeleteOrder, http.MethodDelete, "/api/orders/not-a-hex-id", "", params)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for malformed id, got %d body=%s", w.Code, w.Body.String())
	}
}

func TestDeleteOrderUnknownIDCascades(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("unknown id succeeds and cascades to the linked sale", func(mt *mtest.T) {
		database.SetDatabase(mt.Coll.Database())
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(), // orders delete
			mtest.CreateSuccessResponse(), // sales cascade delete
		)

		orderID := primitive.NewObjectID().Hex()
		params := gin.Params{{Key: "id", Value: orderID}}
		w := performRequest(DeleteOrder, http.MethodDelete, "/api/orders/"+orderID, "", params)
		if w.Code != http.StatusOK {
			mt.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
		}

		var cmd struct {
			Collection string `bson:"delete"`
			Deletes    []struct {
				Q bson.M `bson:"q"`
			} `bson:"deletes"`
		}

		evt := mt.GetStartedEvent()
		if evt == nil || evt.CommandName != "delete" {
			mt.Fatalf("expected a delete command first, got %+v", evt)
		}
		if err := bson.Unmarshal(evt.Command, &cmd); err != nil {
			mt.Fatalf("decode delete command: %v", err)
		}
		if cmd.Collection != "orders" {
			mt.Fatalf("first delete targeted %q, want orders", cmd.Collection)
		}

		evt = mt.GetStartedEvent()
		if evt == nil || evt.CommandName != "delete" {
			mt.Fatalf("expected a cascading delete command, got %+v", evt)
		}
		if err := bson.Unmarshal(evt.Command, &cmd); err != nil {
			mt.Fatalf("decode cascade command: %v", err)
		}
		if cmd.Collection != "sales" {
			mt.Fatalf("cascade targeted %q, want sales", cmd.Collection)
		}
		if len(cmd.Deletes) != 1 || cmd.Deletes[0].Q["orderId"] != orderID {
			mt.Fatalf("cascade filter = %+v, want orderId=%s", cmd.Deletes, orderID)
		}
	})
}
