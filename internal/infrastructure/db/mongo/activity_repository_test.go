package mongo

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/cinemind/studio-api/internal/core/domain"
)

func TestNewActivityDocument(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.FixedZone("CEST", 2*3600))
	occurred := now.Add(-time.Second)

	doc := newActivityDocument(domain.Activity{
		Kind:       domain.ActivityLogin,
		AccountID:  7,
		Details:    map[string]string{"email": "elias@studio.io"},
		OccurredAt: occurred,
	}, now)

	if doc.Kind != "login" || doc.AccountID != 7 {
		t.Errorf("unexpected doc: %+v", doc)
	}
	if !doc.OccurredAt.Equal(occurred) || doc.OccurredAt.Location() != time.UTC {
		t.Errorf("OccurredAt = %v, want %v in UTC", doc.OccurredAt, occurred)
	}

	raw, err := bson.Marshal(doc)
	if err != nil {
		t.Fatalf("bson.Marshal err: %v", err)
	}
	var back bson.M
	if err := bson.Unmarshal(raw, &back); err != nil {
		t.Fatalf("bson.Unmarshal err: %v", err)
	}
	if _, ok := back["_id"]; ok {
		t.Error("zero ObjectID should be omitted so the server assigns one")
	}
	if back["kind"] != "login" {
		t.Errorf("kind = %v", back["kind"])
	}
}

func TestNewActivityDocument_DefaultsOccurredAt(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	doc := newActivityDocument(domain.Activity{Kind: domain.ActivityVideoRender}, now)
	if !doc.OccurredAt.Equal(now) {
		t.Errorf("OccurredAt = %v, want %v", doc.OccurredAt, now)
	}

	raw, err := bson.Marshal(doc)
	if err != nil {
		t.Fatalf("bson.Marshal err: %v", err)
	}
	var back bson.M
	if err := bson.Unmarshal(raw, &back); err != nil {
		t.Fatalf("bson.Unmarshal err: %v", err)
	}
	if _, ok := back["account_id"]; ok {
		t.Error("anonymous activity should not carry account_id")
	}
}
