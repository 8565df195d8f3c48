package session

import (
	"errors"
	"testing"
	"time"

	"salesboard/domain/core"
	"salesboard/domain/table"
)

func smallTable() *table.Table {
	t := table.New("price")
	t.AppendRow(table.Row{"price": table.NewNumericValue(10)})
	return t
}

func TestCreateAndGet(t *testing.T) {
	store := NewStore(time.Hour, 8)
	sess := store.Create("sales.csv", smallTable())

	if sess.ID == "" {
		t.Fatal("session has no ID")
	}

	got, err := store.Get(sess.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Filename != "sales.csv" {
		t.Errorf("filename = %q", got.Filename)
	}
}

func TestGetUnknownSession(t *testing.T) {
	store := NewStore(time.Hour, 8)
	_, err := store.Get(core.SessionID("nope"))
	if !errors.Is(err, core.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestGetExpiredSession(t *testing.T) {
	store := NewStore(time.Millisecond, 8)
	sess := store.Create("sales.csv", smallTable())

	time.Sleep(5 * time.Millisecond)

	if _, err := store.Get(sess.ID); !errors.Is(err, core.ErrSessionNotFound) {
		t.Errorf("expected expiry, got %v", err)
	}
}

func TestEvictionAtCapacity(t *testing.T) {
	store := NewStore(time.Hour, 2)

	first := store.Create("a.csv", smallTable())
	time.Sleep(time.Millisecond)
	store.Create("b.csv", smallTable())
	time.Sleep(time.Millisecond)
	store.Create("c.csv", smallTable())

	if store.Len() != 2 {
		t.Errorf("expected 2 live sessions, got %d", store.Len())
	}
	if _, err := store.Get(first.ID); err == nil {
		t.Error("oldest session should have been evicted")
	}
}

func TestDelete(t *testing.T) {
	store := NewStore(time.Hour, 8)
	sess := store.Create("a.csv", smallTable())

	store.Delete(sess.ID)
	if _, err := store.Get(sess.ID); err == nil {
		t.Error("deleted session still retrievable")
	}
}

func TestRequestWithoutMapping(t *testing.T) {
	store := NewStore(time.Hour, 8)
	sess := store.Create("a.csv", smallTable())

	req := sess.Request()
	if req.Mapping == nil {
		t.Fatal("request should carry an empty mapping, not nil")
	}
	if req.Mapping.Len() != 0 {
		t.Errorf("fresh session has %d mappings", req.Mapping.Len())
	}
}
