package repo

import (
	"context"
	"testing"
	"time"
)

func strptr(s string) *string { return &s }

func TestCreateGem_AndHashExists(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	exists, err := HashExists(ctx, db, "abc123")
	if err != nil {
		t.Fatalf("HashExists: %v", err)
	}
	if exists {
		t.Fatal("hash must not exist in empty store")
	}

	g, err := CreateGem(ctx, db, "abc123", "Title", "Body", "gem", "grace", strptr("user-1"))
	if err != nil {
		t.Fatalf("CreateGem: %v", err)
	}
	if g.ID == "" || g.CreatedAt.IsZero() {
		t.Fatalf("gem not fully populated: %+v", g)
	}

	exists, err = HashExists(ctx, db, "abc123")
	if err != nil {
		t.Fatalf("HashExists: %v", err)
	}
	if !exists {
		t.Fatal("hash must exist after insert")
	}
}

func TestCountSince_ScopesByIdentity(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := CreateGem(ctx, db, "h-u"+string(rune('a'+i)), "t", "c", "gem", "", strptr("user-1")); err != nil {
			t.Fatalf("CreateGem: %v", err)
		}
	}
	if _, err := CreateGem(ctx, db, "h-anon", "t", "c", "gem", "", nil); err != nil {
		t.Fatalf("CreateGem anon: %v", err)
	}
	if _, err := CreateGem(ctx, db, "h-other", "t", "c", "gem", "", strptr("user-2")); err != nil {
		t.Fatalf("CreateGem other: %v", err)
	}

	since := time.Now().UTC().Add(-time.Hour)

	n, err := CountSince(ctx, db, strptr("user-1"), since)
	if err != nil {
		t.Fatalf("CountSince user: %v", err)
	}
	if n != 3 {
		t.Fatalf("user-1 count = %d, want 3", n)
	}

	n, err = CountSince(ctx, db, nil, since)
	if err != nil {
		t.Fatalf("CountSince anon: %v", err)
	}
	if n != 1 {
		t.Fatalf("anon count = %d, want 1", n)
	}

	// Rows older than the bound do not count.
	n, err = CountSince(ctx, db, strptr("user-1"), time.Now().UTC().Add(time.Hour))
	if err != nil {
		t.Fatalf("CountSince future bound: %v", err)
	}
	if n != 0 {
		t.Fatalf("future-bounded count = %d, want 0", n)
	}
}

func TestGetGem(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	g, err := CreateGem(ctx, db, "h", "Title", "Body", "devotional", "rest", nil)
	if err != nil {
		t.Fatalf("CreateGem: %v", err)
	}

	got, err := GetGem(ctx, db, g.ID)
	if err != nil {
		t.Fatalf("GetGem: %v", err)
	}
	if got.Title != "Title" || got.Template != "devotional" {
		t.Fatalf("unexpected gem: %+v", got)
	}

	if _, err := GetGem(ctx, db, "missing"); err == nil {
		t.Fatal("expected error for missing gem")
	}
}

func TestListGemsPage_OrderAndPaging(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := CreateGem(ctx, db, "h"+string(rune('0'+i)), "t", "c", "gem", "", strptr("user-1")); err != nil {
			t.Fatalf("CreateGem: %v", err)
		}
		time.Sleep(2 * time.Millisecond) // distinct created_at ordering
	}

	total, err := CountGems(ctx, db, strptr("user-1"))
	if err != nil {
		t.Fatalf("CountGems: %v", err)
	}
	if total != 5 {
		t.Fatalf("total = %d, want 5", total)
	}

	page, err := ListGemsPage(ctx, db, strptr("user-1"), 0, 2)
	if err != nil {
		t.Fatalf("ListGemsPage: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("page len = %d, want 2", len(page))
	}
	if page[0].CreatedAt.Before(page[1].CreatedAt) {
		t.Fatal("expected most recent first")
	}

	rest, err := ListGemsPage(ctx, db, strptr("user-1"), 4, 2)
	if err != nil {
		t.Fatalf("ListGemsPage offset: %v", err)
	}
	if len(rest) != 1 {
		t.Fatalf("tail page len = %d, want 1", len(rest))
	}
}
