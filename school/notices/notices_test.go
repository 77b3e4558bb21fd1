package notices

import (
	"context"
	"testing"

	"github.com/edusuite/edusuite/data/docstore"
)

func TestPostAndSearch(t *testing.T) {
	ctx := context.Background()
	b := NewBoard(docstore.NewMemoryStore())

	if _, err := b.Post(ctx, Notice{Title: "No details"}); err == nil {
		t.Error("notice without details accepted")
	}

	seeds := []Notice{
		{Title: "Sports Day", Details: "Annual sports day", PostedBy: "Principal", Date: "2026-01-10"},
		{Title: "Holiday", Details: "School closed", PostedBy: "Admin", Date: "2026-02-01"},
		{Title: "Sports Trials", Details: "Selection trials", PostedBy: "PE Dept", Date: "2026-01-05"},
	}
	for _, n := range seeds {
		if _, err := b.Post(ctx, n); err != nil {
			t.Fatalf("post %s: %v", n.Title, err)
		}
	}

	all, err := b.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 || all[0].Title != "Holiday" {
		t.Errorf("newest first ordering broken: %+v", all)
	}

	sports, err := b.Search(ctx, "sports", "")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(sports) != 2 {
		t.Errorf("title search matched %d", len(sports))
	}

	dated, err := b.Search(ctx, "", "2026-02-01")
	if err != nil {
		t.Fatalf("search by date: %v", err)
	}
	if len(dated) != 1 || dated[0].Title != "Holiday" {
		t.Errorf("date search = %+v", dated)
	}
}

func TestDeleteNotice(t *testing.T) {
	ctx := context.Background()
	b := NewBoard(docstore.NewMemoryStore())

	n, err := b.Post(ctx, Notice{Title: "Holiday", Details: "School closed", Date: "2026-02-01"})
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	if err := b.Delete(ctx, n.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	remaining, _ := b.List(ctx)
	if len(remaining) != 0 {
		t.Errorf("%d notices remain", len(remaining))
	}
}
