package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/driftpress/internal/config"
	"github.com/driftpress/internal/db"
)

func TestCheckAvailabilityRejectsInvalidFormat(t *testing.T) {
	gdb := setupServiceTestDB(t)
	slugs := NewSlugService(gdb, config.SlugCheckFailOpen)

	for _, bad := range []string{"", "a", "Hello", "two--dashes", "-lead", "trail-"} {
		result := slugs.CheckAvailability(bad, db.TypePost, 0)
		if result.Available {
			t.Errorf("expected %q to be unavailable", bad)
		}
		if result.Message == "" {
			t.Errorf("expected a format message for %q", bad)
		}
	}
}

func TestCheckAvailabilityScopedPerType(t *testing.T) {
	gdb := setupServiceTestDB(t)
	slugs := NewSlugService(gdb, config.SlugCheckFailOpen)
	posts := NewPostService(gdb)

	post, err := posts.Create(PostInput{Title: "Shared Name"})
	if err != nil {
		t.Fatalf("failed to seed post: %v", err)
	}

	if slugs.CheckAvailability(post.Slug, db.TypePost, 0).Available {
		t.Error("expected taken post slug to be unavailable for posts")
	}
	if !slugs.CheckAvailability(post.Slug, db.TypeService, 0).Available {
		t.Error("expected slug to be available for a different content type")
	}
}

func TestCheckAvailabilityExcludesOwnRecord(t *testing.T) {
	gdb := setupServiceTestDB(t)
	slugs := NewSlugService(gdb, config.SlugCheckFailOpen)
	posts := NewPostService(gdb)

	post, err := posts.Create(PostInput{Title: "Editing Myself"})
	if err != nil {
		t.Fatalf("failed to seed post: %v", err)
	}

	if !slugs.CheckAvailability(post.Slug, db.TypePost, post.ID).Available {
		t.Error("expected an entity re-checking its own slug to see it as available")
	}
}

func TestCheckAvailabilityFailurePolicy(t *testing.T) {
	gdb := setupServiceTestDB(t)

	// Closing the underlying connection makes every lookup fail.
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("failed to access sql db: %v", err)
	}
	sqlDB.Close()

	open := NewSlugService(gdb, config.SlugCheckFailOpen)
	if !open.CheckAvailability("some-slug", db.TypePost, 0).Available {
		t.Error("fail-open mode should report available on storage failure")
	}

	closed := NewSlugService(gdb, config.SlugCheckFailClosed)
	if closed.CheckAvailability("some-slug", db.TypePost, 0).Available {
		t.Error("fail-closed mode should report unavailable on storage failure")
	}
}

func TestSuggestAlternatives(t *testing.T) {
	gdb := setupServiceTestDB(t)
	slugs := NewSlugService(gdb, config.SlugCheckFailOpen)
	posts := NewPostService(gdb)

	// Occupy the base and the first numeric alternative.
	if _, err := posts.Create(PostInput{Title: "Guide", Slug: "guide"}); err != nil {
		t.Fatalf("failed to seed post: %v", err)
	}
	if _, err := posts.Create(PostInput{Title: "Guide", Slug: "guide-1"}); err != nil {
		t.Fatalf("failed to seed post: %v", err)
	}

	got := slugs.SuggestAlternatives("guide", db.TypePost)

	want := []string{
		"guide-2",
		"guide-3",
		"guide-4",
		fmt.Sprintf("guide-%d", time.Now().Year()),
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d suggestions, got %v", len(want), got)
	}
	for i, s := range got {
		if s != want[i] {
			t.Errorf("suggestion %d = %q, want %q", i, s, want[i])
		}
	}
}
