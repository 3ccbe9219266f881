package service

import (
	"testing"

	"github.com/driftpress/internal/db"
)

func TestCreatePostGeneratesSlugFromTitle(t *testing.T) {
	gdb := setupServiceTestDB(t)
	posts := NewPostService(gdb)

	post, err := posts.Create(PostInput{Title: "Hello, World!"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if post.Slug != "hello-world" {
		t.Errorf("expected slug hello-world, got %q", post.Slug)
	}
	if post.Status != db.StatusDraft {
		t.Errorf("expected default draft status, got %q", post.Status)
	}
}

func TestCreatePostUniquifiesCollidingSlug(t *testing.T) {
	gdb := setupServiceTestDB(t)
	posts := NewPostService(gdb)

	first, err := posts.Create(PostInput{Title: "Hello World"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	second, err := posts.Create(PostInput{Title: "Hello World"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if first.Slug != "hello-world" || second.Slug != "hello-world-1" {
		t.Errorf("expected hello-world and hello-world-1, got %q and %q", first.Slug, second.Slug)
	}
}

func TestCreatePostRequiresTitle(t *testing.T) {
	gdb := setupServiceTestDB(t)
	posts := NewPostService(gdb)

	if _, err := posts.Create(PostInput{Title: "  "}); err != ErrTitleRequired {
		t.Fatalf("expected ErrTitleRequired, got %v", err)
	}
}

func TestCreatePostRejectsUnknownStatus(t *testing.T) {
	gdb := setupServiceTestDB(t)
	posts := NewPostService(gdb)

	if _, err := posts.Create(PostInput{Title: "x y", Status: "pending"}); err != ErrStatusInvalid {
		t.Fatalf("expected ErrStatusInvalid, got %v", err)
	}
}

func TestUpdatePostKeepsOwnSlugOnResave(t *testing.T) {
	gdb := setupServiceTestDB(t)
	posts := NewPostService(gdb)

	post, err := posts.Create(PostInput{Title: "My Post"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	updated, err := posts.Update(post.Slug, PostInput{Title: "My Post", Summary: "now with summary"})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	if updated.Slug != "my-post" {
		t.Errorf("re-saving should keep the slug, got %q", updated.Slug)
	}
	if updated.Summary != "now with summary" {
		t.Errorf("expected summary update, got %q", updated.Summary)
	}
}

func TestUpdatePostUnknownSlug(t *testing.T) {
	gdb := setupServiceTestDB(t)
	posts := NewPostService(gdb)

	if _, err := posts.Update("missing", PostInput{Title: "Anything"}); err != ErrPostNotFound {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestPublishStampsTimestampOnce(t *testing.T) {
	gdb := setupServiceTestDB(t)
	posts := NewPostService(gdb)

	post, err := posts.Create(PostInput{Title: "Slow Burn"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if post.PublishedAt != nil {
		t.Fatal("draft should not carry publishedAt")
	}

	published, err := posts.Update(post.Slug, PostInput{Title: "Slow Burn", Status: db.StatusPublished})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if published.PublishedAt == nil {
		t.Fatal("publishing should stamp publishedAt")
	}

	stamp := *published.PublishedAt
	again, err := posts.Update(post.Slug, PostInput{Title: "Slow Burn", Status: db.StatusPublished})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if again.PublishedAt == nil || !again.PublishedAt.Equal(stamp) {
		t.Error("re-saving a published post should not move publishedAt")
	}
}

func TestListPostsDefaultsToPublished(t *testing.T) {
	gdb := setupServiceTestDB(t)
	posts := NewPostService(gdb)

	if _, err := posts.Create(PostInput{Title: "Draft One"}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := posts.Create(PostInput{Title: "Live One", Status: db.StatusPublished}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	result, err := posts.List(PostFilter{})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(result.Posts) != 1 || result.Posts[0].Title != "Live One" {
		t.Fatalf("expected only the published post, got %d posts", len(result.Posts))
	}

	all, err := posts.List(PostFilter{Status: StatusAll})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(all.Posts) != 2 {
		t.Fatalf("expected status=all to bypass the filter, got %d posts", len(all.Posts))
	}
	if all.PublishedCount != 1 || all.DraftCount != 1 {
		t.Errorf("expected counters 1/1, got %d/%d", all.PublishedCount, all.DraftCount)
	}
}

func TestListPostsSearch(t *testing.T) {
	gdb := setupServiceTestDB(t)
	posts := NewPostService(gdb)

	if _, err := posts.Create(PostInput{Title: "Gopher News", Status: db.StatusPublished}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := posts.Create(PostInput{Title: "Rust Roundup", Status: db.StatusPublished}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	result, err := posts.List(PostFilter{Search: "gopher", Status: StatusAll})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(result.Posts) != 1 || result.Posts[0].Title != "Gopher News" {
		t.Fatalf("expected search to match one post, got %d", len(result.Posts))
	}
}

func TestListPostsCountersIgnoreStatusFilter(t *testing.T) {
	gdb := setupServiceTestDB(t)
	posts := NewPostService(gdb)

	if _, err := posts.Create(PostInput{Title: "Still Drafting"}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := posts.Create(PostInput{Title: "Shipped", Status: db.StatusPublished}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	published, err := posts.List(PostFilter{})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if published.PublishedCount != 1 || published.DraftCount != 1 {
		t.Fatalf("default listing counters: got %d/%d, want 1/1", published.PublishedCount, published.DraftCount)
	}

	drafts, err := posts.List(PostFilter{Status: db.StatusDraft})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(drafts.Posts) != 1 || drafts.Posts[0].Title != "Still Drafting" {
		t.Fatalf("expected only the draft post, got %d posts", len(drafts.Posts))
	}
	if drafts.PublishedCount != 1 || drafts.DraftCount != 1 {
		t.Fatalf("draft listing counters: got %d/%d, want 1/1", drafts.PublishedCount, drafts.DraftCount)
	}
}

func TestListPostsCountersRespectSearch(t *testing.T) {
	gdb := setupServiceTestDB(t)
	posts := NewPostService(gdb)

	if _, err := posts.Create(PostInput{Title: "Gopher Draft"}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := posts.Create(PostInput{Title: "Gopher Live", Status: db.StatusPublished}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := posts.Create(PostInput{Title: "Rust Live", Status: db.StatusPublished}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	result, err := posts.List(PostFilter{Search: "gopher"})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if result.PublishedCount != 1 || result.DraftCount != 1 {
		t.Fatalf("search-scoped counters: got %d/%d, want 1/1", result.PublishedCount, result.DraftCount)
	}
}

func TestListPostsPagination(t *testing.T) {
	gdb := setupServiceTestDB(t)
	posts := NewPostService(gdb)

	for _, title := range []string{"One", "Two", "Three", "Four", "Five"} {
		if _, err := posts.Create(PostInput{Title: title, Status: db.StatusPublished}); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
	}

	first, err := posts.List(PostFilter{Page: 1, PerPage: 2})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(first.Posts) != 2 {
		t.Fatalf("expected 2 posts on first page, got %d", len(first.Posts))
	}
	if first.Total != 5 || first.TotalPages != 3 {
		t.Fatalf("expected total 5 across 3 pages, got %d/%d", first.Total, first.TotalPages)
	}

	last, err := posts.List(PostFilter{Page: 3, PerPage: 2})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(last.Posts) != 1 {
		t.Fatalf("expected 1 post on last page, got %d", len(last.Posts))
	}
}
