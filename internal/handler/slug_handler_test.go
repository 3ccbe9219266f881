package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/driftpress/internal/db"
	"github.com/gin-gonic/gin"
)

func performGET(t *testing.T, handle gin.HandlerFunc, target string) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)

	handle(c)
	return w
}

func TestCheckSlugAvailable(t *testing.T) {
	api := setupTestAPI(t)

	w := performGET(t, api.CheckSlug, "/api/slug/check?slug=fresh-slug&type=post")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp struct {
		Available bool   `json:"available"`
		Message   string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Available {
		t.Fatalf("expected slug to be available, got message %q", resp.Message)
	}
}

func TestCheckSlugTaken(t *testing.T) {
	api := setupTestAPI(t)

	if err := api.DB().Create(&db.Post{Title: "Taken", Slug: "taken", Status: db.StatusDraft}).Error; err != nil {
		t.Fatalf("failed to seed post: %v", err)
	}

	w := performGET(t, api.CheckSlug, "/api/slug/check?slug=taken&type=post")

	var resp struct {
		Available bool `json:"available"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Available {
		t.Fatal("expected slug to be reported taken")
	}
}

func TestCheckSlugExcludeSelf(t *testing.T) {
	api := setupTestAPI(t)

	post := db.Post{Title: "Mine", Slug: "mine", Status: db.StatusDraft}
	if err := api.DB().Create(&post).Error; err != nil {
		t.Fatalf("failed to seed post: %v", err)
	}

	w := performGET(t, api.CheckSlug, fmt.Sprintf("/api/slug/check?slug=mine&type=post&excludeId=%d", post.ID))

	var resp struct {
		Available bool `json:"available"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Available {
		t.Fatal("expected own slug to be available when excluded")
	}
}

func TestCheckSlugInvalidFormat(t *testing.T) {
	api := setupTestAPI(t)

	w := performGET(t, api.CheckSlug, "/api/slug/check?slug=Not%20Valid&type=post")

	var resp struct {
		Available bool   `json:"available"`
		Message   string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Available {
		t.Fatal("expected invalid slug to be unavailable")
	}
	if resp.Message == "" {
		t.Fatal("expected a format message for invalid slug")
	}
}

func TestSuggestSlugsRequiresBase(t *testing.T) {
	api := setupTestAPI(t)

	w := performGET(t, api.SuggestSlugs, "/api/slug/suggest?slug=&type=post")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

func TestSuggestSlugsSkipsTaken(t *testing.T) {
	api := setupTestAPI(t)

	for _, s := range []string{"guide", "guide-1"} {
		if err := api.DB().Create(&db.Post{Title: s, Slug: s, Status: db.StatusDraft}).Error; err != nil {
			t.Fatalf("failed to seed post: %v", err)
		}
	}

	w := performGET(t, api.SuggestSlugs, "/api/slug/suggest?slug=guide&type=post")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp struct {
		Suggestions []string `json:"suggestions"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Suggestions) == 0 {
		t.Fatal("expected suggestions")
	}
	for _, s := range resp.Suggestions {
		if s == "guide" || s == "guide-1" {
			t.Fatalf("suggestion %q is already taken", s)
		}
	}
}
