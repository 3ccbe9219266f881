package handler

import (
	"net/http"
	"strings"

	"github.com/driftpress/internal/slug"
	"github.com/gin-gonic/gin"
)

// CheckSlug answers whether a slug may be used for a content type.
// GET /api/slug/check?slug=&type=&excludeId=
func (a *API) CheckSlug(c *gin.Context) {
	candidate := strings.TrimSpace(c.Query("slug"))
	ctype := strings.TrimSpace(c.Query("type"))

	result := a.slugs.CheckAvailability(candidate, ctype, queryUint(c, "excludeId"))

	c.JSON(http.StatusOK, gin.H{
		"slug":      candidate,
		"available": result.Available,
		"message":   result.Message,
	})
}

// SuggestSlugs proposes free alternatives near a taken slug.
// GET /api/slug/suggest?slug=&type=
func (a *API) SuggestSlugs(c *gin.Context) {
	base := slug.Generate(c.Query("slug"))
	ctype := strings.TrimSpace(c.Query("type"))

	if base == "" {
		respondError(c, http.StatusBadRequest, "slug is required")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"slug":        base,
		"suggestions": a.slugs.SuggestAlternatives(base, ctype),
	})
}
