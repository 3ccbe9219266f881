package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/driftpress/internal/db"
	"github.com/driftpress/internal/service"
	"github.com/gin-gonic/gin"
)

// postPayload is the wire shape of a post with its child collections.
type postPayload struct {
	*db.Post
	ContentHTML string               `json:"contentHtml,omitempty"`
	Gallery     []db.GalleryItem     `json:"gallery"`
	Downloads   []db.DownloadItem    `json:"downloads"`
	FAQs        []db.FAQItem         `json:"faqs"`
	Related     []service.RelatedRef `json:"related"`
}

func newPostPayload(post *db.Post, rels *service.RelationSet, withHTML bool) postPayload {
	payload := postPayload{
		Post:      post,
		Gallery:   rels.Gallery,
		Downloads: rels.Downloads,
		FAQs:      rels.FAQs,
		Related:   rels.Related,
	}
	if withHTML {
		payload.ContentHTML = renderMarkdown(post.Content)
	}
	return payload
}

// GetPosts 获取文章列表
func (a *API) GetPosts(c *gin.Context) {
	filter := service.PostFilter{
		Search:  c.Query("search"),
		Status:  c.Query("status"),
		Page:    queryInt(c, "page"),
		PerPage: queryInt(c, "perPage"),
	}

	result, err := a.posts.List(filter)
	if err != nil {
		// List reads degrade to an empty result instead of propagating.
		log.Printf("failed to list posts: %v", err)
		c.JSON(http.StatusOK, gin.H{"posts": []postPayload{}, "total": 0})
		return
	}

	if !queryBool(c, "relations") {
		c.JSON(http.StatusOK, gin.H{
			"posts":          result.Posts,
			"total":          result.Total,
			"totalPages":     result.TotalPages,
			"page":           result.Page,
			"perPage":        result.PerPage,
			"publishedCount": result.PublishedCount,
			"draftCount":     result.DraftCount,
		})
		return
	}

	ids := make([]uint, len(result.Posts))
	for i, p := range result.Posts {
		ids[i] = p.ID
	}

	sets, err := a.posts.Relations(ids)
	if err != nil {
		log.Printf("failed to load post relations: %v", err)
		c.JSON(http.StatusOK, gin.H{"posts": []postPayload{}, "total": 0})
		return
	}

	payloads := make([]postPayload, len(result.Posts))
	for i := range result.Posts {
		payloads[i] = newPostPayload(&result.Posts[i], sets[result.Posts[i].ID], false)
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":          payloads,
		"total":          result.Total,
		"totalPages":     result.TotalPages,
		"page":           result.Page,
		"perPage":        result.PerPage,
		"publishedCount": result.PublishedCount,
		"draftCount":     result.DraftCount,
	})
}

// GetPost 获取单篇文章及其全部子集合
func (a *API) GetPost(c *gin.Context) {
	post, rels, err := a.posts.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			respondError(c, http.StatusNotFound, "post not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to load post")
		return
	}

	c.JSON(http.StatusOK, newPostPayload(post, rels, true))
}

// CreatePost 创建新文章
func (a *API) CreatePost(c *gin.Context) {
	var input service.PostInput
	if !bindJSON(c, &input, "invalid post payload") {
		return
	}

	created, err := a.posts.Create(input)
	if err != nil {
		a.respondPostError(c, err)
		return
	}

	post, rels, err := a.posts.GetBySlug(created.Slug)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to reload post")
		return
	}

	c.JSON(http.StatusCreated, newPostPayload(post, rels, false))
}

// UpdatePost 更新文章，整体替换提交的子集合
func (a *API) UpdatePost(c *gin.Context) {
	var input service.PostInput
	if !bindJSON(c, &input, "invalid post payload") {
		return
	}

	updated, err := a.posts.Update(c.Param("slug"), input)
	if err != nil {
		a.respondPostError(c, err)
		return
	}

	post, rels, err := a.posts.GetBySlug(updated.Slug)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to reload post")
		return
	}

	c.JSON(http.StatusOK, newPostPayload(post, rels, false))
}

// DeletePost 删除文章并级联子集合
func (a *API) DeletePost(c *gin.Context) {
	if err := a.posts.Delete(c.Param("slug")); err != nil {
		a.respondPostError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "post deleted"})
}

func (a *API) respondPostError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPostNotFound):
		respondError(c, http.StatusNotFound, "post not found")
	case errors.Is(err, service.ErrTitleRequired), errors.Is(err, service.ErrStatusInvalid):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		log.Printf("post operation failed: %v", err)
		respondError(c, http.StatusInternalServerError, "post operation failed")
	}
}
