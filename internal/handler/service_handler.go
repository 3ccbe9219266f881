package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/driftpress/internal/db"
	"github.com/driftpress/internal/service"
	"github.com/gin-gonic/gin"
)

// servicePayload is the wire shape of a catalog service with its child
// collections.
type servicePayload struct {
	*db.Service
	ContentHTML  string               `json:"contentHtml,omitempty"`
	Features     []db.Feature         `json:"features"`
	Packages     []db.Package         `json:"packages"`
	Problems     []db.ProblemItem     `json:"problems"`
	Solutions    []db.SolutionItem    `json:"solutions"`
	Testimonials []db.Testimonial     `json:"testimonials"`
	Gallery      []db.GalleryItem     `json:"gallery"`
	Downloads    []db.DownloadItem    `json:"downloads"`
	FAQs         []db.FAQItem         `json:"faqs"`
	Related      []service.RelatedRef `json:"related"`
}

func newServicePayload(svc *db.Service, rels *service.RelationSet, withHTML bool) servicePayload {
	payload := servicePayload{
		Service:      svc,
		Features:     rels.Features,
		Packages:     rels.Packages,
		Problems:     rels.Problems,
		Solutions:    rels.Solutions,
		Testimonials: rels.Testimonials,
		Gallery:      rels.Gallery,
		Downloads:    rels.Downloads,
		FAQs:         rels.FAQs,
		Related:      rels.Related,
	}
	if withHTML {
		payload.ContentHTML = renderMarkdown(svc.Content)
	}
	return payload
}

// GetServices 获取服务列表
func (a *API) GetServices(c *gin.Context) {
	filter := service.ServiceFilter{
		Search:  c.Query("search"),
		Status:  c.Query("status"),
		Page:    queryInt(c, "page"),
		PerPage: queryInt(c, "perPage"),
	}

	result, err := a.catalog.List(filter)
	if err != nil {
		log.Printf("failed to list services: %v", err)
		c.JSON(http.StatusOK, gin.H{"services": []servicePayload{}, "total": 0})
		return
	}

	if !queryBool(c, "relations") {
		c.JSON(http.StatusOK, gin.H{
			"services":       result.Services,
			"total":          result.Total,
			"totalPages":     result.TotalPages,
			"page":           result.Page,
			"perPage":        result.PerPage,
			"publishedCount": result.PublishedCount,
			"draftCount":     result.DraftCount,
		})
		return
	}

	ids := make([]uint, len(result.Services))
	for i, s := range result.Services {
		ids[i] = s.ID
	}

	sets, err := a.catalog.Relations(ids)
	if err != nil {
		log.Printf("failed to load service relations: %v", err)
		c.JSON(http.StatusOK, gin.H{"services": []servicePayload{}, "total": 0})
		return
	}

	payloads := make([]servicePayload, len(result.Services))
	for i := range result.Services {
		payloads[i] = newServicePayload(&result.Services[i], sets[result.Services[i].ID], false)
	}

	c.JSON(http.StatusOK, gin.H{
		"services":       payloads,
		"total":          result.Total,
		"totalPages":     result.TotalPages,
		"page":           result.Page,
		"perPage":        result.PerPage,
		"publishedCount": result.PublishedCount,
		"draftCount":     result.DraftCount,
	})
}

// GetService 获取单个服务及其全部子集合
func (a *API) GetService(c *gin.Context) {
	svc, rels, err := a.catalog.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrServiceNotFound) {
			respondError(c, http.StatusNotFound, "service not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to load service")
		return
	}

	c.JSON(http.StatusOK, newServicePayload(svc, rels, true))
}

// CreateService 创建新服务
func (a *API) CreateService(c *gin.Context) {
	var input service.ServiceInput
	if !bindJSON(c, &input, "invalid service payload") {
		return
	}

	created, err := a.catalog.Create(input)
	if err != nil {
		a.respondServiceError(c, err)
		return
	}

	svc, rels, err := a.catalog.GetBySlug(created.Slug)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to reload service")
		return
	}

	c.JSON(http.StatusCreated, newServicePayload(svc, rels, false))
}

// UpdateService 更新服务，整体替换提交的子集合
func (a *API) UpdateService(c *gin.Context) {
	var input service.ServiceInput
	if !bindJSON(c, &input, "invalid service payload") {
		return
	}

	updated, err := a.catalog.Update(c.Param("slug"), input)
	if err != nil {
		a.respondServiceError(c, err)
		return
	}

	svc, rels, err := a.catalog.GetBySlug(updated.Slug)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to reload service")
		return
	}

	c.JSON(http.StatusOK, newServicePayload(svc, rels, false))
}

// DeleteService 删除服务并级联子集合
func (a *API) DeleteService(c *gin.Context) {
	if err := a.catalog.Delete(c.Param("slug")); err != nil {
		a.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "service deleted"})
}

func (a *API) respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrServiceNotFound):
		respondError(c, http.StatusNotFound, "service not found")
	case errors.Is(err, service.ErrTitleRequired), errors.Is(err, service.ErrStatusInvalid):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		log.Printf("service operation failed: %v", err)
		respondError(c, http.StatusInternalServerError, "service operation failed")
	}
}
