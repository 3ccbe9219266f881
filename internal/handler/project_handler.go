package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/driftpress/internal/db"
	"github.com/driftpress/internal/service"
	"github.com/gin-gonic/gin"
)

// projectPayload is the wire shape of a project with its child collections.
type projectPayload struct {
	*db.Project
	ContentHTML  string               `json:"contentHtml,omitempty"`
	Features     []db.Feature         `json:"features"`
	Testimonials []db.Testimonial     `json:"testimonials"`
	Gallery      []db.GalleryItem     `json:"gallery"`
	Downloads    []db.DownloadItem    `json:"downloads"`
	FAQs         []db.FAQItem         `json:"faqs"`
	Related      []service.RelatedRef `json:"related"`
}

func newProjectPayload(project *db.Project, rels *service.RelationSet, withHTML bool) projectPayload {
	payload := projectPayload{
		Project:      project,
		Features:     rels.Features,
		Testimonials: rels.Testimonials,
		Gallery:      rels.Gallery,
		Downloads:    rels.Downloads,
		FAQs:         rels.FAQs,
		Related:      rels.Related,
	}
	if withHTML {
		payload.ContentHTML = renderMarkdown(project.Content)
	}
	return payload
}

// GetProjects 获取项目列表
func (a *API) GetProjects(c *gin.Context) {
	filter := service.ProjectFilter{
		Search:  c.Query("search"),
		Status:  c.Query("status"),
		Page:    queryInt(c, "page"),
		PerPage: queryInt(c, "perPage"),
	}

	result, err := a.projects.List(filter)
	if err != nil {
		log.Printf("failed to list projects: %v", err)
		c.JSON(http.StatusOK, gin.H{"projects": []projectPayload{}, "total": 0})
		return
	}

	if !queryBool(c, "relations") {
		c.JSON(http.StatusOK, gin.H{
			"projects":       result.Projects,
			"total":          result.Total,
			"totalPages":     result.TotalPages,
			"page":           result.Page,
			"perPage":        result.PerPage,
			"publishedCount": result.PublishedCount,
			"draftCount":     result.DraftCount,
		})
		return
	}

	ids := make([]uint, len(result.Projects))
	for i, p := range result.Projects {
		ids[i] = p.ID
	}

	sets, err := a.projects.Relations(ids)
	if err != nil {
		log.Printf("failed to load project relations: %v", err)
		c.JSON(http.StatusOK, gin.H{"projects": []projectPayload{}, "total": 0})
		return
	}

	payloads := make([]projectPayload, len(result.Projects))
	for i := range result.Projects {
		payloads[i] = newProjectPayload(&result.Projects[i], sets[result.Projects[i].ID], false)
	}

	c.JSON(http.StatusOK, gin.H{
		"projects":       payloads,
		"total":          result.Total,
		"totalPages":     result.TotalPages,
		"page":           result.Page,
		"perPage":        result.PerPage,
		"publishedCount": result.PublishedCount,
		"draftCount":     result.DraftCount,
	})
}

// GetProject 获取单个项目及其全部子集合
func (a *API) GetProject(c *gin.Context) {
	project, rels, err := a.projects.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			respondError(c, http.StatusNotFound, "project not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to load project")
		return
	}

	c.JSON(http.StatusOK, newProjectPayload(project, rels, true))
}

// CreateProject 创建新项目
func (a *API) CreateProject(c *gin.Context) {
	var input service.ProjectInput
	if !bindJSON(c, &input, "invalid project payload") {
		return
	}

	created, err := a.projects.Create(input)
	if err != nil {
		a.respondProjectError(c, err)
		return
	}

	project, rels, err := a.projects.GetBySlug(created.Slug)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to reload project")
		return
	}

	c.JSON(http.StatusCreated, newProjectPayload(project, rels, false))
}

// UpdateProject 更新项目，整体替换提交的子集合
func (a *API) UpdateProject(c *gin.Context) {
	var input service.ProjectInput
	if !bindJSON(c, &input, "invalid project payload") {
		return
	}

	updated, err := a.projects.Update(c.Param("slug"), input)
	if err != nil {
		a.respondProjectError(c, err)
		return
	}

	project, rels, err := a.projects.GetBySlug(updated.Slug)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to reload project")
		return
	}

	c.JSON(http.StatusOK, newProjectPayload(project, rels, false))
}

// DeleteProject 删除项目并级联子集合
func (a *API) DeleteProject(c *gin.Context) {
	if err := a.projects.Delete(c.Param("slug")); err != nil {
		a.respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "project deleted"})
}

func (a *API) respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProjectNotFound):
		respondError(c, http.StatusNotFound, "project not found")
	case errors.Is(err, service.ErrTitleRequired), errors.Is(err, service.ErrStatusInvalid):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		log.Printf("project operation failed: %v", err)
		respondError(c, http.StatusInternalServerError, "project operation failed")
	}
}
