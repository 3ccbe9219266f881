package service

import (
	"errors"
	"strings"

	"github.com/driftpress/internal/db"
	"gorm.io/gorm"
)

// ProjectService wraps project related database operations.
type ProjectService struct {
	db *gorm.DB
}

// ProjectFilter describes filters for listing projects.
type ProjectFilter struct {
	Search  string
	Status  string
	Page    int
	PerPage int
}

// ProjectListResult aggregates paginated list data and counters.
type ProjectListResult struct {
	Projects       []db.Project
	Total          int64
	PublishedCount int64
	DraftCount     int64
	TotalPages     int
	Page           int
	PerPage        int
}

// NewProjectService creates a ProjectService instance.
func NewProjectService(gdb *gorm.DB) *ProjectService {
	return &ProjectService{db: gdb}
}

func (s *ProjectService) applyFilters(query *gorm.DB, filter ProjectFilter, includeStatus bool) *gorm.DB {
	if includeStatus {
		status := strings.TrimSpace(filter.Status)
		if status == "" {
			status = db.StatusPublished
		}
		if status != StatusAll {
			query = query.Where("status = ?", status)
		}
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("title LIKE ? OR summary LIKE ? OR content LIKE ?", like, like, like)
	}

	return query
}

// List returns projects matching the filter.
func (s *ProjectService) List(filter ProjectFilter) (ProjectListResult, error) {
	result := ProjectListResult{
		Page:    normalizePage(filter.Page),
		PerPage: normalizePerPage(filter.PerPage, 20),
	}

	query := s.applyFilters(s.db.Model(&db.Project{}), filter, true)
	if err := query.Session(&gorm.Session{}).Count(&result.Total).Error; err != nil {
		return result, err
	}

	// 状态计数始终基于未按状态过滤的查询
	baseCounter := s.applyFilters(s.db.Model(&db.Project{}), filter, false)
	if err := baseCounter.Session(&gorm.Session{}).Where("status = ?", db.StatusPublished).Count(&result.PublishedCount).Error; err != nil {
		return result, err
	}
	if err := baseCounter.Session(&gorm.Session{}).Where("status = ?", db.StatusDraft).Count(&result.DraftCount).Error; err != nil {
		return result, err
	}

	result.TotalPages = calculateTotalPages(result.Total, result.PerPage)
	offset := (result.Page - 1) * result.PerPage

	if err := query.Order("created_at desc").
		Limit(result.PerPage).
		Offset(offset).
		Find(&result.Projects).Error; err != nil {
		return result, err
	}

	return result, nil
}

// Relations batch-loads the child collections for the given projects.
func (s *ProjectService) Relations(ids []uint) (map[uint]*RelationSet, error) {
	return loadRelationSets(s.db, db.TypeProject, ids)
}

// GetBySlug fetches a project and all of its child collections.
func (s *ProjectService) GetBySlug(slug string) (*db.Project, *RelationSet, error) {
	var project db.Project
	if err := s.db.Where("slug = ?", slug).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrProjectNotFound
		}
		return nil, nil, err
	}

	sets, err := loadRelationSets(s.db, db.TypeProject, []uint{project.ID})
	if err != nil {
		return nil, nil, err
	}
	return &project, sets[project.ID], nil
}

// Create persists a project and its submitted child collections in one
// transaction.
func (s *ProjectService) Create(input ProjectInput) (*db.Project, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	status, err := normalizeStatus(input.Status)
	if err != nil {
		return nil, err
	}

	var project db.Project
	err = s.db.Transaction(func(tx *gorm.DB) error {
		chosen, err := chooseSlug(tx, db.TypeProject, input.Slug, title, "")
		if err != nil {
			return err
		}

		project = db.Project{
			Slug:        chosen,
			Title:       title,
			Summary:     strings.TrimSpace(input.Summary),
			Content:     input.Content,
			CoverURL:    strings.TrimSpace(input.CoverURL),
			ClientName:  strings.TrimSpace(input.ClientName),
			ProjectURL:  strings.TrimSpace(input.ProjectURL),
			Year:        input.Year,
			Status:      status,
			PublishedAt: publishedTimestamp(status, input.PublishedAt, nil),
		}
		if err := tx.Create(&project).Error; err != nil {
			return err
		}

		return syncProjectRelations(tx, project.ID, input.RelationInputs)
	})
	if err != nil {
		return nil, err
	}

	return &project, nil
}

// Update applies scalar updates and replaces every submitted child
// collection.
func (s *ProjectService) Update(slug string, input ProjectInput) (*db.Project, error) {
	var existing db.Project
	if err := s.db.Where("slug = ?", slug).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	status, err := normalizeStatus(input.Status)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		chosen, err := chooseSlug(tx, db.TypeProject, input.Slug, title, existing.Slug)
		if err != nil {
			return err
		}

		existing.Slug = chosen
		existing.Title = title
		existing.Summary = strings.TrimSpace(input.Summary)
		existing.Content = input.Content
		existing.CoverURL = strings.TrimSpace(input.CoverURL)
		existing.ClientName = strings.TrimSpace(input.ClientName)
		existing.ProjectURL = strings.TrimSpace(input.ProjectURL)
		existing.Year = input.Year
		existing.PublishedAt = publishedTimestamp(status, input.PublishedAt, existing.PublishedAt)
		existing.Status = status

		if err := tx.Save(&existing).Error; err != nil {
			return err
		}

		return syncProjectRelations(tx, existing.ID, input.RelationInputs)
	})
	if err != nil {
		return nil, err
	}

	return &existing, nil
}

// Delete removes a project and cascades its child collections.
func (s *ProjectService) Delete(slug string) error {
	var project db.Project
	if err := s.db.Where("slug = ?", slug).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		syncer := relationSyncer{tx: tx, parentType: db.TypeProject, parentID: project.ID}
		if err := syncer.deleteAll(); err != nil {
			return err
		}
		return tx.Delete(&project).Error
	})
}

// Projects carry features, testimonials, gallery, downloads, FAQs and
// related links.
func syncProjectRelations(tx *gorm.DB, projectID uint, in RelationInputs) error {
	syncer := relationSyncer{tx: tx, parentType: db.TypeProject, parentID: projectID}

	if in.Features != nil {
		if err := syncer.features(*in.Features); err != nil {
			return err
		}
	}
	if in.Testimonials != nil {
		if err := syncer.testimonials(*in.Testimonials); err != nil {
			return err
		}
	}
	if in.Gallery != nil {
		if err := syncer.gallery(*in.Gallery); err != nil {
			return err
		}
	}
	if in.Downloads != nil {
		if err := syncer.downloads(*in.Downloads); err != nil {
			return err
		}
	}
	if in.FAQs != nil {
		if err := syncer.faqs(*in.FAQs); err != nil {
			return err
		}
	}
	if in.Related != nil {
		if err := syncer.related(*in.Related); err != nil {
			return err
		}
	}
	return nil
}
