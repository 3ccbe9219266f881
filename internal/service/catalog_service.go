package service

import (
	"errors"
	"strings"

	"github.com/driftpress/internal/db"
	"gorm.io/gorm"
)

// CatalogService wraps database operations for the service catalog, the
// "services" content type.
type CatalogService struct {
	db *gorm.DB
}

// ServiceFilter describes filters for listing services.
type ServiceFilter struct {
	Search  string
	Status  string
	Page    int
	PerPage int
}

// ServiceListResult aggregates paginated list data and counters.
type ServiceListResult struct {
	Services       []db.Service
	Total          int64
	PublishedCount int64
	DraftCount     int64
	TotalPages     int
	Page           int
	PerPage        int
}

// NewCatalogService creates a CatalogService instance.
func NewCatalogService(gdb *gorm.DB) *CatalogService {
	return &CatalogService{db: gdb}
}

func (s *CatalogService) applyFilters(query *gorm.DB, filter ServiceFilter, includeStatus bool) *gorm.DB {
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

// List returns services matching the filter.
func (s *CatalogService) List(filter ServiceFilter) (ServiceListResult, error) {
	result := ServiceListResult{
		Page:    normalizePage(filter.Page),
		PerPage: normalizePerPage(filter.PerPage, 20),
	}

	query := s.applyFilters(s.db.Model(&db.Service{}), filter, true)
	if err := query.Session(&gorm.Session{}).Count(&result.Total).Error; err != nil {
		return result, err
	}

	// 状态计数始终基于未按状态过滤的查询
	baseCounter := s.applyFilters(s.db.Model(&db.Service{}), filter, false)
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
		Find(&result.Services).Error; err != nil {
		return result, err
	}

	return result, nil
}

// Relations batch-loads the child collections for the given services.
func (s *CatalogService) Relations(ids []uint) (map[uint]*RelationSet, error) {
	return loadRelationSets(s.db, db.TypeService, ids)
}

// GetBySlug fetches a service and all of its child collections.
func (s *CatalogService) GetBySlug(slug string) (*db.Service, *RelationSet, error) {
	var svc db.Service
	if err := s.db.Where("slug = ?", slug).First(&svc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrServiceNotFound
		}
		return nil, nil, err
	}

	sets, err := loadRelationSets(s.db, db.TypeService, []uint{svc.ID})
	if err != nil {
		return nil, nil, err
	}
	return &svc, sets[svc.ID], nil
}

// Create persists a service and its submitted child collections in one
// transaction.
func (s *CatalogService) Create(input ServiceInput) (*db.Service, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	status, err := normalizeStatus(input.Status)
	if err != nil {
		return nil, err
	}

	var svc db.Service
	err = s.db.Transaction(func(tx *gorm.DB) error {
		chosen, err := chooseSlug(tx, db.TypeService, input.Slug, title, "")
		if err != nil {
			return err
		}

		svc = db.Service{
			Slug:        chosen,
			Title:       title,
			Summary:     strings.TrimSpace(input.Summary),
			Content:     input.Content,
			IconURL:     strings.TrimSpace(input.IconURL),
			Status:      status,
			PublishedAt: publishedTimestamp(status, input.PublishedAt, nil),
		}
		if err := tx.Create(&svc).Error; err != nil {
			return err
		}

		return syncServiceRelations(tx, svc.ID, input.RelationInputs)
	})
	if err != nil {
		return nil, err
	}

	return &svc, nil
}

// Update applies scalar updates and replaces every submitted child
// collection.
func (s *CatalogService) Update(slug string, input ServiceInput) (*db.Service, error) {
	var existing db.Service
	if err := s.db.Where("slug = ?", slug).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
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
		chosen, err := chooseSlug(tx, db.TypeService, input.Slug, title, existing.Slug)
		if err != nil {
			return err
		}

		existing.Slug = chosen
		existing.Title = title
		existing.Summary = strings.TrimSpace(input.Summary)
		existing.Content = input.Content
		existing.IconURL = strings.TrimSpace(input.IconURL)
		existing.PublishedAt = publishedTimestamp(status, input.PublishedAt, existing.PublishedAt)
		existing.Status = status

		if err := tx.Save(&existing).Error; err != nil {
			return err
		}

		return syncServiceRelations(tx, existing.ID, input.RelationInputs)
	})
	if err != nil {
		return nil, err
	}

	return &existing, nil
}

// Delete removes a service and cascades its child collections.
func (s *CatalogService) Delete(slug string) error {
	var svc db.Service
	if err := s.db.Where("slug = ?", slug).First(&svc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrServiceNotFound
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		syncer := relationSyncer{tx: tx, parentType: db.TypeService, parentID: svc.ID}
		if err := syncer.deleteAll(); err != nil {
			return err
		}
		return tx.Delete(&svc).Error
	})
}

// Services carry the full collection set: features, packages, problems,
// solutions, testimonials, gallery, downloads, FAQs and related links.
func syncServiceRelations(tx *gorm.DB, serviceID uint, in RelationInputs) error {
	syncer := relationSyncer{tx: tx, parentType: db.TypeService, parentID: serviceID}

	if in.Features != nil {
		if err := syncer.features(*in.Features); err != nil {
			return err
		}
	}
	if in.Packages != nil {
		if err := syncer.packages(*in.Packages); err != nil {
			return err
		}
	}
	if in.Problems != nil {
		if err := syncer.problems(*in.Problems); err != nil {
			return err
		}
	}
	if in.Solutions != nil {
		if err := syncer.solutions(*in.Solutions); err != nil {
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
