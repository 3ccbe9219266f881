package service

import (
	"errors"
	"strings"

	"github.com/driftpress/internal/db"
	"gorm.io/gorm"
)

// PostService wraps post related database operations.
type PostService struct {
	db *gorm.DB
}

// PostFilter describes filters for listing posts.
type PostFilter struct {
	Search  string
	Status  string
	Page    int
	PerPage int
}

// PostListResult aggregates paginated list data and counters.
type PostListResult struct {
	Posts          []db.Post
	Total          int64
	PublishedCount int64
	DraftCount     int64
	TotalPages     int
	Page           int
	PerPage        int
}

// NewPostService creates a PostService instance.
func NewPostService(gdb *gorm.DB) *PostService {
	return &PostService{db: gdb}
}

// applyFilters narrows query to the filter. includeStatus controls whether
// the status condition is applied; status counters need it off.
func (s *PostService) applyFilters(query *gorm.DB, filter PostFilter, includeStatus bool) *gorm.DB {
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

// List returns posts matching the filter. An empty status filters to
// published; StatusAll bypasses the filter.
func (s *PostService) List(filter PostFilter) (PostListResult, error) {
	result := PostListResult{
		Page:    normalizePage(filter.Page),
		PerPage: normalizePerPage(filter.PerPage, 20),
	}

	query := s.applyFilters(s.db.Model(&db.Post{}), filter, true)
	if err := query.Session(&gorm.Session{}).Count(&result.Total).Error; err != nil {
		return result, err
	}

	// 状态计数始终基于未按状态过滤的查询
	baseCounter := s.applyFilters(s.db.Model(&db.Post{}), filter, false)
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
		Find(&result.Posts).Error; err != nil {
		return result, err
	}

	return result, nil
}

// Relations batch-loads the child collections for the given posts.
func (s *PostService) Relations(ids []uint) (map[uint]*RelationSet, error) {
	return loadRelationSets(s.db, db.TypePost, ids)
}

// GetBySlug fetches a post and all of its child collections.
func (s *PostService) GetBySlug(slug string) (*db.Post, *RelationSet, error) {
	var post db.Post
	if err := s.db.Where("slug = ?", slug).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrPostNotFound
		}
		return nil, nil, err
	}

	sets, err := loadRelationSets(s.db, db.TypePost, []uint{post.ID})
	if err != nil {
		return nil, nil, err
	}
	return &post, sets[post.ID], nil
}

// Create persists a post and its submitted child collections in one
// transaction. The slug is derived from the explicit slug or the title and
// uniquified against existing posts.
func (s *PostService) Create(input PostInput) (*db.Post, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	status, err := normalizeStatus(input.Status)
	if err != nil {
		return nil, err
	}

	var post db.Post
	err = s.db.Transaction(func(tx *gorm.DB) error {
		chosen, err := chooseSlug(tx, db.TypePost, input.Slug, title, "")
		if err != nil {
			return err
		}

		post = db.Post{
			Slug:        chosen,
			Title:       title,
			Summary:     strings.TrimSpace(input.Summary),
			Content:     input.Content,
			CoverURL:    strings.TrimSpace(input.CoverURL),
			Status:      status,
			PublishedAt: publishedTimestamp(status, input.PublishedAt, nil),
		}
		if err := tx.Create(&post).Error; err != nil {
			return err
		}

		return syncPostRelations(tx, post.ID, input.RelationInputs)
	})
	if err != nil {
		return nil, err
	}

	return &post, nil
}

// Update applies scalar updates and replaces every submitted child
// collection. Collections whose key was omitted stay untouched.
func (s *PostService) Update(slug string, input PostInput) (*db.Post, error) {
	var existing db.Post
	if err := s.db.Where("slug = ?", slug).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
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
		chosen, err := chooseSlug(tx, db.TypePost, input.Slug, title, existing.Slug)
		if err != nil {
			return err
		}

		existing.Slug = chosen
		existing.Title = title
		existing.Summary = strings.TrimSpace(input.Summary)
		existing.Content = input.Content
		existing.CoverURL = strings.TrimSpace(input.CoverURL)
		existing.PublishedAt = publishedTimestamp(status, input.PublishedAt, existing.PublishedAt)
		existing.Status = status

		if err := tx.Save(&existing).Error; err != nil {
			return err
		}

		return syncPostRelations(tx, existing.ID, input.RelationInputs)
	})
	if err != nil {
		return nil, err
	}

	return &existing, nil
}

// Delete removes a post and cascades its child collections.
func (s *PostService) Delete(slug string) error {
	var post db.Post
	if err := s.db.Where("slug = ?", slug).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		syncer := relationSyncer{tx: tx, parentType: db.TypePost, parentID: post.ID}
		if err := syncer.deleteAll(); err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
}

// Posts carry gallery, downloads, FAQs and related links; other collection
// keys are ignored for this type.
func syncPostRelations(tx *gorm.DB, postID uint, in RelationInputs) error {
	syncer := relationSyncer{tx: tx, parentType: db.TypePost, parentID: postID}

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
