package service

import (
	"errors"
	"sort"
	"strings"

	"github.com/driftpress/internal/db"
	"github.com/driftpress/internal/editor"
	"gorm.io/gorm"
)

// relationSyncer rebuilds the child collections of one parent entity inside
// the caller's transaction. Each collection is replaced wholesale: existing
// rows for the parent are deleted and the submitted snapshot is inserted
// with dense order indexes. Items missing their required field are filtered
// out rather than failing the save.
type relationSyncer struct {
	tx         *gorm.DB
	parentType string
	parentID   uint
}

func orderOf(explicit *int, position int) int {
	if explicit != nil {
		return *explicit
	}
	return position
}

// storeCollection sorts rows by their requested order, densifies the
// indexes and swaps the stored set for the new one.
func storeCollection[T any](tx *gorm.DB, parentType string, parentID uint, rows []T, order func(T) int, setOrder func(*T, int)) error {
	sort.SliceStable(rows, func(i, j int) bool { return order(rows[i]) < order(rows[j]) })
	editor.Reindex(rows, setOrder)

	var model T
	if err := tx.Where("parent_type = ? AND parent_id = ?", parentType, parentID).Delete(&model).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}

func (r relationSyncer) gallery(inputs []GalleryItemInput) error {
	rows := make([]db.GalleryItem, 0, len(inputs))
	for i, in := range inputs {
		imageURL := strings.TrimSpace(in.ImageURL)
		if imageURL == "" {
			continue
		}
		rows = append(rows, db.GalleryItem{
			ParentType: r.parentType,
			ParentID:   r.parentID,
			OrderIndex: orderOf(in.OrderIndex, i),
			ImageURL:   imageURL,
			Caption:    strings.TrimSpace(in.Caption),
			AltText:    strings.TrimSpace(in.AltText),
			Width:      in.Width,
			Height:     in.Height,
		})
	}
	return storeCollection(r.tx, r.parentType, r.parentID, rows,
		func(g db.GalleryItem) int { return g.OrderIndex },
		func(g *db.GalleryItem, i int) { g.OrderIndex = i })
}

func (r relationSyncer) downloads(inputs []DownloadItemInput) error {
	rows := make([]db.DownloadItem, 0, len(inputs))
	for i, in := range inputs {
		url := strings.TrimSpace(in.URL)
		if url == "" {
			continue
		}
		rows = append(rows, db.DownloadItem{
			ParentType: r.parentType,
			ParentID:   r.parentID,
			OrderIndex: orderOf(in.OrderIndex, i),
			Title:      strings.TrimSpace(in.Title),
			URL:        url,
			FileType:   strings.TrimSpace(in.FileType),
			FileSize:   in.FileSize,
		})
	}
	return storeCollection(r.tx, r.parentType, r.parentID, rows,
		func(d db.DownloadItem) int { return d.OrderIndex },
		func(d *db.DownloadItem, i int) { d.OrderIndex = i })
}

func (r relationSyncer) faqs(inputs []FAQItemInput) error {
	rows := make([]db.FAQItem, 0, len(inputs))
	for i, in := range inputs {
		question := strings.TrimSpace(in.Question)
		if question == "" {
			continue
		}
		rows = append(rows, db.FAQItem{
			ParentType: r.parentType,
			ParentID:   r.parentID,
			OrderIndex: orderOf(in.OrderIndex, i),
			Question:   question,
			Answer:     in.Answer,
		})
	}
	return storeCollection(r.tx, r.parentType, r.parentID, rows,
		func(f db.FAQItem) int { return f.OrderIndex },
		func(f *db.FAQItem, i int) { f.OrderIndex = i })
}

func (r relationSyncer) features(inputs []FeatureInput) error {
	rows := make([]db.Feature, 0, len(inputs))
	for i, in := range inputs {
		title := strings.TrimSpace(in.Title)
		if title == "" {
			continue
		}
		rows = append(rows, db.Feature{
			ParentType:  r.parentType,
			ParentID:    r.parentID,
			OrderIndex:  orderOf(in.OrderIndex, i),
			Title:       title,
			Description: in.Description,
			IconURL:     strings.TrimSpace(in.IconURL),
		})
	}
	return storeCollection(r.tx, r.parentType, r.parentID, rows,
		func(f db.Feature) int { return f.OrderIndex },
		func(f *db.Feature, i int) { f.OrderIndex = i })
}

func (r relationSyncer) packages(inputs []PackageInput) error {
	rows := make([]db.Package, 0, len(inputs))
	for i, in := range inputs {
		name := strings.TrimSpace(in.Name)
		if name == "" {
			continue
		}
		rows = append(rows, db.Package{
			ParentType:  r.parentType,
			ParentID:    r.parentID,
			OrderIndex:  orderOf(in.OrderIndex, i),
			Name:        name,
			Description: in.Description,
			Price:       strings.TrimSpace(in.Price),
			BillingNote: strings.TrimSpace(in.BillingNote),
			Highlights:  in.Highlights,
		})
	}
	return storeCollection(r.tx, r.parentType, r.parentID, rows,
		func(p db.Package) int { return p.OrderIndex },
		func(p *db.Package, i int) { p.OrderIndex = i })
}

func (r relationSyncer) problems(inputs []ProblemItemInput) error {
	rows := make([]db.ProblemItem, 0, len(inputs))
	for i, in := range inputs {
		title := strings.TrimSpace(in.Title)
		if title == "" {
			continue
		}
		rows = append(rows, db.ProblemItem{
			ParentType:  r.parentType,
			ParentID:    r.parentID,
			OrderIndex:  orderOf(in.OrderIndex, i),
			Title:       title,
			Description: in.Description,
		})
	}
	return storeCollection(r.tx, r.parentType, r.parentID, rows,
		func(p db.ProblemItem) int { return p.OrderIndex },
		func(p *db.ProblemItem, i int) { p.OrderIndex = i })
}

func (r relationSyncer) solutions(inputs []SolutionItemInput) error {
	rows := make([]db.SolutionItem, 0, len(inputs))
	for i, in := range inputs {
		title := strings.TrimSpace(in.Title)
		if title == "" {
			continue
		}
		rows = append(rows, db.SolutionItem{
			ParentType:  r.parentType,
			ParentID:    r.parentID,
			OrderIndex:  orderOf(in.OrderIndex, i),
			Title:       title,
			Description: in.Description,
		})
	}
	return storeCollection(r.tx, r.parentType, r.parentID, rows,
		func(s db.SolutionItem) int { return s.OrderIndex },
		func(s *db.SolutionItem, i int) { s.OrderIndex = i })
}

func (r relationSyncer) testimonials(inputs []TestimonialInput) error {
	rows := make([]db.Testimonial, 0, len(inputs))
	for i, in := range inputs {
		author := strings.TrimSpace(in.Author)
		if author == "" {
			continue
		}
		rows = append(rows, db.Testimonial{
			ParentType: r.parentType,
			ParentID:   r.parentID,
			OrderIndex: orderOf(in.OrderIndex, i),
			Author:     author,
			Role:       strings.TrimSpace(in.Role),
			Company:    strings.TrimSpace(in.Company),
			Quote:      in.Quote,
			AvatarURL:  strings.TrimSpace(in.AvatarURL),
		})
	}
	return storeCollection(r.tx, r.parentType, r.parentID, rows,
		func(t db.Testimonial) int { return t.OrderIndex },
		func(t *db.Testimonial, i int) { t.OrderIndex = i })
}

// related resolves each referenced slug to an id; references that do not
// resolve are dropped from the link set without surfacing an error.
func (r relationSyncer) related(inputs []RelatedLinkInput) error {
	rows := make([]db.RelatedLink, 0, len(inputs))
	for i, in := range inputs {
		targetType := strings.TrimSpace(in.Type)
		targetSlug := strings.TrimSpace(in.Slug)
		if !db.ValidContentType(targetType) || targetSlug == "" {
			continue
		}

		targetID, err := resolveSlug(r.tx, targetType, targetSlug)
		if err != nil {
			return err
		}
		if targetID == 0 {
			continue
		}

		rows = append(rows, db.RelatedLink{
			ParentType: r.parentType,
			ParentID:   r.parentID,
			OrderIndex: orderOf(in.OrderIndex, i),
			TargetType: targetType,
			TargetID:   targetID,
		})
	}
	return storeCollection(r.tx, r.parentType, r.parentID, rows,
		func(l db.RelatedLink) int { return l.OrderIndex },
		func(l *db.RelatedLink, i int) { l.OrderIndex = i })
}

// deleteAll removes every child row of the parent, used when the parent
// itself is deleted.
func (r relationSyncer) deleteAll() error {
	cond := r.tx.Where("parent_type = ? AND parent_id = ?", r.parentType, r.parentID)
	for _, model := range []any{
		&db.GalleryItem{}, &db.DownloadItem{}, &db.FAQItem{},
		&db.Feature{}, &db.Package{}, &db.ProblemItem{}, &db.SolutionItem{},
		&db.Testimonial{}, &db.RelatedLink{},
	} {
		if err := cond.Session(&gorm.Session{}).Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

// resolveSlug maps a content type + slug to the entity id. Returns 0 when
// no entity carries the slug; other storage errors propagate.
func resolveSlug(tx *gorm.DB, ctype, slug string) (uint, error) {
	var id uint
	var err error

	switch ctype {
	case db.TypePost:
		var row db.Post
		err = tx.Select("id").Where("slug = ?", slug).First(&row).Error
		id = row.ID
	case db.TypeProject:
		var row db.Project
		err = tx.Select("id").Where("slug = ?", slug).First(&row).Error
		id = row.ID
	case db.TypeService:
		var row db.Service
		err = tx.Select("id").Where("slug = ?", slug).First(&row).Error
		id = row.ID
	default:
		return 0, ErrUnknownContentType
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return id, nil
}
