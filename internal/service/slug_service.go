package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/driftpress/internal/config"
	"github.com/driftpress/internal/db"
	"github.com/driftpress/internal/slug"
	"gorm.io/gorm"
)

var ErrUnknownContentType = errors.New("unknown content type")

// SlugService answers slug availability questions against live data.
// Uniqueness is scoped per content type: a post and a service may share
// a slug.
type SlugService struct {
	db   *gorm.DB
	mode config.SlugCheckMode
}

// Availability is the outcome of a slug availability check.
type Availability struct {
	Available bool   `json:"available"`
	Message   string `json:"message,omitempty"`
}

// NewSlugService creates a SlugService instance.
func NewSlugService(gdb *gorm.DB, mode config.SlugCheckMode) *SlugService {
	if mode != config.SlugCheckFailClosed {
		mode = config.SlugCheckFailOpen
	}
	return &SlugService{db: gdb, mode: mode}
}

// CheckAvailability reports whether candidate may be used for an entity of
// the given type. excludeID lets an entity re-check its own slug while
// being edited. In fail-open mode a storage error is reported as available
// so transient outages do not block editors.
func (s *SlugService) CheckAvailability(candidate, ctype string, excludeID uint) Availability {
	if !slug.IsValid(candidate) {
		return Availability{Message: "slug must be lowercase letters and digits separated by single hyphens"}
	}
	if !db.ValidContentType(ctype) {
		return Availability{Message: "unknown content type"}
	}

	id, err := resolveSlug(s.db, ctype, candidate)
	if err != nil {
		if s.mode == config.SlugCheckFailClosed {
			return Availability{Message: "availability check failed"}
		}
		log.Printf("slug availability check failed for %s/%s, assuming available: %v", ctype, candidate, err)
		return Availability{Available: true}
	}

	if id == 0 || id == excludeID {
		return Availability{Available: true}
	}
	return Availability{Message: "slug is already in use"}
}

// SuggestAlternatives proposes free slugs near base: base-1 through base-5
// until three are collected, then base-<currentYear>. Results keep
// discovery order.
func (s *SlugService) SuggestAlternatives(base, ctype string) []string {
	suggestions := make([]string, 0, 4)

	for i := 1; i <= 5 && len(suggestions) < 3; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if s.CheckAvailability(candidate, ctype, 0).Available {
			suggestions = append(suggestions, candidate)
		}
	}

	yearCandidate := fmt.Sprintf("%s-%d", base, time.Now().Year())
	if s.CheckAvailability(yearCandidate, ctype, 0).Available {
		suggestions = append(suggestions, yearCandidate)
	}

	return suggestions
}

// existingSlugs lists every slug currently stored for a content type.
func existingSlugs(tx *gorm.DB, ctype string) ([]string, error) {
	var slugs []string
	var err error

	switch ctype {
	case db.TypePost:
		err = tx.Model(&db.Post{}).Pluck("slug", &slugs).Error
	case db.TypeProject:
		err = tx.Model(&db.Project{}).Pluck("slug", &slugs).Error
	case db.TypeService:
		err = tx.Model(&db.Service{}).Pluck("slug", &slugs).Error
	default:
		return nil, ErrUnknownContentType
	}

	if err != nil {
		return nil, err
	}
	return slugs, nil
}

// chooseSlug resolves the slug for a save: an explicit slug wins over the
// title, both are normalized and uniquified against the stored set.
// currentSlug is the slug the entity already holds (empty on create).
func chooseSlug(tx *gorm.DB, ctype, explicit, title, currentSlug string) (string, error) {
	source := explicit
	if slug.Generate(source) == "" {
		source = title
	}

	existing, err := existingSlugs(tx, ctype)
	if err != nil {
		return "", err
	}

	chosen := slug.GenerateUnique(source, existing, currentSlug)
	if chosen == "" {
		return "", errors.New("cannot derive a slug from the submitted fields")
	}
	return chosen, nil
}
