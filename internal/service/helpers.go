package service

import (
	"errors"
	"strings"
	"time"

	"github.com/driftpress/internal/db"
)

var (
	ErrTitleRequired   = errors.New("title is required")
	ErrStatusInvalid   = errors.New("content status is invalid")
	ErrPostNotFound    = errors.New("post not found")
	ErrProjectNotFound = errors.New("project not found")
	ErrServiceNotFound = errors.New("service not found")
)

// StatusAll bypasses the status filter on list queries.
const StatusAll = "all"

func normalizeStatus(status string) (string, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if status == "" {
		return db.StatusDraft, nil
	}
	if !db.ValidStatus(status) {
		return "", ErrStatusInvalid
	}
	return status, nil
}

// publishedTimestamp keeps publishedAt consistent with the status: first
// transition to published stamps the time, explicit values win.
func publishedTimestamp(status string, explicit, current *time.Time) *time.Time {
	if explicit != nil {
		return explicit
	}
	if status == db.StatusPublished {
		if current != nil {
			return current
		}
		now := time.Now()
		return &now
	}
	return current
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func normalizePerPage(perPage, fallback int) int {
	if perPage <= 0 {
		return fallback
	}
	return perPage
}

func calculateTotalPages(total int64, perPage int) int {
	if perPage <= 0 {
		return 1
	}
	if total == 0 {
		return 1
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}
