package db

import "time"

// 内容类型标识，slug 唯一性按类型独立计算。
const (
	TypePost    = "post"
	TypeProject = "project"
	TypeService = "service"
)

// 内容状态。
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// Base 提供所有模型共用的主键和时间戳字段。
type Base struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Post 定义博客文章模型
type Post struct {
	Base
	Slug        string     `gorm:"uniqueIndex;not null" json:"slug"`
	Title       string     `gorm:"not null" json:"title"`
	Summary     string     `json:"summary"`
	Content     string     `gorm:"type:text" json:"content"`
	CoverURL    string     `json:"coverUrl"`
	Status      string     `gorm:"size:20;default:draft" json:"status"`
	PublishedAt *time.Time `json:"publishedAt"`
}

// Project 定义项目案例模型
type Project struct {
	Base
	Slug        string     `gorm:"uniqueIndex;not null" json:"slug"`
	Title       string     `gorm:"not null" json:"title"`
	Summary     string     `json:"summary"`
	Content     string     `gorm:"type:text" json:"content"`
	CoverURL    string     `json:"coverUrl"`
	ClientName  string     `json:"clientName"`
	ProjectURL  string     `json:"projectUrl"`
	Year        int        `json:"year"`
	Status      string     `gorm:"size:20;default:draft" json:"status"`
	PublishedAt *time.Time `json:"publishedAt"`
}

// Service 定义对外提供的服务模型
type Service struct {
	Base
	Slug        string     `gorm:"uniqueIndex;not null" json:"slug"`
	Title       string     `gorm:"not null" json:"title"`
	Summary     string     `json:"summary"`
	Content     string     `gorm:"type:text" json:"content"`
	IconURL     string     `json:"iconUrl"`
	Status      string     `gorm:"size:20;default:draft" json:"status"`
	PublishedAt *time.Time `json:"publishedAt"`
}

// ValidStatus 判断给定状态是否为合法的内容状态。
func ValidStatus(status string) bool {
	switch status {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// ValidContentType 判断给定类型是否为已知的内容类型。
func ValidContentType(ctype string) bool {
	switch ctype {
	case TypePost, TypeProject, TypeService:
		return true
	}
	return false
}
