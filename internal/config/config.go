package config

import (
	"fmt"
	"os"
	"strings"
)

// SlugCheckMode 决定后端不可用时 slug 可用性检查的降级策略。
type SlugCheckMode string

const (
	// SlugCheckFailOpen 后端出错时视为可用，编辑流程不被阻塞。
	SlugCheckFailOpen SlugCheckMode = "fail-open"
	// SlugCheckFailClosed 后端出错时视为不可用，宁可阻塞也不冒重复风险。
	SlugCheckFailClosed SlugCheckMode = "fail-closed"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr            string
	Port                  string
	DatabaseURL           string
	DatabasePath          string
	SessionSecret         string
	GinMode               string
	UploadDir             string
	UploadURLPath         string
	SiteBaseURL           string
	CORSOrigins           []string
	AdminEmails           []string
	GoogleClientID        string
	GoogleClientSecret    string
	GoogleRedirectURL     string
	OAuthFrontendRedirect string
	SlugCheckMode         SlugCheckMode
	SuperRootUserName     string
	SuperRootPassword     string
}

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
func Load() AppConfig {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	databasePath := strings.TrimSpace(os.Getenv("DATABASE_PATH"))
	if databasePath == "" {
		databasePath = "driftpress.db"
	}

	sessionSecret := strings.TrimSpace(os.Getenv("SESSION_SECRET"))
	if sessionSecret == "" {
		sessionSecret = "driftpress-dev-secret"
	}

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))
	if ginMode == "" {
		ginMode = "release"
	}

	uploadDir := strings.TrimSpace(os.Getenv("UPLOAD_DIR"))
	if uploadDir == "" {
		uploadDir = "web/static/uploads"
	}

	uploadURLPath := strings.TrimSpace(os.Getenv("UPLOAD_URL_PATH"))
	if uploadURLPath == "" {
		uploadURLPath = "/static/uploads"
	}

	siteBaseURL := strings.TrimSpace(os.Getenv("SITE_BASE_URL"))
	if siteBaseURL == "" {
		siteBaseURL = "http://localhost:8080"
	}

	slugCheckMode := SlugCheckMode(strings.TrimSpace(os.Getenv("SLUG_CHECK_MODE")))
	if slugCheckMode != SlugCheckFailClosed {
		slugCheckMode = SlugCheckFailOpen
	}

	return AppConfig{
		ListenAddr:            listenAddr,
		Port:                  port,
		DatabaseURL:           strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DatabasePath:          databasePath,
		SessionSecret:         sessionSecret,
		GinMode:               ginMode,
		UploadDir:             uploadDir,
		UploadURLPath:         uploadURLPath,
		SiteBaseURL:           siteBaseURL,
		CORSOrigins:           splitList(os.Getenv("CORS_ORIGINS")),
		AdminEmails:           splitList(os.Getenv("ADMIN_EMAILS")),
		GoogleClientID:        strings.TrimSpace(os.Getenv("GOOGLE_CLIENT_ID")),
		GoogleClientSecret:    strings.TrimSpace(os.Getenv("GOOGLE_CLIENT_SECRET")),
		GoogleRedirectURL:     strings.TrimSpace(os.Getenv("GOOGLE_REDIRECT_URL")),
		OAuthFrontendRedirect: strings.TrimSpace(os.Getenv("OAUTH_FRONTEND_REDIRECT")),
		SlugCheckMode:         slugCheckMode,
		SuperRootUserName:     strings.TrimSpace(os.Getenv("SUPER_ROOT_USER_NAME")),
		SuperRootPassword:     strings.TrimSpace(os.Getenv("SUPER_ROOT_PASSWORD")),
	}
}

// IsAdminEmail 判断邮箱是否在管理员白名单内，比较时忽略大小写。
func (c AppConfig) IsAdminEmail(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false
	}
	for _, allowed := range c.AdminEmails {
		if strings.ToLower(allowed) == email {
			return true
		}
	}
	return false
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
