package db

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DB 是一个全局的数据库连接实例
var DB *gorm.DB

// Init 初始化数据库连接并执行自动迁移。
// databaseURL 非空时连接 Postgres（Supabase 等），否则回退到本地 SQLite 文件。
func Init(databaseURL, databasePath string) error {
	var err error

	if url := strings.TrimSpace(databaseURL); url != "" {
		DB, err = gorm.Open(postgres.Open(url), &gorm.Config{})
	} else {
		path := strings.TrimSpace(databasePath)
		if path == "" {
			path = "driftpress.db"
		}
		if err := ensureParentDir(path); err != nil {
			return err
		}
		DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
	}
	if err != nil {
		return err
	}

	return Migrate(DB)
}

// Migrate 为核心模型创建或更新表结构。
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&User{},
		&Post{},
		&Project{},
		&Service{},
		&GalleryItem{},
		&DownloadItem{},
		&FAQItem{},
		&Feature{},
		&Package{},
		&ProblemItem{},
		&SolutionItem{},
		&Testimonial{},
		&RelatedLink{},
	)
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}
