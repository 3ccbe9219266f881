package handler

import (
	"fmt"
	"os"
	"testing"

	"github.com/driftpress/internal/config"
	"github.com/driftpress/internal/db"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func testConfig() config.AppConfig {
	return config.AppConfig{
		SessionSecret: "test-secret",
		UploadDir:     "testdata/uploads",
		UploadURLPath: "/uploads",
		SlugCheckMode: config.SlugCheckFailOpen,
	}
}

func setupTestAPI(t *testing.T) *API {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return NewAPI(gdb, testConfig())
}
