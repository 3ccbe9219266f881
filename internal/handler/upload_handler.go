package handler

import (
	"fmt"
	"image"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// UploadFile 处理文件上传请求
func (a *API) UploadFile(c *gin.Context) {
	// 获取上传的文件
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "no file in request")
		return
	}

	// 创建上传目录
	if err := os.MkdirAll(a.cfg.UploadDir, 0755); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to create upload directory")
		return
	}

	// 生成唯一文件名
	ext := strings.ToLower(filepath.Ext(file.Filename))
	newFilename := fmt.Sprintf("%s-%s%s", time.Now().Format("20060102"), uuid.New().String(), ext)
	filePath := filepath.Join(a.cfg.UploadDir, newFilename)

	// 保存文件
	if err := c.SaveUploadedFile(file, filePath); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to save file")
		return
	}

	result := gin.H{
		"url":      fmt.Sprintf("%s/%s", strings.TrimRight(a.cfg.UploadURLPath, "/"), newFilename),
		"fileName": file.Filename,
		"fileType": file.Header.Get("Content-Type"),
		"fileSize": file.Size,
	}

	// 图片附带宽高信息
	if width, height, ok := imageDimensions(filePath); ok {
		result["width"] = width
		result["height"] = height
	}

	c.JSON(http.StatusOK, result)
}

func imageDimensions(path string) (int, int, bool) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, false
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, false
	}
	return cfg.Width, cfg.Height, true
}
