package handler

import (
	"path/filepath"

	"record-system/internal/service"
	"record-system/pkg/response"

	"github.com/gin-gonic/gin"
)

// ExportHandler 导出接口处理器，每个CSV实体各挂载一份
type ExportHandler struct {
	export *service.ExportService
	source service.ExportSource
}

// NewExportHandler 创建ExportHandler实例
func NewExportHandler(export *service.ExportService, source service.ExportSource) *ExportHandler {
	return &ExportHandler{export: export, source: source}
}

// Zip 打包数据文件并以附件下载
func (h *ExportHandler) Zip(c *gin.Context) {
	path, err := h.export.Zip(h.source)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}

// Hash 返回数据文件当前内容的SHA-256摘要
func (h *ExportHandler) Hash(c *gin.Context) {
	file, digest, err := h.export.Hash(h.source)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"file": file, "hash_sha256": digest})
}

// XML 导出XML并以附件下载
func (h *ExportHandler) XML(c *gin.Context) {
	path, err := h.export.XML(h.source)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}

// XLSX 导出XLSX并以附件下载
func (h *ExportHandler) XLSX(c *gin.Context) {
	path, err := h.export.XLSX(h.source)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}
