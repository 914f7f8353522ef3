package handler

import (
	"record-system/internal/model"
	"record-system/internal/repository"
	"record-system/internal/service"
	"record-system/pkg/response"

	"github.com/gin-gonic/gin"
)

// CategoryHandler 分类接口处理器
type CategoryHandler struct {
	service *service.CategoryService
}

// NewCategoryHandler 创建CategoryHandler实例
func NewCategoryHandler(s *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: s}
}

// Create 创建分类
func (h *CategoryHandler) Create(c *gin.Context) {
	type req struct {
		Name        string `json:"name" binding:"required,max=64"`
		Description string `json:"description"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	category := &model.Category{
		Name:        r.Name,
		Description: r.Description,
	}
	if err := h.service.Create(category); err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, "分类创建成功", category)
}

// List 过滤 + 分页列出分类，name为子串匹配
func (h *CategoryHandler) List(c *gin.Context) {
	createdAfter, ok := queryTime(c, "created_after")
	if !ok {
		return
	}
	createdBefore, ok := queryTime(c, "created_before")
	if !ok {
		return
	}
	offset, limit := queryRange(c)
	categories, err := h.service.List(repository.CategoryFilter{
		Name:          c.Query("name"),
		CreatedAfter:  createdAfter,
		CreatedBefore: createdBefore,
	}, offset, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, categories)
}

// Count 分类总数
func (h *CategoryHandler) Count(c *gin.Context) {
	n, err := h.service.Count()
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"count": n})
}

// Get 获取指定分类
func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := pathUintID(c)
	if !ok {
		return
	}
	category, err := h.service.Get(id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, category)
}

// Update 部分更新分类
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := pathUintID(c)
	if !ok {
		return
	}
	type req struct {
		Name        *string `json:"name" binding:"omitempty,max=64"`
		Description *string `json:"description"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	category, err := h.service.Update(id, service.CategoryPatch{
		Name:        r.Name,
		Description: r.Description,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, category)
}

// Delete 删除分类，其帖子关联随之级联删除
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := pathUintID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(id); err != nil {
		response.FromError(c, err)
		return
	}
	response.NoContent(c)
}
