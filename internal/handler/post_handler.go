package handler

import (
	"record-system/internal/model"
	"record-system/internal/repository"
	"record-system/internal/service"
	"record-system/pkg/response"

	"github.com/gin-gonic/gin"
)

// PostHandler 帖子接口处理器
type PostHandler struct {
	service *service.PostService
}

// NewPostHandler 创建PostHandler实例
func NewPostHandler(s *service.PostService) *PostHandler {
	return &PostHandler{service: s}
}

// Create 创建帖子，至少关联一个分类
func (h *PostHandler) Create(c *gin.Context) {
	type req struct {
		Title       string `json:"title" binding:"required,max=200"`
		Content     string `json:"content"`
		AuthorID    uint   `json:"author_id" binding:"required"`
		CategoryIDs []uint `json:"category_ids"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	post := &model.Post{
		Title:       r.Title,
		Content:     r.Content,
		AuthorID:    r.AuthorID,
		CategoryIDs: r.CategoryIDs,
	}
	if err := h.service.Create(post); err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, "帖子创建成功", post)
}

// List 过滤 + 分页列出帖子
// 支持 title子串、author_id/category_id精确、created_after/created_before时间范围
func (h *PostHandler) List(c *gin.Context) {
	authorID, ok := queryUint(c, "author_id")
	if !ok {
		return
	}
	categoryID, ok := queryUint(c, "category_id")
	if !ok {
		return
	}
	createdAfter, ok := queryTime(c, "created_after")
	if !ok {
		return
	}
	createdBefore, ok := queryTime(c, "created_before")
	if !ok {
		return
	}
	offset, limit := queryRange(c)
	posts, err := h.service.List(repository.PostFilter{
		Title:         c.Query("title"),
		AuthorID:      authorID,
		CategoryID:    categoryID,
		CreatedAfter:  createdAfter,
		CreatedBefore: createdBefore,
	}, offset, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, posts)
}

// Count 帖子总数
func (h *PostHandler) Count(c *gin.Context) {
	n, err := h.service.Count()
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"count": n})
}

// Get 获取指定帖子
func (h *PostHandler) Get(c *gin.Context) {
	id, ok := pathUintID(c)
	if !ok {
		return
	}
	post, err := h.service.Get(id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, post)
}

// Update 部分更新帖子，提交category_ids时整组替换分类关联
func (h *PostHandler) Update(c *gin.Context) {
	id, ok := pathUintID(c)
	if !ok {
		return
	}
	type req struct {
		Title       *string `json:"title" binding:"omitempty,max=200"`
		Content     *string `json:"content"`
		CategoryIDs *[]uint `json:"category_ids"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	post, err := h.service.Update(id, service.PostPatch{
		Title:       r.Title,
		Content:     r.Content,
		CategoryIDs: r.CategoryIDs,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, post)
}

// Delete 删除帖子，其评论/点赞/分类关联随之级联删除
func (h *PostHandler) Delete(c *gin.Context) {
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
