package handler

import (
	"record-system/internal/model"
	"record-system/internal/repository"
	"record-system/internal/service"
	"record-system/pkg/response"

	"github.com/gin-gonic/gin"
)

// CommentHandler 评论接口处理器
type CommentHandler struct {
	service *service.CommentService
}

// NewCommentHandler 创建CommentHandler实例
func NewCommentHandler(s *service.CommentService) *CommentHandler {
	return &CommentHandler{service: s}
}

// Create 创建评论
func (h *CommentHandler) Create(c *gin.Context) {
	type req struct {
		Content  string `json:"content" binding:"required"`
		PostID   uint   `json:"post_id" binding:"required"`
		AuthorID uint   `json:"author_id" binding:"required"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	comment := &model.Comment{
		Content:  r.Content,
		PostID:   r.PostID,
		AuthorID: r.AuthorID,
	}
	if err := h.service.Create(comment); err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, "评论创建成功", comment)
}

// List 过滤 + 分页列出评论
func (h *CommentHandler) List(c *gin.Context) {
	postID, ok := queryUint(c, "post_id")
	if !ok {
		return
	}
	authorID, ok := queryUint(c, "author_id")
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
	comments, err := h.service.List(repository.CommentFilter{
		PostID:        postID,
		AuthorID:      authorID,
		CreatedAfter:  createdAfter,
		CreatedBefore: createdBefore,
	}, offset, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, comments)
}

// Count 评论总数
func (h *CommentHandler) Count(c *gin.Context) {
	n, err := h.service.Count()
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"count": n})
}

// Get 获取指定评论
func (h *CommentHandler) Get(c *gin.Context) {
	id, ok := pathUintID(c)
	if !ok {
		return
	}
	comment, err := h.service.Get(id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, comment)
}

// Update 部分更新评论内容
func (h *CommentHandler) Update(c *gin.Context) {
	id, ok := pathUintID(c)
	if !ok {
		return
	}
	type req struct {
		Content *string `json:"content"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	comment, err := h.service.Update(id, service.CommentPatch{Content: r.Content})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, comment)
}

// Delete 删除指定评论
func (h *CommentHandler) Delete(c *gin.Context) {
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
