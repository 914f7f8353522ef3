package handler

import (
	"record-system/internal/model"
	"record-system/internal/repository"
	"record-system/internal/service"
	"record-system/pkg/response"

	"github.com/gin-gonic/gin"
)

// LikeHandler 点赞接口处理器
type LikeHandler struct {
	service *service.LikeService
}

// NewLikeHandler 创建LikeHandler实例
func NewLikeHandler(s *service.LikeService) *LikeHandler {
	return &LikeHandler{service: s}
}

// Create 创建点赞，reaction缺省为like
func (h *LikeHandler) Create(c *gin.Context) {
	type req struct {
		UserID   uint   `json:"user_id" binding:"required"`
		PostID   uint   `json:"post_id" binding:"required"`
		Reaction string `json:"reaction" binding:"max=32"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	like := &model.Like{
		UserID:   r.UserID,
		PostID:   r.PostID,
		Reaction: r.Reaction,
	}
	if err := h.service.Create(like); err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, "点赞创建成功", like)
}

// List 过滤 + 分页列出点赞
func (h *LikeHandler) List(c *gin.Context) {
	userID, ok := queryUint(c, "user_id")
	if !ok {
		return
	}
	postID, ok := queryUint(c, "post_id")
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
	likes, err := h.service.List(repository.LikeFilter{
		UserID:        userID,
		PostID:        postID,
		CreatedAfter:  createdAfter,
		CreatedBefore: createdBefore,
	}, offset, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, likes)
}

// Count 点赞总数
func (h *LikeHandler) Count(c *gin.Context) {
	n, err := h.service.Count()
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"count": n})
}

// Get 获取指定点赞
func (h *LikeHandler) Get(c *gin.Context) {
	id, ok := pathUintID(c)
	if !ok {
		return
	}
	like, err := h.service.Get(id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, like)
}

// Update 部分更新点赞的reaction
func (h *LikeHandler) Update(c *gin.Context) {
	id, ok := pathUintID(c)
	if !ok {
		return
	}
	type req struct {
		Reaction *string `json:"reaction" binding:"omitempty,max=32"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	like, err := h.service.Update(id, service.LikePatch{Reaction: r.Reaction})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, like)
}

// Delete 删除指定点赞
func (h *LikeHandler) Delete(c *gin.Context) {
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
