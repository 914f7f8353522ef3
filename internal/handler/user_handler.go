package handler

import (
	"record-system/internal/model"
	"record-system/internal/repository"
	"record-system/internal/service"
	"record-system/pkg/response"

	"github.com/gin-gonic/gin"
)

// UserHandler 用户接口处理器
type UserHandler struct {
	service *service.UserService
}

// NewUserHandler 创建UserHandler实例
func NewUserHandler(s *service.UserService) *UserHandler {
	return &UserHandler{service: s}
}

// Create 创建用户
func (h *UserHandler) Create(c *gin.Context) {
	type req struct {
		Username string `json:"username" binding:"required,max=64"`
		Email    string `json:"email" binding:"required,email,max=128"`
		FullName string `json:"full_name" binding:"max=128"`
		Bio      string `json:"bio"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	user := &model.User{
		Username: r.Username,
		Email:    r.Email,
		FullName: r.FullName,
		Bio:      r.Bio,
	}
	if err := h.service.Create(user); err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, "用户创建成功", user)
}

// List 过滤 + 分页列出用户，username/email为子串匹配
func (h *UserHandler) List(c *gin.Context) {
	offset, limit := queryRange(c)
	users, err := h.service.List(repository.UserFilter{
		Username: c.Query("username"),
		Email:    c.Query("email"),
	}, offset, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, users)
}

// Count 用户总数
func (h *UserHandler) Count(c *gin.Context) {
	n, err := h.service.Count()
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"count": n})
}

// Get 获取指定用户
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathUintID(c)
	if !ok {
		return
	}
	user, err := h.service.Get(id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, user)
}

// Update 部分更新用户，仅提交的字段生效
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathUintID(c)
	if !ok {
		return
	}
	type req struct {
		Username *string `json:"username" binding:"omitempty,max=64"`
		Email    *string `json:"email" binding:"omitempty,email,max=128"`
		FullName *string `json:"full_name" binding:"omitempty,max=128"`
		Bio      *string `json:"bio"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	user, err := h.service.Update(id, service.UserPatch{
		Username: r.Username,
		Email:    r.Email,
		FullName: r.FullName,
		Bio:      r.Bio,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, user)
}

// Delete 删除用户，其帖子/评论/点赞随之级联删除
func (h *UserHandler) Delete(c *gin.Context) {
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
