package handler

import (
	"record-system/internal/model"
	"record-system/internal/repository"
	"record-system/internal/service"
	"record-system/pkg/response"

	"github.com/gin-gonic/gin"
)

// FriendHandler 好友接口处理器
type FriendHandler struct {
	service *service.FriendService
}

// NewFriendHandler 创建FriendHandler实例
func NewFriendHandler(s *service.FriendService) *FriendHandler {
	return &FriendHandler{service: s}
}

// friendRequest 创建/整行更新好友的请求体，registered_date缺省为当天
type friendRequest struct {
	ID             int    `json:"id" binding:"required"`
	Name           string `json:"name" binding:"required,max=100"`
	Phone          string `json:"phone" binding:"required,max=20"`
	Email          string `json:"email" binding:"max=100"`
	RegisteredDate string `json:"registered_date"`
}

func (r friendRequest) toModel() model.Friend {
	return model.Friend{
		ID:             r.ID,
		Name:           r.Name,
		Phone:          r.Phone,
		Email:          r.Email,
		RegisteredDate: r.RegisteredDate,
	}
}

// Create 新增好友
func (h *FriendHandler) Create(c *gin.Context) {
	var r friendRequest
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	created, err := h.service.Create(r.toModel())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, "好友创建成功", created)
}

// List 列出全部好友
func (h *FriendHandler) List(c *gin.Context) {
	friends, err := h.service.List()
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, friends)
}

// Count 好友数据行数
func (h *FriendHandler) Count(c *gin.Context) {
	n, err := h.service.Count()
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"count": n})
}

// Filter 按条件过滤好友，name/email均为忽略大小写的子串匹配
func (h *FriendHandler) Filter(c *gin.Context) {
	friends, err := h.service.Filter(repository.FriendFilter{
		Name:  c.Query("name"),
		Email: c.Query("email"),
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, friends)
}

// Get 获取指定好友
func (h *FriendHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	friend, err := h.service.Get(id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, friend)
}

// Update 整行替换指定好友
func (h *FriendHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var r friendRequest
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	updated, err := h.service.Update(id, r.toModel())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, updated)
}

// Delete 删除指定好友
func (h *FriendHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(id); err != nil {
		response.FromError(c, err)
		return
	}
	response.NoContent(c)
}
