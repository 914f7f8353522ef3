package handler

import (
	"record-system/internal/model"
	"record-system/internal/repository"
	"record-system/internal/service"
	"record-system/pkg/response"

	"github.com/gin-gonic/gin"
)

// GameHandler 游戏接口处理器
type GameHandler struct {
	service *service.GameService
}

// NewGameHandler 创建GameHandler实例
func NewGameHandler(s *service.GameService) *GameHandler {
	return &GameHandler{service: s}
}

// gameRequest 创建/整行更新游戏的请求体，available缺省为true
type gameRequest struct {
	ID          int    `json:"id" binding:"required"`
	Title       string `json:"title" binding:"required,max=100"`
	Genre       string `json:"genre" binding:"max=50"`
	Platform    string `json:"platform" binding:"max=50"`
	ReleaseYear int    `json:"release_year" binding:"required"`
	Available   *bool  `json:"available"`
}

func (r gameRequest) toModel() model.Game {
	available := true
	if r.Available != nil {
		available = *r.Available
	}
	return model.Game{
		ID:          r.ID,
		Title:       r.Title,
		Genre:       r.Genre,
		Platform:    r.Platform,
		ReleaseYear: r.ReleaseYear,
		Available:   available,
	}
}

// Create 新增游戏
func (h *GameHandler) Create(c *gin.Context) {
	var r gameRequest
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	created, err := h.service.Create(r.toModel())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, "游戏创建成功", created)
}

// List 列出全部游戏
func (h *GameHandler) List(c *gin.Context) {
	games, err := h.service.List()
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, games)
}

// Count 游戏数据行数
func (h *GameHandler) Count(c *gin.Context) {
	n, err := h.service.Count()
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"count": n})
}

// Filter 按条件过滤游戏
// 支持 genre/platform（忽略大小写精确匹配）、available、year_min/year_max（闭区间）
func (h *GameHandler) Filter(c *gin.Context) {
	available, ok := queryBool(c, "available")
	if !ok {
		return
	}
	yearMin, ok := queryInt(c, "year_min")
	if !ok {
		return
	}
	yearMax, ok := queryInt(c, "year_max")
	if !ok {
		return
	}
	games, err := h.service.Filter(repository.GameFilter{
		Genre:     c.Query("genre"),
		Platform:  c.Query("platform"),
		Available: available,
		YearMin:   yearMin,
		YearMax:   yearMax,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, games)
}

// Get 获取指定游戏
func (h *GameHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	game, err := h.service.Get(id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, game)
}

// Update 整行替换指定游戏，允许修改ID
func (h *GameHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var r gameRequest
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

// Delete 删除指定游戏
func (h *GameHandler) Delete(c *gin.Context) {
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
