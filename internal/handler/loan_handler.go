package handler

import (
	"record-system/internal/model"
	"record-system/internal/repository"
	"record-system/internal/service"
	"record-system/pkg/response"

	"github.com/gin-gonic/gin"
)

// LoanHandler 借阅接口处理器
type LoanHandler struct {
	service *service.LoanService
}

// NewLoanHandler 创建LoanHandler实例
func NewLoanHandler(s *service.LoanService) *LoanHandler {
	return &LoanHandler{service: s}
}

// loanRequest 创建/整行更新借阅的请求体，loan_date缺省为当天
type loanRequest struct {
	ID       int    `json:"id" binding:"required"`
	GameID   int    `json:"game_id" binding:"required"`
	FriendID int    `json:"friend_id" binding:"required"`
	LoanDate string `json:"loan_date"`
	DueDate  string `json:"due_date" binding:"required"`
}

func (r loanRequest) toModel() model.Loan {
	return model.Loan{
		ID:       r.ID,
		GameID:   r.GameID,
		FriendID: r.FriendID,
		LoanDate: r.LoanDate,
		DueDate:  r.DueDate,
	}
}

// Create 新增借阅并预订对应游戏
func (h *LoanHandler) Create(c *gin.Context) {
	var r loanRequest
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	created, err := h.service.Create(r.toModel())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, "借阅创建成功", created)
}

// List 列出全部借阅
func (h *LoanHandler) List(c *gin.Context) {
	loans, err := h.service.List()
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, loans)
}

// Count 借阅数据行数
func (h *LoanHandler) Count(c *gin.Context) {
	n, err := h.service.Count()
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"count": n})
}

// Filter 按game_id/friend_id精确过滤借阅
func (h *LoanHandler) Filter(c *gin.Context) {
	gameID, ok := queryInt(c, "game_id")
	if !ok {
		return
	}
	friendID, ok := queryInt(c, "friend_id")
	if !ok {
		return
	}
	var f repository.LoanFilter
	if gameID != nil {
		f.GameID = *gameID
	}
	if friendID != nil {
		f.FriendID = *friendID
	}
	loans, err := h.service.Filter(f)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, loans)
}

// Get 获取指定借阅
func (h *LoanHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	loan, err := h.service.Get(id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, loan)
}

// Update 整行替换指定借阅，换借游戏时自动释放旧游戏并预订新游戏
func (h *LoanHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var r loanRequest
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

// Delete 删除指定借阅并释放对应游戏
func (h *LoanHandler) Delete(c *gin.Context) {
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
