package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Loan 借阅模型（CSV实体）
// GameID/FriendID 引用对应实体，创建时校验存在性与游戏可借状态
// LoanDate/DueDate 为 YYYY-MM-DD 格式的日期字符串

type Loan struct {
	ID       int    `json:"id"`
	GameID   int    `json:"game_id"`
	FriendID int    `json:"friend_id"`
	LoanDate string `json:"loan_date"`
	DueDate  string `json:"due_date"`
}

// RecordID 返回表内唯一标识
func (l Loan) RecordID() int { return l.ID }

// LoanCodec Loan实体的CSV编解码器
type LoanCodec struct{}

func (LoanCodec) Header() []string {
	return []string{"id", "game_id", "friend_id", "loan_date", "due_date"}
}

func (LoanCodec) Encode(l Loan) []string {
	return []string{
		strconv.Itoa(l.ID),
		strconv.Itoa(l.GameID),
		strconv.Itoa(l.FriendID),
		l.LoanDate,
		l.DueDate,
	}
}

func (LoanCodec) Decode(rec []string) (Loan, error) {
	if len(rec) < 5 {
		return Loan{}, fmt.Errorf("expected 5 fields, got %d", len(rec))
	}
	id, err := strconv.Atoi(strings.TrimSpace(rec[0]))
	if err != nil {
		return Loan{}, fmt.Errorf("parse id %q: %w", rec[0], err)
	}
	gameID, err := strconv.Atoi(strings.TrimSpace(rec[1]))
	if err != nil {
		return Loan{}, fmt.Errorf("parse game_id %q: %w", rec[1], err)
	}
	friendID, err := strconv.Atoi(strings.TrimSpace(rec[2]))
	if err != nil {
		return Loan{}, fmt.Errorf("parse friend_id %q: %w", rec[2], err)
	}
	return Loan{
		ID:       id,
		GameID:   gameID,
		FriendID: friendID,
		LoanDate: rec[3],
		DueDate:  rec[4],
	}, nil
}
