package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Friend 朋友模型（CSV实体）
// RegisteredDate 为 YYYY-MM-DD 格式的日期字符串，创建时默认为当天

type Friend struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Email          string `json:"email,omitempty"`
	RegisteredDate string `json:"registered_date"`
}

// RecordID 返回表内唯一标识
func (f Friend) RecordID() int { return f.ID }

// FriendCodec Friend实体的CSV编解码器
type FriendCodec struct{}

func (FriendCodec) Header() []string {
	return []string{"id", "name", "phone", "email", "registered_date"}
}

func (FriendCodec) Encode(f Friend) []string {
	return []string{
		strconv.Itoa(f.ID),
		f.Name,
		f.Phone,
		f.Email,
		f.RegisteredDate,
	}
}

func (FriendCodec) Decode(rec []string) (Friend, error) {
	if len(rec) < 5 {
		return Friend{}, fmt.Errorf("expected 5 fields, got %d", len(rec))
	}
	id, err := strconv.Atoi(strings.TrimSpace(rec[0]))
	if err != nil {
		return Friend{}, fmt.Errorf("parse id %q: %w", rec[0], err)
	}
	return Friend{
		ID:             id,
		Name:           rec[1],
		Phone:          rec[2],
		Email:          rec[3],
		RegisteredDate: rec[4],
	}, nil
}
