package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Game 游戏模型（CSV实体）
// Available 表示当前是否可借出：创建借阅时置false，归还后置true

type Game struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Genre       string `json:"genre"`
	Platform    string `json:"platform"`
	ReleaseYear int    `json:"release_year"`
	Available   bool   `json:"available"`
}

// RecordID 返回表内唯一标识
func (g Game) RecordID() int { return g.ID }

// GameCodec Game实体的CSV编解码器
type GameCodec struct{}

func (GameCodec) Header() []string {
	return []string{"id", "title", "genre", "platform", "release_year", "available"}
}

func (GameCodec) Encode(g Game) []string {
	return []string{
		strconv.Itoa(g.ID),
		g.Title,
		g.Genre,
		g.Platform,
		strconv.Itoa(g.ReleaseYear),
		strconv.FormatBool(g.Available),
	}
}

func (GameCodec) Decode(rec []string) (Game, error) {
	if len(rec) < 6 {
		return Game{}, fmt.Errorf("expected 6 fields, got %d", len(rec))
	}
	id, err := strconv.Atoi(strings.TrimSpace(rec[0]))
	if err != nil {
		return Game{}, fmt.Errorf("parse id %q: %w", rec[0], err)
	}
	year, err := strconv.Atoi(strings.TrimSpace(rec[4]))
	if err != nil {
		return Game{}, fmt.Errorf("parse release_year %q: %w", rec[4], err)
	}
	return Game{
		ID:          id,
		Title:       rec[1],
		Genre:       rec[2],
		Platform:    rec[3],
		ReleaseYear: year,
		Available:   lenientBool(rec[5]),
	}, nil
}

// lenientBool 宽松布尔解析：仅"true"（忽略大小写）为真，其余一律为假
func lenientBool(v string) bool {
	return strings.ToLower(strings.TrimSpace(v)) == "true"
}
