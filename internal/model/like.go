package model

import "time"

// Like 点赞模型
// 同一用户对同一帖子只允许一条记录（服务层校验）
// Reaction 表示点赞类型，默认 like

type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;comment:用户ID" json:"user_id"`
	PostID    uint      `gorm:"not null;index;comment:帖子ID" json:"post_id"`
	Reaction  string    `gorm:"type:varchar(32);not null;default:'like';comment:点赞类型" json:"reaction"`
	CreatedAt time.Time `gorm:"autoCreateTime;comment:创建时间" json:"created_at"`
}

func (Like) TableName() string { return "like" }
