package model

import "time"

// Comment 评论模型
// 同一用户在同一帖子下不允许重复的评论内容（服务层校验）

type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Content   string    `gorm:"type:text;not null;comment:评论内容" json:"content"`
	PostID    uint      `gorm:"not null;index;comment:帖子ID" json:"post_id"`
	AuthorID  uint      `gorm:"not null;index;comment:作者ID" json:"author_id"`
	CreatedAt time.Time `gorm:"autoCreateTime;comment:创建时间" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updated_at"`
}

func (Comment) TableName() string { return "comment" }
