package model

import "time"

// User 博客用户模型
// 索引与唯一约束：用户名唯一、邮箱唯一（命名索引，用于将 1062 错误译为字段级提示）
// 删除用户时其帖子、评论与点赞由数据库级联删除
// 时间戳由引擎维护，客户端不可设置

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_user_username;comment:用户名" json:"username"`
	Email     string    `gorm:"type:varchar(128);not null;uniqueIndex:idx_user_email;comment:邮箱" json:"email"`
	FullName  string    `gorm:"type:varchar(128);comment:姓名" json:"full_name"`
	Bio       string    `gorm:"type:text;comment:简介" json:"bio"`
	CreatedAt time.Time `gorm:"autoCreateTime;comment:创建时间" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updated_at"`

	Posts    []Post    `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	Comments []Comment `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	Likes    []Like    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName 指定表名（因全局配置使用单数表名，这里与结构体名一致为 user）
func (User) TableName() string { return "user" }
