package model

import "time"

// Post 帖子模型
// 与 Category 的多对多关系通过显式连接表 PostCategory 维护，
// 连接行由仓库层在事务内整组替换，不走关联自动写入
// CategoryIDs 为接口层的虚拟字段（请求绑定与响应填充），不落库
// 删除帖子时其评论、点赞与分类连接行由数据库级联删除

type Post struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"type:varchar(200);not null;index;comment:标题" json:"title"`
	Content     string    `gorm:"type:text;not null;comment:正文" json:"content"`
	AuthorID    uint      `gorm:"not null;index;comment:作者ID" json:"author_id"`
	CreatedAt   time.Time `gorm:"autoCreateTime;comment:创建时间" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updated_at"`
	CategoryIDs []uint    `gorm:"-" json:"category_ids"`

	Comments []Comment      `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	Likes    []Like         `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	Links    []PostCategory `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Post) TableName() string { return "post" }

// PostCategory 帖子与分类的连接表（复合主键）

type PostCategory struct {
	PostID     uint `gorm:"primaryKey;comment:帖子ID" json:"post_id"`
	CategoryID uint `gorm:"primaryKey;comment:分类ID" json:"category_id"`
}

func (PostCategory) TableName() string { return "post_category" }
