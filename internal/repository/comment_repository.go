package repository

import (
	"time"

	"record-system/internal/model"

	"gorm.io/gorm"
)

// CommentFilter 评论列表过滤条件，零值字段不参与匹配
type CommentFilter struct {
	PostID        uint
	AuthorID      uint
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

// CommentRepository 评论数据仓储
type CommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository 创建CommentRepository实例
func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create 创建评论
func (r *CommentRepository) Create(comment *model.Comment) error {
	return r.db.Create(comment).Error
}

// GetByID 根据ID获取评论（未找到返回 gorm.ErrRecordNotFound）
func (r *CommentRepository) GetByID(id uint) (*model.Comment, error) {
	var c model.Comment
	if err := r.db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// List 过滤 + 分页列出评论
func (r *CommentRepository) List(f CommentFilter, offset, limit int) ([]model.Comment, error) {
	var comments []model.Comment
	q := r.db.Model(&model.Comment{})
	if f.PostID != 0 {
		q = q.Where("post_id = ?", f.PostID)
	}
	if f.AuthorID != 0 {
		q = q.Where("author_id = ?", f.AuthorID)
	}
	q = timeRange(q, f.CreatedAfter, f.CreatedBefore)
	err := q.Order("id").Offset(offset).Limit(limit).Find(&comments).Error
	return comments, err
}

// Save 保存整条评论记录
func (r *CommentRepository) Save(comment *model.Comment) error {
	return r.db.Save(comment).Error
}

// Delete 删除评论
func (r *CommentRepository) Delete(id uint) error {
	return r.db.Delete(&model.Comment{}, id).Error
}

// Count 评论总数
func (r *CommentRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Comment{}).Count(&count).Error
	return count, err
}

// ExistsDuplicate 判断同一用户在同一帖子下是否已有相同内容的评论
func (r *CommentRepository) ExistsDuplicate(postID, authorID uint, content string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Comment{}).
		Where("post_id = ? AND author_id = ? AND content = ?", postID, authorID, content).
		Count(&count).Error
	return count > 0, err
}
