package repository

import (
	"time"

	"record-system/internal/model"

	"gorm.io/gorm"
)

// LikeFilter 点赞列表过滤条件，零值字段不参与匹配
type LikeFilter struct {
	UserID        uint
	PostID        uint
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

// LikeRepository 点赞数据仓储
type LikeRepository struct {
	db *gorm.DB
}

// NewLikeRepository 创建LikeRepository实例
func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

// Create 创建点赞
func (r *LikeRepository) Create(like *model.Like) error {
	return r.db.Create(like).Error
}

// GetByID 根据ID获取点赞（未找到返回 gorm.ErrRecordNotFound）
func (r *LikeRepository) GetByID(id uint) (*model.Like, error) {
	var l model.Like
	if err := r.db.First(&l, id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

// List 过滤 + 分页列出点赞
func (r *LikeRepository) List(f LikeFilter, offset, limit int) ([]model.Like, error) {
	var likes []model.Like
	q := r.db.Model(&model.Like{})
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.PostID != 0 {
		q = q.Where("post_id = ?", f.PostID)
	}
	q = timeRange(q, f.CreatedAfter, f.CreatedBefore)
	err := q.Order("id").Offset(offset).Limit(limit).Find(&likes).Error
	return likes, err
}

// Save 保存整条点赞记录
func (r *LikeRepository) Save(like *model.Like) error {
	return r.db.Save(like).Error
}

// Delete 删除点赞
func (r *LikeRepository) Delete(id uint) error {
	return r.db.Delete(&model.Like{}, id).Error
}

// Count 点赞总数
func (r *LikeRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Like{}).Count(&count).Error
	return count, err
}

// ExistsPair 判断该用户是否已点赞该帖子
func (r *LikeRepository) ExistsPair(userID, postID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}
