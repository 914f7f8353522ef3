package repository

import (
	"time"

	"record-system/internal/model"

	"gorm.io/gorm"
)

// PostFilter 帖子列表过滤条件，零值字段不参与匹配
type PostFilter struct {
	Title         string
	AuthorID      uint
	CategoryID    uint
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

// PostRepository 帖子数据仓储
// 与分类的连接行由本仓储在事务内维护，不走 GORM 关联自动写入
type PostRepository struct {
	db *gorm.DB
}

// NewPostRepository 创建PostRepository实例
func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

// Create 在一个事务内创建帖子及其分类连接行
func (r *PostRepository) Create(post *model.Post, categoryIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		return insertLinks(tx, post.ID, categoryIDs)
	})
}

// GetByID 根据ID获取帖子（未找到返回 gorm.ErrRecordNotFound）
func (r *PostRepository) GetByID(id uint) (*model.Post, error) {
	var p model.Post
	if err := r.db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// List 过滤 + 分页列出帖子，分类条件走连接表子查询
func (r *PostRepository) List(f PostFilter, offset, limit int) ([]model.Post, error) {
	var posts []model.Post
	q := r.db.Model(&model.Post{})
	if f.Title != "" {
		q = q.Where("title LIKE ?", "%"+f.Title+"%")
	}
	if f.AuthorID != 0 {
		q = q.Where("author_id = ?", f.AuthorID)
	}
	if f.CategoryID != 0 {
		sub := r.db.Model(&model.PostCategory{}).Select("post_id").Where("category_id = ?", f.CategoryID)
		q = q.Where("id IN (?)", sub)
	}
	q = timeRange(q, f.CreatedAfter, f.CreatedBefore)
	err := q.Order("id").Offset(offset).Limit(limit).Find(&posts).Error
	return posts, err
}

// Update 整行写回帖子；replaceLinks 为真时在同一事务内整组替换分类连接行
func (r *PostRepository) Update(post *model.Post, categoryIDs []uint, replaceLinks bool) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(post).Error; err != nil {
			return err
		}
		if !replaceLinks {
			return nil
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&model.PostCategory{}).Error; err != nil {
			return err
		}
		return insertLinks(tx, post.ID, categoryIDs)
	})
}

// Delete 删除帖子，评论/点赞/连接行由数据库级联
func (r *PostRepository) Delete(id uint) error {
	return r.db.Delete(&model.Post{}, id).Error
}

// Count 帖子总数
func (r *PostRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Post{}).Count(&count).Error
	return count, err
}

// Exists 判断帖子是否存在
func (r *PostRepository) Exists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.Post{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// ExistsByAuthorAndTitle 判断同一作者是否已有同名帖子
func (r *PostRepository) ExistsByAuthorAndTitle(authorID uint, title string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Post{}).
		Where("author_id = ? AND title = ?", authorID, title).
		Count(&count).Error
	return count > 0, err
}

// CategoryIDsFor 返回帖子关联的分类ID列表（升序）
func (r *PostRepository) CategoryIDsFor(postID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.PostCategory{}).
		Where("post_id = ?", postID).
		Order("category_id").
		Pluck("category_id", &ids).Error
	return ids, err
}

// CategoryIDsByPost 批量返回多个帖子的分类ID（升序），键为帖子ID
func (r *PostRepository) CategoryIDsByPost(postIDs []uint) (map[uint][]uint, error) {
	result := make(map[uint][]uint, len(postIDs))
	if len(postIDs) == 0 {
		return result, nil
	}
	var links []model.PostCategory
	err := r.db.Where("post_id IN ?", postIDs).
		Order("post_id, category_id").
		Find(&links).Error
	if err != nil {
		return nil, err
	}
	for _, link := range links {
		result[link.PostID] = append(result[link.PostID], link.CategoryID)
	}
	return result, nil
}

func insertLinks(tx *gorm.DB, postID uint, categoryIDs []uint) error {
	if len(categoryIDs) == 0 {
		return nil
	}
	links := make([]model.PostCategory, 0, len(categoryIDs))
	for _, cid := range categoryIDs {
		links = append(links, model.PostCategory{PostID: postID, CategoryID: cid})
	}
	return tx.Create(&links).Error
}
