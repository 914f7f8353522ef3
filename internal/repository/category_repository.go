package repository

import (
	"sort"
	"time"

	"record-system/internal/model"

	"gorm.io/gorm"
)

// CategoryFilter 分类列表过滤条件，零值字段不参与匹配
type CategoryFilter struct {
	Name          string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

// CategoryRepository 分类数据仓储
type CategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建CategoryRepository实例
func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create 创建分类
func (r *CategoryRepository) Create(category *model.Category) error {
	return r.db.Create(category).Error
}

// GetByID 根据ID获取分类（未找到返回 gorm.ErrRecordNotFound）
func (r *CategoryRepository) GetByID(id uint) (*model.Category, error) {
	var c model.Category
	if err := r.db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// List 过滤 + 分页列出分类
func (r *CategoryRepository) List(f CategoryFilter, offset, limit int) ([]model.Category, error) {
	var categories []model.Category
	q := r.db.Model(&model.Category{})
	if f.Name != "" {
		q = q.Where("name LIKE ?", "%"+f.Name+"%")
	}
	q = timeRange(q, f.CreatedAfter, f.CreatedBefore)
	err := q.Order("id").Offset(offset).Limit(limit).Find(&categories).Error
	return categories, err
}

// Save 保存整条分类记录
func (r *CategoryRepository) Save(category *model.Category) error {
	return r.db.Save(category).Error
}

// Delete 删除分类，连接行由数据库级联
func (r *CategoryRepository) Delete(id uint) error {
	return r.db.Delete(&model.Category{}, id).Error
}

// Count 分类总数
func (r *CategoryRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Category{}).Count(&count).Error
	return count, err
}

// MissingIDs 返回 ids 中不存在的分类ID（升序去重），全部存在时返回空切片
func (r *CategoryRepository) MissingIDs(ids []uint) ([]uint, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var found []uint
	err := r.db.Model(&model.Category{}).
		Where("id IN ?", ids).
		Pluck("id", &found).Error
	if err != nil {
		return nil, err
	}
	exists := make(map[uint]bool, len(found))
	for _, id := range found {
		exists[id] = true
	}
	seen := make(map[uint]bool, len(ids))
	var missing []uint
	for _, id := range ids {
		if !exists[id] && !seen[id] {
			missing = append(missing, id)
			seen[id] = true
		}
	}
	sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
	return missing, nil
}
