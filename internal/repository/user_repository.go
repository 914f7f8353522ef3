package repository

import (
	"time"

	"record-system/internal/model"

	"gorm.io/gorm"
)

// UserFilter 用户列表过滤条件，零值字段不参与匹配
type UserFilter struct {
	Username string
	Email    string
}

// UserRepository 用户数据仓储
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建UserRepository实例
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create 创建用户
func (r *UserRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

// GetByID 根据ID获取用户（未找到返回 gorm.ErrRecordNotFound）
func (r *UserRepository) GetByID(id uint) (*model.User, error) {
	var u model.User
	if err := r.db.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// List 过滤 + 分页列出用户
func (r *UserRepository) List(f UserFilter, offset, limit int) ([]model.User, error) {
	var users []model.User
	q := r.db.Model(&model.User{})
	if f.Username != "" {
		q = q.Where("username LIKE ?", "%"+f.Username+"%")
	}
	if f.Email != "" {
		q = q.Where("email LIKE ?", "%"+f.Email+"%")
	}
	err := q.Order("id").Offset(offset).Limit(limit).Find(&users).Error
	return users, err
}

// Save 保存整条用户记录（部分更新在服务层合并后整行写回）
func (r *UserRepository) Save(user *model.User) error {
	return r.db.Save(user).Error
}

// Delete 删除用户，子记录由数据库级联
func (r *UserRepository) Delete(id uint) error {
	return r.db.Delete(&model.User{}, id).Error
}

// Count 用户总数
func (r *UserRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.User{}).Count(&count).Error
	return count, err
}

// Exists 判断用户是否存在
func (r *UserRepository) Exists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// timeRange 通用的创建时间范围条件
func timeRange(q *gorm.DB, after, before *time.Time) *gorm.DB {
	if after != nil {
		q = q.Where("created_at >= ?", *after)
	}
	if before != nil {
		q = q.Where("created_at < ?", *before)
	}
	return q
}
