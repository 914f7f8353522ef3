package service

import (
	"errors"

	"record-system/internal/model"
	"record-system/internal/repository"

	apperrors "record-system/pkg/errors"

	"gorm.io/gorm"
)

// UserPatch 用户部分更新字段，nil表示未提交
type UserPatch struct {
	Username *string
	Email    *string
	FullName *string
	Bio      *string
}

// UserService 用户业务服务
type UserService struct {
	repo *repository.UserRepository
}

// NewUserService 创建UserService实例
func NewUserService(repo *repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Create 创建用户，用户名/邮箱唯一性由数据库约束保证
func (s *UserService) Create(u *model.User) error {
	if err := s.repo.Create(u); err != nil {
		return translateDuplicateKey(err)
	}
	return nil
}

// List 过滤 + 分页列出用户
func (s *UserService) List(f repository.UserFilter, offset, limit int) ([]model.User, error) {
	offset, limit = clampRange(offset, limit)
	return s.repo.List(f, offset, limit)
}

// Get 获取指定用户
func (s *UserService) Get(id uint) (*model.User, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.ErrCodeNotFound, "User not found")
		}
		return nil, err
	}
	return u, nil
}

// Update 部分更新：仅提交的字段并入现有记录后整行写回
func (s *UserService) Update(id uint, patch UserPatch) (*model.User, error) {
	u, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	mergeUser(u, patch)
	if err := s.repo.Save(u); err != nil {
		return nil, translateDuplicateKey(err)
	}
	return u, nil
}

// Delete 删除用户，其帖子/评论/点赞由数据库级联删除
func (s *UserService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

// Count 用户总数
func (s *UserService) Count() (int64, error) {
	return s.repo.Count()
}

// mergeUser 将补丁中非nil字段并入用户记录
func mergeUser(u *model.User, p UserPatch) {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.FullName != nil {
		u.FullName = *p.FullName
	}
	if p.Bio != nil {
		u.Bio = *p.Bio
	}
}
