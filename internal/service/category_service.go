package service

import (
	"errors"

	"record-system/internal/model"
	"record-system/internal/repository"

	apperrors "record-system/pkg/errors"

	"gorm.io/gorm"
)

// CategoryPatch 分类部分更新字段，nil表示未提交
type CategoryPatch struct {
	Name        *string
	Description *string
}

// CategoryService 分类业务服务
type CategoryService struct {
	repo *repository.CategoryRepository
}

// NewCategoryService 创建CategoryService实例
func NewCategoryService(repo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// Create 创建分类，名称唯一性由数据库约束保证
func (s *CategoryService) Create(c *model.Category) error {
	if err := s.repo.Create(c); err != nil {
		return translateDuplicateKey(err)
	}
	return nil
}

// List 过滤 + 分页列出分类
func (s *CategoryService) List(f repository.CategoryFilter, offset, limit int) ([]model.Category, error) {
	offset, limit = clampRange(offset, limit)
	return s.repo.List(f, offset, limit)
}

// Get 获取指定分类
func (s *CategoryService) Get(id uint) (*model.Category, error) {
	c, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.ErrCodeNotFound, "Category not found")
		}
		return nil, err
	}
	return c, nil
}

// Update 部分更新分类
func (s *CategoryService) Update(id uint, patch CategoryPatch) (*model.Category, error) {
	c, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Description != nil {
		c.Description = *patch.Description
	}
	if err := s.repo.Save(c); err != nil {
		return nil, translateDuplicateKey(err)
	}
	return c, nil
}

// Delete 删除分类，帖子连接行由数据库级联删除
func (s *CategoryService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

// Count 分类总数
func (s *CategoryService) Count() (int64, error) {
	return s.repo.Count()
}
