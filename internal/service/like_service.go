package service

import (
	"errors"

	"record-system/internal/model"
	"record-system/internal/repository"

	apperrors "record-system/pkg/errors"

	"gorm.io/gorm"
)

// LikePatch 点赞部分更新字段，nil表示未提交
type LikePatch struct {
	Reaction *string
}

// LikeService 点赞业务服务
type LikeService struct {
	likeRepo *repository.LikeRepository
	userRepo *repository.UserRepository
	postRepo *repository.PostRepository
}

// NewLikeService 创建LikeService实例
func NewLikeService(likeRepo *repository.LikeRepository, userRepo *repository.UserRepository, postRepo *repository.PostRepository) *LikeService {
	return &LikeService{
		likeRepo: likeRepo,
		userRepo: userRepo,
		postRepo: postRepo,
	}
}

// Create 创建点赞
// 校验顺序：用户存在 → 帖子存在 → 同用户同帖子唯一
func (s *LikeService) Create(l *model.Like) error {
	ok, err := s.userRepo.Exists(l.UserID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.New(apperrors.ErrCodeReferenceNotFound, "User not found")
	}

	ok, err = s.postRepo.Exists(l.PostID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.New(apperrors.ErrCodeReferenceNotFound, "Post not found")
	}

	dup, err := s.likeRepo.ExistsPair(l.UserID, l.PostID)
	if err != nil {
		return err
	}
	if dup {
		return apperrors.New(apperrors.ErrCodeDuplicateEntry, "This like already exists")
	}

	if l.Reaction == "" {
		l.Reaction = "like"
	}
	return s.likeRepo.Create(l)
}

// List 过滤 + 分页列出点赞
func (s *LikeService) List(f repository.LikeFilter, offset, limit int) ([]model.Like, error) {
	offset, limit = clampRange(offset, limit)
	return s.likeRepo.List(f, offset, limit)
}

// Get 获取指定点赞
func (s *LikeService) Get(id uint) (*model.Like, error) {
	l, err := s.likeRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.ErrCodeNotFound, "Like not found")
		}
		return nil, err
	}
	return l, nil
}

// Update 部分更新点赞（可改点赞类型）
func (s *LikeService) Update(id uint, patch LikePatch) (*model.Like, error) {
	l, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if patch.Reaction != nil {
		l.Reaction = *patch.Reaction
	}
	if err := s.likeRepo.Save(l); err != nil {
		return nil, err
	}
	return l, nil
}

// Delete 删除点赞
func (s *LikeService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.likeRepo.Delete(id)
}

// Count 点赞总数
func (s *LikeService) Count() (int64, error) {
	return s.likeRepo.Count()
}
