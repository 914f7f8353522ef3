package service

import (
	"errors"

	"record-system/internal/model"
	"record-system/internal/repository"

	apperrors "record-system/pkg/errors"

	"gorm.io/gorm"
)

// CommentPatch 评论部分更新字段，nil表示未提交
type CommentPatch struct {
	Content *string
}

// CommentService 评论业务服务
type CommentService struct {
	commentRepo *repository.CommentRepository
	postRepo    *repository.PostRepository
	userRepo    *repository.UserRepository
}

// NewCommentService 创建CommentService实例
func NewCommentService(commentRepo *repository.CommentRepository, postRepo *repository.PostRepository, userRepo *repository.UserRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
	}
}

// Create 创建评论
// 校验顺序：帖子存在 → 作者存在 → 同帖同人无相同内容
func (s *CommentService) Create(c *model.Comment) error {
	ok, err := s.postRepo.Exists(c.PostID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.New(apperrors.ErrCodeReferenceNotFound, "Post not found")
	}

	ok, err = s.userRepo.Exists(c.AuthorID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.New(apperrors.ErrCodeReferenceNotFound, "Author not found")
	}

	c.Content = sanitizeContent(c.Content)
	dup, err := s.commentRepo.ExistsDuplicate(c.PostID, c.AuthorID, c.Content)
	if err != nil {
		return err
	}
	if dup {
		return apperrors.New(apperrors.ErrCodeDuplicateEntry,
			"Duplicate comment content by the same user on this post is not allowed.")
	}

	return s.commentRepo.Create(c)
}

// List 过滤 + 分页列出评论
func (s *CommentService) List(f repository.CommentFilter, offset, limit int) ([]model.Comment, error) {
	offset, limit = clampRange(offset, limit)
	return s.commentRepo.List(f, offset, limit)
}

// Get 获取指定评论
func (s *CommentService) Get(id uint) (*model.Comment, error) {
	c, err := s.commentRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.ErrCodeNotFound, "Comment not found")
		}
		return nil, err
	}
	return c, nil
}

// Update 部分更新评论；内容变化时按新内容重查重复
func (s *CommentService) Update(id uint, patch CommentPatch) (*model.Comment, error) {
	c, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if patch.Content != nil {
		content := sanitizeContent(*patch.Content)
		if content != "" && content != c.Content {
			dup, err := s.commentRepo.ExistsDuplicate(c.PostID, c.AuthorID, content)
			if err != nil {
				return nil, err
			}
			if dup {
				return nil, apperrors.New(apperrors.ErrCodeDuplicateEntry,
					"Duplicate comment content by the same user on this post is not allowed.")
			}
		}
		c.Content = content
	}

	if err := s.commentRepo.Save(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete 删除评论
func (s *CommentService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.commentRepo.Delete(id)
}

// Count 评论总数
func (s *CommentService) Count() (int64, error) {
	return s.commentRepo.Count()
}
