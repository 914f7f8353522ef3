package service

import (
	"errors"

	"record-system/internal/model"
	"record-system/internal/repository"

	apperrors "record-system/pkg/errors"

	"gorm.io/gorm"
)

// PostPatch 帖子部分更新字段，nil表示未提交
// CategoryIDs 提交时整组替换连接行，空切片表示清空全部分类
type PostPatch struct {
	Title       *string
	Content     *string
	CategoryIDs *[]uint
}

// PostService 帖子业务服务
type PostService struct {
	postRepo     *repository.PostRepository
	userRepo     *repository.UserRepository
	categoryRepo *repository.CategoryRepository
}

// NewPostService 创建PostService实例
func NewPostService(postRepo *repository.PostRepository, userRepo *repository.UserRepository, categoryRepo *repository.CategoryRepository) *PostService {
	return &PostService{
		postRepo:     postRepo,
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
	}
}

// Create 创建帖子及其分类关联
// 校验顺序：至少一个分类 → 作者存在 → 同作者无同名帖子 → 分类全部存在
func (s *PostService) Create(p *model.Post) error {
	if len(p.CategoryIDs) == 0 {
		return apperrors.New(apperrors.ErrCodeValidation, "At least one category must be provided.")
	}

	ok, err := s.userRepo.Exists(p.AuthorID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.New(apperrors.ErrCodeReferenceNotFound, "Author not found")
	}

	dup, err := s.postRepo.ExistsByAuthorAndTitle(p.AuthorID, p.Title)
	if err != nil {
		return err
	}
	if dup {
		return apperrors.New(apperrors.ErrCodeDuplicateEntry,
			"A post with this title already exists for this author.")
	}

	ids := dedupeIDs(p.CategoryIDs)
	missing, err := s.categoryRepo.MissingIDs(ids)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return apperrors.New(apperrors.ErrCodeReferenceNotFound, missingCategoriesMessage(missing))
	}

	p.Content = sanitizeContent(p.Content)
	if err := s.postRepo.Create(p, ids); err != nil {
		return err
	}
	return s.attachCategoryIDs(p)
}

// List 过滤 + 分页列出帖子，每条附带分类ID
func (s *PostService) List(f repository.PostFilter, offset, limit int) ([]model.Post, error) {
	offset, limit = clampRange(offset, limit)
	posts, err := s.postRepo.List(f, offset, limit)
	if err != nil {
		return nil, err
	}

	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}
	byPost, err := s.postRepo.CategoryIDsByPost(postIDs)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		ids := byPost[posts[i].ID]
		if ids == nil {
			ids = []uint{}
		}
		posts[i].CategoryIDs = ids
	}
	return posts, nil
}

// Get 获取指定帖子，附带分类ID
func (s *PostService) Get(id uint) (*model.Post, error) {
	p, err := s.postRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.ErrCodeNotFound, "Post not found")
		}
		return nil, err
	}
	if err := s.attachCategoryIDs(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update 部分更新帖子
// 提交了 category_ids 时先校验分类全部存在，再与帖子行在同一事务内整组替换连接行
func (s *PostService) Update(id uint, patch PostPatch) (*model.Post, error) {
	p, err := s.postRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.ErrCodeNotFound, "Post not found")
		}
		return nil, err
	}

	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Content != nil {
		p.Content = sanitizeContent(*patch.Content)
	}

	var ids []uint
	replaceLinks := patch.CategoryIDs != nil
	if replaceLinks {
		ids = dedupeIDs(*patch.CategoryIDs)
		missing, err := s.categoryRepo.MissingIDs(ids)
		if err != nil {
			return nil, err
		}
		if len(missing) > 0 {
			return nil, apperrors.New(apperrors.ErrCodeReferenceNotFound, missingCategoriesMessage(missing))
		}
	}

	if err := s.postRepo.Update(p, ids, replaceLinks); err != nil {
		return nil, err
	}
	if err := s.attachCategoryIDs(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete 删除帖子，评论/点赞/分类关联由数据库级联删除
func (s *PostService) Delete(id uint) error {
	if _, err := s.postRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.New(apperrors.ErrCodeNotFound, "Post not found")
		}
		return err
	}
	return s.postRepo.Delete(id)
}

// Count 帖子总数
func (s *PostService) Count() (int64, error) {
	return s.postRepo.Count()
}

// attachCategoryIDs 回填帖子的分类ID列表，无分类时为空切片而非nil
func (s *PostService) attachCategoryIDs(p *model.Post) error {
	ids, err := s.postRepo.CategoryIDsFor(p.ID)
	if err != nil {
		return err
	}
	if ids == nil {
		ids = []uint{}
	}
	p.CategoryIDs = ids
	return nil
}

// dedupeIDs 去重并保持原有顺序
func dedupeIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
