package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"record-system/internal/csvdb"
	"record-system/internal/model"
	"record-system/internal/repository"

	apperrors "record-system/pkg/errors"
)

// FriendService 好友业务服务
type FriendService struct {
	repo *repository.FriendRepository
}

// NewFriendService 创建FriendService实例
func NewFriendService(repo *repository.FriendRepository) *FriendService {
	return &FriendService{repo: repo}
}

// List 列出全部好友
func (s *FriendService) List() ([]model.Friend, error) {
	return s.repo.List()
}

// Filter 按条件过滤好友
func (s *FriendService) Filter(f repository.FriendFilter) ([]model.Friend, error) {
	return s.repo.Filter(f)
}

// Count 好友数据行数
func (s *FriendService) Count() (int, error) {
	return s.repo.Count()
}

// Get 获取指定好友
func (s *FriendService) Get(id int) (model.Friend, error) {
	f, ok, err := s.repo.GetByID(id)
	if err != nil {
		return model.Friend{}, err
	}
	if !ok {
		return model.Friend{}, apperrors.New(apperrors.ErrCodeNotFound,
			fmt.Sprintf("friend with id %d not found", id))
	}
	return f, nil
}

// Create 新增好友，注册日期缺省为当天
func (s *FriendService) Create(f model.Friend) (model.Friend, error) {
	if strings.TrimSpace(f.RegisteredDate) == "" {
		f.RegisteredDate = today()
	}
	created, err := s.repo.Create(f)
	if err != nil {
		if errors.Is(err, csvdb.ErrDuplicateID) {
			return model.Friend{}, apperrors.New(apperrors.ErrCodeDuplicateID,
				fmt.Sprintf("friend with id %d already exists", f.ID))
		}
		return model.Friend{}, err
	}
	return created, nil
}

// Update 整行替换指定好友，允许修改ID
func (s *FriendService) Update(id int, f model.Friend) (model.Friend, error) {
	if strings.TrimSpace(f.RegisteredDate) == "" {
		f.RegisteredDate = today()
	}
	updated, ok, err := s.repo.Update(id, f)
	if err != nil {
		if errors.Is(err, csvdb.ErrDuplicateID) {
			return model.Friend{}, apperrors.New(apperrors.ErrCodeDuplicateID,
				fmt.Sprintf("friend with id %d already exists", f.ID))
		}
		return model.Friend{}, err
	}
	if !ok {
		return model.Friend{}, apperrors.New(apperrors.ErrCodeNotFound,
			fmt.Sprintf("friend with id %d not found", id))
	}
	return updated, nil
}

// Delete 删除指定好友
func (s *FriendService) Delete(id int) error {
	ok, err := s.repo.Delete(id)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.New(apperrors.ErrCodeNotFound,
			fmt.Sprintf("friend with id %d not found", id))
	}
	return nil
}

// today 当天日期，YYYY-MM-DD
func today() string {
	return time.Now().Format("2006-01-02")
}
