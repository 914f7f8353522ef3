package service

import (
	"errors"
	"fmt"
	"time"

	"record-system/internal/csvdb"
	"record-system/internal/model"
	"record-system/internal/repository"

	apperrors "record-system/pkg/errors"
)

// minReleaseYear 游戏发行年份下限
const minReleaseYear = 1950

// GameService 游戏业务服务
type GameService struct {
	repo *repository.GameRepository
}

// NewGameService 创建GameService实例
func NewGameService(repo *repository.GameRepository) *GameService {
	return &GameService{repo: repo}
}

// List 列出全部游戏
func (s *GameService) List() ([]model.Game, error) {
	return s.repo.List()
}

// Filter 按条件过滤游戏
func (s *GameService) Filter(f repository.GameFilter) ([]model.Game, error) {
	return s.repo.Filter(f)
}

// Count 游戏数据行数
func (s *GameService) Count() (int, error) {
	return s.repo.Count()
}

// Get 获取指定游戏
func (s *GameService) Get(id int) (model.Game, error) {
	g, ok, err := s.repo.GetByID(id)
	if err != nil {
		return model.Game{}, err
	}
	if !ok {
		return model.Game{}, apperrors.New(apperrors.ErrCodeNotFound,
			fmt.Sprintf("game with id %d not found", id))
	}
	return g, nil
}

// Create 新增游戏，ID由客户端提供
func (s *GameService) Create(g model.Game) (model.Game, error) {
	if err := validateReleaseYear(g.ReleaseYear); err != nil {
		return model.Game{}, err
	}
	created, err := s.repo.Create(g)
	if err != nil {
		if errors.Is(err, csvdb.ErrDuplicateID) {
			return model.Game{}, apperrors.New(apperrors.ErrCodeDuplicateID,
				fmt.Sprintf("game with id %d already exists", g.ID))
		}
		return model.Game{}, err
	}
	return created, nil
}

// Update 整行替换指定游戏，允许修改ID
func (s *GameService) Update(id int, g model.Game) (model.Game, error) {
	if err := validateReleaseYear(g.ReleaseYear); err != nil {
		return model.Game{}, err
	}
	updated, ok, err := s.repo.Update(id, g)
	if err != nil {
		if errors.Is(err, csvdb.ErrDuplicateID) {
			return model.Game{}, apperrors.New(apperrors.ErrCodeDuplicateID,
				fmt.Sprintf("game with id %d already exists", g.ID))
		}
		return model.Game{}, err
	}
	if !ok {
		return model.Game{}, apperrors.New(apperrors.ErrCodeNotFound,
			fmt.Sprintf("game with id %d not found", id))
	}
	return updated, nil
}

// Delete 删除指定游戏
func (s *GameService) Delete(id int) error {
	ok, err := s.repo.Delete(id)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.New(apperrors.ErrCodeNotFound,
			fmt.Sprintf("game with id %d not found", id))
	}
	return nil
}

// validateReleaseYear 发行年份须落在 [minReleaseYear, 当前年份] 区间
func validateReleaseYear(year int) error {
	current := time.Now().Year()
	if year < minReleaseYear || year > current {
		return apperrors.New(apperrors.ErrCodeValidation,
			fmt.Sprintf("release_year must be between %d and %d", minReleaseYear, current))
	}
	return nil
}
