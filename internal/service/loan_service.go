package service

import (
	"fmt"
	"strings"

	"record-system/internal/model"
	"record-system/internal/repository"

	apperrors "record-system/pkg/errors"
)

// LoanService 借阅业务服务
// 维护借阅与游戏可借状态的一致性约定：游戏集合总是先于借阅集合落盘，
// 读方在任意时刻都不会看到"已有借阅但游戏仍可借"的状态
type LoanService struct {
	loanRepo   *repository.LoanRepository
	gameRepo   *repository.GameRepository
	friendRepo *repository.FriendRepository
}

// NewLoanService 创建LoanService实例
func NewLoanService(loanRepo *repository.LoanRepository, gameRepo *repository.GameRepository, friendRepo *repository.FriendRepository) *LoanService {
	return &LoanService{
		loanRepo:   loanRepo,
		gameRepo:   gameRepo,
		friendRepo: friendRepo,
	}
}

// List 列出全部借阅
func (s *LoanService) List() ([]model.Loan, error) {
	return s.loanRepo.List()
}

// Filter 按条件过滤借阅
func (s *LoanService) Filter(f repository.LoanFilter) ([]model.Loan, error) {
	return s.loanRepo.Filter(f)
}

// Count 借阅数据行数
func (s *LoanService) Count() (int, error) {
	return s.loanRepo.Count()
}

// Get 获取指定借阅
func (s *LoanService) Get(id int) (model.Loan, error) {
	l, ok, err := s.loanRepo.GetByID(id)
	if err != nil {
		return model.Loan{}, err
	}
	if !ok {
		return model.Loan{}, apperrors.New(apperrors.ErrCodeNotFound,
			fmt.Sprintf("loan with id %d not found", id))
	}
	return l, nil
}

// Create 新增借阅
// 校验顺序：游戏存在 → 好友存在 → 游戏可借 → 借阅ID不冲突；
// ID冲突检查先于游戏预订，失败的创建不会改动游戏集合
func (s *LoanService) Create(l model.Loan) (model.Loan, error) {
	game, ok, err := s.gameRepo.GetByID(l.GameID)
	if err != nil {
		return model.Loan{}, err
	}
	if !ok {
		return model.Loan{}, apperrors.New(apperrors.ErrCodeReferenceNotFound,
			fmt.Sprintf("game with id %d not found", l.GameID))
	}

	_, ok, err = s.friendRepo.GetByID(l.FriendID)
	if err != nil {
		return model.Loan{}, err
	}
	if !ok {
		return model.Loan{}, apperrors.New(apperrors.ErrCodeReferenceNotFound,
			fmt.Sprintf("friend with id %d not found", l.FriendID))
	}

	if !game.Available {
		return model.Loan{}, apperrors.New(apperrors.ErrCodeNotAvailable,
			fmt.Sprintf("game with id %d is not available for loan", l.GameID))
	}

	_, exists, err := s.loanRepo.GetByID(l.ID)
	if err != nil {
		return model.Loan{}, err
	}
	if exists {
		return model.Loan{}, apperrors.New(apperrors.ErrCodeDuplicateID,
			fmt.Sprintf("loan with id %d already exists", l.ID))
	}

	if strings.TrimSpace(l.LoanDate) == "" {
		l.LoanDate = today()
	}

	// 先预订游戏并落盘，再写借阅行
	game.Available = false
	if _, _, err := s.gameRepo.Update(game.ID, game); err != nil {
		return model.Loan{}, err
	}
	return s.loanRepo.Create(l)
}

// Update 整行替换指定借阅
// ID冲突检查先于任何游戏改动；换借游戏时先校验新游戏可借，
// 再释放旧游戏、预订新游戏并落盘，最后写借阅行。好友变更不做重复校验
func (s *LoanService) Update(id int, l model.Loan) (model.Loan, error) {
	if l.ID != id {
		_, exists, err := s.loanRepo.GetByID(l.ID)
		if err != nil {
			return model.Loan{}, err
		}
		if exists {
			return model.Loan{}, apperrors.New(apperrors.ErrCodeDuplicateID,
				fmt.Sprintf("loan with id %d already exists", l.ID))
		}
	}

	old, ok, err := s.loanRepo.GetByID(id)
	if err != nil {
		return model.Loan{}, err
	}
	if !ok {
		return model.Loan{}, apperrors.New(apperrors.ErrCodeNotFound,
			fmt.Sprintf("loan with id %d not found", id))
	}

	if strings.TrimSpace(l.LoanDate) == "" {
		l.LoanDate = today()
	}

	if old.GameID != l.GameID {
		newGame, newExists, err := s.gameRepo.GetByID(l.GameID)
		if err != nil {
			return model.Loan{}, err
		}
		// 新游戏存在才校验可借状态；校验发生在任何落盘之前
		if newExists && !newGame.Available {
			return model.Loan{}, apperrors.New(apperrors.ErrCodeNotAvailable,
				fmt.Sprintf("game with id %d is not available for loan", l.GameID))
		}

		if err := s.releaseGame(old.GameID, id); err != nil {
			return model.Loan{}, err
		}
		if newExists {
			newGame.Available = false
			if _, _, err := s.gameRepo.Update(newGame.ID, newGame); err != nil {
				return model.Loan{}, err
			}
		}
	}

	updated, ok, err := s.loanRepo.Update(id, l)
	if err != nil {
		return model.Loan{}, err
	}
	if !ok {
		return model.Loan{}, apperrors.New(apperrors.ErrCodeNotFound,
			fmt.Sprintf("loan with id %d not found", id))
	}
	return updated, nil
}

// Delete 删除指定借阅并释放对应游戏
func (s *LoanService) Delete(id int) error {
	loan, ok, err := s.loanRepo.GetByID(id)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.New(apperrors.ErrCodeNotFound,
			fmt.Sprintf("loan with id %d not found", id))
	}

	// 先释放游戏并落盘，再删借阅行
	if err := s.releaseGame(loan.GameID, id); err != nil {
		return err
	}
	_, err = s.loanRepo.Delete(id)
	return err
}

// releaseGame 将游戏恢复为可借并落盘
// 仅当没有其他借阅（排除 excludeLoanID）仍引用该游戏时才释放；
// 游戏不存在时静默跳过
func (s *LoanService) releaseGame(gameID, excludeLoanID int) error {
	game, ok, err := s.gameRepo.GetByID(gameID)
	if err != nil || !ok {
		return err
	}
	held, err := s.loanRepo.HasOtherLoanForGame(gameID, excludeLoanID)
	if err != nil {
		return err
	}
	if held {
		return nil
	}
	game.Available = true
	_, _, err = s.gameRepo.Update(game.ID, game)
	return err
}
