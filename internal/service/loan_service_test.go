package service

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"record-system/internal/csvdb"
	"record-system/internal/model"
	"record-system/internal/repository"

	apperrors "record-system/pkg/errors"

	"go.uber.org/zap"
)

type lendingFixture struct {
	games   *GameService
	friends *FriendService
	loans   *LoanService

	gamesPath string
	loansPath string
}

func newLendingFixture(t *testing.T) *lendingFixture {
	t.Helper()
	dir := t.TempDir()
	log := zap.NewNop()

	gameTable, err := csvdb.NewTable(filepath.Join(dir, "games.csv"), model.GameCodec{}, log)
	if err != nil {
		t.Fatalf("games table: %v", err)
	}
	friendTable, err := csvdb.NewTable(filepath.Join(dir, "friends.csv"), model.FriendCodec{}, log)
	if err != nil {
		t.Fatalf("friends table: %v", err)
	}
	loanTable, err := csvdb.NewTable(filepath.Join(dir, "loans.csv"), model.LoanCodec{}, log)
	if err != nil {
		t.Fatalf("loans table: %v", err)
	}

	gameRepo := repository.NewGameRepository(gameTable)
	friendRepo := repository.NewFriendRepository(friendTable)
	loanRepo := repository.NewLoanRepository(loanTable)

	return &lendingFixture{
		games:     NewGameService(gameRepo),
		friends:   NewFriendService(friendRepo),
		loans:     NewLoanService(loanRepo, gameRepo, friendRepo),
		gamesPath: gameTable.Path(),
		loansPath: loanTable.Path(),
	}
}

// seed 写入两个可借游戏和一个好友
func (fx *lendingFixture) seed(t *testing.T) {
	t.Helper()
	games := []model.Game{
		{ID: 1, Title: "Zelda", Genre: "Adventure", Platform: "Switch", ReleaseYear: 2017, Available: true},
		{ID: 2, Title: "Halo", Genre: "Shooter", Platform: "Xbox", ReleaseYear: 2001, Available: true},
	}
	for _, g := range games {
		if _, err := fx.games.Create(g); err != nil {
			t.Fatalf("seed game %d: %v", g.ID, err)
		}
	}
	if _, err := fx.friends.Create(model.Friend{ID: 1, Name: "Alice", Phone: "111", RegisteredDate: "2024-01-01"}); err != nil {
		t.Fatalf("seed friend: %v", err)
	}
}

func (fx *lendingFixture) mustGame(t *testing.T, id int) model.Game {
	t.Helper()
	g, err := fx.games.Get(id)
	if err != nil {
		t.Fatalf("get game %d: %v", id, err)
	}
	return g
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", code)
	}
	appErr, ok := apperrors.As(err)
	if !ok {
		t.Fatalf("expected AppError with code %s, got %v", code, err)
	}
	if appErr.Code != code {
		t.Fatalf("error code = %s, want %s (message %q)", appErr.Code, code, appErr.Message)
	}
}

func TestLoanCreateReservesGame(t *testing.T) {
	fx := newLendingFixture(t)
	fx.seed(t)

	loan := model.Loan{ID: 1, GameID: 1, FriendID: 1, LoanDate: "2024-05-01", DueDate: "2024-05-15"}
	created, err := fx.loans.Create(loan)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created != loan {
		t.Errorf("created = %+v, want %+v", created, loan)
	}
	if g := fx.mustGame(t, 1); g.Available {
		t.Error("game 1 should be unavailable after loan create")
	}
}

func TestLoanCreateValidationOrder(t *testing.T) {
	t.Run("missing game", func(t *testing.T) {
		fx := newLendingFixture(t)
		fx.seed(t)
		_, err := fx.loans.Create(model.Loan{ID: 1, GameID: 99, FriendID: 1, DueDate: "2024-05-15"})
		requireCode(t, err, apperrors.ErrCodeReferenceNotFound)
	})

	t.Run("missing friend", func(t *testing.T) {
		fx := newLendingFixture(t)
		fx.seed(t)
		_, err := fx.loans.Create(model.Loan{ID: 1, GameID: 1, FriendID: 99, DueDate: "2024-05-15"})
		requireCode(t, err, apperrors.ErrCodeReferenceNotFound)
		if g := fx.mustGame(t, 1); !g.Available {
			t.Error("failed create must not reserve the game")
		}
	})

	t.Run("unavailable game keeps loans byte-stable", func(t *testing.T) {
		fx := newLendingFixture(t)
		fx.seed(t)
		if _, err := fx.loans.Create(model.Loan{ID: 1, GameID: 1, FriendID: 1, DueDate: "2024-05-15"}); err != nil {
			t.Fatalf("first loan: %v", err)
		}

		before, err := os.ReadFile(fx.loansPath)
		if err != nil {
			t.Fatalf("read loans file: %v", err)
		}
		_, err = fx.loans.Create(model.Loan{ID: 2, GameID: 1, FriendID: 1, DueDate: "2024-05-20"})
		requireCode(t, err, apperrors.ErrCodeNotAvailable)

		after, err := os.ReadFile(fx.loansPath)
		if err != nil {
			t.Fatalf("read loans file: %v", err)
		}
		if string(before) != string(after) {
			t.Error("loans file changed by a failed create")
		}
	})

	t.Run("duplicate loan id leaves game available", func(t *testing.T) {
		fx := newLendingFixture(t)
		fx.seed(t)
		if _, err := fx.loans.Create(model.Loan{ID: 1, GameID: 1, FriendID: 1, DueDate: "2024-05-15"}); err != nil {
			t.Fatalf("first loan: %v", err)
		}

		// 借另一款游戏但复用已占用的借阅ID
		_, err := fx.loans.Create(model.Loan{ID: 1, GameID: 2, FriendID: 1, DueDate: "2024-05-20"})
		requireCode(t, err, apperrors.ErrCodeDuplicateID)
		if g := fx.mustGame(t, 2); !g.Available {
			t.Error("duplicate-id create must not strand game 2 unavailable")
		}
	})
}

func TestLoanCreateDefaultsLoanDate(t *testing.T) {
	fx := newLendingFixture(t)
	fx.seed(t)

	created, err := fx.loans.Create(model.Loan{ID: 1, GameID: 1, FriendID: 1, DueDate: "2099-01-01"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if want := time.Now().Format("2006-01-02"); created.LoanDate != want {
		t.Errorf("LoanDate = %q, want today %q", created.LoanDate, want)
	}
}

func TestLoanDeleteReleasesGame(t *testing.T) {
	fx := newLendingFixture(t)
	fx.seed(t)
	if _, err := fx.loans.Create(model.Loan{ID: 1, GameID: 1, FriendID: 1, DueDate: "2024-05-15"}); err != nil {
		t.Fatalf("create loan: %v", err)
	}

	if err := fx.loans.Delete(1); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if g := fx.mustGame(t, 1); !g.Available {
		t.Error("game 1 should be available after loan delete")
	}

	// 释放后可以重新借出
	if _, err := fx.loans.Create(model.Loan{ID: 2, GameID: 1, FriendID: 1, DueDate: "2024-06-15"}); err != nil {
		t.Fatalf("re-loan after release: %v", err)
	}
}

func TestLoanDeleteKeepsGameHeldByOtherLoan(t *testing.T) {
	fx := newLendingFixture(t)
	fx.seed(t)

	// 两条借阅指向同一游戏：第二条绕过服务校验直接写入，模拟历史数据
	if _, err := fx.loans.Create(model.Loan{ID: 1, GameID: 1, FriendID: 1, DueDate: "2024-05-15"}); err != nil {
		t.Fatalf("create loan 1: %v", err)
	}
	dir := filepath.Dir(fx.loansPath)
	loanTable, err := csvdb.NewTable(filepath.Join(dir, "loans.csv"), model.LoanCodec{}, zap.NewNop())
	if err != nil {
		t.Fatalf("reopen loans table: %v", err)
	}
	if _, err := loanTable.Create(model.Loan{ID: 2, GameID: 1, FriendID: 1, LoanDate: "2024-05-02", DueDate: "2024-05-16"}); err != nil {
		t.Fatalf("seed second loan: %v", err)
	}

	if err := fx.loans.Delete(1); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if g := fx.mustGame(t, 1); g.Available {
		t.Error("game 1 must stay unavailable while loan 2 still references it")
	}

	if err := fx.loans.Delete(2); err != nil {
		t.Fatalf("Delete last loan: %v", err)
	}
	if g := fx.mustGame(t, 1); !g.Available {
		t.Error("game 1 should be released once the last loan is gone")
	}
}

func TestLoanUpdateSwapsGames(t *testing.T) {
	fx := newLendingFixture(t)
	fx.seed(t)
	if _, err := fx.loans.Create(model.Loan{ID: 1, GameID: 1, FriendID: 1, DueDate: "2024-05-15"}); err != nil {
		t.Fatalf("create loan: %v", err)
	}

	updated, err := fx.loans.Update(1, model.Loan{ID: 1, GameID: 2, FriendID: 1, LoanDate: "2024-05-01", DueDate: "2024-05-15"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.GameID != 2 {
		t.Errorf("GameID = %d, want 2", updated.GameID)
	}
	if g := fx.mustGame(t, 1); !g.Available {
		t.Error("old game should be released")
	}
	if g := fx.mustGame(t, 2); g.Available {
		t.Error("new game should be reserved")
	}
}

func TestLoanUpdateUnavailableNewGameAbortsBeforePersisting(t *testing.T) {
	fx := newLendingFixture(t)
	fx.seed(t)
	if _, err := fx.loans.Create(model.Loan{ID: 1, GameID: 1, FriendID: 1, DueDate: "2024-05-15"}); err != nil {
		t.Fatalf("loan on game 1: %v", err)
	}
	if _, err := fx.loans.Create(model.Loan{ID: 2, GameID: 2, FriendID: 1, DueDate: "2024-05-15"}); err != nil {
		t.Fatalf("loan on game 2: %v", err)
	}

	// 游戏2已被借阅2占用，借阅1不能换到游戏2上
	_, err := fx.loans.Update(1, model.Loan{ID: 1, GameID: 2, FriendID: 1, LoanDate: "2024-05-01", DueDate: "2024-05-15"})
	requireCode(t, err, apperrors.ErrCodeNotAvailable)

	// 失败的更新不得释放旧游戏
	if g := fx.mustGame(t, 1); g.Available {
		t.Error("failed update must not release game 1")
	}
	loan, err := fx.loans.Get(1)
	if err != nil {
		t.Fatalf("get loan 1: %v", err)
	}
	if loan.GameID != 1 {
		t.Errorf("loan 1 GameID = %d, want unchanged 1", loan.GameID)
	}
}

func TestLoanUpdateDuplicateIDCheckedFirst(t *testing.T) {
	fx := newLendingFixture(t)
	fx.seed(t)
	if _, err := fx.loans.Create(model.Loan{ID: 1, GameID: 1, FriendID: 1, DueDate: "2024-05-15"}); err != nil {
		t.Fatalf("loan 1: %v", err)
	}
	if _, err := fx.loans.Create(model.Loan{ID: 2, GameID: 2, FriendID: 1, DueDate: "2024-05-15"}); err != nil {
		t.Fatalf("loan 2: %v", err)
	}

	// 借阅1试图改成已存在的ID 2，且换借游戏；冲突必须先于任何游戏改动
	_, err := fx.loans.Update(1, model.Loan{ID: 2, GameID: 2, FriendID: 1, LoanDate: "2024-05-01", DueDate: "2024-05-15"})
	requireCode(t, err, apperrors.ErrCodeDuplicateID)
	if g := fx.mustGame(t, 1); g.Available {
		t.Error("failed update must not release game 1")
	}
}

func TestLoanUpdateMissingLoan(t *testing.T) {
	fx := newLendingFixture(t)
	fx.seed(t)
	_, err := fx.loans.Update(9, model.Loan{ID: 9, GameID: 1, FriendID: 1, DueDate: "2024-05-15"})
	requireCode(t, err, apperrors.ErrCodeNotFound)
}

func TestLoanDeleteMissing(t *testing.T) {
	fx := newLendingFixture(t)
	fx.seed(t)
	requireCode(t, fx.loans.Delete(9), apperrors.ErrCodeNotFound)
}
