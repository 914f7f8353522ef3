package service

import (
	"fmt"
	"testing"
	"time"

	"record-system/internal/model"

	apperrors "record-system/pkg/errors"
)

func TestGameReleaseYearValidation(t *testing.T) {
	current := time.Now().Year()
	tests := []struct {
		year    int
		wantErr bool
	}{
		{1949, true},
		{1950, false},
		{2001, false},
		{current, false},
		{current + 1, true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("year %d", tt.year), func(t *testing.T) {
			fx := newLendingFixture(t)
			_, err := fx.games.Create(model.Game{ID: 1, Title: "X", ReleaseYear: tt.year, Available: true})
			if tt.wantErr {
				requireCode(t, err, apperrors.ErrCodeValidation)
			} else if err != nil {
				t.Fatalf("Create: %v", err)
			}
		})
	}

	t.Run("update validates too", func(t *testing.T) {
		fx := newLendingFixture(t)
		fx.seed(t)
		_, err := fx.games.Update(1, model.Game{ID: 1, Title: "Zelda", ReleaseYear: 1800, Available: true})
		requireCode(t, err, apperrors.ErrCodeValidation)
	})
}

func TestGameCreateDuplicateID(t *testing.T) {
	fx := newLendingFixture(t)
	fx.seed(t)
	_, err := fx.games.Create(model.Game{ID: 1, Title: "Clone", ReleaseYear: 2020, Available: true})
	requireCode(t, err, apperrors.ErrCodeDuplicateID)
}

func TestGameGetMissing(t *testing.T) {
	fx := newLendingFixture(t)
	fx.seed(t)
	_, err := fx.games.Get(42)
	requireCode(t, err, apperrors.ErrCodeNotFound)
}

func TestGameUpdateCanChangeID(t *testing.T) {
	fx := newLendingFixture(t)
	fx.seed(t)

	updated, err := fx.games.Update(1, model.Game{ID: 5, Title: "Zelda", Genre: "Adventure", Platform: "Switch", ReleaseYear: 2017, Available: true})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.ID != 5 {
		t.Errorf("ID = %d, want 5", updated.ID)
	}
	if _, err := fx.games.Get(1); err == nil {
		t.Error("old id should be gone after identity change")
	}
	if _, err := fx.games.Get(5); err != nil {
		t.Errorf("new id should resolve: %v", err)
	}
}

func TestGameUpdateIDCollision(t *testing.T) {
	fx := newLendingFixture(t)
	fx.seed(t)
	_, err := fx.games.Update(1, model.Game{ID: 2, Title: "Zelda", ReleaseYear: 2017, Available: true})
	requireCode(t, err, apperrors.ErrCodeDuplicateID)
}

func TestFriendRegisteredDateDefaultsToToday(t *testing.T) {
	fx := newLendingFixture(t)
	created, err := fx.friends.Create(model.Friend{ID: 1, Name: "Bob", Phone: "222"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if want := time.Now().Format("2006-01-02"); created.RegisteredDate != want {
		t.Errorf("RegisteredDate = %q, want %q", created.RegisteredDate, want)
	}
}

func TestFriendDeleteMissing(t *testing.T) {
	fx := newLendingFixture(t)
	requireCode(t, fx.friends.Delete(3), apperrors.ErrCodeNotFound)
}
