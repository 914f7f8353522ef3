package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"record-system/internal/model"

	apperrors "record-system/pkg/errors"

	"github.com/go-sql-driver/mysql"
)

func TestClampRange(t *testing.T) {
	tests := []struct {
		name       string
		offset     int
		limit      int
		wantOffset int
		wantLimit  int
	}{
		{"in range", 5, 50, 5, 50},
		{"negative offset", -3, 50, 0, 50},
		{"zero limit", 0, 0, 0, 10},
		{"limit too large", 0, 101, 0, 10},
		{"limit at max", 0, 100, 0, 100},
		{"limit at min", 0, 1, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit := clampRange(tt.offset, tt.limit)
			if offset != tt.wantOffset || limit != tt.wantLimit {
				t.Errorf("clampRange(%d, %d) = (%d, %d), want (%d, %d)",
					tt.offset, tt.limit, offset, limit, tt.wantOffset, tt.wantLimit)
			}
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	t.Run("rfc3339", func(t *testing.T) {
		ts, err := ParseTimestamp("2024-05-01T10:30:00Z")
		if err != nil {
			t.Fatalf("ParseTimestamp: %v", err)
		}
		want := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)
		if !ts.Equal(want) {
			t.Errorf("got %v, want %v", ts, want)
		}
	})

	t.Run("date only", func(t *testing.T) {
		ts, err := ParseTimestamp("2024-05-01")
		if err != nil {
			t.Fatalf("ParseTimestamp: %v", err)
		}
		want := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
		if !ts.Equal(want) {
			t.Errorf("got %v, want %v", ts, want)
		}
	})

	t.Run("unparsable", func(t *testing.T) {
		_, err := ParseTimestamp("yesterday")
		requireCode(t, err, apperrors.ErrCodeValidation)
	})
}

func TestTranslateDuplicateKey(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		want    string
		wantRaw bool
	}{
		{
			name: "username index",
			err:  &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'bob' for key 'user.idx_user_username'"},
			want: "Username is already in use.",
		},
		{
			name: "email index",
			err:  &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'b@x.io' for key 'user.idx_user_email'"},
			want: "Email is already in use.",
		},
		{
			name: "category name index",
			err:  &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'go' for key 'category.idx_category_name'"},
			want: "Name is already in use.",
		},
		{
			name: "unknown unique index",
			err:  &mysql.MySQLError{Number: 1062, Message: "Duplicate entry '1-2' for key 'post_category.PRIMARY'"},
			want: "Duplicate entry violates a unique constraint.",
		},
		{
			name:    "other mysql error passes through",
			err:     &mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"},
			wantRaw: true,
		},
		{
			name:    "plain error passes through",
			err:     errors.New("boom"),
			wantRaw: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateDuplicateKey(tt.err)
			if tt.wantRaw {
				if got != tt.err {
					t.Errorf("expected the original error back, got %v", got)
				}
				return
			}
			appErr, ok := apperrors.As(got)
			if !ok {
				t.Fatalf("expected AppError, got %v", got)
			}
			if appErr.Code != apperrors.ErrCodeUniqueness {
				t.Errorf("code = %s, want %s", appErr.Code, apperrors.ErrCodeUniqueness)
			}
			if appErr.Message != tt.want {
				t.Errorf("message = %q, want %q", appErr.Message, tt.want)
			}
			if !errors.Is(got, tt.err) {
				t.Error("translated error should wrap the original")
			}
		})
	}
}

func TestMissingCategoriesMessage(t *testing.T) {
	tests := []struct {
		ids  []uint
		want string
	}{
		{[]uint{2, 3}, "Categories not found: [2, 3]"},
		{[]uint{7}, "Categories not found: [7]"},
	}
	for _, tt := range tests {
		if got := missingCategoriesMessage(tt.ids); got != tt.want {
			t.Errorf("missingCategoriesMessage(%v) = %q, want %q", tt.ids, got, tt.want)
		}
	}
}

func TestMergeUser(t *testing.T) {
	base := func() *model.User {
		return &model.User{Username: "bob", Email: "bob@x.io", FullName: "Bob", Bio: "hi"}
	}
	str := func(s string) *string { return &s }

	t.Run("only supplied fields change", func(t *testing.T) {
		u := base()
		mergeUser(u, UserPatch{Email: str("new@x.io")})
		if u.Email != "new@x.io" {
			t.Errorf("Email = %q", u.Email)
		}
		if u.Username != "bob" || u.FullName != "Bob" || u.Bio != "hi" {
			t.Errorf("untouched fields changed: %+v", u)
		}
	})

	t.Run("explicit empty string is applied", func(t *testing.T) {
		u := base()
		mergeUser(u, UserPatch{Bio: str("")})
		if u.Bio != "" {
			t.Errorf("Bio = %q, want empty", u.Bio)
		}
	})

	t.Run("empty patch is a no-op", func(t *testing.T) {
		u := base()
		mergeUser(u, UserPatch{})
		want := base()
		if u.Username != want.Username || u.Email != want.Email ||
			u.FullName != want.FullName || u.Bio != want.Bio {
			t.Errorf("record changed: %+v", u)
		}
	})
}

func TestDedupeIDs(t *testing.T) {
	got := dedupeIDs([]uint{3, 1, 3, 2, 1})
	want := []uint{3, 1, 2}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestSanitizeContent(t *testing.T) {
	t.Run("strips script", func(t *testing.T) {
		got := sanitizeContent(`hello <script>alert("x")</script>world`)
		if strings.Contains(got, "<script>") || strings.Contains(got, "alert") {
			t.Errorf("script survived: %q", got)
		}
	})

	t.Run("keeps benign formatting", func(t *testing.T) {
		got := sanitizeContent("<p>hello <b>world</b></p>")
		if !strings.Contains(got, "<b>world</b>") {
			t.Errorf("benign markup stripped: %q", got)
		}
	})

	t.Run("plain text untouched", func(t *testing.T) {
		if got := sanitizeContent("just text"); got != "just text" {
			t.Errorf("got %q", got)
		}
	})
}
