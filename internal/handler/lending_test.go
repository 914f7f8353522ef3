package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"record-system/internal/csvdb"
	"record-system/internal/model"
	"record-system/internal/repository"
	"record-system/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func newLendingRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	logger := zap.NewNop()

	gamesTable, err := csvdb.NewTable(filepath.Join(dir, "games.csv"), model.GameCodec{}, logger)
	if err != nil {
		t.Fatalf("NewTable games: %v", err)
	}
	friendsTable, err := csvdb.NewTable(filepath.Join(dir, "friends.csv"), model.FriendCodec{}, logger)
	if err != nil {
		t.Fatalf("NewTable friends: %v", err)
	}
	loansTable, err := csvdb.NewTable(filepath.Join(dir, "loans.csv"), model.LoanCodec{}, logger)
	if err != nil {
		t.Fatalf("NewTable loans: %v", err)
	}

	gameRepo := repository.NewGameRepository(gamesTable)
	friendRepo := repository.NewFriendRepository(friendsTable)
	loanRepo := repository.NewLoanRepository(loansTable)
	exports := service.NewExportService()

	r := gin.New()
	RegisterLendingRoutes(r, LendingHandlers{
		Games:         NewGameHandler(service.NewGameService(gameRepo)),
		Friends:       NewFriendHandler(service.NewFriendService(friendRepo)),
		Loans:         NewLoanHandler(service.NewLoanService(loanRepo, gameRepo, friendRepo)),
		GameExports:   NewExportHandler(exports, gameRepo),
		FriendExports: NewExportHandler(exports, friendRepo),
		LoanExports:   NewExportHandler(exports, loanRepo),
	})
	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body %q)", err, w.Body.String())
	}
	return env
}

func decodeGame(t *testing.T, w *httptest.ResponseRecorder) model.Game {
	t.Helper()
	env := decodeEnvelope(t, w)
	var g model.Game
	if err := json.Unmarshal(env.Data, &g); err != nil {
		t.Fatalf("decode game: %v (data %q)", err, string(env.Data))
	}
	return g
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d (body %q)", w.Code, want, w.Body.String())
	}
}

const zeldaJSON = `{"id":1,"title":"Zelda","genre":"Adventure","platform":"Switch","release_year":2017}`

func TestGameRoundTrip(t *testing.T) {
	r := newLendingRouter(t)

	w := doRequest(t, r, http.MethodPost, "/games/", zeldaJSON)
	requireStatus(t, w, http.StatusCreated)
	created := decodeGame(t, w)
	if created.ID != 1 || created.Title != "Zelda" {
		t.Fatalf("created = %+v", created)
	}
	if !created.Available {
		t.Error("available should default to true")
	}

	w = doRequest(t, r, http.MethodGet, "/games/1", "")
	requireStatus(t, w, http.StatusOK)
	got := decodeGame(t, w)
	if got != created {
		t.Errorf("get = %+v, want %+v", got, created)
	}

	w = doRequest(t, r, http.MethodPut, "/games/1",
		`{"id":1,"title":"Zelda BotW","genre":"Adventure","platform":"Switch","release_year":2017,"available":false}`)
	requireStatus(t, w, http.StatusOK)
	updated := decodeGame(t, w)
	if updated.Title != "Zelda BotW" || updated.Available {
		t.Errorf("updated = %+v", updated)
	}

	w = doRequest(t, r, http.MethodDelete, "/games/1", "")
	requireStatus(t, w, http.StatusNoContent)
	if w.Body.Len() != 0 {
		t.Errorf("delete body = %q, want empty", w.Body.String())
	}

	w = doRequest(t, r, http.MethodGet, "/games/1", "")
	requireStatus(t, w, http.StatusNotFound)
	env := decodeEnvelope(t, w)
	if env.Code != http.StatusNotFound || env.Message == "" {
		t.Errorf("error envelope = %+v", env)
	}
}

func TestGameCreateRejectsBadInput(t *testing.T) {
	r := newLendingRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"id":1,`},
		{"missing title", `{"id":1,"release_year":2017}`},
		{"year below range", `{"id":1,"title":"Pong","release_year":1949}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, r, http.MethodPost, "/games/", tt.body)
			requireStatus(t, w, http.StatusBadRequest)
		})
	}

	// 校验失败的创建不落盘
	w := doRequest(t, r, http.MethodGet, "/games/count", "")
	requireStatus(t, w, http.StatusOK)
	env := decodeEnvelope(t, w)
	var count struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(env.Data, &count); err != nil {
		t.Fatalf("decode count: %v", err)
	}
	if count.Count != 0 {
		t.Errorf("count = %d, want 0", count.Count)
	}
}

func TestNonIntegerPathID(t *testing.T) {
	r := newLendingRouter(t)
	w := doRequest(t, r, http.MethodGet, "/games/abc", "")
	requireStatus(t, w, http.StatusBadRequest)
}

func TestGameFilterEndpoint(t *testing.T) {
	r := newLendingRouter(t)
	seedGames := []string{
		zeldaJSON,
		`{"id":2,"title":"Halo","genre":"Shooter","platform":"Xbox","release_year":2001}`,
		`{"id":3,"title":"Mario","genre":"adventure","platform":"Switch","release_year":2020}`,
	}
	for _, body := range seedGames {
		requireStatus(t, doRequest(t, r, http.MethodPost, "/games/", body), http.StatusCreated)
	}

	w := doRequest(t, r, http.MethodGet, "/games/filter?genre=ADVENTURE&year_min=2018", "")
	requireStatus(t, w, http.StatusOK)
	env := decodeEnvelope(t, w)
	var games []model.Game
	if err := json.Unmarshal(env.Data, &games); err != nil {
		t.Fatalf("decode games: %v", err)
	}
	if len(games) != 1 || games[0].ID != 3 {
		t.Errorf("filter result = %+v", games)
	}

	w = doRequest(t, r, http.MethodGet, "/games/filter?available=maybe", "")
	requireStatus(t, w, http.StatusBadRequest)
}

func TestLoanInvariantOverAPI(t *testing.T) {
	r := newLendingRouter(t)
	requireStatus(t, doRequest(t, r, http.MethodPost, "/games/", zeldaJSON), http.StatusCreated)
	requireStatus(t, doRequest(t, r, http.MethodPost, "/friends/",
		`{"id":1,"name":"Alice","phone":"123456"}`), http.StatusCreated)

	// 创建借阅后游戏立即不可借
	w := doRequest(t, r, http.MethodPost, "/loans/",
		`{"id":1,"game_id":1,"friend_id":1,"due_date":"2025-07-01"}`)
	requireStatus(t, w, http.StatusCreated)

	w = doRequest(t, r, http.MethodGet, "/games/1", "")
	requireStatus(t, w, http.StatusOK)
	if g := decodeGame(t, w); g.Available {
		t.Fatal("game should be unavailable after loan create")
	}

	// 不可借游戏的再次借阅被拒绝
	w = doRequest(t, r, http.MethodPost, "/loans/",
		`{"id":2,"game_id":1,"friend_id":1,"due_date":"2025-07-15"}`)
	requireStatus(t, w, http.StatusBadRequest)
	env := decodeEnvelope(t, w)
	if !strings.Contains(env.Message, "not available") {
		t.Errorf("message = %q", env.Message)
	}

	// 删除借阅释放游戏，随后可再次借出
	requireStatus(t, doRequest(t, r, http.MethodDelete, "/loans/1", ""), http.StatusNoContent)

	w = doRequest(t, r, http.MethodGet, "/games/1", "")
	requireStatus(t, w, http.StatusOK)
	if g := decodeGame(t, w); !g.Available {
		t.Fatal("game should be available after loan delete")
	}

	w = doRequest(t, r, http.MethodPost, "/loans/",
		`{"id":2,"game_id":1,"friend_id":1,"due_date":"2025-07-15"}`)
	requireStatus(t, w, http.StatusCreated)
}

func TestLoanCreateMissingReferences(t *testing.T) {
	r := newLendingRouter(t)

	w := doRequest(t, r, http.MethodPost, "/loans/",
		`{"id":1,"game_id":9,"friend_id":1,"due_date":"2025-07-01"}`)
	requireStatus(t, w, http.StatusNotFound)

	requireStatus(t, doRequest(t, r, http.MethodPost, "/games/", zeldaJSON), http.StatusCreated)
	w = doRequest(t, r, http.MethodPost, "/loans/",
		`{"id":1,"game_id":1,"friend_id":9,"due_date":"2025-07-01"}`)
	requireStatus(t, w, http.StatusNotFound)
}

func TestGameExportEndpoints(t *testing.T) {
	r := newLendingRouter(t)
	requireStatus(t, doRequest(t, r, http.MethodPost, "/games/", zeldaJSON), http.StatusCreated)

	t.Run("hash", func(t *testing.T) {
		w := doRequest(t, r, http.MethodGet, "/games/hash", "")
		requireStatus(t, w, http.StatusOK)
		env := decodeEnvelope(t, w)
		var data struct {
			File string `json:"file"`
			Hash string `json:"hash_sha256"`
		}
		if err := json.Unmarshal(env.Data, &data); err != nil {
			t.Fatalf("decode hash data: %v", err)
		}
		if data.File != "games.csv" {
			t.Errorf("file = %q", data.File)
		}
		if len(data.Hash) != 64 {
			t.Errorf("hash length = %d, want 64", len(data.Hash))
		}
	})

	t.Run("zip attachment", func(t *testing.T) {
		w := doRequest(t, r, http.MethodGet, "/games/zip", "")
		requireStatus(t, w, http.StatusOK)
		if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "games.zip") {
			t.Errorf("Content-Disposition = %q", cd)
		}
		if w.Body.Len() == 0 {
			t.Error("empty zip body")
		}
	})

	t.Run("xml attachment", func(t *testing.T) {
		w := doRequest(t, r, http.MethodGet, "/games/xml", "")
		requireStatus(t, w, http.StatusOK)
		body := w.Body.String()
		if !strings.Contains(body, "<games>") || !strings.Contains(body, "<title>Zelda</title>") {
			t.Errorf("xml body = %q", body)
		}
	})

	t.Run("xlsx attachment", func(t *testing.T) {
		w := doRequest(t, r, http.MethodGet, "/games/xlsx", "")
		requireStatus(t, w, http.StatusOK)
		if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "games.xlsx") {
			t.Errorf("Content-Disposition = %q", cd)
		}
	})
}

func TestLoanFilterEndpoint(t *testing.T) {
	r := newLendingRouter(t)
	requireStatus(t, doRequest(t, r, http.MethodPost, "/games/", zeldaJSON), http.StatusCreated)
	requireStatus(t, doRequest(t, r, http.MethodPost, "/games/",
		`{"id":2,"title":"Halo","genre":"Shooter","platform":"Xbox","release_year":2001}`), http.StatusCreated)
	requireStatus(t, doRequest(t, r, http.MethodPost, "/friends/",
		`{"id":1,"name":"Alice","phone":"123456"}`), http.StatusCreated)
	requireStatus(t, doRequest(t, r, http.MethodPost, "/loans/",
		`{"id":1,"game_id":1,"friend_id":1,"due_date":"2025-07-01"}`), http.StatusCreated)
	requireStatus(t, doRequest(t, r, http.MethodPost, "/loans/",
		`{"id":2,"game_id":2,"friend_id":1,"due_date":"2025-07-02"}`), http.StatusCreated)

	w := doRequest(t, r, http.MethodGet, "/loans/filter?game_id=2", "")
	requireStatus(t, w, http.StatusOK)
	env := decodeEnvelope(t, w)
	var loans []model.Loan
	if err := json.Unmarshal(env.Data, &loans); err != nil {
		t.Fatalf("decode loans: %v", err)
	}
	if len(loans) != 1 || loans[0].ID != 2 {
		t.Errorf("filter result = %+v", loans)
	}

	w = doRequest(t, r, http.MethodGet, "/loans/filter?game_id=two", "")
	requireStatus(t, w, http.StatusBadRequest)
}
