package api_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/golang/mock/gomock"
	"github.com/limbo/gratudiary/internal/api"
	errorvalues "github.com/limbo/gratudiary/internal/error_values"
	"github.com/limbo/gratudiary/internal/repository"
	"github.com/limbo/gratudiary/internal/service"
	"github.com/limbo/gratudiary/internal/service/mocks"
	"github.com/limbo/gratudiary/internal/session"
	"github.com/limbo/gratudiary/internal/storage"
	"github.com/limbo/gratudiary/pkg/entity"
	jwtservice "github.com/limbo/gratudiary/pkg/jwt_service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	service.InitValidator()
	m.Run()
}

var (
	userID   = "3f1a3c1e-0a52-4a4e-9d0c-1c1f1b8a0e11"
	testUser = &entity.User{
		ID:       userID,
		Name:     "Ann",
		Email:    "ann@example.com",
		JoinedAt: time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC),
	}
	jwtSecret = "secret"
)

func newTestServer(us service.UserServiceI, js service.JournalServiceI) *api.Server {
	return api.New(&api.ServicesList{
		UserService:    us,
		JournalService: js,
		Sessions:       session.NewManager(storage.NewMemoryStore(), 0),
		JwtService:     jwtservice.New(jwtSecret, time.Hour),
	})
}

// authorized returns r as AuthMiddleware would pass it on.
func authorized(r *http.Request) *http.Request {
	sess := session.NewManager(storage.NewMemoryStore(), 0).Open("test")
	return r.WithContext(api.WithAuth(r.Context(), testUser, sess))
}

func mustMarshal(t *testing.T, v any) []byte {
	body, err := sonic.ConfigDefault.Marshal(v)
	require.NoError(t, err)
	return body
}

func TestRegister(t *testing.T) {
	ctrl := gomock.NewController(t)
	uService := mocks.NewMockUserServiceI(ctrl)
	serv := newTestServer(uService, nil)
	body := mustMarshal(t, api.RegisterRequest{Name: "Ann", Email: "ann@example.com", Password: "secret1"})
	expectedReq := &service.RegisterRequest{Name: "Ann", Email: "ann@example.com", Password: "secret1"}

	testCases := []struct {
		Desc         string
		ExpectedCode int
		MockPrepFunc func()
		Body         io.Reader
	}{
		{
			Desc:         "registered",
			ExpectedCode: http.StatusCreated,
			MockPrepFunc: func() {
				uService.EXPECT().Register(gomock.Any(), gomock.Any(), expectedReq).Return(testUser, nil)
			},
			Body: bytes.NewReader(body),
		},
		{
			Desc:         "validation failed",
			ExpectedCode: http.StatusBadRequest,
			MockPrepFunc: func() {
				uService.EXPECT().Register(gomock.Any(), gomock.Any(), expectedReq).
					Return(nil, errors.Join(errorvalues.ErrValidation, errors.New("Password: min")))
			},
			Body: bytes.NewReader(body),
		},
		{
			Desc:         "email taken",
			ExpectedCode: http.StatusConflict,
			MockPrepFunc: func() {
				uService.EXPECT().Register(gomock.Any(), gomock.Any(), expectedReq).Return(nil, errorvalues.ErrUserExists)
			},
			Body: bytes.NewReader(body),
		},
		{
			Desc:         "service error",
			ExpectedCode: http.StatusInternalServerError,
			MockPrepFunc: func() {
				uService.EXPECT().Register(gomock.Any(), gomock.Any(), expectedReq).Return(nil, errors.New("mocked error"))
			},
			Body: bytes.NewReader(body),
		},
		{
			Desc:         "invalid body",
			ExpectedCode: http.StatusBadRequest,
			MockPrepFunc: func() {},
			Body:         bytes.NewReader([]byte("{")),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			tc.MockPrepFunc()
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", tc.Body)
			serv.Register(rr, req)
			assert.Equal(t, tc.ExpectedCode, rr.Result().StatusCode)
			if tc.ExpectedCode == http.StatusCreated {
				var resp api.AuthResponse
				require.NoError(t, sonic.ConfigDefault.NewDecoder(rr.Result().Body).Decode(&resp))
				assert.NotEmpty(t, resp.Token)
				assert.Equal(t, userID, resp.User.ID)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	ctrl := gomock.NewController(t)
	uService := mocks.NewMockUserServiceI(ctrl)
	serv := newTestServer(uService, nil)
	body := mustMarshal(t, api.LoginRequest{Email: "ann@example.com", Password: "secret1"})

	testCases := []struct {
		Desc         string
		ExpectedCode int
		MockPrepFunc func()
		Body         io.Reader
	}{
		{
			Desc:         "logged in",
			ExpectedCode: http.StatusOK,
			MockPrepFunc: func() {
				uService.EXPECT().Login(gomock.Any(), gomock.Any(), "ann@example.com", "secret1").Return(testUser, nil)
			},
			Body: bytes.NewReader(body),
		},
		{
			Desc:         "wrong credentials",
			ExpectedCode: http.StatusUnauthorized,
			MockPrepFunc: func() {
				uService.EXPECT().Login(gomock.Any(), gomock.Any(), "ann@example.com", "secret1").Return(nil, errorvalues.ErrWrongCredentials)
			},
			Body: bytes.NewReader(body),
		},
		{
			Desc:         "service error",
			ExpectedCode: http.StatusInternalServerError,
			MockPrepFunc: func() {
				uService.EXPECT().Login(gomock.Any(), gomock.Any(), "ann@example.com", "secret1").Return(nil, errors.New("mocked error"))
			},
			Body: bytes.NewReader(body),
		},
		{
			Desc:         "invalid body",
			ExpectedCode: http.StatusBadRequest,
			MockPrepFunc: func() {},
			Body:         http.NoBody,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			tc.MockPrepFunc()
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", tc.Body)
			serv.Login(rr, req)
			assert.Equal(t, tc.ExpectedCode, rr.Result().StatusCode)
		})
	}
}

func TestLogoutAndMe(t *testing.T) {
	ctrl := gomock.NewController(t)
	uService := mocks.NewMockUserServiceI(ctrl)
	serv := newTestServer(uService, nil)

	t.Run("me", func(t *testing.T) {
		rr := httptest.NewRecorder()
		serv.Me(rr, authorized(httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)))
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
		var user entity.User
		require.NoError(t, sonic.ConfigDefault.NewDecoder(rr.Result().Body).Decode(&user))
		assert.Equal(t, "ann@example.com", user.Email)
	})
	t.Run("me unauthorized", func(t *testing.T) {
		rr := httptest.NewRecorder()
		serv.Me(rr, httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Result().StatusCode)
	})
	t.Run("logged out", func(t *testing.T) {
		uService.EXPECT().Logout(gomock.Any(), gomock.Any()).Return(nil)
		rr := httptest.NewRecorder()
		serv.Logout(rr, authorized(httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)))
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
	})
	t.Run("logout service error", func(t *testing.T) {
		uService.EXPECT().Logout(gomock.Any(), gomock.Any()).Return(errors.New("mocked error"))
		rr := httptest.NewRecorder()
		serv.Logout(rr, authorized(httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)))
		assert.Equal(t, http.StatusInternalServerError, rr.Result().StatusCode)
	})
}

func TestCreateEntry(t *testing.T) {
	ctrl := gomock.NewController(t)
	jService := mocks.NewMockJournalServiceI(ctrl)
	serv := newTestServer(nil, jService)
	entryReq := service.EntryRequest{
		WorkedWell:  []string{"shipped the release"},
		MadeHappy:   []string{"coffee"},
		GratefulFor: []string{"friends"},
		Mood:        2,
		MoodNote:    "tired",
	}
	body := mustMarshal(t, entryReq)

	testCases := []struct {
		Desc         string
		ExpectedCode int
		MockPrepFunc func()
		Body         io.Reader
		Authorized   bool
	}{
		{
			Desc:         "created",
			ExpectedCode: http.StatusCreated,
			MockPrepFunc: func() {
				jService.EXPECT().AddEntry(gomock.Any(), userID, &entryReq).Return(&entity.JournalEntry{
					ID:   "e1",
					Date: time.Now(),
					Mood: 2,
				}, nil)
			},
			Body:       bytes.NewReader(body),
			Authorized: true,
		},
		{
			Desc:         "validation failed",
			ExpectedCode: http.StatusBadRequest,
			MockPrepFunc: func() {
				jService.EXPECT().AddEntry(gomock.Any(), userID, &entryReq).Return(nil, errorvalues.ErrValidation)
			},
			Body:       bytes.NewReader(body),
			Authorized: true,
		},
		{
			Desc:         "service error",
			ExpectedCode: http.StatusInternalServerError,
			MockPrepFunc: func() {
				jService.EXPECT().AddEntry(gomock.Any(), userID, &entryReq).Return(nil, errors.New("mocked error"))
			},
			Body:       bytes.NewReader(body),
			Authorized: true,
		},
		{
			Desc:         "invalid body",
			ExpectedCode: http.StatusBadRequest,
			MockPrepFunc: func() {},
			Body:         bytes.NewReader([]byte(`{"mood":"five"}`)),
			Authorized:   true,
		},
		{
			Desc:         "unauthorized",
			ExpectedCode: http.StatusUnauthorized,
			MockPrepFunc: func() {},
			Body:         bytes.NewReader(body),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			tc.MockPrepFunc()
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/entries", tc.Body)
			if tc.Authorized {
				req = authorized(req)
			}
			serv.CreateEntry(rr, req)
			assert.Equal(t, tc.ExpectedCode, rr.Result().StatusCode)
		})
	}
}

func TestListEntries(t *testing.T) {
	ctrl := gomock.NewController(t)
	jService := mocks.NewMockJournalServiceI(ctrl)
	serv := newTestServer(nil, jService)

	t.Run("empty journal is an empty list", func(t *testing.T) {
		jService.EXPECT().Entries(gomock.Any(), userID).Return(nil, nil)
		rr := httptest.NewRecorder()
		serv.ListEntries(rr, authorized(httptest.NewRequest(http.MethodGet, "/api/v1/entries", nil)))
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
		raw, err := io.ReadAll(rr.Result().Body)
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"entries":[]`)
	})
	t.Run("entries provided", func(t *testing.T) {
		jService.EXPECT().Entries(gomock.Any(), userID).Return(entity.Entries{{ID: "e2"}, {ID: "e1"}}, nil)
		rr := httptest.NewRecorder()
		serv.ListEntries(rr, authorized(httptest.NewRequest(http.MethodGet, "/api/v1/entries", nil)))
		var resp api.EntriesResponse
		require.NoError(t, sonic.ConfigDefault.NewDecoder(rr.Result().Body).Decode(&resp))
		assert.Equal(t, 2, resp.Total)
		assert.Equal(t, "e2", resp.Entries[0].ID)
	})
	t.Run("service error", func(t *testing.T) {
		jService.EXPECT().Entries(gomock.Any(), userID).Return(nil, errors.New("mocked error"))
		rr := httptest.NewRecorder()
		serv.ListEntries(rr, authorized(httptest.NewRequest(http.MethodGet, "/api/v1/entries", nil)))
		assert.Equal(t, http.StatusInternalServerError, rr.Result().StatusCode)
	})
}

func TestGetAndTodayEntry(t *testing.T) {
	ctrl := gomock.NewController(t)
	jService := mocks.NewMockJournalServiceI(ctrl)
	serv := newTestServer(nil, jService)

	testCases := []struct {
		Desc         string
		ExpectedCode int
		MockPrepFunc func()
		Call         func(w http.ResponseWriter, r *http.Request)
	}{
		{
			Desc:         "entry found",
			ExpectedCode: http.StatusOK,
			MockPrepFunc: func() {
				jService.EXPECT().Entry(gomock.Any(), userID, "e1").Return(&entity.JournalEntry{ID: "e1"}, nil)
			},
			Call: serv.GetEntry,
		},
		{
			Desc:         "entry not found",
			ExpectedCode: http.StatusNotFound,
			MockPrepFunc: func() {
				jService.EXPECT().Entry(gomock.Any(), userID, "e1").Return(nil, errorvalues.ErrEntryNotFound)
			},
			Call: serv.GetEntry,
		},
		{
			Desc:         "today found",
			ExpectedCode: http.StatusOK,
			MockPrepFunc: func() {
				jService.EXPECT().TodayEntry(gomock.Any(), userID).Return(&entity.JournalEntry{ID: "e1"}, nil)
			},
			Call: serv.TodayEntry,
		},
		{
			Desc:         "nothing today",
			ExpectedCode: http.StatusNotFound,
			MockPrepFunc: func() {
				jService.EXPECT().TodayEntry(gomock.Any(), userID).Return(nil, errorvalues.ErrEntryNotFound)
			},
			Call: serv.TodayEntry,
		},
		{
			Desc:         "today service error",
			ExpectedCode: http.StatusInternalServerError,
			MockPrepFunc: func() {
				jService.EXPECT().TodayEntry(gomock.Any(), userID).Return(nil, errors.New("mocked error"))
			},
			Call: serv.TodayEntry,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			tc.MockPrepFunc()
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/entries/e1", nil)
			req.SetPathValue("id", "e1")
			tc.Call(rr, authorized(req))
			assert.Equal(t, tc.ExpectedCode, rr.Result().StatusCode)
		})
	}
}

func TestUpdateEntry(t *testing.T) {
	ctrl := gomock.NewController(t)
	jService := mocks.NewMockJournalServiceI(ctrl)
	serv := newTestServer(nil, jService)
	entryReq := service.EntryRequest{Mood: 5}
	body := mustMarshal(t, entryReq)

	testCases := []struct {
		Desc            string
		ExpectedCode    int
		ExpectedUpdated bool
		MockPrepFunc    func()
	}{
		{
			Desc:            "updated",
			ExpectedCode:    http.StatusOK,
			ExpectedUpdated: true,
			MockPrepFunc: func() {
				jService.EXPECT().UpdateEntry(gomock.Any(), userID, "e1", &entryReq).
					Return(&entity.JournalEntry{ID: "e1", Mood: 5}, true, nil)
			},
		},
		{
			Desc:         "unknown id is not an error",
			ExpectedCode: http.StatusOK,
			MockPrepFunc: func() {
				jService.EXPECT().UpdateEntry(gomock.Any(), userID, "e1", &entryReq).Return(nil, false, nil)
			},
		},
		{
			Desc:         "validation failed",
			ExpectedCode: http.StatusBadRequest,
			MockPrepFunc: func() {
				jService.EXPECT().UpdateEntry(gomock.Any(), userID, "e1", &entryReq).Return(nil, false, errorvalues.ErrValidation)
			},
		},
		{
			Desc:         "service error",
			ExpectedCode: http.StatusInternalServerError,
			MockPrepFunc: func() {
				jService.EXPECT().UpdateEntry(gomock.Any(), userID, "e1", &entryReq).Return(nil, false, errors.New("mocked error"))
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			tc.MockPrepFunc()
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPut, "/api/v1/entries/e1", bytes.NewReader(body))
			req.SetPathValue("id", "e1")
			serv.UpdateEntry(rr, authorized(req))
			assert.Equal(t, tc.ExpectedCode, rr.Result().StatusCode)
			if tc.ExpectedCode == http.StatusOK {
				var resp api.UpdateEntryResponse
				require.NoError(t, sonic.ConfigDefault.NewDecoder(rr.Result().Body).Decode(&resp))
				assert.Equal(t, tc.ExpectedUpdated, resp.Updated)
			}
		})
	}
}

func TestStatsDashboardInsights(t *testing.T) {
	ctrl := gomock.NewController(t)
	jService := mocks.NewMockJournalServiceI(ctrl)
	serv := newTestServer(nil, jService)

	t.Run("stats", func(t *testing.T) {
		jService.EXPECT().Stats(gomock.Any(), testUser).Return(entity.UserStats{TotalEntries: 3, CurrentStreak: 2, LongestStreak: 2, MemberSince: "January 2025"}, nil)
		rr := httptest.NewRecorder()
		serv.Stats(rr, authorized(httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)))
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
		var stats entity.UserStats
		require.NoError(t, sonic.ConfigDefault.NewDecoder(rr.Result().Body).Decode(&stats))
		assert.Equal(t, 3, stats.TotalEntries)
	})
	t.Run("stats error", func(t *testing.T) {
		jService.EXPECT().Stats(gomock.Any(), testUser).Return(entity.UserStats{}, errors.New("mocked error"))
		rr := httptest.NewRecorder()
		serv.Stats(rr, authorized(httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)))
		assert.Equal(t, http.StatusInternalServerError, rr.Result().StatusCode)
	})
	t.Run("dashboard", func(t *testing.T) {
		jService.EXPECT().Dashboard(gomock.Any(), userID).Return(&entity.Dashboard{Consistency: 40}, nil)
		rr := httptest.NewRecorder()
		serv.Dashboard(rr, authorized(httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)))
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
	})
	t.Run("insights unavailable is still ok", func(t *testing.T) {
		jService.EXPECT().Insights(gomock.Any(), userID).Return(&entity.InsightsResult{Status: entity.InsightsUnavailable}, nil)
		rr := httptest.NewRecorder()
		serv.Insights(rr, authorized(httptest.NewRequest(http.MethodGet, "/api/v1/insights", nil)))
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
		var res entity.InsightsResult
		require.NoError(t, sonic.ConfigDefault.NewDecoder(rr.Result().Body).Decode(&res))
		assert.Equal(t, entity.InsightsUnavailable, res.Status)
		assert.Nil(t, res.Insights)
	})
}

func TestBackupHandlers(t *testing.T) {
	ctrl := gomock.NewController(t)
	jService := mocks.NewMockJournalServiceI(ctrl)
	serv := newTestServer(nil, jService)
	blob := []byte(`[{"id":"e1","date":"2025-03-10T09:00:00.000Z","workedWell":[],"madeHappy":[],"gratefulFor":[],"mood":4}]`)

	t.Run("export sends file", func(t *testing.T) {
		jService.EXPECT().ExportBackup(gomock.Any(), userID).Return(&entity.Backup{
			Filename: "gratudiary_backup_2025-03-10.json",
			Data:     blob,
		}, nil)
		rr := httptest.NewRecorder()
		serv.ExportBackup(rr, authorized(httptest.NewRequest(http.MethodGet, "/api/v1/backup", nil)))
		res := rr.Result()
		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Equal(t, `attachment; filename="gratudiary_backup_2025-03-10.json"`, res.Header.Get("Content-Disposition"))
		raw, err := io.ReadAll(res.Body)
		require.NoError(t, err)
		assert.Equal(t, blob, raw)
	})
	t.Run("export of empty journal", func(t *testing.T) {
		jService.EXPECT().ExportBackup(gomock.Any(), userID).Return(nil, errorvalues.ErrNothingToExport)
		rr := httptest.NewRecorder()
		serv.ExportBackup(rr, authorized(httptest.NewRequest(http.MethodGet, "/api/v1/backup", nil)))
		assert.Equal(t, http.StatusNotFound, rr.Result().StatusCode)
	})

	importCases := []struct {
		Desc         string
		ExpectedCode int
		MockPrepFunc func()
	}{
		{
			Desc:         "imported",
			ExpectedCode: http.StatusOK,
			MockPrepFunc: func() {
				jService.EXPECT().ImportBackup(gomock.Any(), userID, blob).Return(1, nil)
			},
		},
		{
			Desc:         "unparsable",
			ExpectedCode: http.StatusBadRequest,
			MockPrepFunc: func() {
				jService.EXPECT().ImportBackup(gomock.Any(), userID, blob).Return(0, errorvalues.ErrBackupParse)
			},
		},
		{
			Desc:         "wrong format",
			ExpectedCode: http.StatusBadRequest,
			MockPrepFunc: func() {
				jService.EXPECT().ImportBackup(gomock.Any(), userID, blob).Return(0, errorvalues.ErrBackupFormat)
			},
		},
		{
			Desc:         "service error",
			ExpectedCode: http.StatusInternalServerError,
			MockPrepFunc: func() {
				jService.EXPECT().ImportBackup(gomock.Any(), userID, blob).Return(0, errors.New("mocked error"))
			},
		},
	}
	for _, tc := range importCases {
		t.Run(tc.Desc, func(t *testing.T) {
			tc.MockPrepFunc()
			rr := httptest.NewRecorder()
			serv.ImportBackup(rr, authorized(httptest.NewRequest(http.MethodPost, "/api/v1/backup", bytes.NewReader(blob))))
			assert.Equal(t, tc.ExpectedCode, rr.Result().StatusCode)
		})
	}

	t.Run("status", func(t *testing.T) {
		jService.EXPECT().BackupStatus(gomock.Any(), userID).Return(&entity.BackupStatus{NeedsBackup: true}, nil)
		rr := httptest.NewRecorder()
		serv.BackupStatus(rr, authorized(httptest.NewRequest(http.MethodGet, "/api/v1/backup/status", nil)))
		assert.Equal(t, http.StatusOK, rr.Result().StatusCode)
		var status entity.BackupStatus
		require.NoError(t, sonic.ConfigDefault.NewDecoder(rr.Result().Body).Decode(&status))
		assert.True(t, status.NeedsBackup)
		assert.Nil(t, status.LastBackup)
	})
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestRateLimitMiddleware(t *testing.T) {
	serv := api.New(&api.ServicesList{
		Sessions: session.NewManager(storage.NewMemoryStore(), 0),
		Limiter:  api.NewLimiterStore(api.LimiterOptions{PerMinute: 1, Burst: 2}),
	})
	handler := serv.RateLimitMiddleware(http.HandlerFunc(okHandler))
	send := func(email string) *http.Response {
		body := mustMarshal(t, api.LoginRequest{Email: email, Password: "x"})
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body)))
		return rr.Result()
	}
	assert.Equal(t, http.StatusOK, send("ann@example.com").StatusCode)
	assert.Equal(t, http.StatusOK, send("ANN@example.com").StatusCode)
	res := send("ann@example.com")
	assert.Equal(t, http.StatusTooManyRequests, res.StatusCode)
	retry, err := strconv.Atoi(res.Header.Get("Retry-After"))
	require.NoError(t, err)
	assert.Greater(t, retry, 0)
	assert.LessOrEqual(t, retry, 60)
	assert.Equal(t, http.StatusOK, send("bob@example.com").StatusCode)
}

func TestRateLimitKeepsBody(t *testing.T) {
	serv := api.New(&api.ServicesList{
		Sessions: session.NewManager(storage.NewMemoryStore(), 0),
	})
	body := mustMarshal(t, api.LoginRequest{Email: "ann@example.com", Password: "x"})
	handler := serv.RateLimitMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, body, raw)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body)))
}

func TestLimiterStore(t *testing.T) {
	ls := api.NewLimiterStore(api.LimiterOptions{PerMinute: 60, Burst: 1})
	defer ls.Stop()
	ok, wait := ls.Allow("a")
	assert.True(t, ok)
	assert.Zero(t, wait)
	ok, wait = ls.Allow("a")
	assert.False(t, ok)
	assert.Equal(t, time.Second, wait)
	ok, _ = ls.Allow("b")
	assert.True(t, ok)
	ls.Stop()
}

func TestLimiterStoreForgetsIdleKeys(t *testing.T) {
	ls := api.NewLimiterStore(api.LimiterOptions{
		CleanupInterval: 10 * time.Millisecond,
		IdleTTL:         20 * time.Millisecond,
	})
	defer ls.Stop()
	ls.Allow("ip:10.0.0.1")
	ls.Allow("email:ann@example.com")
	assert.Equal(t, 2, ls.Len())
	assert.Eventually(t, func() bool { return ls.Len() == 0 }, time.Second, 10*time.Millisecond)
}

// newIntegrationServer wires real services over one in-memory store.
func newIntegrationServer() *api.Server {
	store := storage.NewMemoryStore()
	userService := service.NewUserService(repository.NewCredentialsRepo(store), service.BcryptHasher{Cost: 4}, 0)
	journalService := service.NewJournalService(repository.NewEntriesRepo(store), nil, nil)
	return api.New(&api.ServicesList{
		UserService:    userService,
		JournalService: journalService,
		Sessions:       session.NewManager(store, time.Hour),
		JwtService:     jwtservice.New(jwtSecret, time.Hour),
	})
}

func doRequest(t *testing.T, h http.Handler, method, path, token string, body []byte) *http.Response {
	var reader io.Reader = http.NoBody
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr.Result()
}

func TestJournalFlowIntegrational(t *testing.T) {
	serv := newIntegrationServer()

	res := doRequest(t, serv, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res = doRequest(t, serv, http.MethodGet, "/api/v1/entries", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res = doRequest(t, serv, http.MethodPost, "/api/v1/auth/register", "",
		mustMarshal(t, api.RegisterRequest{Name: "Ann", Email: "ann@example.com", Password: "secret1"}))
	require.Equal(t, http.StatusCreated, res.StatusCode)
	var auth api.AuthResponse
	require.NoError(t, sonic.ConfigDefault.NewDecoder(res.Body).Decode(&auth))
	token := auth.Token

	res = doRequest(t, serv, http.MethodGet, "/api/v1/entries/today", token, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res = doRequest(t, serv, http.MethodPost, "/api/v1/entries", token,
		mustMarshal(t, service.EntryRequest{WorkedWell: []string{"morning run"}, Mood: 5, MoodNote: "dropped"}))
	require.Equal(t, http.StatusCreated, res.StatusCode)
	var created entity.JournalEntry
	require.NoError(t, sonic.ConfigDefault.NewDecoder(res.Body).Decode(&created))
	assert.Empty(t, created.MoodNote)

	res = doRequest(t, serv, http.MethodGet, "/api/v1/entries/today", token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res = doRequest(t, serv, http.MethodGet, "/api/v1/entries/"+created.ID, token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res = doRequest(t, serv, http.MethodPut, "/api/v1/entries/"+created.ID, token,
		mustMarshal(t, service.EntryRequest{Mood: 2, MoodNote: "long day"}))
	require.Equal(t, http.StatusOK, res.StatusCode)
	var upd api.UpdateEntryResponse
	require.NoError(t, sonic.ConfigDefault.NewDecoder(res.Body).Decode(&upd))
	assert.True(t, upd.Updated)
	assert.Equal(t, "long day", upd.Entry.MoodNote)

	res = doRequest(t, serv, http.MethodGet, "/api/v1/stats", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var stats entity.UserStats
	require.NoError(t, sonic.ConfigDefault.NewDecoder(res.Body).Decode(&stats))
	assert.Equal(t, 1, stats.TotalEntries)
	assert.Equal(t, 1, stats.CurrentStreak)

	res = doRequest(t, serv, http.MethodGet, "/api/v1/insights", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var ins entity.InsightsResult
	require.NoError(t, sonic.ConfigDefault.NewDecoder(res.Body).Decode(&ins))
	assert.Equal(t, entity.InsightsUnavailable, ins.Status)

	res = doRequest(t, serv, http.MethodGet, "/api/v1/backup", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	backup, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	res = doRequest(t, serv, http.MethodGet, "/api/v1/backup/status", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var status entity.BackupStatus
	require.NoError(t, sonic.ConfigDefault.NewDecoder(res.Body).Decode(&status))
	assert.False(t, status.NeedsBackup)

	res = doRequest(t, serv, http.MethodPost, "/api/v1/backup", token, []byte("not json"))
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	res = doRequest(t, serv, http.MethodPost, "/api/v1/backup", token, backup)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res = doRequest(t, serv, http.MethodPost, "/api/v1/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	// the token dies with its session
	res = doRequest(t, serv, http.MethodGet, "/api/v1/entries", token, nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res = doRequest(t, serv, http.MethodPost, "/api/v1/auth/login", "",
		mustMarshal(t, api.LoginRequest{Email: "ann@example.com", Password: "secret1"}))
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.NoError(t, sonic.ConfigDefault.NewDecoder(res.Body).Decode(&auth))
	res = doRequest(t, serv, http.MethodGet, "/api/v1/entries", auth.Token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var list api.EntriesResponse
	require.NoError(t, sonic.ConfigDefault.NewDecoder(res.Body).Decode(&list))
	assert.Equal(t, 1, list.Total)
}

func TestAuthMiddlewareRejects(t *testing.T) {
	serv := newIntegrationServer()
	handler := serv.AuthMiddleware(http.HandlerFunc(okHandler))
	foreign, err := jwtservice.New("other", time.Hour).GenerateToken(testUser, "sid")
	require.NoError(t, err)
	orphan, err := jwtservice.New(jwtSecret, time.Hour).GenerateToken(testUser, "no-such-session")
	require.NoError(t, err)
	noSession, err := jwtservice.New(jwtSecret, time.Hour).GenerateToken(testUser, "")
	require.NoError(t, err)

	testCases := []struct {
		Desc   string
		Header string
	}{
		{Desc: "no header", Header: ""},
		{Desc: "not bearer", Header: "Basic abc"},
		{Desc: "foreign signature", Header: "Bearer " + foreign},
		{Desc: "session never opened", Header: "Bearer " + orphan},
		{Desc: "token without session", Header: "Bearer " + noSession},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/entries", nil)
			if tc.Header != "" {
				req.Header.Set("Authorization", tc.Header)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req.WithContext(context.Background()))
			assert.Equal(t, http.StatusUnauthorized, rr.Result().StatusCode)
		})
	}
}
