package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	errorvalues "github.com/limbo/gratudiary/internal/error_values"
	"github.com/limbo/gratudiary/internal/service"
	"github.com/limbo/gratudiary/pkg/entity"
	"github.com/limbo/gratudiary/pkg/httputil"
)

// Largest backup file accepted for import.
const maxBackupSize = 10 << 20

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User  *entity.User `json:"user"`
	Token string       `json:"token"`
}

type EntriesResponse struct {
	UserID  string         `json:"uid"`
	Total   int            `json:"total"`
	Entries entity.Entries `json:"entries"`
}

type UpdateEntryResponse struct {
	Updated bool                 `json:"updated"`
	Entry   *entity.JournalEntry `json:"entry,omitempty"`
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req RegisterRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("registering error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	sess := s.sessions.OpenNew()
	user, err := s.userService.Register(ctx, sess, &service.RegisterRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrValidation):
			logger.Error("registering error: validation failed")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid registration data", err)
		case errors.Is(err, errorvalues.ErrUserExists):
			logger.Error("registering error: existed user")
			httputil.WriteErrorResponse(w, http.StatusConflict, "user with such email already exists", nil)
		default:
			logger.Error("registering error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error during registration", nil)
		}
		return
	}
	token, err := s.jwtService.GenerateToken(user, sess.Scope())
	if err != nil {
		logger.Error("registering error: generating token error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error creating token", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, AuthResponse{
		User:  user,
		Token: token,
	})
	logger.Info("successful registration", slog.String("uid", user.ID))
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req LoginRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("login error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	sess := s.sessions.OpenNew()
	user, err := s.userService.Login(ctx, sess, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrWrongCredentials):
			logger.Error("login error: wrong credentials")
			httputil.WriteErrorResponse(w, http.StatusUnauthorized, "invalid email or password", nil)
		default:
			logger.Error("login error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error during login", nil)
		}
		return
	}
	token, err := s.jwtService.GenerateToken(user, sess.Scope())
	if err != nil {
		logger.Error("login error: generating token error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error creating token", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, AuthResponse{
		User:  user,
		Token: token,
	})
	logger.Info("successful login")
}

func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	sess, err := GetSessionFromContext(r)
	if err != nil {
		logger.Error("logout error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	if err := s.userService.Logout(ctx, sess); err != nil {
		logger.Error("logout error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error during logout", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"logged_out": true})
	logger.Info("logged out")
}

func (s *Server) Me(w http.ResponseWriter, r *http.Request) {
	user, err := GetUserFromContext(r)
	if err != nil {
		GetLoggerFromCtx(r.Context()).Error("me error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, user)
}

func (s *Server) ListEntries(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("list entries error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	entries, err := s.journalService.Entries(ctx, uid)
	if err != nil {
		logger.Error("getting entries error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting journal entries", nil)
		return
	}
	if entries == nil {
		entries = entity.Entries{}
	}
	httputil.WriteJSONResponse(w, http.StatusOK, EntriesResponse{
		UserID:  uid,
		Total:   len(entries),
		Entries: entries,
	})
	logger.Info("entries provided")
}

func (s *Server) CreateEntry(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("create entry error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req service.EntryRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("create entry error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	entry, err := s.journalService.AddEntry(ctx, uid, &req)
	if err != nil {
		if errors.Is(err, errorvalues.ErrValidation) {
			logger.Error("create entry error: validation failed")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid journal entry", err)
			return
		}
		logger.Error("create entry error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while saving entry", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, entry)
	logger.Info("entry created", slog.String("entry_id", entry.ID))
}

func (s *Server) TodayEntry(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("today entry error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	entry, err := s.journalService.TodayEntry(ctx, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrEntryNotFound) {
			httputil.WriteErrorResponse(w, http.StatusNotFound, "nothing written today yet", nil)
			return
		}
		logger.Error("today entry error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while getting entry", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, entry)
}

func (s *Server) GetEntry(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get entry error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id := r.PathValue("id")
	if id == "" {
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "entry id required", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	entry, err := s.journalService.Entry(ctx, uid, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrEntryNotFound) {
			logger.Error("get entry error: not found", slog.String("entry_id", id))
			httputil.WriteErrorResponse(w, http.StatusNotFound, "journal entry not found", nil)
			return
		}
		logger.Error("get entry error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while getting entry", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, entry)
}

func (s *Server) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("update entry error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id := r.PathValue("id")
	if id == "" {
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "entry id required", nil)
		return
	}
	var req service.EntryRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("update entry error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	entry, matched, err := s.journalService.UpdateEntry(ctx, uid, id, &req)
	if err != nil {
		if errors.Is(err, errorvalues.ErrValidation) {
			logger.Error("update entry error: validation failed")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid journal entry", err)
			return
		}
		logger.Error("update entry error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while updating entry", nil)
		return
	}
	if !matched {
		logger.Warn("update entry: no entry with such id", slog.String("entry_id", id))
	}
	httputil.WriteJSONResponse(w, http.StatusOK, UpdateEntryResponse{
		Updated: matched,
		Entry:   entry,
	})
}

func (s *Server) Stats(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	user, err := GetUserFromContext(r)
	if err != nil {
		logger.Error("stats error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	stats, err := s.journalService.Stats(ctx, user)
	if err != nil {
		logger.Error("stats error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while computing stats", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, stats)
}

func (s *Server) Dashboard(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("dashboard error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	dashboard, err := s.journalService.Dashboard(ctx, uid)
	if err != nil {
		logger.Error("dashboard error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while building dashboard", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, dashboard)
}

func (s *Server) Insights(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("insights error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	// Model calls are slow
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()
	res, err := s.journalService.Insights(ctx, uid)
	if err != nil {
		logger.Error("insights error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while generating insights", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, res)
}

func (s *Server) ExportBackup(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("export error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	backup, err := s.journalService.ExportBackup(ctx, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrNothingToExport) {
			httputil.WriteErrorResponse(w, http.StatusNotFound, "no journal entries to export", nil)
			return
		}
		logger.Error("export error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while exporting journal", nil)
		return
	}
	httputil.WriteAttachment(w, backup.Filename, backup.Data)
	logger.Info("backup exported")
}

func (s *Server) ImportBackup(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("import error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	defer r.Body.Close()
	blob, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBackupSize))
	if err != nil {
		logger.Error("import error: reading body", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid backup upload", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	n, err := s.journalService.ImportBackup(ctx, uid, blob)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrBackupParse):
			logger.Error("import error: unparsable file")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "failed to parse backup file", nil)
		case errors.Is(err, errorvalues.ErrBackupFormat):
			logger.Error("import error: wrong format")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid backup file format", nil)
		default:
			logger.Error("import error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while importing journal", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"imported": n})
	logger.Info("backup imported", slog.Int("entries", n))
}

func (s *Server) BackupStatus(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("backup status error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	status, err := s.journalService.BackupStatus(ctx, uid)
	if err != nil {
		logger.Error("backup status error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while reading backup status", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, status)
}
