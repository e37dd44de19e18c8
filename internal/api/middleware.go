package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	errorvalues "github.com/limbo/gratudiary/internal/error_values"
	"github.com/limbo/gratudiary/internal/service"
	"github.com/limbo/gratudiary/pkg/entity"
	"github.com/limbo/gratudiary/pkg/httputil"
)

var (
	requestIDKContextKey = "Request-ID"
	loggerContextKey     = "Logger"
	uidContextKey        = "User-ID"
	userContextKey       = "User"
	sessionContextKey    = "Session"
)

// Auth request bodies are small. Anything bigger is rejected by the decoder.
const maxAuthBodySize = 64 << 10

func (s *Server) RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.New()
		ctx := context.WithValue(r.Context(), requestIDKContextKey, reqID.String())
		r = r.WithContext(ctx)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) SettingUpLoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := slog.Default()
		reqID, ok := r.Context().Value(requestIDKContextKey).(string)
		if ok && reqID != "" {
			logger = logger.With(slog.String("request_id", reqID))
		}
		logger = logger.With(slog.String("from", r.RemoteAddr))
		ctx := context.WithValue(r.Context(), loggerContextKey, logger)
		r = r.WithContext(ctx)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) LoggerExtensionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := GetLoggerFromCtx(r.Context())
		userID, ok := r.Context().Value(uidContextKey).(string)
		if ok && userID != "" {
			logger = logger.With(slog.String("uid", userID))
		}
		ctx := context.WithValue(r.Context(), loggerContextKey, logger)
		r = r.WithContext(ctx)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) RecoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				GetLoggerFromCtx(r.Context()).Error("panic while serving request",
					slog.String("error", fmt.Sprintf("%v", err)),
					slog.String("stack", string(debug.Stack())))
				w.Header().Set("Connection", "close")
				httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal server error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// RateLimitMiddleware throttles auth attempts. Requests naming an email
// are counted per email, the rest per client address.
func (s *Server) RateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := GetLoggerFromCtx(r.Context())
		key := "ip:" + clientIP(r)
		if r.Body != nil {
			body, err := io.ReadAll(io.LimitReader(r.Body, maxAuthBodySize))
			r.Body.Close()
			if err != nil {
				logger.Error("rate limit: reading body error", slog.String("error", err.Error()))
				httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
				return
			}
			var peek struct {
				Email string `json:"email"`
			}
			if sonic.Unmarshal(body, &peek) == nil {
				if email := strings.ToLower(strings.TrimSpace(peek.Email)); email != "" {
					key = "email:" + email
				}
			}
			r.Body = io.NopCloser(bytes.NewReader(body))
		}
		if ok, wait := s.limiter.Allow(key); !ok {
			logger.Warn("rate limit exceeded", slog.String("key", key), slog.Duration("retry_after", wait))
			w.Header().Set("Retry-After", strconv.Itoa(int(wait/time.Second)))
			httputil.WriteErrorResponse(w, http.StatusTooManyRequests, "too many attempts, try again later", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := GetLoggerFromCtx(r.Context())
		// Getting token from header
		tokenString, err := GetTokenFromHeader(r)
		if err != nil {
			logger.Error("auth failed: invalid token")
			httputil.WriteErrorResponse(w, http.StatusUnauthorized, "authorization failed: invalid token", nil)
			return
		}
		// Getting claims from token string
		tokenClaims, err := s.jwtService.ParseToken(tokenString)
		if err != nil {
			logger.Error("auth failed: error parsing token", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusUnauthorized, "authorization failed: invalid token", nil)
			return
		}
		// Assuring if token is alive
		now := time.Now()
		if (tokenClaims.ExpiresAt != nil && tokenClaims.ExpiresAt.Time.Before(now)) ||
			(tokenClaims.NotBefore != nil && tokenClaims.NotBefore.Time.After(now)) {
			logger.Error("tried to auth with expired or not ready token")
			httputil.WriteErrorResponse(w, http.StatusUnauthorized, "token expired or not ready", nil)
			return
		}
		if tokenClaims.SessionID == "" || tokenClaims.UserID == "" {
			logger.Error("auth failed: token without session")
			httputil.WriteErrorResponse(w, http.StatusUnauthorized, "invalid token payload", nil)
			return
		}
		// Token is good only while its session slot holds the same user
		sess := s.sessions.Open(tokenClaims.SessionID)
		ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		defer cancel()
		user, err := s.userService.Current(ctx, sess)
		if err != nil {
			if errors.Is(err, errorvalues.ErrNoSession) {
				logger.Error("auth failed: session is over")
				httputil.WriteErrorResponse(w, http.StatusUnauthorized, "session expired, please log in again", nil)
				return
			}
			logger.Error("error while loading session", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while loading session", nil)
			return
		}
		if user.ID != tokenClaims.UserID {
			logger.Error("auth failed: session belongs to another user")
			httputil.WriteErrorResponse(w, http.StatusUnauthorized, "authorization failed: invalid token", nil)
			return
		}
		r = r.WithContext(WithAuth(r.Context(), user, sess))
		next.ServeHTTP(w, r)
	})
}

func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(loggerContextKey).(*slog.Logger)
	if ok {
		return logger
	}
	return slog.Default()
}

func GetTokenFromHeader(r *http.Request) (string, error) {
	token := r.Header.Get("Authorization")
	if token == "" {
		return "", errorvalues.ErrInvalidToken
	}
	parts := strings.Split(token, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", errorvalues.ErrInvalidToken
	}
	return parts[1], nil
}

func GetUIDFromContext(r *http.Request) (string, error) {
	uid, ok := r.Context().Value(uidContextKey).(string)
	if !ok || uid == "" {
		return "", errors.New("uid invalid or doesn't exists")
	}
	return uid, nil
}

func GetUserFromContext(r *http.Request) (*entity.User, error) {
	user, ok := r.Context().Value(userContextKey).(*entity.User)
	if !ok || user == nil {
		return nil, errors.New("user invalid or doesn't exists")
	}
	return user, nil
}

func GetSessionFromContext(r *http.Request) (service.Session, error) {
	sess, ok := r.Context().Value(sessionContextKey).(service.Session)
	if !ok || sess == nil {
		return nil, errors.New("session invalid or doesn't exists")
	}
	return sess, nil
}

// WithAuth returns a copy of ctx carrying what AuthMiddleware puts there.
func WithAuth(ctx context.Context, user *entity.User, sess service.Session) context.Context {
	ctx = context.WithValue(ctx, uidContextKey, user.ID)
	ctx = context.WithValue(ctx, userContextKey, user)
	return context.WithValue(ctx, sessionContextKey, sess)
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
