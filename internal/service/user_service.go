package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/gratudiary/internal/error_values"
	"github.com/limbo/gratudiary/internal/repository"
	"github.com/limbo/gratudiary/pkg/entity"
)

type UserService struct {
	repo   repository.CredentialsRepositoryI
	hasher PasswordHasher
	// Artificial latency before register and login resolve
	delay time.Duration
	clock func() time.Time
}

func NewUserService(credsRepo repository.CredentialsRepositoryI, hasher PasswordHasher, delay time.Duration) *UserService {
	if hasher == nil {
		hasher = BcryptHasher{Cost: 10}
	}
	return &UserService{
		repo:   credsRepo,
		hasher: hasher,
		delay:  delay,
		clock:  time.Now,
	}
}

func (us *UserService) wait(ctx context.Context) error {
	if us.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(us.delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (us *UserService) Register(ctx context.Context, sess Session, req *RegisterRequest) (*entity.User, error) {
	if req == nil {
		return nil, errors.New("register request is nil")
	}
	if err := us.wait(ctx); err != nil {
		return nil, err
	}
	normalized := RegisterRequest{
		Name:     strings.TrimSpace(req.Name),
		Email:    normalizeEmail(req.Email),
		Password: req.Password,
	}
	if err := validateStruct(normalized); err != nil {
		return nil, err
	}
	passwordHash, err := us.hasher.Hash(normalized.Password)
	if err != nil {
		return nil, errors.New("hashing password error: " + err.Error())
	}
	now := us.clock()
	creds := &entity.Credentials{
		ID:           uuid.NewString(),
		Name:         normalized.Name,
		Email:        normalized.Email,
		PasswordHash: passwordHash,
		JoinedAt:     &now,
	}
	if err := us.repo.Create(ctx, creds); err != nil {
		if errors.Is(err, errorvalues.ErrUserExists) {
			return nil, errorvalues.ErrUserExists
		}
		return nil, errors.New("repository creating error: " + err.Error())
	}
	user := creds.User(now)
	if err := sess.Set(ctx, user); err != nil {
		return nil, errors.New("session error: " + err.Error())
	}
	return user, nil
}

func (us *UserService) Login(ctx context.Context, sess Session, email, password string) (*entity.User, error) {
	if err := us.wait(ctx); err != nil {
		return nil, err
	}
	creds, err := us.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, errorvalues.ErrWrongCredentials
		}
		return nil, errors.New("repository searching error: " + err.Error())
	}
	if !us.hasher.Verify(password, creds.PasswordHash) {
		return nil, errorvalues.ErrWrongCredentials
	}
	user := creds.User(us.clock())
	if err := sess.Set(ctx, user); err != nil {
		return nil, errors.New("session error: " + err.Error())
	}
	return user, nil
}

func (us *UserService) Logout(ctx context.Context, sess Session) error {
	if err := sess.Clear(ctx); err != nil {
		return errors.New("session error: " + err.Error())
	}
	return nil
}

func (us *UserService) Current(ctx context.Context, sess Session) (*entity.User, error) {
	user, err := sess.Load(ctx)
	if err != nil {
		return nil, errors.New("session error: " + err.Error())
	}
	if user == nil {
		return nil, errorvalues.ErrNoSession
	}
	// A session outliving its account is closed
	if _, err := us.repo.FindByID(ctx, user.ID); err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			if err := sess.Clear(ctx); err != nil {
				return nil, errors.New("session error: " + err.Error())
			}
			return nil, errorvalues.ErrNoSession
		}
		return nil, errors.New("repository searching error: " + err.Error())
	}
	return user, nil
}
