package errorvalues

import "errors"

var (
	ErrUserExists       = errors.New("user with such email already exists")
	ErrUserNotFound     = errors.New("user doesn't exists")
	ErrWrongCredentials = errors.New("wrong email or password")
	ErrInvalidToken     = errors.New("invalid token")
	ErrNoSession        = errors.New("no active session")
	ErrValidation       = errors.New("validation error")
	ErrCorruptUsers     = errors.New("stored users are unreadable")

	ErrKeyNotFound = errors.New("key not found")

	ErrEntryNotFound   = errors.New("journal entry not found")
	ErrNothingToExport = errors.New("no journal entries to export")
	ErrBackupParse     = errors.New("failed to parse backup file")
	ErrBackupFormat    = errors.New("invalid backup file format")

	ErrInsightsUnavailable = errors.New("insights provider is not configured")
)
