package service

import "errors"

// Определение пользовательских ошибок
var (
	ErrFileNotFound      = errors.New("file not found")
	ErrFolderNotFound    = errors.New("folder not found")
	ErrAccessDenied      = errors.New("access denied")
	ErrInvalidShareToken = errors.New("share not found or expired")
	ErrInvalidName       = errors.New("invalid name")
	ErrInvalidPermission = errors.New("unsupported permission")
	ErrInvalidExpiry     = errors.New("share expiry must be positive")
)
