package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"filemanager/internal/domain"
	"filemanager/internal/repository"
)

type ShareService struct {
	shareRepo         shareStore
	fileRepo          fileStore
	folderRepo        folderStore
	permissionService *PermissionService
	logger            *zap.Logger
	now               func() time.Time
}

func NewShareService(
	shareRepo shareStore,
	fileRepo fileStore,
	folderRepo folderStore,
	permissionService *PermissionService,
	logger *zap.Logger,
) *ShareService {
	return &ShareService{
		shareRepo:         shareRepo,
		fileRepo:          fileRepo,
		folderRepo:        folderRepo,
		permissionService: permissionService,
		logger:            logger.With(zap.String("component", "share_service")),
		now:               time.Now,
	}
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// CreateShare создает публичную ссылку на файл или папку владельца.
// itemID это unique_id элемента.
func (s *ShareService) CreateShare(
	ctx context.Context,
	itemID int64,
	itemType domain.ResourceType,
	permission domain.AccessType,
	expiresIn *time.Duration,
	ownerID int64,
) (*domain.Share, error) {
	// Проверяем владельца ресурса
	if err := s.authorizeItem(ctx, itemID, itemType, ownerID); err != nil {
		return nil, err
	}

	switch permission {
	case "":
		permission = domain.AccessTypeView
	case domain.AccessTypeView, domain.AccessTypeEdit:
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidPermission, permission)
	}

	var expiresAt *time.Time
	if expiresIn != nil {
		if *expiresIn <= 0 {
			return nil, fmt.Errorf("%w: %s", ErrInvalidExpiry, *expiresIn)
		}
		t := s.now().Add(*expiresIn)
		expiresAt = &t
	}

	token, err := generateToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	share := &domain.Share{
		ID:         uuid.New(),
		ItemID:     itemID,
		Type:       itemType,
		OwnerID:    ownerID,
		Permission: permission,
		Token:      token,
		ExpiresAt:  expiresAt,
	}

	if err := s.shareRepo.Create(ctx, share); err != nil {
		return nil, err
	}

	s.logger.Info("share created",
		zap.Int64("item_id", itemID),
		zap.String("type", string(itemType)),
		zap.Int64("user_id", ownerID),
	)
	return share, nil
}

// GetShare возвращает ссылку элемента владельца (связь shared). Если ссылки нет, возвращает (nil, nil).
func (s *ShareService) GetShare(ctx context.Context, itemID int64, itemType domain.ResourceType, ownerID int64) (*domain.Share, error) {
	if err := s.authorizeItem(ctx, itemID, itemType, ownerID); err != nil {
		return nil, err
	}

	share, err := s.shareRepo.GetByItemID(ctx, itemID, itemType)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return share, nil
}

// CleanupExpired удаляет просроченные ссылки
func (s *ShareService) CleanupExpired(ctx context.Context) error {
	deleted, err := s.shareRepo.DeleteExpired(ctx)
	if err != nil {
		return err
	}
	if deleted > 0 {
		s.logger.Info("expired shares removed", zap.Int64("count", deleted))
	}
	return nil
}

func (s *ShareService) authorizeItem(ctx context.Context, itemID int64, itemType domain.ResourceType, ownerID int64) error {
	switch itemType {
	case domain.ResourceTypeFile:
		file, err := s.fileRepo.GetByUniqueID(ctx, itemID, false)
		if err != nil {
			return mapFileError(err)
		}
		return s.permissionService.AuthorizeOwner(ownerID, *file)
	case domain.ResourceTypeFolder:
		folder, err := s.folderRepo.GetByUniqueID(ctx, itemID)
		if err != nil {
			return mapFolderError(err)
		}
		return s.permissionService.AuthorizeFolder(ownerID, *folder)
	default:
		return fmt.Errorf("unsupported resource type: %s", itemType)
	}
}
