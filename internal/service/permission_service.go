package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"filemanager/internal/domain"
	"filemanager/internal/repository"
)

type shareStore interface {
	Create(ctx context.Context, share *domain.Share) error
	GetByToken(ctx context.Context, token string) (*domain.Share, error)
	GetByItemID(ctx context.Context, itemID int64, itemType domain.ResourceType) (*domain.Share, error)
	DeleteExpired(ctx context.Context) (int64, error)
}

type folderStore interface {
	GetByUniqueID(ctx context.Context, uniqueID int64) (*domain.Folder, error)
	GetParent(ctx context.Context, file domain.FileRecord) (*domain.Folder, error)
	IsInHierarchy(ctx context.Context, ancestorUniqueID, folderUniqueID int64) (bool, error)
}

// PermissionService представляет сервис для проверки прав доступа.
// Проверки выполняются до вычисления ссылок: URLSigner сам права не проверяет.
type PermissionService struct {
	shareRepo  shareStore
	folderRepo folderStore
	now        func() time.Time
}

// NewPermissionService создает новый экземпляр PermissionService
func NewPermissionService(shareRepo shareStore, folderRepo folderStore) *PermissionService {
	return &PermissionService{
		shareRepo:  shareRepo,
		folderRepo: folderRepo,
		now:        time.Now,
	}
}

// AuthorizeOwner проверяет, что файл принадлежит пользователю
func (s *PermissionService) AuthorizeOwner(userID int64, record domain.FileRecord) error {
	if !record.OwnedBy(userID) {
		return ErrAccessDenied
	}
	return nil
}

// AuthorizeFolder проверяет, что папка принадлежит пользователю
func (s *PermissionService) AuthorizeFolder(userID int64, folder domain.Folder) error {
	if folder.OwnerID == nil || *folder.OwnerID != userID {
		return ErrAccessDenied
	}
	return nil
}

// AuthorizePublic проверяет токен публичной ссылки и только после этого
// возвращает представление файла с токеном.
// Ссылка на файл дает доступ к нему самому, ссылка на папку ко всем файлам внутри нее.
func (s *PermissionService) AuthorizePublic(ctx context.Context, token string, record domain.FileRecord) (domain.FileView, error) {
	if token == "" {
		return domain.FileView{}, ErrInvalidShareToken
	}

	share, err := s.shareRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.FileView{}, ErrInvalidShareToken
		}
		return domain.FileView{}, fmt.Errorf("failed to get share: %w", err)
	}

	// Проверяем срок действия
	if share.Expired(s.now()) {
		return domain.FileView{}, ErrInvalidShareToken
	}

	if record.State() == domain.StateDeleted {
		return domain.FileView{}, ErrFileNotFound
	}

	switch share.Type {
	case domain.ResourceTypeFile:
		if share.ItemID != record.UniqueID {
			return domain.FileView{}, ErrAccessDenied
		}

	case domain.ResourceTypeFolder:
		inside, err := s.folderRepo.IsInHierarchy(ctx, share.ItemID, record.FolderID)
		if err != nil {
			return domain.FileView{}, fmt.Errorf("failed to check shared folder: %w", err)
		}
		if !inside {
			return domain.FileView{}, ErrAccessDenied
		}

	default:
		return domain.FileView{}, fmt.Errorf("unsupported resource type: %s", share.Type)
	}

	return domain.NewFileView(record).WithPublicAccess(share.Token), nil
}
