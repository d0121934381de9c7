package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"filemanager/internal/domain"
	"filemanager/internal/repository"
)

// TrashService управляет переходами active <-> deleted.
// Окончательное удаление содержимого из хранилища здесь не выполняется.
type TrashService struct {
	fileRepo          fileStore
	permissionService *PermissionService
	fileService       *FileService
	logger            *zap.Logger
}

func NewTrashService(
	fileRepo fileStore,
	permissionService *PermissionService,
	fileService *FileService,
	logger *zap.Logger,
) *TrashService {
	return &TrashService{
		fileRepo:          fileRepo,
		permissionService: permissionService,
		fileService:       fileService,
		logger:            logger.With(zap.String("component", "trash_service")),
	}
}

// GetTrashItems получает список файлов в корзине
func (s *TrashService) GetTrashItems(ctx context.Context, ownerID int64) ([]domain.FileResponse, error) {
	records, err := s.fileRepo.ListTrashed(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get trash items: %w", err)
	}

	views := make([]domain.FileView, len(records))
	for i, record := range records {
		views[i] = domain.NewFileView(record)
	}
	return s.fileService.PresentAll(ctx, views)
}

// MoveToTrash переводит активный файл в корзину
func (s *TrashService) MoveToTrash(ctx context.Context, uniqueID int64, ownerID int64) (domain.FileResponse, error) {
	if _, err := s.fileService.ownedFile(ctx, uniqueID, ownerID, false); err != nil {
		return domain.FileResponse{}, err
	}

	record, err := s.fileRepo.Trash(ctx, uniqueID)
	if err != nil {
		return domain.FileResponse{}, mapFileError(err)
	}

	s.logger.Info("file moved to trash", zap.Int64("unique_id", uniqueID), zap.Int64("user_id", ownerID))
	return s.fileService.Present(ctx, domain.NewFileView(*record))
}

// RestoreFromTrash возвращает файл из корзины
func (s *TrashService) RestoreFromTrash(ctx context.Context, uniqueID int64, ownerID int64) (domain.FileResponse, error) {
	current, err := s.fileService.ownedFile(ctx, uniqueID, ownerID, true)
	if err != nil {
		return domain.FileResponse{}, err
	}
	if current.State() != domain.StateDeleted {
		return domain.FileResponse{}, fmt.Errorf("%w: file %d is not in trash", ErrFileNotFound, uniqueID)
	}

	record, err := s.fileRepo.Restore(ctx, uniqueID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.FileResponse{}, ErrFileNotFound
		}
		return domain.FileResponse{}, fmt.Errorf("failed to restore file: %w", err)
	}

	s.logger.Info("file restored from trash", zap.Int64("unique_id", uniqueID), zap.Int64("user_id", ownerID))
	return s.fileService.Present(ctx, domain.NewFileView(*record))
}
