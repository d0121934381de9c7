package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"filemanager/internal/domain"
)

type FolderService struct {
	folderRepo        folderStore
	fileRepo          fileStore
	permissionService *PermissionService
	fileService       *FileService
	logger            *zap.Logger
}

func NewFolderService(
	folderRepo folderStore,
	fileRepo fileStore,
	permissionService *PermissionService,
	fileService *FileService,
	logger *zap.Logger,
) *FolderService {
	return &FolderService{
		folderRepo:        folderRepo,
		fileRepo:          fileRepo,
		permissionService: permissionService,
		fileService:       fileService,
		logger:            logger.With(zap.String("component", "folder_service")),
	}
}

// GetFolderContent возвращает файлы папки. Файлы из корзины попадают в ответ только при includeDeleted.
func (s *FolderService) GetFolderContent(ctx context.Context, folderUniqueID int64, userID int64, includeDeleted bool) (*domain.FolderContent, error) {
	folder, err := s.folderRepo.GetByUniqueID(ctx, folderUniqueID)
	if err != nil {
		return nil, mapFolderError(err)
	}
	if err := s.permissionService.AuthorizeFolder(userID, *folder); err != nil {
		return nil, err
	}

	records, err := s.fileRepo.ListByFolder(ctx, folder.UniqueID, includeDeleted)
	if err != nil {
		return nil, fmt.Errorf("failed to get folder content: %w", err)
	}

	views := make([]domain.FileView, len(records))
	for i, record := range records {
		views[i] = domain.NewFileView(record)
	}

	files, err := s.fileService.PresentAll(ctx, views)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("folder content loaded",
		zap.Int64("folder_id", folder.UniqueID),
		zap.Int("files", len(files)),
		zap.Bool("include_deleted", includeDeleted),
	)
	return &domain.FolderContent{Folder: *folder, Files: files}, nil
}
