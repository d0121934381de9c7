package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"filemanager/internal/domain"
	"filemanager/internal/repository"
	"filemanager/internal/service/search"
)

type fileStore interface {
	GetByUniqueID(ctx context.Context, uniqueID int64, includeDeleted bool) (*domain.FileRecord, error)
	GetByBasename(ctx context.Context, basename string) (*domain.FileRecord, error)
	GetByThumbnail(ctx context.Context, thumbnail string) (*domain.FileRecord, error)
	ListByFolder(ctx context.Context, folderUniqueID int64, includeDeleted bool) ([]domain.FileRecord, error)
	ListTrashed(ctx context.Context, ownerID int64) ([]domain.FileRecord, error)
	Rename(ctx context.Context, uniqueID int64, name string) (*domain.FileRecord, error)
	Move(ctx context.Context, uniqueID, folderUniqueID int64) (*domain.FileRecord, error)
	Trash(ctx context.Context, uniqueID int64) (*domain.FileRecord, error)
	Restore(ctx context.Context, uniqueID int64) (*domain.FileRecord, error)
}

// AssetKind: вид отдаваемого локального содержимого
type AssetKind int

const (
	AssetFile AssetKind = iota + 1
	AssetThumbnail
)

// FileService представляет сервис для работы с файлами
type FileService struct {
	fileRepo          fileStore
	folderRepo        folderStore
	permissionService *PermissionService
	urlSigner         *URLSigner
	indexer           *search.Indexer
	backend           BackendKind
	dateLayout        string
	logger            *zap.Logger
}

func NewFileService(
	fileRepo fileStore,
	folderRepo folderStore,
	permissionService *PermissionService,
	urlSigner *URLSigner,
	indexer *search.Indexer,
	backend BackendKind,
	dateLayout string,
	logger *zap.Logger,
) *FileService {
	if dateLayout == "" {
		dateLayout = DefaultDateLayout
	}
	return &FileService{
		fileRepo:          fileRepo,
		folderRepo:        folderRepo,
		permissionService: permissionService,
		urlSigner:         urlSigner,
		indexer:           indexer,
		backend:           backend,
		dateLayout:        dateLayout,
		logger:            logger.With(zap.String("component", "file_service")),
	}
}

// Backend возвращает семейство драйвера, для которого строятся ссылки
func (s *FileService) Backend() BackendKind {
	return s.backend
}

// Present собирает ответ клиенту: сохраненные поля плюс ссылки и отформатированные значения
func (s *FileService) Present(ctx context.Context, view domain.FileView) (domain.FileResponse, error) {
	record := view.Record()

	fileURL, err := s.urlSigner.FileURL(ctx, s.backend, view)
	if err != nil {
		return domain.FileResponse{}, fmt.Errorf("failed to build file url: %w", err)
	}

	thumbnailURL, err := s.urlSigner.ThumbnailURL(ctx, s.backend, view)
	if err != nil {
		return domain.FileResponse{}, fmt.Errorf("failed to build thumbnail url: %w", err)
	}

	response := domain.FileResponse{
		ID:        record.ID,
		UniqueID:  record.UniqueID,
		OwnerID:   record.OwnerID,
		FolderID:  record.FolderID,
		Name:      record.DisplayName(),
		Basename:  record.StorageKey(),
		Mimetype:  record.MimeType(),
		Filesize:  FormatSize(record.Filesize),
		Thumbnail: thumbnailURL,
		Type:      deref(record.Type),
		UserScope: record.UserScope,
		FileURL:   fileURL,
		CreatedAt: FormatDate(record.CreatedAt, s.dateLayout),
		State:     string(record.State()),
	}
	if record.DeletedAt != nil {
		deletedAt := FormatDate(*record.DeletedAt, s.dateLayout)
		response.DeletedAt = &deletedAt
	}

	return response, nil
}

// PresentAll собирает ответы для списка представлений, сохраняя порядок
func (s *FileService) PresentAll(ctx context.Context, views []domain.FileView) ([]domain.FileResponse, error) {
	responses := make([]domain.FileResponse, 0, len(views))
	for _, view := range views {
		response, err := s.Present(ctx, view)
		if err != nil {
			return nil, err
		}
		responses = append(responses, response)
	}
	return responses, nil
}

// GetFile возвращает файл владельцу, включая файлы в корзине
func (s *FileService) GetFile(ctx context.Context, uniqueID int64, userID int64) (domain.FileResponse, error) {
	record, err := s.ownedFile(ctx, uniqueID, userID, true)
	if err != nil {
		return domain.FileResponse{}, err
	}
	return s.Present(ctx, domain.NewFileView(*record))
}

// GetSharedFile возвращает файл по публичной ссылке. Ссылки в ответе содержат токен.
func (s *FileService) GetSharedFile(ctx context.Context, token string, uniqueID int64) (domain.FileResponse, error) {
	record, err := s.fileRepo.GetByUniqueID(ctx, uniqueID, false)
	if err != nil {
		return domain.FileResponse{}, mapFileError(err)
	}

	view, err := s.permissionService.AuthorizePublic(ctx, token, *record)
	if err != nil {
		return domain.FileResponse{}, err
	}
	return s.Present(ctx, view)
}

// RenameFile переименовывает файл и возвращает новый документ поискового индекса
func (s *FileService) RenameFile(ctx context.Context, uniqueID int64, newName string, userID int64) (domain.FileResponse, domain.SearchDocument, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return domain.FileResponse{}, domain.SearchDocument{}, fmt.Errorf("%w: name is required", ErrInvalidName)
	}

	if _, err := s.ownedFile(ctx, uniqueID, userID, false); err != nil {
		return domain.FileResponse{}, domain.SearchDocument{}, err
	}

	record, err := s.fileRepo.Rename(ctx, uniqueID, newName)
	if err != nil {
		return domain.FileResponse{}, domain.SearchDocument{}, mapFileError(err)
	}

	return s.reindexed(ctx, *record)
}

// MoveFile перемещает файл в другую папку пользователя и возвращает новый документ индекса
func (s *FileService) MoveFile(ctx context.Context, uniqueID, folderUniqueID int64, userID int64) (domain.FileResponse, domain.SearchDocument, error) {
	if _, err := s.ownedFile(ctx, uniqueID, userID, false); err != nil {
		return domain.FileResponse{}, domain.SearchDocument{}, err
	}

	// Проверяем права на целевую папку
	folder, err := s.folderRepo.GetByUniqueID(ctx, folderUniqueID)
	if err != nil {
		return domain.FileResponse{}, domain.SearchDocument{}, mapFolderError(err)
	}
	if err := s.permissionService.AuthorizeFolder(userID, *folder); err != nil {
		return domain.FileResponse{}, domain.SearchDocument{}, err
	}

	record, err := s.fileRepo.Move(ctx, uniqueID, folder.UniqueID)
	if err != nil {
		return domain.FileResponse{}, domain.SearchDocument{}, mapFileError(err)
	}

	return s.reindexed(ctx, *record)
}

// GetParentFolder возвращает папку, в которой лежит файл (связь parent)
func (s *FileService) GetParentFolder(ctx context.Context, uniqueID int64, userID int64) (*domain.Folder, error) {
	record, err := s.ownedFile(ctx, uniqueID, userID, false)
	if err != nil {
		return nil, err
	}

	folder, err := s.folderRepo.GetParent(ctx, *record)
	if err != nil {
		return nil, mapFolderError(err)
	}
	return folder, nil
}

// SearchDocument строит документ индекса для файла
func (s *FileService) SearchDocument(ctx context.Context, uniqueID int64, userID int64) (domain.SearchDocument, error) {
	record, err := s.ownedFile(ctx, uniqueID, userID, false)
	if err != nil {
		return domain.SearchDocument{}, err
	}
	return s.indexer.Index(*record), nil
}

// FolderSearchDocuments переиндексирует все активные файлы папки
func (s *FileService) FolderSearchDocuments(ctx context.Context, folderUniqueID int64, userID int64) ([]domain.SearchDocument, error) {
	folder, err := s.folderRepo.GetByUniqueID(ctx, folderUniqueID)
	if err != nil {
		return nil, mapFolderError(err)
	}
	if err := s.permissionService.AuthorizeFolder(userID, *folder); err != nil {
		return nil, err
	}

	records, err := s.fileRepo.ListByFolder(ctx, folder.UniqueID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list folder files: %w", err)
	}

	docs, err := s.indexer.IndexBatch(ctx, records)
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder reindexed",
		zap.Int64("folder_id", folder.UniqueID),
		zap.Int("documents", len(docs)),
	)
	return docs, nil
}

// ResolveAsset находит файл для отдачи по локальному маршруту.
// С токеном доступ проверяется по публичной ссылке, без него по владельцу.
func (s *FileService) ResolveAsset(ctx context.Context, kind AssetKind, key, token string, userID int64) (domain.FileRecord, error) {
	var (
		record *domain.FileRecord
		err    error
	)
	switch kind {
	case AssetFile:
		record, err = s.fileRepo.GetByBasename(ctx, key)
	case AssetThumbnail:
		record, err = s.fileRepo.GetByThumbnail(ctx, key)
	default:
		return domain.FileRecord{}, fmt.Errorf("unsupported asset kind: %d", kind)
	}
	if err != nil {
		return domain.FileRecord{}, mapFileError(err)
	}

	if token != "" {
		if _, err := s.permissionService.AuthorizePublic(ctx, token, *record); err != nil {
			return domain.FileRecord{}, err
		}
		return *record, nil
	}

	if err := s.permissionService.AuthorizeOwner(userID, *record); err != nil {
		return domain.FileRecord{}, err
	}
	return *record, nil
}

func (s *FileService) ownedFile(ctx context.Context, uniqueID, userID int64, includeDeleted bool) (*domain.FileRecord, error) {
	record, err := s.fileRepo.GetByUniqueID(ctx, uniqueID, includeDeleted)
	if err != nil {
		return nil, mapFileError(err)
	}
	if err := s.permissionService.AuthorizeOwner(userID, *record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *FileService) reindexed(ctx context.Context, record domain.FileRecord) (domain.FileResponse, domain.SearchDocument, error) {
	doc := s.indexer.Index(record)

	response, err := s.Present(ctx, domain.NewFileView(record))
	if err != nil {
		return domain.FileResponse{}, domain.SearchDocument{}, err
	}
	return response, doc, nil
}

func mapFileError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrFileNotFound
	}
	return fmt.Errorf("failed to get file: %w", err)
}

func mapFolderError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrFolderNotFound
	}
	return fmt.Errorf("failed to get folder: %w", err)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
