package service

import (
	"context"

	"filemanager/internal/domain"
	"filemanager/internal/repository"
)

// --- Mock file store ---

type mockFileRepo struct {
	getByUniqueIDFunc  func(ctx context.Context, uniqueID int64, includeDeleted bool) (*domain.FileRecord, error)
	getByBasenameFunc  func(ctx context.Context, basename string) (*domain.FileRecord, error)
	getByThumbnailFunc func(ctx context.Context, thumbnail string) (*domain.FileRecord, error)
	listByFolderFunc   func(ctx context.Context, folderUniqueID int64, includeDeleted bool) ([]domain.FileRecord, error)
	listTrashedFunc    func(ctx context.Context, ownerID int64) ([]domain.FileRecord, error)
	renameFunc         func(ctx context.Context, uniqueID int64, name string) (*domain.FileRecord, error)
	moveFunc           func(ctx context.Context, uniqueID, folderUniqueID int64) (*domain.FileRecord, error)
	trashFunc          func(ctx context.Context, uniqueID int64) (*domain.FileRecord, error)
	restoreFunc        func(ctx context.Context, uniqueID int64) (*domain.FileRecord, error)
}

func (m *mockFileRepo) GetByUniqueID(ctx context.Context, uniqueID int64, includeDeleted bool) (*domain.FileRecord, error) {
	if m.getByUniqueIDFunc != nil {
		return m.getByUniqueIDFunc(ctx, uniqueID, includeDeleted)
	}
	return nil, repository.ErrNotFound
}

func (m *mockFileRepo) GetByBasename(ctx context.Context, basename string) (*domain.FileRecord, error) {
	if m.getByBasenameFunc != nil {
		return m.getByBasenameFunc(ctx, basename)
	}
	return nil, repository.ErrNotFound
}

func (m *mockFileRepo) GetByThumbnail(ctx context.Context, thumbnail string) (*domain.FileRecord, error) {
	if m.getByThumbnailFunc != nil {
		return m.getByThumbnailFunc(ctx, thumbnail)
	}
	return nil, repository.ErrNotFound
}

func (m *mockFileRepo) ListByFolder(ctx context.Context, folderUniqueID int64, includeDeleted bool) ([]domain.FileRecord, error) {
	if m.listByFolderFunc != nil {
		return m.listByFolderFunc(ctx, folderUniqueID, includeDeleted)
	}
	return []domain.FileRecord{}, nil
}

func (m *mockFileRepo) ListTrashed(ctx context.Context, ownerID int64) ([]domain.FileRecord, error) {
	if m.listTrashedFunc != nil {
		return m.listTrashedFunc(ctx, ownerID)
	}
	return []domain.FileRecord{}, nil
}

func (m *mockFileRepo) Rename(ctx context.Context, uniqueID int64, name string) (*domain.FileRecord, error) {
	if m.renameFunc != nil {
		return m.renameFunc(ctx, uniqueID, name)
	}
	return nil, repository.ErrNotFound
}

func (m *mockFileRepo) Move(ctx context.Context, uniqueID, folderUniqueID int64) (*domain.FileRecord, error) {
	if m.moveFunc != nil {
		return m.moveFunc(ctx, uniqueID, folderUniqueID)
	}
	return nil, repository.ErrNotFound
}

func (m *mockFileRepo) Trash(ctx context.Context, uniqueID int64) (*domain.FileRecord, error) {
	if m.trashFunc != nil {
		return m.trashFunc(ctx, uniqueID)
	}
	return nil, repository.ErrNotFound
}

func (m *mockFileRepo) Restore(ctx context.Context, uniqueID int64) (*domain.FileRecord, error) {
	if m.restoreFunc != nil {
		return m.restoreFunc(ctx, uniqueID)
	}
	return nil, repository.ErrNotFound
}

// --- Mock folder store ---

type mockFolderRepo struct {
	getByUniqueIDFunc func(ctx context.Context, uniqueID int64) (*domain.Folder, error)
	getParentFunc     func(ctx context.Context, file domain.FileRecord) (*domain.Folder, error)
	isInHierarchyFunc func(ctx context.Context, ancestorUniqueID, folderUniqueID int64) (bool, error)
}

func (m *mockFolderRepo) GetByUniqueID(ctx context.Context, uniqueID int64) (*domain.Folder, error) {
	if m.getByUniqueIDFunc != nil {
		return m.getByUniqueIDFunc(ctx, uniqueID)
	}
	return nil, repository.ErrNotFound
}

func (m *mockFolderRepo) GetParent(ctx context.Context, file domain.FileRecord) (*domain.Folder, error) {
	if m.getParentFunc != nil {
		return m.getParentFunc(ctx, file)
	}
	return m.GetByUniqueID(ctx, file.FolderID)
}

func (m *mockFolderRepo) IsInHierarchy(ctx context.Context, ancestorUniqueID, folderUniqueID int64) (bool, error) {
	if m.isInHierarchyFunc != nil {
		return m.isInHierarchyFunc(ctx, ancestorUniqueID, folderUniqueID)
	}
	return false, nil
}

// --- Mock share store ---

type mockShareRepo struct {
	createFunc        func(ctx context.Context, share *domain.Share) error
	getByTokenFunc    func(ctx context.Context, token string) (*domain.Share, error)
	getByItemIDFunc   func(ctx context.Context, itemID int64, itemType domain.ResourceType) (*domain.Share, error)
	deleteExpiredFunc func(ctx context.Context) (int64, error)
}

func (m *mockShareRepo) Create(ctx context.Context, share *domain.Share) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, share)
	}
	return nil
}

func (m *mockShareRepo) GetByToken(ctx context.Context, token string) (*domain.Share, error) {
	if m.getByTokenFunc != nil {
		return m.getByTokenFunc(ctx, token)
	}
	return nil, repository.ErrNotFound
}

func (m *mockShareRepo) GetByItemID(ctx context.Context, itemID int64, itemType domain.ResourceType) (*domain.Share, error) {
	if m.getByItemIDFunc != nil {
		return m.getByItemIDFunc(ctx, itemID, itemType)
	}
	return nil, repository.ErrNotFound
}

func (m *mockShareRepo) DeleteExpired(ctx context.Context) (int64, error) {
	if m.deleteExpiredFunc != nil {
		return m.deleteExpiredFunc(ctx)
	}
	return 0, nil
}

func int64Ptr(v int64) *int64 {
	return &v
}

func ownedRecord(owner int64) domain.FileRecord {
	record := testRecord()
	record.OwnerID = int64Ptr(owner)
	return record
}

func fileFound(record domain.FileRecord) func(context.Context, int64, bool) (*domain.FileRecord, error) {
	return func(_ context.Context, uniqueID int64, includeDeleted bool) (*domain.FileRecord, error) {
		if uniqueID != record.UniqueID {
			return nil, repository.ErrNotFound
		}
		if record.DeletedAt != nil && !includeDeleted {
			return nil, repository.ErrNotFound
		}
		r := record
		return &r, nil
	}
}

func shareWithToken(share domain.Share) func(context.Context, string) (*domain.Share, error) {
	return func(_ context.Context, token string) (*domain.Share, error) {
		if token != share.Token {
			return nil, repository.ErrNotFound
		}
		s := share
		return &s, nil
	}
}
