package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"filemanager/internal/domain"
	"filemanager/internal/repository"
	"filemanager/internal/service/search"
)

const testBaseURL = "https://files.example.com"

var testCreatedAt = time.Date(2020, time.March, 3, 6, 51, 0, 0, time.UTC)

type serviceFixture struct {
	files       *mockFileRepo
	folders     *mockFolderRepo
	shares      *mockShareRepo
	signer      *mockSigner
	permissions *PermissionService
	fileService *FileService
}

func newFixture(backend BackendKind) *serviceFixture {
	f := &serviceFixture{
		files:   &mockFileRepo{},
		folders: &mockFolderRepo{},
		shares:  &mockShareRepo{},
		signer:  &mockSigner{},
	}
	f.permissions = NewPermissionService(f.shares, f.folders)
	f.fileService = NewFileService(
		f.files,
		f.folders,
		f.permissions,
		NewURLSigner(testBaseURL, f.signer),
		search.NewIndexer(2, zap.NewNop()),
		backend,
		"",
		zap.NewNop(),
	)
	return f
}

func storedRecord() domain.FileRecord {
	record := ownedRecord(7)
	record.CreatedAt = testCreatedAt
	record.UpdatedAt = testCreatedAt
	return record
}

func ownedFolder(uniqueID, owner int64) func(context.Context, int64) (*domain.Folder, error) {
	return func(_ context.Context, id int64) (*domain.Folder, error) {
		if id != uniqueID {
			return nil, repository.ErrNotFound
		}
		return &domain.Folder{ID: 1, UniqueID: uniqueID, OwnerID: int64Ptr(owner), Name: "Documents"}, nil
	}
}

func TestFileService_Present_Local(t *testing.T) {
	f := newFixture(BackendLocal)

	resp, err := f.fileService.Present(context.Background(), domain.NewFileView(storedRecord()))
	require.NoError(t, err)

	assert.Equal(t, testBaseURL+"/file/a1b2c3.pdf", resp.FileURL)
	require.NotNil(t, resp.Thumbnail)
	assert.Equal(t, testBaseURL+"/thumbnail/thumb-a1b2c3.jpg", *resp.Thumbnail)
	assert.Equal(t, "1.5 MB", resp.Filesize)
	assert.Equal(t, "03. Mar. 2020, 06:51", resp.CreatedAt)
	assert.Nil(t, resp.DeletedAt)
	assert.Equal(t, "active", resp.State)
	assert.Equal(t, int64(1001), resp.UniqueID)
	assert.Equal(t, int64(500), resp.FolderID)
}

func TestFileService_Present_Deleted(t *testing.T) {
	f := newFixture(BackendLocal)

	record := storedRecord()
	deletedAt := time.Date(2021, time.June, 1, 12, 0, 0, 0, time.UTC)
	record.DeletedAt = &deletedAt
	record.Thumbnail = nil

	resp, err := f.fileService.Present(context.Background(), domain.NewFileView(record))
	require.NoError(t, err)

	require.NotNil(t, resp.DeletedAt)
	assert.Equal(t, "01. Jun. 2021, 12:00", *resp.DeletedAt)
	assert.Equal(t, "deleted", resp.State)
	assert.Nil(t, resp.Thumbnail)
}

func TestFileService_Present_ObjectStore(t *testing.T) {
	f := newFixture(BackendObjectStore)

	resp, err := f.fileService.Present(context.Background(), domain.NewFileView(storedRecord()))
	require.NoError(t, err)

	assert.Contains(t, resp.FileURL, "file-manager/a1b2c3.pdf")
	require.NotNil(t, resp.Thumbnail)
	assert.Contains(t, *resp.Thumbnail, "file-manager/thumb-a1b2c3.jpg")
	// Хранимый размер не меняется
	assert.Equal(t, "1500000", f.signer.requests[0].Overrides.ContentLength)
}

func TestFileService_GetFile(t *testing.T) {
	f := newFixture(BackendLocal)
	f.files.getByUniqueIDFunc = fileFound(storedRecord())

	resp, err := f.fileService.GetFile(context.Background(), 1001, 7)
	require.NoError(t, err)
	assert.NotContains(t, resp.FileURL, "/public/")

	_, err = f.fileService.GetFile(context.Background(), 1001, 8)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.fileService.GetFile(context.Background(), 404, 7)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestFileService_GetSharedFile(t *testing.T) {
	f := newFixture(BackendLocal)
	f.files.getByUniqueIDFunc = fileFound(storedRecord())
	f.shares.getByTokenFunc = shareWithToken(domain.Share{ItemID: 1001, Type: domain.ResourceTypeFile, Token: "T1"})

	resp, err := f.fileService.GetSharedFile(context.Background(), "T1", 1001)
	require.NoError(t, err)
	assert.Equal(t, testBaseURL+"/file/a1b2c3.pdf/public/T1", resp.FileURL)
	require.NotNil(t, resp.Thumbnail)
	assert.Equal(t, testBaseURL+"/thumbnail/thumb-a1b2c3.jpg/public/T1", *resp.Thumbnail)

	_, err = f.fileService.GetSharedFile(context.Background(), "bad", 1001)
	assert.ErrorIs(t, err, ErrInvalidShareToken)

	// Токен одного запроса не влияет на следующий
	plain, err := f.fileService.GetFile(context.Background(), 1001, 7)
	require.NoError(t, err)
	assert.Equal(t, testBaseURL+"/file/a1b2c3.pdf", plain.FileURL)
}

func TestFileService_RenameFile(t *testing.T) {
	f := newFixture(BackendLocal)
	f.files.getByUniqueIDFunc = fileFound(storedRecord())
	f.files.renameFunc = func(_ context.Context, uniqueID int64, name string) (*domain.FileRecord, error) {
		record := storedRecord()
		record.Name = domain.StringPtr(name)
		return &record, nil
	}

	resp, doc, err := f.fileService.RenameFile(context.Background(), 1001, "  Report Q3!!  ", 7)
	require.NoError(t, err)
	assert.Equal(t, "Report Q3!!", resp.Name)
	assert.Equal(t, int64(10), doc.ID)
	assert.Equal(t, "report q3", doc.Name)
	assert.Equal(t, search.BuildDocument(10, "Report Q3!!"), doc)

	_, _, err = f.fileService.RenameFile(context.Background(), 1001, "   ", 7)
	assert.ErrorIs(t, err, ErrInvalidName)

	_, _, err = f.fileService.RenameFile(context.Background(), 1001, "x", 8)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestFileService_MoveFile(t *testing.T) {
	f := newFixture(BackendLocal)
	f.files.getByUniqueIDFunc = fileFound(storedRecord())
	f.folders.getByUniqueIDFunc = func(ctx context.Context, id int64) (*domain.Folder, error) {
		if id == 600 {
			return &domain.Folder{UniqueID: 600, OwnerID: int64Ptr(8)}, nil
		}
		return ownedFolder(510, 7)(ctx, id)
	}

	var movedTo int64
	f.files.moveFunc = func(_ context.Context, uniqueID, folderUniqueID int64) (*domain.FileRecord, error) {
		movedTo = folderUniqueID
		record := storedRecord()
		record.FolderID = folderUniqueID
		return &record, nil
	}

	resp, doc, err := f.fileService.MoveFile(context.Background(), 1001, 510, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(510), movedTo)
	assert.Equal(t, int64(510), resp.FolderID)
	assert.Equal(t, "report", doc.Name)

	_, _, err = f.fileService.MoveFile(context.Background(), 1001, 600, 7)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, _, err = f.fileService.MoveFile(context.Background(), 1001, 999, 7)
	assert.ErrorIs(t, err, ErrFolderNotFound)
}

func TestFileService_FolderSearchDocuments(t *testing.T) {
	f := newFixture(BackendLocal)
	f.folders.getByUniqueIDFunc = ownedFolder(500, 7)

	names := []string{"Alpha", "Beta", "Gamma", "Delta", "Épsilon"}
	f.files.listByFolderFunc = func(_ context.Context, folderUniqueID int64, includeDeleted bool) ([]domain.FileRecord, error) {
		assert.Equal(t, int64(500), folderUniqueID)
		assert.False(t, includeDeleted)
		records := make([]domain.FileRecord, len(names))
		for i, name := range names {
			records[i] = domain.FileRecord{ID: int64(i + 1), Name: domain.StringPtr(name)}
		}
		return records, nil
	}

	docs, err := f.fileService.FolderSearchDocuments(context.Background(), 500, 7)
	require.NoError(t, err)
	require.Len(t, docs, len(names))
	want := []string{"alpha", "beta", "gamma", "delta", "epsilon"}
	for i, doc := range docs {
		assert.Equal(t, int64(i+1), doc.ID)
		assert.Equal(t, want[i], doc.Name)
	}

	_, err = f.fileService.FolderSearchDocuments(context.Background(), 500, 8)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestFileService_SearchDocument(t *testing.T) {
	f := newFixture(BackendLocal)
	f.files.getByUniqueIDFunc = fileFound(storedRecord())

	first, err := f.fileService.SearchDocument(context.Background(), 1001, 7)
	require.NoError(t, err)
	second, err := f.fileService.SearchDocument(context.Background(), 1001, 7)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, domain.SearchDocument{ID: 10, Name: "report", NameNgrams: "rep epo por ort"}, first)
}

func TestFileService_ResolveAsset(t *testing.T) {
	f := newFixture(BackendLocal)
	f.files.getByBasenameFunc = func(_ context.Context, basename string) (*domain.FileRecord, error) {
		if basename != "a1b2c3.pdf" {
			return nil, repository.ErrNotFound
		}
		record := storedRecord()
		return &record, nil
	}
	f.files.getByThumbnailFunc = func(_ context.Context, thumbnail string) (*domain.FileRecord, error) {
		if thumbnail != "thumb-a1b2c3.jpg" {
			return nil, repository.ErrNotFound
		}
		record := storedRecord()
		return &record, nil
	}
	f.shares.getByTokenFunc = shareWithToken(domain.Share{ItemID: 1001, Type: domain.ResourceTypeFile, Token: "T1"})

	record, err := f.fileService.ResolveAsset(context.Background(), AssetFile, "a1b2c3.pdf", "", 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1001), record.UniqueID)

	_, err = f.fileService.ResolveAsset(context.Background(), AssetThumbnail, "thumb-a1b2c3.jpg", "T1", 0)
	require.NoError(t, err)

	_, err = f.fileService.ResolveAsset(context.Background(), AssetFile, "a1b2c3.pdf", "", 8)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.fileService.ResolveAsset(context.Background(), AssetFile, "a1b2c3.pdf", "T2", 0)
	assert.ErrorIs(t, err, ErrInvalidShareToken)

	_, err = f.fileService.ResolveAsset(context.Background(), AssetFile, "missing.pdf", "", 7)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestFileService_GetParentFolder(t *testing.T) {
	f := newFixture(BackendLocal)
	f.files.getByUniqueIDFunc = fileFound(storedRecord())
	f.folders.getByUniqueIDFunc = ownedFolder(500, 7)

	folder, err := f.fileService.GetParentFolder(context.Background(), 1001, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(500), folder.UniqueID)

	_, err = f.fileService.GetParentFolder(context.Background(), 1001, 8)
	assert.ErrorIs(t, err, ErrAccessDenied)

	f.folders.getByUniqueIDFunc = ownedFolder(510, 7)
	_, err = f.fileService.GetParentFolder(context.Background(), 1001, 7)
	assert.ErrorIs(t, err, ErrFolderNotFound)
}
