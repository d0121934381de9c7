package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"filemanager/internal/domain"
)

// ErrNotFound возвращается, когда запись не найдена
var ErrNotFound = errors.New("record not found")

const fileColumns = `id, unique_id, owner_id, folder_id, name, basename, mimetype,
            filesize, thumbnail, type, user_scope, deleted_at, created_at, updated_at`

type FileRepository struct {
	db *sqlx.DB
}

func NewFileRepository(db *sqlx.DB) *FileRepository {
	return &FileRepository{db: db}
}

// GetByUniqueID возвращает файл по unique_id. Удаленные файлы возвращаются только при includeDeleted.
func (r *FileRepository) GetByUniqueID(ctx context.Context, uniqueID int64, includeDeleted bool) (*domain.FileRecord, error) {
	query := `SELECT ` + fileColumns + ` FROM file_manager_files WHERE unique_id = $1`
	if !includeDeleted {
		query += ` AND deleted_at IS NULL`
	}

	var file domain.FileRecord
	if err := r.db.GetContext(ctx, &file, query, uniqueID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get file %d: %w", uniqueID, err)
	}
	return &file, nil
}

// GetByBasename ищет активный файл по ключу хранилища
func (r *FileRepository) GetByBasename(ctx context.Context, basename string) (*domain.FileRecord, error) {
	query := `SELECT ` + fileColumns + ` FROM file_manager_files
        WHERE basename = $1 AND deleted_at IS NULL
        LIMIT 1`

	var file domain.FileRecord
	if err := r.db.GetContext(ctx, &file, query, basename); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get file by basename: %w", err)
	}
	return &file, nil
}

// GetByThumbnail ищет активный файл по ключу миниатюры
func (r *FileRepository) GetByThumbnail(ctx context.Context, thumbnail string) (*domain.FileRecord, error) {
	query := `SELECT ` + fileColumns + ` FROM file_manager_files
        WHERE thumbnail = $1 AND deleted_at IS NULL
        LIMIT 1`

	var file domain.FileRecord
	if err := r.db.GetContext(ctx, &file, query, thumbnail); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get file by thumbnail: %w", err)
	}
	return &file, nil
}

// ListByFolder возвращает файлы папки. Удаленные файлы попадают в выборку только при includeDeleted.
func (r *FileRepository) ListByFolder(ctx context.Context, folderUniqueID int64, includeDeleted bool) ([]domain.FileRecord, error) {
	query := `SELECT ` + fileColumns + ` FROM file_manager_files WHERE folder_id = $1`
	if !includeDeleted {
		query += ` AND deleted_at IS NULL`
	}
	query += ` ORDER BY name`

	files := []domain.FileRecord{}
	if err := r.db.SelectContext(ctx, &files, query, folderUniqueID); err != nil {
		return nil, fmt.Errorf("failed to list files of folder %d: %w", folderUniqueID, err)
	}
	return files, nil
}

// ListTrashed возвращает удаленные файлы пользователя, последние удаленные первыми
func (r *FileRepository) ListTrashed(ctx context.Context, ownerID int64) ([]domain.FileRecord, error) {
	query := `SELECT ` + fileColumns + ` FROM file_manager_files
        WHERE owner_id = $1 AND deleted_at IS NOT NULL
        ORDER BY deleted_at DESC`

	files := []domain.FileRecord{}
	if err := r.db.SelectContext(ctx, &files, query, ownerID); err != nil {
		return nil, fmt.Errorf("failed to list trashed files: %w", err)
	}
	return files, nil
}

// Rename меняет отображаемое имя файла. Ключ хранилища не меняется.
func (r *FileRepository) Rename(ctx context.Context, uniqueID int64, name string) (*domain.FileRecord, error) {
	query := `
        UPDATE file_manager_files
        SET name = $1, updated_at = CURRENT_TIMESTAMP
        WHERE unique_id = $2 AND deleted_at IS NULL
        RETURNING ` + fileColumns

	return r.updateOne(ctx, query, name, uniqueID)
}

// Move переносит файл в папку с указанным unique_id
func (r *FileRepository) Move(ctx context.Context, uniqueID, folderUniqueID int64) (*domain.FileRecord, error) {
	query := `
        UPDATE file_manager_files
        SET folder_id = $1, updated_at = CURRENT_TIMESTAMP
        WHERE unique_id = $2 AND deleted_at IS NULL
        RETURNING ` + fileColumns

	return r.updateOne(ctx, query, folderUniqueID, uniqueID)
}

// Trash переводит файл в состояние deleted
func (r *FileRepository) Trash(ctx context.Context, uniqueID int64) (*domain.FileRecord, error) {
	query := `
        UPDATE file_manager_files
        SET deleted_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP
        WHERE unique_id = $1 AND deleted_at IS NULL
        RETURNING ` + fileColumns

	return r.updateOne(ctx, query, uniqueID)
}

// Restore возвращает удаленный файл в состояние active
func (r *FileRepository) Restore(ctx context.Context, uniqueID int64) (*domain.FileRecord, error) {
	query := `
        UPDATE file_manager_files
        SET deleted_at = NULL, updated_at = CURRENT_TIMESTAMP
        WHERE unique_id = $1 AND deleted_at IS NOT NULL
        RETURNING ` + fileColumns

	return r.updateOne(ctx, query, uniqueID)
}

func (r *FileRepository) updateOne(ctx context.Context, query string, args ...interface{}) (*domain.FileRecord, error) {
	var file domain.FileRecord
	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&file); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update file: %w", err)
	}
	return &file, nil
}
