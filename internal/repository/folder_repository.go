package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"filemanager/internal/domain"
)

type FolderRepository struct {
	db *sqlx.DB
}

func NewFolderRepository(db *sqlx.DB) *FolderRepository {
	return &FolderRepository{db: db}
}

// GetByUniqueID возвращает активную папку по unique_id
func (r *FolderRepository) GetByUniqueID(ctx context.Context, uniqueID int64) (*domain.Folder, error) {
	query := `
        SELECT id, unique_id, parent_id, owner_id, name, user_scope,
            deleted_at, created_at, updated_at
        FROM file_manager_folders
        WHERE unique_id = $1 AND deleted_at IS NULL`

	var folder domain.Folder
	if err := r.db.GetContext(ctx, &folder, query, uniqueID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get folder %d: %w", uniqueID, err)
	}
	return &folder, nil
}

// GetParent возвращает папку, в которой лежит файл
func (r *FolderRepository) GetParent(ctx context.Context, file domain.FileRecord) (*domain.Folder, error) {
	return r.GetByUniqueID(ctx, file.FolderID)
}

// IsInHierarchy проверяет, лежит ли папка folderUniqueID внутри ancestorUniqueID
// (или совпадает с ней). parent_id хранит unique_id родителя.
func (r *FolderRepository) IsInHierarchy(ctx context.Context, ancestorUniqueID, folderUniqueID int64) (bool, error) {
	query := `
        WITH RECURSIVE folder_path AS (
            -- Начальная папка
            SELECT unique_id, parent_id
            FROM file_manager_folders
            WHERE unique_id = $1 AND deleted_at IS NULL

            UNION ALL

            -- Все родительские папки
            SELECT f.unique_id, f.parent_id
            FROM file_manager_folders f
            INNER JOIN folder_path fp ON f.unique_id = fp.parent_id
            WHERE f.deleted_at IS NULL
        )
        SELECT EXISTS (SELECT 1 FROM folder_path WHERE unique_id = $2)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, folderUniqueID, ancestorUniqueID); err != nil {
		return false, fmt.Errorf("failed to check folder hierarchy: %w", err)
	}
	return exists, nil
}
