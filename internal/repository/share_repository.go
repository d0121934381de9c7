package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"filemanager/internal/domain"
)

const shareColumns = `id, item_id, type, owner_id, permission, token, expires_at, created_at`

type ShareRepository struct {
	db *sqlx.DB
}

func NewShareRepository(db *sqlx.DB) *ShareRepository {
	return &ShareRepository{db: db}
}

func (r *ShareRepository) Create(ctx context.Context, share *domain.Share) error {
	query := `
        INSERT INTO shares (
            id, item_id, type, owner_id, permission, token, expires_at, created_at
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, CURRENT_TIMESTAMP
        ) RETURNING created_at`

	err := r.db.QueryRowContext(
		ctx,
		query,
		share.ID,
		share.ItemID,
		share.Type,
		share.OwnerID,
		share.Permission,
		share.Token,
		share.ExpiresAt,
	).Scan(&share.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create share: %w", err)
	}
	return nil
}

// GetByToken возвращает ссылку по токену. Срок действия проверяет вызывающая сторона.
func (r *ShareRepository) GetByToken(ctx context.Context, token string) (*domain.Share, error) {
	query := `SELECT ` + shareColumns + ` FROM shares WHERE token = $1`

	var share domain.Share
	if err := r.db.GetContext(ctx, &share, query, token); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get share: %w", err)
	}
	return &share, nil
}

// GetByItemID возвращает ссылку на файл или папку по unique_id элемента
func (r *ShareRepository) GetByItemID(ctx context.Context, itemID int64, itemType domain.ResourceType) (*domain.Share, error) {
	query := `SELECT ` + shareColumns + ` FROM shares
        WHERE item_id = $1 AND type = $2
        ORDER BY created_at DESC
        LIMIT 1`

	var share domain.Share
	if err := r.db.GetContext(ctx, &share, query, itemID, itemType); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get share by item: %w", err)
	}
	return &share, nil
}

// DeleteExpired удаляет просроченные ссылки и возвращает их количество
func (r *ShareRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM shares WHERE expires_at < CURRENT_TIMESTAMP`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired shares: %w", err)
	}
	return result.RowsAffected()
}
