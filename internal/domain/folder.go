package domain

import "time"

// Folder представляет папку. Файлы ссылаются на папку по UniqueID.
type Folder struct {
	ID        int64      `json:"id" db:"id"`
	UniqueID  int64      `json:"unique_id" db:"unique_id"`
	ParentID  *int64     `json:"parent_id,omitempty" db:"parent_id"`
	OwnerID   *int64     `json:"user_id" db:"owner_id"`
	Name      string     `json:"name" db:"name"`
	UserScope string     `json:"user_scope" db:"user_scope"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

type FolderContent struct {
	Folder Folder         `json:"folder"`
	Files  []FileResponse `json:"files"`
}
