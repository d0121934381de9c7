package domain

import "time"

// LifecycleState описывает состояние записи файла.
type LifecycleState string

const (
	StateActive  LifecycleState = "active"
	StateDeleted LifecycleState = "deleted"
)

// FileRecord представляет запись таблицы file_manager_files.
// Связи с папками и шарами идут только через UniqueID, никогда через ID.
type FileRecord struct {
	ID        int64      `json:"id" db:"id"`
	UniqueID  int64      `json:"unique_id" db:"unique_id"`
	OwnerID   *int64     `json:"user_id" db:"owner_id"`
	FolderID  int64      `json:"folder_id" db:"folder_id"`
	Name      *string    `json:"name" db:"name"`
	Basename  *string    `json:"basename" db:"basename"`
	Mimetype  *string    `json:"mimetype" db:"mimetype"`
	Filesize  string     `json:"filesize" db:"filesize"` // exact byte count
	Thumbnail *string    `json:"thumbnail" db:"thumbnail"`
	Type      *string    `json:"type" db:"type"`
	UserScope string     `json:"user_scope" db:"user_scope"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

// State возвращает состояние жизненного цикла, вычисленное из DeletedAt.
func (f FileRecord) State() LifecycleState {
	if f.DeletedAt != nil {
		return StateDeleted
	}
	return StateActive
}

func (f FileRecord) DisplayName() string { return deref(f.Name) }
func (f FileRecord) StorageKey() string { return deref(f.Basename) }
func (f FileRecord) MimeType() string { return deref(f.Mimetype) }
func (f FileRecord) ThumbnailKey() string { return deref(f.Thumbnail) }

// HasThumbnail проверяет, есть ли у файла миниатюра
func (f FileRecord) HasThumbnail() bool {
	return f.ThumbnailKey() != ""
}

// OwnedBy проверяет владельца. Записи без owner_id системные и не принадлежат никому.
func (f FileRecord) OwnedBy(userID int64) bool {
	return f.OwnerID != nil && *f.OwnerID == userID
}

// FileView: представление FileRecord в рамках одного запроса.
// Публичный токен хранится только здесь и никогда не попадает в саму запись.
type FileView struct {
	record      FileRecord
	publicToken string
}

// NewFileView создает представление на копии записи без публичного доступа
func NewFileView(record FileRecord) FileView {
	return FileView{record: record}
}

// WithPublicAccess возвращает копию представления с токеном.
// Пустой токен означает отсутствие публичного доступа.
func (v FileView) WithPublicAccess(token string) FileView {
	v.publicToken = token
	return v
}

func (v FileView) Record() FileRecord {
	return v.record
}

// PublicToken возвращает токен и признак его наличия
func (v FileView) PublicToken() (string, bool) {
	return v.publicToken, v.publicToken != ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func StringPtr(s string) *string {
	return &s
}
