package domain

// FileResponse представляет файл для отдачи клиенту:
// сохраненные поля плюс вычисляемые URL и отформатированные значения.
type FileResponse struct {
	ID        int64   `json:"id"`
	UniqueID  int64   `json:"unique_id"`
	OwnerID   *int64  `json:"user_id"`
	FolderID  int64   `json:"folder_id"`
	Name      string  `json:"name"`
	Basename  string  `json:"basename"`
	Mimetype  string  `json:"mimetype"`
	Filesize  string  `json:"filesize"`
	Thumbnail *string `json:"thumbnail"`
	Type      string  `json:"type"`
	UserScope string  `json:"user_scope"`
	FileURL   string  `json:"file_url"`
	CreatedAt string  `json:"created_at"`
	DeletedAt *string `json:"deleted_at"`
	State     string  `json:"state"`
}
