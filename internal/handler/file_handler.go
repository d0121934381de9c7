package handler

import (
	"encoding/json"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"filemanager/internal/auth"
	"filemanager/internal/service"
)

// localObjectDir: подкаталог LocalRoot с файлами и миниатюрами
const localObjectDir = "file-manager"

type FileHandler struct {
	fileService  *service.FileService
	trashService *service.TrashService
	localRoot    string
	logger       *zap.Logger
}

func NewFileHandler(
	fileService *service.FileService,
	trashService *service.TrashService,
	localRoot string,
	logger *zap.Logger,
) *FileHandler {
	return &FileHandler{
		fileService:  fileService,
		trashService: trashService,
		localRoot:    localRoot,
		logger:       logger.With(zap.String("component", "file_handler")),
	}
}

// GetFile возвращает файл владельцу со ссылками на содержимое и миниатюру
func (h *FileHandler) GetFile(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.VerifyUser(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	uniqueID, err := int64Param(r, "uniqueID")
	if err != nil {
		http.Error(w, "Invalid file ID", http.StatusBadRequest)
		return
	}

	file, err := h.fileService.GetFile(r.Context(), uniqueID, userID)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	writeJSON(w, http.StatusOK, file)
}

// GetSharedFile возвращает файл по публичной ссылке
func (h *FileHandler) GetSharedFile(w http.ResponseWriter, r *http.Request) {
	uniqueID, err := int64Param(r, "uniqueID")
	if err != nil {
		http.Error(w, "Invalid file ID", http.StatusBadRequest)
		return
	}

	file, err := h.fileService.GetSharedFile(r.Context(), chi.URLParam(r, "token"), uniqueID)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	writeJSON(w, http.StatusOK, file)
}

// fileMutationResponse: файл после изменения и документ для поискового индекса
type fileMutationResponse struct {
	File           interface{} `json:"file"`
	SearchDocument interface{} `json:"search_document"`
}

// RenameFile обрабатывает запрос на переименование файла
func (h *FileHandler) RenameFile(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.VerifyUser(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	uniqueID, err := int64Param(r, "uniqueID")
	if err != nil {
		http.Error(w, "Invalid file ID", http.StatusBadRequest)
		return
	}

	var req struct {
		NewName string `json:"new_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	file, doc, err := h.fileService.RenameFile(r.Context(), uniqueID, req.NewName, userID)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	writeJSON(w, http.StatusOK, fileMutationResponse{File: file, SearchDocument: doc})
}

// MoveFile обрабатывает запрос на перемещение файла
func (h *FileHandler) MoveFile(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.VerifyUser(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	uniqueID, err := int64Param(r, "uniqueID")
	if err != nil {
		http.Error(w, "Invalid file ID", http.StatusBadRequest)
		return
	}

	// folder_id это unique_id целевой папки
	var req struct {
		NewFolderID int64 `json:"new_folder_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	file, doc, err := h.fileService.MoveFile(r.Context(), uniqueID, req.NewFolderID, userID)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	writeJSON(w, http.StatusOK, fileMutationResponse{File: file, SearchDocument: doc})
}

// DeleteFile перемещает файл в корзину
func (h *FileHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.VerifyUser(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	uniqueID, err := int64Param(r, "uniqueID")
	if err != nil {
		http.Error(w, "Invalid file ID", http.StatusBadRequest)
		return
	}

	file, err := h.trashService.MoveToTrash(r.Context(), uniqueID, userID)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	writeJSON(w, http.StatusOK, file)
}

// RestoreFile возвращает файл из корзины
func (h *FileHandler) RestoreFile(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.VerifyUser(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	uniqueID, err := int64Param(r, "uniqueID")
	if err != nil {
		http.Error(w, "Invalid file ID", http.StatusBadRequest)
		return
	}

	file, err := h.trashService.RestoreFromTrash(r.Context(), uniqueID, userID)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	writeJSON(w, http.StatusOK, file)
}

// GetSearchDocument возвращает документ поискового индекса для файла
func (h *FileHandler) GetSearchDocument(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.VerifyUser(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	uniqueID, err := int64Param(r, "uniqueID")
	if err != nil {
		http.Error(w, "Invalid file ID", http.StatusBadRequest)
		return
	}

	doc, err := h.fileService.SearchDocument(r.Context(), uniqueID, userID)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

// GetParentFolder возвращает папку файла
func (h *FileHandler) GetParentFolder(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.VerifyUser(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	uniqueID, err := int64Param(r, "uniqueID")
	if err != nil {
		http.Error(w, "Invalid file ID", http.StatusBadRequest)
		return
	}

	folder, err := h.fileService.GetParentFolder(r.Context(), uniqueID, userID)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	writeJSON(w, http.StatusOK, folder)
}

// ServeFile отдает содержимое файла по локальному маршруту /file/{basename}[/public/{token}]
func (h *FileHandler) ServeFile(w http.ResponseWriter, r *http.Request) {
	h.serveAsset(w, r, service.AssetFile, chi.URLParam(r, "basename"))
}

// ServeThumbnail отдает миниатюру по локальному маршруту /thumbnail/{thumbnail}[/public/{token}]
func (h *FileHandler) ServeThumbnail(w http.ResponseWriter, r *http.Request) {
	h.serveAsset(w, r, service.AssetThumbnail, chi.URLParam(r, "thumbnail"))
}

func (h *FileHandler) serveAsset(w http.ResponseWriter, r *http.Request, kind service.AssetKind, key string) {
	// Подписанные ссылки объектного хранилища ведут мимо приложения
	if h.fileService.Backend() != service.BackendLocal {
		http.NotFound(w, r)
		return
	}

	token := chi.URLParam(r, "token")

	var userID int64
	if token == "" {
		var err error
		if userID, err = auth.VerifyUser(r); err != nil {
			writeError(w, h.logger, r, err)
			return
		}
	}

	record, err := h.fileService.ResolveAsset(r.Context(), kind, key, token, userID)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	name := record.StorageKey()
	if kind == service.AssetThumbnail {
		name = record.ThumbnailKey()
	}

	path := filepath.Join(h.localRoot, localObjectDir, filepath.Base(name))
	if kind == service.AssetFile {
		w.Header().Set("Content-Disposition", "attachment; filename="+record.DisplayName()+"."+record.MimeType())
	}
	http.ServeFile(w, r, path)
}
