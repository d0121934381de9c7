package handler

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"filemanager/internal/auth"
	"filemanager/internal/service"
)

type FolderHandler struct {
	folderService *service.FolderService
	fileService   *service.FileService
	logger        *zap.Logger
}

func NewFolderHandler(folderService *service.FolderService, fileService *service.FileService, logger *zap.Logger) *FolderHandler {
	return &FolderHandler{
		folderService: folderService,
		fileService:   fileService,
		logger:        logger.With(zap.String("component", "folder_handler")),
	}
}

// GetFolderContent возвращает файлы папки; ?trashed=true добавляет файлы из корзины
func (h *FolderHandler) GetFolderContent(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.VerifyUser(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	folderID, err := int64Param(r, "uniqueID")
	if err != nil {
		http.Error(w, "Invalid folder ID", http.StatusBadRequest)
		return
	}

	includeDeleted := false
	if raw := r.URL.Query().Get("trashed"); raw != "" {
		if includeDeleted, err = strconv.ParseBool(raw); err != nil {
			http.Error(w, "Invalid trashed parameter", http.StatusBadRequest)
			return
		}
	}

	content, err := h.folderService.GetFolderContent(r.Context(), folderID, userID, includeDeleted)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	writeJSON(w, http.StatusOK, content)
}

// IndexFolder строит документы поискового индекса для всех файлов папки
func (h *FolderHandler) IndexFolder(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.VerifyUser(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	folderID, err := int64Param(r, "uniqueID")
	if err != nil {
		http.Error(w, "Invalid folder ID", http.StatusBadRequest)
		return
	}

	docs, err := h.fileService.FolderSearchDocuments(r.Context(), folderID, userID)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	writeJSON(w, http.StatusOK, docs)
}
