package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"filemanager/internal/auth"
	"filemanager/internal/domain"
	"filemanager/internal/service"
)

type ShareHandler struct {
	shareService *service.ShareService
	logger       *zap.Logger
}

type createShareRequest struct {
	ItemID     int64               `json:"item_id"`
	Type       domain.ResourceType `json:"type"`
	Permission domain.AccessType   `json:"permission"`
	ExpiresIn  *int64              `json:"expires_in,omitempty"` // в секундах
}

func NewShareHandler(shareService *service.ShareService, logger *zap.Logger) *ShareHandler {
	return &ShareHandler{
		shareService: shareService,
		logger:       logger.With(zap.String("component", "share_handler")),
	}
}

// CreateShare создает публичную ссылку на файл или папку
func (h *ShareHandler) CreateShare(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.VerifyUser(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	var req createShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Type != domain.ResourceTypeFile && req.Type != domain.ResourceTypeFolder {
		http.Error(w, "Invalid resource type", http.StatusBadRequest)
		return
	}

	var expiresIn *time.Duration
	if req.ExpiresIn != nil {
		if *req.ExpiresIn <= 0 {
			http.Error(w, "Invalid expires_in", http.StatusBadRequest)
			return
		}
		duration := time.Duration(*req.ExpiresIn) * time.Second
		expiresIn = &duration
	}

	share, err := h.shareService.CreateShare(r.Context(), req.ItemID, req.Type, req.Permission, expiresIn, userID)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, share)
}

// GetFileShare возвращает публичную ссылку файла, если она есть
func (h *ShareHandler) GetFileShare(w http.ResponseWriter, r *http.Request) {
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

	share, err := h.shareService.GetShare(r.Context(), uniqueID, domain.ResourceTypeFile, userID)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	if share == nil {
		http.Error(w, "Share not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, share)
}
