package handler

import (
	"net/http"

	"go.uber.org/zap"

	"filemanager/internal/auth"
	"filemanager/internal/service"
)

type TrashHandler struct {
	trashService *service.TrashService
	logger       *zap.Logger
}

func NewTrashHandler(trashService *service.TrashService, logger *zap.Logger) *TrashHandler {
	return &TrashHandler{
		trashService: trashService,
		logger:       logger.With(zap.String("component", "trash_handler")),
	}
}

// GetTrashItems возвращает файлы пользователя в корзине
func (h *TrashHandler) GetTrashItems(w http.ResponseWriter, r *http.Request) {
	// Проверяем авторизацию
	userID, err := auth.VerifyUser(r)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	items, err := h.trashService.GetTrashItems(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}
