package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"filemanager/internal/auth"
	"filemanager/internal/service"
	"filemanager/internal/service/s3"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError переводит ошибку сервиса в HTTP-статус
func writeError(w http.ResponseWriter, logger *zap.Logger, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		status, message = http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, service.ErrAccessDenied):
		status, message = http.StatusForbidden, "Access denied"
	case errors.Is(err, service.ErrFileNotFound):
		status, message = http.StatusNotFound, "File not found"
	case errors.Is(err, service.ErrFolderNotFound):
		status, message = http.StatusNotFound, "Folder not found"
	case errors.Is(err, service.ErrInvalidShareToken):
		status, message = http.StatusNotFound, "Share not found or expired"
	case errors.Is(err, service.ErrInvalidName):
		status, message = http.StatusBadRequest, "Invalid name"
	case errors.Is(err, service.ErrInvalidPermission):
		status, message = http.StatusBadRequest, "Invalid permission"
	case errors.Is(err, service.ErrInvalidExpiry):
		status, message = http.StatusBadRequest, "Invalid expires_in"
	case errors.Is(err, s3.ErrSigningFailed):
		status, message = http.StatusBadGateway, "Failed to sign storage url"
	}

	if status >= http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	} else {
		logger.Debug("request rejected",
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Error(err),
		)
	}

	http.Error(w, message, status)
}

func int64Param(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}
