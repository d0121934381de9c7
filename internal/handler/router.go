package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"filemanager/internal/auth"
)

type Handlers struct {
	File   *FileHandler
	Folder *FolderHandler
	Trash  *TrashHandler
	Share  *ShareHandler
}

// NewRouter настраивает HTTP роутер со всеми маршрутами сервиса
func NewRouter(h Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", auth.UserIDHeader},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Локальные маршруты содержимого
	r.Get("/file/{basename}", h.File.ServeFile)
	r.Get("/file/{basename}/public/{token}", h.File.ServeFile)
	r.Get("/thumbnail/{thumbnail}", h.File.ServeThumbnail)
	r.Get("/thumbnail/{thumbnail}/public/{token}", h.File.ServeThumbnail)

	r.Handle("/metrics", promhttp.Handler())

	// HTTP маршруты
	r.Route("/v1", func(r chi.Router) {
		r.Route("/files/{uniqueID}", func(r chi.Router) {
			r.Get("/", h.File.GetFile)
			r.Put("/rename", h.File.RenameFile)
			r.Put("/move", h.File.MoveFile)
			r.Delete("/", h.File.DeleteFile)
			r.Post("/restore", h.File.RestoreFile)
			r.Get("/search-document", h.File.GetSearchDocument)
			r.Get("/folder", h.File.GetParentFolder)
			r.Get("/share", h.Share.GetFileShare)
		})

		r.Get("/folders/{uniqueID}/files", h.Folder.GetFolderContent)
		r.Post("/folders/{uniqueID}/search-documents", h.Folder.IndexFolder)

		r.Get("/trash", h.Trash.GetTrashItems)

		r.Post("/shares", h.Share.CreateShare)
		r.Get("/shared/{token}/files/{uniqueID}", h.File.GetSharedFile)
	})

	return r
}
