package http

import (
	"net/http"

	_ "github.com/DRSN-tech/catalog-editor/docs" // Импорт сгенерированных файлов
	"github.com/DRSN-tech/catalog-editor/internal/usecase"
	"github.com/DRSN-tech/catalog-editor/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(sessions usecase.EditSessionsUC, maxImageSize int64) {
	r.router.Use(middleware.RequestID)
	r.router.Use(middleware.RealIP)
	r.router.Use(middleware.Recoverer)
	r.router.Use(requestLogger(r.logger))

	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		WriteSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.router.Route("/api/v1", func(v1 chi.Router) {
		editHandler := NewEditHandler(sessions, maxImageSize, r.logger)
		registerEditRoutes(v1, editHandler)
	})
}

func registerEditRoutes(router chi.Router, h *EditHandler) {
	router.Route("/edits", func(ed chi.Router) {
		ed.Post("/", h.openEdit)
		ed.Route("/{"+sessionIDParam+"}", func(s chi.Router) {
			s.Get("/", h.getEdit)
			s.Patch("/", h.patchEdit)
			s.Delete("/", h.cancelEdit)
			s.Put("/image", h.putImage)
			s.Delete("/image", h.deleteImage)
			s.Post("/submit", h.submitEdit)
		})
	})
}
