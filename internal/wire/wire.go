package wire

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"tour-booking/internal/adaptor"
	"tour-booking/internal/data/repository"
	"tour-booking/internal/usecase"
	"tour-booking/pkg/middleware"
	"tour-booking/pkg/utils"
)

const APIPrefix = "/api/v1"

// App holds the wired HTTP surface.
type App struct {
	Router *chi.Mux
}

// Wiring builds services and handlers over repo and mounts every route.
// pub may be nil to disable domain events.
func Wiring(repo *repository.Repository, pub usecase.EventPublisher, logger *zap.Logger) *App {
	service := usecase.NewService(repo, pub, logger)
	handler := adaptor.NewHandler(service, logger)

	return &App{
		Router: setupRouter(handler, logger),
	}
}

func setupRouter(handler *adaptor.Handler, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseNotFound(w, fmt.Sprintf("Can't find %s on this server!", r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseMethodNotAllowed(w, fmt.Sprintf("Method %s is not allowed on %s", r.Method, r.URL.Path))
	})

	r.Route(APIPrefix, func(r chi.Router) {
		wireTour(r, handler.Tour)
		wireCategory(r, handler.Category)
		wireGuide(r, handler.Guide)
		wireBooking(r, handler.Booking)
		wireUser(r, handler.User)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
