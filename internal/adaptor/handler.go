package adaptor

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"tour-booking/internal/usecase"
	"tour-booking/pkg/apperror"
	"tour-booking/pkg/utils"
)

type Handler struct {
	Tour     *TourHandler
	Category *CategoryHandler
	Guide    *GuideHandler
	Booking  *BookingHandler
	User     *UserHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Tour:     NewTourHandler(service.Tour, log),
		Category: NewCategoryHandler(service.Category, log),
		Guide:    NewGuideHandler(service.Guide, log),
		Booking:  NewBookingHandler(service.Booking, log),
		User:     NewUserHandler(service.User, log),
	}
}

// decodeJSON reads exactly one JSON object and rejects fields the target
// does not declare.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperror.Validation("Request body is required")
		}
		return apperror.Validation("Invalid request body: %v", err)
	}
	if dec.More() {
		return apperror.Validation("Invalid request body: multiple JSON values")
	}
	return nil
}

// handleServiceError writes the envelope for err. Internal failures are
// logged with their cause and reported without it.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) || appErr.Kind == apperror.KindInternal {
		log.Error(operation+" failed",
			zap.Error(err),
			zap.String("operation", operation),
		)
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	code := apperror.HTTPStatus(appErr)
	fields := []zap.Field{
		zap.Error(err),
		zap.String("operation", operation),
		zap.String("kind", appErr.Kind.String()),
		zap.Int("status", code),
	}
	if len(appErr.Fields) > 0 {
		fields = append(fields, zap.String("fields", utils.FormatValidationErrors(appErr.Fields)))
	}
	log.Warn(operation+" rejected", fields...)
	utils.ResponseJSON(w, code, appErr.Message, nil, appErr.Fields)
}

// listData nests items under their collection name: {"tours": [...]}.
func listData[T any](name string, items []T) map[string][]T {
	return map[string][]T{name: items}
}
