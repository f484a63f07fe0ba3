package utils

import (
	"encoding/json"
	"net/http"
)

const (
	StatusSuccess = "success"
	StatusFail    = "fail"
	StatusError   = "error"
)

type Response struct {
	Status  string            `json:"status"`
	Message string            `json:"message,omitempty"`
	Data    any               `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// ListResponse is the envelope for paginated list endpoints.
type ListResponse struct {
	Status  string `json:"status"`
	Results int    `json:"results"`
	Total   int64  `json:"total"`
	Page    int    `json:"page"`
	Limit   int    `json:"limit"`
	Pages   int    `json:"pages"`
	Data    any    `json:"data"`
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}

// ResponseJSON writes the envelope with a status derived from the code:
// 2xx success, 4xx fail, 5xx error.
func ResponseJSON(w http.ResponseWriter, code int, message string, data any, errors map[string]string) {
	status := StatusSuccess
	switch {
	case code >= 500:
		status = StatusError
	case code >= 400:
		status = StatusFail
	}

	writeJSON(w, code, Response{
		Status:  status,
		Message: message,
		Data:    data,
		Errors:  errors,
	})
}

// ------------- Success responses -------------

// returns 200 OK
func ResponseSuccess(w http.ResponseWriter, data any) {
	ResponseJSON(w, http.StatusOK, "", data, nil)
}

// returns 201 Created
func ResponseCreated(w http.ResponseWriter, data any) {
	ResponseJSON(w, http.StatusCreated, "", data, nil)
}

// returns 204 with an empty body
func ResponseNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func ResponseList(w http.ResponseWriter, data any, results int, meta PageMeta) {
	writeJSON(w, http.StatusOK, ListResponse{
		Status:  StatusSuccess,
		Results: results,
		Total:   meta.Total,
		Page:    meta.Page,
		Limit:   meta.Limit,
		Pages:   meta.Pages,
		Data:    data,
	})
}

// ------------- Error responses -------------

// returns 404 Not Found
func ResponseNotFound(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusNotFound, message, nil, nil)
}

// returns 405 Method Not Allowed
func ResponseMethodNotAllowed(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusMethodNotAllowed, message, nil, nil)
}

// returns 500 Internal Server Error
func ResponseInternalError(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusInternalServerError, message, nil, nil)
}
