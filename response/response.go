package response

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/toninews/logbook-back/apperrors"
)

// Meta carries pagination info alongside list payloads.
type Meta struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
}

type successEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Meta    *Meta       `json:"meta,omitempty"`
}

type errorEnvelope struct {
	Success bool      `json:"success"`
	Error   errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// OK writes a 200 success envelope.
func OK(w http.ResponseWriter, data interface{}, meta *Meta) {
	writeJSON(w, http.StatusOK, successEnvelope{Success: true, Data: data, Meta: meta})
}

// Created writes a 201 success envelope.
func Created(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusCreated, successEnvelope{Success: true, Data: data})
}

// Fail resolves err to its typed status/code and writes the error envelope.
// Unclassified errors are logged server-side with full context and surface as
// 500/INTERNAL_ERROR.
func Fail(w http.ResponseWriter, err error) {
	appErr := apperrors.From(err)
	if appErr.Code == apperrors.CodeInternalError {
		log.Printf("[ERROR] unhandled failure: %v", err)
	}
	writeJSON(w, appErr.Status, errorEnvelope{
		Success: false,
		Error:   errorBody{Code: appErr.Code, Message: appErr.Message},
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[ERROR] failed to write response: %v", err)
	}
}
