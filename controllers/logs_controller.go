package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/toninews/logbook-back/apperrors"
	"github.com/toninews/logbook-back/response"
	"github.com/toninews/logbook-back/services"
)

// LogsController handles log resource requests
type LogsController struct {
	services *services.Services
}

// NewLogsController creates a new logs controller
func NewLogsController(srvs *services.Services) *LogsController {
	return &LogsController{services: srvs}
}

type createLogRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// GetList handles GET /logs/getList
func (c *LogsController) GetList(w http.ResponseWriter, r *http.Request) {
	result, err := c.services.Log.List(r.Context(), r.URL.Query().Get("page"), r.URL.Query().Get("search"))
	if err != nil {
		response.Fail(w, err)
		return
	}

	response.OK(w, result.Data, &response.Meta{
		CurrentPage: result.CurrentPage,
		TotalPages:  result.TotalPages,
	})
}

// Create handles POST /logs/insertTask
func (c *LogsController) Create(w http.ResponseWriter, r *http.Request) {
	var req createLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Fail(w, apperrors.New(http.StatusBadRequest, apperrors.CodeValidationError,
			"Request body must be valid JSON."))
		return
	}

	entry, err := c.services.Log.Create(r.Context(), req.Title, req.Content, req.Tags)
	if err != nil {
		response.Fail(w, err)
		return
	}

	response.Created(w, entry)
}

// Delete handles DELETE /logs/{id}
func (c *LogsController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.services.Log.SoftDelete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.Fail(w, err)
		return
	}

	response.OK(w, map[string]bool{"success": true}, nil)
}
