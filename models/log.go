package models

import (
	"net/http"
	"strings"
	"time"

	"github.com/toninews/logbook-back/apperrors"
)

// Log represents a single log record. Title and content are immutable after
// creation; the only mutation in the record's life cycle is the soft delete.
type Log struct {
	ID        string     `json:"_id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Tags      []string   `json:"tags"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	IsDeleted bool       `json:"isDeleted"`
	DeletedAt *time.Time `json:"deletedAt"`
}

// LogPage is one page of active log records.
type LogPage struct {
	Data        []Log
	CurrentPage int
	TotalPages  int
}

// NewLog builds a log record from raw input, trimming title and content and
// defaulting tags to an empty slice. Validation happens here as well as at the
// HTTP edge, so the domain layer is safe to call directly.
func NewLog(title, content string, tags []string) (*Log, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)

	if title == "" || content == "" {
		return nil, apperrors.New(http.StatusBadRequest, apperrors.CodeValidationError,
			"Title and content are required.")
	}

	if tags == nil {
		tags = []string{}
	}

	now := time.Now().UTC()

	return &Log{
		Title:     title,
		Content:   content,
		Tags:      tags,
		CreatedAt: now,
		UpdatedAt: now,
		IsDeleted: false,
		DeletedAt: nil,
	}, nil
}
