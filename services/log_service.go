package services

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/toninews/logbook-back/apperrors"
	"github.com/toninews/logbook-back/models"
	"github.com/toninews/logbook-back/repositories"
)

// PageSize is the fixed number of records per list page
const PageSize = 5

// LogService interface defines log record business logic
type LogService interface {
	List(ctx context.Context, page, search string) (*models.LogPage, error)
	Create(ctx context.Context, title, content string, tags []string) (*models.Log, error)
	SoftDelete(ctx context.Context, id string) error
}

// logService implements LogService interface
type logService struct {
	logRepo repositories.LogRepository
}

// NewLogService creates a new log service
func NewLogService(logRepo repositories.LogRepository) (LogService, error) {
	if logRepo == nil {
		return nil, apperrors.New(http.StatusInternalServerError, apperrors.CodeDependencyContractError,
			"LogService requires a log repository.")
	}
	return &logService{logRepo: logRepo}, nil
}

// List retrieves one page of active records. The page argument is normalized
// permissively: anything that does not parse as an integer >= 1 becomes page 1.
// The HTTP validator already rejected malformed input at the edge; this layer
// stays callable from convenience call sites.
func (s *logService) List(ctx context.Context, page, search string) (*models.LogPage, error) {
	parsedPage, err := strconv.Atoi(strings.TrimSpace(page))
	if err != nil || parsedPage < 1 {
		parsedPage = 1
	}

	result, err := s.logRepo.FindPaginated(ctx, parsedPage, PageSize, search)
	if err != nil {
		return nil, fmt.Errorf("failed to list logs: %w", err)
	}

	return result, nil
}

// Create builds a log record and persists it. Title/content validation runs
// here independently of the HTTP validator.
func (s *logService) Create(ctx context.Context, title, content string, tags []string) (*models.Log, error) {
	entry, err := models.NewLog(title, content, tags)
	if err != nil {
		return nil, err
	}

	if err := s.logRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create log: %w", err)
	}

	return entry, nil
}

// SoftDelete marks a record as deleted. Records that are absent or already
// deleted report LOG_NOT_FOUND.
func (s *logService) SoftDelete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperrors.New(http.StatusBadRequest, apperrors.CodeInvalidID, "Invalid id.")
	}

	wasDeleted, err := s.logRepo.SoftDeleteByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to soft delete log: %w", err)
	}

	if !wasDeleted {
		return apperrors.New(http.StatusNotFound, apperrors.CodeLogNotFound, "Log not found.")
	}

	return nil
}
