package repositories

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/toninews/logbook-back/models"
)

// LogRepository interface defines log record database operations
type LogRepository interface {
	FindPaginated(ctx context.Context, page, limit int, searchTerm string) (*models.LogPage, error)
	Create(ctx context.Context, entry *models.Log) error
	SoftDeleteByID(ctx context.Context, id string) (bool, error)
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

// logRepository implements LogRepository on SQLite
type logRepository struct {
	db *sql.DB
}

// NewLogRepository creates a new log repository
func NewLogRepository(db *sql.DB) LogRepository {
	return &logRepository{db: db}
}

const logColumns = "id, title, content, tags, created_at, updated_at, is_deleted, deleted_at"

// FindPaginated retrieves one page of active records, newest first. A
// non-empty search term matches title, content and tags case-insensitively.
func (r *logRepository) FindPaginated(ctx context.Context, page, limit int, searchTerm string) (*models.LogPage, error) {
	filter := "is_deleted = 0"
	args := []interface{}{}

	if searchTerm != "" {
		pattern := "%" + strings.ToLower(searchTerm) + "%"
		filter += " AND (lower(title) LIKE ? OR lower(content) LIKE ? OR lower(tags) LIKE ?)"
		args = append(args, pattern, pattern, pattern)
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM logs WHERE " + filter
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count logs: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM logs
		WHERE %s
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`, logColumns, filter)

	offset := (page - 1) * limit
	rows, err := r.db.QueryContext(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query logs: %w", err)
	}
	defer rows.Close()

	logs := []models.Log{}
	for rows.Next() {
		entry, err := scanLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan log: %w", err)
		}
		logs = append(logs, *entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating logs: %w", err)
	}

	return &models.LogPage{
		Data:        logs,
		CurrentPage: page,
		TotalPages:  (total + limit - 1) / limit,
	}, nil
}

// Create inserts a new log record and assigns its identifier
func (r *logRepository) Create(ctx context.Context, entry *models.Log) error {
	id, err := newRecordID()
	if err != nil {
		return fmt.Errorf("failed to generate log id: %w", err)
	}

	tags, err := json.Marshal(entry.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}

	query := `
		INSERT INTO logs (id, title, content, tags, created_at, updated_at, is_deleted, deleted_at)
		VALUES (?, ?, ?, ?, ?, ?, 0, NULL)
	`

	_, err = r.db.ExecContext(ctx, query,
		id,
		entry.Title,
		entry.Content,
		string(tags),
		entry.CreatedAt,
		entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create log: %w", err)
	}

	entry.ID = id
	return nil
}

// SoftDeleteByID transitions a record from active to deleted in a single
// conditional UPDATE, returning whether a transition actually happened.
// Absent and already-deleted records both report false.
func (r *logRepository) SoftDeleteByID(ctx context.Context, id string) (bool, error) {
	query := `
		UPDATE logs
		SET is_deleted = 1, deleted_at = ?, updated_at = ?
		WHERE id = ? AND is_deleted = 0
	`

	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx, query, now, now, id)
	if err != nil {
		return false, fmt.Errorf("failed to soft delete log: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// DeleteExpired physically removes soft-deleted records whose deletion
// instant is at or before the cutoff, returning the number removed
func (r *logRepository) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM logs WHERE is_deleted = 1 AND deleted_at <= ?`

	result, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired logs: %w", err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return removed, nil
}

// scanLog reads one log row, decoding the tags column
func scanLog(rows *sql.Rows) (*models.Log, error) {
	var entry models.Log
	var tags string
	var deletedAt sql.NullTime

	err := rows.Scan(
		&entry.ID,
		&entry.Title,
		&entry.Content,
		&tags,
		&entry.CreatedAt,
		&entry.UpdatedAt,
		&entry.IsDeleted,
		&deletedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(tags), &entry.Tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags: %w", err)
	}
	if deletedAt.Valid {
		entry.DeletedAt = &deletedAt.Time
	}

	return &entry, nil
}

// newRecordID generates a 24-character hex identifier
func newRecordID() (string, error) {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
