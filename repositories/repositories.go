package repositories

import (
	"database/sql"
)

// Repositories struct holds all repository interfaces
type Repositories struct {
	Log  LogRepository
	User UserRepository
}

// NewRepositories creates and initializes all repositories
func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Log:  NewLogRepository(db),
		User: NewUserRepository(db),
	}
}
