package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/artur/filelinkbot/internal/database/models"
)

// FileRepository handles file record persistence
type FileRepository struct {
	db *sql.DB
}

// NewFileRepository creates a new FileRepository
func NewFileRepository(db *sql.DB) *FileRepository {
	return &FileRepository{db: db}
}

// Save upserts a file record keyed by its unique id.
func (r *FileRepository) Save(rec *models.FileRecord) error {
	if rec == nil {
		return fmt.Errorf("file record is nil")
	}

	query := `
		INSERT INTO file_storage (unique_id, file_id, file_type, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(unique_id) DO UPDATE SET
			file_id = excluded.file_id,
			file_type = excluded.file_type
	`

	if _, err := r.db.Exec(query, rec.UniqueID, rec.FileID, string(rec.FileType), time.Now()); err != nil {
		return fmt.Errorf("failed to save file %s: %w", rec.UniqueID, err)
	}
	return nil
}

// Get retrieves a file record by unique id. Returns nil without error when no
// record exists.
func (r *FileRepository) Get(uniqueID string) (*models.FileRecord, error) {
	query := `
		SELECT id, unique_id, file_id, file_type, created_at
		FROM file_storage
		WHERE unique_id = ?
	`

	rec := &models.FileRecord{}
	var fileType string

	err := r.db.QueryRow(query, uniqueID).Scan(
		&rec.ID,
		&rec.UniqueID,
		&rec.FileID,
		&fileType,
		&rec.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get file %s: %w", uniqueID, err)
	}

	rec.FileType = models.ContentKind(fileType)
	return rec, nil
}

// Exists reports whether a record with the given unique id is stored.
func (r *FileRepository) Exists(uniqueID string) (bool, error) {
	var one int
	err := r.db.QueryRow("SELECT 1 FROM file_storage WHERE unique_id = ?", uniqueID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check file %s: %w", uniqueID, err)
	}
	return true, nil
}
