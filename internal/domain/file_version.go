package domain

import (
	"time"

	"github.com/google/uuid"
)

// FileVersion is immutable once created. Corrections become a new version.
type FileVersion struct {
	ID              uuid.UUID `json:"id" db:"id"`
	FileID          uuid.UUID `json:"file" db:"file"`
	FolderID        uuid.UUID `json:"folder" db:"folder"`
	FileTitle       string    `json:"file_title" db:"file_title"`
	FileDescription string    `json:"file_description" db:"file_description"`
	FileName        string    `json:"file_name" db:"file_name"`
	FileType        string    `json:"file_type" db:"file_type"`
	BlobStoragePath string    `json:"blob_storage_path" db:"blob_storage_path"`
	VersionNumber   int       `json:"version_number" db:"version_number"`
	VersionNote     string    `json:"version_note" db:"version_note"`
	CreatedBy       uuid.UUID `json:"created_by" db:"created_by"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}
