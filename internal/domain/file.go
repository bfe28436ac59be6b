package domain

import (
	"time"

	"github.com/google/uuid"
)

type File struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	CreatedBy     uuid.UUID  `json:"created_by" db:"created_by"`
	LatestVersion uuid.UUID  `json:"latest_version" db:"latest_version"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
	DeletedBy     *uuid.UUID `json:"deleted_by,omitempty" db:"deleted_by"`
}

// FileWithVersion is the file joined with its latest version, the shape
// every read and mutation returns to callers.
type FileWithVersion struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	Title           string     `json:"title" db:"file_title"`
	Description     string     `json:"description" db:"file_description"`
	FolderID        uuid.UUID  `json:"folder" db:"folder"`
	FileName        string     `json:"file_name" db:"file_name"`
	FileType        string     `json:"file_type" db:"file_type"`
	LatestVersion   uuid.UUID  `json:"latest_version" db:"latest_version"`
	VersionNumber   int        `json:"version_number" db:"version_number"`
	BlobStoragePath string     `json:"-" db:"blob_storage_path"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	ModifiedAt      time.Time  `json:"modified_at" db:"modified_at"`
	DeletedAt       *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

// NewFile is the input for creating a file together with its first version.
type NewFile struct {
	Title                    string    `json:"title"`
	Description              string    `json:"description"`
	FolderID                 uuid.UUID `json:"folder"`
	FileName                 string    `json:"file_name"`
	FileType                 string    `json:"file_type"`
	TemporaryBlobStoragePath string    `json:"temporary_blob_storage_path"`
}

// NewFileVersion is a sparse patch over the latest version: nil fields are
// carried forward from the current version unchanged.
type NewFileVersion struct {
	FileID                   uuid.UUID  `json:"file"`
	LatestVersion            uuid.UUID  `json:"latest_version"`
	Title                    *string    `json:"title,omitempty"`
	Description              *string    `json:"description,omitempty"`
	FolderID                 *uuid.UUID `json:"folder,omitempty"`
	FileName                 *string    `json:"file_name,omitempty"`
	FileType                 *string    `json:"file_type,omitempty"`
	TemporaryBlobStoragePath *string    `json:"temporary_blob_storage_path,omitempty"`
	VersionNote              *string    `json:"version_note,omitempty"`
}

func Compose(file *File, version *FileVersion) *FileWithVersion {
	return &FileWithVersion{
		ID:              file.ID,
		Title:           version.FileTitle,
		Description:     version.FileDescription,
		FolderID:        version.FolderID,
		FileName:        version.FileName,
		FileType:        version.FileType,
		LatestVersion:   version.ID,
		VersionNumber:   version.VersionNumber,
		BlobStoragePath: version.BlobStoragePath,
		CreatedAt:       file.CreatedAt,
		ModifiedAt:      version.CreatedAt,
		DeletedAt:       file.DeletedAt,
	}
}
