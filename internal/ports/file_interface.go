package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"workspace-service/internal/domain"
)

// FileRepository is the SQL layer for files and their versions. Mutations take
// an explicit executor so the service controls transaction boundaries; BeginTX
// returns rollback and commit closures for that.
type FileRepository interface {
	BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error)

	// DeferConstraints postpones FK checks to commit time for the current
	// transaction, which the mutual files/file_versions reference needs.
	DeferConstraints(ctx context.Context, exec sqlx.ExtContext) error

	CreateFile(ctx context.Context, exec sqlx.ExtContext, createdBy, versionID uuid.UUID) (*domain.File, error)
	CreateFileVersion(ctx context.Context, exec sqlx.ExtContext, version *domain.FileVersion) error

	// UpdateLatestVersion swaps the latest_version pointer only if it still
	// equals currentVersionID; otherwise it fails with ErrVersionConflict.
	UpdateLatestVersion(ctx context.Context, exec sqlx.ExtContext, fileID, currentVersionID, newVersionID uuid.UUID) (*domain.File, error)

	GetByID(ctx context.Context, fileID uuid.UUID) (*domain.FileWithVersion, error)
	GetByFolder(ctx context.Context, folderID uuid.UUID) ([]domain.FileWithVersion, error)
	GetVersions(ctx context.Context, fileID uuid.UUID) ([]domain.FileVersion, error)
	Delete(ctx context.Context, fileID, deletedBy uuid.UUID) (*domain.FileWithVersion, error)
}

type UserRepository interface {
	GetByAuthID(ctx context.Context, authID uuid.UUID) (*domain.User, error)
}

// FileCache caches the file-with-version projection.
type FileCache interface {
	GetFile(ctx context.Context, fileID uuid.UUID) (*domain.FileWithVersion, error)
	SetFile(ctx context.Context, file *domain.FileWithVersion) error
	DeleteFile(ctx context.Context, fileID uuid.UUID) error
}
