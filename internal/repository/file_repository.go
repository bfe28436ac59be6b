package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"workspace-service/internal/domain"
)

const fileWithVersionColumns = `
        f.id, v.file_title, v.file_description, v.folder, v.file_name, v.file_type,
        f.latest_version, v.version_number, v.blob_storage_path,
        f.created_at, v.created_at AS modified_at, f.deleted_at`

type FileRepository struct {
	db *sqlx.DB
}

func NewFileRepository(db *sqlx.DB) *FileRepository {
	return &FileRepository{db: db}
}

func (r *FileRepository) BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, func() error { return tx.Rollback() }, func() error { return tx.Commit() }, nil
}

// DeferConstraints postpones constraint checking to commit time. The files row
// references a file_versions row that is inserted later in the same
// transaction, so the FK cannot hold per-statement.
func (r *FileRepository) DeferConstraints(ctx context.Context, exec sqlx.ExtContext) error {
	if _, err := exec.ExecContext(ctx, `SET CONSTRAINTS ALL DEFERRED`); err != nil {
		return fmt.Errorf("failed to defer constraints: %w", err)
	}
	return nil
}

func (r *FileRepository) CreateFile(ctx context.Context, exec sqlx.ExtContext, createdBy, versionID uuid.UUID) (*domain.File, error) {
	query := `
        INSERT INTO files (id, created_by, latest_version)
        VALUES ($1, $2, $3)
        RETURNING id, created_by, latest_version, created_at, deleted_at, deleted_by`

	var file domain.File
	err := sqlx.GetContext(ctx, exec, &file, query, uuid.New(), createdBy, versionID)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	return &file, nil
}

func (r *FileRepository) CreateFileVersion(ctx context.Context, exec sqlx.ExtContext, version *domain.FileVersion) error {
	query := `
        INSERT INTO file_versions (id, file, folder, file_title, file_description,
                                   file_name, file_type, blob_storage_path,
                                   version_number, version_note, created_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING created_at`

	err := exec.QueryRowxContext(
		ctx,
		query,
		version.ID,
		version.FileID,
		version.FolderID,
		version.FileTitle,
		version.FileDescription,
		version.FileName,
		version.FileType,
		version.BlobStoragePath,
		version.VersionNumber,
		version.VersionNote,
		version.CreatedBy,
	).Scan(&version.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create file version: %w", err)
	}

	return nil
}

// UpdateLatestVersion advances the latest_version pointer only if it still
// equals currentVersionID. Zero affected rows means another writer advanced
// the pointer first; the caller gets ErrVersionConflict and must retry from
// fresh state.
func (r *FileRepository) UpdateLatestVersion(ctx context.Context, exec sqlx.ExtContext, fileID, currentVersionID, newVersionID uuid.UUID) (*domain.File, error) {
	query := `
        UPDATE files
        SET latest_version = $3
        WHERE id = $1 AND latest_version = $2 AND deleted_at IS NULL
        RETURNING id, created_by, latest_version, created_at, deleted_at, deleted_by`

	var file domain.File
	err := sqlx.GetContext(ctx, exec, &file, query, fileID, currentVersionID, newVersionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrVersionConflict
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update latest version: %w", err)
	}

	return &file, nil
}

func (r *FileRepository) GetByID(ctx context.Context, fileID uuid.UUID) (*domain.FileWithVersion, error) {
	query := `
        SELECT` + fileWithVersionColumns + `
        FROM files f
        JOIN file_versions v ON v.id = f.latest_version
        WHERE f.id = $1 AND f.deleted_at IS NULL`

	var file domain.FileWithVersion
	err := r.db.GetContext(ctx, &file, query, fileID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get file: %w", err)
	}

	return &file, nil
}

func (r *FileRepository) GetByFolder(ctx context.Context, folderID uuid.UUID) ([]domain.FileWithVersion, error) {
	query := `
        SELECT` + fileWithVersionColumns + `
        FROM files f
        JOIN file_versions v ON v.id = f.latest_version
        WHERE v.folder = $1 AND f.deleted_at IS NULL
        ORDER BY v.file_name`

	var files []domain.FileWithVersion
	if err := r.db.SelectContext(ctx, &files, query, folderID); err != nil {
		return nil, fmt.Errorf("failed to get files by folder: %w", err)
	}

	return files, nil
}

func (r *FileRepository) GetVersions(ctx context.Context, fileID uuid.UUID) ([]domain.FileVersion, error) {
	query := `
        SELECT id, file, folder, file_title, file_description, file_name, file_type,
               blob_storage_path, version_number, version_note, created_by, created_at
        FROM file_versions
        WHERE file = $1
        ORDER BY version_number DESC`

	var versions []domain.FileVersion
	if err := r.db.SelectContext(ctx, &versions, query, fileID); err != nil {
		return nil, fmt.Errorf("failed to get file versions: %w", err)
	}

	return versions, nil
}

func (r *FileRepository) Delete(ctx context.Context, fileID, deletedBy uuid.UUID) (*domain.FileWithVersion, error) {
	query := `
        WITH deleted AS (
            UPDATE files
            SET deleted_at = CURRENT_TIMESTAMP, deleted_by = $2
            WHERE id = $1 AND deleted_at IS NULL
            RETURNING id, latest_version, created_at, deleted_at
        )
        SELECT d.id, v.file_title, v.file_description, v.folder, v.file_name, v.file_type,
               d.latest_version, v.version_number, v.blob_storage_path,
               d.created_at, v.created_at AS modified_at, d.deleted_at
        FROM deleted d
        JOIN file_versions v ON v.id = d.latest_version`

	var file domain.FileWithVersion
	err := r.db.GetContext(ctx, &file, query, fileID, deletedBy)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete file: %w", err)
	}

	return &file, nil
}
