package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workspace-service/internal/domain"
)

func newMockRepo(t *testing.T) (*FileRepository, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	return NewFileRepository(sqlx.NewDb(mockDB, "sqlmock")), mock
}

func fileColumns() []string {
	return []string{"id", "created_by", "latest_version", "created_at", "deleted_at", "deleted_by"}
}

func fileWithVersionColumnNames() []string {
	return []string{
		"id", "file_title", "file_description", "folder", "file_name", "file_type",
		"latest_version", "version_number", "blob_storage_path",
		"created_at", "modified_at", "deleted_at",
	}
}

func TestCreateFileInsertsWithPregeneratedVersionID(t *testing.T) {
	repo, mock := newMockRepo(t)
	ctx := context.Background()

	createdBy := uuid.New()
	versionID := uuid.New()
	fileID := uuid.New()
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectExec("SET CONSTRAINTS ALL DEFERRED").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("INSERT INTO files").
		WithArgs(sqlmock.AnyArg(), createdBy, versionID).
		WillReturnRows(sqlmock.NewRows(fileColumns()).
			AddRow(fileID.String(), createdBy.String(), versionID.String(), now, nil, nil))
	mock.ExpectQuery("INSERT INTO file_versions").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))
	mock.ExpectCommit()

	exec, rollback, commit, err := repo.BeginTX(ctx)
	require.NoError(t, err)
	defer rollback()

	require.NoError(t, repo.DeferConstraints(ctx, exec))

	file, err := repo.CreateFile(ctx, exec, createdBy, versionID)
	require.NoError(t, err)
	assert.Equal(t, fileID, file.ID)
	assert.Equal(t, versionID, file.LatestVersion)

	version := &domain.FileVersion{
		ID:            versionID,
		FileID:        file.ID,
		FolderID:      uuid.New(),
		FileTitle:     "title",
		FileName:      "filename.doc",
		FileType:      "application/msword",
		VersionNumber: 1,
		CreatedBy:     createdBy,
	}
	require.NoError(t, repo.CreateFileVersion(ctx, exec, version))
	assert.Equal(t, now, version.CreatedAt)

	require.NoError(t, commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateLatestVersionSwapsPointer(t *testing.T) {
	repo, mock := newMockRepo(t)
	ctx := context.Background()

	fileID := uuid.New()
	currentVersion := uuid.New()
	newVersion := uuid.New()
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE files").
		WithArgs(fileID, currentVersion, newVersion).
		WillReturnRows(sqlmock.NewRows(fileColumns()).
			AddRow(fileID.String(), uuid.New().String(), newVersion.String(), now, nil, nil))
	mock.ExpectCommit()

	exec, rollback, commit, err := repo.BeginTX(ctx)
	require.NoError(t, err)
	defer rollback()

	file, err := repo.UpdateLatestVersion(ctx, exec, fileID, currentVersion, newVersion)
	require.NoError(t, err)
	assert.Equal(t, newVersion, file.LatestVersion)

	require.NoError(t, commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateLatestVersionStalePointerConflicts(t *testing.T) {
	repo, mock := newMockRepo(t)
	ctx := context.Background()

	fileID := uuid.New()
	staleVersion := uuid.New()
	newVersion := uuid.New()

	mock.ExpectBegin()
	// Another writer already advanced the pointer: the conditional update
	// matches no rows.
	mock.ExpectQuery("UPDATE files").
		WithArgs(fileID, staleVersion, newVersion).
		WillReturnRows(sqlmock.NewRows(fileColumns()))
	mock.ExpectRollback()

	exec, rollback, _, err := repo.BeginTX(ctx)
	require.NoError(t, err)

	_, err = repo.UpdateLatestVersion(ctx, exec, fileID, staleVersion, newVersion)
	assert.ErrorIs(t, err, domain.ErrVersionConflict)

	require.NoError(t, rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	fileID := uuid.New()
	mock.ExpectQuery("SELECT").
		WithArgs(fileID).
		WillReturnRows(sqlmock.NewRows(fileWithVersionColumnNames()))

	_, err := repo.GetByID(context.Background(), fileID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDReturnsProjection(t *testing.T) {
	repo, mock := newMockRepo(t)

	fileID := uuid.New()
	folderID := uuid.New()
	versionID := uuid.New()
	created := time.Now().Add(-time.Hour)
	modified := time.Now()

	mock.ExpectQuery("SELECT").
		WithArgs(fileID).
		WillReturnRows(sqlmock.NewRows(fileWithVersionColumnNames()).
			AddRow(fileID.String(), "title", "description", folderID.String(), "filename.doc", "application/msword",
				versionID.String(), 3, "permanent/blob", created, modified, nil))

	file, err := repo.GetByID(context.Background(), fileID)
	require.NoError(t, err)
	assert.Equal(t, fileID, file.ID)
	assert.Equal(t, versionID, file.LatestVersion)
	assert.Equal(t, 3, file.VersionNumber)
	assert.Equal(t, "permanent/blob", file.BlobStoragePath)
	assert.Equal(t, modified, file.ModifiedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAlreadyDeletedIsNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	fileID := uuid.New()
	userID := uuid.New()

	mock.ExpectQuery("WITH deleted AS").
		WithArgs(fileID, userID).
		WillReturnRows(sqlmock.NewRows(fileWithVersionColumnNames()))

	_, err := repo.Delete(context.Background(), fileID, userID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteSetsDeletionTimestamp(t *testing.T) {
	repo, mock := newMockRepo(t)

	fileID := uuid.New()
	userID := uuid.New()
	deleted := time.Now()

	mock.ExpectQuery("WITH deleted AS").
		WithArgs(fileID, userID).
		WillReturnRows(sqlmock.NewRows(fileWithVersionColumnNames()).
			AddRow(fileID.String(), "title", "description", uuid.New().String(), "filename.doc", "application/msword",
				uuid.New().String(), 1, "permanent/blob", time.Now().Add(-time.Hour), time.Now(), deleted))

	file, err := repo.Delete(context.Background(), fileID, userID)
	require.NoError(t, err)
	require.NotNil(t, file.DeletedAt)
	assert.Equal(t, deleted, *file.DeletedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}
