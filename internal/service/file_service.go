package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"workspace-service/internal/domain"
	"workspace-service/internal/ports"
	"workspace-service/internal/validation"
)

const downloadURLTTL = 15 * time.Minute

// FileService orchestrates file creation, version creation and deletion:
// validate first, relocate the blob second, open the transaction last.
type FileService struct {
	fileRepo ports.FileRepository
	userRepo ports.UserRepository
	cache    ports.FileCache
	storage  ports.BlobStorage
}

func NewFileService(
	fileRepo ports.FileRepository,
	userRepo ports.UserRepository,
	cache ports.FileCache,
	storage ports.BlobStorage,
) *FileService {
	return &FileService{
		fileRepo: fileRepo,
		userRepo: userRepo,
		cache:    cache,
		storage:  storage,
	}
}

// CreateFile creates a file together with its first version. The blob copy
// runs before the transaction opens; if the transaction then fails the copied
// blob stays behind as unreferenced storage, which is an accepted trade-off.
func (s *FileService) CreateFile(ctx context.Context, authID uuid.UUID, input *domain.NewFile) (*domain.FileWithVersion, error) {
	if err := validation.ValidateNewFile(input); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByAuthID(ctx, authID)
	if err != nil {
		return nil, err
	}

	destination, err := s.storage.CopyFromURL(ctx, input.TemporaryBlobStoragePath)
	if err != nil {
		return nil, fmt.Errorf("failed to relocate blob: %w", err)
	}

	// The version id is generated before the transaction because the files
	// row has to reference it on insert.
	versionID := uuid.New()

	exec, rollback, commit, err := s.fileRepo.BeginTX(ctx)
	if err != nil {
		return nil, err
	}
	defer rollback()

	if err := s.fileRepo.DeferConstraints(ctx, exec); err != nil {
		return nil, err
	}

	file, err := s.fileRepo.CreateFile(ctx, exec, user.ID, versionID)
	if err != nil {
		return nil, err
	}

	version := &domain.FileVersion{
		ID:              versionID,
		FileID:          file.ID,
		FolderID:        input.FolderID,
		FileTitle:       input.Title,
		FileDescription: input.Description,
		FileName:        input.FileName,
		FileType:        input.FileType,
		BlobStoragePath: destination,
		VersionNumber:   1,
		CreatedBy:       user.ID,
	}
	if err := s.fileRepo.CreateFileVersion(ctx, exec, version); err != nil {
		return nil, err
	}

	if err := commit(); err != nil {
		return nil, fmt.Errorf("failed to commit file creation: %w", err)
	}

	return domain.Compose(file, version), nil
}

// CreateFileVersion appends a new immutable version and swaps the latest
// pointer. The input is a sparse patch: omitted fields carry over from the
// current latest version. A stale latest_version from the caller aborts the
// transaction with ErrVersionConflict.
func (s *FileService) CreateFileVersion(ctx context.Context, authID uuid.UUID, input *domain.NewFileVersion) (*domain.FileWithVersion, error) {
	if err := validation.ValidateNewFileVersion(input); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByAuthID(ctx, authID)
	if err != nil {
		return nil, err
	}

	current, err := s.fileRepo.GetByID(ctx, input.FileID)
	if err != nil {
		return nil, err
	}

	destination := current.BlobStoragePath
	if input.TemporaryBlobStoragePath != nil {
		destination, err = s.storage.CopyFromURL(ctx, *input.TemporaryBlobStoragePath)
		if err != nil {
			return nil, fmt.Errorf("failed to relocate blob: %w", err)
		}
	}

	version := &domain.FileVersion{
		ID:              uuid.New(),
		FileID:          current.ID,
		FolderID:        valueOr(input.FolderID, current.FolderID),
		FileTitle:       valueOr(input.Title, current.Title),
		FileDescription: valueOr(input.Description, current.Description),
		FileName:        valueOr(input.FileName, current.FileName),
		FileType:        valueOr(input.FileType, current.FileType),
		BlobStoragePath: destination,
		VersionNumber:   current.VersionNumber + 1,
		VersionNote:     valueOr(input.VersionNote, ""),
		CreatedBy:       user.ID,
	}

	exec, rollback, commit, err := s.fileRepo.BeginTX(ctx)
	if err != nil {
		return nil, err
	}
	defer rollback()

	if err := s.fileRepo.CreateFileVersion(ctx, exec, version); err != nil {
		return nil, err
	}

	file, err := s.fileRepo.UpdateLatestVersion(ctx, exec, current.ID, input.LatestVersion, version.ID)
	if err != nil {
		return nil, err
	}

	if err := commit(); err != nil {
		return nil, fmt.Errorf("failed to commit version creation: %w", err)
	}

	s.invalidate(ctx, current.ID)

	return domain.Compose(file, version), nil
}

// GetFile reads through the cache.
func (s *FileService) GetFile(ctx context.Context, fileID uuid.UUID) (*domain.FileWithVersion, error) {
	cached, err := s.cache.GetFile(ctx, fileID)
	if err != nil {
		log.Printf("Cache read failed for file %s: %v", fileID, err)
	}
	if cached != nil {
		return cached, nil
	}

	file, err := s.fileRepo.GetByID(ctx, fileID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetFile(ctx, file); err != nil {
		log.Printf("Cache write failed for file %s: %v", fileID, err)
	}

	return file, nil
}

func (s *FileService) GetFilesByFolder(ctx context.Context, folderID uuid.UUID) ([]domain.FileWithVersion, error) {
	return s.fileRepo.GetByFolder(ctx, folderID)
}

func (s *FileService) GetFileVersions(ctx context.Context, fileID uuid.UUID) ([]domain.FileVersion, error) {
	return s.fileRepo.GetVersions(ctx, fileID)
}

// GetDownloadURL returns a presigned URL for the latest version's blob.
func (s *FileService) GetDownloadURL(ctx context.Context, fileID uuid.UUID) (string, error) {
	file, err := s.GetFile(ctx, fileID)
	if err != nil {
		return "", err
	}

	return s.storage.PresignGetURL(ctx, file.BlobStoragePath, downloadURLTTL)
}

// DeleteFile soft-deletes: the version history is retained and the blob is
// not removed from storage.
func (s *FileService) DeleteFile(ctx context.Context, authID, fileID uuid.UUID) (*domain.FileWithVersion, error) {
	user, err := s.userRepo.GetByAuthID(ctx, authID)
	if err != nil {
		return nil, err
	}

	file, err := s.fileRepo.Delete(ctx, fileID, user.ID)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, fileID)

	return file, nil
}

func (s *FileService) invalidate(ctx context.Context, fileID uuid.UUID) {
	if err := s.cache.DeleteFile(ctx, fileID); err != nil {
		log.Printf("Cache invalidation failed for file %s: %v", fileID, err)
	}
}

func valueOr[T any](v *T, fallback T) T {
	if v != nil {
		return *v
	}
	return fallback
}
