package domain

import "errors"

var (
	// ErrNotFound covers files, users, folders and teams that do not resolve.
	ErrNotFound = errors.New("not found")

	// ErrVersionConflict means the caller's latest_version was stale when the
	// pointer swap ran. The caller should re-fetch the file and retry.
	ErrVersionConflict = errors.New("file has been updated by another user")
)
