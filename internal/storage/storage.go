package storage

import (
	"context"
	"time"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

// PlanArchive stores plan snapshots in object storage so the user can share
// or download the current plan outside the app.
type PlanArchive interface {
	// StorePlan uploads a raw plan payload and returns the object key.
	StorePlan(ctx context.Context, objectKey string, raw string) error

	// GeneratePresignedDownloadURL creates a temporary URL that allows GET
	// requests for a stored plan directly from the storage provider.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	// DeleteObject removes a stored plan snapshot.
	DeleteObject(ctx context.Context, objectKey string) error
}
