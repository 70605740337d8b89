package port

import (
	"context"

	"github.com/ttgrab/tiktok-dl-go/internal/model"
)

// VideoRepository defines persistence operations for videos.
type VideoRepository interface {
	// Create inserts a new video and fills in its generated ID.
	Create(ctx context.Context, video *model.Video) error
	Update(ctx context.Context, video *model.Video) error
	// GetByAwemeID returns (nil, nil) when no video matches.
	GetByAwemeID(ctx context.Context, awemeID string) (*model.Video, error)
}
