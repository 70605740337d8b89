package port

import (
	"context"

	"github.com/ttgrab/tiktok-dl-go/internal/model"
)

// MetadataResolver normalizes a raw TikTok URL and fetches its metadata
// from the external provider, or a demo payload when unconfigured.
type MetadataResolver interface {
	Resolve(ctx context.Context, rawURL string) (model.VideoMetadata, error)
}
