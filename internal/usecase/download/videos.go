package download

import (
	"context"
	"fmt"

	"github.com/ttgrab/tiktok-dl-go/internal/model"
	"github.com/ttgrab/tiktok-dl-go/internal/port"
)

// upsertVideo persists resolved metadata keyed by its aweme_id: an
// existing record is merged and updated in place, otherwise a new one is
// inserted. Idempotent under repeated calls with the same aweme_id.
func upsertVideo(ctx context.Context, videos port.VideoRepository, md model.VideoMetadata) (*model.Video, error) {
	existing, err := videos.GetByAwemeID(ctx, md.AwemeID)
	if err != nil {
		return nil, fmt.Errorf("looking up video %q: %w", md.AwemeID, err)
	}

	if existing != nil {
		existing.ApplyMetadata(md)
		if err := videos.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("updating video %q: %w", md.AwemeID, err)
		}
		return existing, nil
	}

	video := model.VideoFromMetadata(md)
	if err := videos.Create(ctx, video); err != nil {
		return nil, fmt.Errorf("creating video %q: %w", md.AwemeID, err)
	}
	return video, nil
}
