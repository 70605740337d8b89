package download

import (
	"context"
	"time"

	"github.com/ttgrab/tiktok-dl-go/internal/logger"
	"github.com/ttgrab/tiktok-dl-go/internal/model"
	"github.com/ttgrab/tiktok-dl-go/internal/port"
)

type singleDownloaderSrv struct {
	resolver port.MetadataResolver
	videos   port.VideoRepository
	rec      *recorder
}

// compile-time check: *singleDownloaderSrv must satisfy port.SingleDownloader
var _ port.SingleDownloader = (*singleDownloaderSrv)(nil)

// NewSingleDownloader constructs a SingleDownloader implementation. A nil
// now falls back to time.Now.
func NewSingleDownloader(resolver port.MetadataResolver, videos port.VideoRepository, downloads port.DownloadRepository, now func() time.Time) port.SingleDownloader {
	return &singleDownloaderSrv{
		resolver: resolver,
		videos:   videos,
		rec:      newRecorder(downloads, now),
	}
}

func (s *singleDownloaderSrv) DownloadSingle(ctx context.Context, in port.DownloadSingleInput) (port.DownloadSingleOutput, error) {
	md, err := s.resolver.Resolve(ctx, in.URL)
	if err != nil {
		return port.DownloadSingleOutput{}, err
	}

	video, err := upsertVideo(ctx, s.videos, md)
	if err != nil {
		return port.DownloadSingleOutput{}, err
	}

	// Unlike the bulk loop, a persistence failure here is fatal for the
	// whole call.
	if _, err := s.rec.record(ctx, in.UserID, video.ID, model.DownloadTypeSingle, nil); err != nil {
		return port.DownloadSingleOutput{}, err
	}

	logger.Infof(ctx, "recorded single download of video %q for user #%d", video.AwemeID, in.UserID)

	return port.DownloadSingleOutput{
		Video: video.Summary(),
		DownloadURLs: port.DownloadURLs{
			HD:        md.Play,
			Watermark: md.WatermarkPlay,
		},
	}, nil
}
