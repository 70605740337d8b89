package download

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/ttgrab/tiktok-dl-go/internal/model"
	"github.com/ttgrab/tiktok-dl-go/internal/port"
)

type statsGetterSrv struct {
	downloads port.DownloadRepository
	now       func() time.Time
}

// compile-time check: *statsGetterSrv must satisfy port.StatsGetter
var _ port.StatsGetter = (*statsGetterSrv)(nil)

func NewStatsGetter(downloads port.DownloadRepository, now func() time.Time) port.StatsGetter {
	if now == nil {
		now = time.Now
	}
	return &statsGetterSrv{downloads: downloads, now: now}
}

func (s *statsGetterSrv) GetStats(ctx context.Context, userID int64) (model.DownloadStats, error) {
	stats, err := s.downloads.UserStats(ctx, userID, s.now().Add(-StatsRecentWindow))
	if err != nil {
		return model.DownloadStats{}, fmt.Errorf("computing stats of user #%d: %w", userID, err)
	}

	if stats.TotalDownloads > 0 {
		stats.SuccessRate = int(math.Round(float64(stats.SuccessfulDownloads) / float64(stats.TotalDownloads) * 100))
	}

	return stats, nil
}
