package download

import (
	"context"
	"fmt"

	"github.com/ttgrab/tiktok-dl-go/internal/model"
	"github.com/ttgrab/tiktok-dl-go/internal/port"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

type historyGetterSrv struct {
	downloads port.DownloadRepository
}

// compile-time check: *historyGetterSrv must satisfy port.HistoryGetter
var _ port.HistoryGetter = (*historyGetterSrv)(nil)

func NewHistoryGetter(downloads port.DownloadRepository) port.HistoryGetter {
	return &historyGetterSrv{downloads: downloads}
}

func (s *historyGetterSrv) GetHistory(ctx context.Context, in port.HistoryInput) ([]model.HistoryEntry, error) {
	limit := in.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	offset := in.Offset
	if offset < 0 {
		offset = 0
	}

	entries, err := s.downloads.ListUserHistory(ctx, in.UserID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("fetching history of user #%d: %w", in.UserID, err)
	}
	return entries, nil
}
