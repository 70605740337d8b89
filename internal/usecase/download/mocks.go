package download

import (
	"context"
	"errors"
	"time"

	"github.com/ttgrab/tiktok-dl-go/internal/model"
	"github.com/ttgrab/tiktok-dl-go/internal/port"
)

type mockResolver struct {
	md      model.VideoMetadata
	err     error
	failFor map[string]error

	calls []string
}

func (m *mockResolver) Resolve(ctx context.Context, rawURL string) (model.VideoMetadata, error) {
	m.calls = append(m.calls, rawURL)
	if err, ok := m.failFor[rawURL]; ok {
		return model.VideoMetadata{}, err
	}
	if m.err != nil {
		return model.VideoMetadata{}, m.err
	}
	md := m.md
	if md.AwemeID == "" {
		md.AwemeID = "v" + rawURL
	}
	return md, nil
}

type mockVideoRepo struct {
	existing *model.Video

	getErr    error
	createErr error
	updateErr error

	nextID  int64
	created []*model.Video
	updated []*model.Video
}

func (m *mockVideoRepo) GetByAwemeID(ctx context.Context, awemeID string) (*model.Video, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.existing != nil && m.existing.AwemeID == awemeID {
		cp := *m.existing
		return &cp, nil
	}
	return nil, nil
}
func (m *mockVideoRepo) Create(ctx context.Context, video *model.Video) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	video.ID = m.nextID
	m.created = append(m.created, video)
	return nil
}
func (m *mockVideoRepo) Update(ctx context.Context, video *model.Video) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updated = append(m.updated, video)
	return nil
}

type mockDownloadRepo struct {
	bulkRecord   *model.DownloadRecord
	recentRecord *model.DownloadRecord
	entries      []model.HistoryEntry
	stats        model.DownloadStats

	findBulkErr   error
	findRecentErr error
	createErr     error
	listErr       error
	statsErr      error

	nextID      int64
	created     []*model.DownloadRecord
	recentAfter time.Time
	listLimit   int
	listOffset  int
	statsSince  time.Time
}

func (m *mockDownloadRepo) Create(ctx context.Context, rec *model.DownloadRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	rec.ID = m.nextID
	m.created = append(m.created, rec)
	return nil
}
func (m *mockDownloadRepo) FindBulkRecord(ctx context.Context, userID, videoID int64, batchID string) (*model.DownloadRecord, error) {
	if m.findBulkErr != nil {
		return nil, m.findBulkErr
	}
	return m.bulkRecord, nil
}
func (m *mockDownloadRepo) FindRecentSingle(ctx context.Context, userID, videoID int64, after time.Time) (*model.DownloadRecord, error) {
	m.recentAfter = after
	if m.findRecentErr != nil {
		return nil, m.findRecentErr
	}
	return m.recentRecord, nil
}
func (m *mockDownloadRepo) ListBatchResults(ctx context.Context, batchID string) ([]model.HistoryEntry, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.entries, nil
}
func (m *mockDownloadRepo) ListUserHistory(ctx context.Context, userID int64, limit, offset int) ([]model.HistoryEntry, error) {
	m.listLimit = limit
	m.listOffset = offset
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.entries, nil
}
func (m *mockDownloadRepo) UserStats(ctx context.Context, userID int64, recentSince time.Time) (model.DownloadStats, error) {
	m.statsSince = recentSince
	if m.statsErr != nil {
		return model.DownloadStats{}, m.statsErr
	}
	return m.stats, nil
}

// mockSessionRepo applies updates to its in-memory session so tests can
// assert on the state left behind, and keeps every update it received in
// order.
type mockSessionRepo struct {
	session  *model.BulkSession
	staleIDs []string

	createErr error
	getErr    error
	updateErr error
	listErr   error
	// failUpdateAt makes the Nth call to Update fail (1-based). Zero
	// disables it.
	failUpdateAt int

	created     *model.BulkSession
	updates     []port.SessionUpdate
	updatedIDs  []string
	updateCalls int
}

func (m *mockSessionRepo) Create(ctx context.Context, sess *model.BulkSession) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = sess
	m.session = sess
	return nil
}
func (m *mockSessionRepo) GetByBatchID(ctx context.Context, batchID string) (*model.BulkSession, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.session == nil || m.session.BatchID != batchID {
		return nil, nil
	}
	cp := *m.session
	return &cp, nil
}
func (m *mockSessionRepo) Update(ctx context.Context, batchID string, upd port.SessionUpdate) error {
	m.updateCalls++
	if m.updateErr != nil {
		return m.updateErr
	}
	if m.failUpdateAt > 0 && m.updateCalls == m.failUpdateAt {
		return errors.New("update failed")
	}
	m.updates = append(m.updates, upd)
	m.updatedIDs = append(m.updatedIDs, batchID)
	if m.session != nil && m.session.BatchID == batchID {
		m.apply(upd)
	}
	return nil
}
func (m *mockSessionRepo) apply(upd port.SessionUpdate) {
	if upd.Status != nil {
		m.session.Status = *upd.Status
	}
	if upd.TotalVideos != nil {
		m.session.TotalVideos = *upd.TotalVideos
	}
	if upd.ProcessedVideos != nil {
		m.session.ProcessedVideos = *upd.ProcessedVideos
	}
	if upd.SuccessfulDownloads != nil {
		m.session.SuccessfulDownloads = *upd.SuccessfulDownloads
	}
	if upd.FailedDownloads != nil {
		m.session.FailedDownloads = *upd.FailedDownloads
	}
	if upd.CompletedAt != nil {
		m.session.CompletedAt = upd.CompletedAt
	}
}
func (m *mockSessionRepo) ListStaleProcessing(ctx context.Context, before time.Time) ([]string, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.staleIDs, nil
}

type mockDispatcher struct {
	err error

	enqueued *port.ProcessBulkInput
}

func (m *mockDispatcher) EnqueueProcessBulk(ctx context.Context, in port.ProcessBulkInput) error {
	if m.err != nil {
		return m.err
	}
	m.enqueued = &in
	return nil
}

type mockCache struct {
	data []byte

	getErr error
	setErr error

	getCalled bool
	setCalled bool
	setData   []byte
	setTTL    time.Duration
}

func (m *mockCache) GetBulkResults(ctx context.Context, batchID string) ([]byte, error) {
	m.getCalled = true
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.data, nil
}
func (m *mockCache) SetBulkResults(ctx context.Context, batchID string, data []byte, ttl time.Duration) error {
	m.setCalled = true
	m.setData = data
	m.setTTL = ttl
	return m.setErr
}
