package resolver

import (
	"strconv"
	"time"

	"github.com/ttgrab/tiktok-dl-go/internal/model"
)

// DemoMetadata builds a deterministic, structurally valid payload derived
// from the canonical URL. It is returned when the provider is unconfigured
// or transiently unreachable, so the rest of the pipeline stays
// exercisable without credentials.
func DemoMetadata(canonicalURL string, now time.Time) model.VideoMetadata {
	videoID := videoIDFrom(canonicalURL)
	if videoID == "" {
		videoID = strconv.FormatInt(now.UnixMilli(), 10)
	}
	username := usernameFrom(canonicalURL)
	if username == "" {
		username = "demo_user"
	}

	return model.VideoMetadata{
		AwemeID:       "demo_v14044g50000cvl3b5vog65qhtpvjft0_" + videoID,
		ID:            videoID,
		Region:        "US",
		Title:         "Demo Video from @" + username + " - Configure API Key for Real Downloads 🎬",
		Cover:         "https://via.placeholder.com/300x400/6366f1/ffffff?text=Demo+Video",
		Duration:      15,
		Play:          "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/BigBuckBunny.mp4",
		WatermarkPlay: "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/BigBuckBunny.mp4",
		Size:          2018260,
		WatermarkSize: 1726709,
		PlayCount:     1000000,
		DiggCount:     50000,
		CommentCount:  1500,
		ShareCount:    2500,
		DownloadCount: 500,
		CollectCount:  8000,
		CreateTime:    now.Unix(),
		Music: model.MusicInfo{
			ID:     "7461846526144710657",
			Title:  "Demo Background Music",
			Author: "Demo Artist",
		},
		Author: model.AuthorInfo{
			ID:       "demo_author_123",
			UniqueID: username,
			Nickname: "Demo Creator (@" + username + ")",
			Avatar:   "https://via.placeholder.com/300x300/6366f1/ffffff?text=Demo+User",
		},
	}
}
