package model

// MusicInfo is the sound attached to a video, as reported by the provider.
type MusicInfo struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

// AuthorInfo is the creator of a video, as reported by the provider.
type AuthorInfo struct {
	ID       string `json:"id"`
	UniqueID string `json:"unique_id"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
}

// VideoMetadata is the payload returned by the metadata provider for one
// resolved video. Field names follow the provider's JSON response.
type VideoMetadata struct {
	AwemeID       string     `json:"aweme_id"`
	ID            string     `json:"id"`
	Region        string     `json:"region"`
	Title         string     `json:"title"`
	Cover         string     `json:"cover"`
	Duration      int        `json:"duration"`
	Play          string     `json:"play"`
	WatermarkPlay string     `json:"wmplay"`
	Size          int64      `json:"size"`
	WatermarkSize int64      `json:"wm_size"`
	PlayCount     int64      `json:"play_count"`
	DiggCount     int64      `json:"digg_count"`
	CommentCount  int64      `json:"comment_count"`
	ShareCount    int64      `json:"share_count"`
	DownloadCount int64      `json:"download_count"`
	CollectCount  int64      `json:"collect_count"`
	CreateTime    int64      `json:"create_time"`
	Music         MusicInfo  `json:"music_info"`
	Author        AuthorInfo `json:"author"`
}
