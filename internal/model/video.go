package model

import "time"

// Video is a resolved piece of remote content. AwemeID is the
// provider-assigned stable identifier and the natural key for upserts.
type Video struct {
	ID                int64     `json:"id"`
	AwemeID           string    `json:"aweme_id"`
	TikTokID          string    `json:"tiktok_id"`
	Title             string    `json:"title"`
	CoverURL          string    `json:"cover_url"`
	VideoURL          string    `json:"video_url"`
	WatermarkVideoURL string    `json:"watermark_video_url"`
	Duration          int       `json:"duration"`
	PlayCount         int64     `json:"play_count"`
	DiggCount         int64     `json:"digg_count"`
	CommentCount      int64     `json:"comment_count"`
	ShareCount        int64     `json:"share_count"`
	DownloadCount     int64     `json:"download_count"`
	CollectCount      int64     `json:"collect_count"`
	AuthorID          string    `json:"author_id"`
	AuthorName        string    `json:"author_name"`
	AuthorAvatar      string    `json:"author_avatar"`
	MusicID           string    `json:"music_id"`
	MusicTitle        string    `json:"music_title"`
	MusicAuthor       string    `json:"music_author"`
	FileSize          int64     `json:"file_size"`
	WatermarkFileSize int64     `json:"watermark_file_size"`
	Region            string    `json:"region"`
	CreateTime        int64     `json:"create_time"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// VideoFromMetadata maps a provider payload onto a new Video record,
// applying the same defaults the provider sometimes omits.
func VideoFromMetadata(md VideoMetadata) *Video {
	v := &Video{
		AwemeID:           md.AwemeID,
		TikTokID:          md.ID,
		Title:             md.Title,
		CoverURL:          md.Cover,
		VideoURL:          md.Play,
		WatermarkVideoURL: md.WatermarkPlay,
		Duration:          md.Duration,
		PlayCount:         md.PlayCount,
		DiggCount:         md.DiggCount,
		CommentCount:      md.CommentCount,
		ShareCount:        md.ShareCount,
		DownloadCount:     md.DownloadCount,
		CollectCount:      md.CollectCount,
		AuthorID:          md.Author.ID,
		AuthorName:        md.Author.Nickname,
		AuthorAvatar:      md.Author.Avatar,
		MusicID:           md.Music.ID,
		MusicTitle:        md.Music.Title,
		MusicAuthor:       md.Music.Author,
		FileSize:          md.Size,
		WatermarkFileSize: md.WatermarkSize,
		Region:            md.Region,
		CreateTime:        md.CreateTime,
	}
	if v.Title == "" {
		v.Title = "Untitled Video"
	}
	if v.AuthorID == "" {
		v.AuthorID = "unknown"
	}
	if v.AuthorName == "" {
		v.AuthorName = "Unknown Author"
	}
	if v.Region == "" {
		v.Region = "US"
	}
	return v
}

// ApplyMetadata merges a fresh provider payload into an existing record.
// Identity fields (ID, AwemeID) are left untouched.
func (v *Video) ApplyMetadata(md VideoMetadata) {
	fresh := VideoFromMetadata(md)
	fresh.ID = v.ID
	fresh.AwemeID = v.AwemeID
	fresh.CreatedAt = v.CreatedAt
	*v = *fresh
}

// VideoSummary is the subset of Video exposed in API responses.
type VideoSummary struct {
	ID                int64  `json:"id"`
	AwemeID           string `json:"aweme_id"`
	Title             string `json:"title"`
	CoverURL          string `json:"cover_url"`
	VideoURL          string `json:"video_url"`
	WatermarkVideoURL string `json:"watermark_video_url"`
	Duration          int    `json:"duration"`
	AuthorName        string `json:"author_name"`
	AuthorAvatar      string `json:"author_avatar"`
	PlayCount         int64  `json:"play_count"`
	DiggCount         int64  `json:"digg_count"`
	CommentCount      int64  `json:"comment_count"`
	ShareCount        int64  `json:"share_count"`
	DownloadCount     int64  `json:"download_count"`
}

func (v *Video) Summary() VideoSummary {
	return VideoSummary{
		ID:                v.ID,
		AwemeID:           v.AwemeID,
		Title:             v.Title,
		CoverURL:          v.CoverURL,
		VideoURL:          v.VideoURL,
		WatermarkVideoURL: v.WatermarkVideoURL,
		Duration:          v.Duration,
		AuthorName:        v.AuthorName,
		AuthorAvatar:      v.AuthorAvatar,
		PlayCount:         v.PlayCount,
		DiggCount:         v.DiggCount,
		CommentCount:      v.CommentCount,
		ShareCount:        v.ShareCount,
		DownloadCount:     v.DownloadCount,
	}
}
