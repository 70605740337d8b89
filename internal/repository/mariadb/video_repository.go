package mariadb

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/ttgrab/tiktok-dl-go/internal/model"
	"github.com/ttgrab/tiktok-dl-go/internal/port"
)

type VideoRepository struct {
	db *sql.DB
}

// compile-time check: *VideoRepository must satisfy port.VideoRepository
var _ port.VideoRepository = (*VideoRepository)(nil)

func NewVideoRepository(db *sql.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

func (r *VideoRepository) Create(ctx context.Context, video *model.Video) error {
	log.Printf("creating database record for video %q...", video.AwemeID)

	const query = `
      INSERT INTO videos
        (aweme_id, tiktok_id, title, cover_url, video_url, watermark_video_url,
         duration, play_count, digg_count, comment_count, share_count,
         download_count, collect_count, author_id, author_name, author_avatar,
         music_id, music_title, music_author, file_size, watermark_file_size,
         region, create_time)
      VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	res, err := r.db.ExecContext(ctx, query,
		video.AwemeID, video.TikTokID, video.Title,
		video.CoverURL, video.VideoURL, video.WatermarkVideoURL,
		video.Duration, video.PlayCount, video.DiggCount,
		video.CommentCount, video.ShareCount, video.DownloadCount,
		video.CollectCount, video.AuthorID, video.AuthorName,
		video.AuthorAvatar, video.MusicID, video.MusicTitle,
		video.MusicAuthor, video.FileSize, video.WatermarkFileSize,
		video.Region, video.CreateTime,
	)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	video.ID = id

	return nil
}

func (r *VideoRepository) Update(ctx context.Context, video *model.Video) error {
	log.Printf("updating database record for video #%d (%s)...", video.ID, video.AwemeID)

	const query = `
      UPDATE videos
      SET
        title               = ?,
        cover_url           = ?,
        video_url           = ?,
        watermark_video_url = ?,
        duration            = ?,
        play_count          = ?,
        digg_count          = ?,
        comment_count       = ?,
        share_count         = ?,
        download_count      = ?,
        collect_count       = ?,
        author_name         = ?,
        author_avatar       = ?,
        music_title         = ?,
        music_author        = ?,
        file_size           = ?,
        watermark_file_size = ?
      WHERE id = ?
    `
	_, err := r.db.ExecContext(ctx, query,
		video.Title,
		video.CoverURL,
		video.VideoURL,
		video.WatermarkVideoURL,
		video.Duration,
		video.PlayCount,
		video.DiggCount,
		video.CommentCount,
		video.ShareCount,
		video.DownloadCount,
		video.CollectCount,
		video.AuthorName,
		video.AuthorAvatar,
		video.MusicTitle,
		video.MusicAuthor,
		video.FileSize,
		video.WatermarkFileSize,
		video.ID, // WHERE clause
	)
	if err != nil {
		return err
	}

	return nil
}

func (r *VideoRepository) GetByAwemeID(ctx context.Context, awemeID string) (*model.Video, error) {
	log.Printf("fetching video %q from the database...", awemeID)

	const query = `
      SELECT id, aweme_id, tiktok_id, title, cover_url, video_url, watermark_video_url,
             duration, play_count, digg_count, comment_count, share_count,
             download_count, collect_count, author_id, author_name, author_avatar,
             music_id, music_title, music_author, file_size, watermark_file_size,
             region, create_time, created_at, updated_at
      FROM videos
      WHERE aweme_id = ?
    `
	row := r.db.QueryRowContext(ctx, query, awemeID)
	var video model.Video
	if err := row.Scan(
		&video.ID, &video.AwemeID, &video.TikTokID, &video.Title,
		&video.CoverURL, &video.VideoURL, &video.WatermarkVideoURL,
		&video.Duration, &video.PlayCount, &video.DiggCount,
		&video.CommentCount, &video.ShareCount, &video.DownloadCount,
		&video.CollectCount, &video.AuthorID, &video.AuthorName,
		&video.AuthorAvatar, &video.MusicID, &video.MusicTitle,
		&video.MusicAuthor, &video.FileSize, &video.WatermarkFileSize,
		&video.Region, &video.CreateTime, &video.CreatedAt, &video.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &video, nil
}
