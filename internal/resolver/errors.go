package resolver

import "errors"

var (
	// ErrInvalidURL means the input matched none of the recognized
	// TikTok URL shapes. It is rejected before any provider call.
	ErrInvalidURL = errors.New("resolver: invalid tiktok url format")

	// ErrTimeout means the provider request exceeded its deadline. Unlike
	// other transport failures it is surfaced instead of falling back to
	// demo data.
	ErrTimeout = errors.New("resolver: provider request timed out")

	// Provider rejections (4xx). Fatal for the item being resolved.
	ErrBadRequest  = errors.New("resolver: invalid url or parameters")
	ErrForbidden   = errors.New("resolver: video is private or restricted")
	ErrNotFound    = errors.New("resolver: video not found or has been deleted")
	ErrRateLimited = errors.New("resolver: provider rate limit exceeded")
)
