package http

import "github.com/nekogravitycat/hotel-booking-backend/internal/file"

// UploadResponse describes a stored photo and where to fetch it.
type UploadResponse struct {
	FileID       string `json:"file_id"`
	Filename     string `json:"filename"`
	ContentType  string `json:"content_type"`
	Size         int64  `json:"size"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url"`
}

func NewUploadResponse(f *file.File) UploadResponse {
	return UploadResponse{
		FileID:       f.ID,
		Filename:     f.Filename,
		ContentType:  f.ContentType,
		Size:         f.Size,
		URL:          file.FileURL(f.ID),
		ThumbnailURL: file.ThumbnailURL(f.ID),
	}
}
