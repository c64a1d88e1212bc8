package file

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/storage"
)

// UploadInput describes one multipart upload and the limits that apply to it.
type UploadInput struct {
	FileHeader   *multipart.FileHeader
	UserID       string
	MaxSizeBytes int64    // 0 = no limit
	AllowedTypes []string // sniffed MIME types; empty = any image
}

type Service interface {
	Upload(ctx context.Context, in UploadInput) (*File, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*File, error)
	Download(ctx context.Context, id string) (io.ReadCloser, *File, error)
	DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *File, error)
}

type service struct {
	repo    Repository
	storage storage.Storage
	imgProc *storage.ImageProcessor
	newID   func() string
}

func NewService(repo Repository, store storage.Storage) Service {
	return &service{
		repo:    repo,
		storage: store,
		imgProc: storage.NewImageProcessor(),
		newID:   func() string { return uuid.New().String() },
	}
}

func (s *service) Upload(ctx context.Context, in UploadInput) (*File, error) {
	header := in.FileHeader
	if in.MaxSizeBytes > 0 && header.Size > in.MaxSizeBytes {
		return nil, ErrTooLarge
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	// Photos are small enough to hold in memory; the extra byte detects lying headers.
	reader := io.Reader(src)
	if in.MaxSizeBytes > 0 {
		reader = io.LimitReader(src, in.MaxSizeBytes+1)
	}
	fileBytes, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read file content: %w", err)
	}
	if in.MaxSizeBytes > 0 && int64(len(fileBytes)) > in.MaxSizeBytes {
		return nil, ErrTooLarge
	}

	sniffed := http.DetectContentType(fileBytes)
	if !typeAllowed(sniffed, in.AllowedTypes) {
		return nil, ErrUnsupportedType
	}

	photo, thumb, err := s.imgProc.Process(bytes.NewReader(fileBytes))
	if err != nil {
		return nil, ErrUnreadableImage
	}

	fileID := s.newID()

	// Sharding path: room-photos/ab/UUID.jpg
	shard := fileID[:2]
	storagePath := fmt.Sprintf("room-photos/%s/%s.jpg", shard, fileID)
	thumbPath := fmt.Sprintf("room-photos/%s/%s_thumb.jpg", shard, fileID)

	size := int64(photo.Len())
	if err := s.storage.Save(ctx, storagePath, photo); err != nil {
		return nil, fmt.Errorf("failed to save file to storage: %w", err)
	}
	if err := s.storage.Save(ctx, thumbPath, thumb); err != nil {
		_ = s.storage.Delete(ctx, storagePath)
		return nil, fmt.Errorf("failed to save thumbnail to storage: %w", err)
	}

	f := &File{
		ID:            fileID,
		UserID:        in.UserID,
		Filename:      strings.TrimSuffix(filepath.Base(header.Filename), filepath.Ext(header.Filename)) + ".jpg",
		StoragePath:   storagePath,
		ThumbnailPath: &thumbPath,
		ContentType:   "image/jpeg",
		Size:          size,
	}

	if err := s.repo.Create(ctx, f); err != nil {
		// Cleanup storage if db fails
		_ = s.storage.Delete(ctx, storagePath)
		_ = s.storage.Delete(ctx, thumbPath)
		return nil, err
	}

	return f, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	// Best effort: a leftover object is harmless once the record is gone.
	if err := s.storage.Delete(ctx, f.StoragePath); err != nil {
		log.Printf("file %s: failed to delete stored object: %v", id, err)
	}
	if f.ThumbnailPath != nil {
		if err := s.storage.Delete(ctx, *f.ThumbnailPath); err != nil {
			log.Printf("file %s: failed to delete thumbnail: %v", id, err)
		}
	}
	return nil
}

func (s *service) Get(ctx context.Context, id string) (*File, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Download(ctx context.Context, id string) (io.ReadCloser, *File, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	stream, err := s.storage.Get(ctx, f.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve file from storage: %w", err)
	}

	return stream, f, nil
}

func (s *service) DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *File, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if f.ThumbnailPath == nil {
		return nil, nil, ErrNoThumbnail
	}

	stream, err := s.storage.Get(ctx, *f.ThumbnailPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve thumbnail from storage: %w", err)
	}

	return stream, f, nil
}

func typeAllowed(contentType string, allowed []string) bool {
	if len(allowed) == 0 {
		return strings.HasPrefix(contentType, "image/")
	}
	for _, t := range allowed {
		if t == contentType {
			return true
		}
	}
	return false
}
