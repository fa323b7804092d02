package image

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/deskhive/office-booking-backend/internal/office"
	"github.com/deskhive/office-booking-backend/internal/pkg/storage"
)

const (
	thumbnailMaxWidth  = 400
	thumbnailMaxHeight = 300
)

type Service interface {
	Upload(ctx context.Context, officeID string, header *multipart.FileHeader, actorID string) (*Image, error)
	ListByOffice(ctx context.Context, officeID string) ([]*Image, error)
	Download(ctx context.Context, id string) (io.ReadCloser, *Image, error)
	DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *Image, error)
	Delete(ctx context.Context, officeID, imageID string, actorID string) error
}

type service struct {
	repo          Repository
	officeService office.Service
	storage       storage.Storage
	imgProc       *storage.ImageProcessor
}

func NewService(repo Repository, officeService office.Service, store storage.Storage) Service {
	return &service{
		repo:          repo,
		officeService: officeService,
		storage:       store,
		imgProc:       storage.NewImageProcessor(),
	}
}

func (s *service) Upload(ctx context.Context, officeID string, header *multipart.FileHeader, actorID string) (*Image, error) {
	o, err := s.officeService.GetByID(ctx, officeID)
	if err != nil {
		return nil, err
	}
	if o.UserID != actorID {
		return nil, ErrPermissionDenied
	}

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrNotAnImage
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	// Buffer the content so it can be read twice (thumbnail + save).
	fileBytes, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read file content: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	imageID := uuid.New().String()

	// Sharding path: offices/<office>/ab/UUID.ext
	shard := imageID[:2]
	storagePath := fmt.Sprintf("offices/%s/%s/%s%s", officeID, shard, imageID, ext)

	if err := s.storage.Save(ctx, storagePath, bytes.NewReader(fileBytes)); err != nil {
		return nil, fmt.Errorf("failed to save image: %w", err)
	}

	var thumbnailPath *string
	thumb, err := s.imgProc.GenerateThumbnail(bytes.NewReader(fileBytes), thumbnailMaxWidth, thumbnailMaxHeight)
	if err != nil {
		// An undecodable "image" is rejected outright; the original is cleaned up.
		_ = s.storage.Delete(ctx, storagePath)
		return nil, ErrNotAnImage
	}
	tPath := fmt.Sprintf("offices/%s/%s/%s_thumb.jpg", officeID, shard, imageID)
	if err := s.storage.Save(ctx, tPath, thumb); err != nil {
		log.Printf("failed to save thumbnail for image %s: %v", imageID, err)
	} else {
		thumbnailPath = &tPath
	}

	img := &Image{
		ID:            imageID,
		OfficeID:      officeID,
		Filename:      header.Filename,
		StoragePath:   storagePath,
		ThumbnailPath: thumbnailPath,
		ContentType:   contentType,
		Size:          header.Size,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, img); err != nil {
		// Cleanup storage if the db write fails.
		_ = s.storage.Delete(ctx, storagePath)
		if thumbnailPath != nil {
			_ = s.storage.Delete(ctx, *thumbnailPath)
		}
		return nil, err
	}

	return img, nil
}

func (s *service) ListByOffice(ctx context.Context, officeID string) ([]*Image, error) {
	if _, err := s.officeService.GetByID(ctx, officeID); err != nil {
		return nil, err
	}
	return s.repo.ListByOffice(ctx, officeID)
}

func (s *service) Download(ctx context.Context, id string) (io.ReadCloser, *Image, error) {
	img, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	stream, err := s.storage.Get(ctx, img.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve image from storage: %w", err)
	}
	return stream, img, nil
}

func (s *service) DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *Image, error) {
	img, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if img.ThumbnailPath == nil {
		return nil, nil, ErrNoThumbnail
	}

	stream, err := s.storage.Get(ctx, *img.ThumbnailPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve thumbnail from storage: %w", err)
	}
	return stream, img, nil
}

func (s *service) Delete(ctx context.Context, officeID, imageID string, actorID string) error {
	o, err := s.officeService.GetByID(ctx, officeID)
	if err != nil {
		return err
	}
	if o.UserID != actorID {
		return ErrPermissionDenied
	}

	img, err := s.repo.GetByID(ctx, imageID)
	if err != nil {
		return err
	}
	if img.OfficeID != officeID {
		return ErrNotFound
	}

	// Best-effort storage cleanup; the record delete is authoritative.
	_ = s.storage.Delete(ctx, img.StoragePath)
	if img.ThumbnailPath != nil {
		_ = s.storage.Delete(ctx, *img.ThumbnailPath)
	}

	return s.repo.Delete(ctx, imageID)
}
