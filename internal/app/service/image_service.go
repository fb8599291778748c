package service

import (
	"context"
	"fmt"
	"io"

	"github.com/AvancyBrasil/API-Find/internal/app/repository"
	"github.com/AvancyBrasil/API-Find/internal/storage"
	"github.com/AvancyBrasil/API-Find/pkg/logger"
)

const (
	FolderUsuarios = "usuarios"
	FolderLojistas = "lojistas"
)

// ImageUpload is an image received from a multipart form.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type ImageService interface {
	Store(ctx context.Context, folder string, img *ImageUpload) (string, error)
	Discard(ctx context.Context, key string)
	SweepOrphans(ctx context.Context, limit int) (int, error)
}

type imageService struct {
	store      storage.ImageStore
	orphanRepo repository.OrphanImageRepository
	maxSize    int64
}

func NewImageService(store storage.ImageStore, orphanRepo repository.OrphanImageRepository, maxSize int64) ImageService {
	return &imageService{
		store:      store,
		orphanRepo: orphanRepo,
		maxSize:    maxSize,
	}
}

// Store validates and uploads img, returning its storage key.
func (s *imageService) Store(ctx context.Context, folder string, img *ImageUpload) (string, error) {
	if err := storage.ValidateContentType(img.ContentType); err != nil {
		logger.Warn("Rejected image upload: content type", map[string]interface{}{
			"content_type": img.ContentType,
		})
		return "", ErrInvalidImageType
	}
	if err := storage.ValidateFileSize(img.Size, s.maxSize); err != nil {
		logger.Warn("Rejected image upload: size", map[string]interface{}{
			"size":     img.Size,
			"max_size": s.maxSize,
		})
		return "", ErrImageTooLarge
	}

	key, err := s.store.Upload(ctx, folder, img.Filename, img.ContentType, img.Body, img.Size)
	if err != nil {
		logger.Error("Failed to upload image", err, map[string]interface{}{
			"folder": folder,
		})
		return "", fmt.Errorf("%w: %v", ErrImageUpload, err)
	}

	logger.Info("Image uploaded", map[string]interface{}{
		"key": key,
	})
	return key, nil
}

// Discard deletes key from the image host. A failed delete is queued for the
// orphan sweeper instead of failing the caller.
func (s *imageService) Discard(ctx context.Context, key string) {
	if key == "" {
		return
	}

	if err := s.store.Delete(ctx, key); err != nil {
		logger.Warn("Image delete failed, queueing orphan", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		if qerr := s.orphanRepo.Enqueue(key, err.Error()); qerr != nil {
			logger.Error("Failed to queue orphan image", qerr, map[string]interface{}{
				"key": key,
			})
		}
		return
	}

	logger.Info("Image deleted", map[string]interface{}{
		"key": key,
	})
}

// SweepOrphans retries up to limit queued deletes and returns how many succeeded.
func (s *imageService) SweepOrphans(ctx context.Context, limit int) (int, error) {
	orphans, err := s.orphanRepo.FindBatch(limit)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, orphan := range orphans {
		if err := s.store.Delete(ctx, orphan.Key); err != nil {
			if merr := s.orphanRepo.MarkFailed(orphan.ID, err.Error()); merr != nil {
				logger.Error("Failed to mark orphan image attempt", merr, map[string]interface{}{
					"key": orphan.Key,
				})
			}
			continue
		}
		if err := s.orphanRepo.Remove(orphan.ID); err != nil {
			logger.Error("Failed to remove swept orphan image", err, map[string]interface{}{
				"key": orphan.Key,
			})
			continue
		}
		deleted++
	}

	logger.Info("Orphan image sweep finished", map[string]interface{}{
		"queued":  len(orphans),
		"deleted": deleted,
	})
	return deleted, nil
}
