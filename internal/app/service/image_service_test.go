package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageService_StoreValidates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		upload  *ImageUpload
		wantErr error
	}{
		{
			name:   "Valid png",
			upload: pngUpload("foto.png"),
		},
		{
			name: "Not an image",
			upload: &ImageUpload{
				Filename:    "doc.pdf",
				ContentType: "application/pdf",
				Size:        10,
				Body:        strings.NewReader("0123456789"),
			},
			wantErr: ErrInvalidImageType,
		},
		{
			name: "Too large",
			upload: &ImageUpload{
				Filename:    "big.jpg",
				ContentType: "image/jpeg",
				Size:        6 << 20,
				Body:        strings.NewReader(""),
			},
			wantErr: ErrImageTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := env.images.Store(ctx, FolderUsuarios, tt.upload)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, key)
				return
			}
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(key, FolderUsuarios+"/"))
			assert.Contains(t, env.store.objects, key)
		})
	}
}

func TestImageService_StoreUploadFailure(t *testing.T) {
	env := newTestEnv(t)
	env.store.uploadErr = errBoom

	_, err := env.images.Store(context.Background(), FolderLojistas, pngUpload("loja.png"))
	assert.ErrorIs(t, err, ErrImageUpload)
}

func TestImageService_DiscardQueuesOrphanAndSweepDrainsIt(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	key, err := env.images.Store(ctx, FolderUsuarios, pngUpload("antiga.png"))
	require.NoError(t, err)

	env.store.deleteErr = errBoom
	env.images.Discard(ctx, key)

	orphans, err := env.orphanRepo.FindBatch(10)
	require.NoError(t, err)
	require.Len(t, orphans, 1)
	assert.Equal(t, key, orphans[0].Key)

	// still failing: attempt is recorded, key stays queued
	deleted, err := env.images.SweepOrphans(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, deleted)

	orphans, err = env.orphanRepo.FindBatch(10)
	require.NoError(t, err)
	require.Len(t, orphans, 1)
	assert.Equal(t, 1, orphans[0].Attempts)

	env.store.deleteErr = nil
	deleted, err = env.images.SweepOrphans(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)
	assert.NotContains(t, env.store.objects, key)

	orphans, err = env.orphanRepo.FindBatch(10)
	require.NoError(t, err)
	assert.Empty(t, orphans)
}

func TestImageService_DiscardEmptyKeyIsNoop(t *testing.T) {
	env := newTestEnv(t)
	env.images.Discard(context.Background(), "")
	assert.Empty(t, env.store.deleted)
}
