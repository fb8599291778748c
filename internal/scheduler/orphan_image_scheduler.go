package scheduler

import (
	"context"
	"time"

	"github.com/AvancyBrasil/API-Find/internal/app/service"
	"github.com/AvancyBrasil/API-Find/pkg/logger"
	"github.com/robfig/cron/v3"
)

const sweepTimeout = 2 * time.Minute

// OrphanImageScheduler periodically retries deletion of images whose
// removal failed during a request.
type OrphanImageScheduler struct {
	cron         *cron.Cron
	imageService service.ImageService
	spec         string
	batch        int
}

func NewOrphanImageScheduler(imageService service.ImageService, spec string, batch int) *OrphanImageScheduler {
	return &OrphanImageScheduler{
		cron:         cron.New(),
		imageService: imageService,
		spec:         spec,
		batch:        batch,
	}
}

func (s *OrphanImageScheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, s.RunOnce)
	if err != nil {
		logger.Error("Failed to add cron job for orphan image sweep", err, map[string]interface{}{
			"spec": s.spec,
		})
		return err
	}

	s.cron.Start()
	logger.Info("Orphan image scheduler started", map[string]interface{}{
		"spec":  s.spec,
		"batch": s.batch,
	})
	return nil
}

// RunOnce sweeps a single batch.
func (s *OrphanImageScheduler) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	removed, err := s.imageService.SweepOrphans(ctx, s.batch)
	if err != nil {
		logger.Error("Orphan image sweep failed", err)
		return
	}
	if removed > 0 {
		logger.Info("Orphan images removed", map[string]interface{}{
			"removed": removed,
		})
	}
}

// Stop waits for a running sweep to finish.
func (s *OrphanImageScheduler) Stop() {
	logger.Info("Stopping orphan image scheduler...")
	<-s.cron.Stop().Done()
	logger.Info("Orphan image scheduler stopped")
}
