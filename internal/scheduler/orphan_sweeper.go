package scheduler

import (
	"context"
	"net/url"
	"path"
	"sync"
	"time"

	"github.com/VSP7988/ISD/internal/domain"
	"github.com/VSP7988/ISD/internal/logger"
	"github.com/VSP7988/ISD/internal/metrics"
)

// ImageURLSource lists the image URLs still referenced by gallery rows.
type ImageURLSource interface {
	ImageURLs(ctx context.Context) ([]string, error)
}

// OrphanSweeper removes gallery objects that no row references, such as
// the leftovers of a batch whose insert never happened.
type OrphanSweeper struct {
	rows     ImageURLSource
	store    domain.ObjectStore
	bucket   string
	interval time.Duration
	grace    time.Duration
	log      *logger.Logger
	metrics  *metrics.Metrics
	now      func() time.Time

	started  bool
	stopOnce sync.Once
	stopCh   chan struct{}
	done     chan struct{}
}

func NewOrphanSweeper(rows ImageURLSource, store domain.ObjectStore, bucket string, interval, grace time.Duration, log *logger.Logger, m *metrics.Metrics) *OrphanSweeper {
	return &OrphanSweeper{
		rows:     rows,
		store:    store,
		bucket:   bucket,
		interval: interval,
		grace:    grace,
		log:      log.WithComponent("orphan-sweeper"),
		metrics:  m,
		now:      time.Now,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start runs one sweep immediately and then every interval until ctx is
// done or Stop is called. A zero interval disables the sweeper.
func (s *OrphanSweeper) Start(ctx context.Context) {
	s.started = true
	if s.interval <= 0 {
		s.log.Info("orphan sweeper disabled")
		close(s.done)
		return
	}
	s.log.WithField("interval", s.interval.String()).Info("orphan sweeper started")

	go func() {
		defer close(s.done)
		s.run(ctx)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopCh:
				return
			case <-ticker.C:
				s.run(ctx)
			}
		}
	}()
}

// Stop halts the loop and waits for a running sweep to finish.
func (s *OrphanSweeper) Stop() {
	if !s.started {
		return
	}
	s.stopOnce.Do(func() {
		close(s.stopCh)
		<-s.done
		s.log.Info("orphan sweeper stopped")
	})
}

func (s *OrphanSweeper) run(ctx context.Context) {
	removed, err := s.Sweep(ctx)
	if err != nil {
		s.log.WithError(err).Error("orphan sweep failed")
		return
	}
	s.log.WithField("removed", removed).Debug("orphan sweep finished")
}

// Sweep removes unreferenced objects older than the grace period and
// returns how many were removed.
func (s *OrphanSweeper) Sweep(ctx context.Context) (int, error) {
	objects, err := s.store.ListObjects(ctx, s.bucket)
	if err != nil {
		return 0, err
	}
	urls, err := s.rows.ImageURLs(ctx)
	if err != nil {
		return 0, err
	}

	referenced := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		referenced[keyOf(u)] = struct{}{}
	}

	cutoff := s.now().Add(-s.grace)
	var orphans []string
	for _, o := range objects {
		if _, ok := referenced[o.Key]; ok {
			continue
		}
		if o.LastModified.After(cutoff) {
			continue
		}
		orphans = append(orphans, o.Key)
	}
	if len(orphans) == 0 {
		return 0, nil
	}

	if err := s.store.RemoveObjects(ctx, s.bucket, orphans); err != nil {
		return 0, err
	}
	for _, k := range orphans {
		s.log.WithField("key", k).Info("removed orphaned gallery object")
	}
	s.metrics.ObserveOrphansRemoved(len(orphans))
	return len(orphans), nil
}

func keyOf(raw string) string {
	p := raw
	if u, err := url.Parse(raw); err == nil && u.Path != "" {
		p = u.Path
	}
	return path.Base(p)
}
