package services

import (
	"context"
	"sync"
	"tehnika_server/database"
	"tehnika_server/structs"
	"tehnika_server/structs/tables"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var storageDeletionRetries = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "api",
	Subsystem: "storage",
	Name:      "deletion_retries_total",
	Help:      "Queued object deletion retries performed by the reconciler",
})

// ReconcileService runs the background sweep that keeps the object store and
// the database consistent: it retries queued object deletions and reaps
// pending image rows whose upload was never confirmed. Once a queued deletion
// crosses the configured attempt threshold an alert email goes out so someone
// can look at the bucket by hand.
type ReconcileService struct {
	logger         *gecho.Logger
	cfg            *structs.Config
	db             *database.DB
	storageService *StorageService
	emailService   *EmailService

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewReconcileService(logger *gecho.Logger, cfg *structs.Config, db *database.DB, storageService *StorageService, emailService *EmailService) *ReconcileService {
	return &ReconcileService{
		logger:         logger,
		cfg:            cfg,
		db:             db,
		storageService: storageService,
		emailService:   emailService,
		stop:           make(chan struct{}),
	}
}

// Start launches the sweep loop. One sweep runs immediately so a restart
// never delays cleanup by a full interval.
func (rs *ReconcileService) Start() {
	interval := rs.cfg.Reconciler.Interval
	if interval <= 0 {
		interval = 15 * time.Minute
	}

	rs.wg.Add(1)
	go func() {
		defer rs.wg.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		rs.Sweep(context.Background())

		for {
			select {
			case <-ticker.C:
				rs.Sweep(context.Background())
			case <-rs.stop:
				return
			}
		}
	}()

	rs.logger.Info("Storage reconciler started", gecho.Field("interval", interval))
}

// Stop halts the sweep loop and waits for an in-flight sweep to finish
func (rs *ReconcileService) Stop() {
	rs.stopOnce.Do(func() {
		close(rs.stop)
	})
	rs.wg.Wait()
	rs.logger.Info("Storage reconciler stopped")
}

// Sweep runs one reconciliation pass
func (rs *ReconcileService) Sweep(ctx context.Context) {
	startTime := time.Now()

	retried, cleared := rs.retryQueuedDeletions(ctx)
	reaped := rs.reapStalePendingImages(ctx)

	rs.logger.Debug("Reconciler sweep finished",
		gecho.Field("retried", retried),
		gecho.Field("cleared", cleared),
		gecho.Field("reaped", reaped),
		gecho.Field("duration", time.Since(startTime)),
	)
}

// retryQueuedDeletions re-attempts every queued object deletion. Successful
// deletes clear the queue row; failures bump the attempt counter. Rows that
// hit the alert threshold exactly are mailed out once.
func (rs *ReconcileService) retryQueuedDeletions(ctx context.Context) (retried, cleared int) {
	deletions, err := database.Query[tables.StorageDeletion](rs.db).
		OrderBy("created_at", database.ASC).
		All(ctx)
	if err != nil {
		rs.logger.Error("Failed to load storage deletion queue", gecho.Field("error", err))
		return 0, 0
	}

	var alertable []tables.StorageDeletion

	for _, deletion := range deletions {
		retried++
		storageDeletionRetries.Inc()

		err := rs.storageService.DeleteObject(ctx, deletion.ObjectKey)
		if err == nil {
			if _, delErr := database.DeleteByID[tables.StorageDeletion](rs.db, ctx, deletion.ID); delErr != nil {
				rs.logger.Error("Failed to clear storage deletion row",
					gecho.Field("id", deletion.ID),
					gecho.Field("error", delErr),
				)
				continue
			}
			cleared++
			continue
		}

		deletion.Attempts++
		deletion.LastError = err.Error()

		if _, updErr := database.Query[tables.StorageDeletion](rs.db).
			Where("id", deletion.ID).
			Update(ctx, map[string]any{
				"attempts":   deletion.Attempts,
				"last_error": deletion.LastError,
			}); updErr != nil {
			rs.logger.Error("Failed to update storage deletion row",
				gecho.Field("id", deletion.ID),
				gecho.Field("error", updErr),
			)
			continue
		}

		// Alert exactly once, on the sweep that crosses the threshold
		if rs.cfg.Reconciler.AlertThreshold > 0 && deletion.Attempts == rs.cfg.Reconciler.AlertThreshold {
			alertable = append(alertable, deletion)
		}
	}

	if len(alertable) > 0 {
		if err := rs.emailService.SendStorageDeletionAlert(alertable); err != nil {
			rs.logger.Error("Failed to send storage deletion alert", gecho.Field("error", err))
		}
	}

	return retried, cleared
}

// reapStalePendingImages removes pending image rows older than the TTL. The
// upload may or may not have reached the bucket, so the object delete runs
// first and failures land on the deletion queue like any other.
func (rs *ReconcileService) reapStalePendingImages(ctx context.Context) int {
	ttl := rs.cfg.Reconciler.PendingImageTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	cutoff := time.Now().Add(-ttl)

	stale, err := database.Query[tables.Image](rs.db).
		Where("status", tables.ImagePending).
		WhereOp("created_at", "<", cutoff).
		All(ctx)
	if err != nil {
		rs.logger.Error("Failed to load stale pending images", gecho.Field("error", err))
		return 0
	}

	reaped := 0
	for _, img := range stale {
		removeObjectOrQueue(ctx, rs.db, rs.storageService, rs.logger, img.ObjectKey)

		if _, err := database.DeleteByID[tables.Image](rs.db, ctx, img.ID); err != nil {
			rs.logger.Error("Failed to delete stale pending image",
				gecho.Field("image_id", img.ID),
				gecho.Field("error", err),
			)
			continue
		}
		reaped++
	}

	if reaped > 0 {
		rs.logger.Info("Reaped stale pending images", gecho.Field("count", reaped))
	}

	return reaped
}

// GetQueuedDeletions lists the current deletion queue, for the admin panel
func (rs *ReconcileService) GetQueuedDeletions(ctx context.Context) ([]tables.StorageDeletion, error) {
	return database.Query[tables.StorageDeletion](rs.db).
		OrderBy("created_at", database.ASC).
		All(ctx)
}
