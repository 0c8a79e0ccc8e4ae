package complaint

import (
	"context"
	"log"
	"time"

	"cleanspot/backend/internal/imagestore"
	"cleanspot/backend/internal/storage"
)

// Sweeper deletes after-images that were uploaded but never committed:
// analysis failed and the worker never resubmitted. Deletes are idempotent,
// so racing the commit step at worst deletes an asset the commit already
// cleared from the provisional set.
type Sweeper struct {
	Storage  storage.Storage
	Images   imagestore.Store
	Interval time.Duration
	MaxAge   time.Duration
}

// Run sweeps on a ticker until the context is cancelled.
func (w *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Sweep(ctx)
		}
	}
}

// Sweep deletes every provisional upload older than MaxAge.
func (w *Sweeper) Sweep(ctx context.Context) {
	stale, err := w.Storage.ProvisionalUploadsOlderThan(time.Now().Add(-w.MaxAge))
	if err != nil {
		log.Printf("ERROR: provisional upload listing failed: %v", err)
		return
	}
	for _, storageID := range stale {
		if err := w.Images.Delete(ctx, storageID); err != nil {
			log.Printf("ERROR: sweep delete %s failed: %v", storageID, err)
			continue
		}
		if err := w.Storage.ClearProvisionalUpload(storageID); err != nil {
			log.Printf("WARNING: failed to clear swept tag %s: %v", storageID, err)
		}
	}
	if len(stale) > 0 {
		log.Printf("INFO: swept %d provisional upload(s)", len(stale))
	}
}
