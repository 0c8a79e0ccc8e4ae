package storage

import (
	"encoding/json"
	"strconv"
	"time"

	"cleanspot/backend/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	uploadSeqPrefix     = "upload_seq:"
	provisionalKey      = "uploads:provisional"
	complaintEventsChan = "complaints:events"
)

// NextUploadSeq returns a monotonically increasing disambiguator for after
// image storage keys of one complaint. Re-submissions of the same complaint
// get a fresh suffix while the key stays derivable.
func (s *Service) NextUploadSeq(complaintID string) (int64, error) {
	return s.Redis.Incr(s.Ctx, uploadSeqPrefix+complaintID).Result()
}

// MarkProvisionalUpload tags a freshly uploaded after-image as not yet
// committed. The commit step clears the tag; the sweeper deletes whatever
// stays tagged for too long (analysis failed, caller never resubmitted).
func (s *Service) MarkProvisionalUpload(storageID string, at time.Time) error {
	return s.Redis.HSet(s.Ctx, provisionalKey, storageID, at.Unix()).Err()
}

func (s *Service) ClearProvisionalUpload(storageID string) error {
	return s.Redis.HDel(s.Ctx, provisionalKey, storageID).Err()
}

// ProvisionalUploadsOlderThan lists storage ids whose provisional tag predates
// the cutoff.
func (s *Service) ProvisionalUploadsOlderThan(cutoff time.Time) ([]string, error) {
	entries, err := s.Redis.HGetAll(s.Ctx, provisionalKey).Result()
	if err != nil {
		return nil, err
	}
	var stale []string
	for storageID, raw := range entries {
		at, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			// Unreadable timestamp, treat as stale so it gets cleaned up.
			stale = append(stale, storageID)
			continue
		}
		if time.Unix(at, 0).Before(cutoff) {
			stale = append(stale, storageID)
		}
	}
	return stale, nil
}

// PublishComplaintEvent broadcasts a lifecycle event over Redis Pub/Sub so
// every server instance can push it to its connected dashboards.
func (s *Service) PublishComplaintEvent(event models.ComplaintEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return s.Redis.Publish(s.Ctx, complaintEventsChan, payload).Err()
}

// SubscribeComplaintEvents subscribes to the complaint event channel. The
// feed hub consumes this directly (it needs the concrete PubSub for Close).
func (s *Service) SubscribeComplaintEvents() *redis.PubSub {
	return s.Redis.Subscribe(s.Ctx, complaintEventsChan)
}
