package complaint_test

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"cleanspot/backend/internal/imagestore"
	"cleanspot/backend/internal/models"
	"cleanspot/backend/internal/scorer"
)

// mockStorage is an in-memory stand-in for the gorm/redis service.
type mockStorage struct {
	mu          sync.Mutex
	users       map[string]*models.User
	students    map[string]*models.StudentProfile  // by user id
	workers     map[string]*models.EmployeeProfile // by user id
	complaints  map[string]*models.Complaint
	workLog     []models.WorkLogEntry
	seq         map[string]int64
	provisional map[string]time.Time
	events      []models.ComplaintEvent

	failComplete  error
	forceNotOwner bool // makes CompleteComplaint report zero affected rows
	failAppend    error
	failList      error
}

func newMockStorage() *mockStorage {
	return &mockStorage{
		users:       make(map[string]*models.User),
		students:    make(map[string]*models.StudentProfile),
		workers:     make(map[string]*models.EmployeeProfile),
		complaints:  make(map[string]*models.Complaint),
		seq:         make(map[string]int64),
		provisional: make(map[string]time.Time),
	}
}

func (m *mockStorage) CreateUser(user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
	return nil
}

func (m *mockStorage) FindUserByUsername(username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockStorage) DeleteUserByID(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, id)
	return nil
}

func (m *mockStorage) CreateStudentProfile(profile *models.StudentProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.students[profile.UserID] = profile
	return nil
}

func (m *mockStorage) CreateEmployeeProfile(profile *models.EmployeeProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.workers[profile.UserID] = profile
	return nil
}

func (m *mockStorage) FindStudentByUserID(userID string) (*models.StudentProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.students[userID], nil
}

func (m *mockStorage) FindWorkerByUserID(userID string) (*models.EmployeeProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.workers[userID], nil
}

func (m *mockStorage) CreateComplaint(complaint *models.Complaint) error {
	if complaint.Status == "" {
		complaint.Status = models.StatusPending
	}
	if complaint.Urgency == "" {
		complaint.Urgency = models.UrgencyLow
	}
	if complaint.CreatedAt.IsZero() {
		complaint.CreatedAt = time.Now()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.complaints[complaint.ID] = complaint
	return nil
}

func (m *mockStorage) FindComplaintByID(id string) (*models.Complaint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.complaints[id]
	if !ok {
		return nil, nil
	}
	clone := *c
	return &clone, nil
}

func (m *mockStorage) SaveComplaint(complaint *models.Complaint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.complaints[complaint.ID] = complaint
	return nil
}

func urgencyWeight(u models.Urgency) int {
	switch u {
	case models.UrgencyHigh:
		return 2
	case models.UrgencyMedium:
		return 1
	default:
		return 0
	}
}

func (m *mockStorage) OldestPendingInArea(area string) (*models.Complaint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var pending []*models.Complaint
	for _, c := range m.complaints {
		if c.Area == area && c.Status == models.StatusPending {
			pending = append(pending, c)
		}
	}
	if len(pending) == 0 {
		return nil, nil
	}
	sort.Slice(pending, func(i, j int) bool {
		wi, wj := urgencyWeight(pending[i].Urgency), urgencyWeight(pending[j].Urgency)
		if wi != wj {
			return wi > wj
		}
		return pending[i].CreatedAt.Before(pending[j].CreatedAt)
	})
	return pending[0], nil
}

func (m *mockStorage) ListPendingInArea(area string) ([]models.Complaint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Complaint
	for _, c := range m.complaints {
		if c.Status == models.StatusPending && (area == "" || c.Area == area) {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *mockStorage) ListComplaintsByStudent(rollNumber string) ([]models.Complaint, error) {
	if m.failList != nil {
		return nil, m.failList
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Complaint
	for _, c := range m.complaints {
		if c.StudentID == rollNumber {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *mockStorage) ListComplaintsByWorker(workerID string) ([]models.Complaint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Complaint
	for _, c := range m.complaints {
		if c.AssignedTo != nil && *c.AssignedTo == workerID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *mockStorage) CompleteComplaint(id, workerID, afterURL, afterID string, score float64, resolvedAt time.Time) (bool, error) {
	if m.failComplete != nil {
		return false, m.failComplete
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.complaints[id]
	if !ok || m.forceNotOwner {
		return false, nil
	}
	if c.Status != models.StatusAssigned || c.AssignedTo == nil || *c.AssignedTo != workerID {
		return false, nil
	}
	c.Status = models.StatusCompleted
	c.AfterImageURL = &afterURL
	c.AfterImageID = &afterID
	c.CleanlinessScore = &score
	c.ResolvedAt = &resolvedAt
	return true, nil
}

func (m *mockStorage) AppendWorkLog(entry *models.WorkLogEntry) error {
	if m.failAppend != nil {
		return m.failAppend
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.workLog = append(m.workLog, *entry)
	return nil
}

func (m *mockStorage) NextUploadSeq(complaintID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq[complaintID]++
	return m.seq[complaintID], nil
}

func (m *mockStorage) MarkProvisionalUpload(storageID string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.provisional[storageID] = at
	return nil
}

func (m *mockStorage) ClearProvisionalUpload(storageID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.provisional, storageID)
	return nil
}

func (m *mockStorage) ProvisionalUploadsOlderThan(cutoff time.Time) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var stale []string
	for id, at := range m.provisional {
		if at.Before(cutoff) {
			stale = append(stale, id)
		}
	}
	sort.Strings(stale)
	return stale, nil
}

func (m *mockStorage) PublishComplaintEvent(event models.ComplaintEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

// fakeImages records uploads and performs idempotent deletes.
type fakeImages struct {
	mu        sync.Mutex
	uploads   []string // storage ids in upload order
	deleted   map[string]int
	failStore error
}

func newFakeImages() *fakeImages {
	return &fakeImages{deleted: make(map[string]int)}
}

func (f *fakeImages) Store(ctx context.Context, image io.Reader, folder, name string) (*imagestore.Upload, error) {
	if f.failStore != nil {
		return nil, &imagestore.UploadError{Name: name, Err: f.failStore}
	}
	storageID := folder + "/" + name
	f.mu.Lock()
	f.uploads = append(f.uploads, storageID)
	f.mu.Unlock()
	return &imagestore.Upload{
		URL:       fmt.Sprintf("https://img.test/%s", storageID),
		StorageID: storageID,
	}, nil
}

// Delete never errors for unknown ids: the remote store treats a second
// delete as a no-op, and so does the fake.
func (f *fakeImages) Delete(ctx context.Context, storageID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted[storageID]++
	return nil
}

// stubAnalyzer returns a canned outcome and records what it was asked.
type stubAnalyzer struct {
	outcome  scorer.Outcome
	calls    int
	lastURL  string
	outcomes []scorer.Outcome // when set, consumed one per call
}

func (a *stubAnalyzer) Analyze(ctx context.Context, imageURL string) scorer.Outcome {
	a.calls++
	a.lastURL = imageURL
	if len(a.outcomes) > 0 {
		out := a.outcomes[0]
		a.outcomes = a.outcomes[1:]
		return out
	}
	return a.outcome
}

// spyNotifier records ops notifications.
type spyNotifier struct {
	completed []string // complaint ids
	failed    []string // "complaintID/stage"
}

func (n *spyNotifier) WorkCompleted(complaintID, area string, score float64) {
	n.completed = append(n.completed, complaintID)
}

func (n *spyNotifier) AnalysisFailed(complaintID, workerID, stage, detail string) {
	n.failed = append(n.failed, complaintID+"/"+stage)
}
