package daemon

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/grihastudio/griha/internal/model"
)

type fakeSource struct {
	lists  [][]model.GenerationJob
	calls  int
	finals map[string]model.GenerationJob
	err    error
}

func (f *fakeSource) ListActiveJobs(context.Context) ([]model.GenerationJob, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.calls >= len(f.lists) {
		return nil, nil
	}
	jobs := f.lists[f.calls]
	f.calls++
	return jobs, nil
}

func (f *fakeSource) GetJob(_ context.Context, id string) (*model.GenerationJob, error) {
	j, ok := f.finals[id]
	if !ok {
		return nil, errors.New("no such job")
	}
	return &j, nil
}

func TestBuildSnapshot(t *testing.T) {
	jobs := []model.GenerationJob{
		{ID: "a", Status: model.JobQueued},
		{ID: "b", Status: model.JobProcessing},
		{ID: "c", Status: model.JobProcessing},
	}
	snap := buildSnapshot(jobs, time.Now())
	if snap.Active != 3 {
		t.Errorf("Active = %d, want 3", snap.Active)
	}
	if snap.Queued != 1 {
		t.Errorf("Queued = %d, want 1", snap.Queued)
	}
	if snap.Processing != 2 {
		t.Errorf("Processing = %d, want 2", snap.Processing)
	}
}

func TestPollOnceJobLifecycle(t *testing.T) {
	src := &fakeSource{
		lists: [][]model.GenerationJob{
			{{ID: "j1", RoomID: "r1", Status: model.JobQueued, Progress: 0}},
			{{ID: "j1", RoomID: "r1", Status: model.JobProcessing, Progress: 40}},
			{},
		},
		finals: map[string]model.GenerationJob{
			"j1": {ID: "j1", RoomID: "r1", Status: model.JobCompleted, Progress: 100},
		},
	}
	s := New(Config{Interval: 10 * time.Second, EventsBuffer: 10}, src)
	ctx := context.Background()

	s.pollOnce(ctx)
	s.pollOnce(ctx)
	s.pollOnce(ctx)

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.events) != 3 {
		t.Fatalf("events = %d, want 3 (started, progress, completed)", len(s.events))
	}
	if s.events[0].Type != EventJobStarted {
		t.Errorf("first event = %q, want %q", s.events[0].Type, EventJobStarted)
	}
	if s.events[1].Type != EventJobProgress || s.events[1].Job.Progress != 40 {
		t.Errorf("second event = %q progress %d", s.events[1].Type, s.events[1].Job.Progress)
	}
	if s.events[2].Type != EventJobCompleted {
		t.Errorf("third event = %q, want %q", s.events[2].Type, EventJobCompleted)
	}
	if s.snapshot.Active != 0 {
		t.Errorf("final snapshot active = %d, want 0", s.snapshot.Active)
	}
	if s.pollCount != 3 {
		t.Errorf("pollCount = %d, want 3", s.pollCount)
	}
}

func TestPollOnceFailedJob(t *testing.T) {
	src := &fakeSource{
		lists: [][]model.GenerationJob{
			{{ID: "j2", Status: model.JobProcessing, Progress: 80}},
			{},
		},
		finals: map[string]model.GenerationJob{
			"j2": {ID: "j2", Status: model.JobFailed, Error: "render timeout"},
		},
	}
	s := New(Config{Interval: 10 * time.Second}, src)
	ctx := context.Background()

	s.pollOnce(ctx)
	s.pollOnce(ctx)

	s.mu.RLock()
	defer s.mu.RUnlock()

	last := s.events[len(s.events)-1]
	if last.Type != EventJobFailed {
		t.Fatalf("last event = %q, want %q", last.Type, EventJobFailed)
	}
	if last.Job.Error != "render timeout" {
		t.Errorf("job error = %q", last.Job.Error)
	}
}

func TestPollOnceRecordsError(t *testing.T) {
	src := &fakeSource{err: errors.New("connection refused")}
	s := New(Config{Interval: 10 * time.Second}, src)

	s.pollOnce(context.Background())

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.lastError == "" {
		t.Error("lastError empty after failed poll")
	}
	if s.pollCount != 1 {
		t.Errorf("pollCount = %d, want 1", s.pollCount)
	}
	if len(s.events) != 0 {
		t.Errorf("events = %d after failed poll, want 0", len(s.events))
	}
}

func TestPublishEventRingBuffer(t *testing.T) {
	s := New(Config{
		Interval:     10 * time.Second,
		EventsBuffer: 2,
	}, &fakeSource{})

	s.publishEvent(Event{ID: 1})
	s.publishEvent(Event{ID: 2})
	s.publishEvent(Event{ID: 3})

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.events) != 2 {
		t.Fatalf("events len = %d, want 2", len(s.events))
	}
	if s.events[0].ID != 2 || s.events[1].ID != 3 {
		t.Fatalf("events ring contains IDs [%d, %d], want [2, 3]", s.events[0].ID, s.events[1].ID)
	}
}

func TestSubscribers(t *testing.T) {
	s := New(Config{Interval: 10 * time.Second}, &fakeSource{})

	ch := make(chan Event, 1)
	id := s.addSubscriber(ch)

	s.publishEvent(Event{ID: 7, Type: EventJobStarted})
	select {
	case ev := <-ch:
		if ev.ID != 7 {
			t.Errorf("subscriber got event %d, want 7", ev.ID)
		}
	default:
		t.Fatal("subscriber channel empty after publish")
	}

	s.removeSubscriber(id)
	if got := s.snapshotStatus().SubscriberCount; got != 0 {
		t.Errorf("SubscriberCount = %d after remove, want 0", got)
	}
}
