// Package daemon provides the long-running generation-job watcher service.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/grihastudio/griha/internal/model"
)

// JobSource supplies generation jobs from the backend. *studio.Client
// satisfies it.
type JobSource interface {
	ListActiveJobs(ctx context.Context) ([]model.GenerationJob, error)
	GetJob(ctx context.Context, id string) (*model.GenerationJob, error)
}

// Config controls the daemon runtime behavior.
type Config struct {
	Interval     time.Duration
	Addr         string
	EventsBuffer int
}

// Snapshot is the compact job state for status/event payloads.
type Snapshot struct {
	At         time.Time             `json:"at"`
	Active     int                   `json:"active"`
	Queued     int                   `json:"queued"`
	Processing int                   `json:"processing"`
	Jobs       []model.GenerationJob `json:"jobs,omitempty"`
}

// Event is emitted when a job starts, changes status, or finishes.
type Event struct {
	ID        int64               `json:"id"`
	Type      string              `json:"type"`
	Timestamp time.Time           `json:"timestamp"`
	Job       model.GenerationJob `json:"job"`
	Snapshot  Snapshot            `json:"snapshot"`
}

// Event types.
const (
	EventJobStarted   = "job_started"
	EventJobProgress  = "job_progress"
	EventJobCompleted = "job_completed"
	EventJobFailed    = "job_failed"
)

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastPollAt      time.Time `json:"last_poll_at"`
	PollIntervalSec int       `json:"poll_interval_sec"`
	PollCount       int64     `json:"poll_count"`
	Summary         Snapshot  `json:"summary"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg Config
	src JobSource

	mu          sync.RWMutex
	startedAt   time.Time
	lastPollAt  time.Time
	pollCount   int64
	lastError   string
	jobs        map[string]model.GenerationJob
	snapshot    Snapshot
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new daemon service with the provided config.
func New(cfg Config, src JobSource) *Service {
	if cfg.Interval < 2*time.Second {
		cfg.Interval = 15 * time.Second
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8791"
	}

	return &Service{
		cfg:       cfg,
		src:       src,
		startedAt: time.Now(),
		jobs:      make(map[string]model.GenerationJob),
		subs:      make(map[int]chan Event),
	}
}

// Run starts HTTP endpoints and polling until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	initMetrics()

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/status", s.handleStatus)
	mux.HandleFunc("/v1/events", s.handleEvents)
	mux.HandleFunc("/v1/stream", s.handleStream)
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Seed initial snapshot so status is useful immediately.
	s.pollOnce(ctx)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case <-ticker.C:
			s.pollOnce(ctx)
		case err := <-errCh:
			return fmt.Errorf("daemon http server: %w", err)
		}
	}
}

func (s *Service) pollOnce(ctx context.Context) {
	start := time.Now()
	active, err := s.src.ListActiveJobs(ctx)
	if err != nil {
		s.mu.Lock()
		s.lastError = err.Error()
		s.lastPollAt = time.Now()
		s.pollCount++
		s.mu.Unlock()
		observePoll("error", time.Since(start))
		log.Printf("griha daemon poll error: %v", err)
		return
	}

	now := time.Now()
	curr := make(map[string]model.GenerationJob, len(active))
	for _, j := range active {
		curr[j.ID] = j
	}

	snap := buildSnapshot(active, now)

	var events []Event

	s.mu.Lock()
	prev := s.jobs

	for id, job := range curr {
		before, seen := prev[id]
		switch {
		case !seen:
			events = append(events, s.nextEvent(EventJobStarted, now, job, snap))
		case before.Status != job.Status || before.Progress != job.Progress:
			events = append(events, s.nextEvent(EventJobProgress, now, job, snap))
		}
	}

	// Jobs that left the active set reached a terminal state; ask the
	// backend which one.
	var finished []string
	for id := range prev {
		if _, still := curr[id]; !still {
			finished = append(finished, id)
		}
	}

	s.jobs = curr
	s.snapshot = snap
	s.lastPollAt = now
	s.pollCount++
	s.lastError = ""
	s.mu.Unlock()

	for _, id := range finished {
		final, err := s.src.GetJob(ctx, id)
		if err != nil {
			log.Printf("griha daemon: resolving finished job %s: %v", id, err)
			continue
		}
		typ := EventJobCompleted
		if final.Status == model.JobFailed {
			typ = EventJobFailed
		}
		s.mu.Lock()
		ev := s.nextEvent(typ, now, *final, snap)
		s.mu.Unlock()
		events = append(events, ev)
		incJobEvent(typ)
	}

	for _, ev := range events {
		if ev.Type == EventJobStarted || ev.Type == EventJobProgress {
			incJobEvent(ev.Type)
		}
		s.publishEvent(ev)
	}

	setJobsInFlight(len(curr))
	observePoll("success", time.Since(start))
}

// nextEvent allocates an event ID. Callers must hold s.mu.
func (s *Service) nextEvent(typ string, at time.Time, job model.GenerationJob, snap Snapshot) Event {
	s.nextEventID++
	return Event{
		ID:        s.nextEventID,
		Type:      typ,
		Timestamp: at,
		Job:       job,
		Snapshot:  snap,
	}
}

func buildSnapshot(jobs []model.GenerationJob, at time.Time) Snapshot {
	snap := Snapshot{At: at, Active: len(jobs), Jobs: jobs}
	for _, j := range jobs {
		switch j.Status {
		case model.JobQueued:
			snap.Queued++
		case model.JobProcessing:
			snap.Processing++
		}
	}
	return snap
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		LastPollAt:      s.lastPollAt,
		PollIntervalSec: int(s.cfg.Interval.Seconds()),
		PollCount:       s.pollCount,
		Summary:         s.snapshot,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.snapshotStatus())
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(events)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send current snapshot immediately.
	current := Event{
		Type:      "snapshot",
		Timestamp: time.Now(),
		Snapshot:  s.snapshotStatus().Summary,
	}
	writeSSE(w, current)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
