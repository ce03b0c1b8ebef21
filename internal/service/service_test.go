package service

import (
	"context"
	"sync"
	"time"

	"github.com/vanshika/herograph/backend/internal/domain"
)

func sampleRecords() []domain.RelationRecord {
	return []domain.RelationRecord{
		{Subject: "A", Object: "B", Relation: "ally"},
		{Subject: "B", Object: "A", Relation: "rival"},
		{Subject: "B", Object: "C", Relation: "friend"},
	}
}

// scriptedSource serves a different response per call; the last one repeats.
type scriptedSource struct {
	mu        sync.Mutex
	calls     int
	responses [][]domain.RelationRecord
	errs      []error
	gate      chan struct{}
}

func (s *scriptedSource) LoadRelations(ctx context.Context) ([]domain.RelationRecord, error) {
	if s.gate != nil {
		<-s.gate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.calls
	s.calls++
	var err error
	if idx < len(s.errs) {
		err = s.errs[idx]
	}
	if idx >= len(s.responses) {
		idx = len(s.responses) - 1
	}
	if err != nil {
		return nil, err
	}
	return s.responses[idx], nil
}

func (s *scriptedSource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type recordingObserver struct {
	mu       sync.Mutex
	computed int
	errs     []error
	served   map[bool]int
	paths    map[string]int
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{served: map[bool]int{}, paths: map[string]int{}}
}

func (o *recordingObserver) OverlayComputed(_ time.Duration, _ int, _ int, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.computed++
	o.errs = append(o.errs, err)
}

func (o *recordingObserver) OverlayServed(cached bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.served[cached]++
}

func (o *recordingObserver) PathQueried(outcome string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.paths[outcome]++
}
