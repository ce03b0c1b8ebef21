package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vanshika/herograph/backend/internal/dataset"
	"github.com/vanshika/herograph/backend/internal/domain"
	"github.com/vanshika/herograph/backend/internal/graph"
)

// CharacterService answers path and lookup queries over the labeled graph and
// the raw character records. Both are immutable after construction, so the
// service needs no locking.
type CharacterService struct {
	labeled  *graph.Store
	index    *dataset.Index
	observer Observer
}

// NewCharacterService wires the labeled graph and the lookup index.
func NewCharacterService(labeled *graph.Store, index *dataset.Index) *CharacterService {
	if labeled == nil {
		labeled = graph.NewStore(1)
	}
	if index == nil {
		index = dataset.NewIndex(nil, nil)
	}
	return &CharacterService{labeled: labeled, index: index, observer: nopObserver{}}
}

// SetObserver installs a lifecycle observer.
func (s *CharacterService) SetObserver(o Observer) {
	if o != nil {
		s.observer = o
	}
}

// ShortestPath returns the hop-minimal path between two character names.
func (s *CharacterService) ShortestPath(ctx context.Context, start, end string) (domain.PathResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.PathResult{}, err
	}

	path, err := s.labeled.ShortestPath(strings.TrimSpace(start), strings.TrimSpace(end))
	switch {
	case err == nil:
		s.observer.PathQueried(PathFound)
		return path, nil
	case errors.Is(err, domain.ErrNotFound):
		s.observer.PathQueried(PathNotFound)
	case errors.Is(err, domain.ErrNoPath):
		s.observer.PathQueried(PathNoRoute)
	}
	return domain.PathResult{}, fmt.Errorf("shortest path: %w", err)
}

// Names returns every character name of the labeled graph, sorted.
func (s *CharacterService) Names() []string {
	return s.labeled.Names()
}

// Nodes returns the labeled graph nodes in id order.
func (s *CharacterService) Nodes() []domain.NodeRef {
	return s.labeled.Nodes()
}

// Edges returns the labeled graph edges.
func (s *CharacterService) Edges() []domain.LabeledEdge {
	return s.labeled.Edges()
}

// Lookup finds a character record by id or name. Characters that only appear
// in relation records are returned with their labeled graph id.
func (s *CharacterService) Lookup(key string) (domain.CharacterRecord, error) {
	key = strings.TrimSpace(key)
	if rec, ok := s.index.Find(key); ok {
		return rec, nil
	}
	if id, ok := s.labeled.ID(key); ok {
		return domain.CharacterRecord{ID: strconv.Itoa(id), Name: key}, nil
	}
	return domain.CharacterRecord{}, fmt.Errorf("%w: %q", domain.ErrNotFound, key)
}

// Expand returns the raw one-hop neighbourhood of a character.
func (s *CharacterService) Expand(key string) domain.Neighborhood {
	return s.index.Expand(strings.TrimSpace(key))
}

// Stats reports the sizes of the loaded data.
func (s *CharacterService) Stats() (nodes, edges, characters int) {
	return s.labeled.NodeCount(), s.labeled.EdgeCount(), s.index.CharacterCount()
}
