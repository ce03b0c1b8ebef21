package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/herograph/backend/internal/domain"
)

type stubWriter struct {
	mu      sync.Mutex
	offsets []int
	failAt  int
	err     error
}

func (s *stubWriter) UpsertRelations(_ context.Context, offset int, records []domain.RelationRecord) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil && offset == s.failAt {
		return 0, s.err
	}
	s.offsets = append(s.offsets, offset)
	return len(records), nil
}

func relations(n int) []domain.RelationRecord {
	out := make([]domain.RelationRecord, n)
	for i := range out {
		out[i] = domain.RelationRecord{Subject: "S", Object: "O", Relation: "r"}
	}
	return out
}

func TestBulkIngestor_WritesEveryBatch(t *testing.T) {
	writer := &stubWriter{failAt: -1}
	ingestor := NewBulkIngestor(writer, 3, 500)

	written, err := ingestor.IngestRelations(context.Background(), relations(1050))
	require.NoError(t, err)
	assert.Equal(t, 1050, written)

	sort.Ints(writer.offsets)
	assert.Equal(t, []int{0, 500, 1000}, writer.offsets)
}

func TestBulkIngestor_CollectsBatchErrors(t *testing.T) {
	boom := errors.New("write failed")
	writer := &stubWriter{failAt: 2, err: boom}
	ingestor := NewBulkIngestor(writer, 2, 2)

	written, err := ingestor.IngestRelations(context.Background(), relations(6))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 4, written)

	var taskErr *TaskError
	require.ErrorAs(t, err, &taskErr)
	assert.Len(t, taskErr.Errors, 1)
}

func TestBulkIngestor_EmptyInput(t *testing.T) {
	ingestor := NewBulkIngestor(&stubWriter{failAt: -1}, 0, 0)
	written, err := ingestor.IngestRelations(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, written)
}

func TestBulkIngestor_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewBulkIngestor(&stubWriter{failAt: -1}, 2, 1).IngestRelations(ctx, relations(10))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTaskError_Message(t *testing.T) {
	var te TaskError
	assert.Equal(t, "no errors", te.Error())
	te.append(errors.New("a"))
	assert.Equal(t, "a", te.Error())
	te.append(errors.New("b"))
	assert.Equal(t, "multiple errors: a; b;", te.Error())
}
