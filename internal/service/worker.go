package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/vanshika/herograph/backend/internal/domain"
)

// DefaultBatchSize is the number of relation rows sent per write query.
const DefaultBatchSize = 500

// TaskError accumulates multiple errors produced during bulk ingestion.
type TaskError struct {
	Errors []error
}

func (e *TaskError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := "multiple errors:"
	for _, err := range e.Errors {
		msg += " " + err.Error() + ";"
	}
	return msg
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (e *TaskError) Unwrap() []error {
	return e.Errors
}

func (e *TaskError) append(err error) {
	if err == nil {
		return
	}
	e.Errors = append(e.Errors, err)
}

func (e *TaskError) asError() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}

// RelationWriter persists a batch of relation records. offset is the position
// of the batch's first record in the full stream.
type RelationWriter interface {
	UpsertRelations(ctx context.Context, offset int, records []domain.RelationRecord) (int, error)
}

// BulkIngestor pushes large relation datasets to the graph database in
// batches using a worker pool.
type BulkIngestor struct {
	writer    RelationWriter
	workers   int
	batchSize int
}

// NewBulkIngestor creates a new BulkIngestor instance with the provided concurrency.
func NewBulkIngestor(writer RelationWriter, workers, batchSize int) *BulkIngestor {
	if workers <= 0 {
		workers = 4
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &BulkIngestor{
		writer:    writer,
		workers:   workers,
		batchSize: batchSize,
	}
}

// IngestRelations writes records concurrently and returns how many rows the
// writer reported as stored. Batches that fail are collected in a TaskError;
// the remaining batches are still written.
func (bi *BulkIngestor) IngestRelations(ctx context.Context, records []domain.RelationRecord) (int, error) {
	batches := (len(records) + bi.batchSize - 1) / bi.batchSize
	var written atomic.Int64

	err := bi.run(ctx, batches, func(idx int) error {
		lo := idx * bi.batchSize
		hi := lo + bi.batchSize
		if hi > len(records) {
			hi = len(records)
		}
		n, err := bi.writer.UpsertRelations(ctx, lo, records[lo:hi])
		written.Add(int64(n))
		return err
	})
	return int(written.Load()), err
}

func (bi *BulkIngestor) run(ctx context.Context, total int, workerFn func(idx int) error) error {
	if total == 0 {
		return nil
	}
	indexCh := make(chan int)
	errCh := make(chan error, total)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for idx := range indexCh {
			if err := workerFn(idx); err != nil {
				select {
				case errCh <- err:
				case <-ctx.Done():
					return
				}
			}
		}
	}

	for i := 0; i < bi.workers; i++ {
		wg.Add(1)
		go worker()
	}

Loop:
	for i := 0; i < total; i++ {
		select {
		case indexCh <- i:
		case <-ctx.Done():
			break Loop
		}
	}
	close(indexCh)
	wg.Wait()
	close(errCh)

	if err := ctx.Err(); err != nil {
		return err
	}

	var taskErr TaskError
	for err := range errCh {
		if err == nil {
			continue
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		taskErr.append(err)
	}
	return taskErr.asError()
}
