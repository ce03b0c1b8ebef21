// Package graphdb wraps the Bolt driver used to keep raw character relations
// in Neo4j (or any openCypher endpoint speaking Bolt).
package graphdb

import (
	"context"
	"errors"
)

// Client is the minimal contract the repository needs from a graph database.
type Client interface {
	ExecuteWrite(ctx context.Context, cypher string, params map[string]any) (Result, error)
	ExecuteRead(ctx context.Context, cypher string, params map[string]any) (Result, error)
	VerifyConnectivity(ctx context.Context) error
	Close(ctx context.Context) error
}

// Result is a fully consumed query response.
type Result struct {
	Records []Record
	// Counters reports write statistics when the driver provides them.
	Counters Counters
}

// Counters summarises the effect of a write query.
type Counters struct {
	NodesCreated         int
	RelationshipsCreated int
	RelationshipsDeleted int
}

// Record groups the named values of one result row.
type Record map[string]any

// Options configures a client implementation.
type Options struct {
	URI            string
	Database       string
	Username       string
	Password       string
	MaxConnections int
}

// ErrMissingURI indicates the graph URI is not provided.
var ErrMissingURI = errors.New("graph URI is required")
