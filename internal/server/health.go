package server

import (
	"context"
	"errors"

	"github.com/vanshika/herograph/backend/internal/graphdb"
)

// HealthService defines behaviour for readiness probes.
type HealthService interface {
	Probe(ctx context.Context) error
}

// ErrNoGraphData indicates the labeled graph was built without any node.
var ErrNoGraphData = errors.New("no character data loaded")

// GraphHealthService reports degraded when the relation store is unreachable
// or no character data was loaded at startup.
type GraphHealthService struct {
	// Client is optional; it is only set when records come from Neo4j.
	Client graphdb.Client
	// Nodes returns the labeled graph size.
	Nodes func() int
}

// Probe implements the HealthService interface.
func (s GraphHealthService) Probe(ctx context.Context) error {
	if s.Client != nil {
		if err := s.Client.VerifyConnectivity(ctx); err != nil {
			return err
		}
	}
	if s.Nodes != nil && s.Nodes() == 0 {
		return ErrNoGraphData
	}
	return nil
}
