package graphdb

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNeo4jClientRequiresURI(t *testing.T) {
	client, err := NewNeo4jClient(context.Background(), Options{})
	require.ErrorIs(t, err, ErrMissingURI)
	assert.Nil(t, client)
}

func TestMemoryClientQueuesPerMode(t *testing.T) {
	ctx := context.Background()
	client := NewMemoryClient()
	client.PushReadResult(Result{Records: []Record{{"name": "A"}}})
	client.PushWriteResult(Result{Counters: Counters{RelationshipsCreated: 2}})

	write, err := client.ExecuteWrite(ctx, "CREATE", map[string]any{"rows": 2})
	require.NoError(t, err)
	assert.Equal(t, 2, write.Counters.RelationshipsCreated)

	read, err := client.ExecuteRead(ctx, "MATCH", nil)
	require.NoError(t, err)
	require.Len(t, read.Records, 1)
	assert.Equal(t, "A", read.Records[0]["name"])

	empty, err := client.ExecuteRead(ctx, "MATCH", nil)
	require.NoError(t, err)
	assert.Empty(t, empty.Records)

	require.Len(t, client.WriteCalls(), 1)
	assert.Equal(t, map[string]any{"rows": 2}, client.WriteCalls()[0].Params)
	assert.Len(t, client.ReadCalls(), 2)
}

func TestMemoryClientResponderAndErrors(t *testing.T) {
	ctx := context.Background()
	client := NewMemoryClient().WithResponder(func(cypher string, _ map[string]any) (Result, error) {
		return Result{Records: []Record{{"query": cypher}}}, nil
	})

	res, err := client.ExecuteRead(ctx, "RETURN 1", nil)
	require.NoError(t, err)
	assert.Equal(t, "RETURN 1", res.Records[0]["query"])

	boom := errors.New("boom")
	client.WithError(boom)
	_, err = client.ExecuteWrite(ctx, "CREATE", nil)
	require.ErrorIs(t, err, boom)

	client.WithConnectivityError(boom)
	require.ErrorIs(t, client.VerifyConnectivity(ctx), boom)

	require.NoError(t, client.Close(ctx))
	assert.True(t, client.Closed())
}

func TestMemoryClientCopiesParams(t *testing.T) {
	client := NewMemoryClient()
	params := map[string]any{"name": "A"}
	_, err := client.ExecuteWrite(context.Background(), "MERGE", params)
	require.NoError(t, err)

	params["name"] = "B"
	assert.Equal(t, "A", client.WriteCalls()[0].Params["name"])
}
