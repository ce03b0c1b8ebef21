package domain

import "errors"

var (
	// ErrNotFound indicates a referenced character does not exist in the graph.
	ErrNotFound = errors.New("character not found")
	// ErrNoPath indicates both endpoints exist but lie in different components.
	ErrNoPath = errors.New("no path between characters")
	// ErrEmptyGraph indicates no valid edges were loaded.
	ErrEmptyGraph = errors.New("graph is empty")
)
