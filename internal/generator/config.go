package generator

// Config drives the synthetic relation dataset generator.
type Config struct {
	NumCharacters int
	NumRelations  int
	// Factions splits the cast into groups that mostly relate among
	// themselves, which gives community detection something to find.
	Factions int
	// FactionAffinity is the chance a relation stays inside the subject's faction.
	FactionAffinity float64
	Seed            int64
}

// DefaultConfig returns settings sized for local runs of the server.
func DefaultConfig() Config {
	return Config{
		NumCharacters:   120,
		NumRelations:    600,
		Factions:        6,
		FactionAffinity: 0.75,
		Seed:            42,
	}
}
