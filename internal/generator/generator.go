package generator

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/vanshika/herograph/backend/internal/domain"
)

// Dataset contains the generated character and relation records.
type Dataset struct {
	Characters []domain.CharacterRecord
	Relations  []domain.RelationRecord
}

// Generator produces synthetic relation data in the shape of the CSV inputs.
type Generator struct {
	cfg           Config
	rand          *rand.Rand
	nameFragments nameFragments
}

// New returns a configured Generator instance.
func New(cfg Config) *Generator {
	if cfg.NumCharacters <= 1 {
		cfg.NumCharacters = DefaultConfig().NumCharacters
	}
	if cfg.NumRelations <= 0 {
		cfg.NumRelations = DefaultConfig().NumRelations
	}
	if cfg.Factions <= 0 {
		cfg.Factions = DefaultConfig().Factions
	}
	if cfg.FactionAffinity <= 0 || cfg.FactionAffinity > 1 {
		cfg.FactionAffinity = DefaultConfig().FactionAffinity
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return &Generator{
		cfg:           cfg,
		rand:          rand.New(rand.NewSource(cfg.Seed)),
		nameFragments: defaultNameFragments(),
	}
}

// Generate synthesises characters and relations. It respects context cancellation.
func (g *Generator) Generate(ctx context.Context) (Dataset, error) {
	characters := make([]domain.CharacterRecord, 0, g.cfg.NumCharacters)
	factions := make([][]int, g.cfg.Factions)
	used := make(map[string]int, g.cfg.NumCharacters)

	for i := 0; i < g.cfg.NumCharacters; i++ {
		if err := ctx.Err(); err != nil {
			return Dataset{}, err
		}

		alias := g.randomAlias()
		used[alias]++
		if n := used[alias]; n > 1 {
			alias = fmt.Sprintf("%s %d", alias, n)
		}

		characters = append(characters, domain.CharacterRecord{
			ID:      alias,
			Name:    g.randomCivilianName(),
			Status:  pick(g.rand, g.nameFragments.statuses),
			Species: pick(g.rand, g.nameFragments.species),
		})
		faction := i % g.cfg.Factions
		factions[faction] = append(factions[faction], i)
	}

	relations := make([]domain.RelationRecord, 0, g.cfg.NumRelations)
	for i := 0; i < g.cfg.NumRelations; i++ {
		if err := ctx.Err(); err != nil {
			return Dataset{}, err
		}

		subject := g.rand.Intn(len(characters))
		object := g.rand.Intn(len(characters))
		if g.rand.Float64() < g.cfg.FactionAffinity {
			members := factions[subject%g.cfg.Factions]
			object = members[g.rand.Intn(len(members))]
		}
		if object == subject {
			object = (object + 1) % len(characters)
		}

		relations = append(relations, domain.RelationRecord{
			Subject:  characters[subject].ID,
			Object:   characters[object].ID,
			Relation: pick(g.rand, g.nameFragments.relations),
		})
	}

	return Dataset{Characters: characters, Relations: relations}, nil
}

func (g *Generator) randomAlias() string {
	return fmt.Sprintf("%s %s", pick(g.rand, g.nameFragments.aliasPrefix), pick(g.rand, g.nameFragments.aliasNoun))
}

func (g *Generator) randomCivilianName() string {
	return fmt.Sprintf("%s %s", pick(g.rand, g.nameFragments.first), pick(g.rand, g.nameFragments.last))
}

func pick(r *rand.Rand, options []string) string {
	return options[r.Intn(len(options))]
}

type nameFragments struct {
	aliasPrefix []string
	aliasNoun   []string
	first       []string
	last        []string
	statuses    []string
	species     []string
	relations   []string
}

func defaultNameFragments() nameFragments {
	return nameFragments{
		aliasPrefix: []string{"Captain", "Doctor", "Black", "Iron", "Scarlet", "Star", "Winter", "Ant", "Moon", "Silver", "Crimson", "Night"},
		aliasNoun:   []string{"Widow", "Falcon", "Knight", "Witch", "Soldier", "Hawk", "Panther", "Lord", "Storm", "Wasp", "Shield", "Comet"},
		first:       []string{"Tony", "Steve", "Natasha", "Bruce", "Wanda", "Peter", "Carol", "Sam", "Bucky", "Hope", "Scott", "Shuri"},
		last:        []string{"Stark", "Rogers", "Romanoff", "Banner", "Maximoff", "Parker", "Danvers", "Wilson", "Barnes", "Van Dyne", "Lang", "Udaku"},
		statuses:    []string{"alive", "deceased", "unknown"},
		species:     []string{"human", "asgardian", "android", "kree", "mutant", "wakandan"},
		relations:   []string{"ally", "friend", "enemy", "mentor", "sibling", "teammate", "rival", "spouse"},
	}
}
