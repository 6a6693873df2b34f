// Package graph maintains an advance-prerequisite knowledge graph in
// Neo4j, built from both the career registry and parsed advance entries.
package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog/log"

	"lexicanum/internal/character"
)

// AdvanceNode is one advance destined for the graph, with its outgoing
// REQUIRES edges. Career and Rank may be empty for advances whose context
// could not be recovered from the surrounding text.
type AdvanceNode struct {
	Name          string
	Career        string
	Rank          string
	XPCost        int
	Prerequisites []string
}

// Builder upserts careers, advances, and prerequisite edges.
type Builder struct {
	driver neo4j.DriverWithContext
}

// NewBuilder creates a graph builder.
func NewBuilder(driver neo4j.DriverWithContext) *Builder {
	return &Builder{driver: driver}
}

// EnsureSchema creates constraints on the Neo4j database.
func (b *Builder) EnsureSchema(ctx context.Context) error {
	session := b.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	constraints := []string{
		"CREATE CONSTRAINT IF NOT EXISTS FOR (a:Advance) REQUIRE a.name IS UNIQUE",
		"CREATE CONSTRAINT IF NOT EXISTS FOR (c:Career) REQUIRE c.name IS UNIQUE",
	}
	for _, c := range constraints {
		if _, err := session.Run(ctx, c, nil); err != nil {
			return fmt.Errorf("create constraint: %w", err)
		}
	}

	log.Info().Msg("Graph schema ensured")
	return nil
}

// UpsertCareer stores a registry career with OFFERS edges to its advances
// and REQUIRES edges between them.
func (b *Builder) UpsertCareer(ctx context.Context, c *character.Career) error {
	session := b.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	if _, err := session.Run(ctx, `MERGE (c:Career {name: $name})`, map[string]any{"name": c.Name}); err != nil {
		return fmt.Errorf("upsert career %s: %w", c.Name, err)
	}

	for _, adv := range c.Advances() {
		_, err := session.Run(ctx, `
			MERGE (a:Advance {name: $name})
			SET a.xp_cost = $cost, a.page = $page
			WITH a
			MATCH (c:Career {name: $career})
			MERGE (c)-[:OFFERS]->(a)
		`, map[string]any{
			"name":   adv.Name,
			"cost":   adv.XPCost,
			"page":   adv.Page,
			"career": c.Name,
		})
		if err != nil {
			return fmt.Errorf("upsert advance %s: %w", adv.Name, err)
		}
		if err := b.linkPrerequisites(ctx, session, adv.Name, adv.Prerequisites); err != nil {
			return err
		}
	}

	log.Info().Str("career", c.Name).Int("advances", len(c.Advances())).Msg("Upserted career graph")
	return nil
}

// UpsertAdvances stores parsed advance entries and their prerequisite
// edges, attaching career/rank context where known.
func (b *Builder) UpsertAdvances(ctx context.Context, nodes []AdvanceNode) error {
	session := b.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	for _, node := range nodes {
		_, err := session.Run(ctx, `
			MERGE (a:Advance {name: $name})
			SET a.xp_cost = $cost, a.rank = $rank
		`, map[string]any{
			"name": node.Name,
			"cost": node.XPCost,
			"rank": node.Rank,
		})
		if err != nil {
			return fmt.Errorf("upsert advance %s: %w", node.Name, err)
		}
		if node.Career != "" {
			_, err := session.Run(ctx, `
				MERGE (c:Career {name: $career})
				WITH c
				MATCH (a:Advance {name: $name})
				MERGE (c)-[:OFFERS]->(a)
			`, map[string]any{"career": node.Career, "name": node.Name})
			if err != nil {
				return fmt.Errorf("link advance %s to career: %w", node.Name, err)
			}
		}
		if err := b.linkPrerequisites(ctx, session, node.Name, node.Prerequisites); err != nil {
			return err
		}
	}

	log.Info().Int("advances", len(nodes)).Msg("Upserted advance graph nodes")
	return nil
}

// linkPrerequisites merges REQUIRES edges. Prerequisites that are not
// themselves advances (characteristic thresholds, skills) still get nodes,
// so chains stay queryable; a failed edge is logged and skipped.
func (b *Builder) linkPrerequisites(ctx context.Context, session neo4j.SessionWithContext, name string, prerequisites []string) error {
	for _, prereq := range prerequisites {
		_, err := session.Run(ctx, `
			MATCH (a:Advance {name: $name})
			MERGE (p:Advance {name: $prereq})
			MERGE (a)-[:REQUIRES]->(p)
		`, map[string]any{"name": name, "prereq": prereq})
		if err != nil {
			log.Warn().Err(err).Str("advance", name).Str("prerequisite", prereq).Msg("Failed to link prerequisite")
		}
	}
	return nil
}
