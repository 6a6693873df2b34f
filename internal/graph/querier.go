package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Querier answers prerequisite questions against the graph.
type Querier struct {
	driver neo4j.DriverWithContext
}

// NewQuerier creates a graph querier.
func NewQuerier(driver neo4j.DriverWithContext) *Querier {
	return &Querier{driver: driver}
}

// PrerequisiteChain returns every advance reachable through REQUIRES edges
// from the named advance, i.e. the full chain a character must own first.
func (q *Querier) PrerequisiteChain(ctx context.Context, advanceName string) ([]string, error) {
	session := q.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (a:Advance {name: $name})-[:REQUIRES*]->(p:Advance)
		RETURN DISTINCT p.name AS name
	`, map[string]any{"name": advanceName})
	if err != nil {
		return nil, fmt.Errorf("query prerequisite chain: %w", err)
	}

	var chain []string
	for result.Next(ctx) {
		if name, ok := result.Record().Get("name"); ok {
			if s, ok := name.(string); ok {
				chain = append(chain, s)
			}
		}
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("read prerequisite chain: %w", err)
	}
	return chain, nil
}

// CareerAdvances lists the advances a career offers in the graph.
func (q *Querier) CareerAdvances(ctx context.Context, careerName string) ([]string, error) {
	session := q.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (:Career {name: $name})-[:OFFERS]->(a:Advance)
		RETURN a.name AS name ORDER BY name
	`, map[string]any{"name": careerName})
	if err != nil {
		return nil, fmt.Errorf("query career advances: %w", err)
	}

	var advances []string
	for result.Next(ctx) {
		if name, ok := result.Record().Get("name"); ok {
			if s, ok := name.(string); ok {
				advances = append(advances, s)
			}
		}
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("read career advances: %w", err)
	}
	return advances, nil
}
