package graphstore

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"wildmenipedia/internal/contextutil"
	"wildmenipedia/internal/fusion"
	"wildmenipedia/internal/storage"
)

const defaultFalkorGraph = "wildmenipedia"

// FalkorDBGraph stores the knowledge graph in FalkorDB, spoken to over the
// Redis protocol. Nodes carry the label Entity; relations are typed REL with
// the predicate and statement metadata as properties.
type FalkorDBGraph struct {
	client    redis.UniversalClient
	graphName string
}

// NewFalkorDBGraph parses falkordb://[:password@]host:port/graph_name.
func NewFalkorDBGraph(connectionString string) (*FalkorDBGraph, error) {
	u, err := url.Parse(connectionString)
	if err != nil {
		return nil, fmt.Errorf("invalid connection string: %w", err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid connection string: missing host")
	}

	graphName := strings.TrimPrefix(u.Path, "/")
	if graphName == "" {
		graphName = defaultFalkorGraph
	}

	opts := &redis.Options{Addr: u.Host}
	if u.User != nil {
		opts.Username = u.User.Username()
		if pw, ok := u.User.Password(); ok {
			opts.Password = pw
		}
	}

	return NewFalkorDBGraphWithClient(redis.NewClient(opts), graphName), nil
}

// NewFalkorDBGraphWithClient uses an existing Redis client.
func NewFalkorDBGraphWithClient(client redis.UniversalClient, graphName string) *FalkorDBGraph {
	return &FalkorDBGraph{client: client, graphName: graphName}
}

// Neighbors returns up to limit outgoing relations of nodeID in creation order.
func (f *FalkorDBGraph) Neighbors(ctx context.Context, nodeID string, limit int) ([]fusion.Triple, error) {
	if limit <= 0 {
		return []fusion.Triple{}, nil
	}

	q := fmt.Sprintf(
		"MATCH (s:Entity {id: %s})-[r:REL]->(o:Entity) "+
			"RETURN s.id, r.predicate, o.id, r.rank, r.pred_code, r.object_label, r.predicate_label "+
			"ORDER BY id(r) LIMIT %d",
		cypherString(nodeID), limit)

	rows, err := f.query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query neighbors: %w", err)
	}

	triples := make([]storage.Triple, 0, len(rows))
	for _, row := range rows {
		if len(row) < 7 {
			continue
		}
		t := storage.Triple{
			Subject:        scalarString(row[0]),
			Predicate:      scalarString(row[1]),
			Object:         scalarString(row[2]),
			Rank:           scalarString(row[3]),
			PredCode:       scalarString(row[4]),
			ObjectLabel:    scalarString(row[5]),
			PredicateLabel: scalarString(row[6]),
		}
		if t.Subject == "" || t.Predicate == "" || t.Object == "" {
			continue
		}
		triples = append(triples, t)
	}
	return toFusion(triples), nil
}

// AddEntity merges the node and sets its label when one is given.
func (f *FalkorDBGraph) AddEntity(ctx context.Context, entity storage.Entity) error {
	if strings.TrimSpace(entity.ID) == "" {
		return fmt.Errorf("entity id is required")
	}

	q := fmt.Sprintf("MERGE (n:Entity {id: %s})", cypherString(entity.ID))
	var sets []string
	if entity.Label != "" {
		sets = append(sets, "n.label = "+cypherString(entity.Label))
	}
	if entity.Source != "" {
		sets = append(sets, "n.source = "+cypherString(entity.Source))
	}
	if len(sets) > 0 {
		q += " SET " + strings.Join(sets, ", ")
	}

	if _, err := f.query(ctx, q); err != nil {
		return fmt.Errorf("failed to add entity: %w", err)
	}
	return nil
}

// AddTriple merges both endpoints and the relation, then refreshes non-empty metadata.
func (f *FalkorDBGraph) AddTriple(ctx context.Context, t storage.Triple) error {
	if strings.TrimSpace(t.Subject) == "" || strings.TrimSpace(t.Predicate) == "" || strings.TrimSpace(t.Object) == "" {
		return storage.ErrInvalidTriple
	}

	q := fmt.Sprintf(
		"MERGE (s:Entity {id: %s}) MERGE (o:Entity {id: %s}) MERGE (s)-[r:REL {predicate: %s}]->(o)",
		cypherString(t.Subject), cypherString(t.Object), cypherString(t.Predicate))

	var sets []string
	for _, prop := range []struct{ key, val string }{
		{"rank", t.Rank},
		{"pred_code", t.PredCode},
		{"object_label", t.ObjectLabel},
		{"predicate_label", t.PredicateLabel},
	} {
		if prop.val != "" {
			sets = append(sets, fmt.Sprintf("r.%s = %s", prop.key, cypherString(prop.val)))
		}
	}
	if len(sets) > 0 {
		q += " SET " + strings.Join(sets, ", ")
	}

	if _, err := f.query(ctx, q); err != nil {
		return fmt.Errorf("failed to add triple: %w", err)
	}
	return nil
}

// Ping checks that the server is reachable.
func (f *FalkorDBGraph) Ping(ctx context.Context) error {
	return f.client.Ping(ctx).Err()
}

// Close closes the Redis client.
func (f *FalkorDBGraph) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

// query runs GRAPH.QUERY and returns the result rows. Write-only queries
// return no rows.
func (f *FalkorDBGraph) query(ctx context.Context, q string) ([][]any, error) {
	logger := contextutil.LoggerFromContext(ctx)
	logger.DebugContext(ctx, "falkordb query", "graph", f.graphName, "query", q)

	res, err := f.client.Do(ctx, "GRAPH.QUERY", f.graphName, q).Result()
	if err != nil {
		return nil, err
	}
	return parseRows(res)
}

// parseRows extracts rows from a verbose GRAPH.QUERY reply, which is either
// [header, rows, stats] or [stats] for queries without RETURN.
func parseRows(res any) ([][]any, error) {
	reply, ok := res.([]any)
	if !ok {
		return nil, fmt.Errorf("unexpected response type: %T", res)
	}

	switch len(reply) {
	case 1:
		return nil, nil
	case 3:
		rawRows, ok := reply[1].([]any)
		if !ok {
			return nil, fmt.Errorf("unexpected rows type: %T", reply[1])
		}
		rows := make([][]any, 0, len(rawRows))
		for _, r := range rawRows {
			if vals, ok := r.([]any); ok {
				rows = append(rows, vals)
			}
		}
		return rows, nil
	default:
		return nil, fmt.Errorf("unexpected response length: %d", len(reply))
	}
}

// scalarString renders a reply scalar as a string; nulls become "".
func scalarString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case int64:
		return strconv.FormatInt(x, 10)
	default:
		return fmt.Sprint(x)
	}
}

// cypherString quotes s as a Cypher string literal.
func cypherString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}
