// Package neo4j loads processed graphs into a Neo4j database.
package neo4j

import (
	"context"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/kgraph-cli/internal/model"
)

// Config holds Neo4j connection settings.
type Config struct {
	URI         string        `yaml:"uri" mapstructure:"uri"`
	User        string        `yaml:"user" mapstructure:"user"`
	Password    string        `yaml:"password" mapstructure:"password"`
	Database    string        `yaml:"database" mapstructure:"database"`
	Timeout     time.Duration `yaml:"timeout" mapstructure:"timeout"`
	MaxPoolSize int           `yaml:"max_pool_size" mapstructure:"max_pool_size"`
	BatchSize   int           `yaml:"batch_size" mapstructure:"batch_size"`
}

// Client wraps a Neo4j driver scoped to one database.
type Client struct {
	driver    neo4j.DriverWithContext
	database  string
	batchSize int
}

// New connects to Neo4j and verifies connectivity before returning.
func New(ctx context.Context, cfg Config) (*Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	maxPool := cfg.MaxPoolSize
	if maxPool <= 0 {
		maxPool = 50
	}
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 1000
	}

	user := cfg.User
	if user == "" {
		user = "neo4j"
	}

	auth := neo4j.BasicAuth(user, cfg.Password, "")
	driver, err := neo4j.NewDriverWithContext(cfg.URI, auth, func(c *neo4j.Config) {
		c.MaxConnectionPoolSize = maxPool
		c.SocketConnectTimeout = timeout
	})
	if err != nil {
		return nil, eris.Wrap(err, "neo4j: init driver")
	}

	vctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := driver.VerifyConnectivity(vctx); err != nil {
		_ = driver.Close(ctx)
		return nil, eris.Wrap(err, "neo4j: verify connectivity")
	}

	return &Client{driver: driver, database: cfg.Database, batchSize: batchSize}, nil
}

// Close releases the underlying driver.
func (c *Client) Close(ctx context.Context) error {
	if c == nil || c.driver == nil {
		return nil
	}
	err := c.driver.Close(ctx)
	c.driver = nil
	return err
}

// ImportStats reports what an import wrote.
type ImportStats struct {
	Entities      int `json:"entities"`
	Relationships int `json:"relationships"`
}

// ImportGraph loads triples into Neo4j as (:Entity)-[:RELATES_TO]->(:Entity).
// Entities are merged by name, relationships by (subject, predicate, object).
// With clearFirst set, previously imported Entity nodes are removed.
func (c *Client) ImportGraph(ctx context.Context, triples []model.Triple, clearFirst bool) (ImportStats, error) {
	session := c.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: c.database,
	})
	defer session.Close(ctx)

	// Best-effort schema init.
	for _, q := range []string{
		`CREATE CONSTRAINT entity_name_unique IF NOT EXISTS FOR (e:Entity) REQUIRE e.name IS UNIQUE`,
		`CREATE INDEX relates_to_predicate IF NOT EXISTS FOR ()-[r:RELATES_TO]-() ON (r.predicate)`,
	} {
		if res, err := session.Run(ctx, q, nil); err != nil {
			zap.L().Warn("neo4j: schema init failed (continuing)", zap.Error(err))
		} else {
			_, _ = res.Consume(ctx)
		}
	}

	if clearFirst {
		if res, err := session.Run(ctx, `MATCH (e:Entity) DETACH DELETE e`, nil); err != nil {
			return ImportStats{}, eris.Wrap(err, "neo4j: clear graph")
		} else if _, err := res.Consume(ctx); err != nil {
			return ImportStats{}, eris.Wrap(err, "neo4j: clear graph consume")
		}
	}

	entities := entityRows(triples)
	rels := relationshipRows(triples)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		for _, chunk := range batches(entities, c.batchSize) {
			res, err := tx.Run(ctx, `
UNWIND $entities AS e
MERGE (n:Entity {name: e.name})
`, map[string]any{"entities": chunk})
			if err != nil {
				return nil, err
			}
			if _, err := res.Consume(ctx); err != nil {
				return nil, err
			}
		}

		for _, chunk := range batches(rels, c.batchSize) {
			res, err := tx.Run(ctx, `
UNWIND $rels AS r
MATCH (s:Entity {name: r.subject})
MATCH (o:Entity {name: r.object})
MERGE (s)-[rel:RELATES_TO {predicate: r.predicate}]->(o)
SET rel.inferred = r.inferred,
    rel.chunk = r.chunk,
    rel.confidence = r.confidence
`, map[string]any{"rels": chunk})
			if err != nil {
				return nil, err
			}
			if _, err := res.Consume(ctx); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		return ImportStats{}, eris.Wrap(err, "neo4j: import graph")
	}

	stats := ImportStats{Entities: len(entities), Relationships: len(rels)}
	zap.L().Info("neo4j: import complete",
		zap.Int("entities", stats.Entities),
		zap.Int("relationships", stats.Relationships),
	)
	return stats, nil
}

func entityRows(triples []model.Triple) []map[string]any {
	seen := make(map[string]struct{})
	var rows []map[string]any
	add := func(name string) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		rows = append(rows, map[string]any{"name": name})
	}
	for _, t := range triples {
		add(t.Subject)
		add(t.Object)
	}
	return rows
}

func relationshipRows(triples []model.Triple) []map[string]any {
	rows := make([]map[string]any, 0, len(triples))
	for _, t := range triples {
		rows = append(rows, map[string]any{
			"subject":    t.Subject,
			"predicate":  t.Predicate,
			"object":     t.Object,
			"inferred":   t.Inferred,
			"chunk":      t.Chunk,
			"confidence": t.Confidence,
		})
	}
	return rows
}

func batches(rows []map[string]any, size int) [][]map[string]any {
	if len(rows) == 0 {
		return nil
	}
	var out [][]map[string]any
	for start := 0; start < len(rows); start += size {
		end := start + size
		if end > len(rows) {
			end = len(rows)
		}
		out = append(out, rows[start:end])
	}
	return out
}
