package neo4j

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/config"

	appcfg "github.com/supplygraph-labs/graph-analytics-backend/config"
)

// Runner executes a Cypher statement and returns the fully buffered result.
// Repositories depend on this interface so tests can substitute canned
// records for a live database.
type Runner interface {
	Run(ctx context.Context, cypher string, params map[string]any) (*neo4j.EagerResult, error)
}

// Client wraps the official driver with the target database name.
type Client struct {
	driver   neo4j.DriverWithContext
	database string
}

// NewClient creates a driver for the configured instance and verifies
// connectivity before returning.
func NewClient(ctx context.Context, cfg appcfg.Neo4jConfig) (*Client, error) {
	driver, err := neo4j.NewDriverWithContext(
		cfg.URI,
		neo4j.BasicAuth(cfg.Username, cfg.Password, ""),
		func(c *config.Config) {
			c.MaxConnectionPoolSize = 50
			c.MaxConnectionLifetime = 5 * time.Minute
			c.ConnectionAcquisitionTimeout = 30 * time.Second
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("failed to verify neo4j connectivity: %w", err)
	}

	return &Client{driver: driver, database: cfg.Database}, nil
}

// Run executes a Cypher statement through ExecuteQuery, which manages
// sessions and transactions internally. Suitable for reads and writes.
func (c *Client) Run(ctx context.Context, cypher string, params map[string]any) (*neo4j.EagerResult, error) {
	result, err := neo4j.ExecuteQuery(
		ctx,
		c.driver,
		cypher,
		params,
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(c.database),
	)
	if err != nil {
		return nil, fmt.Errorf("neo4j query failed: %w", err)
	}

	return result, nil
}

// Ping checks database reachability, used by the health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	return c.driver.VerifyConnectivity(ctx)
}

// Close releases the underlying driver.
func (c *Client) Close(ctx context.Context) error {
	return c.driver.Close(ctx)
}
