// Package firestore wraps the Cloud Firestore client used as the document store.
package firestore

import (
	"context"
	"fmt"

	fs "cloud.google.com/go/firestore"
	"google.golang.org/api/option"
)

// Config holds connection parameters for the Firestore store.
type Config struct {
	ProjectID       string
	DatabaseID      string // empty means the default database
	CredentialsFile string // empty means Application Default Credentials
}

// Client is the Firestore store handle shared by the repositories.
type Client struct {
	client    *fs.Client
	projectID string
}

// NewClient connects to Firestore.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("project id is required")
	}

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	var (
		client *fs.Client
		err    error
	)
	if cfg.DatabaseID != "" {
		client, err = fs.NewClientWithDatabase(ctx, cfg.ProjectID, cfg.DatabaseID, opts...)
	} else {
		client, err = fs.NewClient(ctx, cfg.ProjectID, opts...)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}

	return &Client{client: client, projectID: cfg.ProjectID}, nil
}

// Collection returns a reference to a named collection.
func (c *Client) Collection(name string) *fs.CollectionRef {
	return c.client.Collection(name)
}

// ProjectID returns the connected project id.
func (c *Client) ProjectID() string {
	return c.projectID
}

// Close shuts down the client.
func (c *Client) Close() error {
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("close firestore client: %w", err)
	}
	return nil
}

// Count runs an aggregate count over a collection.
func (c *Client) Count(ctx context.Context, collection string) (int64, error) {
	result, err := c.client.Collection(collection).NewAggregationQuery().WithCount("all").Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", collection, err)
	}
	return countFromAggregation(result)
}
