package hardcover

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/blackwell-systems/hardcoverctl/internal/config"
	"github.com/blackwell-systems/hardcoverctl/internal/cover"
	"github.com/tidwall/gjson"
)

// DefaultEndpoint is the Hardcover GraphQL API endpoint.
const DefaultEndpoint = "https://api.hardcover.app/v1/graphql"

// Options tune engine behavior that depends on product intent rather than
// API shape.
type Options struct {
	// SelfHealGoals enables recomputing a book-metric goal's progress from
	// the authoritative finished-read count when the server lags behind.
	SelfHealGoals bool
	// CountRereads counts each finished read as a separate completion when
	// self-healing, instead of counting unique books.
	CountRereads bool
}

// Client is an authenticated Hardcover GraphQL API client.
//
// Every fetch operation is total: failures below the public boundary are
// logged and absorbed, and the caller gets an empty result. The only
// exceptions are the entity-listing helpers, which surface a typed
// "nothing found" error after a forced refresh.
type Client struct {
	token    string
	endpoint string
	opts     Options
	http     *http.Client
	log      *slog.Logger

	covers   *cover.Fetcher
	books    *entityCache
	releases *entityCache
}

// New creates a Client with the given normalized token. If endpoint is
// empty, the public Hardcover API is used.
func New(token, endpoint string, opts Options, covers *cover.Fetcher, log *slog.Logger) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if covers == nil {
		covers = cover.NewFetcher(log)
	}
	return &Client{
		token:    token,
		endpoint: endpoint,
		opts:     opts,
		http:     &http.Client{Timeout: 30 * time.Second},
		log:      log,
		covers:   covers,
		books:    newEntityCache(entityCacheTTL),
		releases: newEntityCache(entityCacheTTL),
	}
}

// Authenticated reports whether a credential is configured. The host uses
// this together with result presence to pick its refresh interval.
func (c *Client) Authenticated() bool {
	return c.token != ""
}

// execute runs one GraphQL operation and returns the raw bytes of the
// response's "data" object. A non-empty "errors" array is a failure even on
// HTTP 200; the messages are logged individually and wrapped in a
// *GraphQLError.
func (c *Client) execute(ctx context.Context, query string, variables map[string]any) ([]byte, error) {
	if c.token == "" {
		return nil, ErrUnauthenticated
	}

	payload := map[string]any{"query": query}
	if variables != nil {
		payload["variables"] = variables
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("hardcover API error %d", resp.StatusCode)
	}

	if errsArr := gjson.GetBytes(raw, "errors"); errsArr.IsArray() && len(errsArr.Array()) > 0 {
		gqlErr := &GraphQLError{}
		for _, e := range errsArr.Array() {
			msg := e.Get("message").String()
			gqlErr.Messages = append(gqlErr.Messages, msg)
			c.log.Warn("graphql error", "message", msg)
		}
		return nil, gqlErr
	}

	data := gjson.GetBytes(raw, "data")
	if !data.Exists() {
		return nil, fmt.Errorf("response has no data object")
	}
	return []byte(data.Raw), nil
}

// fetchUserID resolves the authenticated user's numeric id via { me }.
// Returns 0 when the id cannot be resolved.
func (c *Client) fetchUserID(ctx context.Context) int {
	data, err := c.execute(ctx, `{ me { id username } }`, nil)
	if err != nil {
		c.log.Warn("resolving user id", "error", err)
		return 0
	}
	id := gjson.GetBytes(data, "me.0.id")
	if !id.Exists() {
		return 0
	}
	return int(id.Int())
}

// RefreshUsername resolves the authenticated username. Returns "" on any
// failure so the caller can clear a stale stored value.
func (c *Client) RefreshUsername(ctx context.Context) string {
	data, err := c.execute(ctx, `{ me { id username } }`, nil)
	if err != nil {
		return ""
	}
	return config.NormalizeUsername(gjson.GetBytes(data, "me.0.username").String())
}
