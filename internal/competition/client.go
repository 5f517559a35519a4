package competition

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/clearbid/driver-backend/internal/model"
	"github.com/clearbid/driver-backend/pkg/workerpool"
)

// maxResponseBytes caps a solver response body. A settlement payload for a
// realistic batch stays far below this.
const maxResponseBytes = 4 << 20

// Client runs the solver competition over HTTP.
type Client struct {
	logger     *zap.Logger
	httpClient *http.Client
	endpoints  []Endpoint
	metrics    Metrics
	now        func() time.Time
}

// NewClient builds a competition client for the registered endpoints.
func NewClient(endpoints []Endpoint, metrics Metrics, logger *zap.Logger) *Client {
	return &Client{
		logger:     logger,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
		endpoints:  endpoints,
		metrics:    metrics,
		now:        time.Now,
	}
}

// Compete dispatches the auction to every registered solver and returns a
// stream of decoded solutions in arrival order, valid and invalid alike, each
// already tagged by validation. The channel closes once every solver has
// answered or the timeout fired; responses arriving later are abandoned, not
// awaited. One solver's failure never blocks or fails the others.
func (c *Client) Compete(ctx context.Context, auction model.Auction, timeout time.Duration) <-chan model.Solution {
	out := make(chan model.Solution)

	body, err := json.Marshal(newSolveRequest(auction))
	if err != nil {
		c.logger.Error("encode auction", zap.Int64("auction_id", auction.ID), zap.Error(err))
		close(out)
		return out
	}

	go func() {
		defer close(out)

		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		// Errors are contained per solver, so the pool never cancels early.
		_ = workerpool.Process(ctx, len(c.endpoints), c.endpoints, func(ctx context.Context, endpoint Endpoint) error {
			started := c.now()
			solution, err := c.solve(ctx, endpoint, auction, body)
			c.metrics.ObserveSolverRequest(endpoint.Name, err, started)
			if err != nil {
				c.logger.Warn("solver request failed",
					zap.Int64("auction_id", auction.ID),
					zap.String("solver", endpoint.Name),
					zap.Error(err),
				)
				return nil
			}
			if solution == nil {
				return nil
			}

			solution.InvalidReason = Validate(auction, *solution)
			c.metrics.ObserveSolution(endpoint.Name, solution.Valid())

			select {
			case out <- *solution:
			case <-ctx.Done():
			}
			return nil
		}, nil)
	}()

	return out
}

// solve performs one solver request. A nil solution with a nil error means
// the solver declined the auction.
func (c *Client) solve(ctx context.Context, endpoint Endpoint, auction model.Auction, body []byte) (*model.Solution, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNoContent:
		return nil, nil
	default:
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var wire solveResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&wire); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	solution, err := wire.toSolution(endpoint.Name, auction.ID, c.now())
	if err != nil {
		return nil, fmt.Errorf("decode solution: %w", err)
	}
	return &solution, nil
}
