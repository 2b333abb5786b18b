package graphql

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vektah/gqlparser/v2/gqlerror"

	"github.com/saturnines/project-gateway/pkg/errors"
)

// HTTPDoer is the minimal interface satisfied by *http.Client.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client executes GraphQL operations.
type Client struct {
	doer HTTPDoer
}

// NewClient wraps an HTTPDoer. A nil doer gets a plain *http.Client.
func NewClient(doer HTTPDoer, opts ...ClientOption) *Client {
	if doer == nil {
		doer = &http.Client{Timeout: 30 * time.Second}
	}
	c := &Client{doer: doer}
	c.ApplyOptions(opts...)
	return c
}

// Response is the standard GraphQL response envelope.
type Response struct {
	Data   json.RawMessage `json:"data,omitempty"`
	Errors gqlerror.List   `json:"errors,omitempty"`
}

// ResponseError reports the errors list returned by the server.
type ResponseError struct {
	Operation string
	Errors    gqlerror.List
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Operation, e.Errors.Error())
}

// Unwrap lets callers match errors.ErrGraphQL.
func (e *ResponseError) Unwrap() error {
	return errors.ErrGraphQL
}

// Execute sends a built request.
func (c *Client) Execute(req *http.Request) (*http.Response, error) {
	return c.doer.Do(req)
}

// Do builds, sends and decodes one operation. The "data" member is unmarshalled
// into out when out is non-nil.
func (c *Client) Do(ctx context.Context, b *Builder, out interface{}) error {
	req, err := b.Build(ctx)
	if err != nil {
		return err
	}

	resp, err := c.Execute(req)
	if err != nil {
		return errors.WrapError(err, errors.ErrHTTPRequest, b.OperationName)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapError(err, errors.ErrHTTPResponse, "failed to read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		kind := errors.ErrHTTPResponse
		// rejected credential
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			kind = errors.ErrAuthentication
		}
		return errors.WrapError(
			fmt.Errorf("status %d: %s", resp.StatusCode, truncate(body, 512)),
			kind,
			b.OperationName,
		)
	}

	var envelope Response
	if err := json.Unmarshal(body, &envelope); err != nil {
		return errors.WrapError(err, errors.ErrHTTPResponse, "failed to unmarshal GraphQL response")
	}

	if len(envelope.Errors) > 0 {
		return &ResponseError{Operation: b.OperationName, Errors: envelope.Errors}
	}

	if out == nil || len(envelope.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return errors.WrapError(err, errors.ErrHTTPResponse, "failed to unmarshal GraphQL data")
	}
	return nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
