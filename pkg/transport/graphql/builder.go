package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/saturnines/project-gateway/pkg/auth"
	"github.com/saturnines/project-gateway/pkg/errors"
)

// RequestIDHeader correlates a request with gateway logs.
const RequestIDHeader = "X-Request-Id"

// Builder constructs one GraphQL request.
// Credentials live on the Builder, so concurrent calls never share auth state.
type Builder struct {
	Endpoint      string
	OperationName string
	Query         string
	Variables     map[string]interface{}
	Headers       map[string]string
	AuthHandler   auth.Handler
	RequestID     string
}

// requestBody is the POST payload understood by GraphQL servers.
type requestBody struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName,omitempty"`
	Variables     map[string]interface{} `json:"variables"`
}

// NewBuilder sets up a GraphQL Builder for a parsed operation.
// Endpoint is the full URL of your GraphQL endpoint.
func NewBuilder(
	endpoint string,
	op *Operation,
	variables map[string]interface{},
	authHandler auth.Handler,
	opts ...BuilderOption,
) *Builder {
	b := &Builder{
		Endpoint:    endpoint,
		Variables:   variables,
		AuthHandler: authHandler,
	}
	if op != nil {
		b.OperationName = op.Name
		b.Query = op.Query
	}
	b.ApplyOptions(opts...)
	return b
}

// Build creates the *http.Request with JSON body.
func (b *Builder) Build(ctx context.Context) (*http.Request, error) {
	vars := b.Variables
	if vars == nil {
		vars = map[string]interface{}{}
	}

	buf, err := json.Marshal(requestBody{
		Query:         b.Query,
		OperationName: b.OperationName,
		Variables:     vars,
	})
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrHTTPRequest, "encode GraphQL request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.Endpoint, bytes.NewReader(buf))
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrHTTPRequest, "create GraphQL request")
	}

	for k, v := range b.Headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if b.RequestID == "" {
		b.RequestID = uuid.NewString()
	}
	req.Header.Set(RequestIDHeader, b.RequestID)

	if b.AuthHandler != nil {
		if err := b.AuthHandler.ApplyAuth(req); err != nil {
			return nil, err
		}
	}

	return req, nil
}

// clone copies the builder with its own variables map.
func (b *Builder) clone() *Builder {
	c := *b
	c.RequestID = ""
	c.Variables = make(map[string]interface{}, len(b.Variables))
	for k, v := range b.Variables {
		c.Variables[k] = v
	}
	return &c
}
