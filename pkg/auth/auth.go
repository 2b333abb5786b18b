package auth

import (
	"fmt"
	"net/http"

	"github.com/saturnines/project-gateway/pkg/errors"
)

const (
	// APIKeyHeader carries the anonymous API key.
	APIKeyHeader = "x-api-key"
	// AuthorizationHeader carries the bearer token.
	AuthorizationHeader = "Authorization"
)

// Handler defines the interface for auth handlers.
// A handler is bound to a single outgoing request, never to a shared client.
type Handler interface {
	ApplyAuth(req *http.Request) error
}

// APIKeyAuth implements the Handler interface for API key authentication
type APIKeyAuth struct {
	HeaderName string // Header name, defaults to x-api-key
	Value      string // The actual API key value
}

// NewAPIKeyAuth creates a new API key authentication handler using the
// x-api-key header
func NewAPIKeyAuth(value string) *APIKeyAuth {
	return &APIKeyAuth{
		HeaderName: APIKeyHeader,
		Value:      value,
	}
}

// ApplyAuth sets the API key header and drops any Authorization header so the
// request carries exactly one credential.
func (a *APIKeyAuth) ApplyAuth(req *http.Request) error {
	if a.Value == "" {
		return errors.WrapError(
			fmt.Errorf("API key value is required"),
			errors.ErrConfiguration,
			"apply API key auth",
		)
	}

	header := a.HeaderName
	if header == "" {
		header = APIKeyHeader
	}

	req.Header.Del(AuthorizationHeader)
	req.Header.Set(header, a.Value)
	return nil
}

// String returns a string representation of this auth method
func (a *APIKeyAuth) String() string {
	header := a.HeaderName
	if header == "" {
		header = APIKeyHeader
	}
	return fmt.Sprintf("APIKeyAuth(header: %s)", header)
}
