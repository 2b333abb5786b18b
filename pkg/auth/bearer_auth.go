package auth

import (
	"fmt"
	"net/http"

	"github.com/saturnines/project-gateway/pkg/errors"
)

// BearerAuth authenticates a request on behalf of one signed-in user.
type BearerAuth struct {
	Token string
}

// NewBearerAuth returns a handler for token.
func NewBearerAuth(token string) *BearerAuth {
	return &BearerAuth{Token: token}
}

// ApplyAuth sets "Authorization: Bearer <token>" and removes any api key, so
// the request is made as the user and nobody else.
func (b *BearerAuth) ApplyAuth(req *http.Request) error {
	if b.Token == "" {
		return errors.WrapError(fmt.Errorf("token is required"), errors.ErrConfiguration, "apply bearer auth")
	}

	req.Header.Del(APIKeyHeader)
	req.Header.Set(AuthorizationHeader, "Bearer "+b.Token)
	return nil
}

// String never includes the token.
func (b *BearerAuth) String() string {
	return "BearerAuth(token: [REDACTED])"
}
