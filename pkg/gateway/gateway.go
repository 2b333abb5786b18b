// Package gateway is the single point through which project and user
// operations reach the remote GraphQL API.
//
// Every call attaches its own credential to its own request: anonymous reads
// and user creation carry the configured x-api-key, writes on behalf of a user
// carry that user's bearer token. Nothing about one call leaks into another, so
// a Gateway is safe for concurrent use.
package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/apex/log"
	"github.com/go-playground/validator/v10"

	"github.com/saturnines/project-gateway/pkg/appserver"
	"github.com/saturnines/project-gateway/pkg/auth"
	"github.com/saturnines/project-gateway/pkg/config"
	"github.com/saturnines/project-gateway/pkg/errors"
	"github.com/saturnines/project-gateway/pkg/transport/graphql"
)

// UserAgent is sent with every GraphQL request.
const UserAgent = "project-gateway"

var errTokenRequired = fmt.Errorf("token is required")

// ImageUploader turns an image path or data URL into a hosted URL.
type ImageUploader interface {
	UploadImage(ctx context.Context, path string) (*appserver.UploadResult, error)
}

// TokenFetcher retrieves the current session token document.
type TokenFetcher interface {
	FetchToken(ctx context.Context) (map[string]interface{}, error)
}

// Gateway forwards project and user operations to the GraphQL API.
type Gateway struct {
	endpoint string
	apiKey   string
	timeout  time.Duration

	doer     graphql.HTTPDoer
	client   *graphql.Client
	uploader ImageUploader
	tokens   TokenFetcher
	ops      *operations
	logger   *log.Entry
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithHTTPDoer sends every request through doer: GraphQL operations and, unless
// replaced by WithUploader or WithTokenFetcher, image upload and token fetch.
// The doer's own timeout applies instead of cfg.HTTP.Timeout.
func WithHTTPDoer(doer graphql.HTTPDoer) Option {
	return func(g *Gateway) {
		g.doer = doer
	}
}

// WithUploader swaps the image upload helper.
func WithUploader(u ImageUploader) Option {
	return func(g *Gateway) {
		g.uploader = u
	}
}

// WithTokenFetcher swaps the token fetch helper.
func WithTokenFetcher(f TokenFetcher) Option {
	return func(g *Gateway) {
		g.tokens = f
	}
}

// WithLogger replaces the module logger.
func WithLogger(entry *log.Entry) Option {
	return func(g *Gateway) {
		g.logger = entry
	}
}

type operations struct {
	projects      *graphql.Operation
	projectByID   *graphql.Operation
	createProject *graphql.Operation
	updateProject *graphql.Operation
	deleteProject *graphql.Operation
	createUser    *graphql.Operation
	user          *graphql.Operation
	userProjects  *graphql.Operation
}

func parseOperations() (*operations, error) {
	ops := &operations{}
	for _, d := range []struct {
		dst   **graphql.Operation
		query string
	}{
		{&ops.projects, projectsQuery},
		{&ops.projectByID, projectByIDQuery},
		{&ops.createProject, createProjectMutation},
		{&ops.updateProject, updateProjectMutation},
		{&ops.deleteProject, deleteProjectMutation},
		{&ops.createUser, createUserMutation},
		{&ops.user, userQuery},
		{&ops.userProjects, userProjectsQuery},
	} {
		op, err := graphql.ParseOperation(d.query)
		if err != nil {
			return nil, err
		}
		*d.dst = op
	}
	return ops, nil
}

// New creates a Gateway from a loaded config. The config is read once; later
// changes to cfg have no effect.
func New(cfg *config.Gateway, opts ...Option) (*Gateway, error) {
	if cfg == nil {
		return nil, errors.WrapError(fmt.Errorf("config is required"), errors.ErrConfiguration, "new gateway")
	}
	if cfg.GraphQL.Endpoint == "" {
		return nil, errors.WrapError(fmt.Errorf("graphql endpoint is required"), errors.ErrConfiguration, "new gateway")
	}

	ops, err := parseOperations()
	if err != nil {
		return nil, err
	}

	g := &Gateway{
		endpoint: cfg.GraphQL.Endpoint,
		apiKey:   cfg.GraphQL.APIKey,
		timeout:  cfg.HTTP.Timeout,
		ops:      ops,
		logger:   log.WithField("module", "gateway"),
	}
	if g.timeout <= 0 {
		g.timeout = config.DefaultHTTPTimeout
	}

	for _, opt := range opts {
		opt(g)
	}

	g.client = graphql.NewClient(nil, graphql.WithTimeout(g.timeout), graphql.WithHTTPDoer(g.doer))
	if g.uploader == nil || g.tokens == nil {
		server := appserver.New(cfg, g.doer)
		if g.uploader == nil {
			g.uploader = server
		}
		if g.tokens == nil {
			g.tokens = server
		}
	}
	return g, nil
}

// FetchToken returns the application server's token document unchanged.
func (g *Gateway) FetchToken(ctx context.Context) (map[string]interface{}, error) {
	return g.tokens.FetchToken(ctx)
}

func (g *Gateway) apiKeyAuth() auth.Handler {
	return auth.NewAPIKeyAuth(g.apiKey)
}

func bearerAuth(token string) auth.Handler {
	return auth.NewBearerAuth(token)
}

// builder validates p and turns it into a request for op.
func (g *Gateway) builder(op *graphql.Operation, p payload, h auth.Handler) (*graphql.Builder, error) {
	if err := validate.Struct(p); err != nil {
		return nil, errors.WrapError(validationError(err), errors.ErrValidation, op.Name)
	}

	vars := p.Variables()
	if err := op.CheckVariables(vars); err != nil {
		return nil, err
	}

	return graphql.NewBuilder(g.endpoint, op, vars, h, graphql.WithUserAgent(UserAgent)), nil
}

// send performs one round trip for op and decodes its data into out.
func (g *Gateway) send(ctx context.Context, op *graphql.Operation, p payload, h auth.Handler, out interface{}) error {
	b, err := g.builder(op, p, h)
	if err != nil {
		g.logger.WithField("operation", op.Name).WithError(err).Error("rejected request")
		return err
	}
	return g.execute(ctx, b, out)
}

func (g *Gateway) execute(ctx context.Context, b *graphql.Builder, out interface{}) error {
	start := time.Now()
	err := g.client.Do(ctx, b, out)

	entry := g.logger.WithFields(log.Fields{
		"operation":  b.OperationName,
		"request_id": b.RequestID,
		"duration":   time.Since(start),
	})
	if err != nil {
		entry.WithError(err).Error("graphql request failed")
		return err
	}
	entry.Debug("graphql request")
	return nil
}

// upload returns the hosted URL for image or ErrUploadFailed when the helper
// gives back nothing usable.
func (g *Gateway) upload(ctx context.Context, image, operation string) (string, error) {
	res, err := g.uploader.UploadImage(ctx, image)
	if err != nil {
		return "", err
	}
	if res == nil || res.URL == "" {
		err := errors.WrapError(fmt.Errorf("upload response has no url"), errors.ErrUploadFailed, operation)
		g.logger.WithField("operation", operation).WithError(err).Error("image upload")
		return "", err
	}
	return res.URL, nil
}

func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	fe := fieldErrs[0]
	return fmt.Errorf("field %s failed %q check", fe.Field(), fe.Tag())
}
