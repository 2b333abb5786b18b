// Package appserver talks to the application server's REST endpoints: image
// upload and auth token retrieval.
package appserver

import (
	"context"
	"net/http"
	"time"

	"github.com/apex/log"

	"github.com/saturnines/project-gateway/pkg/config"
	"github.com/saturnines/project-gateway/pkg/transport/rest"
)

const (
	// UploadPath accepts {"path": ...} and answers with the hosted image url.
	UploadPath = "/api/upload"
	// TokenPath returns the signed-in user's session token document.
	TokenPath = "/api/auth/token"
)

// Client calls the application server.
type Client struct {
	baseURL string
	doer    rest.HTTPDoer
	logger  *log.Entry
}

// New creates a Client for cfg.Server.URL. A nil doer gets an *http.Client
// using cfg.HTTP.Timeout.
func New(cfg *config.Gateway, doer rest.HTTPDoer) *Client {
	if doer == nil {
		timeout := cfg.HTTP.Timeout
		if timeout <= 0 {
			timeout = config.DefaultHTTPTimeout
		}
		doer = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL: cfg.Server.URL,
		doer:    doer,
		logger:  log.WithField("module", "appserver"),
	}
}

// UploadResult is the decoded upload response. URL is empty when the server
// did not return a usable one.
type UploadResult struct {
	URL    string
	Fields map[string]interface{}
}

// UploadImage posts {"path": path} to the upload endpoint. The response shape
// is not validated: callers decide whether an empty URL is fatal.
func (c *Client) UploadImage(ctx context.Context, path string) (*UploadResult, error) {
	start := time.Now()

	var fields map[string]interface{}
	err := rest.DoJSON(ctx, c.doer, http.MethodPost, c.baseURL, UploadPath,
		map[string]string{"path": path}, &fields)
	if err != nil {
		c.logger.WithError(err).Error("image upload")
		return nil, err
	}

	result := &UploadResult{Fields: fields}
	if url, ok := fields["url"].(string); ok {
		result.URL = url
	}

	c.logger.WithFields(log.Fields{
		"has_url":  result.URL != "",
		"duration": time.Since(start),
	}).Debug("image upload")
	return result, nil
}

// FetchToken GETs the auth token endpoint and returns the body as decoded JSON.
func (c *Client) FetchToken(ctx context.Context) (map[string]interface{}, error) {
	var token map[string]interface{}
	if err := rest.DoJSON(ctx, c.doer, http.MethodGet, c.baseURL, TokenPath, nil, &token); err != nil {
		c.logger.WithError(err).Error("fetch token")
		return nil, err
	}
	return token, nil
}
