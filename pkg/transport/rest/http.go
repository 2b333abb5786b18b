package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/saturnines/project-gateway/pkg/errors"
)

// HTTPDoer is a minimal interface for HTTP clients
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// RequestHelper sends body (JSON, may be nil) to baseURL+endpoint.
func RequestHelper(
	ctx context.Context,
	doer HTTPDoer,
	method string,
	baseURL string,
	endpoint string,
	body []byte,
) (*http.Response, error) {
	url := baseURL + endpoint

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrHTTPRequest, "failed to create request")
	}

	// If body is present, assume JSON content type
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := doer.Do(req)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrHTTPRequest, fmt.Sprintf("%s %s", method, endpoint))
	}
	return resp, nil
}

// DoJSON sends in (if non-nil) as a JSON body and decodes a 2xx JSON response
// into out.
func DoJSON(
	ctx context.Context,
	doer HTTPDoer,
	method, baseURL, endpoint string,
	in, out interface{},
) error {
	var body []byte
	if in != nil {
		var err error
		if body, err = json.Marshal(in); err != nil {
			return errors.WrapError(err, errors.ErrHTTPRequest, "failed to encode request body")
		}
	}

	resp, err := RequestHelper(ctx, doer, method, baseURL, endpoint, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapError(err, errors.ErrHTTPResponse, "failed to read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		kind := errors.ErrHTTPResponse
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			kind = errors.ErrAuthentication
		}
		return errors.WrapError(
			fmt.Errorf("%s %s returned status %d", method, endpoint, resp.StatusCode),
			kind,
			"unexpected status",
		)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return errors.WrapError(err, errors.ErrHTTPResponse, "failed to unmarshal JSON")
	}
	return nil
}
