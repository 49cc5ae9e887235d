// Copyright (c) 2018 Tim Heckman
//
// Use of this source code is governed by the MIT License that can be found in
// the LICENSE file at the root of this repository.

package slackpost

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/slack-go/slack"
	"golang.org/x/net/context/ctxhttp"
)

// Version is the version of this package.
const Version = "0.1.0"

const (
	pathPostMessage    = "/api/chat.postMessage"
	pathGetUploadURL   = "/api/files.getUploadURLExternal"
	pathCompleteUpload = "/api/files.completeUploadExternal"
)

// Client posts messages and uploads images to Slack. It holds no state beyond
// its configuration, and is safe for concurrent use if the *http.Client is.
type Client struct {
	cfg Config

	c        *http.Client
	endpoint string
	logger   *slog.Logger
}

// New returns a new *Client using c to make requests. The configuration is not
// validated here, each operation checks for the values it needs when it's
// called.
//
// The logger is used for the diagnostics emitted on success and failure of
// each operation. If it's nil, nothing is logged.
func New(c *http.Client, cfg Config, logger *slog.Logger) (*Client, error) {
	if c == nil {
		return nil, errors.New("must provide an http client")
	}

	endpoint := strings.TrimRight(cfg.APIURL, "/")
	if endpoint == "" {
		endpoint = DefaultAPIURL
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse API URL %q", endpoint)
	}

	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, errors.Errorf("API URL %q must be an absolute http or https URL", endpoint)
	}

	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	client := &Client{
		cfg:      cfg,
		c:        c,
		endpoint: endpoint,
		logger:   logger,
	}

	return client, nil
}

func (c *Client) get(ctx context.Context, url string, val url.Values) (*http.Response, error) {
	req, err := getReq(url, c.cfg.Token, val)
	if err != nil {
		return nil, err
	}

	return ctxhttp.Do(ctx, c.c, req)
}

func (c *Client) postJSON(ctx context.Context, url string, v interface{}) (*http.Response, error) {
	req, err := postJSONReq(url, c.cfg.Token, v)
	if err != nil {
		return nil, err
	}

	return ctxhttp.Do(ctx, c.c, req)
}

func (c *Client) postBytes(ctx context.Context, url string, p []byte) (*http.Response, error) {
	req, err := postBytesReq(url, p)
	if err != nil {
		return nil, err
	}

	return ctxhttp.Do(ctx, c.c, req)
}

// apiResult is the common shape of the Web API responses we care about. Only
// the fields for the upload URL request are listed beyond the envelope.
type apiResult struct {
	slack.SlackResponse

	UploadURL string `json:"upload_url"`
	FileID    string `json:"file_id"`
}

// decodeResult reads and closes the response body, and decodes it into an
// apiResult. A non-2xx status is a KindAPIRejected error, regardless of what the
// body says. The caller is responsible for checking the "ok" field.
func (c *Client) decodeResult(op, endpoint string, resp *http.Response) (apiResult, error) {
	defer func() { _ = resp.Body.Close() }()

	body, err := readBody(resp.Body)
	if err != nil {
		return apiResult{}, &Error{
			Kind:       KindNetworkFailure,
			Op:         op,
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Err:        errors.Wrap(err, "failed to read response body"),
		}
	}

	if !isSuccess(resp.StatusCode) {
		return apiResult{}, &Error{
			Kind:       KindAPIRejected,
			Op:         op,
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Body:       string(body),
			Err:        errors.Errorf("unexpected HTTP response status: %s", resp.Status),
		}
	}

	var res apiResult

	if err := json.Unmarshal(body, &res); err != nil {
		return apiResult{}, &Error{
			Kind:       KindMalformedResponse,
			Op:         op,
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Body:       string(body),
			Err:        errors.Wrap(err, "failed to unmarshal JSON"),
		}
	}

	if w := res.ResponseMetadata.Warnings; len(w) > 0 {
		c.logger.Warn("slack returned warnings", "op", op, "warnings", strings.Join(w, ","))
	}

	return res, nil
}

// statusError is the KindAPIRejected error for a non-2xx resp. As much of the
// body as could be read is kept; a failed read is recorded on Err.
func statusError(op, endpoint string, resp *http.Response) *Error {
	e := &Error{
		Kind:       KindAPIRejected,
		Op:         op,
		Endpoint:   endpoint,
		StatusCode: resp.StatusCode,
		Err:        errors.Errorf("unexpected HTTP response status: %s", resp.Status),
	}

	body, err := readBody(resp.Body)
	if err != nil {
		e.Err = errors.Wrapf(err, "unexpected HTTP response status: %s: failed to read response body", resp.Status)
		return e
	}

	e.Body = string(body)

	return e
}
