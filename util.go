// Copyright (c) 2018 Tim Heckman
//
// Use of this source code is governed by the MIT License that can be found in
// the LICENSE file at the root of this repository.

package slackpost

import (
	"bytes"
	"encoding/json"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
)

const (
	contentTypeJSON   = "application/json; charset=utf-8"
	contentTypeBinary = "application/octet-stream"

	// maxBodyRead is how much of a response body we are willing to hold in
	// memory. Slack API responses are a few hundred bytes, error pages from a
	// proxy in front of it can be bigger.
	maxBodyRead = 1 << 20
)

var userAgent = "slackpost/" + Version + " (+https://github.com/theckman/slackpost)"

func setUA(req *http.Request) {
	req.Header.Set("User-Agent", userAgent)
}

// setAuth sets the bearer token on the request. An empty token is a no-op, for
// requests to the upload URL which carries its own authorization.
func setAuth(req *http.Request, token string) {
	if token == "" {
		return
	}

	req.Header.Set("Authorization", "Bearer "+token)
}

func getReq(url, token string, val url.Values) (*http.Request, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	if len(val) > 0 {
		req.URL.RawQuery = val.Encode()
	}

	setUA(req)
	setAuth(req, token)

	return req, nil
}

func postJSONReq(url, token string, v interface{}) (*http.Request, error) {
	p, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal request body")
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(p))
	if err != nil {
		return nil, err
	}

	setUA(req)
	setAuth(req, token)
	req.Header.Set("Content-Type", contentTypeJSON)

	return req, nil
}

func postBytesReq(url string, p []byte) (*http.Request, error) {
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(p))
	if err != nil {
		return nil, err
	}

	setUA(req)
	req.Header.Set("Content-Type", contentTypeBinary)

	return req, nil
}

// readBody reads up to maxBodyRead bytes of the body, and discards the rest.
// It does not close the body.
func readBody(r io.Reader) ([]byte, error) {
	p, err := ioutil.ReadAll(io.LimitReader(r, maxBodyRead))
	if err != nil {
		return nil, err
	}

	// blank identifier to make errcheck happy
	_, _ = io.Copy(ioutil.Discard, r)

	return p, nil
}

func drainAndClose(resp *http.Response) {
	_, _ = io.Copy(ioutil.Discard, resp.Body)
	_ = resp.Body.Close()
}

func isSuccess(code int) bool { return code >= 200 && code <= 299 }

// redactURL strips the query and user info from u. Upload URLs are presigned,
// so their query string is a credential we don't want in errors or logs.
func redactURL(u *url.URL) string {
	r := url.URL{Scheme: u.Scheme, Host: u.Host, Path: u.Path}
	return r.String()
}
