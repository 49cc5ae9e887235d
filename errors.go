// Copyright (c) 2018 Tim Heckman
//
// Use of this source code is governed by the MIT License that can be found in
// the LICENSE file at the root of this repository.

package slackpost

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrNoImagesPrepared is returned by UploadImages when none of the images could
// be prepared for upload, so there was nothing to share to the channel.
var ErrNoImagesPrepared = errors.New("no images were successfully prepared for upload")

// Kind is the category of an *Error.
type Kind uint8

const (
	// KindConfigMissing means a required configuration value (token or
	// channel) was not set. No request was made.
	KindConfigMissing Kind = iota + 1

	// KindNetworkFailure is a transport level failure: the request could not
	// be sent, or the response could not be read.
	KindNetworkFailure

	// KindAPIRejected means Slack responded, but either the HTTP status was
	// not a success or the response's "ok" field was false.
	KindAPIRejected

	// KindMalformedResponse means the response body could not be decoded into
	// the structure we expected.
	KindMalformedResponse
)

func (k Kind) String() string {
	switch k {
	case KindConfigMissing:
		return "configuration missing"
	case KindNetworkFailure:
		return "network failure"
	case KindAPIRejected:
		return "api rejected"
	case KindMalformedResponse:
		return "malformed response"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Error is the error type returned by the Client. Fields other than Kind and
// Op are only set when they apply.
type Error struct {
	Kind Kind

	// Op is a short description of what we were doing, like "post message".
	Op string

	// Endpoint is the URL of the request that failed, without the query.
	Endpoint string

	// StatusCode and Body are from the HTTP response, if there was one.
	StatusCode int
	Body       string

	// APIError is the "error" field from the Slack response, if present.
	APIError string

	// Err is the underlying error.
	Err error
}

func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString(e.Op)
	sb.WriteString(": ")
	sb.WriteString(e.Kind.String())

	if e.Endpoint != "" {
		sb.WriteString(" (")
		sb.WriteString(e.Endpoint)
		sb.WriteString(")")
	}

	if e.StatusCode != 0 {
		sb.WriteString(": HTTP ")
		sb.WriteString(strconv.Itoa(e.StatusCode))
	}

	if e.APIError != "" {
		sb.WriteString(": ")
		sb.WriteString(e.APIError)
	}

	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}

	return sb.String()
}

// Cause satisfies the causer interface used by github.com/pkg/errors.
func (e *Error) Cause() error { return e.Err }

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Err }

// IsKind returns whether err, or any error it wraps, is an *Error of the given
// kind.
func IsKind(err error, k Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}

	return e.Kind == k
}

func configMissing(op, name string) *Error {
	return &Error{
		Kind: KindConfigMissing,
		Op:   op,
		Err:  errors.Errorf("%s must be set", name),
	}
}
