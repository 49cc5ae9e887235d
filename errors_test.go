// Copyright (c) 2018 Tim Heckman
//
// Use of this source code is governed by the MIT License that can be found in
// the LICENSE file at the root of this repository.

package slackpost

import (
	"testing"

	"github.com/pkg/errors"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		n string
		e *Error
		o string
	}{
		{
			n: "config",
			e: configMissing("post message", EnvToken),
			o: "post message: configuration missing: TOKEN must be set",
		},
		{
			n: "everything",
			e: &Error{
				Kind:       KindAPIRejected,
				Op:         "complete upload",
				Endpoint:   "https://slack.com/api/files.completeUploadExternal",
				StatusCode: 200,
				APIError:   "channel_not_found",
				Err:        errors.New("upload completion failed"),
			},
			o: "complete upload: api rejected (https://slack.com/api/files.completeUploadExternal): HTTP 200: channel_not_found: upload completion failed",
		},
		{
			n: "no_cause",
			e: &Error{Kind: KindNetworkFailure, Op: "upload bytes"},
			o: "upload bytes: network failure",
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.n, func(t *testing.T) {
			if s := tt.e.Error(); s != tt.o {
				t.Fatalf("Error() = %q, want %q", s, tt.o)
			}
		})
	}
}

func TestIsKind(t *testing.T) {
	base := &Error{Kind: KindMalformedResponse, Op: "test"}

	tests := []struct {
		n string
		e error
		k Kind
		o bool
	}{
		{n: "nil", k: KindMalformedResponse},
		{n: "plain_error", e: errors.New("nope"), k: KindMalformedResponse},
		{n: "match", e: base, k: KindMalformedResponse, o: true},
		{n: "mismatch", e: base, k: KindAPIRejected},
		{n: "wrapped", e: errors.Wrap(base, "outer"), k: KindMalformedResponse, o: true},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.n, func(t *testing.T) {
			if got := IsKind(tt.e, tt.k); got != tt.o {
				t.Fatalf("IsKind(%v, %s) = %t, want %t", tt.e, tt.k, got, tt.o)
			}
		})
	}
}

func TestError_Cause(t *testing.T) {
	cause := errors.New("connection refused")

	err := errors.Wrap(&Error{Kind: KindNetworkFailure, Op: "post message", Err: cause}, "outer")

	if c := errors.Cause(err); c != cause {
		t.Fatalf("errors.Cause() = %v, want %v", c, cause)
	}

	if !errors.Is(err, cause) {
		t.Fatal("errors.Is() = false, want true")
	}
}

func TestKind_String(t *testing.T) {
	if s := Kind(42).String(); s != "Kind(42)" {
		t.Fatalf("Kind(42).String() = %q, want %q", s, "Kind(42)")
	}

	if s := KindConfigMissing.String(); s != "configuration missing" {
		t.Fatalf("KindConfigMissing.String() = %q, want %q", s, "configuration missing")
	}
}
