// Copyright (c) 2018 Tim Heckman
//
// Use of this source code is governed by the MIT License that can be found in
// the LICENSE file at the root of this repository.

package slackpost

import (
	"context"

	"github.com/pkg/errors"
	"github.com/slack-go/slack"
)

const pathAuthTest = "/api/auth.test"

// AuthTest checks the token against auth.test, and returns who it belongs to.
// It's meant to be called before the other operations, to fail early with a
// clear error when the token is wrong.
func (c *Client) AuthTest(ctx context.Context) (*slack.AuthTestResponse, error) {
	const op = "auth test"

	if c.cfg.Token == "" {
		return nil, configMissing(op, EnvToken)
	}

	api := slack.New(
		c.cfg.Token,
		slack.OptionHTTPClient(c.c),
		slack.OptionAPIURL(c.endpoint+"/api/"),
	)

	resp, err := api.AuthTestContext(ctx)
	if err != nil {
		e := &Error{Op: op, Endpoint: c.endpoint + pathAuthTest, Err: err}

		var (
			ser slack.SlackErrorResponse
			sce slack.StatusCodeError
			rle *slack.RateLimitedError
		)

		switch {
		case errors.As(err, &ser):
			e.Kind, e.APIError = KindAPIRejected, ser.Err
		case errors.As(err, &sce):
			e.Kind, e.StatusCode = KindAPIRejected, sce.Code
		case errors.As(err, &rle):
			e.Kind = KindAPIRejected
		default:
			e.Kind = KindNetworkFailure
		}

		c.logger.Error("auth test failed", "err", e)

		return nil, e
	}

	c.logger.Info("authenticated",
		"team", resp.Team,
		"user", resp.User,
		"user_id", resp.UserID,
	)

	return resp, nil
}
