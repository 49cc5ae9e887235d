// Copyright (c) 2018 Tim Heckman
//
// Use of this source code is governed by the MIT License that can be found in
// the LICENSE file at the root of this repository.

package slackpost

import "context"

type outgoingMessage struct {
	Channel string `json:"channel"`
	Text    string `json:"text"`
}

// PostMessage sends text to channel using chat.postMessage. If channel is empty
// the Channel from the Config is used.
//
// Success is judged on the HTTP status alone: any 2xx response is a success,
// and the "ok" field of the body is not looked at. Slack answers most logical
// failures (like not_in_channel) with a 200, so those are not detected here.
// The upload operations do check "ok".
//
// A non-2xx response is logged, and also returned as a KindAPIRejected error
// carrying the status and the response body, so callers can tell a failed send
// from a sent one.
func (c *Client) PostMessage(ctx context.Context, channel, text string) error {
	const op = "post message"

	if c.cfg.Token == "" {
		return configMissing(op, EnvToken)
	}

	if channel == "" {
		channel = c.cfg.Channel
	}

	if channel == "" {
		return configMissing(op, EnvChannel)
	}

	endpoint := c.endpoint + pathPostMessage

	resp, err := c.postJSON(ctx, endpoint, outgoingMessage{Channel: channel, Text: text})
	if err != nil {
		return &Error{Kind: KindNetworkFailure, Op: op, Endpoint: endpoint, Err: err}
	}

	defer drainAndClose(resp)

	if !isSuccess(resp.StatusCode) {
		e := statusError(op, endpoint, resp)

		c.logger.Error("failed to send message",
			"channel", channel,
			"status", resp.Status,
			"body", e.Body,
			"err", e.Err,
		)

		return e
	}

	c.logger.Info("message sent", "channel", channel, "text", text)

	return nil
}
