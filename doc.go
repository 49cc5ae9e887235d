// Copyright (c) 2018 Tim Heckman
//
// Use of this source code is governed by the MIT License that can be found in
// the LICENSE file at the root of this repository.

// Package slackpost is a small client for posting text messages and uploading
// images to a Slack workspace using the Slack Web API and a bearer token.
//
// Uploads use the external upload flow Slack introduced to replace
// files.upload: first ask for an upload URL (files.getUploadURLExternal), then
// send the raw bytes to that URL, and lastly finalize the upload and share it
// to a channel (files.completeUploadExternal). The batch variant performs the
// first two steps for every image and finalizes them together, so they show up
// as one message in the channel.
//
// All operations are synchronous. Nothing is retried: an error is returned to
// the caller as soon as it happens, with the one exception of a batch upload,
// where an image that cannot be prepared is logged and skipped.
//
// Errors returned by this package are *Error values carrying a Kind, so that
// callers can tell a missing credential from a network problem or a rejection
// by Slack. Use IsKind to check.
package slackpost
