// Copyright (c) 2018 Tim Heckman
//
// Use of this source code is governed by the MIT License that can be found in
// the LICENSE file at the root of this repository.

package slackpost

import (
	"context"
	"io"
	"io/ioutil"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
)

// Image is a file to upload. The Client does not keep a reference to Data once
// the call it was passed to returns.
type Image struct {
	Data []byte

	// Filename is the name Slack stores the file under.
	Filename string

	// Title is displayed with the file in the channel.
	Title string
}

// ReadImage reads all of r into an Image.
func ReadImage(r io.Reader, filename, title string) (Image, error) {
	p, err := ioutil.ReadAll(r)
	if err != nil {
		return Image{}, errors.Wrapf(err, "failed to read %q", filename)
	}

	return Image{Data: p, Filename: filename, Title: title}, nil
}

// OpenImage reads the file at path into an Image named after the base of the
// path. An empty title is replaced with that name.
func OpenImage(path, title string) (Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return Image{}, errors.WithStack(err)
	}

	defer func() { _ = f.Close() }()

	name := filepath.Base(path)

	if title == "" {
		title = name
	}

	return ReadImage(f, name, title)
}

// FileRef is an uploaded file that has not been shared yet, as sent in the
// files.completeUploadExternal request.
type FileRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// SkippedImage is an image UploadImages could not prepare, and left out.
type SkippedImage struct {
	Filename string
	Err      error
}

// BatchResult describes what UploadImages did. Files are in the same order as
// the images given to it.
type BatchResult struct {
	Files   []FileRef
	Skipped []SkippedImage
}

type uploadTicket struct {
	uploadURL string
	fileID    string
}

type completeUploadRequest struct {
	Files     []FileRef `json:"files"`
	ChannelID string    `json:"channel_id"`
}

func (c *Client) requireUploadConfig(op string) error {
	if c.cfg.Token == "" {
		return configMissing(op, EnvToken)
	}

	if c.cfg.ChannelID == "" {
		return configMissing(op, EnvChannelID)
	}

	return nil
}

// UploadImage uploads img and shares it to the configured ChannelID. This is
// done in three requests, and a failure at any step stops the upload:
//
// 	1. ask Slack for an upload URL and file ID (files.getUploadURLExternal)
// 	2. send the bytes to the upload URL
// 	3. complete the upload, sharing the file (files.completeUploadExternal)
func (c *Client) UploadImage(ctx context.Context, img Image) error {
	const op = "upload image"

	if err := c.requireUploadConfig(op); err != nil {
		return err
	}

	t, err := c.prepareUpload(ctx, img)
	if err != nil {
		c.logger.Error("failed to upload image", "filename", img.Filename, "err", err)
		return err
	}

	if err := c.completeUpload(ctx, []FileRef{{ID: t.fileID, Title: img.Title}}); err != nil {
		c.logger.Error("failed to share image", "filename", img.Filename, "err", err)
		return err
	}

	c.logger.Info("image sent",
		"filename", img.Filename,
		"file_id", t.fileID,
		"channel_id", c.cfg.ChannelID,
	)

	return nil
}

// UploadImages uploads each image, and then shares all of them in a single
// completion request. Images are handled one at a time, in order.
//
// An image whose upload URL request or byte upload fails because of the network
// or a rejection from Slack is logged, recorded in BatchResult.Skipped, and left
// out of the completion; it is not retried. Any other error stops the batch.
//
// If no image could be prepared ErrNoImagesPrepared is returned, and the
// completion request is not made.
func (c *Client) UploadImages(ctx context.Context, images ...Image) (BatchResult, error) {
	const op = "upload images"

	if err := c.requireUploadConfig(op); err != nil {
		return BatchResult{}, err
	}

	var res BatchResult

	for _, img := range images {
		t, err := c.prepareUpload(ctx, img)
		if err != nil {
			if ctx.Err() != nil {
				return res, errors.Wrap(ctx.Err(), "batch upload interrupted")
			}

			if !IsKind(err, KindNetworkFailure) && !IsKind(err, KindAPIRejected) {
				return res, err
			}

			c.logger.Warn("skipping image", "filename", img.Filename, "err", err)

			res.Skipped = append(res.Skipped, SkippedImage{Filename: img.Filename, Err: err})

			continue
		}

		res.Files = append(res.Files, FileRef{ID: t.fileID, Title: img.Title})
	}

	if len(res.Files) == 0 {
		c.logger.Error("no images were successfully prepared for upload", "skipped", len(res.Skipped))
		return res, ErrNoImagesPrepared
	}

	if err := c.completeUpload(ctx, res.Files); err != nil {
		c.logger.Error("failed to share images", "count", len(res.Files), "err", err)
		return res, err
	}

	c.logger.Info("images sent",
		"count", len(res.Files),
		"skipped", len(res.Skipped),
		"channel_id", c.cfg.ChannelID,
	)

	return res, nil
}

// prepareUpload does the first two steps of an upload, returning the ticket
// whose file ID is ready to be completed.
func (c *Client) prepareUpload(ctx context.Context, img Image) (uploadTicket, error) {
	t, err := c.getUploadURL(ctx, img.Filename, len(img.Data))
	if err != nil {
		return uploadTicket{}, err
	}

	if err := c.putBytes(ctx, t.uploadURL, img.Data); err != nil {
		return uploadTicket{}, err
	}

	return t, nil
}

func (c *Client) getUploadURL(ctx context.Context, filename string, length int) (uploadTicket, error) {
	const op = "request upload URL"

	endpoint := c.endpoint + pathGetUploadURL

	v := url.Values{
		"filename": []string{filename},
		"length":   []string{strconv.Itoa(length)},
	}

	resp, err := c.get(ctx, endpoint, v)
	if err != nil {
		return uploadTicket{}, &Error{Kind: KindNetworkFailure, Op: op, Endpoint: endpoint, Err: err}
	}

	res, err := c.decodeResult(op, endpoint, resp)
	if err != nil {
		return uploadTicket{}, err
	}

	if !res.Ok {
		return uploadTicket{}, &Error{
			Kind:       KindAPIRejected,
			Op:         op,
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			APIError:   res.Error,
			Err:        errors.New("upload URL request rejected"),
		}
	}

	if res.UploadURL == "" || res.FileID == "" {
		return uploadTicket{}, &Error{
			Kind:       KindMalformedResponse,
			Op:         op,
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Err:        errors.New("response is missing upload_url or file_id"),
		}
	}

	return uploadTicket{uploadURL: res.UploadURL, fileID: res.FileID}, nil
}

// putBytes sends p to the upload URL. The URL is presigned, so no token is
// added. A non-2xx response fails the upload.
func (c *Client) putBytes(ctx context.Context, uploadURL string, p []byte) error {
	const op = "upload bytes"

	u, err := url.Parse(uploadURL)
	if err != nil || !u.IsAbs() {
		if err == nil {
			err = errors.New("not an absolute URL")
		}

		return &Error{
			Kind: KindMalformedResponse,
			Op:   op,
			Err:  errors.Wrap(err, "invalid upload_url"),
		}
	}

	endpoint := redactURL(u)

	resp, err := c.postBytes(ctx, uploadURL, p)
	if err != nil {
		// the *url.Error from the client includes the full URL
		return &Error{Kind: KindNetworkFailure, Op: op, Endpoint: endpoint, Err: unwrapURLError(err)}
	}

	defer drainAndClose(resp)

	if !isSuccess(resp.StatusCode) {
		return statusError(op, endpoint, resp)
	}

	return nil
}

func unwrapURLError(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return ue.Err
	}

	return err
}

func (c *Client) completeUpload(ctx context.Context, files []FileRef) error {
	const op = "complete upload"

	endpoint := c.endpoint + pathCompleteUpload

	body := completeUploadRequest{
		Files:     files,
		ChannelID: c.cfg.ChannelID,
	}

	resp, err := c.postJSON(ctx, endpoint, body)
	if err != nil {
		return &Error{Kind: KindNetworkFailure, Op: op, Endpoint: endpoint, Err: err}
	}

	res, err := c.decodeResult(op, endpoint, resp)
	if err != nil {
		return err
	}

	if !res.Ok {
		return &Error{
			Kind:       KindAPIRejected,
			Op:         op,
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			APIError:   res.Error,
			Err:        errors.New("upload completion failed"),
		}
	}

	return nil
}
