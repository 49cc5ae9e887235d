// Copyright (c) 2018 Tim Heckman
//
// Use of this source code is governed by the MIT License that can be found in
// the LICENSE file at the root of this repository.

package main

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/theckman/slackpost"
)

const (
	defaultRunFile  = "image.png"
	defaultRunTitle = "My Amazing Image"
	defaultRunText  = "Hello, world!"
)

// runCmd sends a greeting to CHANNEL, and then uploads a file to CHANNEL_ID.
func (a *app) runCmd() *cobra.Command {
	var file, title, text string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Send a message, then upload a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}

			if err := c.PostMessage(cmd.Context(), "", text); err != nil {
				return err
			}

			img, err := slackpost.OpenImage(file, title)
			if err != nil {
				a.logger.Error("failed to read file", "path", file, "err", err)
				return err
			}

			return c.UploadImage(cmd.Context(), img)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", defaultRunFile, "file to upload")
	cmd.Flags().StringVarP(&title, "title", "t", defaultRunTitle, "title of the uploaded file")
	cmd.Flags().StringVar(&text, "text", defaultRunText, "message to send")

	return cmd
}

func (a *app) messageCmd() *cobra.Command {
	var channel string

	cmd := &cobra.Command{
		Use:   "message TEXT...",
		Short: "Send a text message",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}

			return c.PostMessage(cmd.Context(), channel, strings.Join(args, " "))
		},
	}

	cmd.Flags().StringVar(&channel, "channel", "", "channel to post to (default $CHANNEL)")

	return cmd
}

func (a *app) imageCmd() *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "image FILE",
		Short: "Upload a single image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := slackpost.OpenImage(args[0], title)
			if err != nil {
				a.logger.Error("failed to read file", "path", args[0], "err", err)
				return err
			}

			c, err := a.client()
			if err != nil {
				return err
			}

			return c.UploadImage(cmd.Context(), img)
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "title of the image (default the file name)")

	return cmd
}

func (a *app) imagesCmd() *cobra.Command {
	var titles []string

	cmd := &cobra.Command{
		Use:   "images FILE...",
		Short: "Upload images and share them together",
		Long: "Upload images and share them together in one message. Images that " +
			"fail to upload are skipped, the command fails only if none succeed.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(titles) > 0 && len(titles) != len(args) {
				return errors.Errorf("got %d titles for %d files", len(titles), len(args))
			}

			images := make([]slackpost.Image, 0, len(args))

			for i, path := range args {
				var title string
				if len(titles) > 0 {
					title = titles[i]
				}

				img, err := slackpost.OpenImage(path, title)
				if err != nil {
					a.logger.Error("failed to read file", "path", path, "err", err)
					return err
				}

				images = append(images, img)
			}

			c, err := a.client()
			if err != nil {
				return err
			}

			_, err = c.UploadImages(cmd.Context(), images...)

			return err
		},
	}

	cmd.Flags().StringSliceVarP(&titles, "title", "t", nil, "titles, one per file in order (default the file names)")

	return cmd
}

func (a *app) authCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "auth",
		Short: "Check the token with auth.test",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}

			resp, err := c.AuthTest(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "team=%s user=%s user_id=%s\n", resp.Team, resp.User, resp.UserID)

			return nil
		},
	}
}
