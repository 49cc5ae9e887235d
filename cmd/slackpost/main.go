// Copyright (c) 2018 Tim Heckman
//
// Use of this source code is governed by the MIT License that can be found in
// the LICENSE file at the root of this repository.

// Command slackpost posts messages and uploads images to Slack. Credentials
// come from the TOKEN, CHANNEL, and CHANNEL_ID environment variables, a .env
// file in the working directory, or a YAML file given with --config.
package main

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/theckman/slackpost"
	"github.com/theckman/slackpost/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stderr).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

type app struct {
	configPath string
	logLevel   string

	logOut io.Writer
	logger *slog.Logger
}

func newRootCmd(logOut io.Writer) *cobra.Command {
	a := &app{logOut: logOut}

	root := &cobra.Command{
		Use:          "slackpost",
		Short:        "Post messages and upload images to Slack",
		Version:      slackpost.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setupLogger()
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "log level: debug, info, warn, error")

	root.AddCommand(a.runCmd())
	root.AddCommand(a.messageCmd())
	root.AddCommand(a.imageCmd())
	root.AddCommand(a.imagesCmd())
	root.AddCommand(a.authCmd())

	return root
}

func (a *app) setupLogger() error {
	var level slog.Level

	if err := level.UnmarshalText([]byte(a.logLevel)); err != nil {
		return errors.Wrapf(err, "invalid --log-level %q", a.logLevel)
	}

	a.logger = slog.New(slog.NewTextHandler(a.logOut, &slog.HandlerOptions{Level: level}))

	return nil
}

// client loads the configuration and returns a client built from it. Errors
// are logged here, so the commands only need to return them.
func (a *app) client() (*slackpost.Client, error) {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		a.logger.Error("failed to load configuration", "path", a.configPath, "err", err)
		return nil, err
	}

	c, err := slackpost.New(newHTTPClient(cfg.Timeout), cfg, a.logger)
	if err != nil {
		a.logger.Error("failed to create client", "err", err)
		return nil, err
	}

	return c, nil
}

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:          4,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}
}
