package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/newtron-network/mistconv/pkg/api"
	"github.com/newtron-network/mistconv/pkg/store"
	"github.com/newtron-network/mistconv/pkg/util"
)

var (
	serveAddr  string
	serveRedis string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve conversions over HTTP",
	Long: `Start the HTTP API.

Endpoints:
  GET  /api/disclaimer   Login banner (APP_DISCLAIMER, APP_GITHUB_URL, APP_DOCKER_URL)
  POST /api/convert      Convert {"name", "files": [{"name", "content"}], "export"}
  GET  /health           Liveness
  GET  /metrics          Prometheus metrics

The listen address comes from --addr, then $PORT, then the settings, and
defaults to :3000.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := serveAddr
		if addr == "" {
			addr = api.ListenAddr(userSettings.ListenAddr)
		}

		cfg := api.Config{
			Addr: addr,
			Disclaimer: api.DisclaimerFromEnv(api.Disclaimer{
				Disclaimer: userSettings.Disclaimer,
				GithubURL:  userSettings.GithubURL,
				DockerURL:  userSettings.DockerURL,
			}),
			TemplateName: userSettings.GetTemplateName(),
			Logger:       util.Logger,
		}

		redisAddr := serveRedis
		if redisAddr == "" {
			redisAddr = userSettings.RedisAddr
		}
		if redisAddr != "" {
			client := store.NewClient(redisAddr, store.DefaultDB)
			defer client.Close()
			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
			err := client.Connect(ctx)
			cancel()
			if err != nil {
				return fmt.Errorf("connecting to redis %s: %w", redisAddr, err)
			}
			cfg.Store = client
		}

		return api.NewServer(cfg).Run(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address")
	serveCmd.Flags().StringVar(&serveRedis, "redis", "", "Redis server for template export")
}
