package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/haldev/audiohal/cmd"
	"github.com/haldev/audiohal/internal/api"
	"github.com/haldev/audiohal/internal/audiohal"
	"github.com/haldev/audiohal/internal/config"
	"github.com/haldev/audiohal/internal/logging"
	alsamixer "github.com/haldev/audiohal/internal/mixer/alsa"
)

// Options is the flat, reflect-friendly shape LoadConfig and humacli
// both walk: CLI flags and the "default" tag for humacli, "toml"/"env"
// for LoadConfig's file/environment precedence pass.
type Options struct {
	Config string `help:"Path to a TOML config file" short:"c" default:"config.toml"`

	AudioConfig string `help:"Path to the audio routing XML document" default:"/etc/audiohal/audio_conf.xml" toml:"audio.config" env:"AUDIO_CONFIG"`
	ConfigDir   string `help:"Default directory for resolving relative audio config paths" default:"/etc/audiohal" toml:"audio.config_dir" env:"AUDIO_CONFIG_DIR"`
	Card        int    `help:"ALSA card number to open" default:"0" toml:"audio.card" env:"AUDIO_CARD"`

	LogLevel  string `help:"Log level: debug, info, warn, error" default:"info" toml:"logging.level" env:"LOG_LEVEL"`
	LogFormat string `help:"Log format: text or json" default:"text" toml:"logging.format" env:"LOG_FORMAT"`

	HTTPAddr    string `help:"Address for the debug HTTP API" default:":8686" toml:"http.addr" env:"HTTP_ADDR"`
	MetricsAddr string `help:"Address for the Prometheus metrics endpoint" default:":9686" toml:"metrics.addr" env:"METRICS_ADDR"`
}

func main() {
	cli := humacli.New(func(hooks humacli.Hooks, opts *Options) {
		if err := config.LoadConfig(opts, nil); err != nil {
			fmt.Fprintln(os.Stderr, "loading config:", err)
		}

		logging.Initialize(logging.Config{Level: opts.LogLevel, Format: opts.LogFormat})
		logger := logging.GetLogger("main")

		mx, err := alsamixer.Open(opts.Card)
		if err != nil {
			logger.Error("opening mixer", "card", opts.Card, "error", err)
			os.Exit(1)
		}

		engine, err := audiohal.InitAudioConfig(opts.AudioConfig, opts.ConfigDir, mx, logging.GetLogger("audiohal"))
		if err != nil {
			logger.Error("loading audio configuration", "path", opts.AudioConfig, "error", err)
			os.Exit(1)
		}

		apiServer := api.NewServer(engine)
		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", promhttp.Handler())
		metricsSrv := &http.Server{Addr: opts.MetricsAddr, Handler: metricsMux}

		hooks.OnStart(func() {
			go func() {
				logger.Info("starting metrics server", "addr", opts.MetricsAddr)
				if startErr := metricsSrv.ListenAndServe(); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
					logger.Error("metrics server failed", "error", startErr)
				}
			}()

			logger.Info("starting debug API server", "addr", opts.HTTPAddr)
			if startErr := apiServer.Start(opts.HTTPAddr); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
				logger.Error("debug API server failed", "error", startErr)
				os.Exit(1)
			}
		})

		hooks.OnStop(func() {
			logger.Info("shutting down")
			if stopErr := apiServer.Stop(context.Background()); stopErr != nil {
				logger.Error("stopping debug API server", "error", stopErr)
			}
			if stopErr := metricsSrv.Shutdown(context.Background()); stopErr != nil {
				logger.Error("stopping metrics server", "error", stopErr)
			}
			engine.FreeAudioConfig()
			if closeErr := mx.Close(); closeErr != nil {
				logger.Error("closing mixer", "error", closeErr)
			}
		})
	})

	cli.Root().AddCommand(cmd.CreateValidateCmd())
	cli.Root().AddCommand(cmd.CreateAlsaDevicesCmd())

	cli.Run()
}
