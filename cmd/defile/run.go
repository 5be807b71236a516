package main

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"defile"
	"defile/config"
	"defile/fetch"
	"defile/logging"
	"defile/metrics"
	"defile/store/duck"
)

func runGallery(cmd *cobra.Command, args []string) (err error) {

	cfg, err := loadConfig(cmd)
	if err != nil {
		return
	}

	logFile := config.OpenLog(cfg.LogFile, 0644)
	defer config.CloseLog(logFile)
	lgr := logging.New(logFile, cfg.Log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	opt := defile.Options{
		Requester:   fetch.HTTP{UserAgent: cfg.UserAgent},
		Logger:      lgr,
		BaseURL:     cfg.BaseURL,
		Cells:       cfg.Cells,
		DetailStyle: cfg.DetailStyle,
	}

	if cfg.Catalog {
		var dk *duck.Duck
		dk, err = duck.New(lgr)
		if err != nil {
			return
		}
		defer func() {
			count, _ := dk.Count()
			lgr.Info(ctx, "catalog closing", "photos", count)
			dk.Close()
		}()
		opt.Catalog = dk
	}

	if cfg.MetricsAddr != "" {
		var svr *metrics.Server
		svr, err = metrics.Listen(cfg.MetricsAddr, lgr)
		if err != nil {
			return
		}
		go func() {
			err := svr.Serve(ctx)
			if err != nil {
				lgr.Error(ctx, "metrics server failed", err)
			}
		}()
	}

	model, err := defile.NewModel(ctx, opt)
	if err != nil {
		return
	}

	_, err = tea.NewProgram(model).Run()
	err = errors.Wrapf(err, "gallery failed")
	return
}

func loadConfig(cmd *cobra.Command) (cfg *config.Config, err error) {

	cfg = config.Default()

	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		cfg, err = config.Load(path)
		if err != nil {
			return
		}
	}

	if baseURL, _ := cmd.Flags().GetString("base-url"); baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if logFile, _ := cmd.Flags().GetString("log"); logFile != "" {
		cfg.LogFile = logFile
	}
	if addr, _ := cmd.Flags().GetString("metrics"); addr != "" {
		cfg.MetricsAddr = addr
	}
	return
}
