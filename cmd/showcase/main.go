package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"aishowcase/internal/clock"
	"aishowcase/internal/config"
	"aishowcase/internal/content"
	"aishowcase/internal/logging"
	"aishowcase/internal/motion"
	"aishowcase/internal/trace"
	"aishowcase/internal/ui"
)

var configPath string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "showcase: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:   "showcase",
		Short: "Terminal showcase of AI tools",
		Long: `showcase renders a small AI tool marketing site in the terminal: a hero
carousel, pricing tabs and a tool catalog with details dialogs.

Keys: 1/2/3 switch pages, tab moves focus, m toggles reduced motion, q quits.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, configPath)
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}

	f := cmd.Flags()
	f.StringVar(&configPath, "config", "", "config file (default ~/.config/aishowcase/config.toml)")
	f.Bool("autoplay", true, "advance hero slides automatically")
	f.Duration("interval", 5*time.Second, "hero autoplay interval")
	f.Bool("reduced-motion", false, "disable autoplay and transitions")
	f.String("motion-prefs", "", "YAML file to watch for the reduced-motion preference")
	f.String("content", "", "showcase YAML replacing the built-in content")
	f.String("log-file", "", "write JSON logs to this file")
	f.String("log-level", "info", "log level (debug, info, warn, error)")

	for key, flag := range map[string]string{
		"carousel.autoplay": "autoplay",
		"carousel.interval": "interval",
		"motion.reduced":    "reduced-motion",
		"motion.prefs_file": "motion-prefs",
		"content.file":      "content",
		"log.file":          "log-file",
		"log.level":         "log-level",
	} {
		if err := v.BindPFlag(key, f.Lookup(flag)); err != nil {
			panic(err)
		}
	}
	return cmd
}

func run(cfg config.Config) error {
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	sc, err := content.Load(cfg.Content.File)
	if err != nil {
		return err
	}

	traces := trace.NewManager(10)
	traces.SetLogger(logger)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := traces.Shutdown(ctx); err != nil {
			logger.Warn("trace shutdown", zap.Error(err))
		}
	}()

	loop := clock.NewLoop()
	defer loop.Close()
	setting := motion.NewSetting(cfg.Motion.Reduced)

	model, err := ui.NewAppModel(ui.Options{
		Content:   sc,
		Config:    cfg,
		Scheduler: loop,
		Motion:    setting,
		Logger:    logger,
		Recorder:  trace.NewRecorder(traces, nil),
	})
	if err != nil {
		return err
	}
	defer model.Close()

	p := tea.NewProgram(model.AsTeaModel(), tea.WithAltScreen(), tea.WithMouseAllMotion())
	loop.SetPost(p.Send)

	if cfg.Motion.PrefsFile != "" {
		w, err := motion.NewWatcher(cfg.Motion.PrefsFile, func(reduced bool) {
			p.Send(ui.ReducedMotionMsg{Reduced: reduced})
		}, logger)
		if err != nil {
			return err
		}
		defer w.Stop()
		reduced, err := w.Start(context.Background())
		if err != nil {
			return err
		}
		setting.Set(reduced)
	}

	logger.Info("showcase started",
		zap.Int("slides", len(sc.Hero.Slides)),
		zap.Int("plans", len(sc.Plans)),
		zap.Int("tools", len(sc.Tools)),
		zap.Bool("reduced_motion", setting.ReducedMotion()))

	_, err = p.Run()
	return err
}
