package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/coreos/go-systemd/v22/daemon"

	"dutyboard/internal/adapters/telegram"
	"dutyboard/internal/announce"
	"dutyboard/internal/config"
	"dutyboard/internal/roster"
	"dutyboard/internal/schedule"
	"dutyboard/internal/storage"
	logx "dutyboard/pkg/logx"
)

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "./config.yaml", "path to config (yaml or json)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfgPath); err != nil {
		fmt.Println("fatal:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfgPath string) error {
	mgr := config.NewManager(cfgPath)
	cfg, err := mgr.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, logCloser := logx.New(logx.Config{
		Level:   cfg.Logging.Level,
		Console: cfg.Logging.Console,
		File: logx.FileConfig{
			Enabled: cfg.Logging.File.Enabled,
			Path:    cfg.Logging.File.Path,
		},
	})
	if logCloser != nil {
		defer logCloser.Close()
	}
	mgr.SetLogger(log)

	ros, err := roster.Load(cfg.Roster.Path)
	if err != nil {
		return err
	}
	log.Info("roster loaded", logx.String("path", cfg.Roster.Path), logx.Int("members", len(ros.Members())))

	kv, err := storage.Open(storageConfig(cfg), log)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	if kv != nil {
		defer kv.Close()
	} else {
		log.Warn("storage disabled; schedule lives in memory only")
	}

	store := schedule.NewStore(kv, cfg.Team.Key, log)
	engine := schedule.NewEngine(store)

	var bot *telegram.Adapter
	if cfg.Telegram != nil {
		pollTimeout, err := config.ParseDurationField("telegram.poll_timeout", cfg.Telegram.PollTimeout)
		if err != nil {
			return err
		}
		bot, err = telegram.New(telegram.Config{
			Token:       cfg.Telegram.Token,
			ChatID:      cfg.Telegram.ChatID,
			PollTimeout: pollTimeout,
			RatePerSec:  cfg.Telegram.RatePerSec,
		}, engine, ros, log)
		if err != nil {
			return fmt.Errorf("telegram: %w", err)
		}
		bot.Start(ctx)
		defer bot.Stop()
	}

	var sender announce.Sender
	if bot != nil {
		sender = bot
	}
	ann := announce.New(announceConfig(cfg), store, ros, sender, log)
	if err := ann.Start(ctx); err != nil {
		return err
	}
	defer ann.Stop()

	// Announce settings may be edited at runtime; everything else needs a restart.
	sub := mgr.Subscribe(1)
	defer mgr.Unsubscribe(sub)
	go func() {
		if err := mgr.Watch(ctx); err != nil {
			log.Warn("config watch ended", logx.Err(err))
		}
	}()
	go func() {
		for next := range sub {
			if err := ann.Apply(ctx, announceConfig(next)); err != nil {
				log.Warn("announce config rejected", logx.Err(err))
			}
		}
	}()

	_, _ = daemon.SdNotify(false, daemon.SdNotifyReady)
	log.Info("dutyboard running", logx.String("team", cfg.Team.Key))

	<-ctx.Done()
	_, _ = daemon.SdNotify(false, daemon.SdNotifyStopping)
	store.Save()
	return nil
}

func storageConfig(cfg *config.Config) storage.Config {
	if cfg.Storage == nil {
		return storage.Config{}
	}
	busy, _ := config.ParseDurationField("storage.busy_timeout", cfg.Storage.BusyTimeout)
	return storage.Config{
		Driver:      cfg.Storage.Driver,
		Path:        cfg.Storage.Path,
		BusyTimeout: busy,
	}
}

func announceConfig(cfg *config.Config) announce.Config {
	return announce.Config{
		Enabled:  cfg.Announce.Enabled,
		Spec:     cfg.Announce.Spec,
		Timezone: cfg.Announce.Timezone,
	}
}
