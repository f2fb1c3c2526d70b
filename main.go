package main

import (
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fieldwatch/fieldwatch/logger"
	"github.com/fieldwatch/fieldwatch/observe"
	"github.com/fieldwatch/fieldwatch/watch"
)

func main() {
	logger.Init()

	workDir := os.Getenv("WATCH_DIR")
	if workDir == "" {
		log.Fatal("WATCH_DIR environment variable is required")
	}

	paths := strings.Split(os.Getenv("WATCH_PATHS"), ",")
	if len(paths) == 1 && paths[0] == "" {
		log.Fatal("WATCH_PATHS environment variable is required (comma-separated, relative to WATCH_DIR)")
	}

	obj := observe.New()

	objectWatcher := watch.NewObjectWatcher(obj)
	if err := objectWatcher.Start(); err != nil {
		log.Fatalf("failed to start object watcher: %v", err)
	}
	defer objectWatcher.Stop()

	notifier := watch.NewChannelNotifier(64)
	objectWatcher.Subscribe(notifier)

	fileWatcher := watch.NewFileWatcher(workDir, obj)
	if err := fileWatcher.Start(); err != nil {
		log.Fatalf("failed to start file watcher: %v", err)
	}
	defer fileWatcher.Stop()

	for _, path := range paths {
		if err := fileWatcher.Watch(path); err != nil {
			log.Fatalf("failed to watch %s: %v", path, err)
		}
	}

	slog.Info("watching", "workDir", workDir, "paths", paths)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case n := <-notifier.C():
			slog.Info("change notification", "method", n.Method, "params", n.Params)
		case sig := <-sigCh:
			slog.Info("shutting down", "signal", sig.String())
			return
		}
	}
}
