package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"example.com/trainmate/internal/app"
	"example.com/trainmate/internal/config"
	"example.com/trainmate/internal/logging"
	"example.com/trainmate/internal/resourcesync"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		usage(stderr)
		return 2
	}

	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(stderr, "trainmate: unknown command %q\n\n", args[0])
		usage(stderr)
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "trainmate: %v\n", err)
		return 1
	}
	logger := logging.New(cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger, stderrNotifier(stderr))
	if err != nil {
		logger.WithError(err).Error("start-up failed")
		return 1
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.WithError(err).Warn("shutdown")
		}
	}()

	if err := gate(a, cmd); err != nil {
		fmt.Fprintf(stderr, "trainmate: %v\n", err)
		return 1
	}
	if err := cmd.run(ctx, a, args[1:], stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintf(stderr, "usage: trainmate %s %s\n", cmd.name, cmd.usage)
			return 2
		}
		// operation failures were already surfaced as notifications
		if !errors.Is(err, errReported) {
			fmt.Fprintf(stderr, "trainmate: %v\n", err)
		}
		return 1
	}
	return 0
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: trainmate <command> [args]")
	fmt.Fprintln(w)
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-10s %s\n", name, commands[name].summary)
	}
}

func stderrNotifier(w io.Writer) resourcesync.Notifier {
	return resourcesync.NotifierFunc(func(n resourcesync.Notification) {
		fmt.Fprintf(w, "[%s] %s\n", n.Severity, n.Message)
	})
}
