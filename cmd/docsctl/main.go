package main

import (
	"context"
	"docs-portal/config"
	"docs-portal/internal/cli"
	"docs-portal/internal/client"
	"docs-portal/internal/repository"
	"docs-portal/internal/security"
	"docs-portal/internal/util"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if os.Getenv("DOCSCTL_DEBUG") == "" {
		log.SetOutput(io.Discard)
	}

	configPath := os.Getenv("DOCSCTL_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error de configuración: %v\n", err)
		os.Exit(1)
	}

	journal, closeJournal := repository.OpenUploadJournal(cfg)
	defer closeJournal()

	sessionPath := os.Getenv("DOCSCTL_SESSION")
	if sessionPath == "" {
		sessionPath = security.DefaultSessionPath()
	}

	app := cli.NewApp(
		cfg,
		client.NewAPIClient(cfg.API.BaseURL, cfg.APITimeout()),
		util.NewSignedURLUploader(cfg.UploadTimeout()),
		journal,
		security.NewFileStore(sessionPath),
		os.Stdin,
		os.Stdout,
	)

	if err := app.Run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		message := err.Error()
		if util.Known(err) {
			message = util.UserMessage(err)
			if hint := cli.Hint(err); hint != "" {
				message += ". " + hint
			}
		}
		fmt.Fprintf(os.Stderr, "Error: %s\n", message)
		closeJournal()
		os.Exit(1)
	}
}
