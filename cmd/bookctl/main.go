// Command bookctl prints the stored parlays and book health history from the
// service database.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/cypherlabdev/parlay-intel-service/internal/config"
	"github.com/cypherlabdev/parlay-intel-service/internal/repository"
)

const usage = `usage:
  bookctl [-config file] parlays [-profile P] [-book B] [-limit N]
  bookctl [-config file] health <user_id>
`

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(zerolog.WarnLevel).
		With().Timestamp().Str("service", "bookctl").Logger()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo, err := repository.Open(ctx, repository.Config{
		Driver: cfg.Database.Driver,
		DSN:    cfg.Database.DSN,
	}, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open database")
	}
	defer repo.Close()

	if err := run(ctx, repo, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if err == errUsage {
			flag.Usage()
			os.Exit(2)
		}
		os.Exit(1)
	}
}
