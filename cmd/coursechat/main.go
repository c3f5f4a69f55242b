package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"coursechat/internal/app"
	"coursechat/internal/auth"
	"coursechat/internal/config"
	"coursechat/pkg/types"

	"github.com/mama165/sdk-go/logs"
)

var errBadIdentity = errors.New("identity must look like user:role[:name]")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run serves until ctx is cancelled. With -issue-token it prints a signed
// token for the given identity and returns without serving.
func run(ctx context.Context, args []string, stdout io.Writer) error {
	flags := flag.NewFlagSet("coursechat", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	configPath := flags.String("config", os.Getenv("COURSECHAT_CONFIG_FILE"), "path to a config file")
	issue := flags.String("issue-token", "", "print a token for user:role[:name] and exit")
	if err := flags.Parse(args); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	log := logs.GetLoggerFromString(cfg.Log.Level)

	if *issue != "" {
		return issueToken(cfg, *issue, stdout)
	}

	application, err := app.NewApplication(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	if err := application.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	log.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	return application.Stop(shutdownCtx)
}

func issueToken(cfg *config.Config, claim string, stdout io.Writer) error {
	identity, err := parseIdentity(claim)
	if err != nil {
		return err
	}
	tokens, err := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return err
	}
	token, err := tokens.GenerateToken(identity)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, token)
	return err
}

func parseIdentity(claim string) (auth.Identity, error) {
	parts := strings.SplitN(claim, ":", 3)
	if len(parts) < 2 || parts[0] == "" || !types.IsValidRole(parts[1]) {
		return auth.Identity{}, errBadIdentity
	}
	identity := auth.Identity{UserID: parts[0], Role: parts[1], Name: parts[0]}
	if len(parts) == 3 && parts[2] != "" {
		identity.Name = parts[2]
	}
	return identity, nil
}
