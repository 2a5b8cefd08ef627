// Command tokengen mints a signed identity token for local development and
// manual testing. It signs with the same secret the server validates with.
//
//	FLASHDECK_AUTH_JWT_SECRET=... tokengen --owner user_123 --features ai_flashcard_generation
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/phrazzld/flashdeck/internal/config"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/service/auth"
	"github.com/spf13/pflag"
)

var knownFeatures = map[domain.Feature]bool{
	domain.FeatureUnlimitedDecks: true,
	domain.FeatureThreeDeckLimit: true,
	domain.FeatureAIGeneration:   true,
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	fs := pflag.NewFlagSet("tokengen", pflag.ContinueOnError)
	owner := fs.String("owner", "", "owner ID for the token subject (required)")
	features := fs.StringSlice("features", nil, "comma-separated features to grant")
	lifetime := fs.Int("lifetime", 0, "token lifetime in minutes (default from config)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *owner == "" {
		return errors.New("--owner is required")
	}
	for _, f := range *features {
		if !knownFeatures[domain.Feature(f)] {
			return fmt.Errorf("unknown feature %q", f)
		}
	}

	cfg, err := config.LoadAuth()
	if err != nil {
		return err
	}
	if *lifetime > 0 {
		cfg.TokenLifetimeMinutes = *lifetime
	}

	jwtService, err := auth.NewJWTService(*cfg)
	if err != nil {
		return err
	}

	token, err := jwtService.GenerateToken(ctx, *owner, *features)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	_, err = fmt.Fprintln(stdout, token)
	return err
}
