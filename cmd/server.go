package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/bellaroma/internal/availability"
	"github.com/example/bellaroma/internal/booking"
	"github.com/example/bellaroma/internal/config"
	"github.com/example/bellaroma/internal/rag"
	"github.com/example/bellaroma/internal/web"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "Run the chat web UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}

			log, err := zap.NewProduction()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			store, err := availability.Load(cfg.AvailabilityPath)
			if err != nil {
				return err
			}
			log.Info("availability schedule loaded",
				zap.String("path", cfg.AvailabilityPath),
				zap.Int("dates", len(store.Dates())))

			engine := booking.NewEngine(store, cfg.DefaultDate, cfg.RestaurantName, log)

			menu, err := newMenuEngine(ctx, cfg, log)
			if err != nil {
				return err
			}

			ws := &web.Server{
				Booking:        engine,
				Menu:           menu,
				Restaurant:     cfg.RestaurantName,
				AllowedOrigins: []string{"*"},
				Log:            log,
			}
			return web.Start(ctx, cfg.ListenAddr, ws.Routes(), log)
		},
	}
}

// newMenuEngine wires the Gemini-backed menu answerer, or a static
// stand-in when no API key is configured.
func newMenuEngine(ctx context.Context, cfg config.Config, log *zap.Logger) (web.MenuEngine, error) {
	if cfg.GeminiAPIKey == "" {
		log.Warn("GEMINI_API_KEY not set, menu questions disabled")
		return rag.Unavailable{}, nil
	}

	chunks, err := rag.LoadChunks(cfg.MenuPath)
	if err != nil {
		return nil, err
	}
	return rag.New(ctx, chunks, rag.Options{
		APIKey:     cfg.GeminiAPIKey,
		ChatModel:  cfg.ChatModel,
		EmbedModel: cfg.EmbedModel,
		Restaurant: cfg.RestaurantName,
		Log:        log,
	})
}
