package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/example/bellaroma/internal/availability"
	"github.com/example/bellaroma/internal/booking"
	"github.com/example/bellaroma/internal/config"
	"github.com/example/bellaroma/internal/intent"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Talk to the assistant on stdin/stdout (no web server)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			store, err := availability.Load(cfg.AvailabilityPath)
			if err != nil {
				return err
			}
			engine := booking.NewEngine(store, cfg.DefaultDate, cfg.RestaurantName, zap.NewNop())

			menu, err := newMenuEngine(ctx, cfg, zap.NewNop())
			if err != nil {
				return err
			}

			fmt.Printf("🍕 %s assistant. Type a message, or 'quit' to leave.\n", cfg.RestaurantName)

			sc := bufio.NewScanner(os.Stdin)
			for {
				fmt.Print("> ")
				if !sc.Scan() {
					break
				}
				line := strings.TrimSpace(sc.Text())
				if line == "" {
					continue
				}
				if line == "quit" || line == "exit" {
					break
				}

				if intent.IsBooking(line) {
					fmt.Println(engine.HandleMessage(line))
				} else {
					fmt.Println(menu.Query(ctx, line))
				}
			}
			return sc.Err()
		},
	}
}
