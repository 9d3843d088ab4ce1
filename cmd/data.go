package cmd

import (
	"fmt"
	"os"

	"github.com/example/bellaroma/internal/availability"
	"github.com/example/bellaroma/internal/config"
	"github.com/spf13/cobra"
)

func newDataCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "data",
		Short: "Inspect availability data files",
	}
	cmd.AddCommand(newDataCheckCmd())
	return cmd
}

func newDataCheckCmd() *cobra.Command {
	var file string

	c := &cobra.Command{
		Use:   "check",
		Short: "Validate an availability file and print a capacity summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				cfg, err := config.FromEnv()
				if err != nil {
					return err
				}
				file = cfg.AvailabilityPath
			}

			store, err := availability.Load(file)
			if err != nil {
				return err
			}

			total := 0
			for _, date := range store.Dates() {
				slots, _ := store.Slots(date)
				tables := 0
				for _, s := range slots {
					tables += s.Tables
				}
				total += tables
				fmt.Fprintf(os.Stdout, "date=%s slots=%d tables=%d\n", date, len(slots), tables)
			}
			fmt.Fprintf(os.Stdout, "ok: %d dates, %d tables total\n", len(store.Dates()), total)
			return nil
		},
	}

	c.Flags().StringVar(&file, "file", "", "availability file (default: AVAILABILITY_PATH)")
	return c
}
