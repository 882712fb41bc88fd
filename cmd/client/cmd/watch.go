package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"cosmicgarden/internal/domain/flower"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the garden grow in real time",
	Long: `Prints the current garden and then streams every new flower as it
is planted, until interrupted with Ctrl-C.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		enc := json.NewEncoder(os.Stdout)
		speciesColor := color.New(color.FgMagenta, color.Bold)

		err := app.Watch(ctx, func(f flower.Flower) {
			if jsonOutput {
				enc.Encode(f)
				return
			}
			fmt.Printf("[%s] %s planted a %s: %s\n",
				f.CreatedAt.Local().Format(time.TimeOnly),
				f.Author,
				speciesColor.Sprint(f.Species),
				f.Message,
			)
		})
		if err != nil && ctx.Err() != context.Canceled {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
