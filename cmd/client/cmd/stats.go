package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"cosmicgarden/internal/domain/flower"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show garden statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := app.Stats(cmd.Context())
		if err != nil {
			return err
		}

		if jsonOutput {
			return json.NewEncoder(os.Stdout).Encode(stats)
		}

		color.New(color.Bold).Printf("Cosmic Garden: %d flowers\n", stats.Total)

		types := make([]flower.VisualType, 0, len(stats.ByType))
		for t := range stats.ByType {
			types = append(types, t)
		}
		sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
		for _, t := range types {
			fmt.Printf("  %-12s %d\n", t, stats.ByType[t])
		}

		if stats.Countries > 0 {
			fmt.Printf("Planted from %d countries\n", stats.Countries)
		}
		if stats.LastPlanted != nil {
			fmt.Printf("Last planted %s\n", stats.LastPlanted.Local().Format(time.DateTime))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
