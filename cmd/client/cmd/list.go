package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"cosmicgarden/internal/domain/flower"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show every flower in the garden",
	Long: `Fetches the whole garden in planting order. When the server is
unreachable the last cached garden is shown instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flowers, offline, err := app.List(cmd.Context())
		if err != nil {
			return err
		}

		if jsonOutput {
			return json.NewEncoder(os.Stdout).Encode(flower.ListResponse{
				Flowers: flowers,
				Total:   len(flowers),
			})
		}

		if offline {
			color.Yellow("server unreachable, showing cached garden")
		}
		if len(flowers) == 0 {
			fmt.Println("The garden is empty. Plant the first flower!")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "PLANTED\tSPECIES\tAUTHOR\tMESSAGE")
		for _, f := range flowers {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				f.CreatedAt.Local().Format(time.DateTime),
				f.Species,
				f.Author,
				f.Message,
			)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		fmt.Printf("\n%d flowers in the garden\n", len(flowers))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
