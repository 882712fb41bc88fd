package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"cosmicgarden/internal/i18n"
)

var plantAuthor string

var plantCmd = &cobra.Command{
	Use:   "plant [message]",
	Short: "Plant a flower from a message",
	Long: `Sends a message to the garden. The server picks a flower species
matching the mood of the message and places it among the others.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		message := strings.Join(args, " ")

		planted, err := app.Plant(cmd.Context(), message, plantAuthor)
		if err != nil {
			return err
		}

		if jsonOutput {
			return json.NewEncoder(os.Stdout).Encode(planted)
		}

		species := color.New(color.FgMagenta, color.Bold).Sprint(planted.Species)
		fmt.Printf("%s %s\n", i18n.T(locale, i18n.KeyPlantedFlower), species)
		fmt.Printf("  %q by %s\n", planted.Message, planted.Author)
		color.Green(i18n.T(locale, i18n.KeyThankYou))
		return nil
	},
}

func init() {
	plantCmd.Flags().StringVarP(&plantAuthor, "author", "a", "", "name to sign the flower with")
	rootCmd.AddCommand(plantCmd)
}
