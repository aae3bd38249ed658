package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pitlane-analytics/pitwall/core/track"
)

var tracksCmd = &cobra.Command{
	Use:   "tracks",
	Short: "List supported tracks",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range track.Names() {
			p, err := track.Lookup(name)
			if err != nil {
				return err
			}
			fmt.Printf("%-14s %2d laps  deg %.2f  evo %.2f  sc %.0f%%  overtaking %.2f\n",
				p.Name, p.TotalLaps, p.DegFactor, p.Evolution, p.SafetyCarProb*100, p.OvertakingDifficulty)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tracksCmd)
}
