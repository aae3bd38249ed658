package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pitlane-analytics/pitwall/app"
	"github.com/pitlane-analytics/pitwall/core/model"
	"github.com/pitlane-analytics/pitwall/core/track"
)

var recommendFlags struct {
	track         string
	compound      string
	lap           int
	lapsRemaining int
	tireAge       int
	degradation   float64
	trackTemp     float64
	airTemp       float64
	humidity      float64
	position      int
	fallback      bool
}

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend a pit window for one race situation",
	RunE:  recommend,
}

func init() {
	f := recommendCmd.Flags()
	f.StringVarP(&recommendFlags.track, "track", "t", "", "track name")
	f.StringVarP(&recommendFlags.compound, "compound", "y", "MEDIUM", "current tire compound")
	f.IntVarP(&recommendFlags.lap, "lap", "l", 1, "current lap number")
	f.IntVar(&recommendFlags.lapsRemaining, "laps-remaining", -1, "laps remaining (default: from race distance)")
	f.IntVar(&recommendFlags.tireAge, "tire-age", 0, "tire age in laps")
	f.Float64Var(&recommendFlags.degradation, "degradation", -1, "degradation level 0-1 (default: derived)")
	f.Float64Var(&recommendFlags.trackTemp, "track-temp", 30, "track temperature in C")
	f.Float64Var(&recommendFlags.airTemp, "air-temp", 25, "air temperature in C")
	f.Float64Var(&recommendFlags.humidity, "humidity", 50, "relative humidity in percent")
	f.IntVarP(&recommendFlags.position, "position", "p", 10, "current position")
	f.BoolVar(&recommendFlags.fallback, "fallback", false, "use the heuristic when no trained model exists")
	_ = recommendCmd.MarkFlagRequired("track")
	rootCmd.AddCommand(recommendCmd)
}

func recommend(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if recommendFlags.fallback {
		cfg.Fallback = true
	}

	lapsRemaining := recommendFlags.lapsRemaining
	if lapsRemaining < 0 {
		prof, err := track.Lookup(recommendFlags.track)
		if err != nil {
			return err
		}
		lapsRemaining = prof.TotalLaps - recommendFlags.lap
		if lapsRemaining < 0 {
			lapsRemaining = 0
		}
	}

	s := model.RaceSituation{
		CurrentLap:       recommendFlags.lap,
		LapsRemaining:    lapsRemaining,
		TireAge:          recommendFlags.tireAge,
		DegradationLevel: recommendFlags.degradation,
		TrackTemp:        recommendFlags.trackTemp,
		AirTemp:          recommendFlags.airTemp,
		Humidity:         recommendFlags.humidity,
		Position:         recommendFlags.position,
	}

	res, err := app.NewAdvisor(cfg).Recommend(s, recommendFlags.track, recommendFlags.compound)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
