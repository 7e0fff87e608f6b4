package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/matteflyt/internal/screen"
	"github.com/abhisek/matteflyt/internal/screens/play"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a level",
	Long:  "Open the game directly on a level. Without --level the next unfinished level is played.",
	RunE: func(cmd *cobra.Command, args []string) error {
		id, _ := cmd.Flags().GetInt("level")
		explicit := cmd.Flags().Changed("level")

		return runApp(cmd, func(deps screen.Deps) (screen.Screen, error) {
			gate := deps.Gate(context.Background())
			if !explicit {
				next, ok := gate.NextPlayable()
				if !ok {
					return nil, fmt.Errorf("every unlocked level is already passed; use --level to replay")
				}
				return play.New(deps, next), nil
			}

			level, ok := deps.Catalog.Get(id)
			if !ok {
				return nil, fmt.Errorf("no level %d (levels are %d-%d)", id, deps.Catalog.First(), deps.Catalog.Last())
			}
			if !gate.IsUnlocked(id) {
				return nil, fmt.Errorf("level %d %q is locked", id, level.Name)
			}
			return play.New(deps, level), nil
		})
	},
}

func init() {
	playCmd.Flags().Int("level", 0, "Level id to play")
}
