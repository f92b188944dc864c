package cli

import (
	"github.com/spf13/cobra"

	"github.com/xtding233/legend-sim/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "legend-sim",
	Short: "Estimate how many games it takes to reach Legend",
	Long: "legend-sim runs Monte Carlo climbs of the ranked ladder and reports the average " +
		"number of games needed to reach Legend at a given win rate.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, _, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		return runPrompt(cmd.InOrStdin(), cmd.OutOrStdout(), settings)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config-dir", "", "Directory holding default.yaml and profiles/ (built-in defaults if empty)")
	rootCmd.PersistentFlags().String("profile", "", "Profile overlay to apply on top of default.yaml")
	rootCmd.PersistentFlags().Uint64("seed", 0, "Seed the random source for reproducible runs")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(ladderCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadSettings resolves the flags into settings and the loader that produced them.
func loadSettings(cmd *cobra.Command) (config.Settings, *config.Loader, error) {
	dir, _ := cmd.Flags().GetString("config-dir")
	profile, _ := cmd.Flags().GetString("profile")

	loader := config.NewLoader(dir)
	s, err := resolveSettings(loader, profile, seedFlag(cmd))
	return s, loader, err
}

// seedFlag returns the --seed value, or nil when the flag was not given.
func seedFlag(cmd *cobra.Command) *uint64 {
	if !cmd.Flags().Changed("seed") {
		return nil
	}
	v, _ := cmd.Flags().GetUint64("seed")
	return &v
}

func resolveSettings(loader *config.Loader, profile string, seed *uint64) (config.Settings, error) {
	s, err := loader.Load(profile)
	if err != nil {
		return config.Settings{}, err
	}
	if seed != nil {
		s.Seed = seed
	}
	return s, nil
}
