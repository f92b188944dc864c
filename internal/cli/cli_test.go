package cli

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/legend-sim/internal/climb"
	"github.com/xtding233/legend-sim/internal/config"
)

func TestRunPrompt(t *testing.T) {
	var out bytes.Buffer
	err := runPrompt(strings.NewReader("1\n1.0\n"), &out, config.DefaultSettings())
	require.NoError(t, err)

	got := out.String()
	assert.True(t, strings.HasPrefix(got, "Welcome to the Hearthstone Legend Climb Simulator!\n"))
	assert.Equal(t, 3, strings.Count(got, "What is your average win rate? (Example: 0.5) "))
	assert.Equal(t, 2, strings.Count(got, "With a win rate of 1, it will take an average of 61 games to reach Legend.\n"))
}

func TestRunPromptNeverWinning(t *testing.T) {
	s := config.DefaultSettings()
	s.Runs = 2
	s.Params.MaxGames = 25

	var out bytes.Buffer
	require.NoError(t, runPrompt(strings.NewReader(" 0 \n"), &out, s))
	assert.Contains(t, out.String(), "With a win rate of 0, it will take an average of 25 games to reach Legend.")
}

func TestRunPromptRoundsUp(t *testing.T) {
	seed := uint64(8)
	s := config.DefaultSettings()
	s.Runs = 7
	s.Seed = &seed

	mean, err := climb.Simulate(s.Runs, 0.6, s.Params, s.RNG())
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, runPrompt(strings.NewReader("0.6\n"), &out, s))
	want := fmt.Sprintf("With a win rate of 0.6, it will take an average of %d games to reach Legend.", int(math.Ceil(mean)))
	assert.Contains(t, out.String(), want)
}

func TestRunPromptRejectsNonNumeric(t *testing.T) {
	var out bytes.Buffer
	err := runPrompt(strings.NewReader("1\nfifty percent\n1\n"), &out, config.DefaultSettings())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid win rate "fifty percent"`)
	assert.Equal(t, 1, strings.Count(out.String(), "games to reach Legend."))
}

func TestPrintLadder(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printLadder(&out, climb.DefaultParams()))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 27)
	assert.Equal(t, []string{"RANK", "FIRST", "STAR", "STARS", "FLOOR", "STREAKS"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"25", "0", "2", "yes", "yes"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"24", "3", "2", "yes"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"5", "71", "5", "yes", "no"}, strings.Fields(lines[21]))
	assert.Equal(t, []string{"Legend", "96"}, strings.Fields(lines[26]))
}

func TestPrintLadderUnknownRank(t *testing.T) {
	p := climb.DefaultParams()
	p.RankFloors = []int{50}
	assert.ErrorIs(t, printLadder(&bytes.Buffer{}, p), climb.ErrUnknownRank)
}

func TestResolveSettingsSeedOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "default.yaml"), []byte("simulate:\n  runs: 12\n  seed: 1\n"), 0o644))

	seed := uint64(99)
	s, err := resolveSettings(config.NewLoader(dir), "", &seed)
	require.NoError(t, err)
	assert.Equal(t, 12, s.Runs)
	require.NotNil(t, s.Seed)
	assert.Equal(t, uint64(99), *s.Seed)

	s, err = resolveSettings(config.NewLoader(dir), "", nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), *s.Seed)
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	versionCmd.Run(versionCmd, nil)
	assert.Equal(t, "legend-sim (devel)\n", out.String())
}
