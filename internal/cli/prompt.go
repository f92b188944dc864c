package cli

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/xtding233/legend-sim/internal/climb"
	"github.com/xtding233/legend-sim/internal/config"
)

// runPrompt asks for win rates until input ends. A line that is not a
// number stops the loop with an error.
func runPrompt(in io.Reader, out io.Writer, s config.Settings) error {
	fmt.Fprintln(out, "Welcome to the Hearthstone Legend Climb Simulator!")

	rng := s.RNG()
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "What is your average win rate? (Example: 0.5) ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		winRate, err := strconv.ParseFloat(line, 64)
		if err != nil {
			return fmt.Errorf("invalid win rate %q: %w", line, err)
		}

		mean, err := climb.Simulate(s.Runs, winRate, s.Params, rng)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "With a win rate of %s, it will take an average of %d games to reach Legend.\n",
			strconv.FormatFloat(winRate, 'g', -1, 64), int(math.Ceil(mean)))
	}
}
