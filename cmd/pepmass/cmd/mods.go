package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ChrisMcGann/pepmass/pkg/annotation"
	"github.com/ChrisMcGann/pepmass/pkg/core"
	"github.com/ChrisMcGann/pepmass/pkg/fragment"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var modsCmd = &cobra.Command{
	Use:   "mods [full sequence]",
	Short: "Show modification positions and masses of an annotated sequence",
	Long: `Parse a bracket-annotated sequence and print where each modification sits,
the resolved peptide mass and the fragment ladders.

Examples:
  pepmass mods 'PEPT[Common Biological:Phosphorylation on T]IDE'

  # masses following residue 2 toward the C-terminus
  pepmass mods 'AS[Phospho]AA' --walk-from 2 --direction c`,
	Args: cobra.ExactArgs(1),
	RunE: runMods,
}

func runMods(cmd *cobra.Command, args []string) error {
	full := args[0]

	positions, err := annotation.Parse(full)
	if err != nil {
		return err
	}
	base, err := annotation.BaseSequence(full)
	if err != nil {
		return err
	}

	modDB, err := loadModDatabase(modDatabase)
	if err != nil {
		return err
	}
	peptide, err := annotation.NewResolver(modDB).Peptide(full)
	if err != nil {
		return err
	}

	bold := color.New(color.Bold)
	bold.Printf("Base sequence: %s\n", base)

	offsets := make([]int, 0, len(positions))
	for pos := range positions {
		offsets = append(offsets, pos)
	}
	slices.Sort(offsets)
	for _, pos := range offsets {
		mod := peptide.Mods[pos]
		fmt.Printf("  %3d  %-40s %+.6f  losses %v\n", pos, strings.Join(positions[pos], " + "), mod.Mass, mod.Losses())
	}

	fmt.Printf("Neutral mass: %.6f\n", peptide.NeutralMass())
	for i, mz := range precursorMZ(peptide.NeutralMass(), maxCharge) {
		fmt.Printf("  [M+%dH]%d+ m/z %.4f\n", i+1, i+1, mz)
	}

	engine := fragment.NewEngine(peptide)
	ladder := engine.Ladder()
	fmt.Printf("N-terminal ladder: %s\n", formatMasses(ladder.NTerminalMasses))
	fmt.Printf("C-terminal ladder: %s\n", formatMasses(ladder.CTerminalMasses))

	if walkStart == 0 {
		return nil
	}

	direction := fragment.TowardCTerminus
	switch strings.ToLower(walkDirection) {
	case "c":
	case "n":
		direction = fragment.TowardNTerminus
	default:
		return fmt.Errorf("invalid direction '%s', must be c or n", walkDirection)
	}

	masses, err := engine.FollowingMasses(walkMass, walkStart, direction)
	if err != nil {
		return err
	}
	fmt.Printf("Following masses from %d:\n", walkStart)
	for m := range masses {
		fmt.Printf("  %.6f\n", m)
	}

	return nil
}

// precursorMZ returns m/z for charges 1..maxCharge rounded to four decimals
func precursorMZ(neutralMass float64, maxCharge int) []float64 {
	out := make([]float64, 0, max(maxCharge, 0))
	for z := 1; z <= maxCharge; z++ {
		out = append(out, core.RoundFloat(core.MZ(neutralMass, z), 4))
	}
	return out
}

func formatMasses(masses []float64) string {
	parts := make([]string, len(masses))
	for i, m := range masses {
		parts[i] = fmt.Sprintf("%.4f", m)
	}
	return strings.Join(parts, " ")
}
