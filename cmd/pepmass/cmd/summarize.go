package cmd

import (
	"github.com/ChrisMcGann/pepmass/pkg/writer/sqlite"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [file]",
	Short: "Summarize a fragment database",
	Long:  `Print summary statistics about a database written by 'pepmass fragments'.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := sqlite.Summarize(args[0])
		if err != nil {
			return err
		}

		// used for adding commas every 3 digits
		p := message.NewPrinter(language.English)

		color.New(color.Bold).Printf("%s\n", args[0])
		p.Printf("Schema version:   %d (created %s)\n", s.Version, s.CreationDate)
		p.Printf("Records:          %d\n", s.Records)
		p.Printf("Candidates:       %d\n", s.Candidates)
		p.Printf("Decoys:           %d\n", s.Decoys)
		p.Printf("Spectra files:    %d\n", s.Files)
		p.Printf("Fragment masses:  %d\n", s.FragmentMasses)
		p.Printf("Neutral mass:     %.4f - %.4f\n", s.MinNeutralMass, s.MaxNeutralMass)
		return nil
	},
}
