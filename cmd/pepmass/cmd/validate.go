package cmd

import (
	"fmt"
	"os"

	"github.com/ChrisMcGann/pepmass/pkg/annotation"
	"github.com/ChrisMcGann/pepmass/pkg/core"
	"github.com/ChrisMcGann/pepmass/pkg/reader/psmtsv"
	"github.com/ChrisMcGann/pepmass/pkg/record"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate an identification table",
	Long: `Check that every row of an identification table has a usable full sequence,
that its ambiguous fields have matching alternative counts and that every
modification annotation resolves.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	modDB, err := loadModDatabase(modDatabase)
	if err != nil {
		return err
	}
	resolver := annotation.NewResolver(modDB)

	in, err := psmtsv.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer in.Close()

	reader := psmtsv.NewReader(in, psmtsv.Options{
		Delimiter: inputDelimiter(),
		FileNames: record.NewFileNameNormalizer(extensions),
	})

	rows, invalid, ambiguous := 0, 0, 0
	for reader.Next() {
		rows++
		rec := reader.Record()
		if rec.IsAmbiguous() {
			ambiguous++
		}
		if err := validateRecord(resolver, rec); err != nil {
			invalid++
			warn.Fprintf(os.Stderr, "Warning: line %d: %v\n", reader.Line(), err)
		}
	}
	if err := reader.Err(); err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}

	p := message.NewPrinter(language.English)
	p.Printf("%d records, %d ambiguous, %d invalid\n", rows, ambiguous, invalid)

	if invalid > 0 {
		return fmt.Errorf("%d invalid records", invalid)
	}
	return nil
}

// validateRecord checks a row the same way fragments would before computing masses
func validateRecord(resolver *annotation.Resolver, rec *core.PeptideRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	alternatives, err := record.Candidates(rec)
	if err != nil {
		return err
	}
	for i, alt := range alternatives {
		if _, err := resolver.Peptide(core.Value(alt.FullSequence)); err != nil {
			return fmt.Errorf("alternative %d: %w", i, err)
		}
	}
	return nil
}
