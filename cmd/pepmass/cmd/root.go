// Package cmd provides CLI command implementations
package cmd

import (
	"fmt"
	"os"

	"github.com/ChrisMcGann/pepmass/pkg/config"
	"github.com/ChrisMcGann/pepmass/pkg/core"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// Flags for fragments command
	inputFile   string
	outputFile  string
	delimiter   string
	ionTypes    string
	modDatabase string
	extensions  []string
	minMass     float64
	maxMass     float64
	dedupe      bool
	threads     int
	chunkSize   int

	// Flags for mods command
	walkStart     int
	walkDirection string
	walkMass      float64
	maxCharge     int
)

var warn = color.New(color.FgYellow)

var rootCmd = &cobra.Command{
	Use:   "pepmass",
	Short: "pepmass - Peptide fragment mass generation",
	Long: `pepmass reads peptide identification tables, expands ambiguous rows into
their alternatives and computes theoretical product-ion masses for each one.

Supported:
- b, b (no b1), c, y and z-dot ion series
- Bracketed modification annotations with neutral losses
- Plain or gzip-compressed tab-separated input
- SQLite output with little-endian mass blobs`,
	Version: "1.0.0",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cfg, err := config.Load()
	if err != nil {
		warn.Fprintf(os.Stderr, "Warning: %v, using built-in defaults\n", err)
		cfg = config.Config{
			Threads:           1,
			IonTypes:          "b,y",
			SpectraExtensions: []string{".raw", ".mzML", ".mgf"},
			Delimiter:         "\t",
		}
	}

	rootCmd.AddCommand(fragmentsCmd)
	rootCmd.AddCommand(modsCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(summarizeCmd)

	// Fragments command flags
	fragmentsCmd.Flags().StringVarP(&inputFile, "in", "i", "", "Input identification table, '-' for stdin (required)")
	fragmentsCmd.Flags().StringVarP(&outputFile, "out", "o", "", "Output database file (required)")
	fragmentsCmd.Flags().StringVar(&ionTypes, "ion-types", cfg.IonTypes, "Comma-separated ion series (b, bnob1, c, y, zdot)")
	fragmentsCmd.Flags().Float64Var(&minMass, "min-mass", 0, "Drop product masses below this value (0 = no bound)")
	fragmentsCmd.Flags().Float64Var(&maxMass, "max-mass", 0, "Drop product masses above this value (0 = no bound)")
	fragmentsCmd.Flags().BoolVar(&dedupe, "dedupe", false, "Sort product masses and merge duplicates")
	fragmentsCmd.Flags().IntVar(&threads, "threads", cfg.Threads, "Number of worker threads")
	fragmentsCmd.Flags().IntVar(&chunkSize, "chunk-size", 10000, "Records per processing batch")
	fragmentsCmd.MarkFlagRequired("in")
	fragmentsCmd.MarkFlagRequired("out")

	// Input flags shared with validate
	for _, c := range []*cobra.Command{fragmentsCmd, validateCmd} {
		c.Flags().StringVar(&delimiter, "delimiter", cfg.Delimiter, "Column delimiter")
		c.Flags().StringSliceVar(&extensions, "strip-ext", cfg.SpectraExtensions, "Spectra file extensions removed from file names")
		c.Flags().StringVar(&modDatabase, "mod-db", cfg.ModDatabase, "Modification CSV (mod,massshift[,aa[,losses]]) merged into the defaults")
	}

	// Mods command flags
	modsCmd.Flags().IntVar(&walkStart, "walk-from", 0, "Also list following masses from this 1-based residue (0 = off)")
	modsCmd.Flags().StringVar(&walkDirection, "direction", "c", "Walk direction: c (toward C-terminus) or n (toward N-terminus)")
	modsCmd.Flags().Float64Var(&walkMass, "start-mass", 0, "Mass the walk starts from")
	modsCmd.Flags().IntVar(&maxCharge, "max-charge", 3, "Print precursor m/z up to this charge (0 = off)")
	modsCmd.Flags().StringVar(&modDatabase, "mod-db", cfg.ModDatabase, "Modification CSV merged into the defaults")
}

// loadModDatabase returns the default modifications merged with the CSV at path, if any
func loadModDatabase(path string) (*core.ModDatabase, error) {
	modDB := core.DefaultModDatabase()
	if path == "" {
		return modDB, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open modification database: %w", err)
	}
	defer f.Close()

	if err := modDB.LoadFromCSV(f); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return modDB, nil
}

// inputDelimiter accepts a literal backslash-t for tab
func inputDelimiter() string {
	if delimiter == `\t` {
		return "\t"
	}
	return delimiter
}
