package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ChrisMcGann/pepmass/pkg/annotation"
	"github.com/ChrisMcGann/pepmass/pkg/core"
	"github.com/ChrisMcGann/pepmass/pkg/filter"
	"github.com/ChrisMcGann/pepmass/pkg/fragment"
	"github.com/ChrisMcGann/pepmass/pkg/reader/psmtsv"
	"github.com/ChrisMcGann/pepmass/pkg/record"
	"github.com/ChrisMcGann/pepmass/pkg/writer/sqlite"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var fragmentsCmd = &cobra.Command{
	Use:   "fragments",
	Short: "Compute product-ion masses for every candidate in a table",
	Long: `Read an identification table, expand ambiguous rows into one candidate per
alternative and write the theoretical product-ion masses of each candidate to a
SQLite database.

Examples:
  # b and y ions with default settings
  pepmass fragments --in AllPSMs.psmtsv --out fragments.db

  # ETD series, deduplicated, from a gzip-compressed table
  pepmass fragments --in AllPSMs.psmtsv.gz --out fragments.db --ion-types c,zdot --dedupe --threads 4`,
	RunE: runFragments,
}

// fragmentJob is one input row with its source line
type fragmentJob struct {
	rec  *core.PeptideRecord
	line int
}

// fragmentResult holds the candidates computed for one row, or the reason it was skipped
type fragmentResult struct {
	candidates []*sqlite.Candidate
	err        error
}

// fragmenter turns rows into candidates. It is safe for concurrent use.
type fragmenter struct {
	resolver *annotation.Resolver
	types    fragment.IonTypes
	filter   *filter.Config
}

func (f *fragmenter) process(job fragmentJob) ([]*sqlite.Candidate, error) {
	if err := job.rec.Validate(); err != nil {
		return nil, err
	}

	alternatives, err := record.Candidates(job.rec)
	if err != nil {
		return nil, err
	}

	out := make([]*sqlite.Candidate, 0, len(alternatives))
	for i, alt := range alternatives {
		peptide, err := f.resolver.Peptide(core.Value(alt.FullSequence))
		if err != nil {
			return nil, fmt.Errorf("alternative %d: %w", i, err)
		}

		masses, err := fragment.NewEngine(peptide).ProductMasses(f.types)
		if err != nil {
			return nil, err
		}

		out = append(out, &sqlite.Candidate{
			Record:           alt,
			Peptide:          peptide,
			AlternativeIndex: i,
			SourceLine:       job.line,
			IonTypes:         f.types.String(),
			Masses:           f.filter.Apply(masses),
		})
	}
	return out, nil
}

// processChunk computes every job with at most threads workers. Results keep input order.
func (f *fragmenter) processChunk(ctx context.Context, jobs []fragmentJob, threads int) ([]fragmentResult, error) {
	results := make([]fragmentResult, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)
	for i, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			candidates, err := f.process(job)
			results[i] = fragmentResult{candidates: candidates, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func runFragments(cmd *cobra.Command, args []string) error {
	types, err := fragment.ParseIonTypes(ionTypes)
	if err != nil {
		return err
	}
	if types == 0 {
		return fmt.Errorf("no ion types selected")
	}
	// reject unsupported series before reading any input
	if _, err := fragment.ProductMasses(fragment.Ladder{}, types); err != nil {
		return err
	}
	if threads < 1 {
		threads = 1
	}
	if chunkSize < 1 {
		chunkSize = 1
	}

	modDB, err := loadModDatabase(modDatabase)
	if err != nil {
		return err
	}

	in, err := psmtsv.Open(inputFile)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer in.Close()

	reader := psmtsv.NewReader(in, psmtsv.Options{
		Delimiter: inputDelimiter(),
		FileNames: record.NewFileNameNormalizer(extensions),
	})

	writer, err := sqlite.NewWriter(outputFile)
	if err != nil {
		return fmt.Errorf("failed to create output database: %w", err)
	}
	defer writer.Close()

	f := &fragmenter{
		resolver: annotation.NewResolver(modDB),
		types:    types,
		filter:   &filter.Config{MinMass: minMass, MaxMass: maxMass, Dedupe: dedupe},
	}

	fmt.Printf("Computing fragments for %s -> %s...\n", inputFile, outputFile)
	fmt.Printf("Ion types: %s\n", types)
	fmt.Printf("Threads: %d\n", threads)

	start := time.Now()
	p := message.NewPrinter(language.English)
	rows, skipped := 0, 0

	flush := func(jobs []fragmentJob) error {
		results, err := f.processChunk(cmd.Context(), jobs, threads)
		if err != nil {
			return err
		}
		for i, res := range results {
			if res.err != nil {
				warn.Fprintf(os.Stderr, "Warning: line %d: skipping %s: %v\n", jobs[i].line, jobs[i].rec, res.err)
				skipped++
				continue
			}
			for _, c := range res.candidates {
				if err := writer.WriteCandidate(c); err != nil {
					return fmt.Errorf("line %d: %w", jobs[i].line, err)
				}
			}
		}
		return nil
	}

	jobs := make([]fragmentJob, 0, chunkSize)
	for reader.Next() {
		jobs = append(jobs, fragmentJob{rec: reader.Record(), line: reader.Line()})
		rows++
		if len(jobs) == chunkSize {
			if err := flush(jobs); err != nil {
				return err
			}
			jobs = jobs[:0]
			p.Printf("Processed %d records...\n", rows)
		}
	}
	if err := reader.Err(); err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}
	if err := flush(jobs); err != nil {
		return err
	}

	if err := writer.Finalize(); err != nil {
		return fmt.Errorf("failed to finalize database: %w", err)
	}

	p.Printf("\nDone: %d records, %d candidates written, %d skipped in %s\n",
		rows, writer.Count(), skipped, time.Since(start).Round(time.Millisecond))

	return nil
}
