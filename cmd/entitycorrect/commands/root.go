// Package commands implements the entitycorrect command line.
package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/viant/entity-corrector/corrector"
	"github.com/viant/entity-corrector/internal/logger"
	"github.com/viant/entity-corrector/vector"
)

// Execute runs the root command with os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "entitycorrect",
		Short: "Correct misspelled queries against a known entity list",
		Long: `entitycorrect - approximate string matching against a fixed corpus.

The corpus comes from a text file (one entity per line) or from a SQLite table.

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (ENTITYCORRECT_* prefix)
3. TOML config file (--config)
4. Default values

Examples:
  entitycorrect --entities cities.txt correct "atlnta"
  entitycorrect --entities cities.txt near "atlnta" --radius 2 --linear
  entitycorrect --db corpus.sqlite --table cities --index knn "atlnta" -k 3`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.String("entities", "", "Entity file, one entity per line")
	flags.String("db", "", "SQLite DSN holding the entity table")
	flags.String("table", "", "Entity table name (with --db)")
	flags.Int("max-size", vector.DefaultMaxSize, "Encoded vector length")
	flags.Bool("index", false, "Build the metric tree (required by knn and indexed near)")
	flags.String("metric", "", "Vector distance: damerau or euclidean")
	flags.String("config", "", "TOML config file")
	flags.BoolP("verbose", "v", false, "Debug logging to stderr")

	root.AddCommand(newCorrectCmd(), newNearCmd(), newKnnCmd())
	return root
}

// session holds what a subcommand needs to run.
type session struct {
	corrector *corrector.Corrector
	log       *zap.SugaredLogger
	out       io.Writer
}

func (s *session) close() { _ = s.log.Sync() }

func openSession(cmd *cobra.Command) (*session, error) {
	configPath, _ := cmd.Flags().GetString("config")
	settings, err := LoadSettings(configPath, cmd.Flags())
	if err != nil {
		return nil, err
	}
	log, err := logger.New(settings.Verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	c, err := newCorrector(cmd.Context(), settings, log)
	if err != nil {
		_ = log.Sync()
		return nil, err
	}
	return &session{corrector: c, log: log, out: cmd.OutOrStdout()}, nil
}

func newCorrectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "correct QUERY...",
		Short: "Print the entities within one edit of each query",
		Long: `Print the corrections for each query, one per line.
With several queries each line is prefixed by the query and a tab.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()
			for _, query := range args {
				fixes, err := s.corrector.Correct(query)
				if err != nil {
					return err
				}
				s.log.Debugw("corrected", logger.FieldQuery, query, logger.FieldResults, len(fixes))
				for _, fix := range fixes {
					if len(args) > 1 {
						fmt.Fprintf(s.out, "%s\t%s\n", query, fix)
						continue
					}
					fmt.Fprintln(s.out, fix)
				}
			}
			return nil
		},
	}
}

func newNearCmd() *cobra.Command {
	var radius int
	var linear bool
	cmd := &cobra.Command{
		Use:   "near QUERY",
		Short: "Print the entities within an encoded distance of a query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if radius < 0 {
				return fmt.Errorf("radius must be >= 0, got %d", radius)
			}
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()
			var found []string
			if linear || s.corrector.Mode() == corrector.ModeLinear {
				found = s.corrector.NearestWithinLinear(args[0], radius)
			} else if found, err = s.corrector.WithinRadius(args[0], radius); err != nil {
				return err
			}
			s.log.Debugw("near",
				logger.FieldQuery, args[0],
				logger.FieldRadius, radius,
				logger.FieldResults, len(found),
			)
			if len(found) > 0 {
				fmt.Fprintln(s.out, strings.Join(found, "\n"))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&radius, "radius", corrector.DefaultRadius, "Inclusive distance radius")
	cmd.Flags().BoolVar(&linear, "linear", false, "Force a linear scan even when the tree is built")
	return cmd
}

func newKnnCmd() *cobra.Command {
	var k int
	cmd := &cobra.Command{
		Use:   "knn QUERY",
		Short: "Print the k nearest entities as distance<TAB>entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()
			matches, err := s.corrector.KNearest(args[0], k)
			if err != nil {
				return err
			}
			s.log.Debugw("knn", logger.FieldQuery, args[0], logger.FieldK, k, logger.FieldResults, len(matches))
			for _, m := range matches {
				fmt.Fprintf(s.out, "%g\t%s\n", m.Distance, m.Entity)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&k, "k", "k", corrector.DefaultK, "Number of neighbours")
	return cmd
}
