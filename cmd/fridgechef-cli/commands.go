package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fridgechef/backend/internal/domain"
	"github.com/fridgechef/backend/internal/infrastructure/fooddb"
	"github.com/fridgechef/backend/internal/infrastructure/logger"
	"github.com/fridgechef/backend/internal/usecase"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// options holds flags shared by every subcommand
type options struct {
	debug  bool
	pretty bool
}

// rootCommand creates the CLI root command
func rootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "fridgechef",
		Short:         "FridgeChef nutrition and video ranking tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging on stderr")
	rootCmd.PersistentFlags().BoolVar(&opts.pretty, "pretty", false, "Indent JSON output")

	rootCmd.AddCommand(
		estimateCommand(opts),
		rankCommand(opts),
		validateCommand(),
	)

	return rootCmd
}

// estimateCommand prints the nutrition summary for ingredient lines given as
// arguments, or read one per line from stdin when no argument is given.
func estimateCommand(opts *options) *cobra.Command {
	var tablePath string

	cmd := &cobra.Command{
		Use:   "estimate [ingredient...]",
		Short: "Estimate nutrition for ingredient lines",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := opts.logger()
			if err != nil {
				return err
			}

			entries, err := fooddb.Load(tablePath)
			if err != nil {
				return err
			}

			lines := args
			if len(lines) == 0 {
				if lines, err = readLines(cmd.InOrStdin()); err != nil {
					return err
				}
			}

			estimator := usecase.NewNutritionEstimator(entries, log, nil)
			summary := estimator.Estimate(usecase.SanitizeIngredients(lines))
			return writeJSON(cmd.OutOrStdout(), summary, opts.pretty)
		},
	}

	cmd.Flags().StringVar(&tablePath, "table", "", "Path to a food reference table (defaults to the bundled table)")

	return cmd
}

// rankCommand ranks candidates read from a JSON file (or stdin with "-")
func rankCommand(opts *options) *cobra.Command {
	var (
		candidatesPath string
		recipeName     string
		ingredients    []string
		maxResults     int
	)

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank video candidates against a recipe",
		RunE: func(cmd *cobra.Command, args []string) error {
			if maxResults < 0 {
				return fmt.Errorf("--max must not be negative")
			}

			log, err := opts.logger()
			if err != nil {
				return err
			}

			candidates, err := readCandidates(cmd.InOrStdin(), candidatesPath)
			if err != nil {
				return err
			}

			ranker := usecase.NewVideoRanker(log, nil)
			videos := ranker.Rank(candidates, recipeName, usecase.SanitizeIngredients(ingredients), maxResults)
			return writeJSON(cmd.OutOrStdout(), videos, opts.pretty)
		},
	}

	cmd.Flags().StringVar(&candidatesPath, "candidates", "-", "JSON file holding an array of video candidates, \"-\" for stdin")
	cmd.Flags().StringVar(&recipeName, "recipe", "", "Recipe name")
	cmd.Flags().StringArrayVar(&ingredients, "ingredient", nil, "Ingredient line (repeatable)")
	cmd.Flags().IntVar(&maxResults, "max", 3, "Maximum number of videos to return")
	_ = cmd.MarkFlagRequired("recipe")

	return cmd
}

// validateCommand checks a food reference table file
func validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate-table <path>",
		Short: "Validate a food reference table file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := fooddb.Load(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d entries OK\n", args[0], len(entries))
			return nil
		},
	}
}

func (o *options) logger() (*zap.Logger, error) {
	if !o.debug {
		return zap.NewNop(), nil
	}
	return logger.New("debug", "development")
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ingredients: %w", err)
	}
	return lines, nil
}

func readCandidates(stdin io.Reader, path string) ([]domain.VideoCandidate, error) {
	r := stdin
	if path != "-" && path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open candidates: %w", err)
		}
		defer f.Close()
		r = f
	}

	var candidates []domain.VideoCandidate
	if err := json.NewDecoder(r).Decode(&candidates); err != nil {
		return nil, fmt.Errorf("failed to decode candidates: %w", err)
	}
	return candidates, nil
}

func writeJSON(w io.Writer, v interface{}, pretty bool) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	if pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(v)
}
