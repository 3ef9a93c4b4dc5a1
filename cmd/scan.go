package cmd

import (
	"fmt"
	"log/slog"
	"path/filepath"

	cfgpkg "github.com/KaramelBytes/uniqcols/internal/config"
	"github.com/KaramelBytes/uniqcols/internal/history"
	"github.com/KaramelBytes/uniqcols/internal/uniq"
	"github.com/KaramelBytes/uniqcols/internal/utils"
	"github.com/spf13/cobra"
)

var (
	scanGroups        []string
	scanSeparator     string
	scanDelimiter     string
	scanLazyQuotes    bool
	scanOutputPath    string
	scanSave          bool
	scanProgressEvery int
)

var scanCmd = &cobra.Command{
	Use:   "scan <file>",
	Short: "Report unique columns and unique column combinations of a CSV file",
	Example: `  uniqcols scan applicants.csv
  uniqcols scan applicants.csv --group 2,3 --group 2,6 --separator -`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		c := currentConfig()

		// Configuration is validated before the input is touched.
		sepSet := cmd.Flags().Changed("separator")
		reg, err := uniq.NewRegistry(scanGroups, scanSeparator, sepSet)
		if err != nil {
			return err
		}
		delimName := c.Delimiter
		if cmd.Flags().Changed("delimiter") {
			delimName = scanDelimiter
		}
		delim, err := cfgpkg.Delimiter(delimName)
		if err != nil {
			return err
		}
		opt := uniq.SourceOptions{Delimiter: delim, LazyQuotes: c.LazyQuotes || scanLazyQuotes}
		every := c.ProgressEvery
		if cmd.Flags().Changed("progress-every") {
			every = scanProgressEvery
		}

		src, err := uniq.OpenFile(path, opt)
		if err != nil {
			return err
		}
		defer src.Close()

		rep, err := uniq.Scan(src, reg, uniq.ScanOptions{
			Name:          filepath.Base(path),
			Logger:        slog.Default().With("input", path),
			ProgressEvery: every,
		})
		if err != nil {
			return fmt.Errorf("scan %s: %w", path, err)
		}

		if scanOutputPath != "" {
			if err := utils.SafeWriteFile(scanOutputPath, []byte(rep.Text())); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "✓ Wrote report to %s\n", scanOutputPath)
		} else if _, err := rep.WriteTo(cmd.OutOrStdout()); err != nil {
			return err
		}

		if scanSave || c.SaveHistory {
			dir, err := utils.ExpandHome(c.HistoryDir)
			if err != nil {
				return err
			}
			input := path
			if abs, err := filepath.Abs(path); err == nil {
				input = abs
			}
			var sep *string
			if sepSet {
				sep = &scanSeparator
			}
			e := history.NewEntry(input, scanGroups, sep, rep)
			if err := history.NewStore(dir).Save(e); err != nil {
				return fmt.Errorf("save history: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "✓ Saved scan %s\n", e.ID)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
	// StringArray, not StringSlice: a group value itself contains commas.
	scanCmd.Flags().StringArrayVarP(&scanGroups, "group", "g", nil, "comma-separated 1-based column numbers tested together (repeatable, at least 2 columns)")
	scanCmd.Flags().StringVarP(&scanSeparator, "separator", "s", "", "string joining a group's values; required with --group, must not contain digits")
	scanCmd.Flags().StringVarP(&scanDelimiter, "delimiter", "d", "", "CSV delimiter: ',' | ';' | 'tab' | '|' (default by file extension)")
	scanCmd.Flags().BoolVar(&scanLazyQuotes, "lazy-quotes", false, "tolerate stray quotes in unquoted fields")
	scanCmd.Flags().StringVarP(&scanOutputPath, "output", "o", "", "write the report to this file instead of stdout")
	scanCmd.Flags().BoolVar(&scanSave, "save", false, "save the report to scan history")
	scanCmd.Flags().IntVar(&scanProgressEvery, "progress-every", 0, "log progress every N rows at debug level (0 = off)")
}
