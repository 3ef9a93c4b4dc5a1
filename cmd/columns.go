package cmd

import (
	cfgpkg "github.com/KaramelBytes/uniqcols/internal/config"
	"github.com/KaramelBytes/uniqcols/internal/uniq"
	"github.com/spf13/cobra"
)

var colDelimiter string

var columnsCmd = &cobra.Command{
	Use:   "columns <file>",
	Short: "List a CSV file's header columns with their numbers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := currentConfig()
		name := c.Delimiter
		if cmd.Flags().Changed("delimiter") {
			name = colDelimiter
		}
		delim, err := cfgpkg.Delimiter(name)
		if err != nil {
			return err
		}
		src, err := uniq.OpenFile(args[0], uniq.SourceOptions{Delimiter: delim, LazyQuotes: c.LazyQuotes})
		if err != nil {
			return err
		}
		defer src.Close()
		return uniq.WriteColumnList(cmd.OutOrStdout(), src.Header())
	},
}

func init() {
	rootCmd.AddCommand(columnsCmd)
	columnsCmd.Flags().StringVarP(&colDelimiter, "delimiter", "d", "", "CSV delimiter: ',' | ';' | 'tab' | '|' (default by file extension)")
}
