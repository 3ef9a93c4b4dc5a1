package cmd

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/uniqcols/internal/history"
	"github.com/KaramelBytes/uniqcols/internal/utils"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List or show saved scan reports",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved scans, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := historyStore()
		if err != nil {
			return err
		}
		entries, err := store.List()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(out, "(no saved scans)")
			return nil
		}
		for _, e := range entries {
			groups := "-"
			if len(e.UniqueGroups) > 0 {
				groups = strings.Join(e.UniqueGroups, " ")
			}
			fmt.Fprintf(out, "- %s  %s  %s  rows=%d unique=%v groups=%s\n",
				e.ID, e.CreatedAt.Format("2006-01-02 15:04:05"), e.Input, e.Rows, e.UniqueColumns, groups)
		}
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a saved report (an id prefix is enough)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := historyStore()
		if err != nil {
			return err
		}
		e, err := store.Load(args[0])
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), e.Report)
		return nil
	},
}

func historyStore() (*history.Store, error) {
	dir, err := utils.ExpandHome(currentConfig().HistoryDir)
	if err != nil {
		return nil, err
	}
	return history.NewStore(dir), nil
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
}
