package cmd

import (
	"fmt"
	"strconv"
	"strings"

	cfgpkg "github.com/KaramelBytes/uniqcols/internal/config"
	"github.com/KaramelBytes/uniqcols/internal/logging"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set uniqcols configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := currentConfig()
		out := cmd.OutOrStdout()
		delim := c.Delimiter
		if delim == "" {
			delim = "(by extension)"
		}
		fmt.Fprintf(out, "delimiter: %s\n", delim)
		fmt.Fprintf(out, "lazy_quotes: %t\n", c.LazyQuotes)
		fmt.Fprintf(out, "log_level: %s\n", c.LogLevel)
		fmt.Fprintf(out, "log_format: %s\n", c.LogFormat)
		if c.ProgressEvery > 0 {
			fmt.Fprintf(out, "progress_every: %d\n", c.ProgressEvery)
		}
		fmt.Fprintf(out, "history_dir: %s\n", c.HistoryDir)
		fmt.Fprintf(out, "save_history: %t\n", c.SaveHistory)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		c := currentConfig()
		switch key {
		case "delimiter":
			if _, err := cfgpkg.Delimiter(val); err != nil {
				return err
			}
			c.Delimiter = val
		case "lazy_quotes":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for lazy_quotes: %v", val)
			}
			c.LazyQuotes = b
		case "log_level":
			lv := strings.ToLower(val)
			if logging.ParseLevel(lv).String() != strings.ToUpper(lv) {
				return fmt.Errorf("invalid log_level: %s (use debug|info|warn|error)", val)
			}
			c.LogLevel = lv
		case "log_format":
			switch strings.ToLower(val) {
			case "text", "json":
				c.LogFormat = strings.ToLower(val)
			default:
				return fmt.Errorf("invalid log_format: %s (use text or json)", val)
			}
		case "progress_every":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for progress_every: %v", val)
			}
			c.ProgressEvery = i
		case "history_dir":
			c.HistoryDir = val
		case "save_history":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for save_history: %v", val)
			}
			c.SaveHistory = b
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
