package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/harsift/harsift/internal/history"
)

var historyLimit int

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past extraction runs",
	Long: `List past extraction runs from the history database.

History is only recorded when history.dir is set in the config file:

  history:
    dir: ~/.harsift-history

Examples:
  harsift history
  harsift history --limit 50`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of runs to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	dir := viper.GetString("history.dir")
	if dir == "" {
		return fmt.Errorf("history is not configured: set history.dir in the config file")
	}

	store, err := history.Open(dir)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.List(context.Background(), historyLimit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet")
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "When", "Source", "Raw", "Kept", "Include"})
	table.SetBorder(false)

	for _, run := range runs {
		table.Append([]string{
			strconv.FormatInt(run.ID, 10),
			run.CreatedAt.Format("2006-01-02 15:04"),
			run.Source,
			strconv.Itoa(run.RawCount),
			strconv.Itoa(run.KeptCount),
			run.Include,
		})
	}

	table.Render()

	return nil
}
