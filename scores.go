package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/milk9111/minimario/storage"
)

var flagLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show the best recorded runs",
	Long: `Display the best runs of a level, highest score first.

Examples:
  minimario scores
  minimario scores overworld --limit 5`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FBD000"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color("#FFFFFF"))
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	bestStyle   = cellStyle.Foreground(lipgloss.Color("#43B047"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

func runScores(cmd *cobra.Command, args []string) error {
	level := flagLevel
	if len(args) == 1 {
		level = args[0]
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.TopRuns(level, flagLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, titleStyle.Render("Best runs - "+level))
	if len(runs) == 0 {
		fmt.Fprintln(out, mutedStyle.Render("No runs recorded yet."))
		return nil
	}
	fmt.Fprintln(out, renderRuns(runs))

	if n, err := store.RunCount(level); err == nil {
		fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("%d runs recorded", n)))
	}
	return nil
}

func renderRuns(runs []storage.Run) string {
	rows := make([][]string, 0, len(runs))
	for i, r := range runs {
		form := "small"
		if r.Grown {
			form = "grown"
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(r.Score),
			form,
			r.Duration.Round(100 * time.Millisecond).String(),
			r.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(mutedStyle).
		Headers("#", "SCORE", "FORM", "TIME", "DATE").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row == 0:
				return bestStyle
			default:
				return cellStyle
			}
		}).
		Render()
}
