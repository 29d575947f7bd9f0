package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"TickerBoard/internal/board"
	"TickerBoard/internal/calculator"
)

var fetchOutput string

var fetchCmd = &cobra.Command{
	Use:   "fetch TICKER",
	Short: "Fetch one month of closes and render the chart to a PNG file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := newBoard(cfg)
		if err != nil {
			return err
		}
		res, err := b.Search(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if err := writeChart(res, fetchOutput); err != nil {
			return err
		}
		sum, err := calculator.Summarize(res.Series)
		if err != nil {
			return err
		}
		printSummary(cmd.OutOrStdout(), sum, fetchOutput)
		return nil
	},
}

func init() {
	fetchCmd.Flags().StringVarP(&fetchOutput, "output", "o", "chart.png", "PNG file to write")
}

// writeChart saves the rendered chart. A superseded result has no image.
func writeChart(res *board.Result, path string) error {
	if res.Superseded || res.Instance == nil {
		return fmt.Errorf("chart for %s was superseded by a newer search", res.Series.Symbol())
	}
	if err := os.WriteFile(path, res.Instance.PNG(), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#007BFF"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Width(10)
	upStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#1A7F37"))
	downStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#CF222E"))
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func printSummary(w io.Writer, sum *calculator.Summary, path string) {
	change := upStyle
	if sum.Change < 0 {
		change = downStyle
	}
	row := func(label, value string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), value)
	}
	rows := []string{
		titleStyle.Render(sum.Symbol),
		row("Last", fmt.Sprintf("%.2f", sum.Last)),
		row("Change", change.Render(fmt.Sprintf("%+.2f (%+.2f%%)", sum.Change, sum.ChangePct))),
		row("Range", fmt.Sprintf("%.2f - %.2f", sum.Low, sum.High)),
		row("RSI(14)", fmt.Sprintf("%.1f", sum.RSI)),
	}
	if sum.SMA > 0 {
		rows = append(rows, row("SMA(5)", fmt.Sprintf("%.2f", sum.SMA)))
	}
	rows = append(rows,
		row("Sessions", fmt.Sprintf("%d", sum.Points)),
		row("Chart", path),
	)
	fmt.Fprintln(w, boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))
}
