// Package report renders classification reports as plain text tables.
package report

import (
	"disaster-response/ml"
	"fmt"
	"io"
	"strconv"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

var headingStyle = color.New(color.BgBlack, color.FgGreen)

// Write prints one table per category followed by a summary of every category.
func Write(w io.Writer, reports []ml.CategoryReport, colours bool) error {
	for _, r := range reports {
		if err := writeCategory(w, r, colours); err != nil {
			return err
		}
	}
	return writeSummary(w, reports, colours)
}

func writeCategory(w io.Writer, r ml.CategoryReport, colours bool) error {
	if _, err := fmt.Fprintln(w, heading("Category: "+r.Category, colours)); err != nil {
		return err
	}
	table := newTable(w)
	table.SetHeader([]string{"", "precision", "recall", "f1-score", "support"})
	for _, c := range r.Classes {
		table.Append(metricsRow(c))
	}
	table.Append([]string{"accuracy", "", "", decimal(r.Accuracy), strconv.Itoa(r.Support)})
	table.Append(metricsRow(r.MacroAvg))
	table.Append(metricsRow(r.WeightedAvg))
	table.Render()
	_, err := fmt.Fprintln(w)
	return err
}

func writeSummary(w io.Writer, reports []ml.CategoryReport, colours bool) error {
	if _, err := fmt.Fprintln(w, heading("Summary", colours)); err != nil {
		return err
	}
	table := newTable(w)
	table.SetHeader([]string{"category", "accuracy", "weighted f1", "support"})
	for _, r := range reports {
		table.Append([]string{r.Category, decimal(r.Accuracy), decimal(r.WeightedAvg.F1), strconv.Itoa(r.Support)})
	}
	table.SetFooter([]string{
		"mean",
		decimal(lo.MeanBy(reports, func(r ml.CategoryReport) float64 { return r.Accuracy })),
		decimal(ml.MeanWeightedF1(reports)),
		"",
	})
	table.Render()
	return nil
}

func newTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_RIGHT)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

func metricsRow(m ml.ClassMetrics) []string {
	return []string{m.Label, decimal(m.Precision), decimal(m.Recall), decimal(m.F1), strconv.Itoa(m.Support)}
}

func heading(text string, colours bool) string {
	if !colours {
		return text
	}
	return headingStyle.Render(text)
}

func decimal(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
