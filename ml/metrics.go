package ml

import (
	"slices"
	"sort"
	"strconv"

	"github.com/samber/lo"
)

type ClassMetrics struct {
	Label     string
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// CategoryReport mirrors a classification report for one output column.
type CategoryReport struct {
	Category    string
	Classes     []ClassMetrics
	Accuracy    float64
	MacroAvg    ClassMetrics
	WeightedAvg ClassMetrics
	Support     int
}

// ClassificationReport computes per-class precision, recall and F1 over the
// classes seen in either truth or prediction. Undefined ratios are 0.
func ClassificationReport(category string, truth, pred []int) CategoryReport {
	classes := lo.Uniq(append(append([]int{}, truth...), pred...))
	sort.Ints(classes)

	report := CategoryReport{Category: category, Support: len(truth)}
	correct := 0
	for i := range truth {
		if truth[i] == pred[i] {
			correct++
		}
	}
	report.Accuracy = ratio(float64(correct), float64(len(truth)))

	for _, c := range classes {
		tp, fp, fn := 0, 0, 0
		for i := range truth {
			switch {
			case truth[i] == c && pred[i] == c:
				tp++
			case truth[i] != c && pred[i] == c:
				fp++
			case truth[i] == c && pred[i] != c:
				fn++
			}
		}
		precision := ratio(float64(tp), float64(tp+fp))
		recall := ratio(float64(tp), float64(tp+fn))
		report.Classes = append(report.Classes, ClassMetrics{
			Label:     strconv.Itoa(c),
			Precision: precision,
			Recall:    recall,
			F1:        ratio(2*precision*recall, precision+recall),
			Support:   tp + fn,
		})
	}

	n := float64(len(report.Classes))
	report.MacroAvg = ClassMetrics{Label: "macro avg", Support: report.Support}
	report.WeightedAvg = ClassMetrics{Label: "weighted avg", Support: report.Support}
	for _, m := range report.Classes {
		report.MacroAvg.Precision += ratio(m.Precision, n)
		report.MacroAvg.Recall += ratio(m.Recall, n)
		report.MacroAvg.F1 += ratio(m.F1, n)
		w := ratio(float64(m.Support), float64(report.Support))
		report.WeightedAvg.Precision += m.Precision * w
		report.WeightedAvg.Recall += m.Recall * w
		report.WeightedAvg.F1 += m.F1 * w
	}
	return report
}

// Evaluate builds one report per category from row-major label matrices.
func Evaluate(categories []string, truth, pred [][]int) []CategoryReport {
	return lo.Map(categories, func(name string, c int) CategoryReport {
		column := func(rows [][]int) []int {
			return lo.Map(rows, func(r []int, _ int) int { return r[c] })
		}
		return ClassificationReport(name, column(truth), column(pred))
	})
}

// SubsetAccuracy is the share of rows whose labels are all predicted right.
func SubsetAccuracy(truth, pred [][]int) float64 {
	exact := lo.CountBy(lo.Range(len(truth)), func(i int) bool {
		return slices.Equal(truth[i], pred[i])
	})
	return ratio(float64(exact), float64(len(truth)))
}

// MeanWeightedF1 averages the weighted F1 over categories.
func MeanWeightedF1(reports []CategoryReport) float64 {
	return lo.MeanBy(reports, func(r CategoryReport) float64 { return r.WeightedAvg.F1 })
}

func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
