package analytics

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"salesboard/domain/table"
)

const (
	// TopCorrelations caps the correlation leaderboard length.
	TopCorrelations = 8
	// MinCorrelationPairs is the minimum number of valid co-observations a
	// candidate needs; below it the estimate is too noisy to rank.
	MinCorrelationPairs = 10
	// MaxCorrelationCandidates bounds the column scan on very wide datasets.
	MaxCorrelationCandidates = 50
)

// RankCorrelations scores every candidate column against the sales measure
// and returns the strongest absolute Pearson correlations. The full dataset
// is used, ignoring active filters: correlation describes dataset-wide
// relationships, not the current slice. Empty when the sales role is
// unassigned.
func RankCorrelations(ds *table.Dataset, roles table.RoleAssignment) table.RankedCorrelations {
	salesCol, ok := roles.Column(table.RoleSales)
	if !ok || ds == nil {
		return table.RankedCorrelations{}
	}

	ranked := make(table.RankedCorrelations, 0)
	candidates := 0
	for _, col := range ds.Columns {
		if col == salesCol {
			continue
		}
		if candidates == MaxCorrelationCandidates {
			break
		}
		candidates++

		xs, ys := pairedObservations(ds.Rows, salesCol, col)
		if len(xs) < MinCorrelationPairs {
			continue
		}

		r := pearson(xs, ys)
		ranked = append(ranked, table.CorrelationRank{
			Column: col,
			R:      math.Abs(r),
			PValue: pearsonPValue(r, len(xs)),
			Pairs:  len(xs),
		})
	}

	// Stable sort keeps column order for equal strengths.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].R > ranked[j].R
	})
	if len(ranked) > TopCorrelations {
		ranked = ranked[:TopCorrelations]
	}
	return ranked
}

// pairedObservations collects the rows where both the sales cell and the
// candidate cell parse as numbers.
func pairedObservations(rows []table.Row, salesCol, col string) ([]float64, []float64) {
	xs := make([]float64, 0, len(rows))
	ys := make([]float64, 0, len(rows))
	for _, row := range rows {
		salesCell, candCell := row[salesCol], row[col]
		if !salesCell.HasNumber() || !candCell.HasNumber() {
			continue
		}
		xs = append(xs, salesCell.Num)
		ys = append(ys, candCell.Num)
	}
	return xs, ys
}

// pearson computes the Pearson coefficient from deviations around the pair
// means. A zero denominator (constant series) is forced to 1, yielding r=0;
// this is a documented anti-crash approximation, not a rigorous treatment of
// degenerate inputs.
func pearson(xs, ys []float64) float64 {
	meanX, _ := stats.Mean(xs)
	meanY, _ := stats.Mean(ys)

	num, sumDX2, sumDY2 := 0.0, 0.0, 0.0
	for i := range xs {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		num += dx * dy
		sumDX2 += dx * dx
		sumDY2 += dy * dy
	}

	den := math.Sqrt(sumDX2 * sumDY2)
	if den == 0 {
		den = 1
	}
	return num / den
}

// pearsonPValue derives a two-sided p-value for r via the Student's-t
// transform with n-2 degrees of freedom.
func pearsonPValue(r float64, n int) float64 {
	if n <= 2 {
		return 1
	}
	r2 := r * r
	if r2 >= 1 {
		return 0
	}
	t := math.Abs(r) * math.Sqrt(float64(n-2)/(1-r2))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 2)}
	return 2 * dist.Survival(t)
}
