package analytics

import (
	"fmt"
	"math"
	"testing"
	"time"

	"salesboard/domain/table"
)

// makeDataset builds a normalized dataset from raw string records.
func makeDataset(columns []string, records [][]string) *table.Dataset {
	rows := make([]table.Row, len(records))
	for i, record := range records {
		row := make(table.Row, len(columns))
		for j, col := range columns {
			raw := ""
			if j < len(record) {
				raw = record[j]
			}
			row[col] = table.NormalizeCell(raw)
		}
		rows[i] = row
	}
	return &table.Dataset{Columns: columns, Rows: rows}
}

func view(ds *table.Dataset) table.FilteredView {
	return table.FilteredView(ds.Rows)
}

func TestComputeKPIs_EmptyView(t *testing.T) {
	ds := makeDataset([]string{"Sales"}, nil)
	roles := table.RoleAssignment{table.RoleSales: "Sales"}

	kpis := ComputeKPIs(table.FilteredView{}, roles, ds)
	if kpis.Orders != 0 {
		t.Errorf("orders = %d, want 0", kpis.Orders)
	}
	if !math.IsNaN(kpis.AOV) {
		t.Errorf("aov = %v, want NaN", kpis.AOV)
	}
	if math.IsInf(kpis.AOV, 0) {
		t.Error("aov must never be Inf")
	}
	if kpis.Revenue != 0 {
		t.Errorf("revenue = %v, want 0", kpis.Revenue)
	}
}

func TestComputeKPIs_RevenueSkipsUnparsable(t *testing.T) {
	ds := makeDataset([]string{"Sales"}, [][]string{{"₹1,000"}, {"junk"}, {"500"}})
	roles := table.RoleAssignment{table.RoleSales: "Sales"}

	kpis := ComputeKPIs(view(ds), roles, ds)
	if kpis.Revenue != 1500 {
		t.Errorf("revenue = %v, want 1500", kpis.Revenue)
	}
	if kpis.Orders != 3 {
		t.Errorf("orders = %d, want 3", kpis.Orders)
	}
	if kpis.AOV != 500 {
		t.Errorf("aov = %v, want 500", kpis.AOV)
	}
}

func TestComputeKPIs_RevenueNaNWhenSalesUnassigned(t *testing.T) {
	ds := makeDataset([]string{"Qty"}, [][]string{{"1"}})
	kpis := ComputeKPIs(view(ds), table.RoleAssignment{}, ds)
	if !math.IsNaN(kpis.Revenue) {
		t.Errorf("revenue = %v, want NaN", kpis.Revenue)
	}
	if !math.IsNaN(kpis.Profit) {
		t.Errorf("profit = %v, want NaN", kpis.Profit)
	}
	if kpis.Orders != 1 {
		t.Errorf("orders = %d, want 1 regardless of roles", kpis.Orders)
	}
}

func TestComputeKPIs_DerivedProfit(t *testing.T) {
	ds := makeDataset([]string{"Sales", "Cost"}, [][]string{{"100", "30"}, {"200", "70"}})
	roles := table.RoleAssignment{table.RoleSales: "Sales", table.RoleCost: "Cost"}

	kpis := ComputeKPIs(view(ds), roles, ds)
	if kpis.Profit != 200 {
		t.Errorf("profit = %v, want 200", kpis.Profit)
	}
}

func TestComputeKPIs_ExplicitProfitColumnWins(t *testing.T) {
	ds := makeDataset([]string{"Sales", "Cost", "Profit"}, [][]string{{"100", "30", "25"}, {"200", "70", "50"}})
	roles := table.RoleAssignment{
		table.RoleSales:  "Sales",
		table.RoleCost:   "Cost",
		table.RoleProfit: "Profit",
	}

	kpis := ComputeKPIs(view(ds), roles, ds)
	if kpis.Profit != 75 {
		t.Errorf("profit = %v, want 75 from the profit column", kpis.Profit)
	}
}

func TestComputeKPIs_GrowthWindows(t *testing.T) {
	last := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	inPeriod := last.AddDate(0, 0, -5)
	inPrev := last.AddDate(0, 0, -35)

	ds := makeDataset([]string{"Date", "Sales"}, [][]string{
		{inPrev.Format("2006-01-02"), "100"},
		{inPeriod.Format("2006-01-02"), "150"},
		{last.Format("2006-01-02"), "50"},
	})
	roles := table.RoleAssignment{table.RoleSales: "Sales", table.RoleDate: "Date"}

	kpis := ComputeKPIs(view(ds), roles, ds)
	if !kpis.GrowthAvailable {
		t.Fatal("growth should be available")
	}
	// period = 200, prev = 100 -> +100%
	if kpis.GrowthPct != 100 {
		t.Errorf("growth = %v, want 100", kpis.GrowthPct)
	}
}

func TestComputeKPIs_GrowthIgnoresActiveFilters(t *testing.T) {
	last := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	ds := makeDataset([]string{"Date", "Sales"}, [][]string{
		{last.AddDate(0, 0, -35).Format("2006-01-02"), "100"},
		{last.Format("2006-01-02"), "300"},
	})
	roles := table.RoleAssignment{table.RoleSales: "Sales", table.RoleDate: "Date"}

	// The view is empty, as if a slicer excluded everything; growth still
	// reflects the full dataset.
	kpis := ComputeKPIs(table.FilteredView{}, roles, ds)
	if !kpis.GrowthAvailable {
		t.Fatal("growth should be available")
	}
	if kpis.GrowthPct != 200 {
		t.Errorf("growth = %v, want 200", kpis.GrowthPct)
	}
}

func TestComputeKPIs_GrowthUnavailableCases(t *testing.T) {
	// No date role.
	ds := makeDataset([]string{"Sales"}, [][]string{{"100"}})
	kpis := ComputeKPIs(view(ds), table.RoleAssignment{table.RoleSales: "Sales"}, ds)
	if kpis.GrowthAvailable {
		t.Error("growth must be unavailable without a date role")
	}

	// Date role assigned but nothing parses.
	ds = makeDataset([]string{"Date", "Sales"}, [][]string{{"junk", "100"}})
	roles := table.RoleAssignment{table.RoleSales: "Sales", table.RoleDate: "Date"}
	kpis = ComputeKPIs(view(ds), roles, ds)
	if kpis.GrowthAvailable {
		t.Error("growth must be unavailable without parseable dates")
	}

	// Empty preceding window.
	records := [][]string{}
	base := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		records = append(records, []string{base.AddDate(0, 0, -i).Format("2006-01-02"), "10"})
	}
	ds = makeDataset([]string{"Date", "Sales"}, records)
	kpis = ComputeKPIs(view(ds), roles, ds)
	if kpis.GrowthAvailable {
		t.Error("growth must be unavailable when the preceding window sums to zero")
	}
}

func TestComputeKPIs_Idempotent(t *testing.T) {
	ds := makeDataset([]string{"Date", "Sales", "Cost"}, [][]string{
		{"2024-01-01", "100", "40"},
		{"2024-02-01", "250", "60"},
	})
	roles := table.RoleAssignment{
		table.RoleSales: "Sales",
		table.RoleDate:  "Date",
		table.RoleCost:  "Cost",
	}

	first := ComputeKPIs(view(ds), roles, ds)
	for i := 0; i < 5; i++ {
		if got := ComputeKPIs(view(ds), roles, ds); got != first {
			t.Fatalf("run %d differed: %+v vs %+v", i, got, first)
		}
	}
}

func ExampleComputeKPIs() {
	ds := makeDataset([]string{"Sales"}, [][]string{{"100"}, {"200"}})
	roles := table.RoleAssignment{table.RoleSales: "Sales"}
	kpis := ComputeKPIs(table.FilteredView(ds.Rows), roles, ds)
	fmt.Println(kpis.Revenue, kpis.Orders, kpis.AOV)
	// Output: 300 2 150
}
