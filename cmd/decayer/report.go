package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fatih/color"
	"github.com/siherrmann/decayer/core/curve"
	"github.com/siherrmann/decayer/core/graph"
	"github.com/siherrmann/decayer/model"
)

const dateTimeLayout = "2006-01-02 15:04"

// printReport writes the query result of a computation as a table
func printReport(w io.Writer, result *model.CurveResult, config model.CurveConfig) error {
	bold := color.New(color.Bold).SprintFunc()

	fmt.Fprintf(w, "%s %s\n", bold("Chain:"), result.Chain)
	fmt.Fprintf(w, "%s %s\n", bold("Measured:"), result.MeasuredAt.Format(dateTimeLayout))
	if result.TargetAt != nil {
		fmt.Fprintf(w, "%s %s\n", bold("Target:"), result.TargetAt.Format(dateTimeLayout))
	}
	fmt.Fprintf(w, "%s %s %s\n", bold("Elapsed:"), curve.FormatDecimal(result.Elapsed, config.ActivityDecimals), result.TimeUnit)
	fmt.Fprintf(w, "%s %s %s\n", bold("Span:"), curve.FormatDecimal(result.MaxSpan, config.ActivityDecimals), result.TimeUnit)

	query := result.Query
	if query.Clamped {
		fmt.Fprintln(w, color.YellowString("Elapsed time is outside the sampled span, showing %s %s",
			curve.FormatDecimal(query.ClampedTime, config.ActivityDecimals), result.TimeUnit))
	}
	fmt.Fprintln(w)

	rows := make([][]string, 0, len(query.Entries)+1)
	for _, e := range query.Entries {
		rows = append(rows, []string{
			e.Nuclide,
			formatHalfLife(result.HalfLives[e.Nuclide], config.ActivityDecimals),
			curve.FormatDecimal(e.Activity, config.ActivityDecimals),
			curve.FormatDecimal(e.Percentage, config.PercentDecimals),
		})
	}
	rows = append(rows, []string{"Total", "", curve.FormatDecimal(query.Total, config.ActivityDecimals), ""})

	t := newTable([]string{
		"NUCLIDE",
		fmt.Sprintf("HALF-LIFE (%s)", result.TimeUnit),
		fmt.Sprintf("ACTIVITY (%s)", result.ActivityUnit),
		"SHARE (%)",
	}, rows, 1, 2, 3)
	_, err := fmt.Fprintln(w, t.String())
	return err
}

// newTable renders rows without borders except the line under the header.
// The numeric columns are aligned right.
func newTable(headers []string, rows [][]string, numeric ...int) *table.Table {
	return table.New().
		Headers(headers...).
		Rows(rows...).
		BorderHeader(true).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderRow(false).
		BorderColumn(false).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 2, 0, 0)
			if row == table.HeaderRow {
				return style.Foreground(lipgloss.Color("6")).Bold(true)
			}
			if slices.Contains(numeric, col) {
				return style.Align(lipgloss.Right)
			}
			return style
		})
}

// writeCSV writes one row per sample with a column per nuclide
func writeCSV(w io.Writer, series *model.DecayTimeSeries) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, len(series.Nuclides)+1)
	header = append(header, fmt.Sprintf("time (%s)", series.TimeUnit))
	for _, n := range series.Nuclides {
		header = append(header, fmt.Sprintf("%s (%s)", n, series.ActivityUnit))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	for i, t := range series.Times {
		row[0] = strconv.FormatFloat(t, 'g', -1, 64)
		for j, n := range series.Nuclides {
			row[j+1] = strconv.FormatFloat(series.Activities[n][i], 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// writeJSON writes the complete result indented
func writeJSON(w io.Writer, result *model.CurveResult) error {
	halfLives := make(map[string]*float64, len(result.HalfLives))
	for name, h := range result.HalfLives {
		if !math.IsInf(h, 1) {
			halfLives[name] = &h
		} else {
			halfLives[name] = nil
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(struct {
		*model.CurveResult
		HalfLives map[string]*float64 `json:"half_lives"`
	}{result, halfLives})
}

func printPairs(w io.Writer, pairs []model.NuclidePair) error {
	rows := make([][]string, 0, len(pairs))
	for _, p := range pairs {
		rows = append(rows, []string{p.Label, p.Parent, p.Progeny})
	}
	_, err := fmt.Fprintln(w, newTable([]string{"PAIR", "PARENT", "PROGENY"}, rows).String())
	return err
}

func printNuclides(w io.Writer, nuclides []*model.Nuclide) error {
	rows := make([][]string, 0, len(nuclides))
	for _, n := range nuclides {
		rows = append(rows, []string{n.Name, describeHalfLife(n)})
	}
	_, err := fmt.Fprintln(w, newTable([]string{"NUCLIDE", "HALF-LIFE"}, rows).String())
	return err
}

func printSteps(w io.Writer, steps []*graph.ChainStep) error {
	rows := make([][]string, 0, len(steps))
	for _, s := range steps {
		rows = append(rows, []string{
			s.Nuclide.Name,
			strconv.Itoa(s.Distance),
			describeHalfLife(s.Nuclide),
			strconv.FormatFloat(s.Fraction, 'g', 6, 64),
			model.NuclideChain(s.Path).String(),
		})
	}
	_, err := fmt.Fprintln(w, newTable([]string{"NUCLIDE", "DISTANCE", "HALF-LIFE", "FRACTION", "PATH"}, rows, 1, 3).String())
	return err
}

func formatHalfLife(h float64, places int32) string {
	if math.IsInf(h, 1) {
		return "stable"
	}
	return curve.FormatDecimal(h, places)
}

// describeHalfLife picks the longest unit that keeps the value at least one
func describeHalfLife(n *model.Nuclide) string {
	if n.Stable() {
		return "stable"
	}
	for _, unit := range model.TimeUnits() {
		v, err := n.HalfLifeIn(unit)
		if err == nil && (v >= 1 || unit == model.TimeUnitSecond) {
			return fmt.Sprintf("%s %s", strconv.FormatFloat(v, 'g', 6, 64), unit)
		}
	}
	return curve.Undefined
}
