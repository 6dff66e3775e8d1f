package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/siherrmann/decayer"
	"github.com/siherrmann/decayer/core/curve"
	"github.com/siherrmann/decayer/core/decay"
	"github.com/siherrmann/decayer/model"
)

func main() {
	// In-memory catalog, no database needed
	d := decayer.New(decay.DefaultCatalog())

	// 1 µCi of freshly separated Th-227, queried after one Ra-223 half-life
	elapsed := 11.43
	req := model.CurveRequest{
		Pair:              "Th-227 / Ra-223",
		InitialActivities: []float64{1, 0},
		ActivityUnit:      model.ActivityUnitMicroCurie,
		TimeUnit:          model.TimeUnitDay,
		MeasuredDate:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		MeasuredTime:      "09:00",
		Elapsed:           &elapsed,
	}

	result, err := d.Compute(context.Background(), req)
	if err != nil {
		log.Fatalf("Failed to compute curve: %v", err)
	}

	fmt.Printf("Chain: %s\n", result.Chain)
	fmt.Printf("Sampled %d points over %s %s\n", result.Series.Len(), curve.FormatActivity(result.MaxSpan), result.TimeUnit)
	fmt.Printf("\nActivities after %s %s:\n", curve.FormatActivity(result.Elapsed), result.TimeUnit)
	for _, e := range result.Query.Entries {
		fmt.Printf("  %-8s %s %s (%s %%)\n", e.Nuclide, curve.FormatActivity(e.Activity), result.ActivityUnit, curve.FormatPercentage(e.Percentage))
	}

	fmt.Println("\nBasic example completed successfully!")
}
