package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/siherrmann/decayer"
	"github.com/siherrmann/decayer/core/curve"
	"github.com/siherrmann/decayer/helper"
	"github.com/siherrmann/decayer/model"
)

func main() {
	// Start a test PostgreSQL container
	teardown, dbPort, err := helper.MustStartPostgresContainer()
	if err != nil {
		log.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	defer teardown(context.Background())

	// Create database configuration using the container port
	dbConfig := &helper.DatabaseConfiguration{
		Host:     "localhost",
		Port:     dbPort,
		Database: "database",
		Username: "user",
		Password: "password",
		Schema:   "public",
		SSLMode:  "disable",
	}

	// The empty catalog is seeded with the default nuclides
	config := model.DefaultCurveConfig()
	config.Points = 1001
	d, err := decayer.NewWithDatabase(dbConfig, decayer.WithConfig(config))
	if err != nil {
		log.Fatalf("Failed to create decayer: %v", err)
	}
	defer d.Close()

	ctx := context.Background()

	nuclides, err := d.Nuclides(ctx)
	if err != nil {
		log.Fatalf("Failed to list nuclides: %v", err)
	}
	fmt.Printf("Catalog holds %d nuclides\n", len(nuclides))

	// A Mo-99 generator eluted at 08:00, queried the next morning
	measured := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	target := measured.AddDate(0, 0, 1)
	req := model.CurveRequest{
		Chain:             model.NuclideChain{"Mo-99", "Tc-99m"},
		InitialActivities: []float64{20, 0},
		ActivityUnit:      model.ActivityUnitMilliCurie,
		TimeUnit:          model.TimeUnitHour,
		MeasuredDate:      measured,
		MeasuredTime:      "08:00",
		TargetDate:        &target,
		TargetTime:        "07:30",
	}

	result, err := d.Compute(ctx, req)
	if err != nil {
		log.Fatalf("Failed to compute curve: %v", err)
	}

	fmt.Printf("\nChain: %s, %s %s elapsed\n", result.Chain, curve.FormatActivity(result.Elapsed), result.TimeUnit)
	for _, e := range result.Query.Entries {
		fmt.Printf("  %-8s %s %s (%s %%)\n", e.Nuclide, curve.FormatActivity(e.Activity), result.ActivityUnit, curve.FormatPercentage(e.Percentage))
	}

	// Every pair in one go
	fmt.Println("\nAll pairs, 1 µCi parent after 24 h:")
	for _, pair := range d.Pairs() {
		elapsed := 24.0
		res, err := d.Compute(ctx, model.CurveRequest{
			Pair:              pair.Label,
			InitialActivities: []float64{1, 0},
			ActivityUnit:      model.ActivityUnitMicroCurie,
			TimeUnit:          model.TimeUnitHour,
			MeasuredDate:      measured,
			MeasuredTime:      "08:00",
			Elapsed:           &elapsed,
		})
		if err != nil {
			log.Fatalf("Failed to compute %s: %v", pair.Label, err)
		}
		progeny, _ := res.Query.Entry(pair.Progeny)
		fmt.Printf("  %-16s %s: %s µCi\n", pair.Label, pair.Progeny, curve.FormatActivity(progeny.Activity))
	}

	fmt.Println("\nAdvanced example completed successfully!")
}
