package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ayamprima/flockcore/internal/engine"
)

// WriteDailyCSV writes the enriched daily series of one flock.
func WriteDailyCSV(path string, series *engine.FlockSeries) error {
	file, err := createFile(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{
		"Date", "Age Week", "Stock Start", "Stock End",
		"Mortality M", "Mortality F", "Culls M", "Culls F",
		"Cum Mortality M %", "Cum Mortality F %",
		"Eggs", "Egg Prod %", "Hatch Eggs", "Hatch %",
		"Feed M kg", "Feed F kg", "Water L", "Water ml/bird",
		"Body Weight M", "Body Weight F", "Std Egg Prod %", "Notes",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for i := range series.Days {
		d := &series.Days[i]
		record := []string{
			d.Date.Format("2006-01-02"),
			fmt.Sprintf("%d", d.AgeWeek),
			fmt.Sprintf("%d", d.Stock.Start.Total()),
			fmt.Sprintf("%d", d.Stock.End.Total()),
			fmt.Sprintf("%d", d.MortalityMale),
			fmt.Sprintf("%d", d.MortalityFemale),
			fmt.Sprintf("%d", d.CullsMale),
			fmt.Sprintf("%d", d.CullsFemale),
			fmt.Sprintf("%.3f", d.CumMortalityMalePct),
			fmt.Sprintf("%.3f", d.CumMortalityFemalePct),
			fmt.Sprintf("%d", d.Log.EggsCollected),
			fmt.Sprintf("%.2f", d.EggProdPct),
			fmt.Sprintf("%d", d.HatchEggs),
			fmt.Sprintf("%.2f", d.HatchEggPct),
			fmt.Sprintf("%.1f", d.FeedMaleKg),
			fmt.Sprintf("%.1f", d.FeedFemaleKg),
			fmt.Sprintf("%.1f", d.Log.WaterIntake),
			fmt.Sprintf("%.1f", d.WaterPerBird),
			fmt.Sprintf("%.0f", d.Log.BodyWeightMale),
			fmt.Sprintf("%.0f", d.Log.BodyWeightFemale),
			formatOptional(d.StdEggProdPct),
			d.Log.Notes,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return nil
}

// WriteWeeklyCSV writes the age-week aggregates of one flock.
func WriteWeeklyCSV(path string, weekly []engine.Aggregate) error {
	file, err := createFile(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{
		"Week", "Start", "End", "Days", "Stock Start",
		"Mortality M", "Mortality F", "Mortality M %", "Mortality F %",
		"Cum Mortality M %", "Cum Mortality F %",
		"Eggs", "Egg Prod %", "Hatch Eggs", "Hatch %",
		"Feed M kg", "Feed F kg", "Water L",
		"Body Weight M", "Body Weight F", "Egg Weight", "Notes",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for i := range weekly {
		w := &weekly[i]
		record := []string{
			fmt.Sprintf("%d", w.Week),
			w.StartDate.Format("2006-01-02"),
			w.EndDate.Format("2006-01-02"),
			fmt.Sprintf("%d", w.Days),
			fmt.Sprintf("%d", w.StockStart.Total()),
			fmt.Sprintf("%d", w.MortalityMale),
			fmt.Sprintf("%d", w.MortalityFemale),
			fmt.Sprintf("%.3f", w.MortalityMalePct),
			fmt.Sprintf("%.3f", w.MortalityFemalePct),
			fmt.Sprintf("%.3f", w.CumMortalityMalePct),
			fmt.Sprintf("%.3f", w.CumMortalityFemalePct),
			fmt.Sprintf("%d", w.EggsCollected),
			fmt.Sprintf("%.2f", w.EggProdPct),
			fmt.Sprintf("%d", w.HatchEggs),
			fmt.Sprintf("%.2f", w.HatchEggPct),
			fmt.Sprintf("%.1f", w.FeedMaleKg),
			fmt.Sprintf("%.1f", w.FeedFemaleKg),
			fmt.Sprintf("%.1f", w.WaterTotal),
			fmt.Sprintf("%.0f", w.BodyWeightMale),
			fmt.Sprintf("%.0f", w.BodyWeightFemale),
			fmt.Sprintf("%.1f", w.EggWeight),
			w.Notes,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return nil
}

func createFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed creating export directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed creating export file: %w", err)
	}
	return file, nil
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *v)
}
