package export

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/ayamprima/flockcore/internal/engine"
	"github.com/rs/zerolog/log"
)

// Exporter writes per-flock report CSVs and optionally archives them to
// object storage.
type Exporter struct {
	dir     string
	archive ObjectStorage
}

// NewExporter builds an exporter writing under dir. archive may be nil, in
// which case files stay local.
func NewExporter(dir string, archive ObjectStorage) *Exporter {
	if dir == "" {
		dir = "./exports"
	}
	return &Exporter{dir: dir, archive: archive}
}

// ExportFlock writes the daily and weekly CSVs for one enriched flock and
// uploads them when an archive is configured. Returns the local paths.
func (e *Exporter) ExportFlock(ctx context.Context, series *engine.FlockSeries) ([]string, error) {
	flockID := series.Flock.ID

	dailyPath := filepath.Join(e.dir, flockID, "daily.csv")
	if err := WriteDailyCSV(dailyPath, series); err != nil {
		return nil, fmt.Errorf("export daily csv for %s: %w", flockID, err)
	}

	weeklyPath := filepath.Join(e.dir, flockID, "weekly.csv")
	if err := WriteWeeklyCSV(weeklyPath, series.Weekly); err != nil {
		return nil, fmt.Errorf("export weekly csv for %s: %w", flockID, err)
	}

	paths := []string{dailyPath, weeklyPath}
	if e.archive == nil {
		return paths, nil
	}

	for _, path := range paths {
		key := flockID + "/" + filepath.Base(path)
		if err := e.archive.UploadFile(ctx, key, path); err != nil {
			return paths, err
		}
		log.Info().Str("key", key).Msg("report archived")
	}
	return paths, nil
}
