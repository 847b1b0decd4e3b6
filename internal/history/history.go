package history

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
	"github.com/storefront-insights/captain/internal/vision"
)

// Row is one analyzed screen of one run
type Row struct {
	RunID      string `parquet:"run_id"`
	BatchID    string `parquet:"batch_id"`
	AnalyzedAt string `parquet:"analyzed_at"`
	Provider   string `parquet:"provider"`
	Model      string `parquet:"model"`
	RunOverall int    `parquet:"run_overall"`

	Screen  string `parquet:"screen"`
	Device  string `parquet:"device"`
	Status  string `parquet:"status"`
	Overall int    `parquet:"overall"`

	EcommerceVisibility int `parquet:"ecommerce_visibility"`
	VisualHierarchy     int `parquet:"visual_hierarchy"`
	SearchFirst         int `parquet:"search_first"`
	MobileFirst         int `parquet:"mobile_first"`
	Simplicity          int `parquet:"simplicity"`
	Accessibility       int `parquet:"accessibility"`
	BrandConsistency    int `parquet:"brand_consistency"`

	CartIconVisible     bool `parquet:"cart_icon_visible"`
	PricingVisible      bool `parquet:"pricing_visible"`
	AddToCartButtons    bool `parquet:"add_to_cart_buttons"`
	ShoppingIntentClear bool `parquet:"shopping_intent_clear"`

	Recommendations int `parquet:"recommendations"`
}

// Trend compares a run's overall score with the previous run
type Trend struct {
	Previous int
	Current  int
	Delta    int
	Label    string // IMPROVING / DECLINING / SAME / FIRST_RUN
}

// RunSummary is one run reconstructed from its rows
type RunSummary struct {
	RunID      string
	BatchID    string
	AnalyzedAt string
	Provider   string
	Model      string
	Overall    int
	Screens    int
	Failed     int
}

// RowsFromScorecard flattens a scorecard into history rows
func RowsFromScorecard(runID string, card vision.Scorecard) []Row {
	rows := make([]Row, 0, len(card.Screens))
	for _, s := range card.Screens {
		rows = append(rows, Row{
			RunID:      runID,
			BatchID:    card.BatchID,
			AnalyzedAt: card.AnalyzedAt,
			Provider:   card.Provider,
			Model:      card.Model,
			RunOverall: card.OverallScore,

			Screen:  s.ScreenName,
			Device:  s.Device,
			Status:  s.Status,
			Overall: s.OverallScore,

			EcommerceVisibility: s.SubScores[vision.CategoryEcommerceVisibility],
			VisualHierarchy:     s.SubScores[vision.CategoryVisualHierarchy],
			SearchFirst:         s.SubScores[vision.CategorySearchFirst],
			MobileFirst:         s.SubScores[vision.CategoryMobileFirst],
			Simplicity:          s.SubScores[vision.CategorySimplicity],
			Accessibility:       s.SubScores[vision.CategoryAccessibility],
			BrandConsistency:    s.SubScores[vision.CategoryBrandConsistency],

			CartIconVisible:     s.FeatureFlags[vision.FlagCartIconVisible],
			PricingVisible:      s.FeatureFlags[vision.FlagPricingVisible],
			AddToCartButtons:    s.FeatureFlags[vision.FlagAddToCartButtons],
			ShoppingIntentClear: s.FeatureFlags[vision.FlagShoppingIntentClear],

			Recommendations: len(s.Recommendations),
		})
	}
	return rows
}

// Record appends the scorecard's screens to the parquet file at path and
// returns the trend against the previous run
func Record(path, runID string, card vision.Scorecard) (Trend, error) {
	existing, err := Load(path)
	if err != nil {
		return Trend{}, err
	}

	prev := -1
	if len(existing) > 0 {
		prev = existing[len(existing)-1].RunOverall
	}

	newRows := RowsFromScorecard(runID, card)
	if len(newRows) == 0 {
		return Trend{}, fmt.Errorf("scorecard has no screens to record")
	}

	if err := write(path, append(existing, newRows...)); err != nil {
		return Trend{}, err
	}

	slog.Info("Recorded run history", "path", path, "run_id", runID, "rows", len(newRows), "total_rows", len(existing)+len(newRows))

	tr := Trend{Previous: prev, Current: card.OverallScore, Delta: 0, Label: "FIRST_RUN"}

	if prev >= 0 {
		tr.Delta = tr.Current - tr.Previous
		if tr.Delta > 0 {
			tr.Label = "IMPROVING"
		} else if tr.Delta < 0 {
			tr.Label = "DECLINING"
		} else {
			tr.Label = "SAME"
		}
	}

	return tr, nil
}

// write replaces the file atomically via a temp file in the same directory
func write(path string, rows []Row) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	tmp := path + ".tmp"
	file, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create history file: %w", err)
	}

	writer := parquet.NewGenericWriter[Row](file)
	if _, err := writer.Write(rows); err != nil {
		file.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to write history rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		file.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to finalize history file: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to close history file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace history file: %w", err)
	}

	return nil
}

// Load reads every row from the parquet file. A missing file yields no rows.
func Load(path string) ([]Row, error) {
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open history file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	slog.Debug("History file opened", "path", path, "num_rows", pf.NumRows())

	reader := parquet.NewGenericReader[Row](pf)
	defer reader.Close()

	var records []Row
	rows := make([]Row, 128)

	for {
		n, err := reader.Read(rows)
		if n > 0 {
			records = append(records, rows[:n]...)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read history rows: %w", err)
		}
	}

	return records, nil
}

// Runs groups rows by run, in the order runs were recorded
func Runs(rows []Row) []RunSummary {
	var runs []RunSummary
	index := make(map[string]int)

	for _, r := range rows {
		i, ok := index[r.RunID]
		if !ok {
			index[r.RunID] = len(runs)
			runs = append(runs, RunSummary{
				RunID:      r.RunID,
				BatchID:    r.BatchID,
				AnalyzedAt: r.AnalyzedAt,
				Provider:   r.Provider,
				Model:      r.Model,
				Overall:    r.RunOverall,
			})
			i = len(runs) - 1
		}
		runs[i].Screens++
		if r.Status != vision.StatusOK {
			runs[i].Failed++
		}
	}

	return runs
}
