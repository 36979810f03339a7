package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type EpisodeRecord struct {
	ID       int
	Strategy string
	Seed     uint64
	EpisodeMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates root/name/<timestamp> to hold one experiment's CSV files.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteSummaries(summaries []Summary) error {
	header := []string{
		"strategy", "episodes", "truncated",
		"score_mean", "score_std", "score_median", "score_min", "score_max",
		"labels_mean", "flips_mean", "flips_per_label_mean", "reward_mean",
		"accuracy", "precision", "recall", "f1",
	}
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			s.Strategy,
			strconv.Itoa(s.Episodes),
			strconv.Itoa(s.Truncated),
			formatFloat(s.Score.Mean),
			formatFloat(s.Score.Std),
			formatFloat(s.Score.Median),
			formatFloat(s.Score.Min),
			formatFloat(s.Score.Max),
			formatFloat(s.Labels.Mean),
			formatFloat(s.Flips.Mean),
			formatFloat(s.FlipsPerLabel.Mean),
			formatFloat(s.Reward.Mean),
			formatFloat(s.Confusion.Accuracy()),
			formatFloat(s.Confusion.Precision()),
			formatFloat(s.Confusion.Recall()),
			formatFloat(s.Confusion.F1()),
		})
	}
	return w.write("summary.csv", header, rows)
}

func (w *Writer) WriteEpisodes(records []EpisodeRecord) error {
	header := []string{"id", "strategy", "seed", "score", "steps", "flips", "labels", "reward", "truncated", "duration"}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			strconv.Itoa(r.ID),
			r.Strategy,
			strconv.FormatUint(r.Seed, 10),
			strconv.Itoa(r.Score),
			strconv.Itoa(r.Steps),
			strconv.Itoa(r.Flips),
			strconv.Itoa(len(r.Labels)),
			strconv.Itoa(r.Reward),
			strconv.FormatBool(r.Truncated),
			r.Duration.String(),
		})
	}
	return w.write("episodes.csv", header, rows)
}

func (w *Writer) WriteLabels(records []EpisodeRecord) error {
	header := []string{"episode", "strategy", "index", "predicted", "truth", "correct", "flips"}
	rows := [][]string{}
	for _, r := range records {
		for i, l := range r.Labels {
			rows = append(rows, []string{
				strconv.Itoa(r.ID),
				r.Strategy,
				strconv.Itoa(i),
				l.Predicted.String(),
				l.Truth.String(),
				strconv.FormatBool(l.Correct),
				strconv.Itoa(l.Flips),
			})
		}
	}
	return w.write("labels.csv", header, rows)
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
