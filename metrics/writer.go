package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Writer struct {
	baseDir string
}

// NewWriter creates a subfolder of root named by the current timestamp.
func NewWriter(root string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405.000000000Z")
	baseDir := filepath.Join(root, timestamp)
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

// WriteReport stores the session summary, every command and the per-verb
// aggregates as three CSV files.
func (w *Writer) WriteReport(r Report) error {
	if err := w.WriteSession(r.Session); err != nil {
		return err
	}
	if err := w.WriteCommands(r.Commands); err != nil {
		return err
	}
	return w.WriteVerbs(r.ByVerb())
}

func (w *Writer) WriteSession(s SessionMetric) error {
	header := []string{"start_time", "end_time", "duration", "commands", "failures"}
	rows := [][]string{{
		s.StartTime.Format(time.RFC3339Nano),
		s.EndTime.Format(time.RFC3339Nano),
		s.Duration.String(),
		strconv.Itoa(s.Commands),
		strconv.Itoa(s.Failures),
	}}
	return w.write("session.csv", header, rows)
}

func (w *Writer) WriteCommands(commands []CommandMetric) error {
	header := []string{"seq", "verb", "ok", "duration_ns"}
	rows := make([][]string, 0, len(commands))
	for _, c := range commands {
		rows = append(rows, []string{
			strconv.Itoa(c.Seq),
			c.Verb,
			strconv.FormatBool(c.OK),
			strconv.FormatInt(c.Duration.Nanoseconds(), 10),
		})
	}
	return w.write("commands.csv", header, rows)
}

func (w *Writer) WriteVerbs(verbs []VerbMetric) error {
	header := []string{"verb", "count", "failures", "total_ns", "mean_ns"}
	rows := make([][]string, 0, len(verbs))
	for _, v := range verbs {
		rows = append(rows, []string{
			v.Verb,
			strconv.Itoa(v.Count),
			strconv.Itoa(v.Failures),
			strconv.FormatInt(v.Total.Nanoseconds(), 10),
			strconv.FormatInt(v.Mean().Nanoseconds(), 10),
		})
	}
	return w.write("verbs.csv", header, rows)
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
