package convert

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sungjoo-yoon/picksheet-go/pkg/picksheet/sheetio"
)

// batchLogName is the log entry bundled into every batch archive.
const batchLogName = "batch_convert_log.txt"

// BatchEntry reports one file's outcome in a batch conversion.
type BatchEntry struct {
	Source   string
	Output   string
	Platform Platform
	Rows     int
	Err      error
}

// logLine renders the entry the way the batch log records it.
func (e BatchEntry) logLine() string {
	name := filepath.Base(e.Source)
	if e.Err != nil {
		if e.Platform == "" {
			return fmt.Sprintf("[FAIL] %s: 파일 읽기 오류 - %v", name, e.Err)
		}
		return fmt.Sprintf("[FAIL] %s: %s 처리 중 오류 - %v",
			name, strings.ToUpper(string(e.Platform)), e.Err)
	}
	return fmt.Sprintf("[OK]   %s: %s → rows=%d → %s",
		name, strings.ToUpper(string(e.Platform)), e.Rows, e.Output)
}

// Batch converts every path and bundles the converted workbooks into a
// zip archive at zipPath, together with a log naming each outcome.
// Per-file read and conversion failures land in the entries, not in the
// returned error.
func Batch(paths []string, opts Options, zipPath string) ([]BatchEntry, error) {
	out, err := os.Create(zipPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create archive: %w", err)
	}

	zw := zip.NewWriter(out)
	entries := make([]BatchEntry, 0, len(paths))
	for _, path := range paths {
		entries = append(entries, convertInto(zw, path, opts))
	}

	if err := writeBatchLog(zw, entries); err != nil {
		zw.Close()
		out.Close()
		return entries, err
	}
	if err := zw.Close(); err != nil {
		out.Close()
		return entries, err
	}
	return entries, out.Close()
}

func convertInto(zw *zip.Writer, path string, opts Options) BatchEntry {
	entry := BatchEntry{Source: path}

	src, err := sheetio.Load(path)
	if err != nil {
		entry.Err = err
		return entry
	}

	entry.Platform = Detect(src)
	result, err := Convert(src, entry.Platform, opts)
	if err != nil {
		entry.Err = err
		return entry
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	entry.Output = fmt.Sprintf("%s__%s_converted.xlsx", stem, entry.Platform)
	entry.Rows = len(result.Table.Rows)

	w, err := zw.Create(entry.Output)
	if err != nil {
		entry.Err = err
		return entry
	}
	if err := sheetio.WriteTo(w, result.Table, ""); err != nil {
		entry.Err = err
	}
	return entry
}

func writeBatchLog(zw *zip.Writer, entries []BatchEntry) error {
	w, err := zw.Create(batchLogName)
	if err != nil {
		return err
	}
	lines := make([]string, 0, len(entries)+1)
	lines = append(lines, "Batch Convert Log - "+time.Now().Format("2006-01-02 15:04:05"))
	for _, e := range entries {
		lines = append(lines, e.logLine())
	}
	_, err = io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}
