package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"lab-journal-service/pkg/errors"
)

func TestValidateFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "journal.xlsx")
	if err := os.WriteFile(path, []byte("stub"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := validateFileExists(path, "journal workbook"); err != nil {
		t.Errorf("existing file rejected: %v", err)
	}
	if err := validateFileExists(filepath.Join(dir, "missing.xlsx"), "journal workbook"); err == nil {
		t.Error("missing file accepted")
	}
	if err := validateFileExists(dir, "journal workbook"); err == nil {
		t.Error("directory accepted as file")
	}
	if err := validateFileExists("", "journal workbook"); err == nil {
		t.Error("empty path accepted")
	}
}

func TestValidateOutputFlags(t *testing.T) {
	defer func() { outputFormat, outputFile = "console", "" }()

	outputFile = ""
	for _, format := range []string{"console", "json", "csv"} {
		outputFormat = format
		if err := validateOutputFlags(); err != nil {
			t.Errorf("format %q rejected: %v", format, err)
		}
	}

	outputFormat = "xml"
	if err := validateOutputFlags(); err == nil {
		t.Error("invalid format accepted")
	}

	outputFormat = "json"
	outputFile = filepath.Join(t.TempDir(), "nope", "out.json")
	if err := validateOutputFlags(); err == nil {
		t.Error("missing output directory accepted")
	}
}

func TestHandleErrorExitCodes(t *testing.T) {
	h := NewCLIErrorHandler()

	if code := h.HandleError(nil); code != 0 {
		t.Errorf("nil error exit code = %d, want 0", code)
	}

	fileErr := errors.FileError(errors.CodeFileNotFound, "journal.xlsx", os.ErrNotExist)
	if code := h.HandleError(fileErr); code != 2 {
		t.Errorf("file error exit code = %d, want 2", code)
	}

	parseErr := errors.MissingColumnError("Воздух", "Подразделение")
	if code := h.HandleError(parseErr); code != 3 {
		t.Errorf("parse error exit code = %d, want 3", code)
	}

	if code := h.HandleError(os.ErrNotExist); code != 2 {
		t.Errorf("generic not-found exit code = %d, want 2", code)
	}
}
