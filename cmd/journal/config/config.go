// Package config assembles component configurations from CLI flags,
// environment, and the optional config file.
package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"lab-journal-service/internal/loader"
	"lab-journal-service/internal/reporter"
	"lab-journal-service/internal/textnorm"
)

// CreateLoaderConfig builds the workbook loader configuration, applying
// overrides from the config file or environment when present.
func CreateLoaderConfig() (*loader.Config, error) {
	config := loader.DefaultConfig()

	if sheets := viper.GetStringSlice("sheets"); len(sheets) > 0 {
		config.Sheets = sheets
	}
	if col := viper.GetString("date-column"); col != "" {
		config.DateColumn = col
	}
	if col := viper.GetString("department-column"); col != "" {
		config.DepartmentColumn = col
	}
	if col := viper.GetString("building-column"); col != "" {
		config.BuildingColumn = col
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid loader config: %w", err)
	}
	return config, nil
}

// ReadDepartmentsFile reads the canonical department list: one name per
// line, blank lines and #-comments ignored, values normalized.
func ReadDepartmentsFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading departments file: %w", err)
	}
	defer f.Close()

	var departments []string
	seen := make(map[string]struct{})

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := textnorm.Normalize(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, dup := seen[line]; dup {
			continue
		}
		seen[line] = struct{}{}
		departments = append(departments, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading departments file: %w", err)
	}

	return departments, nil
}

// ParseAliasAssignments parses repeatable "raw=canonical" flag values
func ParseAliasAssignments(assignments []string) (map[string]string, error) {
	out := make(map[string]string, len(assignments))
	for _, a := range assignments {
		raw, canonical, found := strings.Cut(a, "=")
		raw = textnorm.Normalize(raw)
		canonical = textnorm.Normalize(canonical)
		if !found || raw == "" || canonical == "" {
			return nil, fmt.Errorf("invalid alias assignment %q, expected raw=canonical", a)
		}
		out[raw] = canonical
	}
	return out, nil
}

// CreateReportConfig creates a report configuration for the specified
// output format
func CreateReportConfig(format string) *reporter.ReportConfig {
	config := reporter.DefaultReportConfig()

	switch format {
	case "console":
		config.Format = reporter.FormatConsole
	case "json":
		config.Format = reporter.FormatJSON
	case "csv":
		config.Format = reporter.FormatCSV
		config.CSVHeaders = true
		config.CSVDelimiter = ','
	}

	return config
}
