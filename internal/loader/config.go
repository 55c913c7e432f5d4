package loader

import (
	"fmt"
	"strings"
)

// Default logical column labels and sheet names of the journal workbook.
// Headers are matched after normalization, exact first and substring second,
// so minor header edits in the source file keep working.
const (
	DefaultDateColumn       = "Дата исследования"
	DefaultDepartmentColumn = "Подразделение"
	DefaultBuildingColumn   = "Корпус"
)

// DefaultSheets returns the sampling-category sheet names of the journal
func DefaultSheets() []string {
	return []string{"Абиотические", "Воздух", "Персонал"}
}

// Config holds the workbook layout expected by the Loader
type Config struct {
	Sheets           []string `json:"sheets"`
	DateColumn       string   `json:"date_column"`
	DepartmentColumn string   `json:"department_column"`
	BuildingColumn   string   `json:"building_column"`
}

// DefaultConfig returns a configuration for the standard journal layout
func DefaultConfig() *Config {
	return &Config{
		Sheets:           DefaultSheets(),
		DateColumn:       DefaultDateColumn,
		DepartmentColumn: DefaultDepartmentColumn,
		BuildingColumn:   DefaultBuildingColumn,
	}
}

// Validate performs basic validation on the Config
func (c *Config) Validate() error {
	if len(c.Sheets) == 0 {
		return fmt.Errorf("at least one sheet name is required")
	}
	for _, sheet := range c.Sheets {
		if strings.TrimSpace(sheet) == "" {
			return fmt.Errorf("sheet names cannot be empty")
		}
	}
	if strings.TrimSpace(c.DateColumn) == "" {
		return fmt.Errorf("date column label cannot be empty")
	}
	if strings.TrimSpace(c.DepartmentColumn) == "" {
		return fmt.Errorf("department column label cannot be empty")
	}
	return nil
}

// Clone returns a copy of the configuration
func (c *Config) Clone() *Config {
	clone := *c
	clone.Sheets = append([]string(nil), c.Sheets...)
	return &clone
}
