package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"lab-journal-service/cmd/journal/config"
	"lab-journal-service/internal/aliasstore"
	"lab-journal-service/internal/models"
	"lab-journal-service/internal/reporter"
)

// Flags for the report command
var (
	reportDepartment string
	reportDate       string
	reportSheet      string
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show journal rows for a department and day",
	Long: `Report lists the journal rows of one department on one sampling day,
across every configured worksheet or a single one.

Without --date the department's sampling days are listed instead, newest
first. Unresolved departments are addressed by their cleaned raw text.

Examples:
  # List sampling days of a department
  journal report --journal journal.xlsx --departments deps.txt --department 1АФО

  # A specific day as CSV
  journal report --journal journal.xlsx --departments deps.txt \
    --department "ОПЕРБЛОК 2 ЭТАЖ" --date 05.01.2025 --output-format csv

  # One worksheet only
  journal report --journal journal.xlsx --departments deps.txt \
    --department 1АФО --date 05.01.2025 --sheet Воздух`,

	PreRunE: validateReportFlags,
	RunE:    runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVarP(&journalFile, "journal", "j", "", "path to journal workbook (required)")
	reportCmd.Flags().StringVarP(&departmentsFile, "departments", "d", "", "path to canonical department list, one per line")
	reportCmd.Flags().StringVarP(&aliasesFile, "aliases", "a", "", "path to alias map JSON file")

	reportCmd.Flags().StringVarP(&reportDepartment, "department", "D", "", "department to report on (required)")
	reportCmd.Flags().StringVar(&reportDate, "date", "", "sampling day (DD.MM.YYYY; omit to list available days)")
	reportCmd.Flags().StringVar(&reportSheet, "sheet", "", "restrict to one worksheet (default: all)")

	reportCmd.Flags().StringVarP(&outputFormat, "output-format", "f", "console", "output format: console, json, csv")
	reportCmd.Flags().StringVarP(&outputFile, "output-file", "o", "", "output file path (default: stdout)")

	reportCmd.MarkFlagRequired("journal")
	reportCmd.MarkFlagRequired("department")

	viper.BindPFlag("journal", reportCmd.Flags().Lookup("journal"))
	viper.BindPFlag("departments", reportCmd.Flags().Lookup("departments"))
	viper.BindPFlag("aliases", reportCmd.Flags().Lookup("aliases"))
	viper.BindPFlag("output-format", reportCmd.Flags().Lookup("output-format"))
	viper.BindPFlag("output-file", reportCmd.Flags().Lookup("output-file"))
}

func validateReportFlags(cmd *cobra.Command, args []string) error {
	journalFile = viper.GetString("journal")
	if f := viper.GetString("departments"); f != "" {
		departmentsFile = f
	}
	if f := viper.GetString("aliases"); f != "" {
		aliasesFile = f
	}
	outputFormat = viper.GetString("output-format")
	outputFile = viper.GetString("output-file")

	if journalFile == "" {
		return fmt.Errorf("journal workbook is required")
	}
	if err := validateFileExists(journalFile, "journal workbook"); err != nil {
		return err
	}
	if departmentsFile != "" {
		if err := validateFileExists(departmentsFile, "departments file"); err != nil {
			return err
		}
	}
	if reportDepartment == "" {
		return fmt.Errorf("department is required")
	}
	if reportDate != "" {
		if _, err := time.Parse(models.DateLayout, reportDate); err != nil {
			return fmt.Errorf("invalid date format. Use DD.MM.YYYY: %w", err)
		}
	}

	return validateOutputFlags()
}

func runReport(cmd *cobra.Command, args []string) error {
	j, err := loadJournal()
	if err != nil {
		return err
	}

	departments, err := resolveDepartments()
	if err != nil {
		return err
	}
	j.ApplyMapping(departments, aliasstore.Load(aliasesFile))

	output, closeOutput, err := openOutput()
	if err != nil {
		return err
	}
	defer closeOutput()

	// Without a date, list the department's sampling days instead.
	if reportDate == "" {
		dates := j.DatesForDepartment(reportDepartment)
		if len(dates) == 0 {
			return fmt.Errorf("no sampling days found for department %q", reportDepartment)
		}
		fmt.Fprintf(output, "Sampling days for %s:\n", reportDepartment)
		for _, d := range dates {
			fmt.Fprintln(output, d.Format(models.DateLayout))
		}
		return nil
	}

	date, _ := time.Parse(models.DateLayout, reportDate)
	date = models.Day(date)

	var rows map[string][]*models.JournalRecord
	if reportSheet != "" {
		rows = make(map[string][]*models.JournalRecord)
		if sheetRows := j.RowsFor(reportSheet, reportDepartment, date); len(sheetRows) > 0 {
			rows[reportSheet] = sheetRows
		}
	} else {
		rows = j.RowsForAll(reportDepartment, date)
	}

	generator, err := reporter.NewReportGenerator(config.CreateReportConfig(outputFormat))
	if err != nil {
		return fmt.Errorf("failed to create report generator: %w", err)
	}

	if err := generator.GenerateDayReport(reportDepartment, date, rows, output); err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	return nil
}
