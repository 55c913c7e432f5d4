package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"lab-journal-service/cmd/journal/config"
	"lab-journal-service/internal/aliasstore"
	"lab-journal-service/internal/journal"
	"lab-journal-service/internal/reporter"
)

// Flags for the resolve command
var (
	journalFile     string
	departmentsFile string
	aliasesFile     string
	aliasSets       []string
	outputFormat    string
	outputFile      string
)

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve journal departments to canonical names",
	Long: `Resolve loads a journal workbook, maps every department entry to a
canonical department name, and reports what stayed unresolved.

Resolution tries the operating-block naming rule first, then the alias
map, then exact matching after aggressive normalization. It never
guesses: anything else is reported as unresolved for manual mapping.

Examples:
  # Resolve and show unresolved departments
  journal resolve --journal journal.xlsx --departments deps.txt --aliases aliases.json

  # Teach the alias map and re-resolve
  journal resolve --journal journal.xlsx --departments deps.txt \
    --aliases aliases.json --set "1 афо=1АФО" --set "2-я хирургия=2ХО"

  # Machine-readable output
  journal resolve --journal journal.xlsx --departments deps.txt \
    --output-format json --output-file report.json`,

	PreRunE: validateResolveFlags,
	RunE:    runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().StringVarP(&journalFile, "journal", "j", "", "path to journal workbook (required)")
	resolveCmd.Flags().StringVarP(&departmentsFile, "departments", "d", "", "path to canonical department list, one per line")
	resolveCmd.Flags().StringVarP(&aliasesFile, "aliases", "a", "", "path to alias map JSON file")
	resolveCmd.Flags().StringArrayVar(&aliasSets, "set", nil, "alias assignment raw=canonical (repeatable, saved to the alias file)")

	resolveCmd.Flags().StringVarP(&outputFormat, "output-format", "f", "console", "output format: console, json, csv")
	resolveCmd.Flags().StringVarP(&outputFile, "output-file", "o", "", "output file path (default: stdout)")

	resolveCmd.MarkFlagRequired("journal")

	viper.BindPFlag("journal", resolveCmd.Flags().Lookup("journal"))
	viper.BindPFlag("departments", resolveCmd.Flags().Lookup("departments"))
	viper.BindPFlag("aliases", resolveCmd.Flags().Lookup("aliases"))
	viper.BindPFlag("output-format", resolveCmd.Flags().Lookup("output-format"))
	viper.BindPFlag("output-file", resolveCmd.Flags().Lookup("output-file"))
}

func validateResolveFlags(cmd *cobra.Command, args []string) error {
	// Viper overrides allow values from the config file or environment
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
	if len(aliasSets) > 0 && aliasesFile == "" {
		return fmt.Errorf("--set requires --aliases to know where to save")
	}

	return validateOutputFlags()
}

func validateOutputFlags() error {
	validFormats := map[string]bool{"console": true, "json": true, "csv": true}
	if !validFormats[outputFormat] {
		return fmt.Errorf("invalid output format '%s'. Valid formats: console, json, csv", outputFormat)
	}

	if outputFile != "" {
		dir := filepath.Dir(outputFile)
		if dir != "." {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				return fmt.Errorf("output directory does not exist: %s", dir)
			}
		}
	}
	return nil
}

func validateFileExists(filePath, description string) error {
	if filePath == "" {
		return fmt.Errorf("%s path cannot be empty", description)
	}

	info, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return fmt.Errorf("%s does not exist: %s", description, filePath)
	}
	if err != nil {
		return fmt.Errorf("error accessing %s: %w", description, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, expected a file: %s", description, filePath)
	}

	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("%s is not readable: %w", description, err)
	}
	f.Close()

	return nil
}

// loadJournal builds a Journal from the shared flags and loads the workbook
func loadJournal() (*journal.Journal, error) {
	loaderConfig, err := config.CreateLoaderConfig()
	if err != nil {
		return nil, err
	}

	j, err := journal.New(loaderConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create journal: %w", err)
	}

	start := time.Now()
	if err := j.Load(journalFile); err != nil {
		return nil, err
	}
	if viper.GetBool("verbose") {
		fmt.Fprintf(os.Stderr, "Loaded %s in %v\n", journalFile, time.Since(start))
	}

	return j, nil
}

// resolveDepartments reads the canonical list when one was given
func resolveDepartments() ([]string, error) {
	if departmentsFile == "" {
		return nil, nil
	}
	return config.ReadDepartmentsFile(departmentsFile)
}

// openOutput returns the report destination
func openOutput() (*os.File, func(), error) {
	if outputFile == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(outputFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func runResolve(cmd *cobra.Command, args []string) error {
	j, err := loadJournal()
	if err != nil {
		return err
	}

	departments, err := resolveDepartments()
	if err != nil {
		return err
	}

	store := aliasstore.NewStore(aliasesFile)
	aliases := store.Load()

	// Teach new aliases before resolving, and persist them.
	if len(aliasSets) > 0 {
		added, err := config.ParseAliasAssignments(aliasSets)
		if err != nil {
			return err
		}
		if aliases, err = store.Merge(added); err != nil {
			return err
		}
		if viper.GetBool("verbose") {
			fmt.Fprintf(os.Stderr, "Saved %d alias assignment(s) to %s\n", len(added), aliasesFile)
		}
	}

	report := j.ApplyMapping(departments, aliases)

	generator, err := reporter.NewReportGenerator(config.CreateReportConfig(outputFormat))
	if err != nil {
		return fmt.Errorf("failed to create report generator: %w", err)
	}

	output, closeOutput, err := openOutput()
	if err != nil {
		return err
	}
	defer closeOutput()

	if err := generator.GenerateResolutionReport(report, output); err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	if viper.GetBool("verbose") {
		fmt.Fprintf(os.Stderr, "\nResolved %d of %d records.\n", report.Resolved(), report.Total)
	}

	return nil
}
