package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"lab-journal-service/internal/analysis"
)

// Flags for the analyze command
var (
	analyzeType string
	analyzeFile string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a microbiology export workbook",
	Long: `Analyze computes statistics over a LIMS export workbook and prints the
result as JSON.

Analysis types:
  microbes     detected-microbe frequencies with Gram classification
  resistance   share of resistant (R) outcomes per microbe and antibiotic
  swabs        swab positivity with individual findings

Examples:
  journal analyze --type microbes --file microbes.xlsx
  journal analyze --type resistance --file resistance.xlsx --output-file out.json
  journal analyze --type swabs --file swabs.xlsx`,

	PreRunE: validateAnalyzeFlags,
	RunE:    runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&analyzeType, "type", "t", "", "analysis type: microbes, resistance, swabs (required)")
	analyzeCmd.Flags().StringVar(&analyzeFile, "file", "", "path to export workbook (required)")
	analyzeCmd.Flags().StringVarP(&outputFile, "output-file", "o", "", "output file path (default: stdout)")

	analyzeCmd.MarkFlagRequired("type")
	analyzeCmd.MarkFlagRequired("file")
}

func validateAnalyzeFlags(cmd *cobra.Command, args []string) error {
	switch analyzeType {
	case "microbes", "resistance", "swabs":
	default:
		return fmt.Errorf("invalid analysis type '%s'. Valid types: microbes, resistance, swabs", analyzeType)
	}
	if err := validateFileExists(analyzeFile, "export workbook"); err != nil {
		return err
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

func runAnalyze(cmd *cobra.Command, args []string) error {
	var result interface{}
	var err error

	switch analyzeType {
	case "microbes":
		result, err = analysis.AnalyzeMicrobes(analyzeFile)
	case "resistance":
		result, err = analysis.AnalyzeResistance(analyzeFile)
	case "swabs":
		result, err = analysis.AnalyzeSwabs(analyzeFile)
	}
	if err != nil {
		return err
	}

	output, closeOutput, err := openOutput()
	if err != nil {
		return err
	}
	defer closeOutput()

	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}
