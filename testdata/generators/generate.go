// Command generate writes demo fixtures for manual testing: a journal
// workbook with the three standard worksheets, a canonical department
// list, and an alias map.
//
// Usage:
//
//	go run generate.go -output-dir=../generated
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

type journalRow struct {
	date       string
	department string
	building   string
	result     string
}

var sheets = map[string][]journalRow{
	"Абиотические": {
		{"05.01.2025", "1 АФО", "главный", "рост не обнаружен"},
		{"05.01.2025", "оперблок 2 этаж", "главный корпус", "рост не обнаружен"},
		{"12.01.2025", "1 афо ", "главный", "Staphylococcus aureus"},
		{"12.01.2025", "2-я хирургия", "КДЦ", "рост не обнаружен"},
	},
	"Воздух": {
		{"05.01.2025", "1АФО", "главный", "рост не обнаружен"},
		{"05.01.2025 г.", "оперблок 6 этаж", "ФПЦ", "рост не обнаружен"},
		{"19.01.2025", "новое отделение", "", "рост не обнаружен"},
	},
	"Персонал": {
		{"05.01.2025", "1 АФО", "", "рост не обнаружен"},
		{"", "", "", ""}, // empty row, dropped on load
		{"не дата", "1 АФО", "", "excluded: unparseable date"},
	},
}

var departments = []string{
	"1АФО",
	"2ХО",
	"ОПЕРБЛОК 2 ЭТАЖ",
	"ОПЕРБЛОК 6 ЭТАЖ ФПЦ",
}

var aliases = map[string]string{
	"2-я хирургия": "2ХО",
}

func main() {
	outputDir := flag.String("output-dir", "../generated", "Output directory for generated files")
	flag.Parse()

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		log.Fatalf("creating output directory: %v", err)
	}

	if err := writeWorkbook(filepath.Join(*outputDir, "journal.xlsx")); err != nil {
		log.Fatalf("writing workbook: %v", err)
	}
	if err := writeDepartments(filepath.Join(*outputDir, "departments.txt")); err != nil {
		log.Fatalf("writing departments: %v", err)
	}
	if err := writeAliases(filepath.Join(*outputDir, "aliases.json")); err != nil {
		log.Fatalf("writing aliases: %v", err)
	}

	fmt.Printf("Fixtures written to %s\n", *outputDir)
	fmt.Println("Try:")
	fmt.Printf("  journal resolve --journal %[1]s/journal.xlsx --departments %[1]s/departments.txt --aliases %[1]s/aliases.json\n", *outputDir)
}

func writeWorkbook(path string) error {
	f := excelize.NewFile()
	first := true
	for name, rows := range sheets {
		if first {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return err
			}
			first = false
		} else if _, err := f.NewSheet(name); err != nil {
			return err
		}

		header := []interface{}{"Дата исследования", "Подразделение", "Корпус", "Результат"}
		if err := f.SetSheetRow(name, "A1", &header); err != nil {
			return err
		}
		for i, row := range rows {
			cell, _ := excelize.CoordinatesToCellName(1, i+2)
			values := []interface{}{row.date, row.department, row.building, row.result}
			if err := f.SetSheetRow(name, cell, &values); err != nil {
				return err
			}
		}
	}
	return f.SaveAs(path)
}

func writeDepartments(path string) error {
	content := "# canonical departments\n" + strings.Join(departments, "\n") + "\n"
	return os.WriteFile(path, []byte(content), 0o644)
}

func writeAliases(path string) error {
	data, err := json.MarshalIndent(aliases, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
