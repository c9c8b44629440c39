package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/vmaksimov/appstore-backend/config"
	"github.com/vmaksimov/appstore-backend/internal/app/model"
	"github.com/vmaksimov/appstore-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

// Imports the app catalog from an XLSX export. Expected columns:
// name, developer, category, age_rating, description, icon_url,
// rating, version, size, price, featured, top_week, screenshots
// (screenshot URLs separated by ";").
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	database, err := db.Connect(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close(database)

	if err := db.Migrate(database); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	apps, err := readAppsFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total apps to import: %d\n", len(apps))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	if err := database.CreateInBatches(apps, 100).Error; err != nil {
		log.Fatal("Failed to bulk create apps:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total apps imported: %d\n", len(apps))
}

func readAppsFromXLSX(filePath string) ([]model.App, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	var apps []model.App
	seenApps := make(map[string]bool)
	skippedCount := 0

	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}

		if len(row) < 3 {
			skippedCount++
			continue
		}

		name := strings.TrimSpace(cell(row, 0))
		developer := strings.TrimSpace(cell(row, 1))
		category := strings.TrimSpace(cell(row, 2))

		if name == "" || developer == "" {
			skippedCount++
			continue
		}

		// Dedupe on name+developer
		key := fmt.Sprintf("%s|%s", name, developer)
		if seenApps[key] {
			skippedCount++
			continue
		}
		seenApps[key] = true

		rating, _ := strconv.ParseFloat(strings.TrimSpace(cell(row, 6)), 64)
		if rating < 0 || rating > 5 {
			rating = 0
		}

		price := strings.TrimSpace(cell(row, 9))
		if price == "" {
			price = "Free"
		}

		now := time.Now()
		app := model.App{
			Name:        name,
			Developer:   developer,
			Category:    category,
			AgeRating:   strings.TrimSpace(cell(row, 3)),
			Description: strings.TrimSpace(cell(row, 4)),
			IconURL:     strings.TrimSpace(cell(row, 5)),
			Rating:      rating,
			Version:     strings.TrimSpace(cell(row, 7)),
			Size:        strings.TrimSpace(cell(row, 8)),
			Price:       price,
			Featured:    parseBool(cell(row, 10)),
			TopWeek:     parseBool(cell(row, 11)),
			LastUpdate:  &now,
		}

		for _, url := range strings.Split(cell(row, 12), ";") {
			url = strings.TrimSpace(url)
			if url != "" {
				app.Screenshots = append(app.Screenshots, model.Screenshot{ImageURL: url})
			}
		}

		apps = append(apps, app)
	}

	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Total rows: %d\n", len(rows)-1)
	fmt.Printf("  Valid apps: %d\n", len(apps))
	fmt.Printf("  Skipped rows: %d\n", skippedCount)

	return apps, nil
}

// cell reads a column that may be missing from short rows.
func cell(row []string, index int) string {
	if index >= len(row) {
		return ""
	}
	return row[index]
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}
