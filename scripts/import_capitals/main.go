package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dreadedbot/group_games_bot/internal/repositories"
	"github.com/joho/godotenv"
	"github.com/xuri/excelize/v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Imports country/capital pairs from a spreadsheet. Each sheet is read top to
// bottom, first column country, second column capital, header row skipped.
//
// Usage: go run ./scripts/import_capitals capitals.xlsx
func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	if len(os.Args) < 2 {
		log.Fatal("usage: import_capitals <file.xlsx>")
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"), os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"), os.Getenv("DB_PORT"))

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect database:", err)
	}

	f, err := excelize.OpenFile(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	repo := repositories.NewCapitalRepository(db)
	totalImported := 0

	for _, sheetName := range f.GetSheetList() {
		fmt.Printf("Importing sheet: %s\n", sheetName)
		rows, err := f.GetRows(sheetName)
		if err != nil {
			fmt.Printf("Error reading sheet %s: %v\n", sheetName, err)
			continue
		}

		for i, row := range rows {
			if i == 0 || len(row) < 2 { // Skip header or invalid rows
				continue
			}

			country := strings.TrimSpace(row[0])
			capital := strings.TrimSpace(row[1])
			if country == "" || capital == "" {
				continue
			}

			if err := repo.Upsert(country, capital); err != nil {
				fmt.Printf("Error importing row %d (%s): %v\n", i, country, err)
			} else {
				totalImported++
			}
		}
	}

	fmt.Printf("Successfully imported %d capitals.\n", totalImported)
}
