package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/AvancyBrasil/API-Find/config"
	"github.com/AvancyBrasil/API-Find/internal/app/model"
	"github.com/AvancyBrasil/API-Find/internal/app/repository"
	"github.com/AvancyBrasil/API-Find/internal/db"
	"github.com/AvancyBrasil/API-Find/pkg/util"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const (
	batchSize           = 500
	placeholderPassword = 16
)

// Column order of the import sheet.
const (
	colNomeEmpresa = iota
	colNome
	colEmail
	colCategoria
	colSubcategoria
	colLogradouro
	colCidade
	colEstado
	colCEP
	colLatitude
	colLongitude
	columnCount
)

type importSummary struct {
	rows            int
	skipped         int
	invalidCoords   int
	duplicateEmails int
}

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run ./cmd/seed <xlsx_file_path>")
	}
	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	database, err := db.Open(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close(database)

	if err := db.Migrate(database); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	lojistaRepo := repository.NewLojistaRepository(database)

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	lojistas, summary, err := readLojistasFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	lojistas, err = dropRegistered(lojistaRepo, lojistas, &summary)
	if err != nil {
		log.Fatal("Failed to check existing lojistas:", err)
	}
	printSummary(summary, len(lojistas))

	if len(lojistas) == 0 {
		fmt.Println("Nothing to import.")
		return
	}

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	if err := assignPasswords(lojistas); err != nil {
		log.Fatal("Failed to generate passwords:", err)
	}

	fmt.Printf("Starting bulk import with batch size: %d\n", batchSize)
	if err := lojistaRepo.BulkCreate(lojistas, batchSize); err != nil {
		log.Fatal("Failed to bulk create lojistas:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total lojistas imported: %d\n", len(lojistas))
}

func readLojistasFromXLSX(filePath string) ([]model.Lojista, importSummary, error) {
	var summary importSummary

	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, summary, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, summary, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, summary, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, summary, fmt.Errorf("no data found in XLSX file")
	}

	var lojistas []model.Lojista
	seenEmails := make(map[string]bool)

	// first row is the header
	for _, row := range rows[1:] {
		summary.rows++

		lojista, err := parseRow(row)
		if err != nil {
			if errors.Is(err, errInvalidCoordinates) {
				summary.invalidCoords++
			}
			summary.skipped++
			continue
		}

		if seenEmails[lojista.Email] {
			summary.duplicateEmails++
			summary.skipped++
			continue
		}
		seenEmails[lojista.Email] = true

		lojistas = append(lojistas, *lojista)
	}

	return lojistas, summary, nil
}

var (
	errMissingFields      = errors.New("missing email or nomeEmpresa")
	errInvalidCoordinates = errors.New("invalid coordinates")
)

func parseRow(row []string) (*model.Lojista, error) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	email := strings.ToLower(cell(colEmail))
	nomeEmpresa := cell(colNomeEmpresa)
	if email == "" || nomeEmpresa == "" {
		return nil, errMissingFields
	}

	lat, errLat := strconv.ParseFloat(strings.ReplaceAll(cell(colLatitude), ",", "."), 64)
	lng, errLng := strconv.ParseFloat(strings.ReplaceAll(cell(colLongitude), ",", "."), 64)
	if errLat != nil || errLng != nil || lat == 0 || lng == 0 ||
		lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, errInvalidCoordinates
	}

	nome := cell(colNome)
	if nome == "" {
		nome = nomeEmpresa
	}

	return &model.Lojista{
		Nome:         nome,
		NomeEmpresa:  nomeEmpresa,
		Email:        email,
		Categoria:    cell(colCategoria),
		Subcategoria: cell(colSubcategoria),
		Logradouro:   cell(colLogradouro),
		Cidade:       cell(colCidade),
		Estado:       cell(colEstado),
		CEP:          cell(colCEP),
		Latitude:     &lat,
		Longitude:    &lng,
		Status:       true,
	}, nil
}

// dropRegistered removes lojistas whose email already exists in the database.
func dropRegistered(repo repository.LojistaRepository, lojistas []model.Lojista, summary *importSummary) ([]model.Lojista, error) {
	kept := lojistas[:0]
	for _, lojista := range lojistas {
		_, err := repo.FindByEmail(lojista.Email)
		switch {
		case err == nil:
			summary.duplicateEmails++
			summary.skipped++
		case errors.Is(err, gorm.ErrRecordNotFound):
			kept = append(kept, lojista)
		default:
			return nil, err
		}
	}
	return kept, nil
}

// assignPasswords gives every imported lojista a random bcrypt password.
func assignPasswords(lojistas []model.Lojista) error {
	for i := range lojistas {
		plain, err := util.RandomPassword(placeholderPassword)
		if err != nil {
			return err
		}
		hashed, err := util.HashPassword(plain)
		if err != nil {
			return err
		}
		lojistas[i].Senha = hashed
		if (i+1)%1000 == 0 {
			fmt.Printf("Prepared %d lojistas...\n", i+1)
		}
	}
	return nil
}

func printSummary(summary importSummary, valid int) {
	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Total rows: %d\n", summary.rows)
	fmt.Printf("  Valid lojistas: %d\n", valid)
	fmt.Printf("  Skipped rows: %d\n", summary.skipped)
	fmt.Printf("  Rows with invalid coordinates: %d\n", summary.invalidCoords)
	fmt.Printf("  Duplicate emails: %d\n", summary.duplicateEmails)
}
