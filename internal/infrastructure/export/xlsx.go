// Package export renders session data as downloadable spreadsheets.
package export

import (
	"fmt"
	"io"

	"github.com/mrops-br/catalog-viewer/internal/domain"
	"github.com/xuri/excelize/v2"
)

// CartSheet is the worksheet name of the cart export
const CartSheet = "Cart"

var cartHeader = []any{"#", "ID", "Title", "Category", "Price", "Rating", "Reviews"}

// WriteCart writes the cart entries, one row each in insertion order, followed by a total row
func WriteCart(w io.Writer, items []domain.Product) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", CartSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetSheetRow(CartSheet, "A1", &cartHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}
	if err := f.SetCellStyle(CartSheet, "A1", "G1", bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	var total float64
	for i, p := range items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{i + 1, p.ID, p.Title, p.Category, p.Price, p.Rating.Rate, p.Rating.Count}
		if err := f.SetSheetRow(CartSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
		total += p.Price
	}

	totalCell, err := excelize.CoordinatesToCellName(1, len(items)+2)
	if err != nil {
		return err
	}
	totalRow := []any{"Total", "", "", "", total}
	if err := f.SetSheetRow(CartSheet, totalCell, &totalRow); err != nil {
		return fmt.Errorf("write total: %w", err)
	}

	if err := f.SetColWidth(CartSheet, "C", "C", 60); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	return f.Write(w)
}
