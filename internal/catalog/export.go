package catalog

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/tealeg/xlsx"
)

var exportHeaders = []string{
	"ID", "Name", "Slug", "Category", "Price", "OldPrice",
	"Stock", "Rating", "ReviewCount", "Badge", "ImageURL",
}

// ExportXLSX writes the whole catalog as a workbook with a Products and a
// Categories sheet.
func (s *Service) ExportXLSX(ctx context.Context, w io.Writer) error {
	categories := s.ListCategories(ctx)
	names := make(map[int64]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	file := xlsx.NewFile()

	products, err := file.AddSheet("Products")
	if err != nil {
		return fmt.Errorf("add products sheet: %w", err)
	}
	addRow(products, exportHeaders...)
	for _, p := range s.ListProducts(ctx) {
		old := ""
		if p.OldPrice.Valid {
			old = p.OldPrice.Decimal.StringFixed(2)
		}
		addRow(products,
			strconv.FormatInt(p.ID, 10),
			p.Name,
			p.Slug,
			names[p.CategoryID],
			p.Price.StringFixed(2),
			old,
			strconv.Itoa(p.Stock),
			strconv.FormatFloat(p.Rating, 'f', 1, 64),
			strconv.Itoa(p.ReviewCount),
			p.Badge(),
			p.ImageURL,
		)
	}

	cats, err := file.AddSheet("Categories")
	if err != nil {
		return fmt.Errorf("add categories sheet: %w", err)
	}
	addRow(cats, "ID", "Name", "Slug", "ProductCount")
	for _, c := range categories {
		addRow(cats, strconv.FormatInt(c.ID, 10), c.Name, c.Slug, strconv.Itoa(c.ProductCount))
	}

	return file.Write(w)
}

func addRow(sheet *xlsx.Sheet, values ...string) {
	row := sheet.AddRow()
	for _, v := range values {
		row.AddCell().SetString(v)
	}
}
