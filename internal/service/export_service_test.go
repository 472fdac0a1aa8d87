package service

import (
	"bytes"
	"testing"
	"time"

	"github.com/tealeg/xlsx"
)

func TestWriteProductsXLSX(t *testing.T) {
	f := newServiceFixture(t, time.Now())
	seedProduct(t, f.db, "tee", "apparel", "20.00", 4)
	seedProduct(t, f.db, "mug", "kitchen", "8.50", 2)

	buf := &bytes.Buffer{}
	count, err := NewExportService(f.productRepo).WriteProductsXLSX(buf)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected two products, got %d", count)
	}

	file, err := xlsx.OpenBinary(buf.Bytes())
	if err != nil {
		t.Fatalf("open workbook failed: %v", err)
	}
	sheet := file.Sheets[0]
	if sheet.Name != "Products" || len(sheet.Rows) != 3 {
		t.Fatalf("unexpected sheet: name=%s rows=%d", sheet.Name, len(sheet.Rows))
	}
	if got := sheet.Rows[0].Cells[1].String(); got != "Slug" {
		t.Fatalf("unexpected header: %s", got)
	}
	if got := sheet.Rows[1].Cells[5].String(); got != "20.00" && got != "20" {
		t.Fatalf("unexpected price cell: %s", got)
	}
}
