package numbers

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestImportReader_Text(t *testing.T) {
	in := "call +15551234567 or 4915123456789, not 12345.\nfax: 02071234567"
	im, err := ImportReader("list.txt", strings.NewReader(in))
	if err != nil {
		t.Fatalf("ImportReader err=%v", err)
	}
	want := []string{"+15551234567", "4915123456789", "02071234567"}
	if len(im.Numbers) != len(want) {
		t.Fatalf("numbers=%q, want %q", im.Numbers, want)
	}
	for i := range want {
		if im.Numbers[i] != want[i] {
			t.Fatalf("numbers=%q, want %q", im.Numbers, want)
		}
	}
}

func TestImportReader_CSVPhoneColumn(t *testing.T) {
	in := "name,Mobile Phone,city\nann,+1 (555) 123-4567,nyc\nbob,555-12,sf\n"
	im, err := ImportReader("contacts.CSV", strings.NewReader(in))
	if err != nil {
		t.Fatalf("ImportReader err=%v", err)
	}
	if len(im.Numbers) != 1 || im.Numbers[0] != "+15551234567" {
		t.Fatalf("numbers=%q", im.Numbers)
	}
}

func TestImportReader_CSVFallsBackToFirstColumn(t *testing.T) {
	in := "contact,city\n15551234567,nyc\n15557654321,sf\n"
	im, err := ImportReader("c.csv", strings.NewReader(in))
	if err != nil {
		t.Fatalf("ImportReader err=%v", err)
	}
	if im.Text() != "15551234567\n15557654321" {
		t.Fatalf("text=%q", im.Text())
	}
}

func TestImportReader_Errors(t *testing.T) {
	if _, err := ImportReader("scan.pdf", strings.NewReader("")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if _, err := ImportReader("a.txt", strings.NewReader("nothing here 123")); !errors.Is(err, ErrNoNumbers) {
		t.Fatalf("expected ErrNoNumbers, got %v", err)
	}
}

func TestImportFile_CapsAtMax(t *testing.T) {
	var b strings.Builder
	for i := 0; i < MaxImport+20; i++ {
		fmt.Fprintf(&b, "1555%07d\n", i)
	}
	path := filepath.Join(t.TempDir(), "many.txt")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatal(err)
	}
	im, err := ImportFile(path)
	if err != nil {
		t.Fatalf("ImportFile err=%v", err)
	}
	if len(im.Numbers) != MaxImport || im.TotalFound != MaxImport+20 {
		t.Fatalf("kept=%d found=%d", len(im.Numbers), im.TotalFound)
	}
}

func TestImportReader_XLSXPhoneColumn(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"name", "Phone Number"},
		{"ann", "+1 555 123 4567"},
		{"bob", "447700900123"},
		{"cy", "123"},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}

	im, err := ImportReader("contacts.xlsx", bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ImportReader err=%v", err)
	}
	if im.Text() != "+15551234567\n447700900123" || im.TotalFound != 2 {
		t.Fatalf("import=%+v", im)
	}
}

func TestImportReader_XLSXRejectsGarbage(t *testing.T) {
	_, err := ImportReader("broken.xlsx", strings.NewReader("not a zip"))
	if err == nil || errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected a parse error, got %v", err)
	}
}
