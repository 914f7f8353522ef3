package service

import (
	"archive/zip"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"record-system/internal/csvdb"
	"record-system/internal/model"
	"record-system/internal/repository"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func newExportFixture(t *testing.T) (*ExportService, *repository.GameRepository) {
	t.Helper()
	table, err := csvdb.NewTable(filepath.Join(t.TempDir(), "games.csv"), model.GameCodec{}, zap.NewNop())
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	repo := repository.NewGameRepository(table)
	games := []model.Game{
		{ID: 1, Title: "Zelda", Genre: "Adventure", Platform: "Switch", ReleaseYear: 2017, Available: true},
		{ID: 2, Title: "Halo", Genre: "Shooter", Platform: "Xbox", ReleaseYear: 2001, Available: false},
	}
	for _, g := range games {
		if _, err := repo.Create(g); err != nil {
			t.Fatalf("seed game %d: %v", g.ID, err)
		}
	}
	return NewExportService(), repo
}

func TestExportZip(t *testing.T) {
	svc, repo := newExportFixture(t)

	zipPath, err := svc.Zip(repo)
	if err != nil {
		t.Fatalf("Zip: %v", err)
	}
	if filepath.Base(zipPath) != "games.zip" {
		t.Errorf("zip file = %s, want games.zip", filepath.Base(zipPath))
	}

	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}
	defer zr.Close()

	if len(zr.File) != 1 {
		t.Fatalf("zip holds %d entries, want 1", len(zr.File))
	}
	entry := zr.File[0]
	if entry.Name != "games.csv" {
		t.Errorf("entry name = %s, want games.csv", entry.Name)
	}

	rc, err := entry.Open()
	if err != nil {
		t.Fatalf("open entry: %v", err)
	}
	defer rc.Close()
	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read entry: %v", err)
	}
	want, err := os.ReadFile(repo.Path())
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if string(got) != string(want) {
		t.Error("zip entry content differs from the backing file")
	}
}

func TestExportHash(t *testing.T) {
	svc, repo := newExportFixture(t)

	file, sum, err := svc.Hash(repo)
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if file != "games.csv" {
		t.Errorf("file = %s, want games.csv", file)
	}

	raw, err := os.ReadFile(repo.Path())
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	digest := sha256.Sum256(raw)
	if want := hex.EncodeToString(digest[:]); sum != want {
		t.Errorf("hash = %s, want %s", sum, want)
	}
}

func TestExportXML(t *testing.T) {
	svc, repo := newExportFixture(t)

	xmlPath, err := svc.XML(repo)
	if err != nil {
		t.Fatalf("XML: %v", err)
	}
	if filepath.Base(xmlPath) != "games.xml" {
		t.Errorf("xml file = %s, want games.xml", filepath.Base(xmlPath))
	}

	raw, err := os.ReadFile(xmlPath)
	if err != nil {
		t.Fatalf("read xml: %v", err)
	}
	content := string(raw)

	if !strings.HasPrefix(content, "<?xml") {
		t.Error("xml output lacks the declaration")
	}
	for _, want := range []string{
		"<games>", "</games>",
		"<game>", "</game>",
		"<id>1</id>", "<title>Zelda</title>",
		"<release_year>2001</release_year>", "<available>false</available>",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("xml output missing %q", want)
		}
	}
}

func TestExportXLSX(t *testing.T) {
	svc, repo := newExportFixture(t)

	xlsxPath, err := svc.XLSX(repo)
	if err != nil {
		t.Fatalf("XLSX: %v", err)
	}
	if filepath.Base(xlsxPath) != "games.xlsx" {
		t.Errorf("xlsx file = %s, want games.xlsx", filepath.Base(xlsxPath))
	}

	f, err := excelize.OpenFile(xlsxPath)
	if err != nil {
		t.Fatalf("open xlsx: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("games")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}

	header, encoded, err := repo.EncodedRows()
	if err != nil {
		t.Fatalf("EncodedRows: %v", err)
	}
	if len(rows) != len(encoded)+1 {
		t.Fatalf("sheet holds %d rows, want %d", len(rows), len(encoded)+1)
	}
	for i, cell := range header {
		if rows[0][i] != cell {
			t.Errorf("header[%d] = %q, want %q", i, rows[0][i], cell)
		}
	}
	for r, wantRow := range encoded {
		for c, want := range wantRow {
			if rows[r+1][c] != want {
				t.Errorf("cell (%d,%d) = %q, want %q", r+1, c, rows[r+1][c], want)
			}
		}
	}
}
