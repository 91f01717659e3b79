package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/OpenCutList/internal/model"
)

func TestDefaultInventoryPath(t *testing.T) {
	path := DefaultInventoryPath()
	if filepath.Base(path) != "inventory.json" {
		t.Errorf("expected filename inventory.json, got %s", filepath.Base(path))
	}
	dir := filepath.Base(filepath.Dir(path))
	if dir != ".opencutlist" {
		t.Errorf("expected parent dir .opencutlist, got %s", dir)
	}
}

func TestSaveAndLoadInventory(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "test_inventory.json")

	stock := model.NewStockPiece("Test Plywood", 2440, 1220, 3)
	stock.Material = "Plywood"
	stock.Thickness = 18
	inv := model.Inventory{
		Materials: []model.Material{model.NewMaterial("Plywood", model.MaterialSheet, 18, "#eab308")},
		Stock:     []model.StockPiece{stock},
	}

	if err := SaveInventory(path, inv); err != nil {
		t.Fatalf("SaveInventory failed: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("inventory file was not created")
	}

	loaded, err := LoadInventory(path)
	if err != nil {
		t.Fatalf("LoadInventory failed: %v", err)
	}

	if len(loaded.Materials) != 1 || loaded.Materials[0].Type != model.MaterialSheet {
		t.Errorf("unexpected materials %+v", loaded.Materials)
	}
	if len(loaded.Stock) != 1 {
		t.Fatalf("expected 1 stock, got %d", len(loaded.Stock))
	}
	if loaded.Stock[0].Name != "Test Plywood" {
		t.Errorf("expected stock name 'Test Plywood', got %q", loaded.Stock[0].Name)
	}
	if loaded.Stock[0].Length != 2440 || loaded.Stock[0].Quantity != 3 {
		t.Errorf("unexpected stock %+v", loaded.Stock[0])
	}
}

func TestLoadInventoryCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "inventory.json")

	inv, err := LoadInventory(path)
	if err != nil {
		t.Fatalf("LoadInventory failed: %v", err)
	}
	if len(inv.Stock) != len(model.DefaultInventory().Stock) {
		t.Errorf("expected default stock, got %d entries", len(inv.Stock))
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("default inventory should be written to disk")
	}
}

func TestLoadInventoryInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")
	if err := os.WriteFile(path, []byte("{{{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadInventory(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestImportInventoryMergesWithoutDuplicates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "export.json")

	existing := model.Inventory{
		Materials: []model.Material{{ID: "m1", Name: "Oak"}},
		Stock:     []model.StockPiece{{ID: "s1", Name: "Oak board"}},
	}
	incoming := model.Inventory{
		Materials: []model.Material{{ID: "m1", Name: "Oak"}, {ID: "m2", Name: "Walnut"}},
		Stock:     []model.StockPiece{{ID: "s1", Name: "Oak board"}, {ID: "s2", Name: "Walnut board"}},
	}
	if err := ExportInventory(path, incoming); err != nil {
		t.Fatalf("ExportInventory failed: %v", err)
	}

	merged, err := ImportInventory(path, existing)
	if err != nil {
		t.Fatalf("ImportInventory failed: %v", err)
	}
	if len(merged.Materials) != 2 {
		t.Errorf("expected 2 materials, got %d", len(merged.Materials))
	}
	if len(merged.Stock) != 2 || merged.Stock[1].ID != "s2" {
		t.Errorf("expected s2 appended once, got %+v", merged.Stock)
	}
}

func TestImportInventoryMissingFile(t *testing.T) {
	existing := model.DefaultInventory()
	got, err := ImportInventory(filepath.Join(t.TempDir(), "missing.json"), existing)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if len(got.Stock) != len(existing.Stock) {
		t.Error("existing inventory should be returned unchanged on error")
	}
}
