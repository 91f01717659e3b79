package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"

	"github.com/piwi3910/OpenCutList/internal/model"
)

// DefaultInventoryPath returns the default file path for the inventory file.
// This is located at ~/.opencutlist/inventory.json.
func DefaultInventoryPath() string {
	return filepath.Join(DefaultConfigDir(), "inventory.json")
}

// SaveInventory writes the inventory to the specified JSON file.
// It creates parent directories if they do not exist.
func SaveInventory(path string, inv model.Inventory) error {
	data, err := json.MarshalIndent(inv, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal inventory: %w", err)
	}
	return writeFile(path, data)
}

// LoadInventory reads the inventory from the specified JSON file.
// If the file does not exist, it returns the default inventory and saves it.
func LoadInventory(path string) (model.Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			inv := model.DefaultInventory()
			if saveErr := SaveInventory(path, inv); saveErr != nil {
				return inv, saveErr
			}
			return inv, nil
		}
		return model.Inventory{}, fmt.Errorf("failed to read inventory: %w", err)
	}
	return parseInventory(data)
}

func parseInventory(data []byte) (model.Inventory, error) {
	var inv model.Inventory
	if err := json.Unmarshal(jsonc.ToJSON(data), &inv); err != nil {
		return model.Inventory{}, fmt.Errorf("failed to parse inventory: %w", err)
	}
	if inv.Materials == nil {
		inv.Materials = []model.Material{}
	}
	if inv.Stock == nil {
		inv.Stock = []model.StockPiece{}
	}
	return inv, nil
}

// ExportInventory exports the inventory to a user-specified JSON file.
func ExportInventory(path string, inv model.Inventory) error {
	return SaveInventory(path, inv)
}

// ImportInventory imports an inventory from a user-specified JSON file,
// merging it with the existing inventory. Duplicate IDs are skipped.
func ImportInventory(path string, existing model.Inventory) (model.Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return existing, fmt.Errorf("failed to read inventory: %w", err)
	}
	imported, err := parseInventory(data)
	if err != nil {
		return existing, err
	}
	return MergeInventory(existing, imported), nil
}

// MergeInventory appends the materials and stock of imported that are not
// already present in existing, matched by ID.
func MergeInventory(existing, imported model.Inventory) model.Inventory {
	materialIDs := make(map[string]bool, len(existing.Materials))
	for _, m := range existing.Materials {
		materialIDs[m.ID] = true
	}
	stockIDs := make(map[string]bool, len(existing.Stock))
	for _, s := range existing.Stock {
		stockIDs[s.ID] = true
	}

	for _, m := range imported.Materials {
		if !materialIDs[m.ID] {
			existing.Materials = append(existing.Materials, m)
			materialIDs[m.ID] = true
		}
	}
	for _, s := range imported.Stock {
		if !stockIDs[s.ID] {
			existing.Stock = append(existing.Stock, s)
			stockIDs[s.ID] = true
		}
	}
	return existing
}
