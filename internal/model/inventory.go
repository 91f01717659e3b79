package model

import "github.com/google/uuid"

// MaterialType classifies how a material is sold.
type MaterialType string

const (
	MaterialSheet       MaterialType = "sheet"       // Plywood, MDF and other sheet goods
	MaterialDimensional MaterialType = "dimensional" // Dimensional lumber
)

// Material describes a named material the user works with.
type Material struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Type      MaterialType `json:"type"`
	Thickness float64      `json:"thickness"` // mm
	Color     string       `json:"color"`     // hex color for diagrams
}

// NewMaterial creates a Material with a generated ID.
func NewMaterial(name string, typ MaterialType, thickness float64, color string) Material {
	return Material{
		ID:        uuid.New().String()[:8],
		Name:      name,
		Type:      typ,
		Thickness: thickness,
		Color:     color,
	}
}

// Inventory holds the user's materials and the boards they have on hand.
type Inventory struct {
	Materials []Material   `json:"materials"`
	Stock     []StockPiece `json:"stock"`
}

func newStock(name string, length, width, thickness float64, material string, cost float64) StockPiece {
	s := NewStockPiece(name, length, width, 1)
	s.Thickness = thickness
	s.Material = material
	s.Cost = cost
	return s
}

// DefaultInventory returns an inventory populated with common defaults.
func DefaultInventory() Inventory {
	return Inventory{
		Materials: []Material{
			NewMaterial(`Plywood 3/4"`, MaterialSheet, 19.05, "#eab308"),
			NewMaterial("Oak 1x4", MaterialDimensional, 19.05, "#a16207"),
			NewMaterial("MDF 18mm", MaterialSheet, 18, "#a3a3a3"),
		},
		Stock: []StockPiece{
			newStock("Plywood 2440x1220 (8'x4')", 2440, 1220, 19.05, `Plywood 3/4"`, 0),
			newStock("Plywood 1220x610 (4'x2')", 1220, 610, 19.05, `Plywood 3/4"`, 0),
			newStock("MDF 2440x1220 (8'x4')", 2440, 1220, 18, "MDF 18mm", 0),
			newStock("Oak 1x4 8ft", 2438, 89, 19.05, "Oak 1x4", 0),
		},
	}
}

// FindMaterialByName returns a pointer to the first material with the given name, or nil.
func (inv *Inventory) FindMaterialByName(name string) *Material {
	for i := range inv.Materials {
		if inv.Materials[i].Name == name {
			return &inv.Materials[i]
		}
	}
	return nil
}

// FindStockByID returns a pointer to the stock piece with the given ID, or nil.
func (inv *Inventory) FindStockByID(id string) *StockPiece {
	for i := range inv.Stock {
		if inv.Stock[i].ID == id {
			return &inv.Stock[i]
		}
	}
	return nil
}

// AddStock appends a board, generating an ID when it has none.
func (inv *Inventory) AddStock(s StockPiece) {
	if s.ID == "" {
		s.ID = uuid.New().String()[:8]
	}
	inv.Stock = append(inv.Stock, s)
}

// MaterialNames returns the material names in inventory order.
func (inv *Inventory) MaterialNames() []string {
	names := make([]string, len(inv.Materials))
	for i, m := range inv.Materials {
		names[i] = m.Name
	}
	return names
}

// StockFor returns the boards of the given material.
func (inv *Inventory) StockFor(material string) []StockPiece {
	key := MaterialKey(material)
	var out []StockPiece
	for _, s := range inv.Stock {
		if MaterialKey(s.Material) == key {
			out = append(out, s)
		}
	}
	return out
}

// AddOffcuts appends usable offcuts as single boards and registers any
// material that is not yet known. It returns the number of boards added.
func (inv *Inventory) AddOffcuts(offcuts []Offcut) int {
	for _, o := range offcuts {
		inv.Stock = append(inv.Stock, o.ToStockPiece())
		if o.Material != "" && inv.FindMaterialByName(o.Material) == nil {
			inv.Materials = append(inv.Materials, NewMaterial(o.Material, MaterialSheet, o.Thickness, ""))
		}
	}
	return len(offcuts)
}
