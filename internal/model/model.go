package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
)

// UnknownMaterial is the group name used for parts and stock without a material.
const UnknownMaterial = "Unknown"

// ErrNoStockAvailable is the error text reported for a material that has
// parts but no matching stock.
const ErrNoStockAvailable = "No stock available"

// ErrInvalidInput is wrapped by every validation failure.
var ErrInvalidInput = errors.New("invalid input")

// MaterialKey normalizes a material name for grouping.
func MaterialKey(material string) string {
	if material == "" {
		return UnknownMaterial
	}
	return material
}

// Part represents a required piece to be cut.
type Part struct {
	ID             string  `json:"id" yaml:"id"`
	Name           string  `json:"name" yaml:"name"`
	Length         float64 `json:"length" yaml:"length"`       // mm
	Width          float64 `json:"width" yaml:"width"`         // mm
	Thickness      float64 `json:"thickness" yaml:"thickness"` // mm
	Quantity       int     `json:"quantity" yaml:"quantity"`
	Material       string  `json:"material" yaml:"material"`
	GrainDirection bool    `json:"grainDirection,omitempty" yaml:"grainDirection,omitempty"` // grain follows length
}

func NewPart(name string, length, width float64, qty int) Part {
	return Part{
		ID:       uuid.New().String()[:8],
		Name:     name,
		Length:   length,
		Width:    width,
		Quantity: qty,
	}
}

// Area returns the face area of a single unit.
func (p Part) Area() float64 {
	return p.Length * p.Width
}

// Validate reports the first non-positive or non-finite field.
func (p Part) Validate() error {
	if err := checkDimensions(p.Length, p.Width, p.Thickness); err != nil {
		return fmt.Errorf("part %q: %w", p.Name, err)
	}
	if p.Quantity < 1 {
		return fmt.Errorf("part %q: quantity must be at least 1: %w", p.Name, ErrInvalidInput)
	}
	return nil
}

// StockPiece represents an available board of material to cut from.
type StockPiece struct {
	ID        string  `json:"id" yaml:"id"`
	Name      string  `json:"name" yaml:"name"`
	Length    float64 `json:"length" yaml:"length"`       // mm
	Width     float64 `json:"width" yaml:"width"`         // mm
	Thickness float64 `json:"thickness" yaml:"thickness"` // mm
	Quantity  int     `json:"quantity" yaml:"quantity"`
	Material  string  `json:"material" yaml:"material"`
	Cost      float64 `json:"cost" yaml:"cost"` // per board
}

func NewStockPiece(name string, length, width float64, qty int) StockPiece {
	return StockPiece{
		ID:       uuid.New().String()[:8],
		Name:     name,
		Length:   length,
		Width:    width,
		Quantity: qty,
	}
}

// Area returns the area of a single board.
func (s StockPiece) Area() float64 {
	return s.Length * s.Width
}

// Validate reports the first non-positive or non-finite field.
func (s StockPiece) Validate() error {
	if err := checkDimensions(s.Length, s.Width, s.Thickness); err != nil {
		return fmt.Errorf("stock %q: %w", s.Name, err)
	}
	if s.Quantity < 1 {
		return fmt.Errorf("stock %q: quantity must be at least 1: %w", s.Name, ErrInvalidInput)
	}
	if s.Cost < 0 || math.IsNaN(s.Cost) || math.IsInf(s.Cost, 0) {
		return fmt.Errorf("stock %q: cost must be a non-negative number: %w", s.Name, ErrInvalidInput)
	}
	return nil
}

func checkDimensions(length, width, thickness float64) error {
	dims := []struct {
		name  string
		value float64
	}{
		{"length", length},
		{"width", width},
		{"thickness", thickness},
	}
	for _, d := range dims {
		if d.value <= 0 || math.IsNaN(d.value) || math.IsInf(d.value, 0) {
			return fmt.Errorf("%s must be a positive number, got %v: %w", d.name, d.value, ErrInvalidInput)
		}
	}
	return nil
}

// ValidateInput checks everything the engine assumes about its input.
func ValidateInput(parts []Part, stock []StockPiece, kerf float64) error {
	for _, p := range parts {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	for _, s := range stock {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	if kerf < 0 || math.IsNaN(kerf) || math.IsInf(kerf, 0) {
		return fmt.Errorf("kerf must be a non-negative number, got %v: %w", kerf, ErrInvalidInput)
	}
	return nil
}

// PlacementItem is one unit of a Part as seen by the packer.
// W and H are the packing dimensions; once placed they hold the placed
// orientation and X, Y the position from the top-left board corner.
type PlacementItem struct {
	Seq            int     `json:"seq" yaml:"seq"` // unique per expanded instance
	OriginalID     string  `json:"originalId" yaml:"originalId"`
	Name           string  `json:"name" yaml:"name"`
	Material       string  `json:"material" yaml:"material"`
	GrainDirection bool    `json:"grainDirection,omitempty" yaml:"grainDirection,omitempty"`
	W              float64 `json:"w" yaml:"w"`
	H              float64 `json:"h" yaml:"h"`
	X              float64 `json:"x" yaml:"x"`
	Y              float64 `json:"y" yaml:"y"`
	Rotated        bool    `json:"rotated" yaml:"rotated"`
}

// Area returns the item's face area.
func (pi PlacementItem) Area() float64 {
	return pi.W * pi.H
}

// Rect returns the rectangle occupied by the item.
func (pi PlacementItem) Rect() FreeRect {
	return FreeRect{X: pi.X, Y: pi.Y, W: pi.W, H: pi.H}
}

// FreeRect describes unused space inside one board.
type FreeRect struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	W float64 `json:"w" yaml:"w"`
	H float64 `json:"h" yaml:"h"`
}

// Area returns the rectangle area.
func (r FreeRect) Area() float64 {
	return r.W * r.H
}

// Overlaps reports whether two rectangles share interior area.
// Rectangles that only touch along an edge do not overlap.
func (r FreeRect) Overlaps(o FreeRect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W &&
		r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// boundsTolerance absorbs floating point drift from accumulated kerf offsets.
const boundsTolerance = 1e-6

// Within reports whether r lies inside a board of the given size.
func (r FreeRect) Within(width, height float64) bool {
	return r.X >= 0 && r.Y >= 0 &&
		r.X+r.W <= width+boundsTolerance && r.Y+r.H <= height+boundsTolerance
}

// Bin is one stock board together with everything placed on it.
type Bin struct {
	Stock     StockPiece      `json:"stock" yaml:"stock"`
	Items     []PlacementItem `json:"items" yaml:"items"`
	Offcuts   []FreeRect      `json:"offcuts" yaml:"offcuts"`
	Waste     float64         `json:"waste" yaml:"waste"`
	Imperfect bool            `json:"imperfect" yaml:"imperfect"`
}

// Area returns the board area.
func (b Bin) Area() float64 {
	return b.Stock.Area()
}

// UsedArea returns the total area of placed items.
func (b Bin) UsedArea() float64 {
	var total float64
	for _, it := range b.Items {
		total += it.Area()
	}
	return total
}

// Efficiency returns the usage percentage.
func (b Bin) Efficiency() float64 {
	ta := b.Area()
	if ta == 0 {
		return 0
	}
	return (b.UsedArea() / ta) * 100.0
}

// WastePercent returns the waste as a percentage of the board area.
func (b Bin) WastePercent() float64 {
	ta := b.Area()
	if ta == 0 {
		return 0
	}
	return (b.Waste / ta) * 100.0
}

// MaterialResult holds the outcome for one material group. Exactly one of
// Error or (Bins, Unplaced) is meaningful.
type MaterialResult struct {
	Material string          `json:"material" yaml:"material"`
	Bins     []Bin           `json:"bins" yaml:"bins"`
	Unplaced []PlacementItem `json:"unplaced" yaml:"unplaced"`
	Error    string          `json:"error,omitempty" yaml:"error,omitempty"`
}

// HasError reports whether the material could not be packed at all.
func (mr MaterialResult) HasError() bool {
	return mr.Error != ""
}

type noStockResult struct {
	Material string `json:"material" yaml:"material"`
	Error    string `json:"error" yaml:"error"`
}

type packedResult struct {
	Material string          `json:"material" yaml:"material"`
	Bins     []Bin           `json:"bins" yaml:"bins"`
	Unplaced []PlacementItem `json:"unplaced" yaml:"unplaced"`
}

// wireShape is {material, error} for a failed material and
// {material, bins, unplaced} otherwise, with both lists always present.
func (mr MaterialResult) wireShape() interface{} {
	if mr.HasError() {
		return noStockResult{Material: mr.Material, Error: mr.Error}
	}
	out := packedResult{Material: mr.Material, Bins: mr.Bins, Unplaced: mr.Unplaced}
	if out.Bins == nil {
		out.Bins = []Bin{}
	}
	if out.Unplaced == nil {
		out.Unplaced = []PlacementItem{}
	}
	return out
}

func (mr MaterialResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(mr.wireShape())
}

func (mr MaterialResult) MarshalYAML() (interface{}, error) {
	return mr.wireShape(), nil
}

// CutSettings holds optimizer configuration.
type CutSettings struct {
	Kerf         float64 `json:"kerf" yaml:"kerf"`                 // Blade width in mm
	Unit         string  `json:"unit" yaml:"unit"`                 // Display unit: "mm", "cm" or "inch"
	RespectGrain bool    `json:"respectGrain" yaml:"respectGrain"` // Forbid rotating grain-directed parts
}

// DefaultKerf is a 1/8" blade.
const DefaultKerf = 3.175

func DefaultSettings() CutSettings {
	return CutSettings{
		Kerf:         DefaultKerf,
		Unit:         "inch",
		RespectGrain: false,
	}
}

// Project ties everything together for save/load.
type Project struct {
	Name     string           `json:"name" yaml:"name"`
	Parts    []Part           `json:"parts" yaml:"parts"`
	Stock    []StockPiece     `json:"stock" yaml:"stock"`
	Settings CutSettings      `json:"settings" yaml:"settings"`
	Results  []MaterialResult `json:"results,omitempty" yaml:"results,omitempty"`
}

func NewProject() Project {
	return Project{
		Name:     "Untitled",
		Parts:    []Part{},
		Stock:    []StockPiece{},
		Settings: DefaultSettings(),
	}
}

// ExampleProject returns a small cabinet project with two materials, one of
// which includes a panel too large for the available stock.
func ExampleProject() Project {
	p := NewProject()
	p.Name = "Example Cabinet"
	p.Stock = []StockPiece{
		{ID: "s1", Name: "Full Sheet", Length: 2440, Width: 1220, Thickness: 19.05, Quantity: 1, Material: "Birch Plywood", Cost: 45.00},
		{ID: "s2", Name: "Short Board", Length: 1200, Width: 150, Thickness: 19.05, Quantity: 2, Material: "Walnut", Cost: 12.50},
	}
	p.Parts = []Part{
		{ID: "p1", Name: "Cabinet Side", Length: 762, Width: 600, Thickness: 19.05, Quantity: 2, Material: "Birch Plywood"},
		{ID: "p2", Name: "Cabinet Bottom", Length: 762, Width: 600, Thickness: 19.05, Quantity: 1, Material: "Birch Plywood"},
		{ID: "p3", Name: "Shelf", Length: 724, Width: 580, Thickness: 19.05, Quantity: 3, Material: "Birch Plywood"},
		{ID: "p4", Name: "Face Frame Stile", Length: 762, Width: 50, Thickness: 19.05, Quantity: 2, Material: "Walnut"},
		{ID: "p5", Name: "Face Frame Rail", Length: 662, Width: 50, Thickness: 19.05, Quantity: 2, Material: "Walnut"},
		{ID: "p6", Name: "Oversized Panel", Length: 2500, Width: 1300, Thickness: 19.05, Quantity: 1, Material: "Birch Plywood"},
	}
	return p
}
