// Package project persists projects, the application config, the material
// inventory and backups.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/piwi3910/OpenCutList/internal/model"
)

// Format is a project file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the encoding from the file extension. Anything that is
// not .yaml or .yml is JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Save writes the project to path in the format implied by its extension.
func Save(path string, proj model.Project) error {
	data, err := Marshal(proj, FormatForPath(path))
	if err != nil {
		return err
	}
	return writeFile(path, data)
}

// Load reads a project from path.
func Load(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to read project: %w", err)
	}
	proj, err := Unmarshal(data, FormatForPath(path))
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return proj, nil
}

// Marshal encodes a project.
func Marshal(proj model.Project, format Format) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatYAML:
		data, err = yaml.Marshal(proj)
	default:
		data, err = json.MarshalIndent(proj, "", "  ")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal project: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a project and fills anything missing from a new
// project's defaults. JSON input may contain comments and trailing commas.
func Unmarshal(data []byte, format Format) (model.Project, error) {
	// Keys absent from the input keep the new project's values.
	proj := model.NewProject()
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &proj)
	default:
		err = json.Unmarshal(jsonc.ToJSON(data), &proj)
	}
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to parse project: %w", err)
	}
	normalize(&proj)
	return proj, nil
}

func normalize(proj *model.Project) {
	defaults := model.NewProject()
	if proj.Name == "" {
		proj.Name = defaults.Name
	}
	if proj.Parts == nil {
		proj.Parts = []model.Part{}
	}
	if proj.Stock == nil {
		proj.Stock = []model.StockPiece{}
	}
	if proj.Settings.Unit == "" {
		proj.Settings.Unit = defaults.Settings.Unit
	}
}
