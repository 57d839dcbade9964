package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"Orthos/internal/laminate"
)

// DefaultMaterialName is the preset used when a request names no material.
const DefaultMaterialName = "carbon-epoxy"

// Materials maps preset names to ply materials.
type Materials map[string]laminate.Material

type materialsFile struct {
	Materials Materials `yaml:"materials"`
}

// DefaultMaterials returns the built-in presets.
func DefaultMaterials() Materials {
	return Materials{
		DefaultMaterialName: laminate.DefaultMaterial(),
		"glass-epoxy": {
			Name:         "glass-epoxy",
			Constants:    laminate.Constants{E1: 38.6e9, E2: 8.27e9, G12: 4.14e9, Nu12: 0.26},
			PlyThickness: laminate.DefaultPlyThickness,
		},
		"kevlar-epoxy": {
			Name:         "kevlar-epoxy",
			Constants:    laminate.Constants{E1: 76e9, E2: 5.5e9, G12: 2.3e9, Nu12: 0.34},
			PlyThickness: laminate.DefaultPlyThickness,
		},
	}
}

// LoadMaterials reads presets from a YAML file and merges them over the
// built-ins. An empty path returns the built-ins.
func LoadMaterials(path string) (Materials, error) {
	mats := DefaultMaterials()
	if path == "" {
		return mats, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f materialsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	for name, m := range f.Materials {
		m.Name = name
		if m.PlyThickness == 0 {
			m.PlyThickness = laminate.DefaultPlyThickness
		}
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("config: material %q: %w", name, err)
		}
		mats[name] = m
	}
	return mats, nil
}

// SaveMaterials writes presets as YAML.
func SaveMaterials(path string, mats Materials) error {
	data, err := yaml.Marshal(materialsFile{Materials: mats})
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Get returns the named preset; the empty name selects the default.
func (m Materials) Get(name string) (laminate.Material, error) {
	if name == "" {
		name = DefaultMaterialName
	}
	mat, ok := m[name]
	if !ok {
		return laminate.Material{}, fmt.Errorf("%w: unknown material %q", laminate.ErrInvalidMaterial, name)
	}
	return mat, nil
}

// Names returns the preset names in order.
func (m Materials) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
