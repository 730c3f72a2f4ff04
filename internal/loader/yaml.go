// Package loader reads ordered node metadata from YAML files.
//
// The metadata file is the injected, deterministic source that seeds a
// topology build: record i lands on address i. Randomly generated demo
// metadata, if wanted, belongs to whatever produces the file, never here.
package loader

import (
	"fmt"
	"os"

	"hypermesh/internal/domain"

	"gopkg.in/yaml.v3"
)

// MetadataYAML represents the metadata file structure
type MetadataYAML struct {
	Version string       `yaml:"version,omitempty"`
	Nodes   []RecordYAML `yaml:"nodes"`
}

// RecordYAML represents one node metadata record
type RecordYAML struct {
	Name            string `yaml:"name"`
	RepositoryCount int    `yaml:"repository_count,omitempty"`
	UserCount       int    `yaml:"user_count,omitempty"`
	Category        string `yaml:"category,omitempty"`
}

// LoadYAML loads ordered metadata records from a YAML file
func LoadYAML(path string) ([]domain.NodeMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return ParseYAML(data)
}

// ParseYAML parses ordered metadata records from YAML bytes
func ParseYAML(data []byte) ([]domain.NodeMetadata, error) {
	var yamlData MetadataYAML
	if err := yaml.Unmarshal(data, &yamlData); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	records := make([]domain.NodeMetadata, 0, len(yamlData.Nodes))
	for i, r := range yamlData.Nodes {
		if r.RepositoryCount < 0 || r.UserCount < 0 {
			return nil, fmt.Errorf("record %d (%s): counters must be non-negative", i, r.Name)
		}
		records = append(records, domain.NodeMetadata{
			Name:            r.Name,
			RepositoryCount: r.RepositoryCount,
			UserCount:       r.UserCount,
			Category:        r.Category,
		})
	}

	return records, nil
}

// ExportYAML exports metadata records to YAML format
func ExportYAML(records []domain.NodeMetadata) ([]byte, error) {
	yamlData := MetadataYAML{
		Version: "1",
		Nodes:   make([]RecordYAML, 0, len(records)),
	}

	for _, r := range records {
		yamlData.Nodes = append(yamlData.Nodes, RecordYAML{
			Name:            r.Name,
			RepositoryCount: r.RepositoryCount,
			UserCount:       r.UserCount,
			Category:        r.Category,
		})
	}

	return yaml.Marshal(&yamlData)
}
