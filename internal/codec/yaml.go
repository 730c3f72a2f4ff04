package codec

import (
	"fmt"
	"io"

	"hypermesh/internal/domain"

	"gopkg.in/yaml.v3"
)

// YAMLCodec handles YAML import/export
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// yamlFragment represents the YAML structure for topology snapshots
type yamlFragment struct {
	Dimension int        `yaml:"dimension"`
	Nodes     []yamlNode `yaml:"nodes"`
	Edges     []yamlEdge `yaml:"edges,omitempty"`
}

type yamlNode struct {
	Address          int    `yaml:"address"`
	Name             string `yaml:"name,omitempty"`
	Category         string `yaml:"category,omitempty"`
	RepositoryCount  int    `yaml:"repository_count"`
	UserCount        int    `yaml:"user_count"`
	Active           bool   `yaml:"active"`
	HeartbeatPattern string `yaml:"heartbeat_pattern,omitempty"`
}

type yamlEdge struct {
	From int `yaml:"from"`
	To   int `yaml:"to"`
}

// Parse imports a topology snapshot from YAML
func (c *YAMLCodec) Parse(r io.Reader) (*domain.TopologyFragment, error) {
	var yf yamlFragment
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&yf); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	fragment := domain.NewTopologyFragment()
	fragment.Dimension = yf.Dimension

	for _, yn := range yf.Nodes {
		fragment.AddNode(domain.Node{
			Address:          yn.Address,
			Name:             yn.Name,
			Category:         yn.Category,
			RepositoryCount:  yn.RepositoryCount,
			UserCount:        yn.UserCount,
			Active:           yn.Active,
			HeartbeatPattern: yn.HeartbeatPattern,
		})
	}

	for _, ye := range yf.Edges {
		fragment.AddEdge(domain.NewEdge(ye.From, ye.To))
	}

	return fragment, nil
}

// Export exports a topology snapshot to YAML
func (c *YAMLCodec) Export(fragment *domain.TopologyFragment, w io.Writer) error {
	yf := yamlFragment{
		Dimension: fragment.Dimension,
		Nodes:     make([]yamlNode, 0, len(fragment.Nodes)),
		Edges:     make([]yamlEdge, 0, len(fragment.Edges)),
	}

	for _, node := range fragment.Nodes {
		yf.Nodes = append(yf.Nodes, yamlNode{
			Address:          node.Address,
			Name:             node.Name,
			Category:         node.Category,
			RepositoryCount:  node.RepositoryCount,
			UserCount:        node.UserCount,
			Active:           node.Active,
			HeartbeatPattern: node.HeartbeatPattern,
		})
	}

	for _, edge := range fragment.Edges {
		yf.Edges = append(yf.Edges, yamlEdge{From: edge.From, To: edge.To})
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(&yf); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}
