package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"hypermesh/internal/domain"
)

// JSONCodec handles JSON import/export
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// Parse imports a topology snapshot from JSON
func (c *JSONCodec) Parse(r io.Reader) (*domain.TopologyFragment, error) {
	var fragment domain.TopologyFragment
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&fragment); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	return &fragment, nil
}

// Export exports a topology snapshot to JSON
func (c *JSONCodec) Export(fragment *domain.TopologyFragment, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(fragment); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}
