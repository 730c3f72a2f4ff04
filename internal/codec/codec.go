package codec

import (
	"io"

	"hypermesh/internal/domain"
)

// Importer interface for importing topology snapshots from various formats
type Importer interface {
	Parse(r io.Reader) (*domain.TopologyFragment, error)
	Format() string
}

// Exporter interface for exporting topology snapshots to various formats
type Exporter interface {
	Export(fragment *domain.TopologyFragment, w io.Writer) error
	Format() string
}
