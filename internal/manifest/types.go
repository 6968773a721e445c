package manifest

import "github.com/AnyUserName/collage-cli/internal/layout"

// Manifest describes one collage run: what went where, and what was written.
type Manifest struct {
	Version     int         `json:"version"`
	GeneratedAt string      `json:"generated_at"`
	Profile     string      `json:"profile"`
	Input       string      `json:"input"`
	Output      Output      `json:"output"`
	Grid        layout.Grid `json:"grid"`
	Canvas      Canvas      `json:"canvas"`
	Folders     []Folder    `json:"folders"`
	Cells       []Cell      `json:"cells"`
	Stats       Stats       `json:"stats"`
}

// Output is the written collage file.
type Output struct {
	Path   string `json:"path"`
	Format string `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Size   int64  `json:"size"` // bytes on disk
	Hash   string `json:"hash"` // xxhash64 of the file, hex
}

// Canvas records the pixel buffer the collage was composited in.
type Canvas struct {
	Backing string `json:"backing"` // "memory" or "disk"
	Bytes   int64  `json:"bytes"`
	Hash    string `json:"hash"` // xxhash64 of the raw RGBA8 pixels
}

// Folder is one input subfolder and how many images it contributed.
type Folder struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Cell status values.
const (
	StatusPlaced       = "placed"
	StatusDecodeFailed = "decode_failed"
)

// Cell is one source image and its placement.
type Cell struct {
	Index     int               `json:"index"`
	Source    string            `json:"source"` // relative to input
	Folder    string            `json:"folder"`
	SrcWidth  int               `json:"src_width,omitempty"`
	SrcHeight int               `json:"src_height,omitempty"`
	Placement *layout.Placement `json:"placement,omitempty"`
	Status    string            `json:"status"`
	Error     string            `json:"error,omitempty"`
}

// Stats aggregates the run.
type Stats struct {
	TotalImages int   `json:"total_images"`
	Placed      int   `json:"placed"`
	Failed      int   `json:"failed"`
	Folders     int   `json:"folders"`
	InputBytes  int64 `json:"input_bytes"`
}

// SupportedManifestVersion is the current schema version.
const SupportedManifestVersion = 1
