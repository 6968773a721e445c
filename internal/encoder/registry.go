package encoder

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DefaultFormat is the collage output format.
const DefaultFormat = "webp"

// Auto asks Resolve to infer the format from the output path.
const Auto = "auto"

// Registry maps format names to encoders.
type Registry struct {
	encoders map[string]Encoder
	aliases  map[string]string
}

// NewRegistry returns a registry holding the webp, png and jpeg encoders.
func NewRegistry() *Registry {
	r := &Registry{
		encoders: make(map[string]Encoder),
		aliases:  map[string]string{"jpg": "jpeg"},
	}
	for _, enc := range []Encoder{
		&WebPEncoder{},
		&PNGEncoder{},
		&JPEGEncoder{},
	} {
		r.encoders[enc.Format()] = enc
	}
	return r
}

// Get returns the encoder for format, or nil if unknown.
func (r *Registry) Get(format string) Encoder {
	format = strings.ToLower(strings.TrimPrefix(format, "."))
	if a, ok := r.aliases[format]; ok {
		format = a
	}
	return r.encoders[format]
}

// Available returns the format names in priority order.
func (r *Registry) Available() []string {
	var result []string
	for _, f := range []string{"webp", "png", "jpeg"} {
		if _, ok := r.encoders[f]; ok {
			result = append(result, f)
		}
	}
	return result
}

// Resolve picks the encoder for an output file. An empty format means
// DefaultFormat. Auto infers the format from outputPath's extension and
// falls back to DefaultFormat for unknown extensions.
func (r *Registry) Resolve(format, outputPath string) (Encoder, error) {
	switch strings.ToLower(format) {
	case "":
		format = DefaultFormat
	case Auto:
		format = DefaultFormat
		if enc := r.Get(filepath.Ext(outputPath)); enc != nil {
			return enc, nil
		}
	}
	enc := r.Get(format)
	if enc == nil {
		return nil, fmt.Errorf("unsupported output format %q (available: %s)",
			format, strings.Join(r.Available(), ", "))
	}
	return enc, nil
}

// String returns a summary of available encoders.
func (r *Registry) String() string {
	return fmt.Sprintf("encoders: %s", strings.Join(r.Available(), ", "))
}
