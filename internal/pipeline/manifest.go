package pipeline

import (
	"path/filepath"

	"github.com/AnyUserName/collage-cli/internal/hasher"
	"github.com/AnyUserName/collage-cli/internal/manifest"
)

func (p *Pipeline) writeManifest(r *Report) (string, error) {
	m := manifest.New(p.cfg.Profile)
	m.Input = p.cfg.InputDir
	m.Grid = r.Grid
	m.Canvas = manifest.Canvas{
		Backing: string(r.Backing),
		Bytes:   r.Grid.BufferLen(),
		Hash:    r.CanvasHash,
	}

	sum, size, err := hasher.File(p.cfg.OutputPath)
	if err != nil {
		return "", err
	}
	m.Output = manifest.Output{
		Path:   filepath.Base(p.cfg.OutputPath),
		Format: r.Format,
		Width:  r.Grid.Width,
		Height: r.Grid.Height,
		Size:   size,
		Hash:   sum,
	}

	for _, f := range r.Scan.Folders {
		m.Folders = append(m.Folders, manifest.Folder{Name: f.Name, Count: f.Count})
	}
	for _, c := range r.Cells {
		m.Stats.InputBytes += c.Ref.Size
		mc := manifest.Cell{
			Index:  c.Index,
			Source: c.Ref.RelPath,
			Folder: c.Ref.Folder,
		}
		if c.OK() {
			placement := c.Placement
			mc.Status = manifest.StatusPlaced
			mc.SrcWidth, mc.SrcHeight = c.SrcWidth, c.SrcHeight
			mc.Placement = &placement
		} else {
			mc.Status = manifest.StatusDecodeFailed
			mc.Error = c.Err.Error()
		}
		m.Cells = append(m.Cells, mc)
	}

	path := manifest.PathFor(p.cfg.OutputPath)
	if err := manifest.WriteJSON(m, path); err != nil {
		return "", err
	}
	return path, nil
}
