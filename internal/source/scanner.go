// Package source discovers collage inputs: the images inside the immediate
// subfolders of a root directory, in folder-then-filename order.
package source

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultExtensions are the file extensions picked up when none are configured.
var DefaultExtensions = []string{".jpg", ".jpeg", ".webp"}

// ImageRef is one discovered image. It is never mutated after Scan.
type ImageRef struct {
	// Path is the file path as found under the root.
	Path string
	// RelPath is the path relative to the root, with forward slashes.
	RelPath string
	// Folder is the name of the subfolder holding the image.
	Folder string
	// FolderIndex is the position of Folder among the sorted subfolders.
	FolderIndex int
	// Rank is the position of the image within its folder.
	Rank int
	// Format is the normalized extension (jpeg, webp, png, ...).
	Format string
	// Size is the file size in bytes.
	Size int64
}

// Folder summarizes one scanned subfolder.
type Folder struct {
	Name  string
	Path  string
	Count int
}

// Result is the outcome of a scan.
type Result struct {
	Root    string
	Folders []Folder
	Images  []ImageRef
}

// DirError reports a directory that could not be listed.
type DirError struct {
	Path string
	Err  error
}

func (e *DirError) Error() string { return fmt.Sprintf("read directory %s: %v", e.Path, e.Err) }
func (e *DirError) Unwrap() error { return e.Err }

// Scan lists the subfolders of root (sorted by name, hidden ones skipped),
// and within each the regular files whose extension is in exts
// (case-insensitive, sorted by name). Files directly in root are ignored.
// Any unreadable directory aborts the scan with a *DirError.
func Scan(root string, exts []string) (*Result, error) {
	allowed := extensionSet(exts)

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, &DirError{Path: root, Err: err}
	}

	var names []string
	for _, e := range entries {
		if !isDir(root, e) || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	res := &Result{Root: root}
	for fi, name := range names {
		dir := filepath.Join(root, name)
		files, err := os.ReadDir(dir)
		if err != nil {
			return nil, &DirError{Path: dir, Err: err}
		}

		var picked []os.DirEntry
		for _, f := range files {
			if f.IsDir() || !allowed[strings.ToLower(filepath.Ext(f.Name()))] {
				continue
			}
			picked = append(picked, f)
		}
		sort.Slice(picked, func(i, j int) bool { return picked[i].Name() < picked[j].Name() })

		for rank, f := range picked {
			var size int64
			if info, err := f.Info(); err == nil {
				size = info.Size()
			}
			res.Images = append(res.Images, ImageRef{
				Path:        filepath.Join(dir, f.Name()),
				RelPath:     name + "/" + f.Name(),
				Folder:      name,
				FolderIndex: fi,
				Rank:        rank,
				Format:      formatOf(f.Name()),
				Size:        size,
			})
		}
		res.Folders = append(res.Folders, Folder{Name: name, Path: dir, Count: len(picked)})
	}

	return res, nil
}

// NormalizeExtensions lower-cases exts and ensures a leading dot.
func NormalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	return out
}

func extensionSet(exts []string) map[string]bool {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	set := map[string]bool{}
	for _, e := range NormalizeExtensions(exts) {
		set[e] = true
	}
	return set
}

// isDir follows symlinks so linked subfolders are scanned too.
func isDir(root string, e os.DirEntry) bool {
	if e.IsDir() {
		return true
	}
	if e.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(root, e.Name()))
	return err == nil && info.IsDir()
}

func formatOf(name string) string {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	switch format {
	case "jpg":
		return "jpeg"
	case "tif":
		return "tiff"
	}
	return format
}
