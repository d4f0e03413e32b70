package pngpdf

import (
	"io/fs"
	"path/filepath"
	"sort"
)

// FindPNGs returns the paths of all .png files under root, largest first.
// Converting the biggest files first gives the most useful progress report
// when batch-converting a directory of figures.
func FindPNGs(root string) ([]string, error) {
	type candidate struct {
		path string
		size int64
	}

	var found []candidate
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".png" {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		found = append(found, candidate{path: path, size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(found, func(i, j int) bool {
		if found[i].size != found[j].size {
			return found[i].size > found[j].size
		}
		return found[i].path < found[j].path
	})

	paths := make([]string, len(found))
	for i, c := range found {
		paths[i] = c.path
	}
	return paths, nil
}
