package driver

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// File extensions the driver picks up from directories.
const (
	ExtJava     = ".java"
	ExtSnapshot = ".jtree"
)

// Checkable reports whether path names a Java source or a tree snapshot.
func Checkable(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ExtJava || ext == ExtSnapshot
}

// IsSnapshot reports whether path names a tree snapshot.
func IsSnapshot(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ExtSnapshot)
}

// ListFiles возвращает отсортированный список проверяемых файлов в директории.
// exclude получает путь относительно dir; совпавшие директории пропускаются целиком.
func ListFiles(dir string, exclude func(rel string) bool) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != dir && exclude != nil {
			rel, relErr := filepath.Rel(dir, path)
			if relErr == nil && exclude(rel) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}
		if !d.IsDir() && Checkable(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}
