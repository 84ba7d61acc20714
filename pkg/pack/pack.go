// Package pack builds deployment artifacts: a zip of the service directory
// with doublestar exclude patterns applied.
package pack

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultExcludes are always applied on top of the service's own exclude
// patterns.
var DefaultExcludes = []string{
	".git/**",
	".gitignore",
	".serverless/**",
	".DS_Store",
	"node_modules/**",
	"serverless.yml",
	"serverless.yaml",
}

// Zip packages the contents of root into a zip archive, skipping any file
// whose slash-separated relative path matches one of the exclude patterns.
// Include patterns win over excludes, so a file can be re-added after a broad
// exclude. Files are visited in walk order, which is deterministic.
func Zip(root string, includes, excludes []string) ([]byte, error) {
	patterns := append(append([]string{}, DefaultExcludes...), excludes...)

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if matchesAny(patterns, rel) && !matchesAny(includes, rel) {
			return nil
		}

		return addFile(w, path, rel)
	})
	if err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to package %s: %w", root, err)
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}

func matchesAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

func addFile(w *zip.Writer, path, rel string) error {
	in, err := os.Open(path)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = rel
	header.Method = zip.Deflate

	out, err := w.CreateHeader(header)
	if err != nil {
		return err
	}
	_, err = io.Copy(out, in)
	return err
}
