package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joseph-ayodele/receiving-normalizer/constants"
)

// Stats summarizes one directory enumeration.
type Stats struct {
	Scanned uint32
	Matched uint32
	Skipped uint32
}

// ListImages enumerates the recognized scan images (jpg/jpeg/png, any case)
// directly under dir. Non-recursive: the vendor folder convention keeps one
// category per directory. Hidden files are skipped. Results are sorted for
// deterministic batch order; ordering carries no correctness weight.
//
// A missing directory or an empty directory yields an empty list, not an
// error: a vendor may legitimately have no manifests.
func ListImages(dir string) ([]string, Stats, error) {
	var stats Stats

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, stats, nil
		}
		return nil, stats, fmt.Errorf("read dir %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		stats.Scanned++
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			stats.Skipped++
			continue
		}
		if !constants.IsImageExt(filepath.Ext(e.Name())) {
			stats.Skipped++
			continue
		}
		stats.Matched++
		files = append(files, filepath.Join(dir, e.Name()))
	}

	sort.Strings(files)
	return files, stats, nil
}
