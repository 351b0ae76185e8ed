// Package seginfo provides utilities for discovering and naming segment
// files in a log-structured storage directory.
//
// Filename format: <version>.log, where version is a decimal
// non-negative integer. Versions are total-ordered and monotonically
// assigned; a greater version shadows a lesser one during replay.
//
// Example filenames:
//
//	1.log
//	2.log
//	17.log
package seginfo

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/ignitedb/ignite/pkg/filesys"
)

const extension = ".log"

// ListVersions discovers every segment file in segmentDir and returns
// their versions sorted ascending. An empty, non-existent directory
// yields an empty slice and no error.
func ListVersions(segmentDir string) ([]uint64, error) {
	if segmentDir == "" {
		return nil, fmt.Errorf("segmentDir must be non-empty")
	}

	searchPattern := filepath.Join(segmentDir, "*"+extension)
	matchingFiles, err := filesys.ReadDir(searchPattern)
	if err != nil {
		return nil, fmt.Errorf("failed to read segment directory with pattern %s: %w", searchPattern, err)
	}

	versions := make([]uint64, 0, len(matchingFiles))
	for _, path := range matchingFiles {
		version, err := ParseVersion(path)
		if err != nil {
			return nil, fmt.Errorf("failed to parse segment version from %s: %w", path, err)
		}
		versions = append(versions, version)
	}

	slices.Sort(versions)
	return versions, nil
}

// GenerateName returns the filename for a segment of the given version.
func GenerateName(version uint64) string {
	return fmt.Sprintf("%d%s", version, extension)
}

// ParseVersion extracts the version from a segment filename or path.
func ParseVersion(fullPath string) (uint64, error) {
	_, filename := filepath.Split(fullPath)

	if !strings.HasSuffix(filename, extension) {
		return 0, fmt.Errorf("filename %s does not have expected extension %s", filename, extension)
	}

	idStr := strings.TrimSuffix(filename, extension)
	version, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("filename %s has unexpected format, expected <version>%s", filename, extension)
	}

	return version, nil
}

// GetFileInfo safely retrieves file system metadata for a given path.
func GetFileInfo(filePath string) (os.FileInfo, error) {
	file, err := os.OpenFile(filePath, os.O_RDONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to get file info for %s: %w", filePath, err)
	}

	return stat, nil
}
