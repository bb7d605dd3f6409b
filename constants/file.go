package constants

import (
	"path/filepath"
	"strings"
)

// AllowedExtensions holds the file extensions accepted for report ingestion.
var AllowedExtensions = map[string]struct{}{
	"pdf": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// AuctionNumber derives the auction case number from a report filename,
// e.g. "2024타경102980-1_감정평가서.pdf" -> "2024타경102980-1".
// The number keys DB rows and extracted photo filenames.
func AuctionNumber(filename string) string {
	name := filepath.Base(filename)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	return strings.ReplaceAll(name, "_감정평가서", "")
}
