package filestorage

import (
	"path"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// SanitizeFilename strips directories and diacritics and replaces every
// character outside [a-zA-Z0-9.-] with an underscore.
func SanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, `\`, "/"))
	if name == "." || name == "/" {
		name = ""
	}

	var b strings.Builder
	for _, r := range norm.NFD.String(name) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}

	cleaned := strings.TrimLeft(unsafeFilenameChars.ReplaceAllString(b.String(), "_"), ".")
	if cleaned == "" {
		return "file"
	}
	return cleaned
}

// ObjectName builds the storage key "<folder>/<unix-ms>-<sanitized name>".
func ObjectName(folder, originalName string, now time.Time) string {
	name := strconv.FormatInt(now.UnixMilli(), 10) + "-" + SanitizeFilename(originalName)
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return name
	}
	return path.Join(folder, name)
}
