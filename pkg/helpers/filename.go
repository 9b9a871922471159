package helpers

import (
	"path"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const DefaultUploadName = "image.jpg"

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	unsafeChars   = regexp.MustCompile(`[^a-zA-Z0-9.\-]`)
)

// SafeFilename turns whitespace runs into "-" and drops anything outside
// [A-Za-z0-9.-]. An empty result becomes DefaultUploadName.
func SafeFilename(name string) string {
	s := whitespaceRun.ReplaceAllString(name, "-")
	s = unsafeChars.ReplaceAllString(s, "")
	if s == "" || s == "." || s == ".." {
		return DefaultUploadName
	}
	return s
}

// StoredFilename prefixes the sanitized name with the unix-millis timestamp
// and replaces its extension with ext, the one matching the detected content.
// An empty ext keeps the sanitized name untouched.
func StoredFilename(now time.Time, original, ext string) string {
	name := SafeFilename(original)
	if ext != "" {
		stem := strings.Trim(strings.TrimSuffix(name, path.Ext(name)), ".")
		if stem == "" {
			stem = strings.TrimSuffix(DefaultUploadName, path.Ext(DefaultUploadName))
		}
		name = stem + ext
	}
	return strconv.FormatInt(now.UnixMilli(), 10) + "-" + name
}
