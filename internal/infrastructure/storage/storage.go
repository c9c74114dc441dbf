// Package storage keeps the raw screenplay files uploaded for analysis.
package storage

import (
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// objectName builds a collision-free name that still shows the original file
// name: <uuid>-<sanitized name>.
func objectName(fileName string) string {
	id := uuid.NewString()
	clean := sanitizeFileName(fileName)
	if clean == "" {
		return id
	}
	return id + "-" + clean
}

// datedKey prefixes name with the upload date, scripts/YYYY/MM/DD/.
func datedKey(now time.Time, name string) string {
	return "scripts/" + now.UTC().Format("2006/01/02") + "/" + name
}

func sanitizeFileName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	if name == "." || name == "/" {
		return ""
	}
	clean := strings.Map(func(r rune) rune {
		switch {
		case r > unicode.MaxASCII:
			return '_'
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
	return strings.TrimLeft(clean, ".")
}
