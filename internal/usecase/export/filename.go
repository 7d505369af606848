package export

import (
	"html"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

const (
	FilePrefix    = "PF-Loan-Application-"
	FileExtension = ".pdf"
	DefaultName   = "Employee"
)

var stripMarkup = bluemonday.StrictPolicy()

// FileName derives the download name from the employee name, e.g.
// "PF-Loan-Application-Riya Sen.pdf".
func FileName(employeeName string) string {
	name := html.UnescapeString(stripMarkup.Sanitize(employeeName))
	name = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || strings.ContainsRune(`/\:*?"<>|`, r) {
			return -1
		}
		return r
	}, name)
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultName
	}
	return FilePrefix + name + FileExtension
}
