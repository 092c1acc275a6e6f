package ustring

import (
	"sync/atomic"

	"github.com/coregx/ustring/casemap"
)

//nolint:gochecknoglobals // process-wide case table
var caseTable atomic.Pointer[casemap.Table]

// SetCaseTable replaces the table used by ToUpper and ToLower. A nil table
// restores the embedded default.
func SetCaseTable(t *casemap.Table) {
	caseTable.Store(t)
}

func table() *casemap.Table {
	if t := caseTable.Load(); t != nil {
		return t
	}
	return casemap.Default()
}

// ToUpper maps every code point of s to its simple uppercase form.
func ToUpper(s string) (string, error) {
	return table().Upper(s)
}

// ToLower maps every code point of s to its simple lowercase form.
func ToLower(s string) (string, error) {
	return table().Lower(s)
}
