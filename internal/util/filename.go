package util

import (
	"strings"
	"unicode"
)

// SanitizePathSegment : заменяет разделители путей и пробельные символы на "_",
// чтобы сегмент не мог выйти за пределы своего префикса в хранилище
func SanitizePathSegment(segment string) string {
	return strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || unicode.IsSpace(r) {
			return '_'
		}
		return r
	}, segment)
}
