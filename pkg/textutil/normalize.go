// Package textutil normalización de texto para búsqueda: el catálogo guarda
// nombres en español y la búsqueda debe encontrar "Café" al escribir "cafe".
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize pasa a minúsculas y elimina marcas diacríticas (tildes, diéresis).
// Se usa tanto al materializar la columna search_text como sobre el término
// de búsqueda, de modo que ambos lados comparan igual.
func Normalize(s string) string {
	s = strings.ToLower(s)
	// El transformer encadenado tiene estado: una instancia por llamada.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
