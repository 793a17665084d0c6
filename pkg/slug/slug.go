// Package slug genera identificadores URL-safe a partir de texto libre.
//
// La misma función Make se usa tanto al proponer un slug como al verificar
// disponibilidad; duplicar el algoritmo haría que ambas partes discrepen
// sobre qué se guarda en la base.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Límites de longitud para un slug válido (subdominio del negocio).
const (
	MinLength = 3
	MaxLength = 50
)

// stripMarks descompone a NFD y elimina marcas diacríticas, de modo que
// "Café Bogotá" produce "cafe-bogota" y no "caf-bogot".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Make convierte texto libre en un token canónico: minúsculas, espacios a
// guiones, solo [a-z0-9-], guiones repetidos colapsados y sin guiones en los
// extremos. Función pura y total: entrada vacía o basura produce "".
// Es idempotente: Make(Make(x)) == Make(x).
func Make(text string) string {
	folded, _, err := transform.String(stripMarks, text)
	if err != nil {
		// La transformación NFD nunca falla con UTF-8 válido; ante bytes
		// inválidos se continúa con el texto original y el filtro posterior
		// descarta lo que no sea [a-z0-9-].
		folded = text
	}
	folded = strings.ToLower(strings.TrimSpace(folded))

	var b strings.Builder
	b.Grow(len(folded))
	lastHyphen := false
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case r == '-' || unicode.IsSpace(r):
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
		// Cualquier otro carácter se descarta.
	}
	return strings.Trim(b.String(), "-")
}

// IsValid indica si un slug ya normalizado cumple los límites de longitud.
func IsValid(s string) bool {
	return len(s) >= MinLength && len(s) <= MaxLength
}
