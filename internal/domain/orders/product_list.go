// Package orders contiene servicios puros del dominio de pedidos, en
// particular el formato legado de lista de productos "Nombre (Nx)".
package orders

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// LineRef es un par nombre/cantidad extraído del texto de productos de un
// pedido. El texto es un campo derivado de display; las líneas (OrderItem)
// son la fuente de verdad, pero pedidos importados del sistema anterior solo
// traen el texto y hay que parsearlo.
type LineRef struct {
	Name     string
	Quantity int
}

// ParseResult separa los segmentos reconocidos de los descartados. El
// formato viejo descartaba silenciosamente lo que no matcheaba; aquí el
// descarte es explícito para que el caller lo registre o lo rechace.
type ParseResult struct {
	Lines   []LineRef
	Skipped []string
}

// Patrón de segmento: "Nombre (3x)". El nombre puede contener espacios y
// paréntesis no finales; la cantidad es un entero positivo.
var lineRefPattern = regexp.MustCompile(`^(.*\S)\s*\((\d+)x\)$`)

// ParseProductList parsea el texto "Nombre (Nx), Nombre2 (Mx)" en líneas.
// Nunca retorna error: los segmentos malformados van a Skipped.
func ParseProductList(text string) ParseResult {
	var res ParseResult
	for _, seg := range strings.Split(text, ",") {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		m := lineRefPattern.FindStringSubmatch(seg)
		if m == nil {
			res.Skipped = append(res.Skipped, seg)
			continue
		}
		qty, err := strconv.Atoi(m[2])
		if err != nil || qty <= 0 {
			res.Skipped = append(res.Skipped, seg)
			continue
		}
		res.Lines = append(res.Lines, LineRef{Name: m[1], Quantity: qty})
	}
	return res
}

// FormatProductList serializa líneas al formato "Nombre (Nx)" separado por
// ", ". Parse seguido de Format reproduce el texto original (módulo
// espacios en blanco).
func FormatProductList(lines []LineRef) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		parts = append(parts, fmt.Sprintf("%s (%dx)", l.Name, l.Quantity))
	}
	return strings.Join(parts, ", ")
}

// Transformador que descompone (NFD), elimina marcas diacríticas y
// recompone (NFC). "Chopp Artesanal Âmbar" -> "chopp artesanal ambar".
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeName normaliza un nombre de producto para resolución
// insensible a mayúsculas y acentos (los nombres vienen de texto libre).
func NormalizeName(name string) string {
	folded, _, err := transform.String(foldTransformer, name)
	if err != nil {
		folded = name
	}
	return strings.ToLower(strings.TrimSpace(folded))
}
