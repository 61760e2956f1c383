package naming

import (
	"strings"

	"github.com/iancoleman/strcase"
)

// AdapterSuffix is appended to the Pascal form to build the adapter class name.
const AdapterSuffix = "Adapter"

// Names holds every form derived from a single raw name.
type Names struct {
	Original string `json:"original_name"`
	Pascal   string `json:"pascal_case_name"`
	Snake    string `json:"snake_case_name"`
	Class    string `json:"adapter_class_name"`
}

// Derive computes the Pascal, snake and class forms of raw.
func Derive(raw string) Names {
	pascal := Pascal(raw)
	return Names{
		Original: raw,
		Pascal:   pascal,
		Snake:    Snake(raw),
		Class:    ClassName(pascal),
	}
}

// Pascal splits raw on every character that is not an ASCII letter or digit,
// capitalizes each word (first letter upper, rest lower) and joins them.
//
//	Pascal("My-Cool Resource!!") // "MyCoolResource"
//	Pascal("HTTP api")           // "HttpApi"
func Pascal(raw string) string {
	var b strings.Builder
	for _, word := range words(raw) {
		b.WriteString(capitalize(word))
	}
	return b.String()
}

// Snake lowercases raw and joins its alphanumeric runs with single underscores.
// The result never starts or ends with an underscore and never holds two in a row.
func Snake(raw string) string {
	return strings.ToLower(strings.Join(words(raw), "_"))
}

// ClassName appends AdapterSuffix unless pascal already ends with it, so
// ClassName(ClassName(x)) == ClassName(x).
func ClassName(pascal string) string {
	if strings.HasSuffix(pascal, AdapterSuffix) {
		return pascal
	}
	return pascal + AdapterSuffix
}

// PackageName suggests a Python package name for a project name.
func PackageName(project string) string {
	return strcase.ToSnake(spaced(project))
}

// ProjectSlug suggests a directory name for a project name.
func ProjectSlug(project string) string {
	return strcase.ToKebab(spaced(project))
}

// spaced replaces every non-alphanumeric run with a single space so strcase
// sees clean word boundaries.
func spaced(s string) string {
	return strings.Join(words(s), " ")
}

// words returns the maximal runs of ASCII letters and digits in s.
func words(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return !isAlnum(r) })
}

func capitalize(word string) string {
	if word == "" {
		return ""
	}
	return strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
}

func isAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
