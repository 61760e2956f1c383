package handoff

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"

	"github.com/kgscaffold/kgscaffold/internal/naming"
)

// Keys written to the hand-off file, in file order.
const (
	KeyClassName = "adapter_class_name"
	KeyPascal    = "pascal_case_name"
	KeySnake     = "snake_case_name"
	KeyOriginal  = "original_name"
)

var keyOrder = []string{KeyClassName, KeyPascal, KeySnake, KeyOriginal}

// escapedMarker is the first line of a file whose values are escaped. Files
// without it, including those written by older hooks, are read verbatim.
const escapedMarker = "#escaped"

// Record is the content of a hand-off file.
type Record struct {
	ClassName string
	Pascal    string
	Snake     string
	Original  string

	// Extra holds keys this version does not know about.
	Extra map[string]string
	// Skipped lists lines that could not be parsed.
	Skipped []string
}

// FromNames builds a Record from derived names.
func FromNames(n naming.Names) Record {
	return Record{
		ClassName: n.Class,
		Pascal:    n.Pascal,
		Snake:     n.Snake,
		Original:  n.Original,
	}
}

// Names converts the record back into derived names.
func (r Record) Names() naming.Names {
	return naming.Names{
		Original: r.Original,
		Pascal:   r.Pascal,
		Snake:    r.Snake,
		Class:    r.ClassName,
	}
}

func (r Record) value(key string) string {
	switch key {
	case KeyClassName:
		return r.ClassName
	case KeyPascal:
		return r.Pascal
	case KeySnake:
		return r.Snake
	case KeyOriginal:
		return r.Original
	}
	return r.Extra[key]
}

func (r *Record) set(key, value string) {
	switch key {
	case KeyClassName:
		r.ClassName = value
	case KeyPascal:
		r.Pascal = value
	case KeySnake:
		r.Snake = value
	case KeyOriginal:
		r.Original = value
	default:
		if r.Extra == nil {
			r.Extra = make(map[string]string)
		}
		r.Extra[key] = value
	}
}

// Marshal renders the record as key=value lines. Extra keys are not written.
// When a value needs escaping, the file starts with the escaped marker.
func Marshal(r Record) []byte {
	escaped := false
	for _, key := range keyOrder {
		if needsEscape(r.value(key)) {
			escaped = true
			break
		}
	}

	var b strings.Builder
	if escaped {
		b.WriteString(escapedMarker)
		b.WriteByte('\n')
	}
	for _, key := range keyOrder {
		v := r.value(key)
		if escaped {
			v = escape(v)
		}
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(v)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

// Unmarshal parses key=value lines. Only the first '=' separates key from
// value. Lines without '=' are collected in Record.Skipped. Values are
// unescaped only when the first non-blank line is the escaped marker.
func Unmarshal(data []byte) Record {
	var r Record
	escaped, first := false, true
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if first {
			first = false
			if strings.TrimSpace(line) == escapedMarker {
				escaped = true
				continue
			}
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok || strings.TrimSpace(key) == "" {
			r.Skipped = append(r.Skipped, line)
			continue
		}
		if escaped {
			value = unescape(value)
		}
		r.set(strings.TrimSpace(key), value)
	}
	return r
}

// Write stores r at path, replacing any existing file.
func Write(fs afero.Fs, path string, r Record) error {
	if err := afero.WriteFile(fs, path, Marshal(r), 0644); err != nil {
		return fmt.Errorf("writing hand-off file %s: %w", path, err)
	}
	return nil
}

// Read loads the record at path.
func Read(fs afero.Fs, path string) (Record, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return Record{}, fmt.Errorf("reading hand-off file %s: %w", path, err)
	}
	return Unmarshal(data), nil
}

// Consume reads the record at path and removes the file. The boolean is false
// when no file exists, which is not an error.
func Consume(fs afero.Fs, path string) (Record, bool, error) {
	r, err := Read(fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Record{}, false, nil
		}
		return Record{}, false, err
	}
	if err := fs.Remove(path); err != nil {
		return r, true, fmt.Errorf("removing hand-off file %s: %w", path, err)
	}
	return r, true, nil
}

func needsEscape(v string) bool {
	return strings.ContainsAny(v, "\\\n\r")
}

// escape keeps a value on one line.
func escape(v string) string {
	r := strings.NewReplacer(`\`, `\\`, "\n", `\n`, "\r", `\r`)
	return r.Replace(v)
}

func unescape(v string) string {
	if !strings.Contains(v, `\`) {
		return v
	}
	var b strings.Builder
	for i := 0; i < len(v); i++ {
		c := v[i]
		if c != '\\' || i == len(v)-1 {
			b.WriteByte(c)
			continue
		}
		i++
		switch v[i] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case '\\':
			b.WriteByte('\\')
		default:
			b.WriteByte('\\')
			b.WriteByte(v[i])
		}
	}
	return b.String()
}
