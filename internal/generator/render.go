package generator

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/mark3labs/swagen/internal/naming"
)

// Funcs are available to every generator template.
var Funcs = template.FuncMap{
	"quote":      strconv.Quote,
	"squote":     SingleQuote,
	"join":       strings.Join,
	"upper":      strings.ToUpper,
	"lower":      strings.ToLower,
	"lowerFirst": naming.ToLowerFirst,
	"title":      naming.ToTitleCase,
	"lines":      lines,
	"trim":       strings.TrimSpace,
}

// Render executes a template with Funcs plus extra functions.
func Render(name, text string, extra template.FuncMap, data any) (string, error) {
	t := template.New(name).Funcs(Funcs)
	if extra != nil {
		t = t.Funcs(extra)
	}
	t, err := t.Parse(text)
	if err != nil {
		return "", fmt.Errorf("parse %s template: %w", name, err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s template: %w", name, err)
	}
	return buf.String(), nil
}

// lines splits s into trimmed, non-empty lines for comment blocks.
func lines(s string) []string {
	var out []string
	for _, l := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		if l = strings.TrimRight(l, " \t"); strings.TrimSpace(l) != "" {
			out = append(out, l)
		}
	}
	return out
}

// SingleQuote renders s as a single-quoted string literal.
func SingleQuote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`, "\r", `\r`)
	return "'" + r.Replace(s) + "'"
}
