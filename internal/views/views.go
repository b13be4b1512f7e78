package views

import (
	"embed"
	"fmt"
	"html/template"
	"strconv"
	"strings"
)

//go:embed *.html
var FS embed.FS

// FuncMap holds the helpers the page templates use.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		// 15000 -> "15000,00"
		"price": commaFixed2,
		"hours": commaFixed2,
		"fixed2": func(v float64) string {
			return fmt.Sprintf("%.2f", v)
		},
		"val": func(m map[string]string, key string) string {
			return m[key]
		},
		"sel": func(id int64, raw string) bool {
			return strconv.FormatInt(id, 10) == strings.TrimSpace(raw)
		},
		"add": func(a, b int) int { return a + b },
	}
}

func commaFixed2(v float64) string {
	return strings.Replace(fmt.Sprintf("%.2f", v), ".", ",", 1)
}

// Parse loads the page templates, from disk when dev is set so edits show up
// without a rebuild.
func Parse(dev bool) (*template.Template, error) {
	t := template.New("layout").Funcs(FuncMap())
	if dev {
		return t.ParseGlob("internal/views/*.html")
	}
	return t.ParseFS(FS, "*.html")
}
