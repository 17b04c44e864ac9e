package encoder

import "strings"

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// EscapeText escapes the five XML special characters using their named
// entities.
func EscapeText(s string) string {
	return textEscaper.Replace(s)
}

type document struct {
	b strings.Builder
}

func (d *document) open(name string)  { d.b.WriteString("<" + name + ">") }
func (d *document) close(name string) { d.b.WriteString("</" + name + ">") }

// element writes name with escaped text content.
func (d *document) element(name, text string) {
	d.open(name)
	d.b.WriteString(EscapeText(text))
	d.close(name)
}

func (d *document) String() string { return d.b.String() }
