package html

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

type palette struct {
	name    string
	variant string
	style   string
}

// resolveTheme returns an empty palette when no selector is configured.
func (r *Renderer) resolveTheme(name, variant string) (palette, error) {
	if r.themes == nil {
		return palette{}, nil
	}
	selection, err := r.themes.Select(name, variant)
	if err != nil {
		return palette{}, fmt.Errorf("html renderer: select theme %q: %w", name, err)
	}
	if selection == nil {
		return palette{}, nil
	}
	return palette{
		name:    selection.Theme,
		variant: selection.Variant,
		style:   CSSVars(Tokens(selection)),
	}, nil
}

// Tokens merges the manifest tokens of selection with the overrides of the
// selected variant.
func Tokens(selection *theme.Selection) map[string]string {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	tokens := make(map[string]string, len(selection.Manifest.Tokens))
	for key, value := range selection.Manifest.Tokens {
		tokens[key] = value
	}
	if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
		for key, value := range variant.Tokens {
			tokens[key] = value
		}
	}
	return tokens
}

// CSSVars renders tokens as an inline style declaring one custom property per
// token, sorted by property name. A key already carrying the "--" prefix wins
// over its bare twin.
func CSSVars(tokens map[string]string) string {
	if len(tokens) == 0 {
		return ""
	}
	vars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		if strings.HasPrefix(key, "--") {
			vars[key] = value
			continue
		}
		if _, explicit := tokens["--"+key]; explicit {
			continue
		}
		vars["--"+key] = value
	}
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s;", name, vars[name]))
	}
	return strings.Join(parts, " ")
}
