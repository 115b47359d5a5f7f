package style

import (
	"fmt"
	"sort"
	"strings"
)

// GenerateCSS compiles a class list into a stylesheet with the default
// config, discarding diagnostics.
func GenerateCSS(classes []string) string {
	cfg := DefaultConfig()
	return GenerateCSSWithConfig(classes, &cfg).CSS
}

// GenerateCSSWithConfig compiles the class list into deterministic CSS.
// Output order does not depend on input order: rules sort by
// (layer, selector), media groups appear in first-seen order after
// sorting, so any permutation of the same class set yields identical
// output.
func GenerateCSSWithConfig(classes []string, cfg *Config) Report {
	unique := dedupeClasses(classes)
	for _, c := range cfg.Safelist {
		if !containsString(unique, c) {
			unique = append(unique, c)
		}
	}

	var rules []Rule
	var bareUtilities []string
	var diagnostics []Diagnostic
	resolved := 0
	unresolved := 0

	for _, fullClass := range unique {
		if containsString(cfg.Blocklist, fullClass) {
			continue
		}

		parsed := ParseVariantsWithConfig(fullClass, cfg)

		// custom: classes pass through untouched, no rule and no
		// diagnostic.
		if parsed.IsCustom {
			continue
		}

		res, ok := ResolveUtility(parsed.Utility)
		if !ok {
			unresolved++
			if !hasUnknownDiag(diagnostics, fullClass) {
				diagnostics = append(diagnostics, Diagnostic{
					ClassName: fullClass,
					Kind:      DiagUnknownClass,
					Message:   fmt.Sprintf("unresolved utility class '%s'", fullClass),
				})
			}
			continue
		}

		resolved++
		bareUtilities = append(bareUtilities, parsed.Utility)

		selector := "." + EscapeSelector(fullClass)
		for _, pc := range parsed.PseudoClasses {
			selector += pc
		}
		selector += res.SelectorSuffix
		for _, sfx := range parsed.SelectorSuffixes {
			selector += sfx
		}
		// Leftmost prefix ends up outermost.
		for i := len(parsed.SelectorPrefixes) - 1; i >= 0; i-- {
			selector = parsed.SelectorPrefixes[i] + selector
		}

		decls := res.Declarations
		if parsed.Important {
			decls = makeImportant(decls)
		}

		media := combineMediaQueries(parsed.MediaQueries)
		var layer uint8
		if media != "" {
			layer = 1
		}
		rules = append(rules, Rule{
			Selector:     selector,
			Declarations: decls,
			Media:        media,
			Layer:        layer,
		})
	}

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].Layer != rules[j].Layer {
			return rules[i].Layer < rules[j].Layer
		}
		return rules[i].Selector < rules[j].Selector
	})

	var out strings.Builder
	if len(rules) > 0 {
		out.WriteString(preflightCSS)

		type mediaGroup struct {
			query   string
			indices []int
		}
		var groups []mediaGroup
		for i, r := range rules {
			if r.Media == "" {
				out.WriteString(r.Selector)
				out.WriteString("{")
				out.WriteString(r.Declarations)
				out.WriteString("}")
				continue
			}
			found := false
			for gi := range groups {
				if groups[gi].query == r.Media {
					groups[gi].indices = append(groups[gi].indices, i)
					found = true
					break
				}
			}
			if !found {
				groups = append(groups, mediaGroup{query: r.Media, indices: []int{i}})
			}
		}
		for _, g := range groups {
			out.WriteString("@media ")
			out.WriteString(g.query)
			out.WriteString("{")
			for _, idx := range g.indices {
				out.WriteString(rules[idx].Selector)
				out.WriteString("{")
				out.WriteString(rules[idx].Declarations)
				out.WriteString("}")
			}
			out.WriteString("}")
		}

		out.WriteString(KeyframesCSS(bareUtilities))
	}

	if cfg.UnknownClassPolicy == PolicySilent {
		diagnostics = nil
	}

	return Report{
		CSS:             out.String(),
		Diagnostics:     diagnostics,
		ResolvedCount:   resolved,
		UnresolvedCount: unresolved,
	}
}

func dedupeClasses(classes []string) []string {
	seen := make(map[string]struct{}, len(classes))
	out := make([]string, 0, len(classes))
	for _, c := range classes {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

func containsString(list []string, needle string) bool {
	for _, s := range list {
		if s == needle {
			return true
		}
	}
	return false
}

func hasUnknownDiag(diags []Diagnostic, className string) bool {
	for _, d := range diags {
		if d.Kind == DiagUnknownClass && d.ClassName == className {
			return true
		}
	}
	return false
}

func combineMediaQueries(list []string) string {
	return strings.Join(list, " and ")
}

func makeImportant(decls string) string {
	var out strings.Builder
	for _, part := range strings.Split(decls, ";") {
		if part == "" {
			continue
		}
		out.WriteString(part)
		out.WriteString(" !important;")
	}
	return out.String()
}
