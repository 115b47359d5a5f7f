package style

import (
	"fmt"
	"strings"
)

// ParsedClass is a class token with variant information extracted.
type ParsedClass struct {
	// Utility is the bare utility name without variant prefixes.
	Utility string
	// PseudoClasses are appended to the selector (":hover", "::before",
	// "[data-state=open]").
	PseudoClasses []string
	// SelectorPrefixes wrap the selector (".dark ", ".group:hover ").
	SelectorPrefixes []string
	// SelectorSuffixes are appended after the pseudo classes.
	SelectorSuffixes []string
	// MediaQueries are combined with `and` into one media condition.
	MediaQueries []string
	// Important appends !important to every declaration.
	Important bool
	// Original is the full class name, used for selector generation.
	Original string
	// IsCustom marks a pass-through class that skips resolution.
	IsCustom bool
}

// Rule is one CSS rule with grouping data for stable output. Rules sort
// by (Layer, Selector).
type Rule struct {
	Selector     string
	Declarations string
	Media        string
	Layer        uint8
}

// Resolved is the resolver output: standard declarations, or a custom
// result carrying a child-combinator selector suffix (space-x, divide-y).
type Resolved struct {
	Declarations   string
	SelectorSuffix string
}

// ParseVariants parses a class with the default config.
func ParseVariants(class string) ParsedClass {
	cfg := DefaultConfig()
	return ParseVariantsWithConfig(class, &cfg)
}

// ParseVariantsWithConfig splits a class at top-level colons and maps
// each variant prefix, in order, onto media queries, pseudo selectors or
// ancestor prefixes. An unknown prefix stops variant processing.
func ParseVariantsWithConfig(class string, cfg *Config) ParsedClass {
	original := class

	important := false
	rest := class
	if strings.HasPrefix(rest, "!") {
		important = true
		rest = rest[1:]
	}

	parts := splitVariantChain(rest)
	if len(parts) <= 1 {
		return ParsedClass{Utility: rest, Important: important, Original: original}
	}

	p := ParsedClass{Important: important, Original: original}

	for _, prefix := range parts[:len(parts)-1] {
		if prefix == "custom" {
			p.IsCustom = true
			continue
		}

		if width, ok := cfg.Theme.Screens[prefix]; ok {
			p.MediaQueries = append(p.MediaQueries, fmt.Sprintf("(min-width:%s)", width))
			continue
		}
		if key, ok := strings.CutPrefix(prefix, "max-"); ok {
			if width, found := cfg.Theme.Screens[key]; found {
				p.MediaQueries = append(p.MediaQueries, fmt.Sprintf("(max-width:%s)", width))
				continue
			}
		}

		if prefix == "dark" {
			if cfg.DarkMode == DarkModeMedia {
				p.MediaQueries = append(p.MediaQueries, "(prefers-color-scheme:dark)")
			} else {
				p.SelectorPrefixes = append(p.SelectorPrefixes, ".dark ")
			}
			continue
		}

		if pc, ok := pseudoClass(prefix); ok {
			p.PseudoClasses = append(p.PseudoClasses, pc)
			continue
		}
		if pe, ok := pseudoElement(prefix); ok {
			p.PseudoClasses = append(p.PseudoClasses, pe)
			continue
		}

		switch prefix {
		case "group-hover":
			p.SelectorPrefixes = append(p.SelectorPrefixes, ".group:hover ")
			continue
		case "group-focus":
			p.SelectorPrefixes = append(p.SelectorPrefixes, ".group:focus ")
			continue
		case "peer-hover":
			p.SelectorPrefixes = append(p.SelectorPrefixes, ".peer:hover ~ ")
			continue
		case "peer-focus":
			p.SelectorPrefixes = append(p.SelectorPrefixes, ".peer:focus ~ ")
			continue
		}

		if cfg.Variants.GroupPeerNamed {
			if named, ok := strings.CutPrefix(prefix, "group-hover/"); ok {
				p.SelectorPrefixes = append(p.SelectorPrefixes, fmt.Sprintf(".group\\/%s:hover ", named))
				continue
			}
			if named, ok := strings.CutPrefix(prefix, "group-focus/"); ok {
				p.SelectorPrefixes = append(p.SelectorPrefixes, fmt.Sprintf(".group\\/%s:focus ", named))
				continue
			}
			if named, ok := strings.CutPrefix(prefix, "peer-hover/"); ok {
				p.SelectorPrefixes = append(p.SelectorPrefixes, fmt.Sprintf(".peer\\/%s:hover ~ ", named))
				continue
			}
			if named, ok := strings.CutPrefix(prefix, "peer-focus/"); ok {
				p.SelectorPrefixes = append(p.SelectorPrefixes, fmt.Sprintf(".peer\\/%s:focus ~ ", named))
				continue
			}
		}

		if mq, ok := mediaVariant(prefix); ok {
			p.MediaQueries = append(p.MediaQueries, mq)
			continue
		}

		if v, ok := strings.CutPrefix(prefix, "min-"); ok {
			if raw, found := parseBracket(v); found {
				p.MediaQueries = append(p.MediaQueries, fmt.Sprintf("(min-width:%s)", raw))
				continue
			}
		}
		if v, ok := strings.CutPrefix(prefix, "max-"); ok {
			if raw, found := parseBracket(v); found {
				p.MediaQueries = append(p.MediaQueries, fmt.Sprintf("(max-width:%s)", raw))
				continue
			}
		}

		if cfg.Variants.Supports {
			if v, ok := strings.CutPrefix(prefix, "supports-"); ok {
				if raw, found := parseBracket(v); found {
					p.MediaQueries = append(p.MediaQueries, fmt.Sprintf("(%s)", raw))
					continue
				}
			}
		}

		if cfg.Variants.DataAria {
			if v, ok := strings.CutPrefix(prefix, "data-"); ok {
				if raw, found := parseBracket(v); found {
					p.PseudoClasses = append(p.PseudoClasses, fmt.Sprintf("[data-%s]", raw))
					continue
				}
			}
			if v, ok := strings.CutPrefix(prefix, "aria-"); ok {
				if raw, found := parseBracket(v); found {
					p.PseudoClasses = append(p.PseudoClasses, fmt.Sprintf("[aria-%s]", raw))
					continue
				}
			}
		}

		break
	}

	utility := parts[len(parts)-1]
	// The bang may also sit directly on the utility, after the variant
	// chain ("hover:!text-red-500").
	if strings.HasPrefix(utility, "!") {
		p.Important = true
		utility = utility[1:]
	}
	p.Utility = utility
	return p
}

// splitVariantChain splits on top-level colons; brackets form one atom.
func splitVariantChain(input string) []string {
	var out []string
	start := 0
	depth := 0
	for i := 0; i < len(input); i++ {
		switch input[i] {
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		case ':':
			if depth == 0 {
				out = append(out, input[start:i])
				start = i + 1
			}
		}
	}
	out = append(out, input[start:])
	return out
}

func pseudoClass(prefix string) (string, bool) {
	switch prefix {
	case "hover":
		return ":hover", true
	case "focus":
		return ":focus", true
	case "active":
		return ":active", true
	case "visited":
		return ":visited", true
	case "disabled":
		return ":disabled", true
	case "first":
		return ":first-child", true
	case "last":
		return ":last-child", true
	case "odd":
		return ":nth-child(odd)", true
	case "even":
		return ":nth-child(even)", true
	case "focus-within":
		return ":focus-within", true
	case "focus-visible":
		return ":focus-visible", true
	case "checked":
		return ":checked", true
	case "required":
		return ":required", true
	case "empty":
		return ":empty", true
	case "open":
		return ":open", true
	}
	return "", false
}

func pseudoElement(prefix string) (string, bool) {
	switch prefix {
	case "placeholder":
		return "::placeholder", true
	case "before":
		return "::before", true
	case "after":
		return "::after", true
	case "selection":
		return "::selection", true
	case "marker":
		return "::marker", true
	case "file":
		return "::file-selector-button", true
	}
	return "", false
}

func mediaVariant(prefix string) (string, bool) {
	switch prefix {
	case "motion-safe":
		return "(prefers-reduced-motion:no-preference)", true
	case "motion-reduce":
		return "(prefers-reduced-motion:reduce)", true
	case "print":
		return "print", true
	}
	return "", false
}

func parseBracket(s string) (string, bool) {
	if len(s) > 2 && strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		return s[1 : len(s)-1], true
	}
	return "", false
}
