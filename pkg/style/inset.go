package style

import (
	"fmt"
	"strings"
)

func insetValue(s string) (string, bool) {
	switch s {
	case "auto":
		return "auto", true
	case "full":
		return "100%", true
	case "px":
		return "1px", true
	}
	if pct, ok := parseFraction(s); ok {
		return pct, true
	}
	if val, ok := parseSpacingArg(s); ok {
		return val, true
	}
	return "", false
}

func resolveInset(class string) (Resolved, bool) {
	type negRule struct {
		prefix string
		props  []string
	}
	negRules := []negRule{
		{"-inset-x-", []string{"left", "right"}},
		{"-inset-y-", []string{"top", "bottom"}},
		{"-inset-", []string{"inset"}},
		{"-top-", []string{"top"}},
		{"-right-", []string{"right"}},
		{"-bottom-", []string{"bottom"}},
		{"-left-", []string{"left"}},
		{"-start-", []string{"inset-inline-start"}},
		{"-end-", []string{"inset-inline-end"}},
	}
	for _, r := range negRules {
		if rest, ok := strings.CutPrefix(class, r.prefix); ok {
			val, found := parseSpacingArg(rest)
			if !found {
				return Resolved{}, false
			}
			var b strings.Builder
			for _, p := range r.props {
				b.WriteString(p)
				b.WriteString(":-")
				b.WriteString(val)
				b.WriteString(";")
			}
			return std(b.String())
		}
	}

	posRules := []negRule{
		{"inset-x-", []string{"left", "right"}},
		{"inset-y-", []string{"top", "bottom"}},
		{"inset-", []string{"inset"}},
		{"top-", []string{"top"}},
		{"right-", []string{"right"}},
		{"bottom-", []string{"bottom"}},
		{"left-", []string{"left"}},
		{"start-", []string{"inset-inline-start"}},
		{"end-", []string{"inset-inline-end"}},
	}
	for _, r := range posRules {
		if rest, ok := strings.CutPrefix(class, r.prefix); ok {
			val, found := insetValue(rest)
			if !found {
				return Resolved{}, false
			}
			var b strings.Builder
			for _, p := range r.props {
				b.WriteString(p)
				b.WriteString(":")
				b.WriteString(val)
				b.WriteString(";")
			}
			return std(b.String())
		}
	}

	if rest, ok := strings.CutPrefix(class, "z-"); ok {
		if rest == "auto" {
			return std("z-index:auto;")
		}
		if n, found := parseUint(rest); found {
			return std(fmt.Sprintf("z-index:%d;", n))
		}
	}

	return Resolved{}, false
}
