package style

import (
	"fmt"
	"strings"
)

var borderStatic = map[string]string{
	"border":   "border-width:1px;",
	"border-0": "border-width:0px;",
	"border-2": "border-width:2px;",
	"border-4": "border-width:4px;",
	"border-8": "border-width:8px;",

	"border-t": "border-top-width:1px;",
	"border-r": "border-right-width:1px;",
	"border-b": "border-bottom-width:1px;",
	"border-l": "border-left-width:1px;",
	"border-x": "border-left-width:1px;border-right-width:1px;",
	"border-y": "border-top-width:1px;border-bottom-width:1px;",

	"border-solid":  "border-style:solid;",
	"border-dashed": "border-style:dashed;",
	"border-dotted": "border-style:dotted;",
	"border-double": "border-style:double;",
	"border-hidden": "border-style:hidden;",
	"border-none":   "border-style:none;",

	"rounded":      "border-radius:0.25rem;",
	"rounded-none": "border-radius:0px;",
	"rounded-sm":   "border-radius:0.125rem;",
	"rounded-md":   "border-radius:0.375rem;",
	"rounded-lg":   "border-radius:0.5rem;",
	"rounded-xl":   "border-radius:0.75rem;",
	"rounded-2xl":  "border-radius:1rem;",
	"rounded-3xl":  "border-radius:1.5rem;",
	"rounded-full": "border-radius:9999px;",

	"rounded-t": "border-top-left-radius:0.25rem;border-top-right-radius:0.25rem;",
	"rounded-r": "border-top-right-radius:0.25rem;border-bottom-right-radius:0.25rem;",
	"rounded-b": "border-bottom-right-radius:0.25rem;border-bottom-left-radius:0.25rem;",
	"rounded-l": "border-top-left-radius:0.25rem;border-bottom-left-radius:0.25rem;",

	"outline-none":   "outline:2px solid transparent;outline-offset:2px;",
	"outline":        "outline-style:solid;",
	"outline-dashed": "outline-style:dashed;",
	"outline-dotted": "outline-style:dotted;",
	"outline-double": "outline-style:double;",

	"ring":       "box-shadow:0 0 0 3px rgba(59,130,246,0.5);",
	"ring-0":     "box-shadow:0 0 0 0px rgba(59,130,246,0.5);",
	"ring-1":     "box-shadow:0 0 0 1px rgba(59,130,246,0.5);",
	"ring-2":     "box-shadow:0 0 0 2px rgba(59,130,246,0.5);",
	"ring-4":     "box-shadow:0 0 0 4px rgba(59,130,246,0.5);",
	"ring-8":     "box-shadow:0 0 0 8px rgba(59,130,246,0.5);",
	"ring-inset": "--tw-ring-inset:inset;",
}

// divideStatic rules apply to all but the first visible child.
var divideStatic = map[string]string{
	"divide-x":      "border-left-width:1px;",
	"divide-y":      "border-top-width:1px;",
	"divide-x-0":    "border-left-width:0px;",
	"divide-y-0":    "border-top-width:0px;",
	"divide-x-2":    "border-left-width:2px;",
	"divide-y-2":    "border-top-width:2px;",
	"divide-x-4":    "border-left-width:4px;",
	"divide-y-4":    "border-top-width:4px;",
	"divide-x-8":    "border-left-width:8px;",
	"divide-y-8":    "border-top-width:8px;",
	"divide-solid":  "border-style:solid;",
	"divide-dashed": "border-style:dashed;",
	"divide-dotted": "border-style:dotted;",
	"divide-double": "border-style:double;",
	"divide-none":   "border-style:none;",
}

func radiusValue(size string) (string, bool) {
	switch size {
	case "none":
		return "0px", true
	case "sm":
		return "0.125rem", true
	case "md":
		return "0.375rem", true
	case "lg":
		return "0.5rem", true
	case "xl":
		return "0.75rem", true
	case "2xl":
		return "1rem", true
	case "3xl":
		return "1.5rem", true
	case "full":
		return "9999px", true
	}
	return "", false
}

func resolveBorders(class string) (Resolved, bool) {
	if decls, ok := borderStatic[class]; ok {
		return std(decls)
	}
	if decls, ok := divideStatic[class]; ok {
		return Resolved{SelectorSuffix: spaceBetweenSuffix, Declarations: decls}, true
	}

	type side struct {
		prefix string
		width  string
		color  string
	}
	sides := []side{
		{"border-t-", "border-top-width:%dpx;", "border-top-color"},
		{"border-r-", "border-right-width:%dpx;", "border-right-color"},
		{"border-b-", "border-bottom-width:%dpx;", "border-bottom-color"},
		{"border-l-", "border-left-width:%dpx;", "border-left-color"},
	}
	for _, s := range sides {
		if rest, ok := strings.CutPrefix(class, s.prefix); ok {
			if n, found := parseUint(rest); found {
				return std(fmt.Sprintf(s.width, n))
			}
			if decls, found := resolveColorWithOpacity(rest, s.color); found {
				return std(decls)
			}
			return Resolved{}, false
		}
	}
	if rest, ok := strings.CutPrefix(class, "border-x-"); ok {
		if n, found := parseUint(rest); found {
			return std(fmt.Sprintf("border-left-width:%dpx;border-right-width:%dpx;", n, n))
		}
		return Resolved{}, false
	}
	if rest, ok := strings.CutPrefix(class, "border-y-"); ok {
		if n, found := parseUint(rest); found {
			return std(fmt.Sprintf("border-top-width:%dpx;border-bottom-width:%dpx;", n, n))
		}
		return Resolved{}, false
	}

	if rest, ok := strings.CutPrefix(class, "border-"); ok {
		if n, found := parseUint(rest); found {
			return std(fmt.Sprintf("border-width:%dpx;", n))
		}
		if decls, found := resolveColorWithOpacity(rest, "border-color"); found {
			return std(decls)
		}
		if val, found := parseArbitrary(rest); found {
			return std("border-color:" + val + ";")
		}
		return Resolved{}, false
	}

	type corner struct {
		prefix string
		props  []string
	}
	corners := []corner{
		{"rounded-t-", []string{"border-top-left-radius", "border-top-right-radius"}},
		{"rounded-r-", []string{"border-top-right-radius", "border-bottom-right-radius"}},
		{"rounded-b-", []string{"border-bottom-right-radius", "border-bottom-left-radius"}},
		{"rounded-l-", []string{"border-top-left-radius", "border-bottom-left-radius"}},
		{"rounded-tl-", []string{"border-top-left-radius"}},
		{"rounded-tr-", []string{"border-top-right-radius"}},
		{"rounded-bl-", []string{"border-bottom-left-radius"}},
		{"rounded-br-", []string{"border-bottom-right-radius"}},
	}
	for _, c := range corners {
		if rest, ok := strings.CutPrefix(class, c.prefix); ok {
			val, found := radiusValue(rest)
			if !found {
				return Resolved{}, false
			}
			var b strings.Builder
			for _, p := range c.props {
				b.WriteString(p)
				b.WriteString(":")
				b.WriteString(val)
				b.WriteString(";")
			}
			return std(b.String())
		}
	}

	if rest, ok := strings.CutPrefix(class, "outline-offset-"); ok {
		if n, found := parseUint(rest); found {
			return std(fmt.Sprintf("outline-offset:%dpx;", n))
		}
		return Resolved{}, false
	}
	if rest, ok := strings.CutPrefix(class, "outline-"); ok {
		if n, found := parseUint(rest); found {
			return std(fmt.Sprintf("outline-width:%dpx;", n))
		}
		if decls, found := resolveColorWithOpacity(rest, "outline-color"); found {
			return std(decls)
		}
		return Resolved{}, false
	}

	if rest, ok := strings.CutPrefix(class, "ring-offset-"); ok {
		if n, found := parseUint(rest); found {
			return std(fmt.Sprintf("--tw-ring-offset-width:%dpx;box-shadow:0 0 0 var(--tw-ring-offset-width) var(--tw-ring-offset-color),var(--tw-ring-shadow);", n))
		}
		if hex, found := ColorHex(rest); found {
			return std("--tw-ring-offset-color:" + hex + ";")
		}
		return Resolved{}, false
	}
	if rest, ok := strings.CutPrefix(class, "ring-"); ok {
		if hex, found := ColorHex(rest); found {
			return std("--tw-ring-color:" + hex + ";")
		}
		return Resolved{}, false
	}

	if rest, ok := strings.CutPrefix(class, "divide-"); ok {
		if hex, found := ColorHex(rest); found {
			return Resolved{SelectorSuffix: spaceBetweenSuffix, Declarations: "border-color:" + hex + ";"}, true
		}
	}

	return Resolved{}, false
}
