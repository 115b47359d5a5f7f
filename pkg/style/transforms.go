package style

import (
	"fmt"
	"strings"
)

var transformStatic = map[string]string{
	"origin-center":       "transform-origin:center;",
	"origin-top":          "transform-origin:top;",
	"origin-top-right":    "transform-origin:top right;",
	"origin-right":        "transform-origin:right;",
	"origin-bottom-right": "transform-origin:bottom right;",
	"origin-bottom":       "transform-origin:bottom;",
	"origin-bottom-left":  "transform-origin:bottom left;",
	"origin-left":         "transform-origin:left;",
	"origin-top-left":     "transform-origin:top left;",
}

// percentScale renders 150 as "1.5", 75 as "0.75", 100 as "1".
func percentScale(n uint32) string {
	switch {
	case n == 0:
		return "0"
	case n == 100:
		return "1"
	case n%100 == 0:
		return fmt.Sprintf("%d", n/100)
	case n%10 == 0:
		return fmt.Sprintf("%d.%d", n/100, (n%100)/10)
	default:
		return fmt.Sprintf("%d.%d", n/100, n%100)
	}
}

func resolveTransforms(class string) (Resolved, bool) {
	if decls, ok := transformStatic[class]; ok {
		return std(decls)
	}

	if rest, ok := strings.CutPrefix(class, "scale-x-"); ok {
		if n, found := parseUint(rest); found {
			return std("transform:scaleX(" + percentScale(n) + ");")
		}
		return Resolved{}, false
	}
	if rest, ok := strings.CutPrefix(class, "scale-y-"); ok {
		if n, found := parseUint(rest); found {
			return std("transform:scaleY(" + percentScale(n) + ");")
		}
		return Resolved{}, false
	}
	if rest, ok := strings.CutPrefix(class, "scale-"); ok {
		if n, found := parseUint(rest); found {
			return std("transform:scale(" + percentScale(n) + ");")
		}
		return Resolved{}, false
	}

	if rest, ok := strings.CutPrefix(class, "-rotate-"); ok {
		if n, found := parseUint(rest); found {
			return std(fmt.Sprintf("transform:rotate(-%ddeg);", n))
		}
		return Resolved{}, false
	}
	if rest, ok := strings.CutPrefix(class, "rotate-"); ok {
		if n, found := parseUint(rest); found {
			return std(fmt.Sprintf("transform:rotate(%ddeg);", n))
		}
		return Resolved{}, false
	}

	type translate struct {
		prefix string
		fn     string
		neg    bool
		full   bool
	}
	translates := []translate{
		{"-translate-x-", "translateX", true, false},
		{"-translate-y-", "translateY", true, false},
		{"translate-x-", "translateX", false, true},
		{"translate-y-", "translateY", false, true},
	}
	for _, t := range translates {
		rest, ok := strings.CutPrefix(class, t.prefix)
		if !ok {
			continue
		}
		if t.full && rest == "full" {
			return std("transform:" + t.fn + "(100%);")
		}
		var val string
		if pct, found := parseFraction(rest); found {
			val = pct
		} else if v, found := parseSpacingArg(rest); found {
			val = v
		} else {
			return Resolved{}, false
		}
		if t.neg {
			val = "-" + val
		}
		return std("transform:" + t.fn + "(" + val + ");")
	}

	if rest, ok := strings.CutPrefix(class, "-skew-x-"); ok {
		if n, found := parseUint(rest); found {
			return std(fmt.Sprintf("transform:skewX(-%ddeg);", n))
		}
		return Resolved{}, false
	}
	if rest, ok := strings.CutPrefix(class, "-skew-y-"); ok {
		if n, found := parseUint(rest); found {
			return std(fmt.Sprintf("transform:skewY(-%ddeg);", n))
		}
		return Resolved{}, false
	}
	if rest, ok := strings.CutPrefix(class, "skew-x-"); ok {
		if n, found := parseUint(rest); found {
			return std(fmt.Sprintf("transform:skewX(%ddeg);", n))
		}
		return Resolved{}, false
	}
	if rest, ok := strings.CutPrefix(class, "skew-y-"); ok {
		if n, found := parseUint(rest); found {
			return std(fmt.Sprintf("transform:skewY(%ddeg);", n))
		}
	}

	return Resolved{}, false
}
