package style

import "strings"

var tableStatic = map[string]string{
	"table-auto":      "table-layout:auto;",
	"table-fixed":     "table-layout:fixed;",
	"border-collapse": "border-collapse:collapse;",
	"border-separate": "border-collapse:separate;",
	"caption-top":     "caption-side:top;",
	"caption-bottom":  "caption-side:bottom;",
}

func resolveTables(class string) (Resolved, bool) {
	if decls, ok := tableStatic[class]; ok {
		return std(decls)
	}
	if rest, ok := strings.CutPrefix(class, "border-spacing-x-"); ok {
		if val, found := parseSpacingArg(rest); found {
			return std("border-spacing:" + val + " 0;")
		}
		return Resolved{}, false
	}
	if rest, ok := strings.CutPrefix(class, "border-spacing-y-"); ok {
		if val, found := parseSpacingArg(rest); found {
			return std("border-spacing:0 " + val + ";")
		}
		return Resolved{}, false
	}
	if rest, ok := strings.CutPrefix(class, "border-spacing-"); ok {
		if val, found := parseSpacingArg(rest); found {
			return std("border-spacing:" + val + ";")
		}
	}
	return Resolved{}, false
}
