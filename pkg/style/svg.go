package style

import (
	"fmt"
	"strings"
)

var svgStatic = map[string]string{
	"fill-none":      "fill:none;",
	"fill-current":   "fill:currentColor;",
	"fill-inherit":   "fill:inherit;",
	"stroke-none":    "stroke:none;",
	"stroke-current": "stroke:currentColor;",
	"stroke-inherit": "stroke:inherit;",
}

func resolveSVG(class string) (Resolved, bool) {
	if decls, ok := svgStatic[class]; ok {
		return std(decls)
	}
	if rest, ok := strings.CutPrefix(class, "fill-"); ok {
		if hex, found := ColorHex(rest); found {
			return std("fill:" + hex + ";")
		}
		return Resolved{}, false
	}
	if rest, ok := strings.CutPrefix(class, "stroke-"); ok {
		if n, found := parseUint(rest); found {
			return std(fmt.Sprintf("stroke-width:%d;", n))
		}
		if hex, found := ColorHex(rest); found {
			return std("stroke:" + hex + ";")
		}
	}
	return Resolved{}, false
}
