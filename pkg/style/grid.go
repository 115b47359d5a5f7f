package style

import (
	"fmt"
	"strings"
)

var gridStatic = map[string]string{
	"grid-flow-row":       "grid-auto-flow:row;",
	"grid-flow-col":       "grid-auto-flow:column;",
	"grid-flow-dense":     "grid-auto-flow:dense;",
	"grid-flow-row-dense": "grid-auto-flow:row dense;",
	"grid-flow-col-dense": "grid-auto-flow:column dense;",

	"auto-cols-auto": "grid-auto-columns:auto;",
	"auto-cols-min":  "grid-auto-columns:min-content;",
	"auto-cols-max":  "grid-auto-columns:max-content;",
	"auto-cols-fr":   "grid-auto-columns:minmax(0,1fr);",

	"auto-rows-auto": "grid-auto-rows:auto;",
	"auto-rows-min":  "grid-auto-rows:min-content;",
	"auto-rows-max":  "grid-auto-rows:max-content;",
	"auto-rows-fr":   "grid-auto-rows:minmax(0,1fr);",

	"col-auto":      "grid-column:auto;",
	"col-span-full": "grid-column:1 / -1;",
	"row-auto":      "grid-row:auto;",
	"row-span-full": "grid-row:1 / -1;",
}

func resolveGrid(class string) (Resolved, bool) {
	if decls, ok := gridStatic[class]; ok {
		return std(decls)
	}
	if rest, ok := strings.CutPrefix(class, "grid-cols-"); ok {
		switch rest {
		case "none":
			return std("grid-template-columns:none;")
		case "subgrid":
			return std("grid-template-columns:subgrid;")
		}
		if n, found := parseUint(rest); found && n >= 1 && n <= 12 {
			return std(fmt.Sprintf("grid-template-columns:repeat(%d,minmax(0,1fr));", n))
		}
		return Resolved{}, false
	}
	if rest, ok := strings.CutPrefix(class, "grid-rows-"); ok {
		switch rest {
		case "none":
			return std("grid-template-rows:none;")
		case "subgrid":
			return std("grid-template-rows:subgrid;")
		}
		if n, found := parseUint(rest); found && n >= 1 && n <= 12 {
			return std(fmt.Sprintf("grid-template-rows:repeat(%d,minmax(0,1fr));", n))
		}
		return Resolved{}, false
	}
	if rest, ok := strings.CutPrefix(class, "col-span-"); ok {
		if n, found := parseUint(rest); found && n >= 1 && n <= 12 {
			return std(fmt.Sprintf("grid-column:span %d / span %d;", n, n))
		}
		return Resolved{}, false
	}
	if rest, ok := strings.CutPrefix(class, "col-start-"); ok {
		if n, found := parseUint(rest); found {
			return std(fmt.Sprintf("grid-column-start:%d;", n))
		}
		return Resolved{}, false
	}
	if rest, ok := strings.CutPrefix(class, "col-end-"); ok {
		if n, found := parseUint(rest); found {
			return std(fmt.Sprintf("grid-column-end:%d;", n))
		}
		return Resolved{}, false
	}
	if rest, ok := strings.CutPrefix(class, "row-span-"); ok {
		if n, found := parseUint(rest); found && n >= 1 && n <= 12 {
			return std(fmt.Sprintf("grid-row:span %d / span %d;", n, n))
		}
		return Resolved{}, false
	}
	if rest, ok := strings.CutPrefix(class, "row-start-"); ok {
		if n, found := parseUint(rest); found {
			return std(fmt.Sprintf("grid-row-start:%d;", n))
		}
		return Resolved{}, false
	}
	if rest, ok := strings.CutPrefix(class, "row-end-"); ok {
		if n, found := parseUint(rest); found {
			return std(fmt.Sprintf("grid-row-end:%d;", n))
		}
	}
	return Resolved{}, false
}
