package style

import (
	"fmt"
	"strings"
)

var typographyStatic = map[string]string{
	"text-left":    "text-align:left;",
	"text-center":  "text-align:center;",
	"text-right":   "text-align:right;",
	"text-justify": "text-align:justify;",
	"text-start":   "text-align:start;",
	"text-end":     "text-align:end;",

	"uppercase":   "text-transform:uppercase;",
	"lowercase":   "text-transform:lowercase;",
	"capitalize":  "text-transform:capitalize;",
	"normal-case": "text-transform:none;",

	"italic":     "font-style:italic;",
	"not-italic": "font-style:normal;",

	"underline":    "text-decoration-line:underline;",
	"no-underline": "text-decoration-line:none;",
	"line-through": "text-decoration-line:line-through;",
	"overline":     "text-decoration-line:overline;",

	"decoration-solid":     "text-decoration-style:solid;",
	"decoration-dashed":    "text-decoration-style:dashed;",
	"decoration-dotted":    "text-decoration-style:dotted;",
	"decoration-double":    "text-decoration-style:double;",
	"decoration-wavy":      "text-decoration-style:wavy;",
	"decoration-auto":      "text-decoration-thickness:auto;",
	"decoration-from-font": "text-decoration-thickness:from-font;",

	"truncate":      "overflow:hidden;text-overflow:ellipsis;white-space:nowrap;",
	"text-ellipsis": "text-overflow:ellipsis;",
	"text-clip":     "text-overflow:clip;",

	"whitespace-normal":       "white-space:normal;",
	"whitespace-nowrap":       "white-space:nowrap;",
	"whitespace-pre":          "white-space:pre;",
	"whitespace-pre-line":     "white-space:pre-line;",
	"whitespace-pre-wrap":     "white-space:pre-wrap;",
	"whitespace-break-spaces": "white-space:break-spaces;",

	"break-normal": "overflow-wrap:normal;word-break:normal;",
	"break-all":    "word-break:break-all;",
	"break-keep":   "word-break:keep-all;",
	"break-words":  "overflow-wrap:break-word;",

	"text-wrap":    "text-wrap:wrap;",
	"text-nowrap":  "text-wrap:nowrap;",
	"text-balance": "text-wrap:balance;",
	"text-pretty":  "text-wrap:pretty;",

	"font-sans":  "font-family:ui-sans-serif,system-ui,sans-serif,\"Apple Color Emoji\",\"Segoe UI Emoji\",\"Segoe UI Symbol\",\"Noto Color Emoji\";",
	"font-serif": "font-family:ui-serif,Georgia,Cambria,\"Times New Roman\",Times,serif;",
	"font-mono":  "font-family:ui-monospace,SFMono-Regular,Menlo,Monaco,Consolas,\"Liberation Mono\",\"Courier New\",monospace;",

	"list-none":    "list-style-type:none;",
	"list-disc":    "list-style-type:disc;",
	"list-decimal": "list-style-type:decimal;",

	"list-inside":  "list-style-position:inside;",
	"list-outside": "list-style-position:outside;",

	"align-baseline":    "vertical-align:baseline;",
	"align-top":         "vertical-align:top;",
	"align-middle":      "vertical-align:middle;",
	"align-bottom":      "vertical-align:bottom;",
	"align-text-top":    "vertical-align:text-top;",
	"align-text-bottom": "vertical-align:text-bottom;",
	"align-sub":         "vertical-align:sub;",
	"align-super":       "vertical-align:super;",

	"hyphens-none":   "hyphens:none;",
	"hyphens-manual": "hyphens:manual;",
	"hyphens-auto":   "hyphens:auto;",

	"content-none": "content:none;",
}

var textSizes = map[string]string{
	"xs":   "font-size:0.75rem;line-height:1rem;",
	"sm":   "font-size:0.875rem;line-height:1.25rem;",
	"base": "font-size:1rem;line-height:1.5rem;",
	"lg":   "font-size:1.125rem;line-height:1.75rem;",
	"xl":   "font-size:1.25rem;line-height:1.75rem;",
	"2xl":  "font-size:1.5rem;line-height:2rem;",
	"3xl":  "font-size:1.875rem;line-height:2.25rem;",
	"4xl":  "font-size:2.25rem;line-height:2.5rem;",
	"5xl":  "font-size:3rem;line-height:1;",
	"6xl":  "font-size:3.75rem;line-height:1;",
	"7xl":  "font-size:4.5rem;line-height:1;",
	"8xl":  "font-size:6rem;line-height:1;",
	"9xl":  "font-size:8rem;line-height:1;",
}

var fontWeights = map[string]string{
	"thin":       "font-weight:100;",
	"extralight": "font-weight:200;",
	"light":      "font-weight:300;",
	"normal":     "font-weight:400;",
	"medium":     "font-weight:500;",
	"semibold":   "font-weight:600;",
	"bold":       "font-weight:700;",
	"extrabold":  "font-weight:800;",
	"black":      "font-weight:900;",
}

func resolveTypography(class string) (Resolved, bool) {
	if decls, ok := typographyStatic[class]; ok {
		return std(decls)
	}

	if rest, ok := strings.CutPrefix(class, "text-"); ok {
		if d, found := textSizes[rest]; found {
			return std(d)
		}
		if decls, found := resolveColorWithOpacity(rest, "color"); found {
			return std(decls)
		}
		if val, found := parseArbitrary(rest); found {
			return std("color:" + val + ";")
		}
		return Resolved{}, false
	}

	if rest, ok := strings.CutPrefix(class, "font-"); ok {
		if d, found := fontWeights[rest]; found {
			return std(d)
		}
		return Resolved{}, false
	}

	if rest, ok := strings.CutPrefix(class, "leading-"); ok {
		switch rest {
		case "none":
			return std("line-height:1;")
		case "tight":
			return std("line-height:1.25;")
		case "snug":
			return std("line-height:1.375;")
		case "normal":
			return std("line-height:1.5;")
		case "relaxed":
			return std("line-height:1.625;")
		case "loose":
			return std("line-height:2;")
		}
		if n, found := parseUint(rest); found {
			return std("line-height:" + spacingValue(n) + ";")
		}
		return Resolved{}, false
	}

	if rest, ok := strings.CutPrefix(class, "tracking-"); ok {
		switch rest {
		case "tighter":
			return std("letter-spacing:-0.05em;")
		case "tight":
			return std("letter-spacing:-0.025em;")
		case "normal":
			return std("letter-spacing:0em;")
		case "wide":
			return std("letter-spacing:0.025em;")
		case "wider":
			return std("letter-spacing:0.05em;")
		case "widest":
			return std("letter-spacing:0.1em;")
		}
		return Resolved{}, false
	}

	if rest, ok := strings.CutPrefix(class, "line-clamp-"); ok {
		if rest == "none" {
			return std("overflow:visible;display:block;-webkit-box-orient:horizontal;-webkit-line-clamp:none;")
		}
		if n, found := parseUint(rest); found {
			return std(fmt.Sprintf("overflow:hidden;display:-webkit-box;-webkit-box-orient:vertical;-webkit-line-clamp:%d;", n))
		}
		return Resolved{}, false
	}

	if rest, ok := strings.CutPrefix(class, "decoration-"); ok {
		if n, found := parseUint(rest); found {
			return std(fmt.Sprintf("text-decoration-thickness:%dpx;", n))
		}
		if decls, found := resolveColorWithOpacity(rest, "text-decoration-color"); found {
			return std(decls)
		}
		return Resolved{}, false
	}

	if rest, ok := strings.CutPrefix(class, "underline-offset-"); ok {
		if rest == "auto" {
			return std("text-underline-offset:auto;")
		}
		if n, found := parseUint(rest); found {
			return std(fmt.Sprintf("text-underline-offset:%dpx;", n))
		}
		return Resolved{}, false
	}

	if rest, ok := strings.CutPrefix(class, "indent-"); ok {
		if val, found := parseSpacingArg(rest); found {
			return std("text-indent:" + val + ";")
		}
	}

	return Resolved{}, false
}
