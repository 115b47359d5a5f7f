package style

import "strings"

func resolveDimension(rest, property string) (Resolved, bool) {
	var val string
	switch rest {
	case "auto":
		val = "auto"
	case "full":
		val = "100%"
	case "screen":
		if strings.Contains(property, "width") {
			val = "100vw"
		} else {
			val = "100vh"
		}
	case "svw":
		val = "100svw"
	case "svh":
		val = "100svh"
	case "lvw":
		val = "100lvw"
	case "lvh":
		val = "100lvh"
	case "dvw":
		val = "100dvw"
	case "dvh":
		val = "100dvh"
	case "min":
		val = "min-content"
	case "max":
		val = "max-content"
	case "fit":
		val = "fit-content"
	case "px":
		val = "1px"
	default:
		if pct, ok := parseFraction(rest); ok {
			val = pct
		} else if v, ok := parseSpacingArg(rest); ok {
			val = v
		} else {
			return Resolved{}, false
		}
	}
	return std(property + ":" + val + ";")
}

var maxWidthNamed = map[string]string{
	"none":       "none",
	"0":          "0rem",
	"xs":         "20rem",
	"sm":         "24rem",
	"md":         "28rem",
	"lg":         "32rem",
	"xl":         "36rem",
	"2xl":        "42rem",
	"3xl":        "48rem",
	"4xl":        "56rem",
	"5xl":        "64rem",
	"6xl":        "72rem",
	"7xl":        "80rem",
	"full":       "100%",
	"min":        "min-content",
	"max":        "max-content",
	"fit":        "fit-content",
	"prose":      "65ch",
	"screen-sm":  "640px",
	"screen-md":  "768px",
	"screen-lg":  "1024px",
	"screen-xl":  "1280px",
	"screen-2xl": "1536px",
	"screen":     "100vw",
}

func resolveSizing(class string) (Resolved, bool) {
	if rest, ok := strings.CutPrefix(class, "basis-"); ok {
		switch rest {
		case "auto":
			return std("flex-basis:auto;")
		case "full":
			return std("flex-basis:100%;")
		case "px":
			return std("flex-basis:1px;")
		}
		if pct, found := parseFraction(rest); found {
			return std("flex-basis:" + pct + ";")
		}
		if v, found := parseSpacingArg(rest); found {
			return std("flex-basis:" + v + ";")
		}
		return Resolved{}, false
	}

	if rest, ok := strings.CutPrefix(class, "size-"); ok {
		var val string
		switch rest {
		case "auto":
			val = "auto"
		case "full":
			val = "100%"
		case "min":
			val = "min-content"
		case "max":
			val = "max-content"
		case "fit":
			val = "fit-content"
		case "px":
			val = "1px"
		default:
			if pct, found := parseFraction(rest); found {
				val = pct
			} else if v, found := parseSpacingArg(rest); found {
				val = v
			} else {
				return Resolved{}, false
			}
		}
		return std("width:" + val + ";height:" + val + ";")
	}

	if rest, ok := strings.CutPrefix(class, "max-w-"); ok {
		if v, found := maxWidthNamed[rest]; found {
			return std("max-width:" + v + ";")
		}
		if v, found := parseSpacingArg(rest); found {
			return std("max-width:" + v + ";")
		}
		return Resolved{}, false
	}

	if rest, ok := strings.CutPrefix(class, "max-h-"); ok {
		switch rest {
		case "none":
			return std("max-height:none;")
		case "full":
			return std("max-height:100%;")
		case "screen":
			return std("max-height:100vh;")
		case "min":
			return std("max-height:min-content;")
		case "max":
			return std("max-height:max-content;")
		case "fit":
			return std("max-height:fit-content;")
		}
		if v, found := parseSpacingArg(rest); found {
			return std("max-height:" + v + ";")
		}
		return Resolved{}, false
	}

	if rest, ok := strings.CutPrefix(class, "min-w-"); ok {
		switch rest {
		case "0":
			return std("min-width:0px;")
		case "full":
			return std("min-width:100%;")
		case "min":
			return std("min-width:min-content;")
		case "max":
			return std("min-width:max-content;")
		case "fit":
			return std("min-width:fit-content;")
		}
		if v, found := parseSpacingArg(rest); found {
			return std("min-width:" + v + ";")
		}
		return Resolved{}, false
	}

	if rest, ok := strings.CutPrefix(class, "min-h-"); ok {
		switch rest {
		case "0":
			return std("min-height:0px;")
		case "full":
			return std("min-height:100%;")
		case "screen":
			return std("min-height:100vh;")
		case "svh":
			return std("min-height:100svh;")
		case "lvh":
			return std("min-height:100lvh;")
		case "dvh":
			return std("min-height:100dvh;")
		case "min":
			return std("min-height:min-content;")
		case "max":
			return std("min-height:max-content;")
		case "fit":
			return std("min-height:fit-content;")
		}
		if v, found := parseSpacingArg(rest); found {
			return std("min-height:" + v + ";")
		}
		return Resolved{}, false
	}

	if rest, ok := strings.CutPrefix(class, "w-"); ok {
		return resolveDimension(rest, "width")
	}
	if rest, ok := strings.CutPrefix(class, "h-"); ok {
		return resolveDimension(rest, "height")
	}

	return Resolved{}, false
}
