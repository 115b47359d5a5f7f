package style

import (
	"fmt"
	"strings"
)

var effectsStatic = map[string]string{
	"shadow":       "box-shadow:0 1px 3px 0 rgba(0,0,0,0.1),0 1px 2px -1px rgba(0,0,0,0.1);",
	"shadow-sm":    "box-shadow:0 1px 2px 0 rgba(0,0,0,0.05);",
	"shadow-md":    "box-shadow:0 4px 6px -1px rgba(0,0,0,0.1),0 2px 4px -2px rgba(0,0,0,0.1);",
	"shadow-lg":    "box-shadow:0 10px 15px -3px rgba(0,0,0,0.1),0 4px 6px -4px rgba(0,0,0,0.1);",
	"shadow-xl":    "box-shadow:0 20px 25px -5px rgba(0,0,0,0.1),0 8px 10px -6px rgba(0,0,0,0.1);",
	"shadow-2xl":   "box-shadow:0 25px 50px -12px rgba(0,0,0,0.25);",
	"shadow-inner": "box-shadow:inset 0 2px 4px 0 rgba(0,0,0,0.05);",
	"shadow-none":  "box-shadow:0 0 #0000;",

	"mix-blend-normal":       "mix-blend-mode:normal;",
	"mix-blend-multiply":     "mix-blend-mode:multiply;",
	"mix-blend-screen":       "mix-blend-mode:screen;",
	"mix-blend-overlay":      "mix-blend-mode:overlay;",
	"mix-blend-darken":       "mix-blend-mode:darken;",
	"mix-blend-lighten":      "mix-blend-mode:lighten;",
	"mix-blend-color-dodge":  "mix-blend-mode:color-dodge;",
	"mix-blend-color-burn":   "mix-blend-mode:color-burn;",
	"mix-blend-hard-light":   "mix-blend-mode:hard-light;",
	"mix-blend-soft-light":   "mix-blend-mode:soft-light;",
	"mix-blend-difference":   "mix-blend-mode:difference;",
	"mix-blend-exclusion":    "mix-blend-mode:exclusion;",
	"mix-blend-hue":          "mix-blend-mode:hue;",
	"mix-blend-saturation":   "mix-blend-mode:saturation;",
	"mix-blend-color":        "mix-blend-mode:color;",
	"mix-blend-luminosity":   "mix-blend-mode:luminosity;",
	"mix-blend-plus-lighter": "mix-blend-mode:plus-lighter;",

	"bg-blend-normal":      "background-blend-mode:normal;",
	"bg-blend-multiply":    "background-blend-mode:multiply;",
	"bg-blend-screen":      "background-blend-mode:screen;",
	"bg-blend-overlay":     "background-blend-mode:overlay;",
	"bg-blend-darken":      "background-blend-mode:darken;",
	"bg-blend-lighten":     "background-blend-mode:lighten;",
	"bg-blend-color-dodge": "background-blend-mode:color-dodge;",
	"bg-blend-color-burn":  "background-blend-mode:color-burn;",
	"bg-blend-hard-light":  "background-blend-mode:hard-light;",
	"bg-blend-soft-light":  "background-blend-mode:soft-light;",
	"bg-blend-difference":  "background-blend-mode:difference;",
	"bg-blend-exclusion":   "background-blend-mode:exclusion;",
	"bg-blend-hue":         "background-blend-mode:hue;",
	"bg-blend-saturation":  "background-blend-mode:saturation;",
	"bg-blend-color":       "background-blend-mode:color;",
	"bg-blend-luminosity":  "background-blend-mode:luminosity;",
}

func resolveEffects(class string) (Resolved, bool) {
	if decls, ok := effectsStatic[class]; ok {
		return std(decls)
	}

	if rest, ok := strings.CutPrefix(class, "opacity-"); ok {
		n, found := parseUint(rest)
		if !found || n > 100 {
			return Resolved{}, false
		}
		switch {
		case n == 0:
			return std("opacity:0;")
		case n == 100:
			return std("opacity:1;")
		case n%10 == 0:
			return std(fmt.Sprintf("opacity:0.%d;", n/10))
		default:
			return std(fmt.Sprintf("opacity:0.%d;", n))
		}
	}

	if rest, ok := strings.CutPrefix(class, "shadow-"); ok {
		if hex, found := ColorHex(rest); found {
			return std("--tw-shadow-color:" + hex + ";")
		}
	}

	return Resolved{}, false
}
