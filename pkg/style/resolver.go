package style

import (
	"fmt"
	"strconv"
	"strings"
)

// ResolveUtility maps a bare utility name to its declarations. The
// returned Resolved may carry a selector suffix for child-combinator
// utilities like space-x and divide-y.
func ResolveUtility(class string) (Resolved, bool) {
	resolvers := [...]func(string) (Resolved, bool){
		resolveLayout,
		resolveFlexbox,
		resolveGrid,
		resolveSpacing,
		resolveSizing,
		resolveTypography,
		resolveBackgrounds,
		resolveBorders,
		resolveEffects,
		resolveTransforms,
		resolveFilters,
		resolveTransitions,
		resolveInteractivity,
		resolveTables,
		resolveSVG,
		resolveInset,
	}
	for _, r := range resolvers {
		if res, ok := r(class); ok {
			return res, true
		}
	}
	return Resolved{}, false
}

// ResolveRule resolves a utility into a complete CSS rule string.
func ResolveRule(class string) (string, bool) {
	res, ok := ResolveUtility(class)
	if !ok {
		return "", false
	}
	return "." + EscapeSelector(class) + res.SelectorSuffix + "{" + res.Declarations + "}", true
}

func std(decls string) (Resolved, bool) {
	return Resolved{Declarations: decls}, true
}

// spacingValue converts a spacing scale step to a CSS length. Step 0 is
// "0px", otherwise each step is 0.25rem.
func spacingValue(n uint32) string {
	if n == 0 {
		return "0px"
	}
	whole := n / 4
	switch n % 4 {
	case 1:
		return fmt.Sprintf("%d.25rem", whole)
	case 2:
		return fmt.Sprintf("%d.5rem", whole)
	case 3:
		return fmt.Sprintf("%d.75rem", whole)
	}
	return fmt.Sprintf("%drem", whole)
}

func parseUint(s string) (uint32, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(n), true
}

// parseHalfStep handles the half steps of the spacing scale ("0.5",
// "1.5", "2.5") which sit between the integer steps.
func parseHalfStep(s string) (string, bool) {
	dot := strings.IndexByte(s, '.')
	if dot < 0 || s[dot+1:] != "5" {
		return "", false
	}
	whole, ok := parseUint(s[:dot])
	if !ok {
		return "", false
	}
	return fmt.Sprintf("0.%drem", (whole*2+1)*125), true
}

// parseFraction maps the supported width fractions to percentages.
func parseFraction(s string) (string, bool) {
	slash := strings.IndexByte(s, '/')
	if slash < 0 {
		return "", false
	}
	num, ok := parseUint(s[:slash])
	if !ok {
		return "", false
	}
	den, ok := parseUint(s[slash+1:])
	if !ok || den == 0 || num > den {
		return "", false
	}
	if num == den {
		return "100%", true
	}
	type frac struct{ n, d uint32 }
	table := map[frac]string{
		{1, 2}: "50%",
		{1, 3}: "33.333333%", {2, 3}: "66.666667%",
		{1, 4}: "25%", {2, 4}: "50%", {3, 4}: "75%",
		{1, 5}: "20%", {2, 5}: "40%", {3, 5}: "60%", {4, 5}: "80%",
		{1, 6}: "16.666667%", {2, 6}: "33.333333%", {3, 6}: "50%",
		{4, 6}: "66.666667%", {5, 6}: "83.333333%",
		{1, 12}: "8.333333%", {2, 12}: "16.666667%", {3, 12}: "25%",
		{4, 12}: "33.333333%", {5, 12}: "41.666667%", {6, 12}: "50%",
		{7, 12}: "58.333333%", {8, 12}: "66.666667%", {9, 12}: "75%",
		{10, 12}: "83.333333%", {11, 12}: "91.666667%",
	}
	v, ok := table[frac{num, den}]
	return v, ok
}

// parseArbitrary unwraps "[200px]" to "200px".
func parseArbitrary(s string) (string, bool) {
	if len(s) > 2 && s[0] == '[' && s[len(s)-1] == ']' {
		return s[1 : len(s)-1], true
	}
	return "", false
}

func hexToRGB(hex string) (r, g, b uint8, ok bool) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), true
}

// resolveColorWithOpacity handles "red-500/50" style opacity modifiers,
// emitting an rgb() value with a decimal alpha.
func resolveColorWithOpacity(colorPart, property string) (string, bool) {
	slash := strings.IndexByte(colorPart, '/')
	if slash < 0 {
		hex, ok := ColorHex(colorPart)
		if !ok {
			return "", false
		}
		return property + ":" + hex + ";", true
	}
	opacity, ok := parseUint(colorPart[slash+1:])
	if !ok || opacity > 100 {
		return "", false
	}
	hex, ok := ColorHex(colorPart[:slash])
	if !ok {
		return "", false
	}
	if hex == "transparent" {
		return property + ":transparent;", true
	}
	r, g, b, ok := hexToRGB(hex)
	if !ok {
		return "", false
	}
	var alpha string
	switch {
	case opacity == 100:
		alpha = "1"
	case opacity == 0:
		alpha = "0"
	case opacity%10 == 0:
		alpha = fmt.Sprintf("0.%d", opacity/10)
	default:
		alpha = fmt.Sprintf("0.%d", opacity)
	}
	return fmt.Sprintf("%s:rgb(%d %d %d / %s);", property, r, g, b, alpha), true
}

// parseSpacingArg accepts an integer step, a half step, or an arbitrary
// bracket value.
func parseSpacingArg(s string) (string, bool) {
	if n, ok := parseUint(s); ok {
		return spacingValue(n), true
	}
	if v, ok := parseHalfStep(s); ok {
		return v, true
	}
	if v, ok := parseArbitrary(s); ok {
		return v, true
	}
	return "", false
}
