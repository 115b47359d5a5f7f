package style

import (
	"fmt"
	"strings"
)

var transitionStatic = map[string]string{
	"transition":           "transition-property:color,background-color,border-color,text-decoration-color,fill,stroke,opacity,box-shadow,transform,filter,backdrop-filter;transition-timing-function:cubic-bezier(0.4,0,0.2,1);transition-duration:150ms;",
	"transition-none":      "transition-property:none;",
	"transition-all":       "transition-property:all;transition-timing-function:cubic-bezier(0.4,0,0.2,1);transition-duration:150ms;",
	"transition-colors":    "transition-property:color,background-color,border-color,text-decoration-color,fill,stroke;transition-timing-function:cubic-bezier(0.4,0,0.2,1);transition-duration:150ms;",
	"transition-opacity":   "transition-property:opacity;transition-timing-function:cubic-bezier(0.4,0,0.2,1);transition-duration:150ms;",
	"transition-shadow":    "transition-property:box-shadow;transition-timing-function:cubic-bezier(0.4,0,0.2,1);transition-duration:150ms;",
	"transition-transform": "transition-property:transform;transition-timing-function:cubic-bezier(0.4,0,0.2,1);transition-duration:150ms;",

	"ease-linear": "transition-timing-function:linear;",
	"ease-in":     "transition-timing-function:cubic-bezier(0.4,0,1,1);",
	"ease-out":    "transition-timing-function:cubic-bezier(0,0,0.2,1);",
	"ease-in-out": "transition-timing-function:cubic-bezier(0.4,0,0.2,1);",

	"animate-none":   "animation:none;",
	"animate-spin":   "animation:spin 1s linear infinite;",
	"animate-ping":   "animation:ping 1s cubic-bezier(0,0,0.2,1) infinite;",
	"animate-pulse":  "animation:pulse 2s cubic-bezier(0.4,0,0.6,1) infinite;",
	"animate-bounce": "animation:bounce 1s infinite;",
}

func resolveTransitions(class string) (Resolved, bool) {
	if decls, ok := transitionStatic[class]; ok {
		return std(decls)
	}
	if rest, ok := strings.CutPrefix(class, "duration-"); ok {
		if n, found := parseUint(rest); found {
			return std(fmt.Sprintf("transition-duration:%dms;", n))
		}
		return Resolved{}, false
	}
	if rest, ok := strings.CutPrefix(class, "delay-"); ok {
		if n, found := parseUint(rest); found {
			return std(fmt.Sprintf("transition-delay:%dms;", n))
		}
	}
	return Resolved{}, false
}

// KeyframesCSS emits the @keyframes blocks needed by any animation
// utilities among the given classes.
func KeyframesCSS(classes []string) string {
	var spin, ping, pulse, bounce bool
	for _, c := range classes {
		switch c {
		case "animate-spin":
			spin = true
		case "animate-ping":
			ping = true
		case "animate-pulse":
			pulse = true
		case "animate-bounce":
			bounce = true
		}
	}
	var b strings.Builder
	if spin {
		b.WriteString("@keyframes spin{to{transform:rotate(360deg)}}")
	}
	if ping {
		b.WriteString("@keyframes ping{75%,100%{transform:scale(2);opacity:0}}")
	}
	if pulse {
		b.WriteString("@keyframes pulse{50%{opacity:.5}}")
	}
	if bounce {
		b.WriteString("@keyframes bounce{0%,100%{transform:translateY(-25%);animation-timing-function:cubic-bezier(0.8,0,1,1)}50%{transform:none;animation-timing-function:cubic-bezier(0,0,0.2,1)}}")
	}
	return b.String()
}
