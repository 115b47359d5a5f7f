package style

import "strings"

var interactivityStatic = map[string]string{
	"cursor-auto":          "cursor:auto;",
	"cursor-default":       "cursor:default;",
	"cursor-pointer":       "cursor:pointer;",
	"cursor-wait":          "cursor:wait;",
	"cursor-text":          "cursor:text;",
	"cursor-move":          "cursor:move;",
	"cursor-help":          "cursor:help;",
	"cursor-not-allowed":   "cursor:not-allowed;",
	"cursor-none":          "cursor:none;",
	"cursor-context-menu":  "cursor:context-menu;",
	"cursor-progress":      "cursor:progress;",
	"cursor-cell":          "cursor:cell;",
	"cursor-crosshair":     "cursor:crosshair;",
	"cursor-vertical-text": "cursor:vertical-text;",
	"cursor-alias":         "cursor:alias;",
	"cursor-copy":          "cursor:copy;",
	"cursor-no-drop":       "cursor:no-drop;",
	"cursor-grab":          "cursor:grab;",
	"cursor-grabbing":      "cursor:grabbing;",
	"cursor-all-scroll":    "cursor:all-scroll;",
	"cursor-col-resize":    "cursor:col-resize;",
	"cursor-row-resize":    "cursor:row-resize;",
	"cursor-n-resize":      "cursor:n-resize;",
	"cursor-e-resize":      "cursor:e-resize;",
	"cursor-s-resize":      "cursor:s-resize;",
	"cursor-w-resize":      "cursor:w-resize;",
	"cursor-ne-resize":     "cursor:ne-resize;",
	"cursor-nw-resize":     "cursor:nw-resize;",
	"cursor-se-resize":     "cursor:se-resize;",
	"cursor-sw-resize":     "cursor:sw-resize;",
	"cursor-ew-resize":     "cursor:ew-resize;",
	"cursor-ns-resize":     "cursor:ns-resize;",
	"cursor-nesw-resize":   "cursor:nesw-resize;",
	"cursor-nwse-resize":   "cursor:nwse-resize;",
	"cursor-zoom-in":       "cursor:zoom-in;",
	"cursor-zoom-out":      "cursor:zoom-out;",

	"resize-none": "resize:none;",
	"resize-y":    "resize:vertical;",
	"resize-x":    "resize:horizontal;",
	"resize":      "resize:both;",

	"select-none": "user-select:none;",
	"select-text": "user-select:text;",
	"select-all":  "user-select:all;",
	"select-auto": "user-select:auto;",

	"pointer-events-none": "pointer-events:none;",
	"pointer-events-auto": "pointer-events:auto;",

	"scroll-auto":   "scroll-behavior:auto;",
	"scroll-smooth": "scroll-behavior:smooth;",

	"snap-none": "scroll-snap-type:none;",
	"snap-x":    "scroll-snap-type:x var(--tw-scroll-snap-strictness);",
	"snap-y":    "scroll-snap-type:y var(--tw-scroll-snap-strictness);",
	"snap-both": "scroll-snap-type:both var(--tw-scroll-snap-strictness);",

	"snap-mandatory": "--tw-scroll-snap-strictness:mandatory;",
	"snap-proximity": "--tw-scroll-snap-strictness:proximity;",

	"snap-start":      "scroll-snap-align:start;",
	"snap-end":        "scroll-snap-align:end;",
	"snap-center":     "scroll-snap-align:center;",
	"snap-align-none": "scroll-snap-align:none;",

	"snap-normal": "scroll-snap-stop:normal;",
	"snap-always": "scroll-snap-stop:always;",

	"touch-auto":         "touch-action:auto;",
	"touch-none":         "touch-action:none;",
	"touch-pan-x":        "touch-action:pan-x;",
	"touch-pan-y":        "touch-action:pan-y;",
	"touch-pan-left":     "touch-action:pan-left;",
	"touch-pan-right":    "touch-action:pan-right;",
	"touch-pan-up":       "touch-action:pan-up;",
	"touch-pan-down":     "touch-action:pan-down;",
	"touch-pinch-zoom":   "touch-action:pinch-zoom;",
	"touch-manipulation": "touch-action:manipulation;",

	"appearance-none": "appearance:none;",
	"appearance-auto": "appearance:auto;",

	"will-change-auto":      "will-change:auto;",
	"will-change-scroll":    "will-change:scroll-position;",
	"will-change-contents":  "will-change:contents;",
	"will-change-transform": "will-change:transform;",
}

var scrollSpacingPrefixes = []struct {
	prefix string
	props  []string
}{
	{"scroll-mx-", []string{"scroll-margin-left", "scroll-margin-right"}},
	{"scroll-my-", []string{"scroll-margin-top", "scroll-margin-bottom"}},
	{"scroll-mt-", []string{"scroll-margin-top"}},
	{"scroll-mr-", []string{"scroll-margin-right"}},
	{"scroll-mb-", []string{"scroll-margin-bottom"}},
	{"scroll-ml-", []string{"scroll-margin-left"}},
	{"scroll-m-", []string{"scroll-margin"}},
	{"scroll-px-", []string{"scroll-padding-left", "scroll-padding-right"}},
	{"scroll-py-", []string{"scroll-padding-top", "scroll-padding-bottom"}},
	{"scroll-pt-", []string{"scroll-padding-top"}},
	{"scroll-pr-", []string{"scroll-padding-right"}},
	{"scroll-pb-", []string{"scroll-padding-bottom"}},
	{"scroll-pl-", []string{"scroll-padding-left"}},
	{"scroll-p-", []string{"scroll-padding"}},
}

func resolveInteractivity(class string) (Resolved, bool) {
	if decls, ok := interactivityStatic[class]; ok {
		return std(decls)
	}

	if rest, ok := strings.CutPrefix(class, "accent-"); ok {
		if rest == "auto" {
			return std("accent-color:auto;")
		}
		if decls, found := resolveColorWithOpacity(rest, "accent-color"); found {
			return std(decls)
		}
		return Resolved{}, false
	}
	if rest, ok := strings.CutPrefix(class, "caret-"); ok {
		if decls, found := resolveColorWithOpacity(rest, "caret-color"); found {
			return std(decls)
		}
		return Resolved{}, false
	}

	for _, sp := range scrollSpacingPrefixes {
		if rest, ok := strings.CutPrefix(class, sp.prefix); ok {
			val, found := parseSpacingArg(rest)
			if !found {
				return Resolved{}, false
			}
			var b strings.Builder
			for _, p := range sp.props {
				b.WriteString(p)
				b.WriteString(":")
				b.WriteString(val)
				b.WriteString(";")
			}
			return std(b.String())
		}
	}

	return Resolved{}, false
}
