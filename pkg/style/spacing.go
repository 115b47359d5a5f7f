package style

import "strings"

// spaceBetweenSuffix targets all but the first visible child.
const spaceBetweenSuffix = ">:not([hidden])~:not([hidden])"

func resolveSpacing(class string) (Resolved, bool) {
	switch class {
	case "space-x-reverse":
		return Resolved{SelectorSuffix: spaceBetweenSuffix, Declarations: "--tw-space-x-reverse:1;"}, true
	case "space-y-reverse":
		return Resolved{SelectorSuffix: spaceBetweenSuffix, Declarations: "--tw-space-y-reverse:1;"}, true
	}
	if rest, ok := strings.CutPrefix(class, "space-x-"); ok {
		if val, found := parseSpacingArg(rest); found {
			return Resolved{SelectorSuffix: spaceBetweenSuffix, Declarations: "margin-left:" + val + ";"}, true
		}
		return Resolved{}, false
	}
	if rest, ok := strings.CutPrefix(class, "space-y-"); ok {
		if val, found := parseSpacingArg(rest); found {
			return Resolved{SelectorSuffix: spaceBetweenSuffix, Declarations: "margin-top:" + val + ";"}, true
		}
		return Resolved{}, false
	}

	type rule struct {
		prefix string
		props  []string
		negate bool
		auto   bool
	}
	// Order matters: longer prefixes shadow shorter ones ("mx-" before "m-").
	rules := []rule{
		{prefix: "-mx-", props: []string{"margin-left", "margin-right"}, negate: true},
		{prefix: "-my-", props: []string{"margin-top", "margin-bottom"}, negate: true},
		{prefix: "-mt-", props: []string{"margin-top"}, negate: true},
		{prefix: "-mr-", props: []string{"margin-right"}, negate: true},
		{prefix: "-mb-", props: []string{"margin-bottom"}, negate: true},
		{prefix: "-ml-", props: []string{"margin-left"}, negate: true},
		{prefix: "-ms-", props: []string{"margin-inline-start"}, negate: true},
		{prefix: "-me-", props: []string{"margin-inline-end"}, negate: true},
		{prefix: "-m-", props: []string{"margin"}, negate: true},

		{prefix: "px-", props: []string{"padding-left", "padding-right"}},
		{prefix: "py-", props: []string{"padding-top", "padding-bottom"}},
		{prefix: "pt-", props: []string{"padding-top"}},
		{prefix: "pr-", props: []string{"padding-right"}},
		{prefix: "pb-", props: []string{"padding-bottom"}},
		{prefix: "pl-", props: []string{"padding-left"}},
		{prefix: "ps-", props: []string{"padding-inline-start"}},
		{prefix: "pe-", props: []string{"padding-inline-end"}},
		{prefix: "p-", props: []string{"padding"}},

		{prefix: "mx-", props: []string{"margin-left", "margin-right"}, auto: true},
		{prefix: "my-", props: []string{"margin-top", "margin-bottom"}, auto: true},
		{prefix: "mt-", props: []string{"margin-top"}, auto: true},
		{prefix: "mr-", props: []string{"margin-right"}, auto: true},
		{prefix: "mb-", props: []string{"margin-bottom"}, auto: true},
		{prefix: "ml-", props: []string{"margin-left"}, auto: true},
		{prefix: "ms-", props: []string{"margin-inline-start"}, auto: true},
		{prefix: "me-", props: []string{"margin-inline-end"}, auto: true},
		{prefix: "m-", props: []string{"margin"}, auto: true},

		{prefix: "gap-x-", props: []string{"column-gap"}},
		{prefix: "gap-y-", props: []string{"row-gap"}},
		{prefix: "gap-", props: []string{"gap"}},
	}
	for _, r := range rules {
		rest, ok := strings.CutPrefix(class, r.prefix)
		if !ok {
			continue
		}
		if r.auto && rest == "auto" {
			var b strings.Builder
			for _, p := range r.props {
				b.WriteString(p)
				b.WriteString(":auto;")
			}
			return std(b.String())
		}
		val, found := parseSpacingArg(rest)
		if !found {
			return Resolved{}, false
		}
		if r.negate {
			val = "-" + val
		}
		var b strings.Builder
		for _, p := range r.props {
			b.WriteString(p)
			b.WriteString(":")
			b.WriteString(val)
			b.WriteString(";")
		}
		return std(b.String())
	}
	return Resolved{}, false
}
