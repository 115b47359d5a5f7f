package style

import "testing"

func TestParseVariantsNone(t *testing.T) {
	p := ParseVariants("text-red-500")
	if p.Utility != "text-red-500" {
		t.Fatalf("utility = %q", p.Utility)
	}
	if len(p.PseudoClasses) != 0 || len(p.MediaQueries) != 0 || p.Important {
		t.Fatalf("parsed = %+v", p)
	}
}

func TestParseVariantsCombinedChain(t *testing.T) {
	p := ParseVariants("hover:md:text-red-500")
	if p.Utility != "text-red-500" {
		t.Fatalf("utility = %q", p.Utility)
	}
	if len(p.PseudoClasses) != 1 || p.PseudoClasses[0] != ":hover" {
		t.Fatalf("pseudo classes = %v", p.PseudoClasses)
	}
	if len(p.MediaQueries) != 1 || p.MediaQueries[0] != "(min-width:768px)" {
		t.Fatalf("media queries = %v", p.MediaQueries)
	}
}

func TestParseVariantsImportant(t *testing.T) {
	p := ParseVariants("!hover:bg-red-500")
	if !p.Important {
		t.Fatal("leading bang must set important")
	}
	if p.Utility != "bg-red-500" {
		t.Fatalf("utility = %q", p.Utility)
	}
	if p.Original != "!hover:bg-red-500" {
		t.Fatalf("original = %q", p.Original)
	}
}

func TestParseVariantsDarkMedia(t *testing.T) {
	p := ParseVariants("dark:bg-black")
	if len(p.MediaQueries) != 1 || p.MediaQueries[0] != "(prefers-color-scheme:dark)" {
		t.Fatalf("media queries = %v", p.MediaQueries)
	}
}

func TestParseVariantsDarkClassMode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DarkMode = DarkModeClass
	p := ParseVariantsWithConfig("dark:bg-black", &cfg)
	if len(p.SelectorPrefixes) != 1 || p.SelectorPrefixes[0] != ".dark " {
		t.Fatalf("selector prefixes = %v", p.SelectorPrefixes)
	}
	if len(p.MediaQueries) != 0 {
		t.Fatalf("media queries = %v", p.MediaQueries)
	}
}

func TestParseVariantsMaxBreakpoint(t *testing.T) {
	p := ParseVariants("max-md:hidden")
	if len(p.MediaQueries) != 1 || p.MediaQueries[0] != "(max-width:768px)" {
		t.Fatalf("media queries = %v", p.MediaQueries)
	}
}

func TestParseVariantsArbitraryBreakpoint(t *testing.T) {
	p := ParseVariants("min-[900px]:flex")
	if len(p.MediaQueries) != 1 || p.MediaQueries[0] != "(min-width:900px)" {
		t.Fatalf("media queries = %v", p.MediaQueries)
	}
}

func TestParseVariantsDataAttribute(t *testing.T) {
	p := ParseVariants("data-[state=open]:bg-red-500")
	if len(p.PseudoClasses) != 1 || p.PseudoClasses[0] != "[data-state=open]" {
		t.Fatalf("pseudo classes = %v", p.PseudoClasses)
	}
	if p.Utility != "bg-red-500" {
		t.Fatalf("utility = %q", p.Utility)
	}
}

func TestParseVariantsGroupHover(t *testing.T) {
	p := ParseVariants("group-hover:underline")
	if len(p.SelectorPrefixes) != 1 || p.SelectorPrefixes[0] != ".group:hover " {
		t.Fatalf("selector prefixes = %v", p.SelectorPrefixes)
	}
}

func TestParseVariantsNamedGroup(t *testing.T) {
	p := ParseVariants("group-hover/sidebar:underline")
	if len(p.SelectorPrefixes) != 1 || p.SelectorPrefixes[0] != `.group\/sidebar:hover ` {
		t.Fatalf("selector prefixes = %v", p.SelectorPrefixes)
	}
}

func TestParseVariantsPeerFocus(t *testing.T) {
	p := ParseVariants("peer-focus:block")
	if len(p.SelectorPrefixes) != 1 || p.SelectorPrefixes[0] != ".peer:focus ~ " {
		t.Fatalf("selector prefixes = %v", p.SelectorPrefixes)
	}
}

func TestParseVariantsCustomPrefix(t *testing.T) {
	p := ParseVariants("custom:sidebar-header")
	if !p.IsCustom {
		t.Fatal("custom prefix must mark pass-through")
	}
	if p.Utility != "sidebar-header" {
		t.Fatalf("utility = %q", p.Utility)
	}
	if ParseVariants("hover:bg-red-500").IsCustom {
		t.Fatal("hover must not mark custom")
	}
}

func TestParseVariantsSupports(t *testing.T) {
	p := ParseVariants("supports-[display:grid]:grid")
	if len(p.MediaQueries) != 1 || p.MediaQueries[0] != "(display:grid)" {
		t.Fatalf("media queries = %v", p.MediaQueries)
	}
}

func TestParseVariantsUnknownPrefixStops(t *testing.T) {
	p := ParseVariants("wiggle:flex")
	if p.Utility != "flex" {
		t.Fatalf("utility = %q", p.Utility)
	}
	if len(p.PseudoClasses) != 0 && len(p.MediaQueries) != 0 {
		t.Fatalf("unknown prefix must not map: %+v", p)
	}
}

func TestEscapeSelector(t *testing.T) {
	cases := map[string]string{
		"flex":                  "flex",
		"w-1/2":                 `w-1\/2`,
		"p-0.5":                 `p-0\.5`,
		"hover:md:bg-red-500/50": `hover\:md\:bg-red-500\/50`,
		"bg-[#161b22]":          `bg-\[\#161b22\]`,
		"!text-center":          `\!text-center`,
	}
	for in, want := range cases {
		if got := EscapeSelector(in); got != want {
			t.Errorf("EscapeSelector(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestColorHex(t *testing.T) {
	cases := []struct {
		name string
		hex  string
		ok   bool
	}{
		{"red-500", "#ef4444", true},
		{"blue-500", "#3b82f6", true},
		{"slate-50", "#f8fafc", true},
		{"rose-950", "#4c0519", true},
		{"white", "#ffffff", true},
		{"black", "#000000", true},
		{"transparent", "transparent", true},
		{"current", "currentColor", true},
		{"red-501", "", false},
		{"nope-500", "", false},
	}
	for _, c := range cases {
		hex, ok := ColorHex(c.name)
		if ok != c.ok || hex != c.hex {
			t.Errorf("ColorHex(%q) = %q, %v", c.name, hex, ok)
		}
	}
}
