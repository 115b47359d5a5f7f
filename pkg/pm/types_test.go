package pm

import (
	"testing"

	"github.com/pelletier/go-toml/v2"
)

func allEcosystems() []Ecosystem {
	return []Ecosystem{
		EcosystemNode, EcosystemPython, EcosystemRuby, EcosystemRust,
		EcosystemGo, EcosystemJava, EcosystemDotNet, EcosystemPHP,
		EcosystemElixir, EcosystemSwift, EcosystemDart,
	}
}

func allManagers() []PackageManager {
	return []PackageManager{
		ManagerNpm, ManagerYarn, ManagerPnpm, ManagerBun,
		ManagerPip, ManagerPipenv, ManagerPoetry, ManagerUv,
		ManagerBundler, ManagerCargo, ManagerGoModules,
		ManagerMaven, ManagerGradle, ManagerNuget, ManagerComposer,
		ManagerMix, ManagerSpm, ManagerPub,
	}
}

func allFrameworks() []Framework {
	var fws []Framework
	for f := range frameworkTOML {
		fws = append(fws, f)
	}
	return fws
}

func TestEcosystemTOMLRoundTrip(t *testing.T) {
	for _, e := range allEcosystems() {
		got, ok := EcosystemFromTOML(e.TOMLString())
		if !ok {
			t.Fatalf("EcosystemFromTOML(%q) not found", e.TOMLString())
		}
		if got != e {
			t.Fatalf("round trip of %v gave %v", e, got)
		}
	}
}

func TestManagerTOMLRoundTrip(t *testing.T) {
	for _, m := range allManagers() {
		got, ok := ManagerFromTOML(m.TOMLString())
		if !ok {
			t.Fatalf("ManagerFromTOML(%q) not found", m.TOMLString())
		}
		if got != m {
			t.Fatalf("round trip of %v gave %v", m, got)
		}
	}
}

func TestFrameworkTOMLRoundTrip(t *testing.T) {
	for _, f := range allFrameworks() {
		got, ok := FrameworkFromTOML(f.TOMLString())
		if !ok {
			t.Fatalf("FrameworkFromTOML(%q) not found", f.TOMLString())
		}
		if got != f {
			t.Fatalf("round trip of %v gave %v", f, got)
		}
	}
}

func TestDisplayNames(t *testing.T) {
	cases := []struct {
		got, want string
	}{
		{EcosystemNode.String(), "Node.js"},
		{EcosystemDotNet.String(), ".NET"},
		{ManagerGoModules.String(), "go modules"},
		{ManagerGoModules.TOMLString(), "go_modules"},
		{FrameworkNextJS.String(), "Next.js"},
		{FrameworkNextJS.TOMLString(), "nextjs"},
		{FrameworkSpring.String(), "Spring Boot"},
		{FrameworkAspNet.String(), "ASP.NET"},
		{FrameworkActix.String(), "Actix Web"},
		{FrameworkNone.String(), "none"},
		{FrameworkAngularDart.TOMLString(), "angulardart"},
	}
	for _, c := range cases {
		if c.got != c.want {
			t.Fatalf("got %q, want %q", c.got, c.want)
		}
	}
}

func TestUnknownIdentifiersRejected(t *testing.T) {
	if _, ok := EcosystemFromTOML("cobol"); ok {
		t.Fatal("accepted unknown ecosystem")
	}
	if _, ok := ManagerFromTOML("go modules"); ok {
		t.Fatal("accepted display name as identifier")
	}
	if _, ok := FrameworkFromTOML("Next.js"); ok {
		t.Fatal("accepted display name as identifier")
	}

	var e Ecosystem
	if err := e.UnmarshalText([]byte("cobol")); err == nil {
		t.Fatal("UnmarshalText accepted unknown ecosystem")
	}
}

func TestProjectTOMLEncoding(t *testing.T) {
	p := Project{
		Ecosystem: EcosystemNode,
		Manager:   ManagerPnpm,
		Manifest:  "web/package.json",
		LockFile:  "web/pnpm-lock.yaml",
		Framework: FrameworkNextJS,
	}

	data, err := toml.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var got Project
	if err := toml.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got != p {
		t.Fatalf("round trip gave %+v, want %+v", got, p)
	}
}

func TestProjectTOMLDecodeIdentifiers(t *testing.T) {
	src := `
ecosystem = "go"
manager = "go_modules"
manifest = "go.mod"
framework = "chi"
`
	var p Project
	if err := toml.Unmarshal([]byte(src), &p); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if p.Ecosystem != EcosystemGo || p.Manager != ManagerGoModules || p.Framework != FrameworkChi {
		t.Fatalf("decoded %+v", p)
	}
}
