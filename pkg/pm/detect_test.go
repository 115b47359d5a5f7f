package pm

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func detectOne(t *testing.T, dir string) Project {
	t.Helper()
	projects, err := Detect(dir)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if len(projects) != 1 {
		t.Fatalf("detected %d projects, want 1: %+v", len(projects), projects)
	}
	return projects[0]
}

func TestDetectNotADirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "file.txt", "")
	if _, err := Detect(filepath.Join(dir, "file.txt")); err == nil {
		t.Fatal("expected error for non-directory")
	}
}

func TestDetectEmptyDir(t *testing.T) {
	projects, err := Detect(t.TempDir())
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if len(projects) != 0 {
		t.Fatalf("detected %+v in empty dir", projects)
	}
}

func TestDetectNodeLockfilePriority(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{"dependencies":{}}`)
	writeFile(t, dir, "package-lock.json", "{}")
	writeFile(t, dir, "yarn.lock", "")
	writeFile(t, dir, "pnpm-lock.yaml", "")

	p := detectOne(t, dir)
	if p.Ecosystem != EcosystemNode {
		t.Fatalf("ecosystem = %v", p.Ecosystem)
	}
	if p.Manager != ManagerPnpm {
		t.Fatalf("manager = %v, want pnpm to outrank yarn and npm", p.Manager)
	}
	if p.LockFile != filepath.Join(dir, "pnpm-lock.yaml") {
		t.Fatalf("lock = %q", p.LockFile)
	}

	// bun outranks everything.
	writeFile(t, dir, "bun.lockb", "")
	p = detectOne(t, dir)
	if p.Manager != ManagerBun {
		t.Fatalf("manager = %v, want bun", p.Manager)
	}
}

func TestDetectNodeFramework(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{"dependencies":{"next":"14.0.0","react":"18.0.0"}}`)

	p := detectOne(t, dir)
	if p.Manager != ManagerNpm {
		t.Fatalf("manager = %v, want npm default", p.Manager)
	}
	if p.LockFile != "" {
		t.Fatalf("lock = %q, want none", p.LockFile)
	}
	if p.Framework != FrameworkNextJS {
		t.Fatalf("framework = %v, want next to outrank react", p.Framework)
	}
}

func TestDetectPython(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pyproject.toml", "[project]\ndependencies = [\"fastapi\"]\n")
	writeFile(t, dir, "uv.lock", "")

	p := detectOne(t, dir)
	if p.Ecosystem != EcosystemPython || p.Manager != ManagerUv {
		t.Fatalf("got %v/%v", p.Ecosystem, p.Manager)
	}
	if p.Framework != FrameworkFastAPI {
		t.Fatalf("framework = %v", p.Framework)
	}
}

func TestDetectPythonPipenv(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Pipfile", "[packages]\nflask = \"*\"\n")
	writeFile(t, dir, "Pipfile.lock", "{}")

	p := detectOne(t, dir)
	if p.Manager != ManagerPipenv {
		t.Fatalf("manager = %v", p.Manager)
	}
	if p.LockFile != filepath.Join(dir, "Pipfile.lock") {
		t.Fatalf("lock = %q", p.LockFile)
	}
	if p.Framework != FrameworkFlask {
		t.Fatalf("framework = %v", p.Framework)
	}
}

func TestDetectRubyRails(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Gemfile", "source 'https://rubygems.org'\n")
	writeFile(t, dir, "config/routes.rb", "")

	p := detectOne(t, dir)
	if p.Manager != ManagerBundler || p.Framework != FrameworkRails {
		t.Fatalf("got %v/%v", p.Manager, p.Framework)
	}
}

func TestDetectRust(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Cargo.toml", "[dependencies]\naxum = \"0.7\"\n")
	writeFile(t, dir, "Cargo.lock", "")

	p := detectOne(t, dir)
	if p.Ecosystem != EcosystemRust || p.Manager != ManagerCargo {
		t.Fatalf("got %v/%v", p.Ecosystem, p.Manager)
	}
	if p.Framework != FrameworkAxum {
		t.Fatalf("framework = %v", p.Framework)
	}
}

func TestDetectGo(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "go.mod", "module example.com/app\n\nrequire github.com/go-chi/chi/v5 v5.0.0\n")

	p := detectOne(t, dir)
	if p.Ecosystem != EcosystemGo || p.Manager != ManagerGoModules {
		t.Fatalf("got %v/%v", p.Ecosystem, p.Manager)
	}
	if p.Framework != FrameworkChi {
		t.Fatalf("framework = %v", p.Framework)
	}
}

func TestDetectJavaGradleOverMaven(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "build.gradle.kts", `implementation("org.springframework.boot:spring-boot-starter")`)
	writeFile(t, dir, "pom.xml", "<project/>")

	p := detectOne(t, dir)
	if p.Manager != ManagerGradle {
		t.Fatalf("manager = %v, want gradle to outrank maven", p.Manager)
	}
	if p.Framework != FrameworkSpring {
		t.Fatalf("framework = %v", p.Framework)
	}
}

func TestDetectDotNet(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.csproj", `<PackageReference Include="Microsoft.AspNetCore.OpenApi" />`)

	p := detectOne(t, dir)
	if p.Ecosystem != EcosystemDotNet || p.Manager != ManagerNuget {
		t.Fatalf("got %v/%v", p.Ecosystem, p.Manager)
	}
	if p.Framework != FrameworkAspNet {
		t.Fatalf("framework = %v", p.Framework)
	}
}

func TestDetectPHPLaravelViaArtisan(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "composer.json", `{"require":{}}`)
	writeFile(t, dir, "artisan", "#!/usr/bin/env php\n")

	p := detectOne(t, dir)
	if p.Manager != ManagerComposer || p.Framework != FrameworkLaravel {
		t.Fatalf("got %v/%v", p.Manager, p.Framework)
	}
}

func TestDetectElixirPhoenix(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "mix.exs", "defp deps do\n  [{:phoenix, \"~> 1.7\"}]\nend\n")

	p := detectOne(t, dir)
	if p.Manager != ManagerMix || p.Framework != FrameworkPhoenix {
		t.Fatalf("got %v/%v", p.Manager, p.Framework)
	}
}

func TestDetectSwiftVapor(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Package.swift", `.package(url: "https://github.com/vapor/vapor.git", from: "4.0.0")`)

	p := detectOne(t, dir)
	if p.Manager != ManagerSpm || p.Framework != FrameworkVapor {
		t.Fatalf("got %v/%v", p.Manager, p.Framework)
	}
}

func TestDetectDartFlutter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pubspec.yaml", "name: app\n")
	if err := os.MkdirAll(filepath.Join(dir, "android"), 0o755); err != nil {
		t.Fatal(err)
	}

	p := detectOne(t, dir)
	if p.Manager != ManagerPub || p.Framework != FrameworkFlutter {
		t.Fatalf("got %v/%v", p.Manager, p.Framework)
	}
}

func TestDetectMultipleEcosystems(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{"dependencies":{"react":"18"}}`)
	writeFile(t, dir, "go.mod", "module example.com/app\n")

	projects, err := Detect(dir)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("detected %d projects, want 2", len(projects))
	}
	if projects[0].Ecosystem != EcosystemNode || projects[1].Ecosystem != EcosystemGo {
		t.Fatalf("order = %v, %v", projects[0].Ecosystem, projects[1].Ecosystem)
	}
}
