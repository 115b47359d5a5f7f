package pm

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Project is one detected package ecosystem within a directory. A
// directory can host several (a Node frontend next to a Go backend).
type Project struct {
	Ecosystem Ecosystem      `toml:"ecosystem"`
	Manager   PackageManager `toml:"manager"`
	Manifest  string         `toml:"manifest"`
	LockFile  string         `toml:"lock_file,omitempty"`
	Framework Framework      `toml:"framework,omitempty"`
}

// Detect scans dir for known manifests and returns every ecosystem it
// finds, in a fixed detector order.
func Detect(dir string) ([]Project, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}

	slog.Debug("scanning", "dir", dir)

	detectors := []func(string) *Project{
		detectNode,
		detectPython,
		detectRuby,
		detectRust,
		detectGo,
		detectJava,
		detectDotNet,
		detectPHP,
		detectElixir,
		detectSwift,
		detectDart,
	}

	var projects []Project
	for _, detect := range detectors {
		if p := detect(dir); p != nil {
			slog.Debug("detected",
				"ecosystem", p.Ecosystem,
				"manager", p.Manager,
				"framework", p.Framework,
			)
			projects = append(projects, *p)
		}
	}
	return projects, nil
}

func hasFile(dir, name string) bool {
	info, err := os.Stat(filepath.Join(dir, name))
	return err == nil && !info.IsDir()
}

func hasDir(dir, name string) bool {
	info, err := os.Stat(filepath.Join(dir, name))
	return err == nil && info.IsDir()
}

func manifestContains(dir, manifest, dep string) bool {
	data, err := os.ReadFile(filepath.Join(dir, manifest))
	return err == nil && strings.Contains(string(data), dep)
}

// lockPath returns the joined path when the lockfile exists, else "".
func lockPath(dir, name string) string {
	if hasFile(dir, name) {
		return filepath.Join(dir, name)
	}
	return ""
}

func detectNode(dir string) *Project {
	if !hasFile(dir, "package.json") {
		return nil
	}

	manager, lock := ManagerNpm, lockPath(dir, "package-lock.json")
	switch {
	case hasFile(dir, "bun.lockb"):
		manager, lock = ManagerBun, lockPath(dir, "bun.lockb")
	case hasFile(dir, "bun.lock"):
		manager, lock = ManagerBun, lockPath(dir, "bun.lock")
	case hasFile(dir, "pnpm-lock.yaml"):
		manager, lock = ManagerPnpm, lockPath(dir, "pnpm-lock.yaml")
	case hasFile(dir, "yarn.lock"):
		manager, lock = ManagerYarn, lockPath(dir, "yarn.lock")
	}

	return &Project{
		Ecosystem: EcosystemNode,
		Manager:   manager,
		Manifest:  filepath.Join(dir, "package.json"),
		LockFile:  lock,
		Framework: detectNodeFramework(dir),
	}
}

func detectNodeFramework(dir string) Framework {
	// Order matters: meta-frameworks before the libraries they wrap.
	checks := []struct {
		dep string
		fw  Framework
	}{
		{`"next"`, FrameworkNextJS},
		{`"@angular/core"`, FrameworkAngular},
		{`"nuxt"`, FrameworkNuxt},
		{`"@sveltejs/kit"`, FrameworkSvelteKit},
		{`"svelte"`, FrameworkSvelte},
		{`"vue"`, FrameworkVue},
		{`"@nestjs/core"`, FrameworkNest},
		{`"astro"`, FrameworkAstro},
		{`"@remix-run/react"`, FrameworkRemix},
		{`"gatsby"`, FrameworkGatsby},
		{`"express"`, FrameworkExpress},
		{`"fastify"`, FrameworkFastify},
		{`"react"`, FrameworkReact},
	}
	for _, c := range checks {
		if manifestContains(dir, "package.json", c.dep) {
			return c.fw
		}
	}
	return FrameworkNone
}

func detectPython(dir string) *Project {
	var manifest string
	switch {
	case hasFile(dir, "pyproject.toml"):
		manifest = "pyproject.toml"
	case hasFile(dir, "Pipfile"):
		manifest = "Pipfile"
	case hasFile(dir, "requirements.txt"):
		manifest = "requirements.txt"
	default:
		return nil
	}

	manager, lock := ManagerPip, ""
	switch {
	case hasFile(dir, "uv.lock"):
		manager, lock = ManagerUv, lockPath(dir, "uv.lock")
	case hasFile(dir, "poetry.lock"):
		manager, lock = ManagerPoetry, lockPath(dir, "poetry.lock")
	case manifest == "Pipfile":
		manager, lock = ManagerPipenv, lockPath(dir, "Pipfile.lock")
	}

	fw := FrameworkNone
	for _, c := range []struct {
		dep string
		fw  Framework
	}{
		{"django", FrameworkDjango},
		{"flask", FrameworkFlask},
		{"fastapi", FrameworkFastAPI},
		{"tornado", FrameworkTornado},
		{"pyramid", FrameworkPyramid},
	} {
		if manifestContains(dir, manifest, c.dep) {
			fw = c.fw
			break
		}
	}

	return &Project{
		Ecosystem: EcosystemPython,
		Manager:   manager,
		Manifest:  filepath.Join(dir, manifest),
		LockFile:  lock,
		Framework: fw,
	}
}

func detectRuby(dir string) *Project {
	if !hasFile(dir, "Gemfile") {
		return nil
	}

	fw := FrameworkNone
	switch {
	case hasFile(dir, "config/routes.rb") || hasFile(dir, "bin/rails"):
		fw = FrameworkRails
	case manifestContains(dir, "Gemfile", "sinatra"):
		fw = FrameworkSinatra
	case manifestContains(dir, "Gemfile", "hanami"):
		fw = FrameworkHanami
	}

	return &Project{
		Ecosystem: EcosystemRuby,
		Manager:   ManagerBundler,
		Manifest:  filepath.Join(dir, "Gemfile"),
		LockFile:  lockPath(dir, "Gemfile.lock"),
		Framework: fw,
	}
}

func detectRust(dir string) *Project {
	if !hasFile(dir, "Cargo.toml") {
		return nil
	}

	fw := FrameworkNone
	for _, c := range []struct {
		dep string
		fw  Framework
	}{
		{"actix-web", FrameworkActix},
		{"axum", FrameworkAxum},
		{"rocket", FrameworkRocket},
		{"tauri", FrameworkTauri},
		{"leptos", FrameworkLeptos},
		{"yew", FrameworkYew},
		{"bevy", FrameworkBevy},
	} {
		if manifestContains(dir, "Cargo.toml", c.dep) {
			fw = c.fw
			break
		}
	}

	return &Project{
		Ecosystem: EcosystemRust,
		Manager:   ManagerCargo,
		Manifest:  filepath.Join(dir, "Cargo.toml"),
		LockFile:  lockPath(dir, "Cargo.lock"),
		Framework: fw,
	}
}

func detectGo(dir string) *Project {
	if !hasFile(dir, "go.mod") {
		return nil
	}

	fw := FrameworkNone
	for _, c := range []struct {
		dep string
		fw  Framework
	}{
		{"github.com/gin-gonic/gin", FrameworkGin},
		{"github.com/labstack/echo", FrameworkEcho},
		{"github.com/gofiber/fiber", FrameworkFiber},
		{"github.com/go-chi/chi", FrameworkChi},
		{"github.com/gobuffalo/buffalo", FrameworkBuffalo},
	} {
		if manifestContains(dir, "go.mod", c.dep) {
			fw = c.fw
			break
		}
	}

	return &Project{
		Ecosystem: EcosystemGo,
		Manager:   ManagerGoModules,
		Manifest:  filepath.Join(dir, "go.mod"),
		LockFile:  lockPath(dir, "go.sum"),
		Framework: fw,
	}
}

func detectJava(dir string) *Project {
	if hasFile(dir, "build.gradle") || hasFile(dir, "build.gradle.kts") {
		manifest := "build.gradle"
		if hasFile(dir, "build.gradle.kts") {
			manifest = "build.gradle.kts"
		}
		return &Project{
			Ecosystem: EcosystemJava,
			Manager:   ManagerGradle,
			Manifest:  filepath.Join(dir, manifest),
			LockFile:  lockPath(dir, "gradle.lockfile"),
			Framework: detectJavaFramework(dir, manifest),
		}
	}
	if hasFile(dir, "pom.xml") {
		return &Project{
			Ecosystem: EcosystemJava,
			Manager:   ManagerMaven,
			Manifest:  filepath.Join(dir, "pom.xml"),
			Framework: detectJavaFramework(dir, "pom.xml"),
		}
	}
	return nil
}

func detectJavaFramework(dir, manifest string) Framework {
	switch {
	case manifestContains(dir, manifest, "spring-boot"):
		return FrameworkSpring
	case manifestContains(dir, manifest, "quarkus"):
		return FrameworkQuarkus
	case manifestContains(dir, manifest, "micronaut"):
		return FrameworkMicronaut
	case manifestContains(dir, manifest, "jakarta."):
		return FrameworkJakarta
	}
	return FrameworkNone
}

func detectDotNet(dir string) *Project {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".csproj" && ext != ".sln") {
			continue
		}
		manifest := entry.Name()
		fw := FrameworkNone
		switch {
		case manifestContains(dir, manifest, "Microsoft.AspNetCore"):
			fw = FrameworkAspNet
		case manifestContains(dir, manifest, "Blazor"):
			fw = FrameworkBlazor
		case manifestContains(dir, manifest, "Microsoft.Maui"):
			fw = FrameworkMaui
		}
		return &Project{
			Ecosystem: EcosystemDotNet,
			Manager:   ManagerNuget,
			Manifest:  filepath.Join(dir, manifest),
			Framework: fw,
		}
	}
	return nil
}

func detectPHP(dir string) *Project {
	if !hasFile(dir, "composer.json") {
		return nil
	}

	fw := FrameworkNone
	switch {
	case hasFile(dir, "artisan") || manifestContains(dir, "composer.json", "laravel/framework"):
		fw = FrameworkLaravel
	case manifestContains(dir, "composer.json", "symfony/framework-bundle"):
		fw = FrameworkSymfony
	case manifestContains(dir, "composer.json", "slim/slim"):
		fw = FrameworkSlim
	case manifestContains(dir, "composer.json", "cakephp/cakephp"):
		fw = FrameworkCakePHP
	}

	return &Project{
		Ecosystem: EcosystemPHP,
		Manager:   ManagerComposer,
		Manifest:  filepath.Join(dir, "composer.json"),
		LockFile:  lockPath(dir, "composer.lock"),
		Framework: fw,
	}
}

func detectElixir(dir string) *Project {
	if !hasFile(dir, "mix.exs") {
		return nil
	}

	fw := FrameworkNone
	switch {
	case manifestContains(dir, "mix.exs", ":phoenix"):
		fw = FrameworkPhoenix
	case manifestContains(dir, "mix.exs", ":nerves"):
		fw = FrameworkNerves
	}

	return &Project{
		Ecosystem: EcosystemElixir,
		Manager:   ManagerMix,
		Manifest:  filepath.Join(dir, "mix.exs"),
		LockFile:  lockPath(dir, "mix.lock"),
		Framework: fw,
	}
}

func detectSwift(dir string) *Project {
	if !hasFile(dir, "Package.swift") {
		return nil
	}

	fw := FrameworkNone
	if manifestContains(dir, "Package.swift", "vapor") {
		fw = FrameworkVapor
	}

	return &Project{
		Ecosystem: EcosystemSwift,
		Manager:   ManagerSpm,
		Manifest:  filepath.Join(dir, "Package.swift"),
		LockFile:  lockPath(dir, "Package.resolved"),
		Framework: fw,
	}
}

func detectDart(dir string) *Project {
	if !hasFile(dir, "pubspec.yaml") {
		return nil
	}

	fw := FrameworkNone
	switch {
	case hasFile(dir, ".metadata") || hasDir(dir, "android") || hasDir(dir, "ios"):
		fw = FrameworkFlutter
	case manifestContains(dir, "pubspec.yaml", "angular"):
		fw = FrameworkAngularDart
	}

	return &Project{
		Ecosystem: EcosystemDart,
		Manager:   ManagerPub,
		Manifest:  filepath.Join(dir, "pubspec.yaml"),
		LockFile:  lockPath(dir, "pubspec.lock"),
		Framework: fw,
	}
}
