// Package pm detects the package ecosystems present in a project
// directory: which manifest, which package manager (via its lockfile),
// and which framework the manifest depends on.
package pm

import "fmt"

// Ecosystem is a language package ecosystem.
type Ecosystem int

const (
	EcosystemNode Ecosystem = iota
	EcosystemPython
	EcosystemRuby
	EcosystemRust
	EcosystemGo
	EcosystemJava
	EcosystemDotNet
	EcosystemPHP
	EcosystemElixir
	EcosystemSwift
	EcosystemDart
)

var ecosystemNames = map[Ecosystem]string{
	EcosystemNode:   "Node.js",
	EcosystemPython: "Python",
	EcosystemRuby:   "Ruby",
	EcosystemRust:   "Rust",
	EcosystemGo:     "Go",
	EcosystemJava:   "Java",
	EcosystemDotNet: ".NET",
	EcosystemPHP:    "PHP",
	EcosystemElixir: "Elixir",
	EcosystemSwift:  "Swift",
	EcosystemDart:   "Dart",
}

var ecosystemTOML = map[Ecosystem]string{
	EcosystemNode:   "node",
	EcosystemPython: "python",
	EcosystemRuby:   "ruby",
	EcosystemRust:   "rust",
	EcosystemGo:     "go",
	EcosystemJava:   "java",
	EcosystemDotNet: "dotnet",
	EcosystemPHP:    "php",
	EcosystemElixir: "elixir",
	EcosystemSwift:  "swift",
	EcosystemDart:   "dart",
}

var ecosystemFromTOML = invert(ecosystemTOML)

func (e Ecosystem) String() string { return ecosystemNames[e] }

// TOMLString returns the stable identifier used in configuration files.
func (e Ecosystem) TOMLString() string { return ecosystemTOML[e] }

// EcosystemFromTOML parses the stable identifier.
func EcosystemFromTOML(s string) (Ecosystem, bool) {
	v, ok := ecosystemFromTOML[s]
	return v, ok
}

func (e Ecosystem) MarshalText() ([]byte, error) {
	return []byte(e.TOMLString()), nil
}

func (e *Ecosystem) UnmarshalText(b []byte) error {
	v, ok := EcosystemFromTOML(string(b))
	if !ok {
		return fmt.Errorf("unknown ecosystem %q", b)
	}
	*e = v
	return nil
}

// PackageManager identifies the tool owning a project's lockfile.
type PackageManager int

const (
	ManagerNpm PackageManager = iota
	ManagerYarn
	ManagerPnpm
	ManagerBun
	ManagerPip
	ManagerPipenv
	ManagerPoetry
	ManagerUv
	ManagerBundler
	ManagerCargo
	ManagerGoModules
	ManagerMaven
	ManagerGradle
	ManagerNuget
	ManagerComposer
	ManagerMix
	ManagerSpm
	ManagerPub
)

var managerNames = map[PackageManager]string{
	ManagerNpm:       "npm",
	ManagerYarn:      "yarn",
	ManagerPnpm:      "pnpm",
	ManagerBun:       "bun",
	ManagerPip:       "pip",
	ManagerPipenv:    "pipenv",
	ManagerPoetry:    "poetry",
	ManagerUv:        "uv",
	ManagerBundler:   "bundler",
	ManagerCargo:     "cargo",
	ManagerGoModules: "go modules",
	ManagerMaven:     "maven",
	ManagerGradle:    "gradle",
	ManagerNuget:     "nuget",
	ManagerComposer:  "composer",
	ManagerMix:       "mix",
	ManagerSpm:       "spm",
	ManagerPub:       "pub",
}

var managerTOML = map[PackageManager]string{
	ManagerNpm:       "npm",
	ManagerYarn:      "yarn",
	ManagerPnpm:      "pnpm",
	ManagerBun:       "bun",
	ManagerPip:       "pip",
	ManagerPipenv:    "pipenv",
	ManagerPoetry:    "poetry",
	ManagerUv:        "uv",
	ManagerBundler:   "bundler",
	ManagerCargo:     "cargo",
	ManagerGoModules: "go_modules",
	ManagerMaven:     "maven",
	ManagerGradle:    "gradle",
	ManagerNuget:     "nuget",
	ManagerComposer:  "composer",
	ManagerMix:       "mix",
	ManagerSpm:       "spm",
	ManagerPub:       "pub",
}

var managerFromTOML = invert(managerTOML)

func (m PackageManager) String() string { return managerNames[m] }

// TOMLString returns the stable identifier used in configuration files.
func (m PackageManager) TOMLString() string { return managerTOML[m] }

// ManagerFromTOML parses the stable identifier.
func ManagerFromTOML(s string) (PackageManager, bool) {
	v, ok := managerFromTOML[s]
	return v, ok
}

func (m PackageManager) MarshalText() ([]byte, error) {
	return []byte(m.TOMLString()), nil
}

func (m *PackageManager) UnmarshalText(b []byte) error {
	v, ok := ManagerFromTOML(string(b))
	if !ok {
		return fmt.Errorf("unknown package manager %q", b)
	}
	*m = v
	return nil
}

// Framework is a recognized application framework. FrameworkNone means
// the manifest matched no known framework.
type Framework int

const (
	FrameworkNone Framework = iota

	// Node
	FrameworkReact
	FrameworkNextJS
	FrameworkVue
	FrameworkNuxt
	FrameworkAngular
	FrameworkSvelte
	FrameworkSvelteKit
	FrameworkExpress
	FrameworkFastify
	FrameworkNest
	FrameworkAstro
	FrameworkRemix
	FrameworkGatsby

	// Python
	FrameworkDjango
	FrameworkFlask
	FrameworkFastAPI
	FrameworkTornado
	FrameworkPyramid

	// Ruby
	FrameworkRails
	FrameworkSinatra
	FrameworkHanami

	// Rust
	FrameworkActix
	FrameworkAxum
	FrameworkRocket
	FrameworkTauri
	FrameworkLeptos
	FrameworkYew
	FrameworkBevy

	// Go
	FrameworkGin
	FrameworkEcho
	FrameworkFiber
	FrameworkChi
	FrameworkBuffalo

	// Java
	FrameworkSpring
	FrameworkQuarkus
	FrameworkMicronaut
	FrameworkJakarta

	// PHP
	FrameworkLaravel
	FrameworkSymfony
	FrameworkSlim
	FrameworkCakePHP

	// .NET
	FrameworkAspNet
	FrameworkBlazor
	FrameworkMaui

	// Elixir
	FrameworkPhoenix
	FrameworkNerves

	// Swift
	FrameworkVapor
	FrameworkSwiftUI

	// Dart
	FrameworkFlutter
	FrameworkAngularDart
)

var frameworkNames = map[Framework]string{
	FrameworkReact:       "React",
	FrameworkNextJS:      "Next.js",
	FrameworkVue:         "Vue",
	FrameworkNuxt:        "Nuxt",
	FrameworkAngular:     "Angular",
	FrameworkSvelte:      "Svelte",
	FrameworkSvelteKit:   "SvelteKit",
	FrameworkExpress:     "Express",
	FrameworkFastify:     "Fastify",
	FrameworkNest:        "NestJS",
	FrameworkAstro:       "Astro",
	FrameworkRemix:       "Remix",
	FrameworkGatsby:      "Gatsby",
	FrameworkDjango:      "Django",
	FrameworkFlask:       "Flask",
	FrameworkFastAPI:     "FastAPI",
	FrameworkTornado:     "Tornado",
	FrameworkPyramid:     "Pyramid",
	FrameworkRails:       "Rails",
	FrameworkSinatra:     "Sinatra",
	FrameworkHanami:      "Hanami",
	FrameworkActix:       "Actix Web",
	FrameworkAxum:        "Axum",
	FrameworkRocket:      "Rocket",
	FrameworkTauri:       "Tauri",
	FrameworkLeptos:      "Leptos",
	FrameworkYew:         "Yew",
	FrameworkBevy:        "Bevy",
	FrameworkGin:         "Gin",
	FrameworkEcho:        "Echo",
	FrameworkFiber:       "Fiber",
	FrameworkChi:         "Chi",
	FrameworkBuffalo:     "Buffalo",
	FrameworkSpring:      "Spring Boot",
	FrameworkQuarkus:     "Quarkus",
	FrameworkMicronaut:   "Micronaut",
	FrameworkJakarta:     "Jakarta EE",
	FrameworkLaravel:     "Laravel",
	FrameworkSymfony:     "Symfony",
	FrameworkSlim:        "Slim",
	FrameworkCakePHP:     "CakePHP",
	FrameworkAspNet:      "ASP.NET",
	FrameworkBlazor:      "Blazor",
	FrameworkMaui:        "MAUI",
	FrameworkPhoenix:     "Phoenix",
	FrameworkNerves:      "Nerves",
	FrameworkVapor:       "Vapor",
	FrameworkSwiftUI:     "SwiftUI",
	FrameworkFlutter:     "Flutter",
	FrameworkAngularDart: "AngularDart",
}

var frameworkTOML = map[Framework]string{
	FrameworkReact:       "react",
	FrameworkNextJS:      "nextjs",
	FrameworkVue:         "vue",
	FrameworkNuxt:        "nuxt",
	FrameworkAngular:     "angular",
	FrameworkSvelte:      "svelte",
	FrameworkSvelteKit:   "sveltekit",
	FrameworkExpress:     "express",
	FrameworkFastify:     "fastify",
	FrameworkNest:        "nest",
	FrameworkAstro:       "astro",
	FrameworkRemix:       "remix",
	FrameworkGatsby:      "gatsby",
	FrameworkDjango:      "django",
	FrameworkFlask:       "flask",
	FrameworkFastAPI:     "fastapi",
	FrameworkTornado:     "tornado",
	FrameworkPyramid:     "pyramid",
	FrameworkRails:       "rails",
	FrameworkSinatra:     "sinatra",
	FrameworkHanami:      "hanami",
	FrameworkActix:       "actix",
	FrameworkAxum:        "axum",
	FrameworkRocket:      "rocket",
	FrameworkTauri:       "tauri",
	FrameworkLeptos:      "leptos",
	FrameworkYew:         "yew",
	FrameworkBevy:        "bevy",
	FrameworkGin:         "gin",
	FrameworkEcho:        "echo",
	FrameworkFiber:       "fiber",
	FrameworkChi:         "chi",
	FrameworkBuffalo:     "buffalo",
	FrameworkSpring:      "spring",
	FrameworkQuarkus:     "quarkus",
	FrameworkMicronaut:   "micronaut",
	FrameworkJakarta:     "jakarta",
	FrameworkLaravel:     "laravel",
	FrameworkSymfony:     "symfony",
	FrameworkSlim:        "slim",
	FrameworkCakePHP:     "cakephp",
	FrameworkAspNet:      "aspnet",
	FrameworkBlazor:      "blazor",
	FrameworkMaui:        "maui",
	FrameworkPhoenix:     "phoenix",
	FrameworkNerves:      "nerves",
	FrameworkVapor:       "vapor",
	FrameworkSwiftUI:     "swiftui",
	FrameworkFlutter:     "flutter",
	FrameworkAngularDart: "angulardart",
}

var frameworkFromTOML = invert(frameworkTOML)

func (f Framework) String() string {
	if f == FrameworkNone {
		return "none"
	}
	return frameworkNames[f]
}

// TOMLString returns the stable identifier used in configuration files.
func (f Framework) TOMLString() string { return frameworkTOML[f] }

// FrameworkFromTOML parses the stable identifier.
func FrameworkFromTOML(s string) (Framework, bool) {
	v, ok := frameworkFromTOML[s]
	return v, ok
}

func (f Framework) MarshalText() ([]byte, error) {
	return []byte(f.TOMLString()), nil
}

func (f *Framework) UnmarshalText(b []byte) error {
	v, ok := FrameworkFromTOML(string(b))
	if !ok {
		return fmt.Errorf("unknown framework %q", b)
	}
	*f = v
	return nil
}

func invert[K comparable, V comparable](m map[K]V) map[V]K {
	out := make(map[V]K, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}
