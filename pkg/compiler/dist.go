package compiler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var staticAssetExts = map[string]bool{
	".css": true, ".svg": true, ".png": true, ".jpg": true, ".jpeg": true,
	".gif": true, ".webp": true, ".avif": true, ".ico": true,
	".woff": true, ".woff2": true, ".ttf": true, ".otf": true,
}

func isStaticAsset(ext string) bool {
	return staticAssetExts[strings.ToLower(ext)]
}

// CompileDir compiles a source tree into distName under sourceDir:
// .volki files compile to .rs, plain .rs files copy over, static
// assets land in dist/public/, and generated mod files wire the
// discovered routes into a start() entry point. The previous dist
// directory is removed first.
func CompileDir(sourceDir, distName string) ([]CompileResult, error) {
	distDir := filepath.Join(sourceDir, distName)

	if _, err := os.Stat(distDir); err == nil {
		if err := os.RemoveAll(distDir); err != nil {
			return nil, &CompileError{File: sourceDir, Message: fmt.Sprintf("failed to remove old dist directory: %v", err)}
		}
	}
	if err := os.MkdirAll(distDir, 0o755); err != nil {
		return nil, &CompileError{File: sourceDir, Message: fmt.Sprintf("failed to create dist directory: %v", err)}
	}

	var results []CompileResult

	publicSrc := filepath.Join(sourceDir, "public")
	if _, err := os.Stat(publicSrc); err == nil {
		if err := copyDirRecursive(publicSrc, filepath.Join(distDir, "public")); err != nil {
			return nil, err
		}
	}

	if err := walkAndCompile(sourceDir, sourceDir, distDir, distName, &results); err != nil {
		return nil, err
	}

	discovered, err := DiscoverRoutes(sourceDir)
	if err != nil {
		return nil, err
	}

	publicDir := ""
	if _, err := os.Stat(filepath.Join(distDir, "public")); err == nil {
		publicDir = distName + "/public"
	}

	rootContent, err := GenerateRootMod(distDir, discovered, publicDir)
	if err != nil {
		return nil, err
	}
	if err := writeFile(filepath.Join(distDir, "mod.rs"), rootContent, distDir); err != nil {
		return nil, err
	}

	if err := generateSubModFiles(distDir); err != nil {
		return nil, err
	}

	reexport := fmt.Sprintf("%s#[path = \"%s\"]\nmod generated;\npub use generated::*;\n",
		generatedHeader, distName)
	if err := writeFile(filepath.Join(sourceDir, "mod.rs"), reexport, sourceDir); err != nil {
		return nil, err
	}

	return results, nil
}

func walkAndCompile(dir, sourceRoot, distDir, distName string, results *[]CompileResult) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return &CompileError{File: dir, Message: fmt.Sprintf("failed to read directory: %v", err)}
	}

	for _, entry := range entries {
		name := entry.Name()
		path := filepath.Join(dir, name)

		// The dist tree and public/ at the root are handled elsewhere.
		if dir == sourceRoot && (name == distName || name == "public") {
			continue
		}

		if entry.IsDir() {
			if err := walkAndCompile(path, sourceRoot, distDir, distName, results); err != nil {
				return err
			}
			continue
		}

		ext := filepath.Ext(name)
		switch {
		case ext == ".volki":
			result, err := compileFileToDist(path, sourceRoot, distDir)
			if err != nil {
				return err
			}
			*results = append(*results, *result)
		case ext == ".rs" && name != "mod.rs":
			if err := copyRsToDist(path, sourceRoot, distDir); err != nil {
				return err
			}
		case isStaticAsset(ext):
			if err := copyAssetToPublic(path, sourceRoot, distDir); err != nil {
				return err
			}
		}
	}
	return nil
}

// compileFileToDist compiles one source file and writes the server
// output to dist, mirroring the path relative to the source root.
// Client artifacts go next to the server output and into
// dist/public/wasm/ for static serving.
func compileFileToDist(path, sourceRoot, distDir string) (*CompileResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &CompileError{File: path, Message: fmt.Sprintf("failed to read file: %v", err)}
	}

	full, cerr := CompileSourceFull(string(data), path)
	if cerr != nil {
		return nil, cerr
	}

	relative, err := filepath.Rel(sourceRoot, path)
	if err != nil {
		relative = path
	}
	outPath := filepath.Join(distDir, relative)
	outPath = strings.TrimSuffix(outPath, filepath.Ext(outPath)) + ".rs"

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return nil, &CompileError{File: path, Message: fmt.Sprintf("failed to create output directory: %v", err)}
	}
	if err := writeFile(outPath, full.ServerRs, path); err != nil {
		return nil, err
	}

	if full.Client != nil {
		stem := fileStem(path)

		clientRsPath := filepath.Join(filepath.Dir(outPath), stem+"_client.rs")
		if err := writeFile(clientRsPath, full.Client.WasmRs, path); err != nil {
			return nil, err
		}

		wasmDir := filepath.Join(distDir, "public", "wasm")
		if err := os.MkdirAll(wasmDir, 0o755); err != nil {
			return nil, &CompileError{File: path, Message: fmt.Sprintf("failed to create wasm directory: %v", err)}
		}
		gluePath := filepath.Join(wasmDir, stem+"_glue.js")
		if err := writeFile(gluePath, full.Client.GlueJS, path); err != nil {
			return nil, err
		}
	}

	return &CompileResult{
		SourcePath: path,
		OutputPath: outPath,
		Warnings:   full.Warnings,
		Client:     full.Client,
	}, nil
}

func copyRsToDist(path, sourceRoot, distDir string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &CompileError{File: path, Message: fmt.Sprintf("failed to read file: %v", err)}
	}
	relative, err := filepath.Rel(sourceRoot, path)
	if err != nil {
		relative = path
	}
	outPath := filepath.Join(distDir, relative)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return &CompileError{File: path, Message: fmt.Sprintf("failed to create output directory: %v", err)}
	}
	return writeFile(outPath, string(data), path)
}

func copyAssetToPublic(path, sourceRoot, distDir string) error {
	relative, err := filepath.Rel(sourceRoot, path)
	if err != nil {
		relative = path
	}
	outPath := filepath.Join(distDir, "public", relative)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return &CompileError{File: path, Message: fmt.Sprintf("failed to create output directory: %v", err)}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return &CompileError{File: path, Message: fmt.Sprintf("failed to read asset: %v", err)}
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return &CompileError{File: path, Message: fmt.Sprintf("failed to write asset: %v", err)}
	}
	return nil
}

func copyDirRecursive(src, dst string) error {
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return &CompileError{File: src, Message: fmt.Sprintf("failed to create directory: %v", err)}
	}
	entries, err := os.ReadDir(src)
	if err != nil {
		return &CompileError{File: src, Message: fmt.Sprintf("failed to read directory: %v", err)}
	}
	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())
		if entry.IsDir() {
			if err := copyDirRecursive(srcPath, dstPath); err != nil {
				return err
			}
			continue
		}
		data, err := os.ReadFile(srcPath)
		if err != nil {
			return &CompileError{File: srcPath, Message: fmt.Sprintf("failed to read file: %v", err)}
		}
		if err := os.WriteFile(dstPath, data, 0o644); err != nil {
			return &CompileError{File: srcPath, Message: fmt.Sprintf("failed to write file: %v", err)}
		}
	}
	return nil
}

func generateSubModFiles(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return &CompileError{File: dir, Message: fmt.Sprintf("failed to read directory: %v", err)}
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		subDir := filepath.Join(dir, entry.Name())
		content, merr := GenerateModFile(subDir)
		if merr != nil {
			return merr
		}
		if err := writeFile(filepath.Join(subDir, "mod.rs"), content, subDir); err != nil {
			return err
		}
		if err := generateSubModFiles(subDir); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path, content, context string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return &CompileError{File: context, Message: fmt.Sprintf("failed to write %s: %v", filepath.Base(path), err)}
	}
	return nil
}
