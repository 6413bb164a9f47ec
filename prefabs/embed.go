package prefabs

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

// LoadScript reads an embedded tengo script.
func LoadScript(name string) ([]byte, error) {
	return ScriptsFS.ReadFile(cleanScriptPath(name))
}

//go:embed templates/*.yaml
var TemplatesFS embed.FS

// Load reads a template file, preferring a disk copy under prefabs/ over
// the embedded defaults so edited templates win without a rebuild.
func Load(name string) ([]byte, error) {
	clean := cleanTemplatePath(name)
	if data, err := os.ReadFile(diskTemplatePath(clean)); err == nil {
		return data, nil
	}
	return TemplatesFS.ReadFile(clean)
}

// TemplateNames lists the embedded template files.
func TemplateNames() ([]string, error) {
	entries, err := TemplatesFS.ReadDir("templates")
	if err != nil {
		return nil, fmt.Errorf("prefabs: list templates: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// ModTime returns the disk modification time of a template, if it has one.
func ModTime(name string) (time.Time, bool) {
	info, err := os.Stat(diskTemplatePath(cleanTemplatePath(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func cleanTemplatePath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		s = after
	}
	if !strings.HasPrefix(s, "templates/") {
		s = "templates/" + s
	}
	return s
}

func cleanScriptPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		s = after
	}
	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}
	return fmt.Sprintf("scripts/%s", s)
}

func diskTemplatePath(clean string) string {
	return filepath.Join("prefabs", filepath.FromSlash(clean))
}
