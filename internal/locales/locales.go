// Package locales loads country translation tables from locale files.
//
// A locale file uses the Rails i18n layout, in YAML or TOML:
//
//	"en-US":
//	  countries:
//	    "ES": "Spain"
//
// Several files may contribute to the same locale. The en-US and cz tables
// ship embedded in the binary, see Bundled.
package locales

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

//go:embed data/*.yml
var bundled embed.FS

// Table maps locale -> country code -> localized name
type Table map[string]map[string]string

// localeFile is the on-disk shape of one locale inside a file
type localeFile struct {
	Countries map[string]string `yaml:"countries" toml:"countries"`
}

// Bundled returns the translation tables embedded in the binary
func Bundled() (Table, error) {
	return Load(bundled, "data")
}

// LoadDir reads every locale file from a directory on disk
func LoadDir(dir string) (Table, error) {
	return Load(os.DirFS(dir), ".")
}

// LoadDirOrBundled reads dir when it exists and falls back to the bundled tables
// when dir is empty or missing. The second result names where the data came from.
func LoadDirOrBundled(dir string) (Table, string, error) {
	if dir != "" {
		if _, err := os.Stat(dir); err == nil {
			table, err := LoadDir(dir)
			return table, dir, err
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, dir, fmt.Errorf("failed to open locale directory %s: %w", dir, err)
		}
	}
	table, err := Bundled()
	return table, "bundled", err
}

// Load reads every *.yml, *.yaml and *.toml file in dir of fsys into one Table.
// Files with other extensions are ignored; a directory with no locale files is an error.
func Load(fsys fs.FS, dir string) (Table, error) {
	dirEntries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read locale directory %s: %w", dir, err)
	}

	table := Table{}
	loaded := 0
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}

		name := de.Name()
		ext := strings.ToLower(path.Ext(name))
		if ext != ".yml" && ext != ".yaml" && ext != ".toml" {
			continue
		}

		data, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read locale file %s: %w", name, err)
		}

		if err := table.parse(name, ext, data); err != nil {
			return nil, err
		}
		loaded++
	}

	if loaded == 0 {
		return nil, fmt.Errorf("no locale files found in %s", dir)
	}
	return table, nil
}

// parse decodes one file and merges it into the table
func (t Table) parse(name, ext string, data []byte) error {
	doc := map[string]localeFile{}

	var err error
	if ext == ".toml" {
		err = toml.Unmarshal(data, &doc)
	} else {
		err = yaml.Unmarshal(data, &doc)
	}
	if err != nil {
		return fmt.Errorf("failed to parse locale file %s: %w", name, err)
	}

	for locale, content := range doc {
		locale = strings.TrimSpace(locale)
		if locale == "" {
			return fmt.Errorf("locale file %s: empty locale key", name)
		}
		for code, country := range content.Countries {
			if strings.TrimSpace(country) == "" {
				return fmt.Errorf("locale file %s: empty name for %s/%s", name, locale, code)
			}
			t.Set(locale, code, country)
		}
	}
	return nil
}

// Set adds or replaces one translation. Codes are stored upper-case.
func (t Table) Set(locale, code, name string) {
	countries, ok := t[locale]
	if !ok {
		countries = map[string]string{}
		t[locale] = countries
	}
	countries[strings.ToUpper(strings.TrimSpace(code))] = name
}

// Locales returns the locales present in the table, sorted
func (t Table) Locales() []string {
	names := make([]string, 0, len(t))
	for locale := range t {
		names = append(names, locale)
	}
	sort.Strings(names)
	return names
}

// Countries returns a copy of one locale's code -> name map
func (t Table) Countries(locale string) (map[string]string, bool) {
	countries, ok := t[locale]
	if !ok {
		return nil, false
	}
	out := make(map[string]string, len(countries))
	for code, name := range countries {
		out[code] = name
	}
	return out, true
}
