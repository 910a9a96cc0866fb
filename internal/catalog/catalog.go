package catalog

import "strings"

// Library is a single installable entry in the catalog.
type Library struct {
	Name    string `yaml:"name"`
	Default bool   `yaml:"default,omitempty"` // pre-checked in the form
}

// Category groups related libraries under a display title.
type Category struct {
	Name      string    `yaml:"name"`
	Libraries []Library `yaml:"libraries"`
}

// Catalog is the full set of selectable categories.
type Catalog struct {
	Categories []Category `yaml:"categories"`
}

// Default returns the built-in library catalog.
func Default() Catalog {
	return Catalog{Categories: []Category{
		{Name: "Math/Data Science", Libraries: []Library{
			{Name: "numpy"},
			{Name: "pandas"},
			{Name: "scikit-learn"},
		}},
		{Name: "Web Development", Libraries: []Library{
			{Name: "flask"},
			{Name: "beautifulsoup4"},
			{Name: "requests"},
			{Name: "streamlit"},
		}},
		{Name: "Visualization", Libraries: []Library{
			{Name: "matplotlib"},
		}},
		{Name: "GUI Development", Libraries: []Library{
			{Name: "PyQt5"},
			{Name: "PyQt5Designer"},
		}},
		{Name: "Database", Libraries: []Library{
			{Name: "sqlalchemy"},
			{Name: "psycopg2"},
		}},
		{Name: "Software Development Tools", Libraries: []Library{
			{Name: "pyinstaller"},
			{Name: "pipreqs", Default: true},
		}},
	}}
}

// Names returns all library names in catalog order.
func (c Catalog) Names() []string {
	var names []string
	for _, cat := range c.Categories {
		for _, lib := range cat.Libraries {
			names = append(names, lib.Name)
		}
	}
	return names
}

// Defaults returns the names of libraries pre-checked in the form.
func (c Catalog) Defaults() []string {
	var names []string
	for _, cat := range c.Categories {
		for _, lib := range cat.Libraries {
			if lib.Default {
				names = append(names, lib.Name)
			}
		}
	}
	return names
}

// Find returns the category containing name, or nil.
func (c Catalog) Find(name string) *Category {
	for i := range c.Categories {
		for _, lib := range c.Categories[i].Libraries {
			if lib.Name == name {
				return &c.Categories[i]
			}
		}
	}
	return nil
}

// ParseCustom splits free-text input into library names. Entries may be
// separated by commas or newlines; surrounding whitespace is trimmed and
// empty entries are dropped.
func ParseCustom(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '\n'
	})

	var names []string
	for _, f := range fields {
		if name := strings.TrimSpace(f); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// Union merges selected and custom library names, de-duplicating while
// preserving first-seen order. A name appearing in both sets installs once.
func Union(selected, custom []string) []string {
	seen := make(map[string]bool, len(selected)+len(custom))
	var out []string
	for _, name := range append(append([]string{}, selected...), custom...) {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}
