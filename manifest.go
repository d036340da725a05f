package vex

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/vexlint/vex/internal/langs"
)

const manifestFileName = "vex.toml"

// DefaultManifestContent is written by Init for new projects.
const DefaultManifestContent = `ignore = [ "vex.toml", "vexes/", ".git/", ".gitignore" ]
`

var defaultIgnorePatterns = []string{"vex.toml", "vexes/", ".git/", ".gitignore"}

// rawManifest is the literal TOML shape: keys `ignore`, `allow`,
// `queries_dir`, `associations`, and an optional `[args]` table keyed by
// lint id. go-toml's DisallowUnknownFields rejects any other key.
type rawManifest struct {
	Associations map[string]string         `toml:"associations"`
	QueriesDir   string                     `toml:"queries_dir"`
	Ignore       []string                   `toml:"ignore"`
	Allow        []string                   `toml:"allow"`
	Args         map[string]map[string]any  `toml:"args"`
}

// Manifest is a project's decoded, validated vex.toml: its queries
// directory, file associations, and ignore/allow glob lists.
type Manifest struct {
	QueriesDir   string
	Ignore       []FilePattern
	Allow        []FilePattern
	Associations Associations
	Args         map[string]map[string]any
}

// ParseManifest decodes and validates raw TOML bytes into a Manifest.
// Unknown top-level keys are rejected.
func ParseManifest(data []byte) (*Manifest, error) {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var raw rawManifest
	if err := dec.Decode(&raw); err != nil {
		return nil, &ManifestParseError{Cause: err}
	}

	queriesDir := raw.QueriesDir
	if queriesDir == "" {
		queriesDir = "vexes"
	}

	ignorePatterns := raw.Ignore
	if ignorePatterns == nil {
		ignorePatterns = defaultIgnorePatterns
	}
	ignore, err := compileAll(ignorePatterns)
	if err != nil {
		return nil, err
	}
	allow, err := compileAll(raw.Allow)
	if err != nil {
		return nil, err
	}

	associations := BaseAssociations()
	for glob, language := range raw.Associations {
		pattern, err := NewRawFilePattern(glob).Compile()
		if err != nil {
			return nil, err
		}
		langValue, ok := langs.Lookup(strings.TrimSpace(language))
		if !ok {
			return nil, &UnknownLanguageError{Name: language}
		}
		associations.Insert([]FilePattern{pattern}, langValue)
	}

	return &Manifest{
		QueriesDir:   queriesDir,
		Ignore:       ignore,
		Allow:        allow,
		Associations: associations,
		Args:         raw.Args,
	}, nil
}

func compileAll(raws []string) ([]FilePattern, error) {
	patterns := make([]FilePattern, 0, len(raws))
	for _, raw := range raws {
		pattern, err := NewRawFilePattern(raw).Compile()
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, pattern)
	}
	return patterns, nil
}

// Init writes a fresh vex.toml under dir, failing with AlreadyInitedError
// if a manifest is already found in dir or any of its ancestors.
func Init(dir string) error {
	if foundRoot, _, err := acquireManifestIn(dir); err == nil {
		return &AlreadyInitedError{FoundRoot: foundRoot}
	} else if _, ok := err.(*ManifestNotFoundError); !ok {
		return err
	}

	path := filepath.Join(dir, manifestFileName)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return &IOError{Path: NewPrettyPath(manifestFileName), Action: IOWrite, Cause: err}
	}
	defer f.Close()
	if _, err := f.WriteString(DefaultManifestContent); err != nil {
		return &IOError{Path: NewPrettyPath(manifestFileName), Action: IOWrite, Cause: err}
	}
	return nil
}

// Acquire walks up from dir looking for vex.toml, parsing the first one it
// finds. Returns the project root (the directory containing the manifest)
// and the parsed Manifest.
func Acquire(dir string) (root string, manifest *Manifest, err error) {
	return acquireManifestIn(dir)
}

func acquireManifestIn(dir string) (string, *Manifest, error) {
	root := dir
	for {
		path := filepath.Join(root, manifestFileName)
		data, err := os.ReadFile(path)
		if err == nil {
			manifest, err := ParseManifest(data)
			if err != nil {
				return "", nil, err
			}
			return root, manifest, nil
		}
		if !os.IsNotExist(err) {
			return "", nil, &IOError{Path: NewPrettyPath(manifestFileName), Action: IORead, Cause: err}
		}
		parent := filepath.Dir(root)
		if parent == root {
			return "", nil, &ManifestNotFoundError{}
		}
		root = parent
	}
}

// VexesDir returns the absolute path of the manifest's configured
// scriptlet directory, rooted at projectRoot.
func (m *Manifest) VexesDir(projectRoot string) string {
	return filepath.Join(projectRoot, filepath.FromSlash(m.QueriesDir))
}
