// Package langs resolves the closed set of supported languages, maps file
// extensions onto them, and lazily loads their tree-sitter grammars. It also
// accepts externally-registered grammars under a caller-chosen name, for
// languages outside the built-in set.
package langs

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/php"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/ruby"
	"github.com/smacker/go-tree-sitter/rust"
	ts "github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Language identifies a supported language by name: one of the built-in
// names below, or an external name registered at runtime via Register.
// Two Languages are equal iff their names are equal.
type Language struct {
	name string
}

// Builtin language names.
const (
	Go         = "go"
	TypeScript = "typescript"
	JavaScript = "javascript"
	Python     = "python"
	Rust       = "rust"
	C          = "c"
	Cpp        = "cpp"
	Java       = "java"
	PHP        = "php"
	Ruby       = "ruby"
)

// Of returns the Language for name, without validating that it is
// registered. Use Lookup to check registration.
func Of(name string) Language { return Language{name: name} }

func (l Language) Name() string { return l.name }
func (l Language) String() string { return l.name }

// IsBuiltin reports whether l is one of the fixed built-in languages, as
// opposed to one registered via Register.
func (l Language) IsBuiltin() bool {
	initGrammars()
	_, ok := builtinGrammars[l.name]
	return ok
}

// extToLanguage maps file extensions (with leading dot, lowercase) to
// canonical language names.
var extToLanguage = map[string]string{
	".go":   Go,
	".ts":   TypeScript,
	".tsx":  TypeScript,
	".js":   JavaScript,
	".jsx":  JavaScript,
	".py":   Python,
	".rs":   Rust,
	".c":    C,
	".h":    C,
	".cpp":  Cpp,
	".cc":   Cpp,
	".cxx":  Cpp,
	".hpp":  Cpp,
	".java": Java,
	".php":  PHP,
	".rb":   Ruby,
}

var (
	grammarsOnce    sync.Once
	builtinGrammars map[string]*sitter.Language

	externalMu sync.RWMutex
	external   = map[string]*sitter.Language{}
)

func initGrammars() {
	grammarsOnce.Do(func() {
		builtinGrammars = map[string]*sitter.Language{
			Go:         golang.GetLanguage(),
			TypeScript: ts.GetLanguage(),
			JavaScript: javascript.GetLanguage(),
			Python:     python.GetLanguage(),
			Rust:       rust.GetLanguage(),
			C:          c.GetLanguage(),
			Cpp:        cpp.GetLanguage(),
			Java:       java.GetLanguage(),
			PHP:        php.GetLanguage(),
			Ruby:       ruby.GetLanguage(),
		}
	})
}

// ForExtension returns the canonical Language for a file path based on its
// extension. Returns (Language{}, false) if the extension is not mapped to
// any built-in or externally-registered language.
func ForExtension(path string) (Language, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if name, ok := extToLanguage[ext]; ok {
		return Language{name: name}, true
	}
	externalMu.RLock()
	defer externalMu.RUnlock()
	for name := range external {
		if extByExternalName[name] == ext {
			return Language{name: name}, true
		}
	}
	return Language{}, false
}

// extByExternalName records the extension a Register call associated with
// an external language, so ForExtension can recognize it.
var extByExternalName = map[string]string{}

// Register adds an external grammar under name, associated with extension
// ext (including the leading dot). It is the escape hatch for languages
// outside the built-in set; name must not collide with a built-in name.
func Register(name, ext string, grammar *sitter.Language) error {
	initGrammars()
	if _, ok := builtinGrammars[name]; ok {
		return fmt.Errorf("langs: %q is a built-in language name", name)
	}
	externalMu.Lock()
	defer externalMu.Unlock()
	external[name] = grammar
	extByExternalName[name] = strings.ToLower(ext)
	return nil
}

// Grammar returns the tree-sitter Language for lang. Returns (nil, false) if
// lang is neither built in nor registered.
func Grammar(lang Language) (*sitter.Language, bool) {
	initGrammars()
	if g, ok := builtinGrammars[lang.name]; ok {
		return g, true
	}
	externalMu.RLock()
	defer externalMu.RUnlock()
	g, ok := external[lang.name]
	return g, ok
}

// Lookup parses a language name into a Language, failing if it names
// neither a built-in nor a registered external grammar.
func Lookup(name string) (Language, bool) {
	initGrammars()
	if _, ok := builtinGrammars[name]; ok {
		return Language{name: name}, true
	}
	externalMu.RLock()
	defer externalMu.RUnlock()
	if _, ok := external[name]; ok {
		return Language{name: name}, true
	}
	return Language{}, false
}
