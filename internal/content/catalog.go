// Package content loads and validates lesson content packs.
package content

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"

	"github.com/rheo/rheo/internal/exercise"
)

//go:embed catalog.json
var defaultPack []byte

//go:embed schema.json
var packSchema []byte

// SupportedMajor is the pack format major version this build reads.
const SupportedMajor = "v1"

// FallbackLanguage is used when a lesson has no content in the
// requested language.
const FallbackLanguage = "python"

var (
	ErrUnknownNode         = errors.New("no content for node")
	ErrIncompatibleVersion = errors.New("incompatible content pack version")
)

// Language is a lesson language offered by the pack.
type Language struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Catalog is a validated content pack.
type Catalog struct {
	Version   string
	Languages []Language
	// lessons maps language → node id → exercises.
	lessons map[string]map[int][]exercise.Descriptor
}

type packDoc struct {
	Version   string                                       `json:"version"`
	Languages []Language                                   `json:"languages"`
	Lessons   map[string]map[string][]exercise.Descriptor `json:"lessons"`
}

// Parse validates raw pack JSON and builds a Catalog.
func Parse(raw []byte) (*Catalog, error) {
	if err := validateSchema(raw); err != nil {
		return nil, err
	}

	var doc packDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode content pack: %w", err)
	}
	if !semver.IsValid(doc.Version) || semver.Major(doc.Version) != SupportedMajor {
		return nil, fmt.Errorf("%w: %q (want %s.x)", ErrIncompatibleVersion, doc.Version, SupportedMajor)
	}

	c := &Catalog{
		Version:   doc.Version,
		Languages: doc.Languages,
		lessons:   make(map[string]map[int][]exercise.Descriptor, len(doc.Lessons)),
	}
	var errs []error
	for lang, nodes := range doc.Lessons {
		byNode := make(map[int][]exercise.Descriptor, len(nodes))
		for key, exs := range nodes {
			id, err := strconv.Atoi(key)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s/%s: bad node id", lang, key))
				continue
			}
			for i, ex := range exs {
				if err := ex.Validate(); err != nil {
					errs = append(errs, fmt.Errorf("%s/%d/%d: %w", lang, id, i, err))
				}
			}
			byNode[id] = exs
		}
		c.lessons[lang] = byNode
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid content pack: %w", errors.Join(errs...))
	}
	return c, nil
}

// Load reads and parses a pack from path.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content pack: %w", err)
	}
	return Parse(raw)
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
	defaultErr  error
)

// Default returns the embedded pack.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCat, defaultErr = Parse(defaultPack)
	})
	return defaultCat, defaultErr
}

// Has reports whether lang has exercises for nodeID, without fallback.
func (c *Catalog) Has(nodeID int, lang string) bool {
	return len(c.lessons[lang][nodeID]) > 0
}

// Exercises returns the lesson for nodeID in lang. Missing languages
// fall back to FallbackLanguage; nodes without any content get a single
// placeholder exercise.
func (c *Catalog) Exercises(nodeID int, lang string) []exercise.Descriptor {
	if exs, err := c.Lookup(nodeID, lang); err == nil {
		return exs
	}
	return []exercise.Descriptor{comingSoon()}
}

// Lookup is Exercises without the placeholder: it returns ErrUnknownNode
// when neither lang nor the fallback has content.
func (c *Catalog) Lookup(nodeID int, lang string) ([]exercise.Descriptor, error) {
	for _, l := range []string{lang, FallbackLanguage} {
		if exs := c.lessons[l][nodeID]; len(exs) > 0 {
			out := make([]exercise.Descriptor, len(exs))
			copy(out, exs)
			return out, nil
		}
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownNode, nodeID)
}

// Nodes returns the node ids with content in lang, ascending.
func (c *Catalog) Nodes(lang string) []int {
	ids := make([]int, 0, len(c.lessons[lang]))
	for id := range c.lessons[lang] {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Language returns the language with id.
func (c *Catalog) Language(id string) (Language, bool) {
	for _, l := range c.Languages {
		if l.ID == id {
			return l, true
		}
	}
	return Language{}, false
}

// Count returns the number of exercises per kind in lang.
func (c *Catalog) Count(lang string) map[exercise.Kind]int {
	out := make(map[exercise.Kind]int)
	for _, exs := range c.lessons[lang] {
		for _, ex := range exs {
			out[ex.Kind()]++
		}
	}
	return out
}

func comingSoon() exercise.Descriptor {
	return exercise.New(exercise.Trace{
		Prompt:  "Coming soon! This lesson is being prepared.",
		Code:    []exercise.CodeLine{{Text: "# New content coming soon...", Highlight: true}},
		Options: []string{"OK"},
		Correct: 0,
	})
}

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

const schemaURL = "schema://rheo/content-pack.json"

func validateSchema(raw []byte) error {
	schemaOnce.Do(func() {
		var def any
		if err := json.Unmarshal(packSchema, &def); err != nil {
			schemaErr = fmt.Errorf("parse pack schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, def); err != nil {
			schemaErr = fmt.Errorf("add pack schema: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(schemaURL)
	})
	if schemaErr != nil {
		return fmt.Errorf("compile pack schema: %w", schemaErr)
	}

	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("content pack is not valid JSON: %w", err)
	}
	if err := compiledSchema.Validate(parsed); err != nil {
		return fmt.Errorf("content pack schema: %w", err)
	}
	return nil
}
