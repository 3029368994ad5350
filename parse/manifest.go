package parse

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-set/v3"
	"gopkg.in/yaml.v3"

	"github.com/chtyim/fastcode/common"
	"github.com/chtyim/fastcode/files"
	"github.com/chtyim/fastcode/source"
)

type manifest struct {
	Imports []string       `yaml:"imports"`
	Types   []typeManifest `yaml:"types"`
}

type typeManifest struct {
	Name       string           `yaml:"name"`
	Params     []string         `yaml:"params"`
	Extends    string           `yaml:"extends"`
	Implements []string         `yaml:"implements"`
	Methods    []methodManifest `yaml:"methods"`
}

type methodManifest struct {
	Name    string   `yaml:"name"`
	Returns string   `yaml:"returns"`
	Params  []string `yaml:"params"`
	Throws  []string `yaml:"throws"`
}

// ValidationError aggregates the problems found in one manifest.
type ValidationError struct {
	Path   string
	Issues []string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: invalid manifest:", e.Path)
	for _, issue := range e.Issues {
		b.WriteString("\n  - ")
		b.WriteString(issue)
	}
	return b.String()
}

func ReadManifestFile(path string) (*source.FileDef, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadManifest(path, f)
}

// ReadManifest decodes one hierarchy manifest. Keys it does not know are
// ignored, so scenario files can carry extra sections.
func ReadManifest(path string, r io.Reader) (*source.FileDef, error) {
	var m manifest
	if err := yaml.NewDecoder(files.NewTextReader(r)).Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return &source.FileDef{Path: path}, nil
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	file := &source.FileDef{Path: path, Imports: m.Imports}
	for _, t := range m.Types {
		spec := &source.TypeSpec{
			Name:       t.Name,
			Params:     t.Params,
			Extends:    t.Extends,
			Implements: t.Implements,
		}
		for _, mm := range t.Methods {
			spec.Methods = append(spec.Methods, &source.MethodSpec{
				Name:    mm.Name,
				Returns: mm.Returns,
				Params:  mm.Params,
				Throws:  mm.Throws,
			})
		}
		file.Types = append(file.Types, spec)
	}

	if issues := validate(file); len(issues) > 0 {
		return nil, &ValidationError{Path: path, Issues: issues}
	}
	return file, nil
}

func validate(file *source.FileDef) []string {
	var issues []string
	names := set.New[string](0)
	for i, t := range file.Types {
		if !common.QualifiedName(t.Name).IsValid() {
			issues = append(issues, fmt.Sprintf("types[%d]: invalid name %q", i, t.Name))
			continue
		}
		if names.Contains(t.Name) {
			issues = append(issues, fmt.Sprintf("%s: declared twice", t.Name))
		}
		names.Insert(t.Name)

		params := set.New[string](0)
		for _, p := range t.Params {
			if !common.NewIdentifier(p).IsValid() {
				issues = append(issues, fmt.Sprintf("%s: invalid type parameter %q", t.Name, p))
			}
			if params.Contains(p) {
				issues = append(issues, fmt.Sprintf("%s: type parameter %s declared twice", t.Name, p))
			}
			params.Insert(p)
		}

		methods := set.New[string](0)
		for _, m := range t.Methods {
			if !common.NewIdentifier(m.Name).IsValid() {
				issues = append(issues, fmt.Sprintf("%s: invalid method name %q", t.Name, m.Name))
			}
			if methods.Contains(m.Name) {
				issues = append(issues, fmt.Sprintf("%s.%s: declared twice", t.Name, m.Name))
			}
			methods.Insert(m.Name)
		}
	}
	return issues
}
