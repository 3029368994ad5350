package parse

import (
	"fmt"
	"strings"
	"text/scanner"
	"unicode"

	"github.com/hashicorp/go-set/v3"

	. "github.com/chtyim/fastcode/common"
	"github.com/chtyim/fastcode/tree"
	"github.com/chtyim/fastcode/typetoken"
)

// Scope resolves the names used in a type expression.
type Scope interface {
	LookupTypeVar(name Identifier) (*tree.TypeVar, bool)
	LookupIdentity(name QualifiedName) tree.Identity
}

// Go syntax for shapes the type model does not have.
var unsupportedKeywords = set.From([]string{"chan", "func", "interface", "map", "struct"})

// ParseType parses a type expression. Arguments go in brackets or in angle
// brackets, so "Pair[Map[String, X], X]" and "Pair<Map<String,X>,X>" are the
// same type, and names may be qualified, as in "java.io.IOException".
func ParseType(src string, scope Scope) (tree.Type, error) {
	return Try(func() tree.Type {
		return MustParseType(src, scope)
	})
}

func MustParseType(src string, scope Scope) tree.Type {
	p := newTypeParser(src, scope)
	ty := p.readType()
	if p.tok != scanner.EOF {
		p.unexpected("end of type")
	}
	return ty
}

type typeParser struct {
	src     string
	scope   Scope
	scanner scanner.Scanner
	tok     rune
}

func newTypeParser(src string, scope Scope) *typeParser {
	p := &typeParser{src: src, scope: scope}
	p.scanner.Init(strings.NewReader(src))
	p.scanner.Mode = scanner.ScanIdents
	p.scanner.IsIdentRune = isIdentRune
	p.scanner.Error = func(s *scanner.Scanner, msg string) {
		panic(fmt.Errorf("type %q: %v: %s", src, s.Pos(), msg))
	}
	p.next()
	return p
}

func isIdentRune(ch rune, i int) bool {
	return ch == '_' || ch == '$' || unicode.IsLetter(ch) || unicode.IsDigit(ch) && i > 0
}

func (p *typeParser) next() {
	p.tok = p.scanner.Scan()
}

func (p *typeParser) readType() tree.Type {
	switch {
	case p.tok == scanner.Ident && unsupportedKeywords.Contains(p.scanner.TokenText()),
		p.tok == '[', p.tok == '*', p.tok == '?', p.tok == '(':
		p.unsupported("%q", p.scanner.TokenText())
	case p.tok != scanner.Ident:
		p.unexpected("type")
	}

	name := p.readQualifiedName()
	args := p.readArgs(name)
	if p.tok == '[' {
		p.unsupported("array of %v", name)
	}

	if !strings.Contains(name.String(), ".") {
		if tv, ok := p.scope.LookupTypeVar(NewIdentifier(name.String())); ok {
			if len(args) > 0 {
				p.unsupported("type variable %v cannot take arguments", name)
			}
			return tv
		}
	}
	return tree.NewConcreteType(p.scope.LookupIdentity(name), args...)
}

func (p *typeParser) readQualifiedName() QualifiedName {
	parts := []string{p.scanner.TokenText()}
	p.next()
	for p.tok == '.' {
		p.next()
		if p.tok != scanner.Ident {
			p.unexpected("name")
		}
		parts = append(parts, p.scanner.TokenText())
		p.next()
	}
	return QualifiedName(strings.Join(parts, "."))
}

func (p *typeParser) readArgs(name QualifiedName) []tree.Type {
	var closer rune
	switch p.tok {
	case '[':
		closer = ']'
	case '<':
		closer = '>'
	default:
		return nil
	}
	p.next()
	if p.tok == closer {
		if closer == ']' {
			p.unsupported("array of %v", name)
		}
		p.unexpected("type argument")
	}

	var args []tree.Type
	for {
		args = append(args, p.readType())
		if p.tok != ',' {
			break
		}
		p.next()
	}

	if p.tok != closer {
		p.unexpected(fmt.Sprintf("',' or %q", closer))
	}
	p.next()
	return args
}

func (p *typeParser) found() string {
	if p.tok == scanner.EOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", p.scanner.TokenText())
}

func (p *typeParser) unexpected(what string) {
	panic(fmt.Errorf("type %q: %v: expected %s, found %s", p.src, p.scanner.Position, what, p.found()))
}

func (p *typeParser) unsupported(format string, args ...interface{}) {
	typetoken.DebugDump(p.src, p.scanner.Position)
	panic(fmt.Errorf("%w: %s at %v in %q", typetoken.ErrUnsupportedTypeExpression, fmt.Sprintf(format, args...), p.scanner.Position, p.src))
}
