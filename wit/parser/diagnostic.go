package parser

import "fmt"

type DiagTag int

const (
	DiagExpectedToken DiagTag = iota
	DiagExpectedTopLevelItem
	DiagExpectedWorldItem
	DiagExpectedInterfaceItem
	DiagExpectedRecordField
	DiagExpectedFlagsField
	DiagExpectedVariantCase
	DiagExpectedEnumCase
	DiagExpectedResourceMethod
	DiagExpectedType
	DiagInvalidVersion
)

// Diagnostic is one parse error, anchored at a token. Expected carries the
// specific token tag for DiagExpectedToken and is unset otherwise. The
// parser halts at the first structural error, so the list normally holds at
// most one entry.
type Diagnostic struct {
	Tag      DiagTag
	Token    TokenIndex
	Expected TokenTag
}

// Position is a 1-based line/column pair resolved from a byte offset.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// PositionOf computes the line/column of a byte offset by scanning the
// source for newlines.
func (t *Tree) PositionOf(offset uint32) Position {
	pos := Position{Line: 1, Column: 1}
	for i := uint32(0); i < offset && i < uint32(len(t.Source)); i++ {
		if t.Source[i] == '\n' {
			pos.Line++
			pos.Column = 1
		} else {
			pos.Column++
		}
	}
	return pos
}

// TokenPosition resolves the position of a token's first byte.
func (t *Tree) TokenPosition(i TokenIndex) Position {
	return t.PositionOf(t.tokens[i].Start)
}

// RenderDiagnostic formats one diagnostic as "line:col: message" using the
// anchored token's symbolic name.
func (t *Tree) RenderDiagnostic(d Diagnostic) string {
	pos := t.TokenPosition(d.Token)
	found := t.TokenTag(d.Token).String()
	switch d.Tag {
	case DiagExpectedToken:
		return fmt.Sprintf("%s: expected '%s', found '%s'", pos, d.Expected, found)
	case DiagExpectedTopLevelItem:
		return fmt.Sprintf("%s: expected 'package', 'use', 'world', or 'interface', found '%s'", pos, found)
	case DiagExpectedWorldItem:
		return fmt.Sprintf("%s: expected world item, found '%s'", pos, found)
	case DiagExpectedInterfaceItem:
		return fmt.Sprintf("%s: expected interface item, found '%s'", pos, found)
	case DiagExpectedRecordField:
		return fmt.Sprintf("%s: expected record field, found '%s'", pos, found)
	case DiagExpectedFlagsField:
		return fmt.Sprintf("%s: expected flags field, found '%s'", pos, found)
	case DiagExpectedVariantCase:
		return fmt.Sprintf("%s: expected variant case, found '%s'", pos, found)
	case DiagExpectedEnumCase:
		return fmt.Sprintf("%s: expected enum case, found '%s'", pos, found)
	case DiagExpectedResourceMethod:
		return fmt.Sprintf("%s: expected resource method or constructor, found '%s'", pos, found)
	case DiagExpectedType:
		return fmt.Sprintf("%s: expected a type, found '%s'", pos, found)
	case DiagInvalidVersion:
		return fmt.Sprintf("%s: invalid version: not valid semver", pos)
	}
	return fmt.Sprintf("%s: unknown error at '%s'", pos, found)
}

// RenderDiagnostics renders every diagnostic, one per line.
func (t *Tree) RenderDiagnostics() string {
	out := ""
	for _, d := range t.Diagnostics {
		out += t.RenderDiagnostic(d) + "\n"
	}
	return out
}
