package format

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dhamidi/witc/wit/parser"
)

func dumpWIT(t *testing.T, input string) string {
	t.Helper()
	tree := parser.Parse([]byte(input))
	if !tree.Valid() {
		t.Fatalf("parse failed: %s", tree.RenderDiagnostics())
	}
	var buf bytes.Buffer
	if err := NewWITEncoder(&buf).Encode(tree); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.String()
}

// tagStructure walks the tree depth-first from the root and records each
// node's tag, giving a comparable shape for round-trip checks.
func tagStructure(t *parser.Tree) []parser.NodeTag {
	var tags []parser.NodeTag
	var walk func(n parser.NodeIndex)
	walk = func(n parser.NodeIndex) {
		tags = append(tags, t.Tag(n))
		for _, child := range ChildNodes(t, n) {
			walk(child)
		}
	}
	for _, item := range t.RootItems() {
		walk(item)
	}
	return tags
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"package ns:name@1.2.3;",
		"package ns:name;",
		"use ns:pkg/dep@2.0.0-rc.1 as dep;",
		"use dom:css/styles as styles;",
		`world host {
			import log: func(msg: string);
			import wasi: interface { poll: func() -> u32; }
			export run: func() -> result;
			export ns:pkg/http;
			include ns:pkg/base with { x as y };
			include plain;
		}`,
		`interface types {
			use shared.{ id };
			type handle = u64;
			record point { x: s32, y: s32 }
			flags perms { read, write, exec }
			enum level { low, high }
			variant value { num(float64), text(string), none }
			resource empty;
			resource file {
				constructor(path: string);
				read: func(n: u64) -> result<list<u8>, string>;
				stat: static func() -> tuple<u64, u64>;
			}
			lookup: func(id: u64) -> option<borrow<file>>;
			pick: func() -> result<_, string>;
		}`,
	}

	for _, input := range inputs {
		name := strings.Fields(input)[0] + " " + strings.Fields(input)[1]
		t.Run(name, func(t *testing.T) {
			first := parser.Parse([]byte(input))
			if !first.Valid() {
				t.Fatalf("parse failed: %s", first.RenderDiagnostics())
			}
			dump := dumpWIT(t, input)

			second := parser.Parse([]byte(dump))
			if !second.Valid() {
				t.Fatalf("canonical dump does not re-parse: %s\n%s", second.RenderDiagnostics(), dump)
			}

			before, after := tagStructure(first), tagStructure(second)
			if len(before) != len(after) {
				t.Fatalf("structure changed: %d nodes before, %d after\n%s", len(before), len(after), dump)
			}
			for i := range before {
				if before[i] != after[i] {
					t.Errorf("node %d: %v before, %v after", i, before[i], after[i])
				}
			}

			// The canonical form is a fixed point: dumping it again must
			// reproduce it byte for byte.
			redump := dumpWIT(t, dump)
			if redump != dump {
				t.Errorf("canonical dump is not idempotent:\n--- first\n%s\n--- second\n%s", dump, redump)
			}
		})
	}
}

func TestDumpRefusesInvalidTree(t *testing.T) {
	tree := parser.Parse([]byte("world w {"))
	if tree.Valid() {
		t.Fatal("expected diagnostics")
	}
	var buf bytes.Buffer
	if err := NewWITEncoder(&buf).Encode(tree); err == nil {
		t.Fatal("expected an error for a tree with diagnostics")
	}
}

func TestJSONEncoder(t *testing.T) {
	tree := parser.Parse([]byte("interface i { f: func(a: u32) -> bool; }"))
	if !tree.Valid() {
		t.Fatalf("parse failed: %s", tree.RenderDiagnostics())
	}
	var buf bytes.Buffer
	if err := NewTreeJSONEncoder(&buf).Encode(tree); err != nil {
		t.Fatalf("encode: %v", err)
	}
	out := buf.String()
	for _, want := range []string{`"InterfaceDecl"`, `"FuncItem"`, `"FuncType"`, `"Param"`, `"TypePrimitive"`, `"token": "i"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s:\n%s", want, out)
		}
	}
}
