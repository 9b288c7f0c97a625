package wit

import (
	"testing"

	"github.com/dhamidi/witc/wit/parser"
)

const sampleSource = `package docs:calculator@0.1.0;

use docs:shared/types@0.1.0 as shared;

interface calculate {
	type amount = u32;
	record entry { op: string, value: amount }
	enum op { add, sub }
	resource session {
		constructor(seed: u32);
		eval: func(e: entry) -> result<amount, string>;
		reset: static func();
	}
	eval-expression: func(expr: string) -> result<u32, string>;
}

world calculator {
	import print: func(msg: string);
	export calculate;
	include docs:shared/base@0.1.0;
}
`

func buildSample(t *testing.T) *Document {
	t.Helper()
	tree := parser.Parse([]byte(sampleSource))
	if !tree.Valid() {
		t.Fatalf("parse failed: %s", tree.RenderDiagnostics())
	}
	doc, err := BuildDocument(tree)
	if err != nil {
		t.Fatalf("build document: %v", err)
	}
	return doc
}

func TestBuildDocumentPackage(t *testing.T) {
	doc := buildSample(t)
	if doc.Package == nil {
		t.Fatal("missing package")
	}
	if doc.Package.Namespace != "docs" || doc.Package.Name != "calculator" || doc.Package.Version != "0.1.0" {
		t.Errorf("got %+v", *doc.Package)
	}
}

func TestBuildDocumentUses(t *testing.T) {
	doc := buildSample(t)
	if len(doc.Uses) != 1 {
		t.Fatalf("got %d uses, want 1", len(doc.Uses))
	}
	use := doc.Uses[0]
	if use.Path.Namespace != "docs" || use.Path.Package != "shared" || use.Path.Name != "types" {
		t.Errorf("path: got %+v", use.Path)
	}
	if use.Alias != "shared" {
		t.Errorf("alias: got %q", use.Alias)
	}
}

func TestBuildDocumentInterface(t *testing.T) {
	doc := buildSample(t)
	if len(doc.Interfaces) != 1 {
		t.Fatalf("got %d interfaces, want 1", len(doc.Interfaces))
	}
	iface := doc.Interfaces[0]
	if iface.Name != "calculate" {
		t.Errorf("name: got %q", iface.Name)
	}
	if len(iface.Funcs) != 1 || iface.Funcs[0].Name != "eval-expression" {
		t.Errorf("funcs: got %+v", iface.Funcs)
	}

	kinds := map[string]TypeDefKind{}
	for _, def := range iface.Types {
		kinds[def.Name] = def.Kind
	}
	want := map[string]TypeDefKind{
		"amount":  KindAlias,
		"entry":   KindRecord,
		"op":      KindEnum,
		"session": KindResource,
	}
	for name, kind := range want {
		if kinds[name] != kind {
			t.Errorf("%s: got %q, want %q", name, kinds[name], kind)
		}
	}

	for _, def := range iface.Types {
		if def.Kind != KindResource {
			continue
		}
		if len(def.Members) != 3 {
			t.Fatalf("got %d resource members, want 3", len(def.Members))
		}
		if def.Members[0].Kind != MemberConstructor {
			t.Errorf("first member: got %q, want constructor", def.Members[0].Kind)
		}
		if def.Members[2].Name != "reset" {
			t.Errorf("third member: got %q, want reset", def.Members[2].Name)
		}
	}
}

func TestBuildDocumentWorld(t *testing.T) {
	doc := buildSample(t)
	if len(doc.Worlds) != 1 {
		t.Fatalf("got %d worlds, want 1", len(doc.Worlds))
	}
	world := doc.Worlds[0]
	if world.Name != "calculator" {
		t.Errorf("name: got %q", world.Name)
	}
	if len(world.Imports) != 1 || world.Imports[0].Kind != MemberFunc {
		t.Errorf("imports: got %+v", world.Imports)
	}
	if len(world.Exports) != 1 || world.Exports[0].Kind != MemberPath || world.Exports[0].Name != "calculate" {
		t.Errorf("exports: got %+v", world.Exports)
	}
	if len(world.Includes) != 1 || world.Includes[0].Name != "base" {
		t.Errorf("includes: got %+v", world.Includes)
	}
}

func TestBuildDocumentRejectsInvalid(t *testing.T) {
	tree := parser.Parse([]byte("world w {"))
	if _, err := BuildDocument(tree); err != ErrInvalidTree {
		t.Fatalf("got %v, want ErrInvalidTree", err)
	}
}

func TestMemberPositions(t *testing.T) {
	doc := buildSample(t)
	iface := doc.Interfaces[0]
	if iface.Pos.Line != 5 {
		t.Errorf("interface line: got %d, want 5", iface.Pos.Line)
	}
}
