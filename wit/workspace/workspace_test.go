package workspace

import (
	"os"
	"path/filepath"
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestUpdateFile(t *testing.T) {
	w := New(".")

	file := w.UpdateFile("a.wit", []byte("interface i { f: func(); }"))
	if !file.Tree.Valid() {
		t.Fatalf("unexpected diagnostics: %s", file.Tree.RenderDiagnostics())
	}
	if file.Document == nil {
		t.Fatal("missing document model")
	}
	if got := w.GetFile("a.wit"); got != file {
		t.Error("GetFile returned a different FileInfo")
	}

	// Broken content replaces the old state and carries no model.
	file = w.UpdateFile("a.wit", []byte("interface i {"))
	if file.Tree.Valid() {
		t.Fatal("expected diagnostics")
	}
	if file.Document != nil {
		t.Error("document model should be nil for an invalid tree")
	}

	w.RemoveFile("a.wit")
	if w.GetFile("a.wit") != nil {
		t.Error("file still present after removal")
	}
}

func TestScanAll(t *testing.T) {
	dir := t.TempDir()
	writeFile := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	writeFile("good.wit", "package a:b;")
	writeFile("bad.wit", "garbage")
	writeFile("ignored.txt", "not idl")

	w := New(dir)
	if err := w.ScanAll(); err != nil {
		t.Fatal(err)
	}

	files := w.Files()
	if len(files) != 2 {
		t.Fatalf("got %d files, want 2", len(files))
	}
	good := w.GetFile(filepath.Join(dir, "good.wit"))
	if good == nil || !good.Tree.Valid() {
		t.Error("good.wit missing or invalid")
	}
	bad := w.GetFile(filepath.Join(dir, "bad.wit"))
	if bad == nil || bad.Tree.Valid() {
		t.Error("bad.wit missing or unexpectedly valid")
	}
}

func TestDocumentSymbols(t *testing.T) {
	w := New(".")
	file := w.UpdateFile("calc.wit", []byte(`
		interface calc {
			record entry { value: u32 }
			eval: func(e: entry) -> u32;
		}
		world app {
			import log: func(msg: string);
			export calc;
		}`))
	if file.Document == nil {
		t.Fatalf("parse failed: %s", file.Tree.RenderDiagnostics())
	}

	symbols := DocumentSymbols(file.Document)
	if len(symbols) != 2 {
		t.Fatalf("got %d top-level symbols, want 2", len(symbols))
	}

	world := symbols[0]
	if world.Name != "app" || world.Kind != protocol.SymbolKindModule {
		t.Errorf("world symbol: got %q kind %v", world.Name, world.Kind)
	}
	if len(world.Children) != 2 {
		t.Errorf("world children: got %d, want 2", len(world.Children))
	}

	iface := symbols[1]
	if iface.Name != "calc" || iface.Kind != protocol.SymbolKindInterface {
		t.Errorf("interface symbol: got %q kind %v", iface.Name, iface.Kind)
	}
	if len(iface.Children) != 2 {
		t.Fatalf("interface children: got %d, want 2", len(iface.Children))
	}
	if iface.Children[0].Name != "entry" || iface.Children[0].Kind != protocol.SymbolKindStruct {
		t.Errorf("first child: got %q kind %v", iface.Children[0].Name, iface.Children[0].Kind)
	}
	if iface.Children[1].Name != "eval" || iface.Children[1].Kind != protocol.SymbolKindFunction {
		t.Errorf("second child: got %q kind %v", iface.Children[1].Name, iface.Children[1].Kind)
	}
}
