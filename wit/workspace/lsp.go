package workspace

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/witc/wit"
	"github.com/dhamidi/witc/wit/parser"
)

const lsName = "witc"

type LSPServer struct {
	workspace *Workspace
	handler   protocol.Handler
	server    *server.Server
	version   string
}

func NewLSPServer(version string) *LSPServer {
	ls := &LSPServer{
		version: version,
	}

	ls.handler = protocol.Handler{
		Initialize:                 ls.initialize,
		Initialized:                ls.initialized,
		Shutdown:                   ls.shutdown,
		SetTrace:                   ls.setTrace,
		TextDocumentDidOpen:        ls.textDocumentDidOpen,
		TextDocumentDidChange:      ls.textDocumentDidChange,
		TextDocumentDidClose:       ls.textDocumentDidClose,
		TextDocumentDidSave:        ls.textDocumentDidSave,
		TextDocumentDocumentSymbol: ls.textDocumentDocumentSymbol,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}

	ls.workspace = New(rootDir)

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return ls.workspace.ScanAll()
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	file := ls.workspace.UpdateFile(path, []byte(params.TextDocument.Text))
	ls.publishDiagnostics(ctx, params.TextDocument.URI, file)
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			file := ls.workspace.UpdateFile(path, []byte(textChange.Text))
			ls.publishDiagnostics(ctx, params.TextDocument.URI, file)
		}
	}
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	var file *FileInfo
	if params.Text != nil {
		file = ls.workspace.UpdateFile(path, []byte(*params.Text))
	} else {
		if err := ls.workspace.ScanFile(path); err != nil {
			return nil
		}
		file = ls.workspace.GetFile(path)
	}
	ls.publishDiagnostics(ctx, params.TextDocument.URI, file)
	return nil
}

// publishDiagnostics converts the parser's diagnostics into LSP ones. An
// empty list clears previously published diagnostics for the file.
func (ls *LSPServer) publishDiagnostics(ctx *glsp.Context, uri string, file *FileInfo) {
	diagnostics := []protocol.Diagnostic{}
	severity := protocol.DiagnosticSeverityError
	source := lsName
	for _, d := range file.Tree.Diagnostics {
		pos := file.Tree.TokenPosition(d.Token)
		lspPos := protocol.Position{
			Line:      uint32(pos.Line - 1),
			Character: uint32(pos.Column - 1),
		}
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    protocol.Range{Start: lspPos, End: lspPos},
			Severity: &severity,
			Source:   &source,
			Message:  file.Tree.RenderDiagnostic(d),
		})
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func (ls *LSPServer) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	file := ls.workspace.GetFile(path)
	if file == nil || file.Document == nil {
		return nil, nil
	}
	return DocumentSymbols(file.Document), nil
}

// DocumentSymbols flattens the typed model into the LSP symbol hierarchy.
func DocumentSymbols(doc *wit.Document) []protocol.DocumentSymbol {
	var symbols []protocol.DocumentSymbol

	for _, world := range doc.Worlds {
		sym := symbolAt(world.Name, protocol.SymbolKindModule, world.Pos)
		for _, member := range world.Imports {
			sym.Children = append(sym.Children, symbolAt("import "+member.Name, memberSymbolKind(member.Kind), member.Pos))
		}
		for _, member := range world.Exports {
			sym.Children = append(sym.Children, symbolAt("export "+member.Name, memberSymbolKind(member.Kind), member.Pos))
		}
		for _, def := range world.Types {
			sym.Children = append(sym.Children, typeDefSymbol(def))
		}
		symbols = append(symbols, sym)
	}

	for _, iface := range doc.Interfaces {
		sym := symbolAt(iface.Name, protocol.SymbolKindInterface, iface.Pos)
		for _, def := range iface.Types {
			sym.Children = append(sym.Children, typeDefSymbol(def))
		}
		for _, fn := range iface.Funcs {
			sym.Children = append(sym.Children, symbolAt(fn.Name, protocol.SymbolKindFunction, fn.Pos))
		}
		symbols = append(symbols, sym)
	}

	return symbols
}

func typeDefSymbol(def *wit.TypeDef) protocol.DocumentSymbol {
	kind := protocol.SymbolKindStruct
	switch def.Kind {
	case wit.KindEnum, wit.KindFlags:
		kind = protocol.SymbolKindEnum
	case wit.KindVariant:
		kind = protocol.SymbolKindEnum
	case wit.KindResource:
		kind = protocol.SymbolKindClass
	case wit.KindAlias:
		kind = protocol.SymbolKindTypeParameter
	}
	sym := symbolAt(def.Name, kind, def.Pos)
	for _, member := range def.Members {
		sym.Children = append(sym.Children, symbolAt(member.Name, memberSymbolKind(member.Kind), member.Pos))
	}
	return sym
}

func memberSymbolKind(kind wit.MemberKind) protocol.SymbolKind {
	switch kind {
	case wit.MemberFunc, wit.MemberMethod:
		return protocol.SymbolKindFunction
	case wit.MemberConstructor:
		return protocol.SymbolKindConstructor
	case wit.MemberInterface:
		return protocol.SymbolKindInterface
	case wit.MemberField:
		return protocol.SymbolKindField
	case wit.MemberCase:
		return protocol.SymbolKindEnumMember
	}
	return protocol.SymbolKindObject
}

func symbolAt(name string, kind protocol.SymbolKind, pos parser.Position) protocol.DocumentSymbol {
	lspPos := protocol.Position{
		Line:      uint32(pos.Line - 1),
		Character: uint32(pos.Column - 1),
	}
	rng := protocol.Range{Start: lspPos, End: lspPos}
	return protocol.DocumentSymbol{
		Name:           name,
		Kind:           kind,
		Range:          rng,
		SelectionRange: rng,
	}
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(kind protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &kind
}
