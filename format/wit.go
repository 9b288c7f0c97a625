package format

import (
	"bytes"
	"fmt"
	"io"

	"github.com/dhamidi/witc/wit/parser"
)

// WITEncoder re-serializes a valid tree to canonical textual form:
// normalized whitespace, four-space indent, no comments. The output is not
// byte-identical to the original source, but re-parsing it yields an
// identical node structure.
type WITEncoder struct {
	w         io.Writer
	tree      *parser.Tree
	buf       bytes.Buffer
	indent    int
	indentStr string
}

func NewWITEncoder(w io.Writer) *WITEncoder {
	return &WITEncoder{
		w:         w,
		indentStr: "    ",
	}
}

func (e *WITEncoder) Encode(tree *parser.Tree) error {
	if !tree.Valid() {
		return fmt.Errorf("refusing to dump a tree with %d diagnostics", len(tree.Diagnostics))
	}
	e.tree = tree
	e.buf.Reset()

	for i, item := range tree.RootItems() {
		if i > 0 {
			e.buf.WriteByte('\n')
		}
		e.printTopLevelItem(item)
	}

	_, err := e.w.Write(e.buf.Bytes())
	return err
}

func (e *WITEncoder) line(format string, args ...any) {
	for i := 0; i < e.indent; i++ {
		e.buf.WriteString(e.indentStr)
	}
	fmt.Fprintf(&e.buf, format, args...)
	e.buf.WriteByte('\n')
}

func (e *WITEncoder) printTopLevelItem(n parser.NodeIndex) {
	t := e.tree
	switch t.Tag(n) {
	case parser.NodePackageDecl:
		decl := t.PackageDeclAt(n)
		e.line("package %s:%s%s;", t.TokenText(decl.Namespace), t.TokenText(decl.Name),
			e.versionSuffix(decl.Version, decl.VersionLen))
	case parser.NodeTopLevelUse:
		data := t.Data(n)
		path := e.usePath(parser.NodeIndex(data.LHS))
		if alias := parser.TokenIndex(data.RHS); alias != parser.NilToken {
			e.line("use %s as %s;", path, t.TokenText(alias))
		} else {
			e.line("use %s;", path)
		}
	case parser.NodeUseDecl:
		e.printUseDecl(n)
	case parser.NodeWorldDecl:
		e.line("world %s {", t.TokenText(t.MainToken(n)))
		e.indent++
		for _, item := range t.ItemNodes(n) {
			e.printWorldItem(item)
		}
		e.indent--
		e.line("}")
	case parser.NodeInterfaceDecl:
		e.line("interface %s {", t.TokenText(t.MainToken(n)))
		e.indent++
		for _, item := range t.ItemNodes(n) {
			e.printInterfaceItem(item)
		}
		e.indent--
		e.line("}")
	}
}

func (e *WITEncoder) printWorldItem(n parser.NodeIndex) {
	t := e.tree
	switch t.Tag(n) {
	case parser.NodeExportFunc:
		e.line("export %s: %s;", t.TokenText(t.MainToken(n)), e.funcType(parser.NodeIndex(t.Data(n).LHS)))
	case parser.NodeImportFunc:
		e.line("import %s: %s;", t.TokenText(t.MainToken(n)), e.funcType(parser.NodeIndex(t.Data(n).LHS)))
	case parser.NodeExportInterface, parser.NodeImportInterface:
		kw := "export"
		if t.Tag(n) == parser.NodeImportInterface {
			kw = "import"
		}
		e.line("%s %s: interface {", kw, t.TokenText(t.MainToken(n)))
		e.indent++
		for _, item := range t.ItemNodes(n) {
			e.printInterfaceItem(item)
		}
		e.indent--
		e.line("}")
	case parser.NodeExportPath:
		e.line("export %s;", e.usePath(parser.NodeIndex(t.Data(n).LHS)))
	case parser.NodeImportPath:
		e.line("import %s;", e.usePath(parser.NodeIndex(t.Data(n).LHS)))
	case parser.NodeInclude:
		data := t.Data(n)
		path := e.usePath(parser.NodeIndex(data.LHS))
		if off := parser.ExtraIndex(data.RHS); off != parser.NilExtra {
			run := t.NodeRunAt(off)
			names := ""
			for i, name := range t.ExtraNodes(run.Start, run.Len) {
				if i > 0 {
					names += ", "
				}
				names += t.TokenText(t.MainToken(name)) + " as " +
					t.TokenText(parser.TokenIndex(t.Data(name).LHS))
			}
			e.line("include %s with { %s };", path, names)
		} else {
			e.line("include %s;", path)
		}
	default:
		e.printInterfaceItem(n)
	}
}

func (e *WITEncoder) printInterfaceItem(n parser.NodeIndex) {
	t := e.tree
	switch t.Tag(n) {
	case parser.NodeUseDecl:
		e.printUseDecl(n)
	case parser.NodeTypeAlias:
		e.line("type %s = %s;", t.TokenText(t.MainToken(n)), e.typeExpr(parser.NodeIndex(t.Data(n).LHS)))
	case parser.NodeRecordDecl:
		e.line("record %s {", t.TokenText(t.MainToken(n)))
		e.indent++
		for _, field := range t.ItemNodes(n) {
			e.line("%s: %s,", t.TokenText(t.MainToken(field)), e.typeExpr(parser.NodeIndex(t.Data(field).LHS)))
		}
		e.indent--
		e.line("}")
	case parser.NodeFlagsDecl:
		e.printNameList("flags", n)
	case parser.NodeEnumDecl:
		e.printNameList("enum", n)
	case parser.NodeVariantDecl:
		e.line("variant %s {", t.TokenText(t.MainToken(n)))
		e.indent++
		for _, c := range t.ItemNodes(n) {
			if payload := parser.NodeIndex(t.Data(c).LHS); payload != parser.NilNode {
				e.line("%s(%s),", t.TokenText(t.MainToken(c)), e.typeExpr(payload))
			} else {
				e.line("%s,", t.TokenText(t.MainToken(c)))
			}
		}
		e.indent--
		e.line("}")
	case parser.NodeResourceDecl:
		members := t.ItemNodes(n)
		if len(members) == 0 {
			e.line("resource %s;", t.TokenText(t.MainToken(n)))
			return
		}
		e.line("resource %s {", t.TokenText(t.MainToken(n)))
		e.indent++
		for _, m := range members {
			switch t.Tag(m) {
			case parser.NodeResourceConstructor:
				data := t.Data(m)
				e.line("constructor(%s);", e.params(parser.ExtraIndex(data.LHS), data.RHS))
			case parser.NodeResourceMethod:
				e.line("%s: %s;", t.TokenText(t.MainToken(m)), e.funcType(parser.NodeIndex(t.Data(m).LHS)))
			case parser.NodeResourceStaticMethod:
				e.line("%s: static %s;", t.TokenText(t.MainToken(m)), e.funcType(parser.NodeIndex(t.Data(m).LHS)))
			}
		}
		e.indent--
		e.line("}")
	case parser.NodeFuncItem:
		e.line("%s: %s;", t.TokenText(t.MainToken(n)), e.funcType(parser.NodeIndex(t.Data(n).LHS)))
	}
}

func (e *WITEncoder) printUseDecl(n parser.NodeIndex) {
	t := e.tree
	data := t.Data(n)
	run := t.NodeRunAt(parser.ExtraIndex(data.RHS))
	names := ""
	for i, name := range t.ExtraNodes(run.Start, run.Len) {
		if i > 0 {
			names += ", "
		}
		names += t.TokenText(t.MainToken(name))
		if alias := parser.TokenIndex(t.Data(name).LHS); alias != parser.NilToken {
			names += " as " + t.TokenText(alias)
		}
	}
	e.line("use %s.{ %s };", e.usePath(parser.NodeIndex(data.LHS)), names)
}

func (e *WITEncoder) printNameList(kw string, n parser.NodeIndex) {
	t := e.tree
	e.line("%s %s {", kw, t.TokenText(t.MainToken(n)))
	e.indent++
	for _, item := range t.ItemNodes(n) {
		e.line("%s,", t.TokenText(t.MainToken(item)))
	}
	e.indent--
	e.line("}")
}

func (e *WITEncoder) params(start parser.ExtraIndex, count uint32) string {
	t := e.tree
	out := ""
	for i, param := range t.ExtraNodes(start, count) {
		if i > 0 {
			out += ", "
		}
		out += t.TokenText(t.MainToken(param)) + ": " + e.typeExpr(parser.NodeIndex(t.Data(param).LHS))
	}
	return out
}

func (e *WITEncoder) funcType(n parser.NodeIndex) string {
	ft := e.tree.FuncTypeAt(n)
	out := "func(" + e.params(ft.ParamsStart, ft.ParamsLen) + ")"
	if ft.Result != parser.NilNode {
		out += " -> " + e.typeExpr(ft.Result)
	}
	return out
}

func (e *WITEncoder) usePath(n parser.NodeIndex) string {
	t := e.tree
	up := t.UsePathAt(n)
	out := ""
	if up.Namespace != parser.NilToken {
		out = t.TokenText(up.Namespace) + ":" + t.TokenText(up.Package) + "/"
	}
	out += t.TokenText(up.Name)
	return out + e.versionSuffix(up.Version, up.VersionLen)
}

func (e *WITEncoder) versionSuffix(first parser.TokenIndex, count uint32) string {
	if first == parser.NilToken || count == 0 {
		return ""
	}
	return "@" + e.tree.TokenRangeText(first, count)
}

func (e *WITEncoder) typeExpr(n parser.NodeIndex) string {
	t := e.tree
	switch t.Tag(n) {
	case parser.NodeTypePrimitive, parser.NodeTypeNamed:
		return t.TokenText(t.MainToken(n))
	case parser.NodeTypeList:
		return "list<" + e.typeExpr(parser.NodeIndex(t.Data(n).LHS)) + ">"
	case parser.NodeTypeOption:
		return "option<" + e.typeExpr(parser.NodeIndex(t.Data(n).LHS)) + ">"
	case parser.NodeTypeBorrow:
		return "borrow<" + e.typeExpr(parser.NodeIndex(t.Data(n).LHS)) + ">"
	case parser.NodeTypeTuple:
		out := "tuple<"
		for i, elem := range t.ItemNodes(n) {
			if i > 0 {
				out += ", "
			}
			out += e.typeExpr(elem)
		}
		return out + ">"
	case parser.NodeTypeResult:
		data := t.Data(n)
		ok := parser.NodeIndex(data.LHS)
		errNode := parser.NodeIndex(data.RHS)
		switch {
		case ok == parser.NilNode && errNode == parser.NilNode:
			return "result"
		case errNode == parser.NilNode:
			return "result<" + e.typeExpr(ok) + ">"
		case ok == parser.NilNode:
			return "result<_, " + e.typeExpr(errNode) + ">"
		default:
			return "result<" + e.typeExpr(ok) + ", " + e.typeExpr(errNode) + ">"
		}
	}
	return ""
}
