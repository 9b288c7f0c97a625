package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/witc/wit/parser"
)

// TreeJSONEncoder renders the syntax tree as indented JSON for tooling that
// would rather not decode the flat index representation itself.
type TreeJSONEncoder struct {
	w io.Writer
}

func NewTreeJSONEncoder(w io.Writer) *TreeJSONEncoder {
	return &TreeJSONEncoder{w: w}
}

type jsonNode struct {
	Tag      string        `json:"tag"`
	Token    string        `json:"token,omitempty"`
	Position *jsonPosition `json:"position,omitempty"`
	Children []*jsonNode   `json:"children,omitempty"`
}

type jsonPosition struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (e *TreeJSONEncoder) Encode(tree *parser.Tree) error {
	root := &jsonNode{Tag: parser.NodeRoot.String()}
	for _, item := range tree.RootItems() {
		root.Children = append(root.Children, nodeToJSON(tree, item))
	}
	text, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func nodeToJSON(t *parser.Tree, n parser.NodeIndex) *jsonNode {
	jn := &jsonNode{Tag: t.Tag(n).String()}

	tok := t.MainToken(n)
	jn.Token = t.TokenText(tok)
	pos := t.TokenPosition(tok)
	jn.Position = &jsonPosition{Line: pos.Line, Column: pos.Column}

	for _, child := range ChildNodes(t, n) {
		jn.Children = append(jn.Children, nodeToJSON(t, child))
	}
	return jn
}

// ChildNodes flattens a node's payload back into an ordered child list,
// regardless of whether the payload is inline, a fixed extra record, or an
// extra node run.
func ChildNodes(t *parser.Tree, n parser.NodeIndex) []parser.NodeIndex {
	data := t.Data(n)
	switch t.Tag(n) {
	case parser.NodeWorldDecl, parser.NodeInterfaceDecl,
		parser.NodeExportInterface, parser.NodeImportInterface,
		parser.NodeRecordDecl, parser.NodeFlagsDecl, parser.NodeEnumDecl,
		parser.NodeVariantDecl, parser.NodeResourceDecl,
		parser.NodeResourceConstructor, parser.NodeTypeTuple:
		return t.ItemNodes(n)
	case parser.NodeFuncItem, parser.NodeExportFunc, parser.NodeImportFunc,
		parser.NodeResourceMethod, parser.NodeResourceStaticMethod,
		parser.NodeTypeAlias, parser.NodeRecordField, parser.NodeParam,
		parser.NodeTypeList, parser.NodeTypeOption, parser.NodeTypeBorrow,
		parser.NodeExportPath, parser.NodeImportPath, parser.NodeTopLevelUse:
		return []parser.NodeIndex{parser.NodeIndex(data.LHS)}
	case parser.NodeVariantCase:
		if payload := parser.NodeIndex(data.LHS); payload != parser.NilNode {
			return []parser.NodeIndex{payload}
		}
	case parser.NodeFuncType:
		ft := t.FuncTypeAt(n)
		children := t.ExtraNodes(ft.ParamsStart, ft.ParamsLen)
		if ft.Result != parser.NilNode {
			children = append(children, ft.Result)
		}
		return children
	case parser.NodeTypeResult:
		var children []parser.NodeIndex
		if ok := parser.NodeIndex(data.LHS); ok != parser.NilNode {
			children = append(children, ok)
		}
		if errNode := parser.NodeIndex(data.RHS); errNode != parser.NilNode {
			children = append(children, errNode)
		}
		return children
	case parser.NodeUseDecl:
		run := t.NodeRunAt(parser.ExtraIndex(data.RHS))
		children := []parser.NodeIndex{parser.NodeIndex(data.LHS)}
		return append(children, t.ExtraNodes(run.Start, run.Len)...)
	case parser.NodeInclude:
		children := []parser.NodeIndex{parser.NodeIndex(data.LHS)}
		if off := parser.ExtraIndex(data.RHS); off != parser.NilExtra {
			run := t.NodeRunAt(off)
			children = append(children, t.ExtraNodes(run.Start, run.Len)...)
		}
		return children
	}
	return nil
}
