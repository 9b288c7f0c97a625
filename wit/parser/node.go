package parser

// NodeIndex refers to a node in a Tree's node table. Node 0 is always the
// root.
type NodeIndex uint32

// NilNode marks an absent optional node reference.
const NilNode NodeIndex = ^NodeIndex(0)

// ExtraIndex is an offset into a Tree's extra-data array.
type ExtraIndex uint32

// NilExtra marks an absent optional extra-data reference.
const NilExtra ExtraIndex = ^ExtraIndex(0)

type NodeTag int

const (
	// Root: data = (start, count) run of top-level item nodes in extra.
	NodeRoot NodeTag = iota

	// package ns:name@ver;  main token: "package".
	// data.lhs = extra index of a PackageDecl record.
	NodePackageDecl

	// use path [as name];  main token: "use".
	// data.lhs = use-path node, data.rhs = alias token or NilToken.
	NodeTopLevelUse

	// world name { ... }  main token: the name.
	// data = (start, count) run of item nodes in extra.
	NodeWorldDecl

	// interface name { ... }  main token: the name.
	// data = (start, count) run of item nodes in extra.
	NodeInterfaceDecl

	// name: func(...); inside an interface.  main token: the name.
	// data.lhs = func-type node.
	NodeFuncItem

	// export name: func(...);  main token: the name.
	// data.lhs = func-type node.
	NodeExportFunc

	// export name: interface { ... }  main token: the name.
	// data = (start, count) run of item nodes in extra.
	NodeExportInterface

	// export path;  main token: "export".  data.lhs = use-path node.
	NodeExportPath

	// Import forms mirror the export forms.
	NodeImportFunc
	NodeImportInterface
	NodeImportPath

	// include path [with { ... }];  main token: "include".
	// data.lhs = use-path node, data.rhs = extra index of a NodeRun record
	// of include-name nodes, or NilExtra without a with-list.
	NodeInclude

	// a as b inside an include with-list.  main token: the original name.
	// data.lhs = alias token.
	NodeIncludeName

	// type name = ty;  main token: the name.  data.lhs = type node.
	NodeTypeAlias

	// record name { ... }  main token: the name.
	// data = (start, count) run of field nodes in extra.
	NodeRecordDecl

	// name: ty  main token: the name.  data.lhs = type node.
	NodeRecordField

	// flags name { ... }  main token: the name.
	// data = (start, count) run of field nodes in extra.
	NodeFlagsDecl

	// Bare name.  main token: the name.
	NodeFlagsField

	// enum name { ... }  main token: the name.
	// data = (start, count) run of case nodes in extra.
	NodeEnumDecl

	// Bare name.  main token: the name.
	NodeEnumCase

	// variant name { ... }  main token: the name.
	// data = (start, count) run of case nodes in extra.
	NodeVariantDecl

	// name or name(ty).  main token: the name.
	// data.lhs = payload type node or NilNode.
	NodeVariantCase

	// resource name; or resource name { ... }  main token: the name.
	// data = (start, count) run of member nodes in extra.
	NodeResourceDecl

	// name: func(...);  main token: the name.  data.lhs = func-type node.
	NodeResourceMethod

	// name: static func(...);  same payload as NodeResourceMethod.
	NodeResourceStaticMethod

	// constructor(...);  main token: "constructor".
	// data = (start, count) run of param nodes in extra.
	NodeResourceConstructor

	// func(params) [-> ty]  main token: "func".
	// data.lhs = extra index of a FuncType record.
	NodeFuncType

	// name: ty inside a parameter list.  main token: the name.
	// data.lhs = type node.
	NodeParam

	// use path.{ a, b as c };  main token: "use".
	// data.lhs = use-path node, data.rhs = extra index of a NodeRun record
	// of use-name nodes.
	NodeUseDecl

	// a or a as b inside a use name list.  main token: the original name.
	// data.lhs = alias token or NilToken.
	NodeUseName

	// [ns:pkg/]name[@version]  main token: the first path token.
	// data.lhs = extra index of a UsePath record.
	NodeUsePath

	// Type expressions.
	NodeTypePrimitive // main token: the primitive keyword
	NodeTypeNamed     // main token: the referenced identifier
	NodeTypeList      // data.lhs = element type node
	NodeTypeOption    // data.lhs = element type node
	NodeTypeBorrow    // data.lhs = element type node
	NodeTypeTuple     // data = (start, count) run of element type nodes
	NodeTypeResult    // data.lhs = ok node or NilNode, data.rhs = err node or NilNode
)

var nodeTagNames = map[NodeTag]string{
	NodeRoot:                 "Root",
	NodePackageDecl:          "PackageDecl",
	NodeTopLevelUse:          "TopLevelUse",
	NodeWorldDecl:            "WorldDecl",
	NodeInterfaceDecl:        "InterfaceDecl",
	NodeFuncItem:             "FuncItem",
	NodeExportFunc:           "ExportFunc",
	NodeExportInterface:      "ExportInterface",
	NodeExportPath:           "ExportPath",
	NodeImportFunc:           "ImportFunc",
	NodeImportInterface:      "ImportInterface",
	NodeImportPath:           "ImportPath",
	NodeInclude:              "Include",
	NodeIncludeName:          "IncludeName",
	NodeTypeAlias:            "TypeAlias",
	NodeRecordDecl:           "RecordDecl",
	NodeRecordField:          "RecordField",
	NodeFlagsDecl:            "FlagsDecl",
	NodeFlagsField:           "FlagsField",
	NodeEnumDecl:             "EnumDecl",
	NodeEnumCase:             "EnumCase",
	NodeVariantDecl:          "VariantDecl",
	NodeVariantCase:          "VariantCase",
	NodeResourceDecl:         "ResourceDecl",
	NodeResourceMethod:       "ResourceMethod",
	NodeResourceStaticMethod: "ResourceStaticMethod",
	NodeResourceConstructor:  "ResourceConstructor",
	NodeFuncType:             "FuncType",
	NodeParam:                "Param",
	NodeUseDecl:              "UseDecl",
	NodeUseName:              "UseName",
	NodeUsePath:              "UsePath",
	NodeTypePrimitive:        "TypePrimitive",
	NodeTypeNamed:            "TypeNamed",
	NodeTypeList:             "TypeList",
	NodeTypeOption:           "TypeOption",
	NodeTypeBorrow:           "TypeBorrow",
	NodeTypeTuple:            "TypeTuple",
	NodeTypeResult:           "TypeResult",
}

func (t NodeTag) String() string {
	if name, ok := nodeTagNames[t]; ok {
		return name
	}
	return "Unknown"
}

// NodeData is the per-node payload: two 32-bit words whose meaning depends
// on the node's tag. See the tag constants for each layout.
type NodeData struct {
	LHS uint32
	RHS uint32
}

// PackageDecl is the extra-data record behind NodePackageDecl.
type PackageDecl struct {
	Namespace  TokenIndex
	Name       TokenIndex
	Version    TokenIndex // first version token, NilToken without an @version
	VersionLen uint32     // number of version tokens
}

// UsePath is the extra-data record behind NodeUsePath. Namespace and
// Package are NilToken for a bare local path.
type UsePath struct {
	Namespace  TokenIndex
	Package    TokenIndex
	Name       TokenIndex
	Version    TokenIndex
	VersionLen uint32
}

// FuncType is the extra-data record behind NodeFuncType.
type FuncType struct {
	ParamsStart ExtraIndex
	ParamsLen   uint32
	Result      NodeIndex // NilNode when the signature has no "->" clause
}

// NodeRun is the extra-data record for a (start, count) run of node indices
// referenced through a single payload word.
type NodeRun struct {
	Start ExtraIndex
	Len   uint32
}

// Tree is the result of a parse: the source it was parsed from, the token
// table, the structure-of-arrays node table, the flat extra-data array, and
// any diagnostics. All of it is immutable once Parse returns; every
// parent-to-child link is an index into these arrays.
type Tree struct {
	Source []byte

	tokens     []Token
	nodeTags   []NodeTag
	nodeTokens []TokenIndex
	nodeData   []NodeData
	extra      []uint32

	Diagnostics []Diagnostic
}

// Valid reports whether the tree parsed without diagnostics. Consumers must
// not walk an invalid tree; its root item list is never finalized.
func (t *Tree) Valid() bool {
	return len(t.Diagnostics) == 0
}

func (t *Tree) NumTokens() int { return len(t.tokens) }
func (t *Tree) NumNodes() int  { return len(t.nodeTags) }

func (t *Tree) TokenTag(i TokenIndex) TokenTag { return t.tokens[i].Tag }
func (t *Tree) TokenStart(i TokenIndex) uint32 { return t.tokens[i].Start }

// TokenText returns the raw source text spanned by a token.
func (t *Tree) TokenText(i TokenIndex) string {
	tok := t.tokens[i]
	return string(t.Source[tok.Start : tok.Start+tok.Len])
}

// TokenRangeText returns the raw source text from the start of the first
// token through the end of the last one, comments and all. The version
// suffix is captured this way.
func (t *Tree) TokenRangeText(first TokenIndex, count uint32) string {
	if count == 0 || first == NilToken {
		return ""
	}
	start := t.tokens[first].Start
	last := t.tokens[uint32(first)+count-1]
	return string(t.Source[start : last.Start+last.Len])
}

func (t *Tree) Tag(i NodeIndex) NodeTag          { return t.nodeTags[i] }
func (t *Tree) MainToken(i NodeIndex) TokenIndex { return t.nodeTokens[i] }
func (t *Tree) Data(i NodeIndex) NodeData        { return t.nodeData[i] }

// ExtraNodes returns the run of node indices stored at extra[start:start+count].
func (t *Tree) ExtraNodes(start ExtraIndex, count uint32) []NodeIndex {
	out := make([]NodeIndex, count)
	for i := range out {
		out[i] = NodeIndex(t.extra[uint32(start)+uint32(i)])
	}
	return out
}

// RootItems returns the top-level item nodes in declaration order.
func (t *Tree) RootItems() []NodeIndex {
	data := t.nodeData[0]
	return t.ExtraNodes(ExtraIndex(data.LHS), data.RHS)
}

// PackageDeclAt decodes the PackageDecl record for a NodePackageDecl node.
func (t *Tree) PackageDeclAt(i NodeIndex) PackageDecl {
	off := t.nodeData[i].LHS
	return PackageDecl{
		Namespace:  TokenIndex(t.extra[off]),
		Name:       TokenIndex(t.extra[off+1]),
		Version:    TokenIndex(t.extra[off+2]),
		VersionLen: t.extra[off+3],
	}
}

// UsePathAt decodes the UsePath record for a NodeUsePath node.
func (t *Tree) UsePathAt(i NodeIndex) UsePath {
	off := t.nodeData[i].LHS
	return UsePath{
		Namespace:  TokenIndex(t.extra[off]),
		Package:    TokenIndex(t.extra[off+1]),
		Name:       TokenIndex(t.extra[off+2]),
		Version:    TokenIndex(t.extra[off+3]),
		VersionLen: t.extra[off+4],
	}
}

// FuncTypeAt decodes the FuncType record for a NodeFuncType node.
func (t *Tree) FuncTypeAt(i NodeIndex) FuncType {
	off := t.nodeData[i].LHS
	return FuncType{
		ParamsStart: ExtraIndex(t.extra[off]),
		ParamsLen:   t.extra[off+1],
		Result:      NodeIndex(t.extra[off+2]),
	}
}

// NodeRunAt decodes a NodeRun record stored at the given extra offset.
func (t *Tree) NodeRunAt(off ExtraIndex) NodeRun {
	return NodeRun{
		Start: ExtraIndex(t.extra[off]),
		Len:   t.extra[off+1],
	}
}

// ItemNodes returns the child run for nodes whose payload is an inline
// (start, count) pair: root, world, interface, inline export/import
// interfaces, containers, resources, tuples, and constructors.
func (t *Tree) ItemNodes(i NodeIndex) []NodeIndex {
	data := t.nodeData[i]
	return t.ExtraNodes(ExtraIndex(data.LHS), data.RHS)
}
