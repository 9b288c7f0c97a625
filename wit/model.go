// Package wit provides a typed view over the parser's flat syntax tree for
// consumers that want names and shapes rather than node indices: the
// language server's symbol support, and any downstream tooling.
package wit

import (
	"errors"

	"github.com/dhamidi/witc/wit/parser"
)

var ErrInvalidTree = errors.New("tree has diagnostics")

type Document struct {
	Package    *PackageID
	Uses       []Use
	Worlds     []*World
	Interfaces []*Interface
}

type PackageID struct {
	Namespace string
	Name      string
	Version   string // empty without an @version suffix
}

type Use struct {
	Path  UsePath
	Alias string
	Pos   parser.Position
}

type UsePath struct {
	Namespace string // empty for bare local paths
	Package   string
	Name      string
	Version   string
}

type World struct {
	Name     string
	Pos      parser.Position
	Imports  []Member
	Exports  []Member
	Includes []UsePath
	Types    []*TypeDef
}

type Interface struct {
	Name  string
	Pos   parser.Position
	Funcs []Member
	Types []*TypeDef
}

type TypeDefKind string

const (
	KindAlias    TypeDefKind = "type"
	KindRecord   TypeDefKind = "record"
	KindFlags    TypeDefKind = "flags"
	KindEnum     TypeDefKind = "enum"
	KindVariant  TypeDefKind = "variant"
	KindResource TypeDefKind = "resource"
)

type TypeDef struct {
	Name    string
	Kind    TypeDefKind
	Pos     parser.Position
	Members []Member // fields, cases, or resource methods
}

type MemberKind string

const (
	MemberFunc        MemberKind = "func"
	MemberInterface   MemberKind = "interface"
	MemberPath        MemberKind = "path"
	MemberField       MemberKind = "field"
	MemberCase        MemberKind = "case"
	MemberMethod      MemberKind = "method"
	MemberConstructor MemberKind = "constructor"
)

type Member struct {
	Name string
	Kind MemberKind
	Pos  parser.Position
}

// BuildDocument walks a valid tree into the typed model. It refuses trees
// with diagnostics, since their root item list is never finalized.
func BuildDocument(tree *parser.Tree) (*Document, error) {
	if !tree.Valid() {
		return nil, ErrInvalidTree
	}
	doc := &Document{}
	for _, item := range tree.RootItems() {
		switch tree.Tag(item) {
		case parser.NodePackageDecl:
			decl := tree.PackageDeclAt(item)
			doc.Package = &PackageID{
				Namespace: tree.TokenText(decl.Namespace),
				Name:      tree.TokenText(decl.Name),
				Version:   tree.TokenRangeText(decl.Version, decl.VersionLen),
			}
		case parser.NodeTopLevelUse:
			data := tree.Data(item)
			use := Use{
				Path: buildUsePath(tree, parser.NodeIndex(data.LHS)),
				Pos:  tree.TokenPosition(tree.MainToken(item)),
			}
			if alias := parser.TokenIndex(data.RHS); alias != parser.NilToken {
				use.Alias = tree.TokenText(alias)
			}
			doc.Uses = append(doc.Uses, use)
		case parser.NodeUseDecl:
			doc.Uses = append(doc.Uses, Use{
				Path: buildUsePath(tree, parser.NodeIndex(tree.Data(item).LHS)),
				Pos:  tree.TokenPosition(tree.MainToken(item)),
			})
		case parser.NodeWorldDecl:
			doc.Worlds = append(doc.Worlds, buildWorld(tree, item))
		case parser.NodeInterfaceDecl:
			doc.Interfaces = append(doc.Interfaces, buildInterface(tree, item))
		}
	}
	return doc, nil
}

func buildUsePath(tree *parser.Tree, n parser.NodeIndex) UsePath {
	up := tree.UsePathAt(n)
	path := UsePath{
		Name:    tree.TokenText(up.Name),
		Version: tree.TokenRangeText(up.Version, up.VersionLen),
	}
	if up.Namespace != parser.NilToken {
		path.Namespace = tree.TokenText(up.Namespace)
		path.Package = tree.TokenText(up.Package)
	}
	return path
}

func buildWorld(tree *parser.Tree, n parser.NodeIndex) *World {
	world := &World{
		Name: tree.TokenText(tree.MainToken(n)),
		Pos:  tree.TokenPosition(tree.MainToken(n)),
	}
	for _, item := range tree.ItemNodes(n) {
		pos := tree.TokenPosition(tree.MainToken(item))
		switch tree.Tag(item) {
		case parser.NodeImportFunc:
			world.Imports = append(world.Imports, Member{Name: tree.TokenText(tree.MainToken(item)), Kind: MemberFunc, Pos: pos})
		case parser.NodeImportInterface:
			world.Imports = append(world.Imports, Member{Name: tree.TokenText(tree.MainToken(item)), Kind: MemberInterface, Pos: pos})
		case parser.NodeImportPath:
			path := buildUsePath(tree, parser.NodeIndex(tree.Data(item).LHS))
			world.Imports = append(world.Imports, Member{Name: path.Name, Kind: MemberPath, Pos: pos})
		case parser.NodeExportFunc:
			world.Exports = append(world.Exports, Member{Name: tree.TokenText(tree.MainToken(item)), Kind: MemberFunc, Pos: pos})
		case parser.NodeExportInterface:
			world.Exports = append(world.Exports, Member{Name: tree.TokenText(tree.MainToken(item)), Kind: MemberInterface, Pos: pos})
		case parser.NodeExportPath:
			path := buildUsePath(tree, parser.NodeIndex(tree.Data(item).LHS))
			world.Exports = append(world.Exports, Member{Name: path.Name, Kind: MemberPath, Pos: pos})
		case parser.NodeInclude:
			world.Includes = append(world.Includes, buildUsePath(tree, parser.NodeIndex(tree.Data(item).LHS)))
		default:
			if def := buildTypeDef(tree, item); def != nil {
				world.Types = append(world.Types, def)
			}
		}
	}
	return world
}

func buildInterface(tree *parser.Tree, n parser.NodeIndex) *Interface {
	iface := &Interface{
		Name: tree.TokenText(tree.MainToken(n)),
		Pos:  tree.TokenPosition(tree.MainToken(n)),
	}
	for _, item := range tree.ItemNodes(n) {
		if tree.Tag(item) == parser.NodeFuncItem {
			iface.Funcs = append(iface.Funcs, Member{
				Name: tree.TokenText(tree.MainToken(item)),
				Kind: MemberFunc,
				Pos:  tree.TokenPosition(tree.MainToken(item)),
			})
			continue
		}
		if def := buildTypeDef(tree, item); def != nil {
			iface.Types = append(iface.Types, def)
		}
	}
	return iface
}

func buildTypeDef(tree *parser.Tree, n parser.NodeIndex) *TypeDef {
	name := tree.TokenText(tree.MainToken(n))
	pos := tree.TokenPosition(tree.MainToken(n))
	switch tree.Tag(n) {
	case parser.NodeTypeAlias:
		return &TypeDef{Name: name, Kind: KindAlias, Pos: pos}
	case parser.NodeRecordDecl:
		return &TypeDef{Name: name, Kind: KindRecord, Pos: pos, Members: namedMembers(tree, n, MemberField)}
	case parser.NodeFlagsDecl:
		return &TypeDef{Name: name, Kind: KindFlags, Pos: pos, Members: namedMembers(tree, n, MemberField)}
	case parser.NodeEnumDecl:
		return &TypeDef{Name: name, Kind: KindEnum, Pos: pos, Members: namedMembers(tree, n, MemberCase)}
	case parser.NodeVariantDecl:
		return &TypeDef{Name: name, Kind: KindVariant, Pos: pos, Members: namedMembers(tree, n, MemberCase)}
	case parser.NodeResourceDecl:
		def := &TypeDef{Name: name, Kind: KindResource, Pos: pos}
		for _, m := range tree.ItemNodes(n) {
			member := Member{
				Name: tree.TokenText(tree.MainToken(m)),
				Kind: MemberMethod,
				Pos:  tree.TokenPosition(tree.MainToken(m)),
			}
			if tree.Tag(m) == parser.NodeResourceConstructor {
				member.Kind = MemberConstructor
			}
			def.Members = append(def.Members, member)
		}
		return def
	}
	return nil
}

func namedMembers(tree *parser.Tree, n parser.NodeIndex, kind MemberKind) []Member {
	var members []Member
	for _, m := range tree.ItemNodes(n) {
		members = append(members, Member{
			Name: tree.TokenText(tree.MainToken(m)),
			Kind: kind,
			Pos:  tree.TokenPosition(tree.MainToken(m)),
		})
	}
	return members
}
