package ast

import "solparse/token"

// TypeName is satisfied by every type-name variant (§4.6).
type TypeName interface {
	Node
	typeName()
}

// ElementaryTypeName is a built-in type keyword, optionally carrying
// size info (TokenInfo) and, for "address", a state-mutability
// specifier ("payable" or unspecified).
type ElementaryTypeName struct {
	NodeBase
	Info    TokenInfo
	Payable bool // only meaningful when Info.Kind == token.ADDRESS
}

func (*ElementaryTypeName) typeName() {}

func NewElementaryTypeName(b *Builder, currentEnd int, info TokenInfo, payable bool) *ElementaryTypeName {
	return &ElementaryTypeName{NodeBase: b.finish(currentEnd), Info: info, Payable: payable}
}

func (e *ElementaryTypeName) String() string {
	name := e.Info.Kind.String()
	switch e.Info.Kind {
	case token.UINT, token.INT:
		name = e.Info.Kind.String()
	case token.BYTES:
		if e.Info.FirstSize > 0 {
			name = e.Info.Kind.String()
		}
	}
	if e.Payable {
		return name + " payable"
	}
	return name
}

// UserDefinedTypeName is a dotted identifier path, e.g. `x.y.z`.
type UserDefinedTypeName struct {
	NodeBase
	Path []string
}

func (*UserDefinedTypeName) typeName() {}

func NewUserDefinedTypeName(b *Builder, currentEnd int, path []string) *UserDefinedTypeName {
	return &UserDefinedTypeName{NodeBase: b.finish(currentEnd), Path: path}
}

func (u *UserDefinedTypeName) String() string {
	out := ""
	for i, p := range u.Path {
		if i > 0 {
			out += "."
		}
		out += p
	}
	return out
}

// FunctionTypeName is `function (params) [visibility] [mutability] [returns (params)]`.
type FunctionTypeName struct {
	NodeBase
	Parameters []*VariableDeclaration
	Visibility Visibility
	Mutability StateMutability
	Returns    []*VariableDeclaration
}

func (*FunctionTypeName) typeName() {}

func NewFunctionTypeName(b *Builder, currentEnd int, params []*VariableDeclaration, vis Visibility, mut StateMutability, returns []*VariableDeclaration) *FunctionTypeName {
	return &FunctionTypeName{NodeBase: b.finish(currentEnd), Parameters: params, Visibility: vis, Mutability: mut, Returns: returns}
}

func (f *FunctionTypeName) String() string {
	out := "function ("
	for i, p := range f.Parameters {
		if i > 0 {
			out += ", "
		}
		out += p.Type.String()
	}
	out += ")"
	if f.Visibility != DefaultVisibility {
		out += " " + f.Visibility.String()
	}
	if f.Mutability != MutabilityUnspecified {
		out += " " + f.Mutability.String()
	}
	if len(f.Returns) > 0 {
		out += " returns ("
		for i, r := range f.Returns {
			if i > 0 {
				out += ", "
			}
			out += r.Type.String()
		}
		out += ")"
	}
	return out
}

// MappingTypeName is `mapping(KeyType => ValueType)`.
type MappingTypeName struct {
	NodeBase
	KeyType   TypeName
	ValueType TypeName
}

func (*MappingTypeName) typeName() {}

func NewMappingTypeName(b *Builder, currentEnd int, key, value TypeName) *MappingTypeName {
	return &MappingTypeName{NodeBase: b.finish(currentEnd), KeyType: key, ValueType: value}
}

func (m *MappingTypeName) String() string {
	return "mapping(" + m.KeyType.String() + " => " + m.ValueType.String() + ")"
}

// ArrayTypeName is `ElementType[Length?]`; a nil Length denotes a
// dynamic array.
type ArrayTypeName struct {
	NodeBase
	ElementType TypeName
	Length      Expression // nil => dynamic
}

func (*ArrayTypeName) typeName() {}

func NewArrayTypeName(b *Builder, currentEnd int, element TypeName, length Expression) *ArrayTypeName {
	return &ArrayTypeName{NodeBase: b.finish(currentEnd), ElementType: element, Length: length}
}

func (a *ArrayTypeName) String() string {
	if a.Length != nil {
		return a.ElementType.String() + "[" + a.Length.String() + "]"
	}
	return a.ElementType.String() + "[]"
}
