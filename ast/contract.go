package ast

// ContractKind distinguishes the three declaration forms that share a
// body grammar.
type ContractKind int

const (
	Contract ContractKind = iota
	Interface
	Library
)

func (k ContractKind) String() string {
	switch k {
	case Interface:
		return "interface"
	case Library:
		return "library"
	default:
		return "contract"
	}
}

// InheritanceSpecifier is one `Base(args...)` entry of an `is` clause.
type InheritanceSpecifier struct {
	NodeBase
	BaseName  *UserDefinedTypeName
	Arguments []Expression // nil if no argument list was written
}

func NewInheritanceSpecifier(b *Builder, currentEnd int, baseName *UserDefinedTypeName, args []Expression) *InheritanceSpecifier {
	return &InheritanceSpecifier{NodeBase: b.finish(currentEnd), BaseName: baseName, Arguments: args}
}

func (i *InheritanceSpecifier) String() string {
	out := i.BaseName.String()
	if i.Arguments != nil {
		out += "("
		for idx, a := range i.Arguments {
			if idx > 0 {
				out += ", "
			}
			out += a.String()
		}
		out += ")"
	}
	return out
}

// ContractDefinition is a contract, interface, or library declaration.
type ContractDefinition struct {
	NodeBase
	Name     string
	Kind     ContractKind
	Abstract bool
	Doc      *DocComment
	BaseList []*InheritanceSpecifier
	Body     []Node
}

func NewContractDefinition(b *Builder, currentEnd int, name string, kind ContractKind, abstract bool, doc *DocComment, baseList []*InheritanceSpecifier, body []Node) *ContractDefinition {
	return &ContractDefinition{
		NodeBase: b.finish(currentEnd),
		Name:     name,
		Kind:     kind,
		Abstract: abstract,
		Doc:      doc,
		BaseList: baseList,
		Body:     body,
	}
}

func (c *ContractDefinition) String() string {
	out := ""
	if c.Abstract {
		out += "abstract "
	}
	out += c.Kind.String() + " " + c.Name
	if len(c.BaseList) > 0 {
		out += " is "
		for i, base := range c.BaseList {
			if i > 0 {
				out += ", "
			}
			out += base.String()
		}
	}
	out += " {\n"
	for _, item := range c.Body {
		out += "  " + item.String() + "\n"
	}
	return out + "}"
}

// StructDefinition declares a named aggregate of fields.
type StructDefinition struct {
	NodeBase
	Name   string
	Doc    *DocComment
	Fields []*VariableDeclaration
}

func NewStructDefinition(b *Builder, currentEnd int, name string, doc *DocComment, fields []*VariableDeclaration) *StructDefinition {
	return &StructDefinition{NodeBase: b.finish(currentEnd), Name: name, Doc: doc, Fields: fields}
}

func (s *StructDefinition) String() string {
	out := "struct " + s.Name + " {\n"
	for _, f := range s.Fields {
		out += "  " + f.String() + ";\n"
	}
	return out + "}"
}

// EnumValue is one member of an EnumDefinition.
type EnumValue struct {
	NodeBase
	Name string
}

func NewEnumValue(b *Builder, currentEnd int, name string) *EnumValue {
	return &EnumValue{NodeBase: b.finish(currentEnd), Name: name}
}

func (e *EnumValue) String() string { return e.Name }

// EnumDefinition declares a closed set of named values. A
// zero-member enum is permitted syntactically (diagnostic 3147) and
// still produces a node.
type EnumDefinition struct {
	NodeBase
	Name   string
	Doc    *DocComment
	Values []*EnumValue
}

func NewEnumDefinition(b *Builder, currentEnd int, name string, doc *DocComment, values []*EnumValue) *EnumDefinition {
	return &EnumDefinition{NodeBase: b.finish(currentEnd), Name: name, Doc: doc, Values: values}
}

func (e *EnumDefinition) String() string {
	out := "enum " + e.Name + " {"
	for i, v := range e.Values {
		if i > 0 {
			out += ", "
		}
		out += v.Name
	}
	return out + "}"
}

// UsingForDirective attaches a library's functions to a type, or to
// every type when TypeName is nil (the `using L for *;` wildcard form;
// see DESIGN.md's Open Question decision).
type UsingForDirective struct {
	NodeBase
	LibraryName *UserDefinedTypeName
	TypeName    TypeName // nil means "for *"
	Global      bool
}

func NewUsingForDirective(b *Builder, currentEnd int, lib *UserDefinedTypeName, typeName TypeName, global bool) *UsingForDirective {
	return &UsingForDirective{NodeBase: b.finish(currentEnd), LibraryName: lib, TypeName: typeName, Global: global}
}

func (u *UsingForDirective) IsWildcard() bool { return u.TypeName == nil }

func (u *UsingForDirective) String() string {
	out := "using " + u.LibraryName.String() + " for "
	if u.IsWildcard() {
		out += "*"
	} else {
		out += u.TypeName.String()
	}
	if u.Global {
		out += " global"
	}
	return out + ";"
}
