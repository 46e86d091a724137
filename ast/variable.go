package ast

// Visibility governs external callability and storage placement.
type Visibility int

const (
	DefaultVisibility Visibility = iota
	Public
	PrivateVisibility
	InternalVisibility
	ExternalVisibility
)

func (v Visibility) String() string {
	switch v {
	case Public:
		return "public"
	case PrivateVisibility:
		return "private"
	case InternalVisibility:
		return "internal"
	case ExternalVisibility:
		return "external"
	default:
		return ""
	}
}

// StateMutability restricts what a function (or function-type variable)
// may do to blockchain state.
type StateMutability int

const (
	MutabilityUnspecified StateMutability = iota
	Pure
	View
	Payable
)

func (m StateMutability) String() string {
	switch m {
	case Pure:
		return "pure"
	case View:
		return "view"
	case Payable:
		return "payable"
	default:
		return ""
	}
}

// Mutability governs whether a variable's value may change after
// construction.
type Mutability int

const (
	Mutable Mutability = iota
	Constant
	Immutable
)

func (m Mutability) String() string {
	switch m {
	case Constant:
		return "constant"
	case Immutable:
		return "immutable"
	default:
		return ""
	}
}

// DataLocation specifies where a reference-type value lives.
type DataLocation int

const (
	LocationUnspecified DataLocation = iota
	Storage
	Memory
	CallData
)

func (d DataLocation) String() string {
	switch d {
	case Storage:
		return "storage"
	case Memory:
		return "memory"
	case CallData:
		return "calldata"
	default:
		return ""
	}
}

// VariableDeclaration covers state variables, function parameters,
// return parameters, struct fields, and local (block-scoped)
// declarations — every surface the grammar allows to bind a name to a
// type.
type VariableDeclaration struct {
	NodeBase
	Type       TypeName
	Name       string // may be empty where the grammar permits (e.g. unnamed return parameter)
	Value      Expression
	Visibility Visibility
	Doc        *DocComment
	IsStateVar bool
	Indexed    bool
	Mutability Mutability
	Override   []*UserDefinedTypeName // nil if no override clause
	Location   DataLocation
}

func NewVariableDeclaration(b *Builder, currentEnd int, typ TypeName, name string, value Expression,
	vis Visibility, doc *DocComment, isStateVar, indexed bool, mut Mutability, override []*UserDefinedTypeName, loc DataLocation) *VariableDeclaration {
	return &VariableDeclaration{
		NodeBase:   b.finish(currentEnd),
		Type:       typ,
		Name:       name,
		Value:      value,
		Visibility: vis,
		Doc:        doc,
		IsStateVar: isStateVar,
		Indexed:    indexed,
		Mutability: mut,
		Override:   override,
		Location:   loc,
	}
}

func (v *VariableDeclaration) String() string {
	out := v.Type.String()
	if v.Location != LocationUnspecified {
		out += " " + v.Location.String()
	}
	if v.Indexed {
		out += " indexed"
	}
	if v.Visibility != DefaultVisibility {
		out += " " + v.Visibility.String()
	}
	if v.Mutability != Mutable {
		out += " " + v.Mutability.String()
	}
	if v.Name != "" {
		out += " " + v.Name
	}
	if v.Value != nil {
		out += " = " + v.Value.String()
	}
	return out
}

// FunctionKind distinguishes named functions from the three
// special-named declaration forms that share the function grammar.
type FunctionKind int

const (
	FunctionKindNamed FunctionKind = iota
	FunctionKindConstructor
	FunctionKindFallback
	FunctionKindReceive
)

// FunctionDefinition is a function, constructor, fallback, or receive
// declaration, at either unit level (free function) or inside a
// contract/interface/library body.
type FunctionDefinition struct {
	NodeBase
	Name           string // empty for constructor/fallback/receive
	Kind           FunctionKind
	IsFreeFunction bool
	Visibility     Visibility
	Mutability     StateMutability
	Virtual        bool
	Override       []*UserDefinedTypeName
	Doc            *DocComment
	Parameters     []*VariableDeclaration
	Modifiers      []*ModifierInvocation
	Returns        []*VariableDeclaration
	Body           *Block // nil when the declaration has no body
}

func NewFunctionDefinition(b *Builder, currentEnd int, name string, kind FunctionKind, free bool,
	vis Visibility, mut StateMutability, virtual bool, override []*UserDefinedTypeName, doc *DocComment,
	params []*VariableDeclaration, modifiers []*ModifierInvocation, returns []*VariableDeclaration, body *Block) *FunctionDefinition {
	return &FunctionDefinition{
		NodeBase:       b.finish(currentEnd),
		Name:           name,
		Kind:           kind,
		IsFreeFunction: free,
		Visibility:     vis,
		Mutability:     mut,
		Virtual:        virtual,
		Override:       override,
		Doc:            doc,
		Parameters:     params,
		Modifiers:      modifiers,
		Returns:        returns,
		Body:           body,
	}
}

func (f *FunctionDefinition) String() string {
	head := "function " + f.Name
	switch f.Kind {
	case FunctionKindConstructor:
		head = "constructor"
	case FunctionKindFallback:
		head = "fallback"
	case FunctionKindReceive:
		head = "receive"
	}
	out := head + "("
	for i, p := range f.Parameters {
		if i > 0 {
			out += ", "
		}
		out += p.String()
	}
	out += ")"
	if f.Visibility != DefaultVisibility {
		out += " " + f.Visibility.String()
	}
	if f.Mutability != MutabilityUnspecified {
		out += " " + f.Mutability.String()
	}
	if f.Virtual {
		out += " virtual"
	}
	if len(f.Returns) > 0 {
		out += " returns ("
		for i, r := range f.Returns {
			if i > 0 {
				out += ", "
			}
			out += r.String()
		}
		out += ")"
	}
	if f.Body != nil {
		out += " " + f.Body.String()
	} else {
		out += ";"
	}
	return out
}

// ModifierDefinition declares a reusable guard applied to functions via
// ModifierInvocation. Its body may contain at most the placeholder
// statement as its defining feature (invariant 4 of the data model).
type ModifierDefinition struct {
	NodeBase
	Name       string
	Doc        *DocComment
	Parameters []*VariableDeclaration
	Virtual    bool
	Override   []*UserDefinedTypeName
	Body       *Block
}

func NewModifierDefinition(b *Builder, currentEnd int, name string, doc *DocComment, params []*VariableDeclaration, virtual bool, override []*UserDefinedTypeName, body *Block) *ModifierDefinition {
	return &ModifierDefinition{NodeBase: b.finish(currentEnd), Name: name, Doc: doc, Parameters: params, Virtual: virtual, Override: override, Body: body}
}

func (m *ModifierDefinition) String() string {
	out := "modifier " + m.Name + "("
	for i, p := range m.Parameters {
		if i > 0 {
			out += ", "
		}
		out += p.String()
	}
	out += ") " + m.Body.String()
	return out
}

// ModifierInvocation is one `name(args)` entry in a function header.
type ModifierInvocation struct {
	NodeBase
	Name      *UserDefinedTypeName
	Arguments []Expression // nil if no argument list was written
}

func NewModifierInvocation(b *Builder, currentEnd int, name *UserDefinedTypeName, args []Expression) *ModifierInvocation {
	return &ModifierInvocation{NodeBase: b.finish(currentEnd), Name: name, Arguments: args}
}

func (m *ModifierInvocation) String() string {
	out := m.Name.String()
	if m.Arguments != nil {
		out += "("
		for i, a := range m.Arguments {
			if i > 0 {
				out += ", "
			}
			out += a.String()
		}
		out += ")"
	}
	return out
}

// EventDefinition declares a log entry shape.
type EventDefinition struct {
	NodeBase
	Name       string
	Doc        *DocComment
	Parameters []*VariableDeclaration
	Anonymous  bool
}

func NewEventDefinition(b *Builder, currentEnd int, name string, doc *DocComment, params []*VariableDeclaration, anonymous bool) *EventDefinition {
	return &EventDefinition{NodeBase: b.finish(currentEnd), Name: name, Doc: doc, Parameters: params, Anonymous: anonymous}
}

func (e *EventDefinition) String() string {
	out := "event " + e.Name + "("
	for i, p := range e.Parameters {
		if i > 0 {
			out += ", "
		}
		out += p.String()
	}
	out += ")"
	if e.Anonymous {
		out += " anonymous"
	}
	return out + ";"
}
