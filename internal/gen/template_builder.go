package gen

import (
	"fmt"
	"go/token"
	"slices"
	"strconv"
	"strings"

	"mock-generator/internal/descriptor"
	"mock-generator/internal/plan"
)

// receiver is the receiver name of generated methods.
const receiver = "m"

// templateData holds all data needed for the mock template.
type templateData struct {
	PackageName string
	Imports     []importData
	Comments    bool
	// Name is the mock type name, Target the qualified target type.
	Name   string
	Target string
	// Embed is the embedded target struct for class targets.
	Embed string
	// Assert adds a compile-time interface satisfaction check.
	Assert       bool
	Constructors []ctorData
	Properties   []propertyData
	Methods      []methodData
}

// methodData represents a method slot.
type methodData struct {
	// Name is the Go method name (the slot name), Member the recorded name.
	Name   string
	Member string
	Field  string
	// Params and Results are the rendered signature parts of the method.
	Params  string
	Results string
	// FieldType is the delegate's func type.
	FieldType  string
	RecordArgs string
	Dispatch   string
	Fallback   string
}

// propertyData represents a property slot.
type propertyData struct {
	Name   string
	Field  string
	Type   string
	Getter bool
	Setter bool
}

// ctorData represents a generated constructor.
type ctorData struct {
	Name     string
	Params   string
	Results  string
	Body     string
	Forwards string
}

// fileBuilder renders the template data of one plan. Package names are
// settled before any signature is rendered so parameters never shadow them.
type fileBuilder struct {
	config  GeneratorConfig
	plan    *plan.MockPlan
	imports *importSet
	// target is the file-local qualifier of the target package.
	target   string
	reserved []string
}

// buildTemplateData constructs the template data from a plan.
func (g *Generator) buildTemplateData(p *plan.MockPlan) *templateData {
	b := &fileBuilder{config: g.config, plan: p, imports: newImportSet()}
	b.collectImports()

	data := &templateData{
		PackageName: g.config.PackageName,
		Comments:    g.config.GenerateComments,
		Name:        p.Name,
		Target:      b.qualify(p.Target.ID.Name),
	}

	if b.target != "" {
		switch {
		case p.Target.IsInterface():
			data.Assert = true
		case p.Target.IsClass():
			data.Embed = "*" + data.Target
		}
	}

	for _, s := range p.Slots {
		switch s.Kind {
		case plan.SlotProperty:
			data.Properties = append(data.Properties, b.buildProperty(s))
		case plan.SlotMethod:
			data.Methods = append(data.Methods, b.buildMethod(s))
		}
	}

	data.Constructors = b.buildConstructors(data.Embed != "")
	data.Imports = b.imports.lines()

	return data
}

// collectImports registers the runtime, the target package and every
// package the slots and constructors refer to, in that order.
func (b *fileBuilder) collectImports() {
	b.imports.add(b.config.RuntimeImport, "mockrt")

	if ns := b.plan.Target.ID.Namespace; ns != "" {
		b.target = b.imports.add(ns, b.plan.Target.Package)
	}

	for _, s := range b.plan.Slots {
		switch s.Kind {
		case plan.SlotProperty:
			b.imports.addRef(s.Value)
		case plan.SlotMethod:
			b.imports.addParams(s.Delegate.Params)
			b.imports.addRef(s.Delegate.Returns)
		}
	}

	if b.target != "" && b.plan.Target.IsClass() {
		for _, c := range b.plan.Constructors {
			if forwardable(c) {
				b.imports.addParams(c.Params)
			}
		}
	}

	b.reserved = b.imports.names()
}

func (b *fileBuilder) qualify(name string) string {
	if b.target == "" {
		return name
	}

	return b.target + "." + name
}

func (b *fileBuilder) typeName(r descriptor.TypeRef) string {
	return b.imports.typeName(r)
}

func (b *fileBuilder) buildProperty(s *plan.Slot) propertyData {
	return propertyData{
		Name:   s.Name,
		Field:  s.Field,
		Type:   b.typeName(*s.Value),
		Getter: s.Getter != nil,
		Setter: s.Setter != nil,
	}
}

func (b *fileBuilder) buildMethod(s *plan.Slot) methodData {
	d := s.Delegate
	names := paramNames(d.Params, b.reserved...)
	params := b.paramList(d.Params, names)
	args := argList(d.Params, names)

	md := methodData{
		Name:      s.Name,
		Member:    s.Member().Name,
		Field:     s.Field,
		Params:    params,
		FieldType: "func(" + params + ")" + b.resultList(d.Returns),
	}

	if len(names) > 0 {
		md.RecordArgs = ", " + strings.Join(names, ", ")
	}

	call := fmt.Sprintf("%s.%s(%s)", receiver, s.Field, args)
	unmocked := fmt.Sprintf("&%s.Mock, %q", receiver, s.Field)

	switch {
	case d.Async:
		awaited := "struct{}"
		if d.Returns != nil {
			awaited = b.typeName(*d.Returns)
		}

		md.Results = " *mockrt.Task[" + awaited + "]"
		md.Fallback = fmt.Sprintf("return mockrt.UnmockedAsync[%s](%s)", awaited, unmocked)

		if d.Returns != nil {
			md.Dispatch = fmt.Sprintf("return mockrt.Resolved(%s)", call)
		} else {
			md.Dispatch = call + "\n\t\treturn mockrt.Resolved(struct{}{})"
		}
	case d.Returns == nil:
		md.Dispatch = call + "\n\t\treturn"
		md.Fallback = fmt.Sprintf("mockrt.UnmockedVoid(%s)", unmocked)
	case len(d.Returns.Elems) > 1:
		md.Results = b.resultList(d.Returns)
		md.Dispatch = "return " + call
		md.Fallback = b.tupleFallback(d.Returns.Elems, unmocked)
	default:
		md.Results = b.resultList(d.Returns)
		md.Dispatch = "return " + call
		md.Fallback = fmt.Sprintf("return mockrt.Unmocked[%s](%s)", b.typeName(*d.Returns), unmocked)
	}

	return md
}

// tupleFallback applies the fallback policy to the first result and
// returns zero values for the rest.
func (b *fileBuilder) tupleFallback(elems []descriptor.TypeRef, unmocked string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "r0 := mockrt.Unmocked[%s](%s)\n\n\tvar (\n", b.typeName(elems[0]), unmocked)

	results := []string{"r0"}

	for i, e := range elems[1:] {
		name := "r" + strconv.Itoa(i+1)
		results = append(results, name)
		fmt.Fprintf(&sb, "\t\t%s %s\n", name, b.typeName(e))
	}

	sb.WriteString("\t)\n\n\treturn " + strings.Join(results, ", "))

	return sb.String()
}

// buildConstructors forwards each target constructor it can call. Only
// targets with an implicit default constructor get a default one.
func (b *fileBuilder) buildConstructors(embed bool) []ctorData {
	p := b.plan

	var ctors []ctorData

	if embed {
		for _, c := range p.Constructors {
			if forwardable(c) {
				ctors = append(ctors, b.forwardConstructor(c, len(ctors)))
			}
		}
	}

	if len(ctors) > 0 || !p.ImplicitDefaultConstructor {
		return ctors
	}

	fields := b.literalFields("")
	if embed {
		fields = b.literalFields("&" + b.qualify(p.Target.ID.Name) + "{}")
	}

	return []ctorData{{
		Name:    "New" + p.Name,
		Results: "*" + p.Name,
		Body:    fmt.Sprintf("return &%s{%s}", p.Name, fields),
	}}
}

// forwardable reports whether c returns a single value or a value and an
// error.
func forwardable(c plan.Constructor) bool {
	ret := c.Base.Returns
	if ret == nil {
		return false
	}

	return len(ret.Elems) == 0 || len(ret.Elems) == 2 && ret.Elems[1].Name == "error"
}

func (b *fileBuilder) forwardConstructor(c plan.Constructor, index int) ctorData {
	p := b.plan
	ret := c.Base.Returns

	base := b.qualify("New" + p.Target.ID.Name)
	names := paramNames(c.Params, append([]string{"base", "err"}, b.reserved...)...)
	call := fmt.Sprintf("%s(%s)", base, argList(c.Params, names))

	ctor := ctorData{
		Name:     "New" + p.Name,
		Params:   b.paramList(c.Params, names),
		Forwards: base,
	}

	if index > 0 {
		ctor.Name += strconv.Itoa(index + 1)
	}

	if len(ret.Elems) == 0 {
		ctor.Results = "*" + p.Name
		ctor.Body = fmt.Sprintf("base := %s\n\n\treturn &%s{%s}",
			call, p.Name, b.literalFields(embedValue(*ret)))

		return ctor
	}

	ctor.Results = "(*" + p.Name + ", error)"
	ctor.Body = fmt.Sprintf("base, err := %s\n\tif err != nil {\n\t\treturn nil, err\n\t}\n\n\treturn &%s{%s}, nil",
		call, p.Name, b.literalFields(embedValue(ret.Elems[0])))

	return ctor
}

// literalFields renders the keyed fields of a mock composite literal. The
// embedded field is keyed by the unqualified target type name.
func (b *fileBuilder) literalFields(embed string) string {
	fields := fmt.Sprintf("Mock: mockrt.New(%t)", b.plan.Runtime.ReturnDefaultIfNotMocked)
	if embed != "" {
		fields += fmt.Sprintf(", %s: %s", b.plan.Target.ID.Name, embed)
	}

	return fields
}

// embedValue returns the expression embedding a constructed base value.
func embedValue(ret descriptor.TypeRef) string {
	if strings.HasPrefix(ret.Name, "*") {
		return "base"
	}

	return "&base"
}

// paramNames returns usable Go parameter names. Names shadowing the
// receiver or a reserved local, and keywords, get an Arg suffix.
func paramNames(params []descriptor.Param, reserved ...string) []string {
	names := make([]string, 0, len(params))
	for i, p := range params {
		name := p.Name
		switch {
		case name == "" || name == "_":
			name = "arg" + strconv.Itoa(i)
		case name == receiver || token.IsKeyword(name) || slices.Contains(reserved, name):
			name += "Arg"
		}

		names = append(names, name)
	}

	return names
}

func (b *fileBuilder) paramList(params []descriptor.Param, names []string) string {
	parts := make([]string, 0, len(params))
	for i, p := range params {
		parts = append(parts, names[i]+" "+b.typeName(p.Type))
	}

	return strings.Join(parts, ", ")
}

// argList renders call arguments, spreading a trailing variadic parameter.
func argList(params []descriptor.Param, names []string) string {
	args := make([]string, 0, len(params))
	for i, p := range params {
		arg := names[i]
		if strings.HasPrefix(p.Type.Name, "...") {
			arg += "..."
		}

		args = append(args, arg)
	}

	return strings.Join(args, ", ")
}

// resultList renders a result type with its leading space; void is empty.
func (b *fileBuilder) resultList(r *descriptor.TypeRef) string {
	if r == nil {
		return ""
	}

	return " " + b.typeName(*r)
}
