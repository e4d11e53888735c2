package plan

import (
	"gopkg.in/yaml.v3"

	"mock-generator/internal/descriptor"
	"mock-generator/internal/diagnostic"
)

// ExportVersion is the schema version of exported plan documents.
const ExportVersion = "1"

// Document is the serialized hand-off from the engine to an emitter.
type Document struct {
	Version     string          `yaml:"version"`
	Mocks       []MockDoc       `yaml:"mocks"`
	Diagnostics []DiagnosticDoc `yaml:"diagnostics,omitempty"`
}

// MockDoc is the serialized form of a MockPlan.
type MockDoc struct {
	Name                       string           `yaml:"name"`
	FullName                   string           `yaml:"full_name"`
	Namespace                  string           `yaml:"namespace,omitempty"`
	Target                     string           `yaml:"target"`
	TargetKind                 string           `yaml:"target_kind"`
	Access                     string           `yaml:"access"`
	Ancestors                  []string         `yaml:"ancestors"`
	ReturnDefaultIfNotMocked   bool             `yaml:"return_default_if_not_mocked"`
	FallbackField              string           `yaml:"fallback_field"`
	HistoryField               string           `yaml:"history_field"`
	ImplicitDefaultConstructor bool             `yaml:"implicit_default_constructor"`
	Constructors               []ConstructorDoc `yaml:"constructors,omitempty"`
	Slots                      []SlotDoc        `yaml:"slots"`
	Dropped                    []string         `yaml:"dropped_overloads,omitempty"`
}

// ConstructorDoc is a forwarding constructor.
type ConstructorDoc struct {
	Access string     `yaml:"access"`
	Params []ParamDoc `yaml:"params,omitempty"`
}

// ParamDoc is a parameter.
type ParamDoc struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// SlotDoc is the serialized form of a Slot.
type SlotDoc struct {
	Name           string     `yaml:"name"`
	Kind           string     `yaml:"kind"`
	Field          string     `yaml:"field"`
	Member         string     `yaml:"member"`
	DeclaredIn     string     `yaml:"declared_in"`
	Access         string     `yaml:"access"`
	Override       bool       `yaml:"override"`
	RecordsHistory bool       `yaml:"records_history"`
	Params         []ParamDoc `yaml:"params,omitempty"`
	Returns        string     `yaml:"returns,omitempty"`
	Declared       string     `yaml:"declared_returns,omitempty"`
	Async          bool       `yaml:"async,omitempty"`
	Type           string     `yaml:"type,omitempty"`
	Getter         string     `yaml:"getter,omitempty"`
	Setter         string     `yaml:"setter,omitempty"`
}

// DiagnosticDoc is a serialized diagnostic.
type DiagnosticDoc struct {
	Severity    string   `yaml:"severity"`
	Code        string   `yaml:"code"`
	Message     string   `yaml:"message"`
	Mock        string   `yaml:"mock,omitempty"`
	Suggestions []string `yaml:"suggestions,omitempty"`
}

// Export converts a pass result into a Document.
func Export(res *Result) *Document {
	doc := &Document{
		Version: ExportVersion,
		Mocks:   make([]MockDoc, 0, len(res.Plans)),
	}

	for _, p := range res.Plans {
		doc.Mocks = append(doc.Mocks, exportPlan(p))
	}

	for _, bucket := range [][]diagnostic.Diagnostic{res.Diagnostics.Errors, res.Diagnostics.Warnings, res.Diagnostics.Infos} {
		for _, d := range bucket {
			doc.Diagnostics = append(doc.Diagnostics, DiagnosticDoc{
				Severity:    d.Severity.String(),
				Code:        d.Code,
				Message:     d.Message,
				Mock:        d.Mock,
				Suggestions: d.Suggestions,
			})
		}
	}

	return doc
}

// ExportYAML serializes a pass result as YAML.
func ExportYAML(res *Result) ([]byte, error) {
	return yaml.Marshal(Export(res))
}

func exportPlan(p *MockPlan) MockDoc {
	md := MockDoc{
		Name:                       p.Name,
		FullName:                   p.FullName,
		Namespace:                  p.Namespace,
		Target:                     p.Target.String(),
		TargetKind:                 p.Target.Kind.String(),
		Access:                     p.Access.String(),
		ReturnDefaultIfNotMocked:   p.Runtime.ReturnDefaultIfNotMocked,
		FallbackField:              p.Runtime.FallbackField,
		HistoryField:               p.Runtime.HistoryField,
		ImplicitDefaultConstructor: p.ImplicitDefaultConstructor,
		Slots:                      make([]SlotDoc, 0, len(p.Slots)),
	}

	for _, a := range p.Ancestors {
		md.Ancestors = append(md.Ancestors, a.String())
	}

	for _, c := range p.Constructors {
		md.Constructors = append(md.Constructors, ConstructorDoc{
			Access: c.Access.String(),
			Params: exportParams(c.Params),
		})
	}

	for _, s := range p.Slots {
		md.Slots = append(md.Slots, exportSlot(s))
	}

	for _, m := range p.DroppedOverloads {
		md.Dropped = append(md.Dropped, m.String())
	}

	return md
}

func exportSlot(s *Slot) SlotDoc {
	m := s.Member()
	sd := SlotDoc{
		Name:           s.Name,
		Kind:           s.Kind.String(),
		Field:          s.Field,
		Member:         m.Name,
		DeclaredIn:     m.Owner.String(),
		Access:         s.Access.String(),
		Override:       s.Override,
		RecordsHistory: s.RecordsHistory,
	}

	if d := s.Delegate; d != nil {
		sd.Params = exportParams(d.Params)
		sd.Returns = typeName(d.Returns)
		sd.Async = d.Async

		if d.Async {
			sd.Declared = typeName(d.Declared)
		}
	}

	if s.Value != nil {
		sd.Type = s.Value.Name
	}

	if s.Getter != nil {
		sd.Getter = s.Getter.Access.String()
	}

	if s.Setter != nil {
		sd.Setter = s.Setter.Access.String()
	}

	return sd
}

func exportParams(params []descriptor.Param) []ParamDoc {
	var out []ParamDoc
	for _, p := range params {
		out = append(out, ParamDoc{Name: p.Name, Type: p.Type.Name})
	}

	return out
}

// typeName renders a return type; void is the empty string.
func typeName(r *descriptor.TypeRef) string {
	if r == nil {
		return ""
	}

	return r.Name
}
