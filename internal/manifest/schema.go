package manifest

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// File is the root of a manifest.
type File struct {
	Version string `yaml:"version" validate:"required,eq=1"`
	// Assembly is the default assembly of types and the default unit of mocks.
	Assembly string    `yaml:"assembly,omitempty"`
	Config   Config    `yaml:"config,omitempty"`
	Types    []TypeDef `yaml:"types,omitempty" validate:"dive"`
	Mocks    []MockDef `yaml:"mocks,omitempty" validate:"dive"`
}

// Config mirrors plan.Config. Unset fields keep the engine defaults.
type Config struct {
	ReturnDefaultIfNotMocked bool    `yaml:"return_default_if_not_mocked,omitempty"`
	FieldPrefix              string  `yaml:"field_prefix,omitempty"`
	NamePostfix              *string `yaml:"name_postfix,omitempty"`
	Strict                   bool    `yaml:"strict,omitempty"`
	MaxSuggestions           int     `yaml:"max_suggestions,omitempty" validate:"gte=0"`
}

// TypeDef describes one type.
type TypeDef struct {
	Namespace  string      `yaml:"namespace,omitempty"`
	Name       string      `yaml:"name" validate:"required"`
	Kind       string      `yaml:"kind" validate:"required,oneof=interface class"`
	Abstract   bool        `yaml:"abstract,omitempty"`
	Builtin    bool        `yaml:"builtin,omitempty"`
	Access     string      `yaml:"access,omitempty" validate:"access"`
	Assembly   string      `yaml:"assembly,omitempty"`
	Base       string      `yaml:"base,omitempty"`
	Interfaces []string    `yaml:"interfaces,omitempty" validate:"dive,required"`
	Members    []MemberDef `yaml:"members,omitempty" validate:"dive"`
}

// Member kinds.
const (
	MemberMethod      = "method"
	MemberProperty    = "property"
	MemberConstructor = "constructor"
)

// MemberDef describes one member of a type.
type MemberDef struct {
	Kind     string `yaml:"kind" validate:"required,oneof=method property constructor"`
	Name     string `yaml:"name,omitempty" validate:"required_unless=Kind constructor"`
	Access   string `yaml:"access,omitempty" validate:"access"`
	Static   bool   `yaml:"static,omitempty"`
	Abstract bool   `yaml:"abstract,omitempty"`
	Virtual  bool   `yaml:"virtual,omitempty"`
	Override bool   `yaml:"override,omitempty"`
	Sealed   bool   `yaml:"sealed,omitempty"`
	Implicit bool   `yaml:"implicit,omitempty"`

	Params  []ParamDef `yaml:"params,omitempty" validate:"dive"`
	Returns string     `yaml:"returns,omitempty"`
	// Awaited overrides the awaited type inferred from a Task<T> return.
	Awaited string `yaml:"awaited,omitempty"`
	Async   bool   `yaml:"async,omitempty"`

	Type string       `yaml:"type,omitempty" validate:"required_if=Kind property"`
	Get  *AccessorDef `yaml:"get,omitempty"`
	Set  *AccessorDef `yaml:"set,omitempty"`
}

// ParamDef is a method parameter.
type ParamDef struct {
	Name string `yaml:"name" validate:"required"`
	Type string `yaml:"type" validate:"required"`
	// Short overrides the short name used in overload slot names.
	Short string `yaml:"short,omitempty"`
}

// AccessorDef is a property accessor.
type AccessorDef struct {
	Access string `yaml:"access,omitempty" validate:"access"`

	// disabled is set by "get: false"; applyDefaults drops the accessor.
	disabled bool
}

// MockDef is one requested mock.
type MockDef struct {
	Name   string `yaml:"name" validate:"required"`
	Target string `yaml:"target" validate:"required"`
	Unit   string `yaml:"unit,omitempty"`
}

// UnmarshalYAML accepts "name type" or a mapping.
func (p *ParamDef) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		name, typ, ok := strings.Cut(strings.TrimSpace(node.Value), " ")
		if !ok {
			return fmt.Errorf("line %d: param %q must be \"name type\"", node.Line, node.Value)
		}

		*p = ParamDef{Name: name, Type: strings.TrimSpace(typ)}

		return nil

	case yaml.MappingNode:
		type plain ParamDef

		var v plain
		if err := node.Decode(&v); err != nil {
			return err
		}

		*p = ParamDef(v)

		return nil

	default:
		return fmt.Errorf("line %d: expected param string or mapping, got %v", node.Line, node.Kind)
	}
}

// MarshalYAML outputs the "name type" shorthand when Short is unset.
func (p ParamDef) MarshalYAML() (any, error) {
	if p.Short == "" {
		return p.Name + " " + p.Type, nil
	}

	type plain ParamDef

	return plain(p), nil
}

// UnmarshalYAML accepts true, an accessibility or a mapping. false leaves
// the accessor absent.
func (a *AccessorDef) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.ShortTag() == "!!bool" {
			var present bool
			if err := node.Decode(&present); err != nil {
				return err
			}

			*a = AccessorDef{disabled: !present}

			return nil
		}

		*a = AccessorDef{Access: node.Value}

		return nil

	case yaml.MappingNode:
		type plain AccessorDef

		var v plain
		if err := node.Decode(&v); err != nil {
			return err
		}

		*a = AccessorDef(v)

		return nil

	default:
		return fmt.Errorf("line %d: expected accessor bool, string or mapping, got %v", node.Line, node.Kind)
	}
}

// MarshalYAML outputs true or the bare accessibility.
func (a AccessorDef) MarshalYAML() (any, error) {
	if a.Access == "" {
		return true, nil
	}

	return a.Access, nil
}

// ID returns the qualified name of the type.
func (t *TypeDef) ID() string {
	if t.Namespace == "" {
		return t.Name
	}

	return t.Namespace + "." + t.Name
}
