package gen

import "text/template"

var mockTemplate = template.Must(template.New("mock").Parse(`// Code generated by mock-generator. DO NOT EDIT.

package {{.PackageName}}

import (
{{range .Imports}}	{{if .Alias}}{{.Name}} {{end}}"{{.Path}}"
{{end}})

{{if .Comments}}// {{.Name}} mocks {{.Target}}.
{{end}}type {{.Name}} struct {
	mockrt.Mock
{{if .Embed}}	{{.Embed}}
{{end}}
{{range .Properties}}	{{.Field}} mockrt.Property[{{.Type}}]
{{end}}{{range .Methods}}	{{.Field}} {{.FieldType}}
{{end}}}
{{if .Assert}}
var _ {{.Target}} = (*{{.Name}})(nil)
{{end}}
{{- range .Constructors}}

{{if $.Comments}}// {{.Name}} returns a {{$.Name}}{{if .Forwards}} wrapping {{.Forwards}}{{end}}.
{{end}}func {{.Name}}({{.Params}}) {{.Results}} {
	{{.Body}}
}
{{- end}}
{{- range .Properties}}
{{- if .Getter}}

func (m *{{$.Name}}) {{.Name}}() {{.Type}} {
	return m.{{.Field}}.Get()
}
{{- end}}
{{- if .Setter}}

func (m *{{$.Name}}) Set{{.Name}}(v {{.Type}}) {
	m.{{.Field}}.Set(v)
}
{{- end}}
{{- end}}
{{- range .Methods}}

func (m *{{$.Name}}) {{.Name}}({{.Params}}){{.Results}} {
	m.Mock.Record("{{.Member}}"{{.RecordArgs}})
	if m.{{.Field}} != nil {
		{{.Dispatch}}
	}

	{{.Fallback}}
}
{{- end}}
`))
