package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics_Buckets(t *testing.T) {
	var d Diagnostics
	assert.True(t, d.IsValid())
	assert.NoError(t, d.Error())

	d.AddInfo(CodeUnresolvedTarget, "target \"ICalc\" not found", "Example.CalcMock", "", "Example.ICalculator")
	d.AddWarning(CodeMockNamePostfix, "name does not end in Mock", "Example.Fake", "")
	assert.True(t, d.IsValid())
	assert.Equal(t, 2, d.Len())

	d.AddError(CodeNameConflict, "conflict", "Example.MyMock", "")
	assert.True(t, d.HasErrors())
	require.Error(t, d.Error())
	assert.Equal(t, "[Example.MyMock]: [SI0107] conflict", d.Error().Error())
}

func TestDiagnostics_Merge(t *testing.T) {
	var a, b Diagnostics
	a.AddError("x", "first", "", "")
	b.AddError("y", "second", "", "")
	b.AddInfo("z", "note", "", "")

	a.Merge(b)
	assert.Len(t, a.Errors, 2)
	assert.Len(t, a.Infos, 1)
	assert.Len(t, a.ByCode("y"), 1)
	assert.Empty(t, a.ByCode("missing"))
}

func TestDiagnostic_String(t *testing.T) {
	d := Diagnostic{
		Code:        CodeUnresolvedTarget,
		Message:     "target \"ICalc\" not found",
		Mock:        "Example.CalcMock",
		Member:      "mocks[0].target",
		Suggestions: []string{"Example.ICalculator"},
	}

	assert.Equal(t,
		"[Example.CalcMock] mocks[0].target: [unresolved_target] target \"ICalc\" not found (did you mean Example.ICalculator?)",
		d.String())
	assert.Equal(t, "plain", Diagnostic{Message: "plain"}.String())
	assert.Equal(t, "warning", DiagnosticWarning.String())
	assert.Equal(t, "unknown", DiagnosticSeverity(7).String())
}
