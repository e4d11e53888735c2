package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeIdent(t *testing.T) {
	assert.Equal(t, "orderid", NormalizeIdent("Order_ID"))
	assert.Equal(t, "myfirstmock", NormalizeIdent("my-first mock"))
}

func TestNormalizeTypeRef(t *testing.T) {
	assert.Equal(t, "iservice", NormalizeTypeRef("global::Example.IService<IModel>"))
	assert.Equal(t, "calculator", NormalizeTypeRef("mock-generator/examples/calculator.Calculator"))
	assert.Equal(t, "inner", NormalizeTypeRef("Outer.Inner"))
}

func TestTokenizeIdent(t *testing.T) {
	tests := map[string][]string{
		"OrderID":                {"order", "id"},
		"IExternalSystemService": {"i", "external", "system", "service"},
		"XMLParser":              {"xml", "parser"},
		"get_value":              {"get", "value"},
		"Outer.InnerMock":        {"outer", "inner", "mock"},
		"":                       nil,
	}

	for in, want := range tests {
		assert.Equal(t, want, TokenizeIdent(in), in)
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"same", "same", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Levenshtein(tt.a, tt.b), "%s/%s", tt.a, tt.b)
		assert.Equal(t, tt.want, Levenshtein(tt.b, tt.a), "%s/%s symmetric", tt.a, tt.b)
	}
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, Similarity("", ""), 1e-9)
	assert.InDelta(t, 1.0, Similarity("abc", "abc"), 1e-9)
	assert.InDelta(t, 0.0, Similarity("abc", "xyz"), 1e-9)
}

func TestSuggest(t *testing.T) {
	names := []string{
		"Example.IExternalSystemService",
		"Example.ISecondExternalSystemService",
		"Example.IModel",
	}

	got := Suggest("IExternalSystemSrvice", names, 1)
	assert.Equal(t, []string{"Example.IExternalSystemService"}, got)

	assert.Empty(t, Suggest("Completely.Different", names, 3))

	ranked := Rank("IModel", names, 0)
	assert.Equal(t, "Example.IModel", ranked[0].Name)
	assert.Len(t, ranked, 3)
}
