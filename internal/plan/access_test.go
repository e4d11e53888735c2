package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mock-generator/internal/descriptor"
)

func TestResolveAccess_Table(t *testing.T) {
	tests := []struct {
		declared     descriptor.Accessibility
		sameAssembly descriptor.Accessibility
		otherAsm     descriptor.Accessibility
	}{
		{descriptor.AccessPublic, descriptor.AccessPublic, descriptor.AccessPublic},
		{descriptor.AccessNotApplicable, descriptor.AccessPublic, descriptor.AccessPublic},
		{descriptor.AccessPrivate, descriptor.AccessPrivate, descriptor.AccessPrivate},
		{descriptor.AccessProtectedAndInternal, descriptor.AccessProtectedAndInternal, descriptor.AccessProtected},
		{descriptor.AccessProtectedOrInternal, descriptor.AccessProtectedAndInternal, descriptor.AccessProtected},
		{descriptor.AccessProtected, descriptor.AccessProtected, descriptor.AccessProtected},
		{descriptor.AccessInternal, descriptor.AccessInternal, descriptor.AccessPublic},
	}

	for _, tt := range tests {
		t.Run(tt.declared.String(), func(t *testing.T) {
			assert.Equal(t, tt.sameAssembly, ResolveAccess(tt.declared, true))
			assert.Equal(t, tt.otherAsm, ResolveAccess(tt.declared, false))
		})
	}
}

func TestResolveAccess_Total(t *testing.T) {
	for a := descriptor.Accessibility(-2); a <= descriptor.AccessPublic+3; a++ {
		for _, same := range []bool{true, false} {
			got := ResolveAccess(a, same)
			assert.Contains(t, []descriptor.Accessibility{
				descriptor.AccessPublic,
				descriptor.AccessProtected,
				descriptor.AccessProtectedAndInternal,
				descriptor.AccessInternal,
				descriptor.AccessPrivate,
			}, got)
		}
	}
}

func TestResolveAccessors(t *testing.T) {
	p := prop("PassedVal", "string", true, true)
	p.Setter.Access = descriptor.AccessPrivate

	getter, setter := ResolveAccessors(p, true)
	require.NotNil(t, getter)
	assert.Equal(t, descriptor.AccessPublic, getter.Access)
	assert.Nil(t, setter)
}

func TestResolveAccessors_InheritsPropertyAccess(t *testing.T) {
	p := withAccess(descriptor.AccessProtected, prop("SomeProp", "string", true, false))

	getter, setter := ResolveAccessors(p, false)
	require.NotNil(t, getter)
	assert.Equal(t, descriptor.AccessProtected, getter.Access)
	assert.Nil(t, setter)
}

func TestResolveAccessors_PerAccessorWidening(t *testing.T) {
	p := prop("Value", "int", true, true)
	p.Setter.Access = descriptor.AccessInternal

	getter, setter := ResolveAccessors(p, false)
	assert.Equal(t, descriptor.AccessPublic, getter.Access)
	assert.Equal(t, descriptor.AccessPublic, setter.Access)

	_, setter = ResolveAccessors(p, true)
	assert.Equal(t, descriptor.AccessInternal, setter.Access)
}

func TestResolveAccessors_PrivateProperty(t *testing.T) {
	p := withAccess(descriptor.AccessPrivate, prop("Hidden", "int", true, true))

	getter, setter := ResolveAccessors(p, true)
	assert.Nil(t, getter)
	assert.Nil(t, setter)
}
