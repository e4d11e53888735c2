package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mock-generator/internal/descriptor"
	"mock-generator/internal/plan"
)

func TestLink_Fixture(t *testing.T) {
	snap, res, err := Link(loadFixture(t))
	require.NoError(t, err)
	assert.Zero(t, res.Len())
	assert.Equal(t, []string{"System.Object", "Example.IExternalSystemService", "Example.ExternalSystemServiceBase"}, snap.Names())

	base := snap.Lookup(descriptor.TypeID{Namespace: "Example", Name: "ExternalSystemServiceBase"})
	require.NotNil(t, base)
	assert.True(t, base.IsClass())
	assert.True(t, base.Abstract)
	assert.Equal(t, descriptor.AccessInternal, base.Access)
	require.NotNil(t, base.Base)
	assert.True(t, base.Base.Builtin)
	require.Len(t, base.Interfaces, 1)
	assert.Equal(t, "IExternalSystemService", base.Interfaces[0].ID.Name)

	require.Len(t, base.Members, 6)

	for _, m := range base.Members {
		assert.Same(t, base, m.Owner, m.Name)
	}

	sub := base.Members[1]
	assert.Equal(t, "Int32", sub.Params[0].Type.Short)
	assert.Equal(t, "Int32", sub.Params[1].Type.ShortName())

	async := base.Members[2]
	assert.True(t, async.Async)
	require.NotNil(t, async.EffectiveReturn())
	assert.Equal(t, "decimal", async.EffectiveReturn().Name)

	passed := base.Members[3]
	assert.True(t, passed.IsProperty())
	require.NotNil(t, passed.Setter)
	assert.Equal(t, descriptor.AccessPrivate, passed.Setter.Access)
	assert.Equal(t, descriptor.AccessNotApplicable, passed.Getter.Access)

	ctors := base.Constructors()
	require.Len(t, ctors, 1)
	assert.Equal(t, descriptor.AccessProtected, ctors[0].Access)
}

func TestLink_Invalid(t *testing.T) {
	snap, res, err := Link(mustParse(t, `types: [{name: Service, kind: class, base: Missing}]`))
	require.ErrorIs(t, err, ErrInvalidManifest)
	assert.Nil(t, snap)
	assert.True(t, res.HasErrors())
	assert.Contains(t, err.Error(), "types[0].base")
}

func TestAwaitedType(t *testing.T) {
	tests := []struct {
		returns string
		awaited string
		want    string
	}{
		{"System.Threading.Tasks.Task<decimal>", "", "decimal"},
		{"Task<List<int>>", "", "List<int>"},
		{"ValueTask<bool>", "", "bool"},
		{"Task", "", ""},
		{"Lazy<int>", "", ""},
		{"MyAwaitable", "int", "int"},
	}

	for _, tt := range tests {
		t.Run(tt.returns, func(t *testing.T) {
			got := awaitedType(&MemberDef{Returns: tt.returns, Awaited: tt.awaited})
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}

			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Name)
		})
	}
}

func TestCandidates(t *testing.T) {
	assert.Equal(t, []plan.Candidate{
		{Name: "MyMock", Target: "ExternalSystemServiceBase", Unit: "TestImplementation"},
		{Name: "InterfaceMock", Target: "Example.IExternalSystemService", Unit: "OtherAssembly"},
	}, Candidates(loadFixture(t)))
}

func TestPlanConfig(t *testing.T) {
	empty := ""
	f := &File{Config: Config{FieldPrefix: "On", NamePostfix: &empty, Strict: true, MaxSuggestions: 5}}

	cfg := PlanConfig(f, plan.DefaultConfig())
	assert.False(t, cfg.ReturnDefaultIfNotMocked)
	assert.Equal(t, "On", cfg.FieldPrefix)
	assert.Empty(t, cfg.NamePostfix)
	assert.True(t, cfg.StrictMode)
	assert.Equal(t, 5, cfg.MaxSuggestions)

	assert.Equal(t, plan.DefaultConfig(), PlanConfig(&File{}, plan.DefaultConfig()))
}

func TestManifest_EndToEnd(t *testing.T) {
	f := loadFixture(t)

	snap, _, err := Link(f)
	require.NoError(t, err)

	g := plan.NewGenerator(snap, PlanConfig(f, plan.DefaultConfig()))
	require.NoError(t, g.Generate(Candidates(f)))

	res, err := g.Result()
	require.NoError(t, err)
	assert.Zero(t, res.Diagnostics.Len())
	require.Len(t, res.Plans, 2)

	mine := res.Plans[0]
	assert.Equal(t, "Example.MyMock", mine.FullName)
	assert.True(t, mine.Runtime.ReturnDefaultIfNotMocked)
	assert.Equal(t, descriptor.AccessInternal, mine.Access)
	assert.Equal(t, []string{"PassedVal", "SomeProperty", "Add", "Subtract", "GetAsync"}, mine.SlotNames())
	assert.Nil(t, mine.Slot("PassedVal").Setter)
	assert.Equal(t, descriptor.AccessInternal, mine.Slot("Subtract").Access)
	assert.Len(t, mine.Slot("Add").Members, 2)
	require.Len(t, mine.Constructors, 1)
	assert.Equal(t, descriptor.AccessProtected, mine.Constructors[0].Access)

	other := res.Plans[1]
	assert.Equal(t, "Example.InterfaceMock", other.FullName)
	assert.Equal(t, descriptor.AccessPublic, other.Access)
	assert.Equal(t, []string{"SomeProperty", "Add"}, other.SlotNames())
	assert.True(t, other.ImplicitDefaultConstructor)
}
