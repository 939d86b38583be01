package validation

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type form struct {
	Name  string
	Count decimal.Decimal
	Kind  string
}

func newFormSchema() *Schema[form] {
	return NewSchema(
		Field("name", String, func(f *form, v string) { f.Name = v },
			Must(Tag("required"), "name required")),
		Field("count", AsNumber, func(f *form, v Number) { f.Count = v.Value },
			Must(GreaterThan(decimal.Zero), "count must be positive")),
		Field("kind", String, func(f *form, v string) { f.Kind = v },
			Must(Tag("required"), "kind required"),
			Must(Tag("oneof=a b"), "kind must be a or b")),
	)
}

func TestSchemaValid(t *testing.T) {
	res := newFormSchema().Validate(map[string]string{"name": "x", "count": "1.5", "kind": "b"})

	require.True(t, res.Valid())
	assert.Equal(t, "x", res.Value.Name)
	assert.True(t, decimal.RequireFromString("1.5").Equal(res.Value.Count))
	assert.Equal(t, "b", res.Value.Kind)
}

func TestSchemaCollectsEveryFailure(t *testing.T) {
	res := newFormSchema().Validate(map[string]string{})

	require.False(t, res.Valid())
	assert.Equal(t, FieldErrors{
		"name":  {"name required"},
		"count": {"count must be positive"},
		"kind":  {"kind required", "kind must be a or b"},
	}, res.Errors)
	assert.Equal(t, form{}, res.Value)
}

func TestAsNumber(t *testing.T) {
	cases := []struct {
		raw   string
		valid bool
		value string
	}{
		{raw: "", valid: true, value: "0"},
		{raw: "  12.34 ", valid: true, value: "12.34"},
		{raw: "-3", valid: true, value: "-3"},
		{raw: "abc", valid: false},
		{raw: "1,000", valid: false},
		{raw: "NaN", valid: false},
		{raw: "1e30", valid: true, value: "1000000000000000000000000000000"},
		{raw: "1e-32", valid: true, value: "0.00000000000000000000000000000001"},
		{raw: "1e-99999999", valid: false},
		{raw: "1e99999999", valid: false},
		{raw: "-1e-99999999", valid: false},
		{raw: "-1e99999999", valid: false},
		{raw: "1" + strings.Repeat("0", MaxNumberLength), valid: false},
	}

	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			n := AsNumber(tc.raw)
			assert.Equal(t, tc.valid, n.Valid)
			if tc.valid {
				assert.Equal(t, tc.value, n.Value.String())
			}
		})
	}
}

func TestGreaterThan(t *testing.T) {
	positive := GreaterThan(decimal.Zero)

	assert.True(t, positive(AsNumber("0.01")))
	assert.False(t, positive(AsNumber("0")))
	assert.False(t, positive(AsNumber("")))
	assert.False(t, positive(AsNumber("-1")))
	assert.False(t, positive(AsNumber("ten")))
}

func TestFields(t *testing.T) {
	assert.Equal(t, []string{"name", "count", "kind"}, newFormSchema().Fields())
}
