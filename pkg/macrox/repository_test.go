package macrox_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/260825-go-pkg-macrox/pkg/macrox"
)

func TestRepository_Priority(t *testing.T) {
	first := map[string]any{"key": "first", "only-first": 1}
	second := map[string]any{"key": "second", "only-second": 2}
	in := macrox.MustNew(macrox.WithRepository(first, second))

	tests := []struct {
		name       string
		expression string
		want       any
	}{
		{
			name:       "earliest repository wins",
			expression: "${key}",
			want:       "first",
		},
		{
			name:       "later repository fills the gap",
			expression: "${only-second}",
			want:       2,
		},
		{
			name:       "first repository still reachable",
			expression: "${only-first}",
			want:       1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := in.Resolve(tt.expression)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRepository_NilValueFallsThrough(t *testing.T) {
	first := map[string]any{"key": nil}
	second := map[string]any{"key": "from-second"}
	in := macrox.MustNew(macrox.WithRepository(first, second))

	got, err := in.Resolve("${key}")
	require.NoError(t, err)
	assert.Equal(t, "from-second", got)
}

func TestRepository_Callback(t *testing.T) {
	calls := 0
	lookup := func(key string, _ *macrox.Interpolator) any {
		calls++
		if key == "dynamic" {
			return "computed"
		}

		return nil
	}
	in := macrox.MustNew(macrox.WithRepository(macrox.Lookup(lookup)))

	got, err := in.Resolve("${dynamic}")
	require.NoError(t, err)
	assert.Equal(t, "computed", got)
	assert.Equal(t, 1, calls)
}

func TestRepository_StringMap(t *testing.T) {
	in := macrox.MustNew(macrox.WithRepository(map[string]string{"HOME": "/home/app"}))

	got, err := in.Resolve("${HOME}/cache")
	require.NoError(t, err)
	assert.Equal(t, "/home/app/cache", got)
}

func TestRegisterRepository_AppendsAfterConstruction(t *testing.T) {
	in := macrox.MustNew()
	require.NoError(t, in.RegisterRepository(map[string]any{"late": "yes"}))

	got, err := in.Resolve("${late}")
	require.NoError(t, err)
	assert.Equal(t, "yes", got)
}

func TestRegisterRepository_RejectsUnsupportedType(t *testing.T) {
	in := macrox.MustNew()
	err := in.RegisterRepository(42)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported repository type")
}

func TestGetValue_NonTextKeyPassesThrough(t *testing.T) {
	in := macrox.MustNew()
	assert.Equal(t, 42, in.GetValue(42))
	assert.Nil(t, in.GetValue(nil))
}

func TestPropertyPathReference(t *testing.T) {
	// 属性路径栈来自结构遍历：L0 → L1 → L2
	build := func(leaf string) map[string]any {
		return map[string]any{
			"L0": map[string]any{
				"L1": map[string]any{
					"L2": leaf,
				},
			},
		}
	}
	leafOf := func(m map[string]any) any {
		return m["L0"].(map[string]any)["L1"].(map[string]any)["L2"]
	}

	tests := []struct {
		name    string
		leaf    string
		want    any
		errPart string
	}{
		{
			name: "index from start",
			leaf: "${^0}",
			want: "L0",
		},
		{
			name: "index from end",
			leaf: "${^-1}",
			want: "L2",
		},
		{
			name: "middle of the stack",
			leaf: "${^1}",
			want: "L1",
		},
		{
			name:    "positive index out of range",
			leaf:    "${^5}",
			want:    nil,
			errPart: "invalid",
		},
		{
			name:    "negative index out of range",
			leaf:    "${^-5}",
			want:    nil,
			errPart: "invalid",
		},
		{
			name:    "non-numeric index",
			leaf:    "${^x}",
			want:    nil,
			errPart: "invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := macrox.MustNew(macrox.WithThrowErrors(false))
			doc := build(tt.leaf)
			_, err := in.Resolve(doc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, leafOf(doc))
			if tt.errPart == "" {
				assert.Empty(t, in.Errors)
			} else {
				require.NotEmpty(t, in.Errors)
				assert.Contains(t, in.Errors[0], tt.errPart)
			}
		})
	}
}
