package macrox_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/260825-go-pkg-macrox/pkg/macrox"
)

func testRepo() map[string]any {
	return map[string]any{
		"name": "web",
		"port": 8080,
		"ab":   "X",
		"ref":  "${name}",
		"server": map[string]any{
			"host": "db01",
			"tls":  map[string]any{"enabled": true},
		},
	}
}

func TestResolve_StringExpressions(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		want       any
	}{
		{
			name:       "plain text unchanged",
			expression: "no macros here",
			want:       "no macros here",
		},
		{
			name:       "basic embedded expansion",
			expression: "app=${name}",
			want:       "app=web",
		},
		{
			name:       "multiple macros",
			expression: "${name}:${name}",
			want:       "web:web",
		},
		{
			name:       "whole expression preserves native type",
			expression: "${port}",
			want:       8080,
		},
		{
			name:       "embedded macro is stringified",
			expression: "port=${port}",
			want:       "port=8080",
		},
		{
			name:       "undefined embedded renders marker",
			expression: "x=${missing}",
			want:       "x=undefined",
		},
		{
			name:       "whole expression undefined yields nil",
			expression: "${missing}",
			want:       nil,
		},
		{
			name:       "dotted path lookup",
			expression: "${server.host}",
			want:       "db01",
		},
		{
			name:       "deep dotted path preserves type",
			expression: "${server.tls.enabled}",
			want:       true,
		},
		{
			name:       "missing intermediate segment is undefined",
			expression: "${server.nope.enabled}",
			want:       nil,
		},
		{
			name:       "quoted literal single quotes",
			expression: "${'hello'}",
			want:       "hello",
		},
		{
			name:       "quoted literal double quotes",
			expression: `${"hello"}`,
			want:       "hello",
		},
		{
			name:       "quoted literal backticks",
			expression: "${`hello`}",
			want:       "hello",
		},
		{
			name:       "nested macros build the key",
			expression: "${${'a'}${'b'}}",
			want:       "X",
		},
		{
			name:       "escaped macro stays literal",
			expression: `\${name}`,
			want:       "${name}",
		},
		{
			name:       "escape drops inside surrounding text",
			expression: `a\:b`,
			want:       "a:b",
		},
		{
			name:       "trailing lone escape resolves to empty",
			expression: `\`,
			want:       "",
		},
		{
			name:       "unterminated macro left verbatim",
			expression: "${name",
			want:       "${name",
		},
		{
			name:       "trailing empty modifier segment ignored",
			expression: "${name |}",
			want:       "web",
		},
		{
			name:       "modifier names are case-insensitive",
			expression: "${name | UPPER}",
			want:       "WEB",
		},
		{
			name:       "repository keys are case-sensitive",
			expression: "${NAME}",
			want:       nil,
		},
		{
			name:       "embedded substitution is re-scanned",
			expression: "x${ref}",
			want:       "xweb",
		},
		{
			name:       "whole expression keeps raw substitution",
			expression: "${ref}",
			want:       "${name}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := macrox.MustNew(macrox.WithRepository(testRepo()))
			got, err := in.Resolve(tt.expression)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_DefaultChain(t *testing.T) {
	in := macrox.MustNew(
		macrox.WithRepository(testRepo()),
		macrox.WithThrowErrors(false),
	)

	got, err := in.Resolve("${missing | -d: missing2 | -d: 'fallback'}")
	require.NoError(t, err)
	assert.Equal(t, "fallback", got)
	require.Len(t, in.Errors, 1)
	assert.Contains(t, in.Errors[0], "missing2")
}

func TestResolve_DefaultKeepsDefinedValue(t *testing.T) {
	in := macrox.MustNew(macrox.WithRepository(testRepo()))

	got, err := in.Resolve("${name | default: 'other'}")
	require.NoError(t, err)
	assert.Equal(t, "web", got)
}

func TestResolve_Mandatory(t *testing.T) {
	t.Run("throw errors enabled", func(t *testing.T) {
		in := macrox.MustNew(macrox.WithRepository(testRepo()))
		_, err := in.Resolve("${missing | mandatory}")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "mandatory")
	})

	t.Run("throw errors disabled", func(t *testing.T) {
		in := macrox.MustNew(
			macrox.WithRepository(testRepo()),
			macrox.WithThrowErrors(false),
		)
		got, err := in.Resolve("${missing | mandatory}")
		require.NoError(t, err)
		assert.Nil(t, got)
		require.Len(t, in.Errors, 1)
		assert.Contains(t, in.Errors[0], "mandatory")
	})

	t.Run("defined value passes through", func(t *testing.T) {
		in := macrox.MustNew(macrox.WithRepository(testRepo()))
		got, err := in.Resolve("${name | -m}")
		require.NoError(t, err)
		assert.Equal(t, "web", got)
	})
}

func TestResolve_UnknownModifier(t *testing.T) {
	in := macrox.MustNew(
		macrox.WithRepository(testRepo()),
		macrox.WithThrowErrors(false),
	)

	got, err := in.Resolve("${name | nope}")
	require.NoError(t, err)
	assert.Equal(t, "web", got, "value passes through unmodified")
	require.Len(t, in.Errors, 1)
	assert.Contains(t, in.Errors[0], "unknown modifier")
}

func TestResolve_ConstantChainDiagnostic(t *testing.T) {
	in := macrox.MustNew(
		macrox.WithRepository(testRepo()),
		macrox.WithThrowErrors(false),
	)

	got, err := in.Resolve("${'a' | default: 'b'}")
	require.NoError(t, err)
	assert.Equal(t, "a", got)
	require.Len(t, in.Errors, 1)
	assert.Contains(t, in.Errors[0], "constant")
}

func TestResolve_AllowUndefinedDisabled(t *testing.T) {
	in := macrox.MustNew(
		macrox.WithRepository(testRepo()),
		macrox.WithThrowErrors(false),
		macrox.WithAllowUndefined(false),
	)

	got, err := in.Resolve("${missing}")
	require.NoError(t, err)
	assert.Nil(t, got)
	require.Len(t, in.Errors, 1)
	assert.Contains(t, in.Errors[0], "undefined")
}

func TestResolve_ErrorsAccumulateAcrossCalls(t *testing.T) {
	in := macrox.MustNew(macrox.WithThrowErrors(false))

	_, err := in.Resolve("${one | mandatory}")
	require.NoError(t, err)
	_, err = in.Resolve("${two | mandatory}")
	require.NoError(t, err)
	assert.Len(t, in.Errors, 2)

	in.ClearErrors()
	assert.Empty(t, in.Errors)
}

func TestResolve_ErrorsClearedWhenThrowing(t *testing.T) {
	in := macrox.MustNew(macrox.WithRepository(testRepo()))

	_, err := in.Resolve("${missing | mandatory}")
	require.Error(t, err)

	// 下一次 Resolve 开始前清空，成功调用不再带旧诊断
	got, err := in.Resolve("${name}")
	require.NoError(t, err)
	assert.Equal(t, "web", got)
	assert.Empty(t, in.Errors)
}

func TestResolve_CustomSymbols(t *testing.T) {
	in := macrox.MustNew(
		macrox.WithRepository(testRepo()),
		macrox.WithSymbols(macrox.Symbols{MacroBegin: "<<", MacroEnd: ">>"}),
	)

	got, err := in.Resolve("name=<<name>>")
	require.NoError(t, err)
	assert.Equal(t, "name=web", got)

	// 默认标记不再被识别
	got, err = in.Resolve("${name}")
	require.NoError(t, err)
	assert.Equal(t, "${name}", got)
}

func TestDefaultSymbols_AffectsOnlyNewInstances(t *testing.T) {
	before := macrox.MustNew(macrox.WithRepository(testRepo()))

	saved := macrox.DefaultSymbols
	defer func() { macrox.DefaultSymbols = saved }()
	macrox.DefaultSymbols.UndefinedMarker = "<none>"

	after := macrox.MustNew(macrox.WithRepository(testRepo()))

	got, err := before.Resolve("x=${missing}")
	require.NoError(t, err)
	assert.Equal(t, "x=undefined", got)

	got, err = after.Resolve("x=${missing}")
	require.NoError(t, err)
	assert.Equal(t, "x=<none>", got)
}

func TestResolve_OptionsWithStringExpression(t *testing.T) {
	in := macrox.MustNew(macrox.WithRepository(testRepo()))

	_, err := in.Resolve("${name}", macrox.WithExclude("a"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "string expression")
}

func TestInterpolator_String(t *testing.T) {
	in := macrox.MustNew(macrox.WithThrowErrors(false))

	_, err := in.Resolve("${missing | mandatory}")
	require.NoError(t, err)
	assert.Contains(t, in.String(), "mandatory")
}
