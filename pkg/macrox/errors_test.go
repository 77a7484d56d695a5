package macrox_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/260825-go-pkg-macrox/pkg/macrox"
)

func TestAddError_JoinsPartsWithSeparator(t *testing.T) {
	in := macrox.MustNew(macrox.WithThrowErrors(false))

	in.AddError("first part", "second part")
	require.Len(t, in.Errors, 1)
	assert.Equal(t, "first part <== second part", in.Errors[0])
}

func TestAddError_DeduplicatesIdenticalDiagnostics(t *testing.T) {
	in := macrox.MustNew(macrox.WithThrowErrors(false))

	in.AddError("repeated diagnostic")
	in.AddError("repeated diagnostic")
	in.AddError("a different diagnostic")
	assert.Len(t, in.Errors, 2)
}

func TestAddError_AppendsMacroExpressionAndPath(t *testing.T) {
	in := macrox.MustNew(macrox.WithThrowErrors(false))
	doc := map[string]any{"svc": map[string]any{"addr": "x=${missing | mandatory}"}}

	_, err := in.Resolve(doc)
	require.NoError(t, err)
	require.Len(t, in.Errors, 1)

	assert.Equal(t,
		"mandatory value not defined <== ${missing | mandatory} <== x=${missing | mandatory} <== path: svc.addr",
		in.Errors[0])
}
