package nodeid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain identifier passes through", input: "add_1", expected: "add_1"},
		{name: "spaces and dashes become underscores", input: "my node-2", expected: "my_node_2"},
		{name: "unicode collapses to underscores", input: "añadir", expected: "a_adir"},
		{name: "leading digit gains underscore", input: "1st", expected: "_1st"},
		{name: "empty input yields placeholder", input: "", expected: "_"},
		{name: "expansion separator survives", input: "loop__body", expected: "loop__body"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, Sanitize(tc.input))
		})
	}
}

func TestResultVar(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "node_add_result", ResultVar("add"))
	assert.Equal(t, "node_calc_2_result", ResultVar("calc 2"))
}

func TestExpand(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "inst__add", Expand("inst", "add"))
	assert.Equal(t, "outer__inner__add", Expand("outer", Expand("inner", "add")))
}
