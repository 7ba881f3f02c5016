package utils

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmPrompt(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{"  YES  \n", true},
		{"n\n", false},
		{"no\n", false},
		{"\n", false},
		{"anything else\n", false},
		{"", false}, // EOF declines
	}

	for _, tc := range cases {
		reader := bufio.NewReader(strings.NewReader(tc.input))
		ok, err := ConfirmPrompt("Delete expired folders?", reader)
		require.NoError(t, err)
		assert.Equal(t, tc.want, ok, "input %q", tc.input)
	}
}
