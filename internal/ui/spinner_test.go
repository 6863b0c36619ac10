package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpinnerSilentWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner(&buf)
	assert.False(t, IsTerminal(&buf))

	s.Start("Fetching...")
	s.Update("Still fetching...")
	s.Stop()
	s.Stop()
	assert.Empty(t, buf.String())
}
