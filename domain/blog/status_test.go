package blog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, raw := range []string{"draft", "published"} {
		s, err := ParseStatus(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, s.String())
	}

	for _, raw := range []string{"", "Draft", "archived", "pending"} {
		_, err := ParseStatus(raw)
		assert.Error(t, err, "expected %q to be rejected", raw)
	}
}

func TestStatusCanTransitionTo(t *testing.T) {
	assert.True(t, StatusDraft.CanTransitionTo(StatusPublished))
	assert.True(t, StatusPublished.CanTransitionTo(StatusDraft))

	// Re-asserting published restamps the publish date, so it is allowed.
	assert.True(t, StatusPublished.CanTransitionTo(StatusPublished))
	assert.True(t, StatusDraft.CanTransitionTo(StatusDraft))

	assert.False(t, StatusDraft.CanTransitionTo("archived"))
	assert.False(t, StatusPublished.CanTransitionTo(""))
}
