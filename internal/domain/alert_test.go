package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAlertValidate(t *testing.T) {
	due := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	t.Run("one-shot", func(t *testing.T) {
		a := &Alert{ID: "al-1", Title: "Pay rent", Level: AlertWarn, DueAt: &due}
		assert.NoError(t, a.Validate())
		assert.False(t, a.Recurring())
	})

	t.Run("recurring", func(t *testing.T) {
		a := &Alert{ID: "al-2", Title: "Weekly review", Level: AlertInfo, Schedule: "0 17 * * FRI"}
		assert.NoError(t, a.Validate())
		assert.True(t, a.Recurring())
	})

	t.Run("neither due nor schedule", func(t *testing.T) {
		a := &Alert{ID: "al-3", Title: "Floating", Level: AlertInfo}
		assert.Error(t, a.Validate())
	})

	t.Run("both due and schedule", func(t *testing.T) {
		a := &Alert{ID: "al-4", Title: "Confused", Level: AlertInfo, DueAt: &due, Schedule: "* * * * *"}
		assert.Error(t, a.Validate())
	})

	t.Run("bad level", func(t *testing.T) {
		a := &Alert{ID: "al-5", Title: "Loud", Level: "shouting", DueAt: &due}
		assert.Error(t, a.Validate())
	})
}

func TestDocumentSnippet(t *testing.T) {
	d := &Document{Title: "Notes", Body: "First line of the note\nSecond line"}
	assert.Equal(t, "First line of the note", d.Snippet(80))
	assert.Equal(t, "First lin…", d.Snippet(10))
	assert.Equal(t, "", (&Document{Title: "Empty"}).Snippet(10))
}
