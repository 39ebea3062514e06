package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRefFrom_IDString(t *testing.T) {
	r := RefFrom("client-7")
	assert.Equal(t, RefID, r.Kind)
	assert.Equal(t, "client-7", r.Display())
}

func TestRefFrom_EmbeddedObject(t *testing.T) {
	r := RefFrom(map[string]any{"id": "c-1", "name": "Acme Corp"})
	assert.Equal(t, RefEmbedded, r.Kind)
	assert.Equal(t, "c-1", r.ID)
	assert.Equal(t, "Acme Corp", r.Display(), "name wins over id for display")
}

func TestRefFrom_EmbeddedWithoutName(t *testing.T) {
	r := RefFrom(map[string]any{"id": "c-2"})
	assert.Equal(t, "c-2", r.Display(), "id is the display fallback")
}

func TestRefFrom_NumericID(t *testing.T) {
	r := RefFrom(1042)
	assert.Equal(t, RefID, r.Kind)
	assert.Equal(t, "1042", r.ID)
}

func TestRefFrom_Nil(t *testing.T) {
	r := RefFrom(nil)
	assert.True(t, r.IsZero())
	assert.Equal(t, "", r.Display())
}
