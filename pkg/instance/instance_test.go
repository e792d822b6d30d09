package instance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetIDPrefersConfiguredValue(t *testing.T) {
	t.Setenv("STOREFRONT_INSTANCE_ID", "web-1")
	t.Setenv("DYNO", "web.3")
	assert.Equal(t, "web-1", GetID())
}

func TestGetIDFallsBackToDyno(t *testing.T) {
	t.Setenv("STOREFRONT_INSTANCE_ID", "")
	t.Setenv("DYNO", "web.3")
	assert.Equal(t, "web.3", GetID())
}

func TestGetIDNeverEmpty(t *testing.T) {
	t.Setenv("STOREFRONT_INSTANCE_ID", "")
	t.Setenv("DYNO", "")
	assert.NotEmpty(t, GetID())
}
