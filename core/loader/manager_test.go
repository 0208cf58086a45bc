package loader

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

type fakeFeature struct {
	name    string
	enabled bool
	err     error
	loaded  bool
}

func (f *fakeFeature) Name() string    { return f.name }
func (f *fakeFeature) IsEnabled() bool { return f.enabled }
func (f *fakeFeature) Load(app fiber.Router) error {
	f.loaded = true
	return f.err
}

func TestManager_LoadAll(t *testing.T) {
	t.Run("Skips Disabled", func(t *testing.T) {
		enabled := &fakeFeature{name: "codes", enabled: true}
		disabled := &fakeFeature{name: "other"}

		m := NewManager(nil)
		m.Register(enabled)
		m.Register(disabled)

		assert.NoError(t, m.LoadAll(fiber.New()))
		assert.True(t, enabled.loaded)
		assert.False(t, disabled.loaded)
	})

	t.Run("Stops On Error", func(t *testing.T) {
		broken := &fakeFeature{name: "broken", enabled: true, err: errors.New("boom")}
		after := &fakeFeature{name: "after", enabled: true}

		m := NewManager(nil)
		m.Register(broken)
		m.Register(after)

		err := m.LoadAll(fiber.New())
		assert.ErrorContains(t, err, "failed to load feature broken")
		assert.False(t, after.loaded)
	})
}
