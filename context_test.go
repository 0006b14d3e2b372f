package glref

import (
	"errors"
	"testing"
)

// newTestContext returns a w x h RGBA8 context with a combined 24/8
// depth/stencil buffer, destroyed when the test ends.
func newTestContext(t *testing.T, w, h int) *ReferenceContext {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Surface.Width, cfg.Surface.Height = w, h
	c, err := NewReferenceContext(cfg)
	if err != nil {
		t.Fatalf("NewReferenceContext: %v", err)
	}
	t.Cleanup(c.Destroy)
	return c
}

// expectError checks the recorded error and clears it.
func expectError(t *testing.T, c *ReferenceContext, want Enum) {
	t.Helper()
	if got := c.GetError(); got != want {
		t.Errorf("GetError() = %v, want %v", got, want)
	}
}

func TestNewReferenceContextRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name string
		edit func(*Config)
	}{
		{"zero texture size", func(c *Config) { c.Limits.MaxTextureSize = 0 }},
		{"too many samples", func(c *Config) { c.Limits.MaxSamples = 64 }},
		{"odd color bits", func(c *Config) { c.Surface.RedBits = 7 }},
		{"odd depth bits", func(c *Config) { c.Surface.DepthBits, c.Surface.StencilBits = 12, 0 }},
		{"negative size", func(c *Config) { c.Surface.Width = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.edit(&cfg)
			_, err := NewReferenceContext(cfg)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("err = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestOptionsOverrideConfig(t *testing.T) {
	c, err := NewReferenceContext(DefaultConfig(), WithSurface(SurfaceConfig{
		Width: 8, Height: 4, RedBits: 5, GreenBits: 6, BlueBits: 5, DepthBits: 16,
	}))
	if err != nil {
		t.Fatal(err)
	}
	defer c.Destroy()

	got := make([]int32, 4)
	c.GetIntegerv(Viewport, got)
	if got[2] != 8 || got[3] != 4 {
		t.Errorf("viewport = %v, want 8x4", got)
	}
	for _, q := range []struct {
		pname Enum
		want  int32
	}{
		{RedBits, 5}, {GreenBits, 6}, {BlueBits, 5}, {AlphaBits, 0}, {DepthBits, 16}, {StencilBits, 0},
	} {
		v := make([]int32, 1)
		c.GetIntegerv(q.pname, v)
		if v[0] != q.want {
			t.Errorf("GetIntegerv(%v) = %d, want %d", q.pname, v[0], q.want)
		}
	}
}

func TestFirstErrorIsKept(t *testing.T) {
	c := newTestContext(t, 4, 4)

	c.Enable(Texture2D)     // INVALID_ENUM
	c.Viewport(0, 0, -1, 1) // INVALID_VALUE
	expectError(t, c, InvalidEnum)
	expectError(t, c, NoError)

	c.LineWidth(0)
	expectError(t, c, InvalidValue)
}

func TestCapabilities(t *testing.T) {
	c := newTestContext(t, 4, 4)
	if !c.IsEnabled(Dither) || !c.IsEnabled(TextureCubeMapSeamless) {
		t.Error("DITHER and TEXTURE_CUBE_MAP_SEAMLESS should start enabled")
	}
	if c.IsEnabled(DepthTest) {
		t.Error("DEPTH_TEST should start disabled")
	}
	c.Enable(DepthTest)
	if !c.IsEnabled(DepthTest) {
		t.Error("Enable(DEPTH_TEST) had no effect")
	}
	c.Disable(DepthTest)
	if c.IsEnabled(DepthTest) {
		t.Error("Disable(DEPTH_TEST) had no effect")
	}
	expectError(t, c, NoError)
}

func TestGetString(t *testing.T) {
	c := newTestContext(t, 4, 4)
	if got := c.GetString(Renderer); got != referenceAdapter.Name {
		t.Errorf("GetString(RENDERER) = %q", got)
	}
	if got := c.GetString(Texture2D); got != "" {
		t.Errorf("GetString(bad) = %q, want empty", got)
	}
	expectError(t, c, InvalidEnum)
}

func TestDestroyedContextPanics(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Surface.Width, cfg.Surface.Height = 2, 2
	c, err := NewReferenceContext(cfg)
	if err != nil {
		t.Fatal(err)
	}
	c.Destroy()
	defer func() {
		if recover() == nil {
			t.Error("call on destroyed context did not panic")
		}
	}()
	c.Clear(ColorBufferBit)
}

func TestBackendRegistry(t *testing.T) {
	names := AvailableBackends()
	found := false
	for _, n := range names {
		found = found || n == BackendReference
	}
	if !found {
		t.Fatalf("AvailableBackends() = %v, missing %q", names, BackendReference)
	}

	cfg := DefaultConfig()
	cfg.Surface.Width, cfg.Surface.Height = 2, 2
	c, err := NewContext("", cfg)
	if err != nil {
		t.Fatalf("NewContext(best): %v", err)
	}
	c.Destroy()

	if _, err := NewContext("vulkan", cfg); !errors.Is(err, ErrBackendNotAvailable) {
		t.Errorf("NewContext(unknown) err = %v, want ErrBackendNotAvailable", err)
	}
}

func TestDriverBackendPreferred(t *testing.T) {
	var called bool
	RegisterBackend(BackendDriver, func(cfg Config, opts ...Option) (Context, error) {
		called = true
		return NewReferenceContext(cfg, opts...)
	})
	t.Cleanup(func() { UnregisterBackend(BackendDriver) })

	cfg := DefaultConfig()
	cfg.Surface.Width, cfg.Surface.Height = 2, 2
	c, err := NewContext("", cfg)
	if err != nil {
		t.Fatal(err)
	}
	c.Destroy()
	if !called {
		t.Error("NewContext(\"\") did not pick the driver backend")
	}
}

func TestSyncObjects(t *testing.T) {
	c := newTestContext(t, 2, 2)

	s := c.FenceSync(SyncGPUCommandsComplete, 0)
	if s == 0 || !c.IsSync(s) {
		t.Fatalf("FenceSync returned %d", s)
	}
	if got := c.ClientWaitSync(s, SyncFlushCommandsBit, 1000); got != AlreadySignaled {
		t.Errorf("ClientWaitSync = %v, want ALREADY_SIGNALED", got)
	}
	c.DeleteSync(s)
	if c.IsSync(s) {
		t.Error("sync alive after DeleteSync")
	}
	if got := c.ClientWaitSync(s, 0, 0); got != WaitFailed {
		t.Errorf("ClientWaitSync(deleted) = %v, want WAIT_FAILED", got)
	}
	expectError(t, c, InvalidValue)

	c.FenceSync(Texture2D, 0)
	expectError(t, c, InvalidEnum)
	c.FenceSync(SyncGPUCommandsComplete, 1)
	expectError(t, c, InvalidValue)
}
