package main

import (
	"bytes"
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"

	"github.com/gogpu/glref"
	"github.com/gogpu/glref/imageio"
)

const splitScene = `
[context.surface]
width = 8
height = 8

[[step]]
op = "clear"
color = [0.0, 0.0, 0.0, 1.0]

[[step]]
op = "draw"
mode = "triangle_strip"
positions = [[-1.0, -1.0], [1.0, -1.0], [-1.0, 1.0], [1.0, 1.0]]
colors = [[0.0, 1.0, 0.0, 1.0]]

[[step]]
op = "scissor"
rect = [0, 0, 4, 8]

[[step]]
op = "clear"
color = [1.0, 0.0, 0.0, 1.0]
`

func TestRenderScene(t *testing.T) {
	s, err := DecodeScene(strings.NewReader(splitScene))
	if err != nil {
		t.Fatal(err)
	}
	if s.Context.Surface.Width != 8 || s.Context.Limits != glref.DefaultLimits() {
		t.Fatalf("context config = %+v", s.Context)
	}
	img, err := RenderScene("", s)
	if err != nil {
		t.Fatal(err)
	}
	red := color.NRGBA{255, 0, 0, 255}
	green := color.NRGBA{0, 255, 0, 255}
	for y := range 8 {
		for x := range 8 {
			want := green
			if x < 4 {
				want = red
			}
			if got := img.NRGBAAt(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestDecodeSceneErrors(t *testing.T) {
	tests := []struct {
		name  string
		scene string
	}{
		{"unknown op", "[[step]]\nop = \"spin\""},
		{"short color", "[[step]]\nop = \"clear\"\ncolor = [1.0]"},
		{"bad factor", "[[step]]\nop = \"blend\"\nsrc = \"one\"\ndst = \"two\""},
		{"bad depth func", "[[step]]\nop = \"depth\"\nfunc = \"sideways\""},
		{"color count", "[[step]]\nop = \"draw\"\npositions = [[0.0, 0.0], [1.0, 0.0], [0.0, 1.0]]\ncolors = [[1.0, 0.0, 0.0, 1.0], [0.0, 1.0, 0.0, 1.0]]"},
		{"unknown key", "[[step]]\nop = \"clear\"\ncolour = [1.0, 0.0, 0.0, 1.0]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeScene(strings.NewReader(tt.scene))
			if !errors.Is(err, errScene) {
				t.Errorf("err = %v, want errScene", err)
			}
		})
	}

	_, err := DecodeScene(strings.NewReader("[context.surface]\nwidth = -1"))
	if !errors.Is(err, glref.ErrInvalidConfig) {
		t.Errorf("bad surface err = %v, want ErrInvalidConfig", err)
	}
}

func TestRunStopsAtGLError(t *testing.T) {
	s, err := DecodeScene(strings.NewReader("[context.surface]\nwidth = 4\nheight = 4\n\n[[step]]\nop = \"scissor\"\nrect = [0, 0, -1, 4]"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := RenderScene("", s); err == nil || !strings.Contains(err.Error(), "INVALID_VALUE") {
		t.Errorf("err = %v, want INVALID_VALUE from step 0", err)
	}
}

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(append([]string{"refrender"}, args...))
	return out.String(), err
}

func TestLimitsCommand(t *testing.T) {
	out, err := runApp(t, "limits")
	if err != nil {
		t.Fatal(err)
	}
	var cfg glref.Config
	if _, err := toml.Decode(out, &cfg); err != nil {
		t.Fatalf("limits output is not TOML: %v\n%s", err, out)
	}
	if cfg != glref.DefaultConfig() {
		t.Errorf("limits = %+v, want defaults", cfg)
	}
}

func TestRenderAndCompareCommands(t *testing.T) {
	dir := t.TempDir()
	scene := filepath.Join(dir, "scene.toml")
	if err := os.WriteFile(scene, []byte(splitScene), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out.webp")
	if _, err := runApp(t, "render", "--scene", scene, "--out", out); err != nil {
		t.Fatal(err)
	}

	// A reference with one pixel off.
	ref, err := imageio.Load(out)
	if err != nil {
		t.Fatal(err)
	}
	ref.SetNRGBA(7, 0, color.NRGBA{0, 0, 255, 255})
	refPath := filepath.Join(dir, "ref.png")
	if err := imageio.SavePNG(refPath, ref); err != nil {
		t.Fatal(err)
	}

	mask := filepath.Join(dir, "mask.png")
	if _, err := runApp(t, "compare", "--ref", refPath, "--result", out, "--max-bad", "1", "--mask", mask); err != nil {
		t.Errorf("compare with one allowed bad pixel: %v", err)
	}
	if _, err := os.Stat(mask); err != nil {
		t.Errorf("mask not written: %v", err)
	}
	if _, err := runApp(t, "compare", "--ref", refPath, "--result", out); err == nil {
		t.Error("compare passed with a differing pixel")
	}
}
