package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/gogpu/glref"
)

// Scene is a TOML-described sequence of render steps.
//
//	[context.surface]
//	width = 64
//	height = 64
//
//	[[step]]
//	op = "clear"
//	color = [0, 0, 0, 1]
//
//	[[step]]
//	op = "draw"
//	positions = [[-1, -1, 0], [1, -1, 0], [0, 1, 0]]
//	colors = [[1, 0, 0, 1]]
type Scene struct {
	Context glref.Config `toml:"context"`
	Steps   []Step       `toml:"step"`
}

// Step is one scene operation. Op selects which of the other fields apply:
//
//	clear    color, depth, stencil
//	scissor  rect (x, y, width, height); empty disables the test
//	blend    src, dst, equation; empty src disables blending
//	depth    func; empty disables the test
//	draw     mode, positions, colors (one per vertex, or one for all)
type Step struct {
	Op string `toml:"op"`

	Color   []float32 `toml:"color"`
	Depth   *float32  `toml:"depth"`
	Stencil *int32    `toml:"stencil"`

	Rect []int `toml:"rect"`

	Src      string `toml:"src"`
	Dst      string `toml:"dst"`
	Equation string `toml:"equation"`

	Func string `toml:"func"`

	Mode      string      `toml:"mode"`
	Positions [][]float32 `toml:"positions"`
	Colors    [][]float32 `toml:"colors"`
}

var errScene = errors.New("invalid scene")

var blendFactors = map[string]glref.Enum{
	"zero":                     glref.Zero,
	"one":                      glref.One,
	"src_color":                glref.SrcColor,
	"one_minus_src_color":      glref.OneMinusSrcColor,
	"src_alpha":                glref.SrcAlpha,
	"one_minus_src_alpha":      glref.OneMinusSrcAlpha,
	"dst_alpha":                glref.DstAlpha,
	"one_minus_dst_alpha":      glref.OneMinusDstAlpha,
	"dst_color":                glref.DstColor,
	"one_minus_dst_color":      glref.OneMinusDstColor,
	"src_alpha_saturate":       glref.SrcAlphaSaturate,
	"constant_color":           glref.ConstantColor,
	"one_minus_constant_color": glref.OneMinusConstantColor,
	"constant_alpha":           glref.ConstantAlpha,
	"one_minus_constant_alpha": glref.OneMinusConstantAlpha,
}

var blendEquations = map[string]glref.Enum{
	"":                 glref.FuncAdd,
	"add":              glref.FuncAdd,
	"subtract":         glref.FuncSubtract,
	"reverse_subtract": glref.FuncReverseSubtract,
	"min":              glref.FuncMin,
	"max":              glref.FuncMax,
	"multiply":         glref.Multiply,
	"screen":           glref.Screen,
	"overlay":          glref.Overlay,
	"darken":           glref.Darken,
	"lighten":          glref.Lighten,
	"difference":       glref.Difference,
	"exclusion":        glref.Exclusion,
}

var depthFuncs = map[string]glref.Enum{
	"never":    glref.Never,
	"less":     glref.Less,
	"equal":    glref.Equal,
	"lequal":   glref.Lequal,
	"greater":  glref.Greater,
	"notequal": glref.Notequal,
	"gequal":   glref.Gequal,
	"always":   glref.Always,
}

var primitiveModes = map[string]glref.Enum{
	"":               glref.Triangles,
	"triangles":      glref.Triangles,
	"triangle_strip": glref.TriangleStrip,
	"triangle_fan":   glref.TriangleFan,
	"lines":          glref.Lines,
	"line_strip":     glref.LineStrip,
	"line_loop":      glref.LineLoop,
	"points":         glref.Points,
}

// LoadScene reads a scene file. Context settings it leaves out keep their
// defaults.
func LoadScene(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeScene(f)
}

// DecodeScene parses and validates a scene.
func DecodeScene(r io.Reader) (*Scene, error) {
	s := &Scene{Context: glref.DefaultConfig()}
	md, err := toml.NewDecoder(r).Decode(s)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: unknown key %q", errScene, undecoded[0].String())
	}
	if err := s.Context.Validate(); err != nil {
		return nil, err
	}
	for i, st := range s.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("%w: step %d (%s): %v", errScene, i, st.Op, err)
		}
	}
	return s, nil
}

func (st *Step) validate() error {
	switch st.Op {
	case "clear":
		if st.Color != nil && len(st.Color) != 4 {
			return errors.New("color needs 4 components")
		}
	case "scissor":
		if len(st.Rect) != 0 && len(st.Rect) != 4 {
			return errors.New("rect needs x, y, width, height")
		}
	case "blend":
		if st.Src == "" {
			return nil
		}
		if _, ok := blendFactors[st.Src]; !ok {
			return fmt.Errorf("unknown blend factor %q", st.Src)
		}
		if _, ok := blendFactors[st.Dst]; !ok {
			return fmt.Errorf("unknown blend factor %q", st.Dst)
		}
		if _, ok := blendEquations[st.Equation]; !ok {
			return fmt.Errorf("unknown blend equation %q", st.Equation)
		}
	case "depth":
		if _, ok := depthFuncs[st.Func]; st.Func != "" && !ok {
			return fmt.Errorf("unknown depth func %q", st.Func)
		}
	case "draw":
		if _, ok := primitiveModes[st.Mode]; !ok {
			return fmt.Errorf("unknown mode %q", st.Mode)
		}
		for _, p := range st.Positions {
			if len(p) < 2 || len(p) > 4 {
				return errors.New("positions need 2 to 4 components")
			}
		}
		if len(st.Colors) != 1 && len(st.Colors) != len(st.Positions) {
			return errors.New("give one color, or one per position")
		}
		for _, c := range st.Colors {
			if len(c) != 4 {
				return errors.New("colors need 4 components")
			}
		}
	default:
		return errors.New("unknown op")
	}
	return nil
}
