// refrender renders TOML scenes through the glref reference context and
// compares images against references.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/urfave/cli/v2"

	"github.com/gogpu/glref"
	"github.com/gogpu/glref/imagecmp"
	"github.com/gogpu/glref/imageio"
	"github.com/gogpu/glref/vec"
)

var (
	logLevelFlag = &cli.StringFlag{
		Name:  "log-level",
		Usage: "log level (debug|info|warn|error)",
		Value: "warn",
	}
	backendFlag = &cli.StringFlag{
		Name:  "backend",
		Usage: "context backend; empty picks the best registered one",
	}
	sceneFlag = &cli.StringFlag{
		Name:     "scene",
		Usage:    "scene file (TOML)",
		Required: true,
	}
	outFlag = &cli.StringFlag{
		Name:  "out",
		Usage: "output image (.png or .webp)",
		Value: "out.png",
	}
	refFlag = &cli.StringFlag{
		Name:     "ref",
		Usage:    "reference image",
		Required: true,
	}
	resultFlag = &cli.StringFlag{
		Name:     "result",
		Usage:    "image to check",
		Required: true,
	}
	thresholdFlag = &cli.UintFlag{
		Name:  "threshold",
		Usage: "per-channel tolerance in 8-bit steps",
	}
	maxBadFlag = &cli.IntFlag{
		Name:  "max-bad",
		Usage: "number of pixels allowed to exceed the threshold",
	}
	maskFlag = &cli.StringFlag{
		Name:  "mask",
		Usage: "write the error mask to this file",
	}
)

var (
	renderCommand = &cli.Command{
		Name:   "render",
		Usage:  "Render a scene to an image",
		Flags:  []cli.Flag{sceneFlag, outFlag, backendFlag},
		Action: render,
	}
	limitsCommand = &cli.Command{
		Name:   "limits",
		Usage:  "Print the default context configuration as TOML",
		Action: limits,
	}
	compareCommand = &cli.Command{
		Name:   "compare",
		Usage:  "Compare an image against a reference",
		Flags:  []cli.Flag{refFlag, resultFlag, thresholdFlag, maxBadFlag, maskFlag},
		Action: compare,
	}
)

func newApp() *cli.App {
	return &cli.App{
		Name:     "refrender",
		Usage:    "software reference GL renderer",
		Flags:    []cli.Flag{logLevelFlag},
		Commands: []*cli.Command{renderCommand, limitsCommand, compareCommand},
		Before:   setupLogging,
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogging(ctx *cli.Context) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(ctx.String(logLevelFlag.Name))); err != nil {
		return fmt.Errorf("--%s: %w", logLevelFlag.Name, err)
	}
	glref.SetLogger(slog.New(slog.NewTextHandler(ctx.App.ErrWriter, &slog.HandlerOptions{Level: level})))
	return nil
}

func render(ctx *cli.Context) error {
	scene, err := LoadScene(ctx.String(sceneFlag.Name))
	if err != nil {
		return err
	}
	img, err := RenderScene(ctx.String(backendFlag.Name), scene)
	if err != nil {
		return err
	}
	out := ctx.String(outFlag.Name)
	if err := imageio.Save(out, img); err != nil {
		return err
	}
	glref.Logger().Info("refrender: wrote image", "path", out, "steps", len(scene.Steps))
	return nil
}

func limits(ctx *cli.Context) error {
	return toml.NewEncoder(ctx.App.Writer).Encode(glref.DefaultConfig())
}

func compare(ctx *cli.Context) error {
	ref, err := imageio.Load(ctx.String(refFlag.Name))
	if err != nil {
		return err
	}
	res, err := imageio.Load(ctx.String(resultFlag.Name))
	if err != nil {
		return err
	}
	t := uint32(ctx.Uint(thresholdFlag.Name))
	r, err := imagecmp.PixelThresholdCompare(imagecmp.FromImage(ref), imagecmp.FromImage(res),
		vec.UVec4{t, t, t, t}, ctx.Int(maxBadFlag.Name))
	if err != nil {
		return err
	}
	glref.Logger().Info("refrender: compared", "result", r)
	if mask := ctx.String(maskFlag.Name); mask != "" {
		if err := imageio.Save(mask, r.ErrorMask); err != nil {
			return err
		}
	}
	fmt.Fprintf(ctx.App.Writer, "%d bad pixels, max diff %v\n", r.BadPixels, r.MaxDiff)
	if !r.Passed {
		return fmt.Errorf("images differ: %d bad pixels, %d allowed", r.BadPixels, ctx.Int(maxBadFlag.Name))
	}
	return nil
}
