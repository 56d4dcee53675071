// Package main provides the Texel CLI.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/texel-ml/texel/internal/layout"
	"github.com/texel-ml/texel/internal/texture"
)

const version = "v0.1.0-dev"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			fmt.Printf("Texel %s\n", version)
			return
		case "plan":
			if err := runPlan(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "texel: %v\n", err)
				os.Exit(1)
			}
			return
		}
	}

	fmt.Println("Texel - tensor-to-texture layout planning")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("  plan       Print the physical layout for a logical shape")
	fmt.Println("")
	fmt.Println("Run 'texel plan -h' for planning flags.")
}

// runPlan prints the surface the mapper chooses for a logical shape.
func runPlan(args []string) error {
	fs := flag.NewFlagSet("plan", flag.ContinueOnError)
	shapeArg := fs.String("shape", "", "logical shape, comma separated (e.g. 3,4,5); empty for a scalar")
	maxDim := fs.Int("max", 16384, "maximum texture dimension")
	packed := fs.Bool("packed", false, "use the 2x2 packed encoding")
	if err := fs.Parse(args); err != nil {
		return err
	}

	shape, err := parseShape(*shapeArg)
	if err != nil {
		return err
	}

	frame := layout.TextureShapeOf(shape, *maxDim, *packed)
	fmt.Printf("logical shape:  %v (%d elements)\n", shape, shape.NumElements())
	fmt.Printf("physical frame: %s\n", frame)
	if *packed {
		fmt.Printf("texel grid:     %s (rgba32f)\n", texture.PackedTexelShape(frame))
	}

	limit := *maxDim
	if *packed {
		limit *= 2
	}
	if frame.Rows > limit || frame.Cols > limit {
		fmt.Printf("warning: frame exceeds the %d limit; allocation would be rejected\n", limit)
	}
	return nil
}

func parseShape(arg string) (layout.Shape, error) {
	if strings.TrimSpace(arg) == "" {
		return layout.Shape{}, nil
	}
	parts := strings.Split(arg, ",")
	shape := make(layout.Shape, 0, len(parts))
	for _, p := range parts {
		dim, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || dim < 0 {
			return nil, fmt.Errorf("invalid shape dimension %q", p)
		}
		shape = append(shape, dim)
	}
	return shape, nil
}
