package gridspace

import (
	"fmt"
	"os"
)

// debugWarnOrientation reports a transform on a layer whose orientation is
// not recognized. The transform still returns the point unchanged.
func debugWarnOrientation(layer *Layer) {
	_, _ = fmt.Fprintf(os.Stderr, "[gridspace] warning: layer %q has unknown orientation %v; point left unchanged\n",
		layer.Name, layer.Orientation)
}

// debugCheckLayer warns on stderr if a layer fails validation.
func debugCheckLayer(layer *Layer) {
	if err := layer.Validate(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[gridspace] warning: %v\n", err)
	}
}
