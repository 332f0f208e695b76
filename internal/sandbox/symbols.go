package sandbox

import (
	"reflect"
	"sort"

	"mesh-creator/internal/geom"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// LibraryPackage is the name scripts use for the geometry library.
const LibraryPackage = "three"

// HostPackage is the package holding the per-run bindings.
const HostPackage = "host"

// Symbols is the geometry library as seen by scripts. Keys follow the yaegi
// "importpath/name" convention.
var Symbols = interp.Exports{
	LibraryPackage + "/" + LibraryPackage: {
		"NewBoxGeometry":          reflect.ValueOf(geom.NewBoxGeometry),
		"NewSphereGeometry":       reflect.ValueOf(geom.NewSphereGeometry),
		"NewCylinderGeometry":     reflect.ValueOf(geom.NewCylinderGeometry),
		"NewTorusGeometry":        reflect.ValueOf(geom.NewTorusGeometry),
		"NewPlaneGeometry":        reflect.ValueOf(geom.NewPlaneGeometry),
		"NewBufferGeometry":       reflect.ValueOf(geom.NewBufferGeometry),
		"NewMeshStandardMaterial": reflect.ValueOf(geom.NewMeshStandardMaterial),
		"NewMesh":                 reflect.ValueOf(geom.NewMesh),
		"NewGroup":                reflect.ValueOf(geom.NewGroup),
		"Traverse":                reflect.ValueOf(geom.Traverse),
		"BoundingBox":             reflect.ValueOf(geom.BoundingBox),

		"BufferGeometry": reflect.ValueOf((*geom.BufferGeometry)(nil)),
		"Attribute":      reflect.ValueOf((*geom.Attribute)(nil)),
		"Material":       reflect.ValueOf((*geom.Material)(nil)),
		"MaterialParams": reflect.ValueOf((*geom.MaterialParams)(nil)),
		"Mesh":           reflect.ValueOf((*geom.Mesh)(nil)),
		"Group":          reflect.ValueOf((*geom.Group)(nil)),
		"Node":           reflect.ValueOf((*geom.Node)(nil)),
		"Object3D":       reflect.ValueOf((*geom.Object3D)(nil)),
	},
}

// allowedStdlib lists the standard library packages scripts may use. They
// are pure computation; nothing here reaches the file system or network.
var allowedStdlib = []string{
	"math/math",
	"strings/strings",
}

func stdlibSymbols() interp.Exports {
	out := interp.Exports{}
	for _, k := range allowedStdlib {
		if syms, ok := stdlib.Symbols[k]; ok {
			out[k] = syms
		}
	}
	return out
}

// Names returns the identifiers a script can reference, qualified by
// package, plus the bare host bindings. The result is sorted.
func Names() []string {
	var names []string
	for _, syms := range Symbols {
		for name := range syms {
			names = append(names, LibraryPackage+"."+name)
		}
	}
	names = append(names, outputVar, logVar)
	sort.Strings(names)
	return names
}
