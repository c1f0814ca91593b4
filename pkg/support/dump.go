package support

import (
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
)

// Mappable values are dumped through their map form.
type Mappable interface {
	ToMap() map[string]any
}

var (
	dumpOutput io.Writer = os.Stdout
	exit                 = os.Exit

	dumpConfig = &spew.ConfigState{
		Indent:                  "  ",
		DisablePointerAddresses: true,
		DisableCapacities:       true,
		SortKeys:                true,
	}
	ppConfig = &spew.ConfigState{
		Indent:                  "  ",
		DisableMethods:          true,
		DisablePointerMethods:   true,
		DisablePointerAddresses: true,
		DisableCapacities:       true,
		SortKeys:                true,
	}
)

// Dump writes a structural dump of every value to stdout.
func Dump(values ...any) {
	Fdump(dumpOutput, values...)
}

// Fdump writes a structural dump of every value to w.
func Fdump(w io.Writer, values ...any) {
	for _, v := range values {
		dumpConfig.Fdump(w, toMap(v))
	}
}

// PP pretty-prints every value as a Go literal to stdout.
func PP(values ...any) {
	Fpp(dumpOutput, values...)
}

// Fpp is PP writing to w.
func Fpp(w io.Writer, values ...any) {
	for _, v := range values {
		ppConfig.Fprintf(w, "%#+v\n", toMap(v))
	}
}

func DumpAndExit(values ...any) {
	Dump(values...)
	exit(1)
}

func PPAndExit(values ...any) {
	PP(values...)
	exit(1)
}

func toMap(v any) any {
	if m, ok := v.(Mappable); ok {
		return m.ToMap()
	}
	return v
}
