package routedoc

import (
	"reflect"
	"strings"
)

// jsonFieldName returns the JSON field name for a struct field and the
// remaining json tag options.
func jsonFieldName(f reflect.StructField) (string, string) {
	name, opts := tagOptions(f.Tag.Get("json"))
	if name == "" {
		return f.Name, opts
	}
	return name, opts
}

// tagOptions splits a struct tag value on comma and returns
// the name and remaining options.
func tagOptions(tag string) (string, string) {
	name, opts, _ := strings.Cut(tag, ",")
	return name, opts
}

// tagContains reports whether a comma-separated list of options
// contains a particular option.
func tagContains(opts string, name string) bool {
	for opts != "" {
		var opt string
		opt, opts, _ = strings.Cut(opts, ",")
		if opt == name {
			return true
		}
	}
	return false
}
