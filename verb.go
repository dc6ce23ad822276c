package routedoc

import (
	"net/http"
	"strings"
)

// Verb is the documented HTTP method of a MethodDescriptor. VerbNone marks
// a descriptor recorded for documentation only, such as a filter binding.
type Verb string

// Documented verbs.
const (
	VerbNone    Verb = ""
	VerbGet     Verb = http.MethodGet
	VerbPost    Verb = http.MethodPost
	VerbPut     Verb = http.MethodPut
	VerbPatch   Verb = http.MethodPatch
	VerbDelete  Verb = http.MethodDelete
	VerbHead    Verb = http.MethodHead
	VerbOptions Verb = http.MethodOptions
)

// verbFor returns the documented verb for a dispatch method. TRACE, CONNECT
// and anything non-standard dispatch normally but are not documented.
func verbFor(method string) Verb {
	//exhaustive:ignore
	switch v := Verb(strings.ToUpper(method)); v {
	case VerbGet, VerbPost, VerbPut, VerbPatch, VerbDelete, VerbHead, VerbOptions:
		return v
	default:
		return VerbNone
	}
}

// key is the lowercase form used in the document's path items.
func (v Verb) key() string { return strings.ToLower(string(v)) }
