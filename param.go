package routedoc

// ParamLocation is where a parameter is carried in the request.
type ParamLocation string

// Parameter locations (Swagger 2.0 "in" values).
const (
	InPath   ParamLocation = "path"
	InQuery  ParamLocation = "query"
	InHeader ParamLocation = "header"
	InBody   ParamLocation = "body"
	InForm   ParamLocation = "formData"
)

func (l ParamLocation) valid() bool {
	//exhaustive:ignore
	switch l {
	case InPath, InQuery, InHeader, InBody, InForm:
		return true
	default:
		return false
	}
}

// Param documents a single operation parameter.
type Param struct {
	Name             string
	In               ParamLocation
	Description      string
	Required         bool
	Type             string
	Format           string
	Items            string
	CollectionFormat string
}

// ParamOption configures a Param.
type ParamOption func(*Param)

// ParamDescription sets the parameter description.
func ParamDescription(d string) ParamOption {
	return func(p *Param) {
		p.Description = d
	}
}

// ParamRequired marks the parameter as required. Path parameters are
// always required regardless.
func ParamRequired() ParamOption {
	return func(p *Param) {
		p.Required = true
	}
}

// ParamType sets the primitive type and optional format ("integer", "int64").
func ParamType(typ, format string) ParamOption {
	return func(p *Param) {
		p.Type = typ
		p.Format = format
	}
}

// ParamArray makes the parameter an array of itemType.
func ParamArray(itemType string) ParamOption {
	return func(p *Param) {
		p.Type = "array"
		p.Items = itemType
	}
}

// ParamCollectionFormat sets how array values are serialized
// ("csv", "ssv", "tsv", "pipes", "multi").
func ParamCollectionFormat(f string) ParamOption {
	return func(p *Param) {
		p.CollectionFormat = f
	}
}

func newParam(name string, in ParamLocation, opts []ParamOption) Param {
	p := Param{Name: name, In: in}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// PathParam declares a path parameter.
func PathParam(name string, opts ...ParamOption) Param {
	return newParam(name, InPath, opts)
}

// QueryParam declares a query parameter.
func QueryParam(name string, opts ...ParamOption) Param {
	return newParam(name, InQuery, opts)
}

// HeaderParam declares a header parameter.
func HeaderParam(name string, opts ...ParamOption) Param {
	return newParam(name, InHeader, opts)
}

// FormParam declares a form-data parameter.
func FormParam(name string, opts ...ParamOption) Param {
	return newParam(name, InForm, opts)
}

// Resolved returns the parameter with location rules applied: path
// parameters are required, header parameters default to the "multi"
// collection format, other arrays default to "csv", and an untyped
// non-body parameter is a string.
func (p Param) Resolved() Param {
	if p.In == InPath {
		p.Required = true
	}
	if p.Type == "" && p.In != InBody {
		p.Type = "string"
	}
	if p.CollectionFormat == "" {
		switch {
		case p.In == InHeader:
			p.CollectionFormat = "multi"
		case p.Type == "array":
			p.CollectionFormat = "csv"
		}
	}
	return p
}
