package routedoc

import (
	"slices"
	"strconv"
)

// docMeta is the service-wide information an assembled document carries.
// host and version are already resolved.
type docMeta struct {
	cfg      Config
	host     string
	basePath string
	version  string
}

// assemble builds the document from the endpoints in declaration order.
// A path and verb bound twice keeps the later operation.
func assemble(meta docMeta, endpoints []*EndpointDescriptor, ignored func(path string) bool) *Document {
	doc := &Document{
		Swagger:  "2.0",
		Host:     meta.host,
		BasePath: meta.basePath,
		Schemes:  slices.Clone(meta.cfg.Schemes),
		Info: Info{
			Title:          meta.cfg.Title,
			Version:        meta.version,
			Description:    meta.cfg.Description,
			TermsOfService: meta.cfg.TermsOfService,
			Contact:        meta.cfg.Contact,
			License:        meta.cfg.License,
		},
		Paths: make(map[string]PathItem),
	}
	if ext := meta.cfg.ExternalDoc; ext != nil {
		doc.ExternalDocs = &ExternalDocs{URL: ext.URL, Description: ext.Description}
	}

	reg := newSchemaRegistry()

	for _, ep := range endpoints {
		if ignored != nil && ignored(ep.path) {
			continue
		}
		doc.addTag(ep.tag)

		for _, md := range ep.methods {
			if md.verb == VerbNone {
				continue
			}
			key := toDocPath(md.path)
			if doc.Paths[key] == nil {
				doc.Paths[key] = make(PathItem)
			}
			doc.Paths[key][md.verb.key()] = buildOperation(ep, md, key, reg)
		}
	}

	if len(reg.defs) > 0 {
		doc.Definitions = reg.defs
	}
	return doc
}

// addTag appends t unless a tag with the same name is already present.
func (d *Document) addTag(t Tag) {
	if slices.ContainsFunc(d.Tags, func(existing Tag) bool { return existing.Name == t.Name }) {
		return
	}
	d.Tags = append(d.Tags, t)
}

// buildOperation creates an Operation from a method descriptor.
func buildOperation(ep *EndpointDescriptor, md *MethodDescriptor, key string, reg *schemaRegistry) Operation {
	info := &md.info

	op := Operation{
		Tags:        append([]string{ep.tag.Name}, info.tags...),
		Summary:     info.summary,
		Description: info.description,
		OperationID: info.operationID,
		Consumes:    info.consumes,
		Produces:    info.produces,
		Deprecated:  info.deprecated,
		Responses:   make(map[string]Response),
	}
	if op.Description == "" {
		op.Description = ep.description
	}
	if info.externalDocs != nil {
		ext := *info.externalDocs
		op.ExternalDocs = &ext
	}

	op.Parameters = buildParameters(key, md.Params())

	if info.reqType != nil {
		op.Parameters = append(op.Parameters, Parameter{
			Name:        "body",
			In:          string(InBody),
			Description: "Request body",
			Required:    true,
			Schema:      reg.bodySchema(info.reqType, info.reqList),
		})
	}

	for status, rs := range info.responses {
		resp := Response{Description: rs.Description}
		if rs.Type != nil {
			resp.Schema = reg.bodySchema(rs.Type, rs.Collection)
		}
		op.Responses[strconv.Itoa(status)] = resp
	}

	ok := op.Responses["200"]
	if ok.Description == "" {
		ok.Description = "successful operation"
	}
	if info.respType != nil {
		ok.Schema = reg.bodySchema(info.respType, info.respList)
	}
	op.Responses["200"] = ok

	return op
}

// buildParameters converts declared params and adds any {name} path
// segment that was not declared as an implicit string path parameter.
func buildParameters(key string, params []Param) []Parameter {
	var out []Parameter
	declared := make(map[string]bool)

	for _, p := range params {
		if p.In == InPath {
			declared[p.Name] = true
		}
		out = append(out, toParameter(p))
	}

	for _, name := range pathParamNames(key) {
		if declared[name] {
			continue
		}
		declared[name] = true
		out = append(out, toParameter(PathParam(name).Resolved()))
	}
	return out
}

func toParameter(p Param) Parameter {
	out := Parameter{
		Name:        p.Name,
		In:          string(p.In),
		Description: p.Description,
		Required:    p.Required,
		Type:        p.Type,
		Format:      p.Format,
	}
	// collectionFormat only has meaning for arrays.
	if p.Type == "array" {
		itemType := p.Items
		if itemType == "" {
			itemType = "string"
		}
		out.Items = &Schema{Type: itemType}
		out.CollectionFormat = p.CollectionFormat
	}
	return out
}
