// Package routedoc declares HTTP routes once and keeps two things in sync:
// the live route registered with a delegate router, and the Swagger 2.0
// document describing it.
//
// A Service owns the configuration and the delegate. Endpoints group
// methods under a shared path:
//
//	mux := routedoc.NewMux()
//	svc, err := routedoc.New(mux, routedoc.Config{
//	    BasePath: "/api",
//	    Host:     "api.example.com",
//	    Title:    "Users",
//	})
//
//	users, err := svc.Endpoint(routedoc.Path("/users", routedoc.WithTag("users", "User accounts")), nil)
//	err = users.Get(routedoc.Method("/{id}",
//	    routedoc.WithSummary("Get user"),
//	    routedoc.WithResponseType[User](),
//	), getUser)
//
// The GET above is served at /api/users/{id} and documented under
// paths["/users/{id}"]["get"] with basePath "/api".
//
// Every verb goes through the same binding path: the descriptor is built,
// its path is composed onto the endpoint path, the route is registered with
// the delegate, and only then is the descriptor recorded. Secondary dispatch
// parameters (accept type, response transformer, template engine) are
// passed to the delegate as DispatchOptions.
//
// The assembled document can be written as JSON or YAML, converted to
// OpenAPI 3, served from the delegate with ServeDocs, or written to disk
// with GenerateDoc.
package routedoc
