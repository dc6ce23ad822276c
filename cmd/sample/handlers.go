package main

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/bjaus/routedoc"
)

var validate = validator.New()

// decode reads a JSON body into v and validates it.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(v); err != nil {
		return routedoc.Haltf(http.StatusBadRequest, "invalid body: %v", err)
	}
	if err := validate.Struct(v); err != nil {
		return &routedoc.ProblemDetail{
			Type:   "about:blank",
			Title:  "Unprocessable Entity",
			Status: http.StatusUnprocessableEntity,
			Detail: err.Error(),
		}
	}
	return nil
}

// created marks a route result as 201.
type created struct {
	value any
}

func (c created) StatusCode() int { return http.StatusCreated }

func (c created) MarshalJSON() ([]byte, error) { return json.Marshal(c.value) }

func (c created) MarshalXML(e *xml.Encoder, _ xml.StartElement) error { return e.Encode(c.value) }

type usersBinder struct {
	store *store
}

func (b usersBinder) Bind(svc *routedoc.Service) error {
	return svc.Define(routedoc.Path("/users",
		routedoc.WithTag("users", "Shop customers"),
		routedoc.WithEndpointDescription("Manage customers."),
	), nil, func(ep *routedoc.Endpoint) error {
		if err := ep.Get(routedoc.Method("",
			routedoc.WithSummary("List users"),
			routedoc.WithProduces("application/json", "application/xml"),
			routedoc.WithResponseAsCollection[User](),
		), b.list); err != nil {
			return err
		}

		if err := ep.Post(routedoc.Method("",
			routedoc.WithSummary("Create user"),
			routedoc.WithOperationID("createUser"),
			routedoc.WithConsumes("application/json"),
			routedoc.WithRequestType[CreateUserRequest](),
			routedoc.WithTypedResponse[User](http.StatusCreated, "User created"),
			routedoc.WithTypedResponse[routedoc.ProblemDetail](http.StatusUnprocessableEntity, "Validation failed"),
		), b.create); err != nil {
			return err
		}

		byID := routedoc.Method("/{id}",
			routedoc.WithSummary("Get user"),
			routedoc.WithParams(routedoc.PathParam("id", routedoc.ParamType("integer", "int64"))),
			routedoc.WithProduces("application/json", "application/xml", "text/csv"),
			routedoc.WithResponseType[User](),
			routedoc.WithResponse(http.StatusNotFound, "User not found"),
		)
		if err := ep.Get(byID, b.get); err != nil {
			return err
		}
		if err := ep.Get(byID, b.get, routedoc.WithAcceptType("text/csv"), routedoc.WithTransformer(userCSV)); err != nil {
			return err
		}

		return ep.Delete(routedoc.Method("/{id}",
			routedoc.WithSummary("Delete user"),
			routedoc.WithResponse(http.StatusNoContent, "User deleted"),
			routedoc.WithResponse(http.StatusNotFound, "User not found"),
		), b.delete)
	})
}

func (b usersBinder) list(http.ResponseWriter, *http.Request) (any, error) {
	return b.store.listUsers(), nil
}

func (b usersBinder) create(w http.ResponseWriter, r *http.Request) (any, error) {
	var req CreateUserRequest
	if err := decode(w, r, &req); err != nil {
		return nil, err
	}
	return created{value: b.store.addUser(req.Name, req.Email)}, nil
}

func (b usersBinder) get(_ http.ResponseWriter, r *http.Request) (any, error) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		return nil, routedoc.Halt(http.StatusBadRequest, err.Error())
	}
	return b.store.user(id)
}

func (b usersBinder) delete(w http.ResponseWriter, r *http.Request) (any, error) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		return nil, routedoc.Halt(http.StatusBadRequest, err.Error())
	}
	if err := b.store.deleteUser(id); err != nil {
		return nil, err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil, nil
}

func userCSV(v any) ([]byte, error) {
	u, ok := v.(User)
	if !ok {
		return nil, fmt.Errorf("csv: unexpected %T", v)
	}
	return []byte(strings.Join([]string{strconv.FormatInt(u.ID, 10), u.Name, u.Email}, ",") + "\n"), nil
}

type ordersBinder struct {
	store *store
}

func (b ordersBinder) Bind(svc *routedoc.Service) error {
	limit := routedoc.RateLimit(routedoc.RateLimitConfig{Rate: 5, Burst: 10})

	return svc.Define(routedoc.Path("/orders",
		routedoc.WithTag("orders", "Purchases"),
		routedoc.WithTagExternalDocs("https://example.com/docs/orders", "Ordering guide"),
	), limit, func(ep *routedoc.Endpoint) error {
		if err := ep.Get(routedoc.Method("",
			routedoc.WithSummary("List orders"),
			routedoc.WithParams(routedoc.QueryParam("user_id",
				routedoc.ParamType("integer", "int64"),
				routedoc.ParamDescription("Only orders placed by this user"),
			)),
			routedoc.WithResponseAsCollection[Order](),
		), b.list); err != nil {
			return err
		}

		if err := ep.Post(routedoc.Method("",
			routedoc.WithSummary("Place order"),
			routedoc.WithRequestType[PlaceOrderRequest](),
			routedoc.WithTypedResponse[Order](http.StatusCreated, "Order placed"),
			routedoc.WithResponse(http.StatusNotFound, "Unknown user"),
		), b.place); err != nil {
			return err
		}

		return ep.AfterAfterAll(func(w http.ResponseWriter, _ *http.Request) error {
			w.Header().Set("Cache-Control", "no-store")
			return nil
		})
	})
}

func (b ordersBinder) list(_ http.ResponseWriter, r *http.Request) (any, error) {
	var userID int64
	if q := r.URL.Query().Get("user_id"); q != "" {
		id, err := parseID(q)
		if err != nil {
			return nil, routedoc.Halt(http.StatusBadRequest, err.Error())
		}
		userID = id
	}
	return b.store.listOrders(userID), nil
}

func (b ordersBinder) place(w http.ResponseWriter, r *http.Request) (any, error) {
	var req PlaceOrderRequest
	if err := decode(w, r, &req); err != nil {
		return nil, err
	}
	o, err := b.store.placeOrder(req)
	if err != nil {
		return nil, err
	}
	return created{value: o}, nil
}
