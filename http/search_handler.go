package httpapi

import (
    "encoding/json"
    "errors"
    "net/http"
    "strconv"

    "github.com/go-chi/chi/v5"
    "github.com/go-chi/render"

    "github.com/yourorg/aggregator-api/internal/engine"
    "github.com/yourorg/aggregator-api/listing"
)

type SearchDeps struct {
    Engine *engine.Engine
    // CredentialOK is false when the process-wide provider API key is
    // missing; searches then fail with a 500 instead of reaching providers.
    CredentialOK bool
}

func RegisterSearch(r chi.Router, d SearchDeps) {
    // GET: query params (primary surface)
    r.Get("/search", func(w http.ResponseWriter, req *http.Request) {
        handleSearchRequest(w, req, d, queryFromParams(req))
    })

    // POST: JSON body (compatibility)
    r.Post("/search", func(w http.ResponseWriter, req *http.Request) {
        var query listing.Query
        if err := json.NewDecoder(req.Body).Decode(&query); err != nil {
            render.Status(req, http.StatusBadRequest)
            render.JSON(w, req, errorEnvelope("invalid_json"))
            return
        }
        handleSearchRequest(w, req, d, query)
    })
}

func queryFromParams(req *http.Request) listing.Query {
    q := req.URL.Query()
    query := listing.Query{
        City:    q.Get("city"),
        State:   q.Get("state"),
        ZipCode: q.Get("zip"),
        Source:  q.Get("source"),
    }
    query.MinPrice = atoiDefault(q.Get("minPrice"), 0)
    query.MaxPrice = atoiDefault(q.Get("maxPrice"), 0)
    query.MinBeds = atoiDefault(q.Get("beds"), 0)
    query.MinBaths = atoiDefault(q.Get("baths"), 0)
    query.Limit = atoiDefault(q.Get("limit"), 0)
    return query
}

func handleSearchRequest(w http.ResponseWriter, req *http.Request, d SearchDeps, query listing.Query) {
    if query.Source == "" {
        query.Source = engine.SelectorAll
    }
    if query.Limit <= 0 {
        query.Limit = listing.DefaultLimit
    }
    if !query.HasLocation() {
        render.Status(req, http.StatusBadRequest)
        render.JSON(w, req, errorEnvelope("location_required"))
        return
    }
    if !d.CredentialOK {
        render.Status(req, http.StatusInternalServerError)
        render.JSON(w, req, errorEnvelope("provider_credential_missing"))
        return
    }

    res, err := d.Engine.Search(req.Context(), query)
    if err != nil {
        if errors.Is(err, engine.ErrNoLocation) {
            render.Status(req, http.StatusBadRequest)
            render.JSON(w, req, errorEnvelope("location_required"))
            return
        }
        render.Status(req, http.StatusInternalServerError)
        render.JSON(w, req, errorEnvelope("search_failed"))
        return
    }
    render.JSON(w, req, res)
}

// errorEnvelope keeps the error shape aligned with the success envelope so
// callers can always read properties/total.
func errorEnvelope(code string) map[string]any {
    return map[string]any{
        "error":      code,
        "properties": []listing.Listing{},
        "total":      0,
    }
}

func atoiDefault(v string, def int) int {
    if v == "" {
        return def
    }
    i, err := strconv.Atoi(v)
    if err != nil {
        return def
    }
    return i
}
