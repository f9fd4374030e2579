package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/bartek5186/woo2katana/internal/bridge"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// Creator – akcja "Create Katana Product"
type Creator interface {
	Create(ctx context.Context, productID int64) bridge.Outcome
}

// Router wraps the mux router and the creator
type Router struct {
	*mux.Router
	log     zerolog.Logger
	creator Creator
}

func NewRouter(log zerolog.Logger, c Creator) *Router {
	r := &Router{
		Router:  mux.NewRouter(),
		log:     log,
		creator: c,
	}

	r.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/products/{id}/katana", r.createProduct).Methods(http.MethodPost)

	return r
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// createProduct – raz rozpoczęte wywołanie idzie do końca, nawet gdy klient się rozłączy
func (r *Router) createProduct(w http.ResponseWriter, req *http.Request) {
	id := bridge.ParseProductID(mux.Vars(req)["id"])

	out := r.creator.Create(context.WithoutCancel(req.Context()), id)
	r.log.Debug().Int64("product_id", id).Bool("success", out.Success).Str("kind", string(out.Kind)).Msg("http create")

	respondJSON(w, statusFor(out), out)
}

func statusFor(o bridge.Outcome) int {
	if o.Success {
		return http.StatusOK
	}
	switch o.Kind {
	case bridge.KindInvalidProductID:
		return http.StatusBadRequest
	case bridge.KindProductNotFound:
		return http.StatusNotFound
	case bridge.KindMissingAPIKey:
		return http.StatusPreconditionFailed
	case bridge.KindAlreadyExists, bridge.KindNoNewVariants:
		return http.StatusConflict
	case bridge.KindMissingSKU, bridge.KindUnsupportedType:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
