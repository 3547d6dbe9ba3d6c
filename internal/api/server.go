package api

import (
	"context"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/viniapp/viniapp-node/internal/core/ports"
	"github.com/viniapp/viniapp-node/internal/health"
)

// Server implements the handlers declared in api/api.yaml
type Server struct {
	viniappService ports.ViniappService
	verifier       ports.TransactionVerifier
	health         *health.Status
}

// NewServer is a Server constructor
func NewServer(viniappService ports.ViniappService, verifier ports.TransactionVerifier, health *health.Status) *Server {
	return &Server{
		viniappService: viniappService,
		verifier:       verifier,
		health:         health,
	}
}

// Health is a method
func (s *Server) Health(ctx context.Context, _ HealthRequestObject) (HealthResponseObject, error) {
	return Health200JSONResponse{
		Db:    s.health.DB(ctx),
		Cache: s.health.Cache(ctx),
	}, nil
}

// RegisterStatic add method to the mux that are not documented in the API.
func RegisterStatic(mux *chi.Mux) {
	mux.Get("/", documentation)
	mux.Get("/static/docs/api/api.yaml", swagger)
}

func documentation(w http.ResponseWriter, _ *http.Request) {
	writeFile("api/spec.html", "text/html; charset=UTF-8", w)
}

func swagger(w http.ResponseWriter, _ *http.Request) {
	writeFile("api/api.yaml", "text/yaml; charset=UTF-8", w)
}

func writeFile(path string, mimeType string, w http.ResponseWriter) {
	f, err := os.ReadFile(path)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("not found"))
		return
	}
	w.Header().Set("Content-Type", mimeType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(f)
}
