// Mock principal registry for local development and e2e tests. It answers
// the vetting lookups the gateway makes before admitting verifiers and
// institutions to its allow-lists.
//
// Endpoints:
//
//	GET /verifiers/{principal}
//	GET /institutions/{principal}
//	GET /health
//
// Principals prefixed with "unvetted" are reported as not registered, and
// "broken-registry" triggers a 500, so tests can steer the mock's behavior
// without extra configuration.
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	defaultPort   = "8082"
	defaultAPIKey = "institution-registry-secret-key"
)

type StatusResponse struct {
	Principal  string `json:"principal"`
	Role       string `json:"role"`
	Registered bool   `json:"registered"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

var apiKey = getEnv("API_KEY", defaultAPIKey)

func main() {
	port := getEnv("PORT", defaultPort)

	http.HandleFunc("/health", handleHealth)
	http.HandleFunc("/verifiers/", roleHandler("verifier"))
	http.HandleFunc("/institutions/", roleHandler("institution"))

	log.Printf("mock institution registry starting on port %s", port)
	log.Printf("api key: %s", apiKey)

	srv := &http.Server{
		Addr:              ":" + port,
		ReadHeaderTimeout: 5 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "institution-registry",
	})
}

func roleHandler(role string) http.HandlerFunc {
	prefix := "/" + role + "s/"
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{
				Error: "method_not_allowed", Message: "only GET is supported",
			})
			return
		}
		if key := r.Header.Get("X-API-Key"); apiKey != "" && key != apiKey {
			writeJSON(w, http.StatusUnauthorized, ErrorResponse{
				Error: "unauthorized", Message: "missing or invalid api key",
			})
			return
		}

		principal := strings.TrimPrefix(r.URL.Path, prefix)
		if principal == "" {
			writeJSON(w, http.StatusNotFound, ErrorResponse{
				Error: "not_found", Message: "principal required",
			})
			return
		}

		// Magic principals drive test scenarios.
		switch {
		case strings.HasPrefix(principal, "broken-registry"):
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{
				Error: "internal_error", Message: "simulated registry outage",
			})
			return
		case strings.HasPrefix(principal, "unvetted"):
			writeJSON(w, http.StatusOK, StatusResponse{
				Principal: principal, Role: role, Registered: false,
			})
			return
		}

		writeJSON(w, http.StatusOK, StatusResponse{
			Principal: principal, Role: role, Registered: true,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
