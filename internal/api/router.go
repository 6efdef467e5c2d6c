package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dreamshare/dreams-backend/internal/api/recovery"
	"github.com/dreamshare/dreams-backend/internal/api/respond"
	"github.com/dreamshare/dreams-backend/internal/auth"
	"github.com/dreamshare/dreams-backend/internal/services"
	"github.com/dreamshare/dreams-backend/internal/store"
)

// NewRouter wires all API routes. Mutating dream routes are wrapped with the
// bearer-token middleware; reads and the auth endpoints are public.
func NewRouter(st store.Store, authn *auth.Authenticator, userSvc *services.UserService, dreamSvc *services.DreamService) *mux.Router {
	root := mux.NewRouter()
	root.Use(recovery.Middleware)
	root.Use(CORS)

	// Dreams
	dream := NewDreamHandler(dreamSvc)
	root.HandleFunc("/dreams/user/{userId}", dream.GetDreamsByUser).Methods("GET")
	root.HandleFunc("/dreams/{dreamId}", dream.GetDreamByID).Methods("GET")
	root.Handle("/dreams", authn.Require(http.HandlerFunc(dream.CreateDream))).Methods("POST", "OPTIONS")
	root.Handle("/dreams/{dreamId}", authn.Require(http.HandlerFunc(dream.UpdateDream))).Methods("PATCH", "OPTIONS")
	root.Handle("/dreams/{dreamId}", authn.Require(http.HandlerFunc(dream.DeleteDream))).Methods("DELETE")

	// Users
	user := NewUserHandler(userSvc)
	root.HandleFunc("/users", user.GetUsers).Methods("GET")
	root.HandleFunc("/users/signup", user.Signup).Methods("POST", "OPTIONS")
	root.HandleFunc("/users/login", user.Login).Methods("POST", "OPTIONS")

	// Health
	root.HandleFunc("/health", healthHandler(st)).Methods("GET")

	// Unrouted paths render the same JSON error shape as everything else.
	root.NotFoundHandler = CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond.WriteError(w, http.StatusNotFound, "could not find this route")
	}))

	return root
}

func healthHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := st.Ping(r.Context()); err != nil {
			respond.WriteError(w, http.StatusServiceUnavailable, "store unreachable")
			return
		}
		respond.WriteJSON(w, http.StatusOK, map[string]string{"status": "UP"})
	}
}
