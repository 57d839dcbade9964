package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"Orthos/internal/auth"
	"Orthos/internal/calc/batch"
	"Orthos/internal/calc/bending"
	"Orthos/internal/calc/buckling"
	"Orthos/internal/calc/fatigue"
	"Orthos/internal/calc/hole"
	"Orthos/internal/calc/importer"
	"Orthos/internal/calc/micromech"
	"Orthos/internal/calc/report"
	"Orthos/internal/calc/sizing"
	"Orthos/internal/config"
	"Orthos/internal/history"
	"Orthos/internal/laminate"
	"Orthos/internal/repo"
	"Orthos/internal/version"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

// HandleList registers every route. store may be nil, in which case the
// account and history routes are not mounted.
func HandleList(mux *mux.Router, cfg *config.Config, mats config.Materials, store repo.Repository) {
	limiter := auth.NewIPRateLimiter(rate.Limit(cfg.Rate), cfg.Burst)

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok", "version": version.String()})
	}).Methods("GET")

	api.HandleFunc("/materials", func(w http.ResponseWriter, r *http.Request) {
		list := make([]laminate.Material, 0, len(mats))
		for _, name := range mats.Names() {
			list = append(list, mats[name])
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(list)
	}).Methods("GET")

	bendingH := &bending.Handler{Materials: mats}
	bucklingH := &buckling.Handler{}
	importH := &importer.Handler{Materials: mats}
	batchH := &batch.Handler{Materials: mats}
	reportH := &report.Handler{Materials: mats}
	sizingH := &sizing.Handler{Materials: mats}
	micromechH := &micromech.Handler{}
	holeH := &hole.Handler{Materials: mats}
	fatigueH := &fatigue.Handler{}

	api.HandleFunc("/plate/bending", bendingH.Calc).Methods("POST")
	api.HandleFunc("/plate/bending/map", bendingH.Map).Methods("POST")
	api.HandleFunc("/plate/bending/xlsx", importH.Export).Methods("POST")
	api.HandleFunc("/plate/laminate", bendingH.Laminate).Methods("POST")
	api.HandleFunc("/plate/buckling", bucklingH.Calc).Methods("POST")
	api.HandleFunc("/plate/import", importH.Import).Methods("POST")
	api.HandleFunc("/plate/batch", batchH.Plates).Methods("POST")
	api.HandleFunc("/plate/report", reportH.Generate).Methods("POST")
	api.HandleFunc("/plate/sizing", sizingH.Plate).Methods("POST")

	api.HandleFunc("/micromechanics", micromechH.Calc).Methods("POST")
	api.HandleFunc("/micromechanics/scan", micromechH.Scan).Methods("POST")
	api.HandleFunc("/hole/psc", holeH.PSC).Methods("POST")
	api.HandleFunc("/hole/boundary", holeH.Boundary).Methods("POST")
	api.HandleFunc("/fatigue", fatigueH.Calc).Methods("POST")
	api.HandleFunc("/fatigue/chart", fatigueH.Chart).Methods("POST")

	if store != nil {
		authEnv := &auth.Env{JWTKey: []byte(cfg.TokenKey), Repo: store, SecureCookie: cfg.TLS()}
		historyH := &history.Handler{Repo: store}

		api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")
		api.HandleFunc("/login", authEnv.LoginHandler).Methods("POST")

		secureApi := api.PathPrefix("/user").Subrouter()
		secureApi.Use(authEnv.Middleware)

		secureApi.HandleFunc("/analyses", historyH.List).Methods("GET")
		secureApi.HandleFunc("/analyses/{id:[0-9]+}", historyH.Get).Methods("GET")

		recBendingH := &bending.Handler{Materials: mats, Recorder: store}
		recBucklingH := &buckling.Handler{Recorder: store}
		secureApi.HandleFunc("/plate/bending", recBendingH.Calc).Methods("POST")
		secureApi.HandleFunc("/plate/buckling", recBucklingH.Calc).Methods("POST")
	}

	if cfg.StaticDir != "" {
		mux.PathPrefix("/").Handler(http.FileServer(http.Dir(cfg.StaticDir)))
	}
}

// openRepository picks the account store: Postgres when DATABASE_URL is set,
// memory otherwise, nothing when accounts are off.
func openRepository(ctx context.Context, cfg *config.Config) (repo.Repository, func(), error) {
	if !cfg.Accounts() {
		return nil, func() {}, nil
	}
	if cfg.DatabaseURL == "" {
		log.Println("DATABASE_URL not set, accounts are kept in memory")
		return repo.NewMemory(), func() {}, nil
	}
	db, err := repo.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	pg := repo.NewPostgres(db)
	if err := pg.Migrate(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	return pg, func() { db.Close() }, nil
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	mats, err := config.LoadMaterials(cfg.MaterialsFile)
	if err != nil {
		log.Fatalf("Error loading materials: %v", err)
	}
	store, closeStore, err := openRepository(ctx, cfg)
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}
	defer closeStore()

	mux := mux.NewRouter()
	HandleList(mux, cfg, mats, store)
	handler := CORS(mux)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Printf("Starting orthos %s on %s", version.String(), cfg.Addr)

	wg.Add(1)
	go func() {
		defer wg.Done()
		var err error
		if cfg.TLS() {
			err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
			cancel()
		}
	}()

	<-ctx.Done()
	log.Println("Shutdown signal received, closing active connections")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped")

	wg.Wait()
}
