// internal/platform/di/container.go
package di

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"foodhall/internal/adapters/in/http/handlers"
	"foodhall/internal/adapters/in/http/middleware"
	outdb "foodhall/internal/adapters/out/db"
	outfs "foodhall/internal/adapters/out/firestore"
	outgcs "foodhall/internal/adapters/out/gcs"
	usecase "foodhall/internal/application/usecase"
	appcfg "foodhall/internal/infra/config"
	"foodhall/internal/infra/database"
	firestoreinfra "foodhall/internal/infra/firestore"
	"foodhall/internal/infra/secrets"
)

// Container owns the external clients and the fully wired router.
//
// Postgres / Firestore / GCS are strict (init error aborts); Firebase Auth is
// best-effort (warn + continue: catalog routes still work, cart routes answer
// 503 until auth is configured).
type Container struct {
	Config *appcfg.Config

	DB        *database.DB
	Firestore *firestoreinfra.ClientWrapper
	GCS       *storage.Client
	Auth      *fbauth.Client

	CartUsecase    *usecase.CartUsecase
	CatalogUsecase *usecase.CatalogUsecase

	Router http.Handler
}

func NewContainer(ctx context.Context) (*Container, error) {
	cfg := appcfg.Load()
	if cfg == nil {
		return nil, errors.New("di: config is nil")
	}

	c := &Container{Config: cfg}

	var clientOpts []option.ClientOption
	if cred := strings.TrimSpace(cfg.GCPCreds); cred != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(cred))
		log.Printf("[di] using credentials file for GCP clients")
	} else {
		log.Printf("[di] using Application Default Credentials")
	}

	// 1) Postgres (catalog store)
	dbPassword, err := resolveDBPassword(ctx, cfg)
	if err != nil {
		return nil, err
	}
	pg, err := database.NewConnection(cfg.DBHost, cfg.DBPort, cfg.DBUser, dbPassword, cfg.DBName)
	if err != nil {
		return nil, err
	}
	c.DB = pg

	// 2) Firestore (cart store)
	fs, err := firestoreinfra.NewClient(ctx, cfg.FirestoreProjectID, cfg.FirestoreCredentialsFile)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.Firestore = fs

	// 3) GCS (food images)
	gcsClient, err := storage.NewClient(ctx, clientOpts...)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.GCS = gcsClient

	// 4) Firebase Auth (best-effort)
	if pid := strings.TrimSpace(cfg.FirebaseProjectID); pid != "" {
		app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: pid}, clientOpts...)
		if err != nil {
			log.Printf("[di] WARN: firebase app init failed: %v (cart auth disabled)", err)
		} else if auth, err := app.Auth(ctx); err != nil {
			log.Printf("[di] WARN: firebase auth init failed: %v (cart auth disabled)", err)
		} else {
			c.Auth = auth
		}
	} else {
		log.Printf("[di] WARN: FIREBASE_PROJECT_ID empty (cart auth disabled)")
	}

	// repositories
	foodRepo := outdb.NewFoodItemRepositoryPG(pg.Client)
	cartRepo := outfs.NewCartRepositoryFS(fs.Client)
	imageRepo := outgcs.NewFoodImageRepositoryGCS(gcsClient, cfg.FoodImageBucket)

	// usecases
	c.CatalogUsecase = usecase.NewCatalogUsecase(foodRepo, imageRepo)
	c.CartUsecase = usecase.NewCartUsecase(cartRepo)

	c.Router = buildRouter(cfg, c)

	return c, nil
}

func buildRouter(cfg *appcfg.Config, c *Container) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/api/food/", handlers.NewFoodHandler(c.CatalogUsecase))

	var verifier middleware.TokenVerifier
	if c.Auth != nil {
		verifier = &middleware.FirebaseTokenVerifier{Auth: c.Auth}
	}
	auth := &middleware.SessionAuth{Verifier: verifier}
	mux.Handle("/api/cart/", auth.Handler(handlers.NewCartHandler(c.CartUsecase)))

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("API Working"))
	})

	return middleware.CORS(cfg.FrontendOrigin, middleware.Recover(mux))
}

// resolveDBPassword prefers Secret Manager when DB_PASSWORD_SECRET is set.
func resolveDBPassword(ctx context.Context, cfg *appcfg.Config) (string, error) {
	secretName := strings.TrimSpace(cfg.DBPasswordSecret)
	if secretName == "" {
		return cfg.DBPassword, nil
	}

	sm, err := secrets.NewDBPasswordProviderSM(ctx)
	if err != nil {
		return "", err
	}
	defer func() { _ = sm.Close() }()

	pw, err := sm.Resolve(ctx, secretName)
	if err != nil {
		return "", err
	}
	log.Printf("[di] db password resolved from Secret Manager")
	return pw, nil
}

// Close releases all owned clients (reverse order, best-effort).
func (c *Container) Close() {
	if c == nil {
		return
	}
	if c.GCS != nil {
		if err := c.GCS.Close(); err != nil {
			log.Printf("[di] gcs close error: %v", err)
		}
		c.GCS = nil
	}
	if c.Firestore != nil {
		if err := c.Firestore.Close(); err != nil {
			log.Printf("[di] firestore close error: %v", err)
		}
		c.Firestore = nil
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			log.Printf("[di] db close error: %v", err)
		}
		c.DB = nil
	}
}
