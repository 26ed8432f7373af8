package router

import (
	"net/http"
	"time"

	_ "vet-intelligent/docs"

	"vet-intelligent/internal/adapters/audit/logline"
	"vet-intelligent/internal/adapters/inference/canned"
	mem "vet-intelligent/internal/adapters/storage/memory"
	"vet-intelligent/internal/domain/diagnosis"
	"vet-intelligent/internal/middleware"
	"vet-intelligent/internal/platform/logger"
	"vet-intelligent/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)
	Logger       logger.Logger

	// Si alguno viene nil se usa la variante de referencia:
	// tabla in-memory, respuesta fija y auditoría a log.
	Subjects diagnosis.SubjectResolver
	Invoker  diagnosis.Invoker
	Audit    diagnosis.AuditSink

	InferenceTimeout time.Duration
	MaxConcurrent    int
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLog(log))

	r.Use(middleware.AuthContext(opts.AuthVerifier, log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	subjects := opts.Subjects
	if subjects == nil {
		subjects = mem.NewSubjectRepo(mem.DefaultSubjects())
	}
	invoker := opts.Invoker
	if invoker == nil {
		invoker = canned.New()
	}
	audit := opts.Audit
	if audit == nil {
		audit = logline.New(log, false)
	}

	svc := diagnosis.NewService(subjects, invoker, audit, diagnosis.Options{
		Logger:           log,
		InferenceTimeout: opts.InferenceTimeout,
		MaxConcurrent:    opts.MaxConcurrent,
	})

	diagnosis.RegisterRoutes(r, svc)

	return r
}
