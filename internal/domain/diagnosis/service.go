package diagnosis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"vet-intelligent/internal/platform/logger"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
)

const (
	DefaultInferenceTimeout = 30 * time.Second
	MaxInferenceTimeout     = 30 * time.Second
	DefaultMaxConcurrent    = 8

	resolveTimeout = 5 * time.Second
	auditTimeout   = 5 * time.Second
)

type Options struct {
	Logger logger.Logger

	// InferenceTimeout acota la llamada al invoker (incluye la espera por un slot).
	// 0 => DefaultInferenceTimeout. Nunca mayor a MaxInferenceTimeout.
	InferenceTimeout time.Duration

	// MaxConcurrent limita las llamadas simultáneas al servicio externo. 0 => DefaultMaxConcurrent.
	MaxConcurrent int
}

// Service orquesta resolver -> prompt -> invoker -> assembler -> audit.
// No guarda estado entre requests salvo el semáforo.
type Service struct {
	subjects  SubjectResolver
	invoker   Invoker
	audit     AuditSink
	assembler *Assembler
	log       logger.Logger

	timeout time.Duration
	slots   *semaphore.Weighted

	newID func() string
	now   func() time.Time
}

func NewService(subjects SubjectResolver, invoker Invoker, audit AuditSink, opts Options) *Service {
	timeout := opts.InferenceTimeout
	if timeout <= 0 {
		timeout = DefaultInferenceTimeout
	}
	if timeout > MaxInferenceTimeout {
		timeout = MaxInferenceTimeout
	}
	maxConcurrent := opts.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrent
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	return &Service{
		subjects:  subjects,
		invoker:   invoker,
		audit:     audit,
		assembler: NewAssembler(),
		log:       log.With(map[string]any{"component": "diagnosis"}),
		timeout:   timeout,
		slots:     semaphore.NewWeighted(int64(maxConcurrent)),
		newID:     uuid.NewString,
		now:       time.Now,
	}
}

// Diagnose valida, resuelve el animal, llama a la inferencia y arma la respuesta.
// O devuelve una Response completa o un *Error; nunca ambas cosas.
func (s *Service) Diagnose(ctx context.Context, req Request) (Response, error) {
	requesterID := strings.TrimSpace(req.RequesterID)
	if requesterID == "" {
		return Response{}, newError(KindUnauthenticated, "usuário não autenticado", nil)
	}

	subjectID := strings.TrimSpace(req.SubjectID)
	if subjectID == "" {
		return Response{}, newError(KindInvalidInput, "animalId é obrigatório", nil)
	}
	observations, err := cleanObservations(req.Observations)
	if err != nil {
		return Response{}, err
	}
	notes := strings.TrimSpace(req.Notes)

	subject, err := s.resolve(ctx, subjectID)
	if err != nil {
		if errors.Is(err, ErrSubjectNotFound) {
			return Response{}, newError(KindSubjectNotFound, "animal não encontrado", err)
		}
		s.log.Error("subject lookup failed", map[string]any{
			"subject_id": subjectID,
			"error":      err.Error(),
		})
		return Response{}, newError(KindSubjectUnavailable, "registro de animais indisponível", err)
	}

	prompt := Compose(subject, observations, notes)
	requestedAt := s.now().UTC()

	rec := AuditRecord{
		RequesterID:  requesterID,
		SubjectID:    subjectID,
		RequestedAt:  requestedAt,
		Subject:      subject,
		Observations: observations,
		Notes:        notes,
		Prompt:       prompt,
		Disclaimer:   Disclaimer,
	}

	suggestions, err := s.invoke(ctx, prompt)
	if err != nil {
		derr := newError(KindInferenceUnavailable, inferenceMessage(err), err)

		rec.ID = s.newID()
		rec.Outcome = OutcomeFailed
		rec.ErrorKind = derr.Kind
		rec.ErrorMessage = err.Error()
		s.record(ctx, rec)

		s.log.Warn("inference failed", map[string]any{
			"audit_id":   rec.ID,
			"subject_id": subjectID,
			"retryable":  Retryable(err),
			"error":      err.Error(),
		})
		return Response{}, derr
	}

	resp := s.assembler.Assemble(subject, observations, notes, suggestions)
	if strings.TrimSpace(resp.Disclaimer) == "" {
		return Response{}, newError(KindInternal, "resposta sem disclaimer", nil)
	}

	rec.ID = resp.RequestID
	rec.Outcome = OutcomeSuccess
	rec.Suggestions = resp.Suggestions
	rec.Response = &resp
	s.record(ctx, rec)

	s.log.Info("diagnosis generated", map[string]any{
		"request_id":  resp.RequestID,
		"subject_id":  subjectID,
		"suggestions": len(resp.Suggestions),
	})
	return resp, nil
}

func (s *Service) resolve(ctx context.Context, subjectID string) (SubjectRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, resolveTimeout)
	defer cancel()
	return s.subjects.Resolve(ctx, subjectID)
}

type invokeResult struct {
	items []SuggestionItem
	err   error
}

// invoke corre el invoker con deadline. Si el backend ignora el contexto,
// igual devolvemos al vencer el deadline; la goroutine termina cuando él termine.
func (s *Service) invoke(ctx context.Context, prompt string) ([]SuggestionItem, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.slots.Acquire(ctx, 1); err != nil {
		return nil, contextFailure(err)
	}

	ch := make(chan invokeResult, 1)
	go func() {
		defer s.slots.Release(1)
		items, err := s.invoker.Invoke(ctx, prompt)
		ch <- invokeResult{items: items, err: err}
	}()

	select {
	case r := <-ch:
		if r.err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(r.err, ErrInferenceTimeout) {
				return nil, fmt.Errorf("%w: %w", contextFailure(ctxErr), r.err)
			}
			return nil, r.err
		}
		if len(r.items) == 0 {
			return nil, fmt.Errorf("%w: empty suggestion list", ErrInferenceMalformed)
		}
		return r.items, nil
	case <-ctx.Done():
		return nil, contextFailure(ctx.Err())
	}
}

func contextFailure(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrInferenceTimeout, err)
	}
	return fmt.Errorf("inference abandoned: %w", err)
}

// record es best-effort: un fallo de auditoría se loguea y no llega al caller.
func (s *Service) record(ctx context.Context, rec AuditRecord) {
	actx, cancel := context.WithTimeout(context.WithoutCancel(ctx), auditTimeout)
	defer cancel()

	if err := s.audit.Record(actx, rec); err != nil {
		s.log.Error("audit write failed", map[string]any{
			"audit_id": rec.ID,
			"outcome":  string(rec.Outcome),
			"error":    err.Error(),
		})
	}
}

func cleanObservations(in []string) ([]string, error) {
	if len(in) == 0 {
		return nil, newError(KindInvalidInput, "sintomas deve conter ao menos um item", nil)
	}
	out := make([]string, 0, len(in))
	for i, o := range in {
		o = strings.TrimSpace(o)
		if o == "" {
			return nil, newError(KindInvalidInput, fmt.Sprintf("sintomas[%d] está vazio", i), nil)
		}
		if strings.ContainsAny(o, "\r\n") {
			return nil, newError(KindInvalidInput, fmt.Sprintf("sintomas[%d] contém quebra de linha", i), nil)
		}
		out = append(out, o)
	}
	return out, nil
}

func inferenceMessage(err error) string {
	switch {
	case errors.Is(err, ErrInferenceTimeout):
		return "serviço de inferência excedeu o tempo limite"
	case errors.Is(err, ErrInferenceMalformed):
		return "serviço de inferência retornou uma resposta inválida"
	default:
		return "serviço de inferência indisponível"
	}
}
