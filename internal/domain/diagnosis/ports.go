package diagnosis

import "context"

// SubjectResolver busca el animal por ID. Devuelve ErrSubjectNotFound si no existe;
// cualquier otro error se trata como backend no disponible.
type SubjectResolver interface {
	Resolve(ctx context.Context, subjectID string) (SubjectRecord, error)
}

// Invoker manda el prompt al servicio de completion y devuelve sugerencias.
// Es el único punto que cambia entre el stub y un backend real.
type Invoker interface {
	Invoke(ctx context.Context, prompt string) ([]SuggestionItem, error)
}

// AuditSink guarda (append-only) cada request/response.
type AuditSink interface {
	Record(ctx context.Context, rec AuditRecord) error
}
