package memory

import (
	"context"
	"strings"

	"vet-intelligent/internal/domain/diagnosis"
)

// SubjectRepo es el registro de animales en memoria. La tabla se inyecta
// en el constructor y no cambia después.
type SubjectRepo struct {
	byID map[string]diagnosis.SubjectRecord
}

func NewSubjectRepo(records map[string]diagnosis.SubjectRecord) *SubjectRepo {
	byID := make(map[string]diagnosis.SubjectRecord, len(records))
	for id, rec := range records {
		byID[strings.TrimSpace(id)] = rec
	}
	return &SubjectRepo{byID: byID}
}

// DefaultSubjects es la tabla de referencia para dev/tests sin base de datos.
func DefaultSubjects() map[string]diagnosis.SubjectRecord {
	return map[string]diagnosis.SubjectRecord{
		"1": {
			Species: "Cão",
			Breed:   "Labrador",
			Age:     "3 anos",
			Weight:  "28 kg",
			History: "Vacinação em dia. Sem condições pré-existentes conhecidas.",
		},
		"2": {
			Species: "Gato",
			Breed:   "Siamês",
			Age:     "5 anos",
			Weight:  "4.5 kg",
			History: "Histórico de infecção urinária há 1 ano.",
		},
		"3": {
			Species: "Ave",
			Breed:   "Calopsita",
			Age:     "2 anos",
			Weight:  "90 g",
			History: "Sem histórico médico relevante.",
		},
	}
}

func (r *SubjectRepo) Resolve(_ context.Context, subjectID string) (diagnosis.SubjectRecord, error) {
	rec, ok := r.byID[strings.TrimSpace(subjectID)]
	if !ok {
		return diagnosis.SubjectRecord{}, diagnosis.ErrSubjectNotFound
	}
	return rec, nil
}
