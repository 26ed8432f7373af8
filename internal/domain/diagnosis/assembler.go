package diagnosis

import (
	"time"

	"github.com/google/uuid"
)

// Disclaimer va en todas las respuestas. Requisito de compliance.
const Disclaimer = "Este é um sistema de auxílio ao diagnóstico baseado em Inteligência Artificial. " +
	"As informações fornecidas são sugestões e NÃO substituem a avaliação, diagnóstico e tratamento por um médico veterinário qualificado. " +
	"Sempre consulte um profissional para questões de saúde do seu animal."

const (
	conditionNotInformed = "Condição não informada"
)

// Assembler arma la Response final. A diferencia de Compose, no es determinístico:
// cada llamada genera ID y timestamp nuevos.
type Assembler struct {
	newID func() string
	now   func() time.Time
}

func NewAssembler() *Assembler {
	return &Assembler{
		newID: uuid.NewString,
		now:   time.Now,
	}
}

func (a *Assembler) Assemble(subject SubjectRecord, observations []string, notes string, suggestions []SuggestionItem) Response {
	items := make([]SuggestionItem, 0, len(suggestions))
	for _, s := range suggestions {
		items = append(items, render(s))
	}

	obs := make([]string, len(observations))
	copy(obs, observations)

	return Response{
		RequestID:    a.newID(),
		GeneratedAt:  a.now().UTC(),
		Subject:      subject.Summary(),
		Observations: obs,
		Notes:        notes,
		Suggestions:  items,
		Disclaimer:   Disclaimer,
	}
}

// render aplica los placeholders a campos faltantes.
func render(s SuggestionItem) SuggestionItem {
	if s.Condition == "" {
		s.Condition = conditionNotInformed
	}
	if s.Description == "" {
		s.Description = NotInformed
	}
	treatments := make([]string, len(s.Treatments))
	copy(treatments, s.Treatments)
	s.Treatments = treatments
	return s
}
