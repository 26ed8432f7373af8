package diagnosis

import (
	"strings"
	"time"
	"unicode"
)

// SubjectRecord describe al animal (paciente) tal como lo entrega el registro.
// Weight e History son opcionales: vacío = no informado.
type SubjectRecord struct {
	Species string
	Breed   string
	Age     string // libre, ej: "3 anos"
	Weight  string // con unidad, ej: "28 kg"
	History string
}

// Summary es la parte del registro que se devuelve al caller.
func (s SubjectRecord) Summary() SubjectSummary {
	return SubjectSummary{
		Species: s.Species,
		Breed:   s.Breed,
		Age:     s.Age,
		Weight:  s.Weight,
	}
}

type SubjectSummary struct {
	Species string
	Breed   string
	Age     string
	Weight  string
}

// Request es la entrada de Diagnose. RequesterID lo pone la capa de auth.
type Request struct {
	RequesterID  string
	SubjectID    string
	Observations []string
	Notes        string
}

// Level es el enum de tres niveles que usamos para probabilidad y urgencia.
type Level string

const (
	LevelUnknown Level = ""
	LevelHigh    Level = "high"
	LevelMedium  Level = "medium"
	LevelLow     Level = "low"
)

const NotInformed = "Não informado"

// ProbabilityLabel devuelve la etiqueta que espera el cliente móvil (femenino: "probabilidade").
func (l Level) ProbabilityLabel() string {
	switch l {
	case LevelHigh:
		return "Alta"
	case LevelMedium:
		return "Média"
	case LevelLow:
		return "Baixa"
	default:
		return NotInformed
	}
}

// UrgencyLabel devuelve la etiqueta de urgencia (masculino: "nível").
func (l Level) UrgencyLabel() string {
	switch l {
	case LevelHigh:
		return "Alto"
	case LevelMedium:
		return "Médio"
	case LevelLow:
		return "Baixo"
	default:
		return NotInformed
	}
}

var levelWords = map[string]Level{
	"alta":     LevelHigh,
	"alto":     LevelHigh,
	"high":     LevelHigh,
	"média":    LevelMedium,
	"médio":    LevelMedium,
	"media":    LevelMedium,
	"medio":    LevelMedium,
	"medium":   LevelMedium,
	"moderada": LevelMedium,
	"moderado": LevelMedium,
	"baixa":    LevelLow,
	"baixo":    LevelLow,
	"low":      LevelLow,
}

// ParseLevel interpreta texto libre del modelo ("Médio a Alto (depende...)").
// Gana la primera palabra reconocida.
func ParseLevel(s string) Level {
	words := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	for _, w := range words {
		if l, ok := levelWords[w]; ok {
			return l
		}
	}
	return LevelUnknown
}

// SuggestionItem es una condición candidata devuelta por el invoker.
// Viene de un servicio externo: no se asume bien formada.
type SuggestionItem struct {
	Condition       string
	Probability     Level
	Description     string
	Treatments      []string
	Urgency         Level
	AdditionalNotes string
}

// Response es el payload final. Disclaimer nunca va vacío.
type Response struct {
	RequestID    string
	GeneratedAt  time.Time
	Subject      SubjectSummary
	Observations []string
	Notes        string
	Suggestions  []SuggestionItem
	Disclaimer   string
}

type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailed  Outcome = "failed"
)

// AuditRecord es la tupla request/response completa que guarda el AuditSink.
type AuditRecord struct {
	ID           string
	RequesterID  string
	SubjectID    string
	RequestedAt  time.Time
	Subject      SubjectRecord
	Observations []string
	Notes        string
	Prompt       string
	Suggestions  []SuggestionItem
	Response     *Response // nil si falló la inferencia
	Disclaimer   string
	Outcome      Outcome
	ErrorKind    Kind
	ErrorMessage string
}
