// Package auditpayload serializa un diagnosis.AuditRecord al documento JSON
// que guardan los stores SQL (postgres jsonb, sqlite text).
package auditpayload

import (
	"encoding/json"
	"time"

	"vet-intelligent/internal/domain/diagnosis"
)

type document struct {
	ID          string       `json:"id"`
	RequesterID string       `json:"requester_id"`
	SubjectID   string       `json:"subject_id"`
	RequestedAt time.Time    `json:"requested_at"`
	Input       input        `json:"input"`
	Prompt      string       `json:"prompt"`
	Suggestions []suggestion `json:"suggestions"`
	ResponseID  string       `json:"response_id,omitempty"`
	GeneratedAt *time.Time   `json:"generated_at,omitempty"`
	Disclaimer  string       `json:"disclaimer"`
	Outcome     string       `json:"outcome"`
	Error       *errorInfo   `json:"error,omitempty"`
}

type input struct {
	Observations []string `json:"observations"`
	Notes        string   `json:"notes"`
	Subject      subject  `json:"subject_snapshot"`
}

type subject struct {
	Species string `json:"species"`
	Breed   string `json:"breed"`
	Age     string `json:"age"`
	Weight  string `json:"weight"`
	History string `json:"history"`
}

type suggestion struct {
	Condition       string   `json:"condition"`
	Probability     string   `json:"probability"`
	Description     string   `json:"description"`
	Treatments      []string `json:"treatments"`
	Urgency         string   `json:"urgency"`
	AdditionalNotes string   `json:"additional_notes,omitempty"`
}

type errorInfo struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Encode devuelve el JSON del registro completo.
func Encode(rec diagnosis.AuditRecord) ([]byte, error) {
	doc := document{
		ID:          rec.ID,
		RequesterID: rec.RequesterID,
		SubjectID:   rec.SubjectID,
		RequestedAt: rec.RequestedAt.UTC(),
		Input: input{
			Observations: rec.Observations,
			Notes:        rec.Notes,
			Subject: subject{
				Species: rec.Subject.Species,
				Breed:   rec.Subject.Breed,
				Age:     rec.Subject.Age,
				Weight:  rec.Subject.Weight,
				History: rec.Subject.History,
			},
		},
		Prompt:      rec.Prompt,
		Suggestions: make([]suggestion, 0, len(rec.Suggestions)),
		Disclaimer:  rec.Disclaimer,
		Outcome:     string(rec.Outcome),
	}

	for _, s := range rec.Suggestions {
		doc.Suggestions = append(doc.Suggestions, suggestion{
			Condition:       s.Condition,
			Probability:     string(s.Probability),
			Description:     s.Description,
			Treatments:      s.Treatments,
			Urgency:         string(s.Urgency),
			AdditionalNotes: s.AdditionalNotes,
		})
	}

	if rec.Response != nil {
		doc.ResponseID = rec.Response.RequestID
		t := rec.Response.GeneratedAt.UTC()
		doc.GeneratedAt = &t
	}
	if rec.ErrorKind != "" {
		doc.Error = &errorInfo{Kind: string(rec.ErrorKind), Message: rec.ErrorMessage}
	}

	return json.Marshal(doc)
}
