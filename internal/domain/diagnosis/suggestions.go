package diagnosis

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"
)

var jsonFence = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(.*?)\\n?```")

// rawPayload / rawSuggestion reflejan ResponseSchema.
type rawPayload struct {
	Diagnoses []*rawSuggestion `json:"diagnosticos"`
}

type rawSuggestion struct {
	Condition       string   `json:"condicao"`
	Probability     string   `json:"probabilidade_estimada"`
	Description     string   `json:"descricao"`
	Treatments      []string `json:"tratamentos_sugeridos"`
	Urgency         string   `json:"nivel_urgencia"`
	AdditionalNotes string   `json:"observacoes_adicionais"`
}

// DecodeSuggestions parsea la respuesta cruda de un servicio de completion.
// Falla cerrado: o devuelve la lista completa o ErrInferenceMalformed, nunca algo parcial.
// Acepta JSON directo o dentro de un bloque ```json.
func DecodeSuggestions(raw []byte) ([]SuggestionItem, error) {
	content := bytes.TrimSpace(raw)
	if len(content) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrInferenceMalformed)
	}

	p, err := decodePayload(content)
	if err != nil {
		m := jsonFence.FindSubmatch(content)
		if len(m) < 2 {
			return nil, fmt.Errorf("%w: %v", ErrInferenceMalformed, err)
		}
		p, err = decodePayload(bytes.TrimSpace(m[1]))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInferenceMalformed, err)
		}
	}

	if len(p.Diagnoses) == 0 {
		return nil, fmt.Errorf("%w: no diagnosticos", ErrInferenceMalformed)
	}

	out := make([]SuggestionItem, 0, len(p.Diagnoses))
	for i, d := range p.Diagnoses {
		if d == nil {
			return nil, fmt.Errorf("%w: diagnosticos[%d] is null", ErrInferenceMalformed, i)
		}
		out = append(out, SuggestionItem{
			Condition:       strings.TrimSpace(d.Condition),
			Probability:     ParseLevel(d.Probability),
			Description:     strings.TrimSpace(d.Description),
			Treatments:      cleanList(d.Treatments),
			Urgency:         ParseLevel(d.Urgency),
			AdditionalNotes: strings.TrimSpace(d.AdditionalNotes),
		})
	}
	return out, nil
}

func decodePayload(b []byte) (rawPayload, error) {
	var p rawPayload
	dec := json.NewDecoder(bytes.NewReader(b))
	if err := dec.Decode(&p); err != nil {
		return rawPayload{}, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return rawPayload{}, fmt.Errorf("trailing data after json object")
	}
	return p, nil
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
