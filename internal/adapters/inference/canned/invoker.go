// Package canned es el invoker de referencia: ignora el prompt y devuelve
// siempre el mismo par de sugerencias. Sirve para dev y para tests de punta a punta.
package canned

import (
	"context"

	"vet-intelligent/internal/domain/diagnosis"
)

// Payload tiene el mismo formato que pedimos al modelo real, así pasa por
// el mismo decoder que un backend de verdad.
const Payload = `{
  "diagnosticos": [
    {
      "condicao": "Gastroenterite Viral Canina (Simulada)",
      "probabilidade_estimada": "Alta",
      "descricao": "Inflamação do estômago e intestinos causada por um vírus. Comum em cães não vacinados.",
      "tratamentos_sugeridos": [
        "Manter o animal hidratado com soro oral ou fluidoterapia intravenosa (em casos graves).",
        "Jejum alimentar por 12-24 horas, seguido de dieta leve e de fácil digestão (ex: frango cozido sem pele e arroz branco).",
        "Medicação sintomática para vômito e diarreia, conforme prescrição veterinária.",
        "Isolamento de outros cães para evitar contágio."
      ],
      "nivel_urgencia": "Médio a Alto (dependendo da severidade dos sintomas e estado de hidratação)",
      "observacoes_adicionais": "A vacinação é a principal forma de prevenção. Procurar um veterinário para confirmação e tratamento adequado."
    },
    {
      "condicao": "Intoxicação Alimentar (Simulada)",
      "probabilidade_estimada": "Média",
      "descricao": "Ingestão de alimento contaminado ou inadequado para a espécie.",
      "tratamentos_sugeridos": [
        "Indução do vômito (apenas se a ingestão foi recente e sob orientação veterinária).",
        "Carvão ativado para adsorver toxinas.",
        "Suporte com fluidoterapia e protetores gástricos."
      ],
      "nivel_urgencia": "Médio",
      "observacoes_adicionais": "Identificar e remover a fonte da intoxicação. Observar atentamente a evolução dos sintomas."
    }
  ]
}`

type Invoker struct{}

func New() *Invoker { return &Invoker{} }

func (Invoker) Invoke(ctx context.Context, _ string) ([]diagnosis.SuggestionItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return diagnosis.DecodeSuggestions([]byte(Payload))
}
