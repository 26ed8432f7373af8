package diagnosis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSuggestions_OK(t *testing.T) {
	raw := `{"diagnosticos":[
		{"condicao":" Otite ","probabilidade_estimada":"Alta","descricao":"inflamação","tratamentos_sugeridos":["limpeza"," ",""],"nivel_urgencia":"Baixo","observacoes_adicionais":"retorno em 7 dias"},
		{"condicao":"Dermatite","probabilidade_estimada":"Moderada","tratamentos_sugeridos":null,"nivel_urgencia":"imediata"}
	]}`

	items, err := DecodeSuggestions([]byte(raw))
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, SuggestionItem{
		Condition:       "Otite",
		Probability:     LevelHigh,
		Description:     "inflamação",
		Treatments:      []string{"limpeza"},
		Urgency:         LevelLow,
		AdditionalNotes: "retorno em 7 dias",
	}, items[0])

	assert.Equal(t, LevelMedium, items[1].Probability)
	assert.Equal(t, LevelUnknown, items[1].Urgency)
	assert.NotNil(t, items[1].Treatments)
	assert.Empty(t, items[1].Treatments)
}

func TestDecodeSuggestions_Fenced(t *testing.T) {
	raw := "Aqui está:\n```json\n{\"diagnosticos\":[{\"condicao\":\"Gripe\"}]}\n```\n"

	items, err := DecodeSuggestions([]byte(raw))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Gripe", items[0].Condition)
}

func TestDecodeSuggestions_FailsClosed(t *testing.T) {
	cases := map[string]string{
		"empty":            "",
		"blank":            "   ",
		"not json":         "desculpe, não posso ajudar",
		"wrong type":       `{"diagnosticos": "x"}`,
		"empty list":       `{"diagnosticos": []}`,
		"missing list":     `{"outra": 1}`,
		"null entry":       `{"diagnosticos": [{"condicao":"a"}, null]}`,
		"trailing garbage": `{"diagnosticos": [{"condicao":"a"}]} {"x":1}`,
		"trailing bracket": `{"diagnosticos": [{"condicao":"a"}]}]}`,
		"truncated":        `{"diagnosticos": [{"condicao":"a"`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			items, err := DecodeSuggestions([]byte(raw))
			assert.Nil(t, items)
			assert.ErrorIs(t, err, ErrInferenceMalformed)
		})
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"Alta":                 LevelHigh,
		"ALTO":                 LevelHigh,
		"Média":                LevelMedium,
		"medio":                LevelMedium,
		"Médio a Alto (grave)": LevelMedium,
		"baixa":                LevelLow,
		"":                     LevelUnknown,
		"imediata":             LevelUnknown,
		"altamente":            LevelUnknown,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "input %q", in)
	}
}

func TestLevelLabels(t *testing.T) {
	assert.Equal(t, "Média", LevelMedium.ProbabilityLabel())
	assert.Equal(t, "Médio", LevelMedium.UrgencyLabel())
	assert.Equal(t, NotInformed, LevelUnknown.ProbabilityLabel())
	assert.Equal(t, NotInformed, LevelUnknown.UrgencyLabel())
}
