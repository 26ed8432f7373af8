package diagnosis

import (
	"strings"
)

// Preamble es el bloque fijo de rol y restricciones de seguridad.
// Cualquier cambio acá cambia todos los prompts (y cualquier cache aguas abajo).
const Preamble = "Você é um assistente de IA especializado em fornecer informações de auxílio ao diagnóstico veterinário. " +
	"Seu objetivo é analisar os dados do animal e os sintomas fornecidos para sugerir possíveis condições, tratamentos iniciais e níveis de urgência. " +
	"Suas sugestões NÃO substituem o diagnóstico de um veterinário profissional e devem sempre ser interpretadas como um auxílio informativo. " +
	"Priorize sempre a segurança do animal. " +
	"Se os sintomas indicarem uma emergência clara, destaque isso imediatamente. " +
	"Evite fornecer dosagens exatas de medicamentos. " +
	"Responda em formato JSON conforme o seguinte esquema: " + ResponseSchema

// ResponseSchema es el esquema que DecodeSuggestions sabe leer.
const ResponseSchema = `{"diagnosticos": [{"condicao": "string", "probabilidade_estimada": "Alta|Média|Baixa", "descricao": "string", "tratamentos_sugeridos": ["string"], "nivel_urgencia": "Alto|Médio|Baixo", "observacoes_adicionais": "string"}]}`

const (
	noHistory = "Nenhum histórico relevante informado."
	closing   = "Com base nessas informações, forneça possíveis diagnósticos, incluindo probabilidade, descrição, tratamentos sugeridos, nível de urgência e observações adicionais, no formato JSON especificado."
)

// Compose arma el prompt. Es pura: mismos args => mismos bytes.
//
// Precondición: observations no vacío (lo valida Service.Diagnose).
func Compose(subject SubjectRecord, observations []string, notes string) string {
	var b strings.Builder

	b.WriteString(Preamble)
	b.WriteString("\n\n")

	b.WriteString("Dados do Animal:\n")
	writeAttr(&b, "Espécie", subject.Species, NotInformed)
	writeAttr(&b, "Raça", subject.Breed, NotInformed)
	writeAttr(&b, "Idade", subject.Age, NotInformed)
	writeAttr(&b, "Peso", subject.Weight, NotInformed)
	writeAttr(&b, "Histórico", subject.History, noHistory)
	b.WriteString("\n")

	b.WriteString("Sintomas Observados:\n")
	for _, o := range observations {
		b.WriteString("- ")
		b.WriteString(oneLine(o))
		b.WriteString("\n")
	}

	if n := oneLine(notes); n != "" {
		b.WriteString("\nObservações Adicionais: ")
		b.WriteString(n)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(closing)
	return b.String()
}

func writeAttr(b *strings.Builder, label, value, fallback string) {
	v := oneLine(value)
	if v == "" {
		v = fallback
	}
	b.WriteString("- ")
	b.WriteString(label)
	b.WriteString(": ")
	b.WriteString(v)
	b.WriteString("\n")
}

// oneLine colapsa saltos de línea y espacios repetidos: cada valor ocupa una sola línea del prompt.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
