package diagnosis

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"vet-intelligent/internal/middleware"

	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 64 << 10

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/api/diagnostico", func(dr chi.Router) {
		dr.Post("/", diagnoseHandler(svc))
	})
}

// diagnoseRequest es el cuerpo que manda el cliente móvil.
type diagnoseRequest struct {
	AnimalID      string   `json:"animalId"`
	Symptoms      []string `json:"sintomas"`
	AdditionalObs string   `json:"observacoesAdicionais"`
}

// animalInfoResponse es el resumen del animal devuelto junto al diagnóstico.
type animalInfoResponse struct {
	Species string `json:"especie"`
	Breed   string `json:"raca"`
	Age     string `json:"idade"`
	Weight  string `json:"peso"`
}

// suggestionResponse es una sugerencia diagnóstica tal como la muestra ResultCard.
type suggestionResponse struct {
	Condition       string   `json:"condicao"`
	Probability     string   `json:"probabilidade_estimada" enums:"Alta,Média,Baixa,Não informado"`
	Description     string   `json:"descricao"`
	Treatments      []string `json:"tratamentos_sugeridos"`
	Urgency         string   `json:"nivel_urgencia" enums:"Alto,Médio,Baixo,Não informado"`
	AdditionalNotes string   `json:"observacoes_adicionais"`
}

// diagnoseResponse es el payload de éxito.
type diagnoseResponse struct {
	ID          string               `json:"diagnosticoId"`
	GeneratedAt string               `json:"dataHora"`
	AnimalInfo  animalInfoResponse   `json:"animalInfo"`
	Symptoms    []string             `json:"sintomasFornecidos"`
	Notes       string               `json:"observacoesFornecidas"`
	Suggestions []suggestionResponse `json:"sugestoesDiagnosticas"`
	Disclaimer  string               `json:"disclaimer"`
}

// errorResponse lleva un kind estable además del mensaje.
type errorResponse struct {
	Kind    Kind   `json:"kind" enums:"unauthenticated,invalid_input,subject_not_found,subject_unavailable,inference_unavailable,internal_error"`
	Message string `json:"message"`
}

// diagnoseHandler godoc
// @Summary Diagnóstico asistido por IA
// @Description Genera sugerencias diagnósticas para un animal a partir de los síntomas observados. La respuesta siempre incluye el disclaimer. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags diagnostico
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body diagnoseRequest true "animalId + sintomas (al menos uno) + observacoesAdicionais opcional"
// @Success 200 {object} diagnoseResponse
// @Failure 400 {object} errorResponse "invalid_input"
// @Failure 401 {object} errorResponse "unauthenticated"
// @Failure 404 {object} errorResponse "subject_not_found"
// @Failure 500 {object} errorResponse "internal_error"
// @Failure 502 {object} errorResponse "inference_unavailable"
// @Failure 503 {object} errorResponse "subject_unavailable"
// @Router /api/diagnostico [post]
func diagnoseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeError(w, newError(KindUnauthenticated, "usuário não autenticado", nil))
			return
		}

		var req diagnoseRequest
		dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
		if err := dec.Decode(&req); err != nil {
			writeError(w, newError(KindInvalidInput, "json inválido", err))
			return
		}

		resp, err := svc.Diagnose(r.Context(), Request{
			RequesterID:  claims.UserID,
			SubjectID:    req.AnimalID,
			Observations: req.Symptoms,
			Notes:        req.AdditionalObs,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toDiagnoseResponse(resp))
	}
}

func toDiagnoseResponse(r Response) diagnoseResponse {
	items := make([]suggestionResponse, 0, len(r.Suggestions))
	for _, s := range r.Suggestions {
		items = append(items, suggestionResponse{
			Condition:       s.Condition,
			Probability:     s.Probability.ProbabilityLabel(),
			Description:     s.Description,
			Treatments:      s.Treatments,
			Urgency:         s.Urgency.UrgencyLabel(),
			AdditionalNotes: s.AdditionalNotes,
		})
	}

	return diagnoseResponse{
		ID:          r.RequestID,
		GeneratedAt: r.GeneratedAt.UTC().Format(isoMillis),
		AnimalInfo: animalInfoResponse{
			Species: r.Subject.Species,
			Breed:   r.Subject.Breed,
			Age:     r.Subject.Age,
			Weight:  r.Subject.Weight,
		},
		Symptoms:    r.Observations,
		Notes:       r.Notes,
		Suggestions: items,
		Disclaimer:  r.Disclaimer,
	}
}

// mismo formato que Date.toISOString() del cliente
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

func writeError(w http.ResponseWriter, err error) {
	var de *Error
	if !errors.As(err, &de) {
		de = newError(KindInternal, "erro interno", err)
	}
	writeJSON(w, de.Kind.Status(), errorResponse{
		Kind:    de.Kind,
		Message: de.Message,
	})
}

// writeJSON queda local al módulo; si aparece otro handler, recién ahí conviene extraerlo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
