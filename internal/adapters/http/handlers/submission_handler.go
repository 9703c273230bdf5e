// Package handlers agrupa os handlers HTTP de submissão de formulários.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/justinrm/gathered-roots-forms/internal/core/domain"
	"github.com/justinrm/gathered-roots-forms/internal/core/services"
)

// Payloads de formulário são pequenos; qualquer coisa acima disso é abuso.
const maxBodyBytes = 64 << 10

var successMessages = map[domain.FormType]string{
	domain.FormContact: "Thanks for getting in touch. We'll get back to you within one business day.",
	domain.FormQuote:   "Thanks! Your quote request is on its way. We'll be in touch shortly.",
	domain.FormBooking: "Thanks! We received your booking request and will confirm availability soon.",
}

// SubmissionHandler orquestra validação e despacho de cada formulário. A
// admissão acontece antes, no middleware de rate limit da rota.
type SubmissionHandler struct {
	validator  *services.ValidatorService
	dispatcher *services.DispatcherService
	// exposeErrors inclui o detalhe do erro nas respostas 500; ligado
	// apenas fora de produção.
	exposeErrors bool
}

func NewSubmissionHandler(validator *services.ValidatorService, dispatcher *services.DispatcherService, exposeErrors bool) *SubmissionHandler {
	return &SubmissionHandler{
		validator:    validator,
		dispatcher:   dispatcher,
		exposeErrors: exposeErrors,
	}
}

func (h *SubmissionHandler) Contact(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, domain.FormContact)
}

func (h *SubmissionHandler) Quote(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, domain.FormQuote)
}

func (h *SubmissionHandler) Booking(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, domain.FormBooking)
}

func (h *SubmissionHandler) submit(w http.ResponseWriter, r *http.Request, form domain.FormType) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "Invalid request body"})
		return
	}

	sub, fieldErrs := h.validator.Validate(form, payload)
	if len(fieldErrs) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"message": "Validation failed",
			"errors":  fieldErrs,
		})
		return
	}

	outcome := h.dispatcher.Dispatch(r.Context(), sub)
	if outcome.FatalErr != nil {
		body := map[string]any{"message": "Sorry, we could not send your request right now. Please try again later."}
		if h.exposeErrors {
			body["error"] = outcome.FatalErr.Error()
		}
		writeJSON(w, http.StatusInternalServerError, body)
		return
	}

	// O resultado da confirmação ao cliente não muda o status da resposta.
	writeJSON(w, http.StatusOK, map[string]any{"message": successMessages[form]})
}

// MethodNotAllowed responde 405 nas rotas de formulário, que aceitam só POST.
func MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Allow", http.MethodPost)
	writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"message": "Method not allowed"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
