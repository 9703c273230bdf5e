package services

import (
	"context"
	"fmt"
	"html"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/justinrm/gathered-roots-forms/internal/core/domain"
	"github.com/justinrm/gathered-roots-forms/internal/core/ports"
)

const defaultSendTimeout = 10 * time.Second

// Rótulos exibidos nas notificações no lugar dos códigos enviados pelos
// formulários. Códigos desconhecidos passam adiante sem tradução.
var (
	serviceLabels = map[string]string{
		"standard": "Standard Cleaning",
		"deep":     "Deep Cleaning",
		"move":     "Move-In / Move-Out Cleaning",
		"office":   "Office Cleaning",
	}
	frequencyLabels = map[string]string{
		"one-time":  "One-time",
		"weekly":    "Weekly",
		"bi-weekly": "Every two weeks",
		"monthly":   "Monthly",
	}
	contactMethodLabels = map[string]string{
		"email": "Email",
		"phone": "Phone",
	}
	propertyTypeLabels = map[string]string{
		"house":     "House",
		"apartment": "Apartment",
		"office":    "Office",
		"other":     "Other",
	}
)

var codeTables = map[string]map[string]string{
	"service":       serviceLabels,
	"frequency":     frequencyLabels,
	"contactMethod": contactMethodLabels,
	"propertyType":  propertyTypeLabels,
}

var fieldLabels = map[string]string{
	"name":          "Name",
	"email":         "Email",
	"phone":         "Phone",
	"contactMethod": "Preferred contact",
	"message":       "Message",
	"service":       "Service",
	"frequency":     "Frequency",
	"propertyType":  "Property type",
	"bedrooms":      "Bedrooms",
	"date":          "Preferred date",
	"address":       "Address",
	"notes":         "Notes",
}

// Ordem de exibição dos campos no aviso interno.
var fieldOrder = map[domain.FormType][]string{
	domain.FormContact: {"name", "email", "phone", "contactMethod", "message"},
	domain.FormQuote:   {"name", "email", "phone", "service", "frequency", "propertyType", "bedrooms", "message"},
	domain.FormBooking: {"name", "email", "phone", "service", "date", "address", "notes"},
}

var formTitles = map[domain.FormType]string{
	domain.FormContact: "contact",
	domain.FormQuote:   "quote",
	domain.FormBooking: "booking",
}

// DispatcherConfig agrega os endereços e o timeout usados nas notificações.
type DispatcherConfig struct {
	From        string
	BusinessTo  string
	SendTimeout time.Duration
}

// DispatcherService monta e envia as duas notificações derivadas de uma
// submissão validada: o aviso interno (crítico) e a confirmação ao cliente
// (melhor esforço).
type DispatcherService struct {
	mailer     ports.Mailer
	from       string
	businessTo string
	timeout    time.Duration
}

// NewDispatcherService cria uma nova instância do serviço.
func NewDispatcherService(mailer ports.Mailer, cfg DispatcherConfig) (*DispatcherService, error) {
	if mailer == nil {
		return nil, fmt.Errorf("mailer is required")
	}
	if cfg.From == "" || cfg.BusinessTo == "" {
		return nil, fmt.Errorf("sender and business recipient addresses are required")
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = defaultSendTimeout
	}

	return &DispatcherService{
		mailer:     mailer,
		from:       cfg.From,
		businessTo: cfg.BusinessTo,
		timeout:    cfg.SendTimeout,
	}, nil
}

// Dispatch envia primeiro o aviso interno e, só se ele for entregue, a
// confirmação ao cliente. A falha do aviso interno interrompe o fluxo e é
// reportada como fatal; a falha da confirmação é engolida e apenas registrada.
func (d *DispatcherService) Dispatch(ctx context.Context, sub domain.ValidatedSubmission) domain.DispatchOutcome {
	ref := uuid.NewString()[:8]
	outcome := domain.DispatchOutcome{Reference: ref}

	// O aviso interno precisa completar mesmo que o cliente desconecte:
	// perder um lead porque o navegador fechou a conexão não é aceitável.
	businessCtx, cancelBusiness := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
	defer cancelBusiness()

	if err := d.mailer.Send(businessCtx, d.renderBusinessNotice(sub, ref)); err != nil {
		log.Printf("business notice failed (ref=%s form=%s): %v", ref, sub.Form, err)
		outcome.FatalErr = err
		return outcome
	}
	outcome.BusinessSent = true

	if to := sub.Field("email"); to != "" {
		customerCtx, cancelCustomer := context.WithTimeout(ctx, d.timeout)
		defer cancelCustomer()

		if err := d.mailer.Send(customerCtx, d.renderCustomerAck(sub, to)); err != nil {
			log.Printf("customer acknowledgment failed (ref=%s form=%s): %v", ref, sub.Form, err)
		} else {
			outcome.CustomerSent = true
		}
	}

	return outcome
}

func (d *DispatcherService) renderBusinessNotice(sub domain.ValidatedSubmission, ref string) domain.Message {
	title := formTitles[sub.Form]

	var b strings.Builder
	fmt.Fprintf(&b, "<h2>New %s request</h2>\n", title)
	fmt.Fprintf(&b, "<p><strong>Reference:</strong> %s</p>\n", ref)

	for _, field := range fieldOrder[sub.Form] {
		value := sub.Field(field)
		if value == "" {
			continue
		}
		fmt.Fprintf(&b, "<p><strong>%s:</strong> %s</p>\n", fieldLabels[field], renderValue(field, value))
	}

	return domain.Message{
		To:      d.businessTo,
		From:    d.from,
		ReplyTo: sub.Field("email"),
		Subject: fmt.Sprintf("New %s request [%s]", title, ref),
		Body:    b.String(),
	}
}

func (d *DispatcherService) renderCustomerAck(sub domain.ValidatedSubmission, to string) domain.Message {
	var b strings.Builder
	fmt.Fprintf(&b, "<p>Hi %s,</p>\n", renderValue("name", sub.Field("name")))

	switch sub.Form {
	case domain.FormQuote:
		b.WriteString("<p>Thanks for requesting a quote from Gathered Roots Cleaning. We received your details and will send an estimate shortly.</p>\n")
	case domain.FormBooking:
		b.WriteString("<p>Thanks for your booking request with Gathered Roots Cleaning. We will confirm availability for your preferred date soon.</p>\n")
	default:
		b.WriteString("<p>Thanks for reaching out to Gathered Roots Cleaning. We received your message and will reply within one business day.</p>\n")
	}
	b.WriteString("<p>Warm regards,<br>Gathered Roots Cleaning</p>\n")

	return domain.Message{
		To:      to,
		From:    d.from,
		Subject: "We received your request",
		Body:    b.String(),
	}
}

// renderValue traduz códigos conhecidos para rótulos, escapa o conteúdo do
// usuário e preserva quebras de linha de campos de texto livre.
func renderValue(field, value string) string {
	if table, ok := codeTables[field]; ok {
		if label, ok := table[value]; ok {
			value = label
		}
	}
	escaped := html.EscapeString(value)
	return strings.ReplaceAll(escaped, "\n", "<br>")
}
