package services

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/justinrm/gathered-roots-forms/internal/core/domain"
)

var (
	// Formato local@dominio.tld; o suficiente para barrar endereços
	// obviamente quebrados sem tentar cobrir a RFC 5322 inteira.
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Aplicado após remover espaços, hífens e parênteses. Só o mínimo de
	// dígitos é imposto; o MaxLen do campo limita o tamanho total.
	phonePattern  = regexp.MustCompile(`^\+?[0-9]{7,}$`)
	digitsPattern = regexp.MustCompile(`^[0-9]+$`)
)

var phoneSeparators = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")

const dateLayout = "2006-01-02"

// ValidatorService aplica o schema declarativo do formulário a um payload cru.
type ValidatorService struct{}

// NewValidatorService cria uma nova instância do serviço.
func NewValidatorService() *ValidatorService {
	return &ValidatorService{}
}

// Validate avalia cada campo do schema de forma independente e acumula todos
// os erros em um mapa por campo. Falha de validação é um resultado esperado,
// nunca um erro de aplicação.
func (v *ValidatorService) Validate(form domain.FormType, payload map[string]any) (domain.ValidatedSubmission, domain.FieldErrors) {
	schema, ok := domain.SchemaFor(form)
	if !ok {
		return domain.ValidatedSubmission{}, domain.FieldErrors{"form": domain.ErrUnknownForm.Error()}
	}

	fieldErrs := domain.FieldErrors{}
	fields := make(map[string]string, len(schema))

	for name, rule := range schema {
		raw := payload[name]

		if rule.Kind == domain.KindConsent {
			if consent, isBool := raw.(bool); !isBool || !consent {
				fieldErrs[name] = "You must consent to us contacting you."
			} else {
				fields[name] = "true"
			}
			continue
		}

		var value string
		switch typed := raw.(type) {
		case nil:
		case string:
			value = strings.TrimSpace(typed)
		default:
			fieldErrs[name] = fmt.Sprintf("%s must be text", name)
			continue
		}

		if value == "" {
			if rule.Required {
				fieldErrs[name] = fmt.Sprintf("%s is required", name)
			} else {
				fields[name] = ""
			}
			continue
		}

		if rule.MaxLen > 0 && len(value) > rule.MaxLen {
			fieldErrs[name] = fmt.Sprintf("%s must be %d characters or fewer", name, rule.MaxLen)
			continue
		}

		switch rule.Kind {
		case domain.KindString:
			fields[name] = value
		case domain.KindEmail:
			if !emailPattern.MatchString(value) {
				fieldErrs[name] = "Please enter a valid email address"
			} else {
				fields[name] = value
			}
		case domain.KindPhone:
			if !phonePattern.MatchString(phoneSeparators.Replace(value)) {
				fieldErrs[name] = "Please enter a valid phone number"
			} else {
				fields[name] = value
			}
		case domain.KindEnum:
			if !slices.Contains(rule.Enum, value) {
				fieldErrs[name] = fmt.Sprintf("Please choose a valid option for %s", name)
			} else {
				fields[name] = value
			}
		case domain.KindIntegerString:
			if !digitsPattern.MatchString(value) {
				fieldErrs[name] = fmt.Sprintf("%s must be a whole number", name)
			} else {
				fields[name] = value
			}
		case domain.KindDate:
			if _, err := time.Parse(dateLayout, value); err != nil {
				fieldErrs[name] = fmt.Sprintf("%s must be a date in YYYY-MM-DD format", name)
			} else {
				fields[name] = value
			}
		}
	}

	if len(fieldErrs) > 0 {
		return domain.ValidatedSubmission{}, fieldErrs
	}

	return domain.ValidatedSubmission{Form: form, Fields: fields}, nil
}
