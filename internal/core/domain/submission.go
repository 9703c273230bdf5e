package domain

// FormType identifica qual formulário público originou a submissão.
type FormType string

const (
	FormContact FormType = "contact"
	FormQuote   FormType = "quote"
	FormBooking FormType = "booking"
)

// FieldKind enumera os tipos de regra aplicáveis a um campo.
type FieldKind int

const (
	KindString FieldKind = iota
	KindEmail
	KindPhone
	KindEnum
	KindConsent
	KindIntegerString
	KindDate
)

// FieldRule descreve a validação declarativa de um único campo.
type FieldRule struct {
	Kind     FieldKind
	Required bool
	Enum     []string
	MaxLen   int
}

// Schema mapeia nomes de campos às regras de validação de um formulário.
// Os schemas são definidos na inicialização e nunca mudam em runtime.
type Schema map[string]FieldRule

// FieldErrors acumula mensagens de erro por campo. Cada campo é validado
// de forma independente para que o chamador receba todos os erros de uma vez.
type FieldErrors map[string]string

// ValidatedSubmission é o resultado de uma validação bem-sucedida. Todo campo
// opcional ausente aparece no mapa com valor vazio, então o consumidor não
// precisa checar presença.
type ValidatedSubmission struct {
	Form   FormType
	Fields map[string]string
}

// Field retorna o valor normalizado do campo informado.
func (s ValidatedSubmission) Field(name string) string {
	return s.Fields[name]
}
