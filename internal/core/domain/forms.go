package domain

// Códigos aceitos pelos campos de enumeração dos formulários.
var (
	ServiceCodes       = []string{"standard", "deep", "move", "office"}
	FrequencyCodes     = []string{"one-time", "weekly", "bi-weekly", "monthly"}
	ContactMethodCodes = []string{"email", "phone"}
	PropertyTypeCodes  = []string{"house", "apartment", "office", "other"}
)

var contactSchema = Schema{
	"name":          {Kind: KindString, Required: true, MaxLen: 100},
	"email":         {Kind: KindEmail, Required: true, MaxLen: 254},
	"phone":         {Kind: KindPhone, MaxLen: 30},
	"contactMethod": {Kind: KindEnum, Enum: ContactMethodCodes},
	"message":       {Kind: KindString, Required: true, MaxLen: 5000},
	"consent":       {Kind: KindConsent, Required: true},
}

var quoteSchema = Schema{
	"name":         {Kind: KindString, Required: true, MaxLen: 100},
	"email":        {Kind: KindEmail, Required: true, MaxLen: 254},
	"phone":        {Kind: KindPhone, Required: true, MaxLen: 30},
	"service":      {Kind: KindEnum, Required: true, Enum: ServiceCodes},
	"frequency":    {Kind: KindEnum, Enum: FrequencyCodes},
	"propertyType": {Kind: KindEnum, Enum: PropertyTypeCodes},
	"bedrooms":     {Kind: KindIntegerString},
	"message":      {Kind: KindString, MaxLen: 5000},
	"consent":      {Kind: KindConsent, Required: true},
}

var bookingSchema = Schema{
	"name":    {Kind: KindString, Required: true, MaxLen: 100},
	"email":   {Kind: KindEmail, Required: true, MaxLen: 254},
	"phone":   {Kind: KindPhone, Required: true, MaxLen: 30},
	"service": {Kind: KindEnum, Required: true, Enum: ServiceCodes},
	"date":    {Kind: KindDate, Required: true},
	"address": {Kind: KindString, Required: true, MaxLen: 300},
	"notes":   {Kind: KindString, MaxLen: 5000},
	"consent": {Kind: KindConsent, Required: true},
}

var schemas = map[FormType]Schema{
	FormContact: contactSchema,
	FormQuote:   quoteSchema,
	FormBooking: bookingSchema,
}

// SchemaFor retorna o schema do formulário informado.
func SchemaFor(form FormType) (Schema, bool) {
	schema, ok := schemas[form]
	return schema, ok
}
