package domain

// Message representa um e-mail já renderizado e endereçado, pronto para envio.
type Message struct {
	To      string
	From    string
	ReplyTo string
	Subject string
	Body    string
}

// DispatchOutcome descreve o resultado das duas pernas de notificação de uma
// submissão. A perna de aviso interno é crítica; a de confirmação ao cliente
// é melhor esforço, então CustomerSent=false sem FatalErr ainda é sucesso.
type DispatchOutcome struct {
	Reference    string
	BusinessSent bool
	CustomerSent bool
	FatalErr     error
}
