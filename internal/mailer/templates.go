package mailer

import "html/template"

// Template data is passed through named structs so bodies are rendered
// from injected configuration rather than global mutable strings.

type OTPData struct {
	FirstName     string
	Code          string
	ExpiryMinutes int
}

type WelcomeData struct {
	FirstName string
}

type ResetData struct {
	FirstName string
	Link      string
	Code      string
}

const otpBody = `<html><body>
<p>Hi {{.FirstName}},</p>
<p>Your verification code is <b>{{.Code}}</b>.</p>
<p>It expires in {{.ExpiryMinutes}} minutes.</p>
</body></html>`

const welcomeBody = `<html><body>
<p>Hi {{.FirstName}},</p>
<p>Welcome to our church community! We are glad to have you with us.</p>
</body></html>`

const resetBody = `<html><body>
<p>Hi {{.FirstName}},</p>
<p>We received a request to reset your password.
Use code <b>{{.Code}}</b> or follow <a href="{{.Link}}">this link</a>.</p>
<p>If you did not ask for this, you can ignore this email.</p>
</body></html>`

var (
	otpTmpl     = template.Must(template.New("otp").Parse(otpBody))
	welcomeTmpl = template.Must(template.New("welcome").Parse(welcomeBody))
	resetTmpl   = template.Must(template.New("reset").Parse(resetBody))
)
