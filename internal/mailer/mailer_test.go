package mailer

import (
	"context"
	"strings"
	"testing"
)

type recordedMessage struct {
	to, subject, htmlBody, textBody string
}

type recordingTransport struct {
	sent []recordedMessage
	err  error
}

func (r *recordingTransport) Send(ctx context.Context, to, subject, htmlBody, textBody string) error {
	r.sent = append(r.sent, recordedMessage{to: to, subject: subject, htmlBody: htmlBody, textBody: textBody})
	return r.err
}

func TestSendOTPRendersBothBodies(t *testing.T) {
	tr := &recordingTransport{}
	m := New(Config{From: "church@example.com", ExpiryMinutes: 15}, tr)

	if err := m.SendOTP(context.Background(), "a@x.com", "Ada", "123456"); err != nil {
		t.Fatalf("send otp: %v", err)
	}
	if len(tr.sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(tr.sent))
	}
	msg := tr.sent[0]
	if msg.to != "a@x.com" {
		t.Fatalf("unexpected recipient %q", msg.to)
	}
	if !strings.Contains(msg.htmlBody, "<b>123456</b>") {
		t.Fatalf("html body missing code: %q", msg.htmlBody)
	}
	if !strings.Contains(msg.textBody, "123456") || strings.Contains(msg.textBody, "<") {
		t.Fatalf("text body not plain: %q", msg.textBody)
	}
	if !strings.Contains(msg.textBody, "15 minutes") {
		t.Fatalf("text body missing expiry: %q", msg.textBody)
	}
}

func TestSendPasswordResetIncludesLinkAndCode(t *testing.T) {
	tr := &recordingTransport{}
	m := New(Config{From: "church@example.com"}, tr)

	link := "https://example.org/password/reset/confirm/?token=abc"
	if err := m.SendPasswordReset(context.Background(), "b@x.com", "Bob", link, "654321"); err != nil {
		t.Fatalf("send reset: %v", err)
	}
	msg := tr.sent[0]
	if !strings.Contains(msg.htmlBody, link) {
		t.Fatalf("html body missing link: %q", msg.htmlBody)
	}
	if !strings.Contains(msg.textBody, "654321") {
		t.Fatalf("text body missing code: %q", msg.textBody)
	}
}

func TestStripTags(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"<p>Hello</p><p>World</p>", "Hello\nWorld"},
		{"plain text", "plain text"},
		{"<b>bold</b> and <i>italic</i>", "bold and italic"},
		{"a &amp; b", "a & b"},
		{"<div>one<br>two</div>", "one\ntwo"},
	}
	for _, tc := range cases {
		if got := stripTags(tc.in); got != tc.want {
			t.Fatalf("stripTags(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
