package config

// MailerConfig holds settings for transactional email via Resend.
// Emails are skipped (with a log line) when the API key is empty, so
// local development works without an account.
type MailerConfig struct {
	APIKey      string
	SenderName  string
	SenderEmail string
	ReplyTo     string
}

// LoadMailerConfig reads mailer settings from the environment.
func LoadMailerConfig() MailerConfig {
	return MailerConfig{
		APIKey:      envStr("RESEND_API_KEY", ""),
		SenderName:  envStr("MAIL_SENDER_NAME", "Bookings"),
		SenderEmail: envStr("MAIL_SENDER_EMAIL", "bookings@localhost"),
		ReplyTo:     envStr("MAIL_REPLY_TO", ""),
	}
}
