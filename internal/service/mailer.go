package service

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/shopspring/decimal"
)

// MailConfig holds SMTP settings.
type MailConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// OrderConfirmation carries the fields rendered into the confirmation mail.
type OrderConfirmation struct {
	OrderNumber  string
	CustomerName string
	Total        decimal.Decimal
	Items        []OrderConfirmationItem
}

// OrderConfirmationItem is one confirmed line item.
type OrderConfirmationItem struct {
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// MailSender sends transactional mail. Callers treat failures as
// best-effort: log and move on.
type MailSender interface {
	SendPasswordReset(to, resetURL string) error
	SendOrderConfirmation(to string, order OrderConfirmation) error
}

// Mailer is an SMTP-backed MailSender.
type Mailer struct {
	config MailConfig
}

// NewMailer creates a Mailer from SMTP settings.
func NewMailer(cfg MailConfig) *Mailer {
	return &Mailer{config: cfg}
}

func (m *Mailer) sendHTML(to, subject, htmlBody string) error {
	headers := map[string]string{
		"From":         m.config.From,
		"To":           to,
		"Subject":      subject,
		"MIME-Version": "1.0",
		"Content-Type": `text/html; charset="UTF-8"`,
	}

	var msg strings.Builder
	for k, v := range headers {
		fmt.Fprintf(&msg, "%s: %s\r\n", k, v)
	}
	msg.WriteString("\r\n" + htmlBody)

	addr := fmt.Sprintf("%s:%s", m.config.Host, m.config.Port)
	auth := smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)

	if err := smtp.SendMail(addr, auth, m.config.From, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

// SendPasswordReset mails the one-time reset link. The URL embeds the
// plaintext token; it is never logged or persisted.
func (m *Mailer) SendPasswordReset(to, resetURL string) error {
	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2>Şifre Sıfırlama Talebi</h2>
    <p>Hesabınız için bir şifre sıfırlama talebi aldık. Şifrenizi sıfırlamak için aşağıdaki butona tıklayın:</p>
    <p style="text-align: center;">
      <a href="%s" style="display: inline-block; background-color: #dc2626; color: white; padding: 15px 30px; text-decoration: none; border-radius: 5px; font-weight: bold;">Şifremi Sıfırla</a>
    </p>
    <p>Bu bağlantı 1 saat boyunca geçerlidir. Talebi siz yapmadıysanız bu e-postayı yok sayın.</p>
  </div>
</body>
</html>`, resetURL)

	return m.sendHTML(to, "Şifre Sıfırlama Talebi", body)
}

// SendOrderConfirmation mails the order summary after a successful checkout.
func (m *Mailer) SendOrderConfirmation(to string, order OrderConfirmation) error {
	var rows strings.Builder
	for _, item := range order.Items {
		fmt.Fprintf(&rows,
			`<tr><td style="padding: 8px; border-bottom: 1px solid #ddd;">%s</td><td style="padding: 8px; border-bottom: 1px solid #ddd; text-align: center;">%d</td><td style="padding: 8px; border-bottom: 1px solid #ddd; text-align: right;">%s TL</td></tr>`,
			item.ProductName, item.Quantity, item.UnitPrice.StringFixed(2))
	}

	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2>Siparişiniz Alındı</h2>
    <p>Merhaba %s,</p>
    <p><strong>%s</strong> numaralı siparişiniz başarıyla oluşturuldu.</p>
    <table style="width: 100%%; border-collapse: collapse;">
      <tr><th style="padding: 8px; text-align: left;">Ürün</th><th style="padding: 8px;">Adet</th><th style="padding: 8px; text-align: right;">Birim Fiyat</th></tr>
      %s
    </table>
    <p style="text-align: right; font-size: 1.2em;"><strong>Toplam: %s TL</strong></p>
  </div>
</body>
</html>`, order.CustomerName, order.OrderNumber, rows.String(), order.Total.StringFixed(2))

	return m.sendHTML(to, fmt.Sprintf("Sipariş Onayı - %s", order.OrderNumber), body)
}
