package templates

import (
	"bytes"
	"html/template"
	"log"
)

// ContactEmailProps carries one contact-form submission into the
// notification template. All fields are escaped by html/template.
type ContactEmailProps struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

var contactEmailTemplate = template.Must(template.New("contactEmail").Parse(`
<h2 style="margin: 0 0 16px 0; font-size: 20px; color: #1a1a2e;">Liên hệ mới từ website</h2>
<table role="presentation" border="0" cellpadding="0" cellspacing="0" style="width: 100%; border-collapse: collapse;">
  <tr>
    <td style="padding: 8px 0; font-weight: bold; width: 140px;">Họ tên</td>
    <td style="padding: 8px 0;">{{.Name}}</td>
  </tr>
  <tr>
    <td style="padding: 8px 0; font-weight: bold;">Email</td>
    <td style="padding: 8px 0;"><a href="mailto:{{.Email}}">{{.Email}}</a></td>
  </tr>
  {{if .Phone}}
  <tr>
    <td style="padding: 8px 0; font-weight: bold;">Điện thoại</td>
    <td style="padding: 8px 0;">{{.Phone}}</td>
  </tr>
  {{end}}
  {{if .Subject}}
  <tr>
    <td style="padding: 8px 0; font-weight: bold;">Chủ đề</td>
    <td style="padding: 8px 0;">{{.Subject}}</td>
  </tr>
  {{end}}
</table>
<p style="margin: 16px 0 8px 0; font-weight: bold;">Nội dung:</p>
<p style="margin: 0; white-space: pre-line; background: #f4f5f6; border-radius: 8px; padding: 16px;">{{.Message}}</p>
`))

// GetContactEmailContent renders the contact notification body for the
// shared layout.
func GetContactEmailContent(props ContactEmailProps) string {
	var buf bytes.Buffer
	if err := contactEmailTemplate.Execute(&buf, props); err != nil {
		log.Printf("Error executing contact email template: %v", err)
		return "<p>Template execution error</p>"
	}
	return buf.String()
}
