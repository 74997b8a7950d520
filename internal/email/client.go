package email

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"strconv"

	"github.com/wneessen/go-mail"
)

// Client sends transactional mail over SMTP.
type Client struct {
	host      string
	port      int
	user      string
	password  string
	fromName  string
	fromEmail string

	// send is swapped in tests.
	send func(ctx context.Context, m *mail.Msg) error
}

// NewClient creates a mail client for the given SMTP account.
func NewClient(host, portStr, user, password, fromName, fromEmail string) (*Client, error) {
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP port: %w", err)
	}

	c := &Client{
		host:      host,
		port:      port,
		user:      user,
		password:  password,
		fromName:  fromName,
		fromEmail: fromEmail,
	}
	c.send = c.dialAndSend
	return c, nil
}

// SendEmail sends one HTML message.
func (c *Client) SendEmail(ctx context.Context, to, subject, htmlBody string) error {
	m := mail.NewMsg()

	if err := m.From(fmt.Sprintf("%s <%s>", c.fromName, c.fromEmail)); err != nil {
		return fmt.Errorf("invalid sender: %w", err)
	}
	if err := m.To(to); err != nil {
		return fmt.Errorf("invalid recipient: %w", err)
	}
	m.Subject(subject)
	m.SetBodyString(mail.TypeTextHTML, htmlBody)

	return c.send(ctx, m)
}

func (c *Client) dialAndSend(ctx context.Context, m *mail.Msg) error {
	client, err := mail.NewClient(c.host,
		mail.WithPort(c.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(c.user),
		mail.WithPassword(c.password),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithTLSConfig(&tls.Config{
			ServerName: c.host,
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client (host=%s port=%d user=%s): %w", c.host, c.port, c.user, err)
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("failed to send mail (host=%s port=%d user=%s): %w", c.host, c.port, c.user, err)
	}
	return nil
}

var brochureTmpl = template.Must(template.New("brochure").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<title>{{.Category}} brochure</title>
</head>
<body style="margin: 0; padding: 0; font-family: Arial, sans-serif; background-color: #f4f4f4;">
	<table width="100%" cellpadding="0" cellspacing="0" style="background-color: #f4f4f4; padding: 20px;">
		<tr>
			<td align="center">
				<table width="600" cellpadding="0" cellspacing="0" style="background-color: #ffffff; border-radius: 8px;">
					<tr>
						<td style="background-color: #1f1f1f; padding: 32px 20px; text-align: center;">
							<h1 style="color: #ffffff; margin: 0; font-size: 24px;">{{.From}}</h1>
						</td>
					</tr>
					<tr>
						<td style="padding: 32px 30px; color: #333;">
							<p>Thank you for your interest in our {{.Category}} collection.</p>
							<p>You can download the brochure here:</p>
							<p style="text-align: center; margin: 28px 0;">
								<a href="{{.Link}}" style="background-color: #b08d57; color: #ffffff; padding: 12px 24px; text-decoration: none; border-radius: 4px;">Download {{.Category}} brochure</a>
							</p>
							<p style="font-size: 12px; color: #999;">If the button does not work, copy this address into your browser: {{.Link}}</p>
						</td>
					</tr>
				</table>
			</td>
		</tr>
	</table>
</body>
</html>
`))

// SendBrochureLink mails the download link of a category brochure.
func (c *Client) SendBrochureLink(ctx context.Context, to, categoryName, link string) error {
	body, err := c.brochureBody(categoryName, link)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("%s brochure - %s", categoryName, c.fromName)
	return c.SendEmail(ctx, to, subject, body)
}

func (c *Client) brochureBody(categoryName, link string) (string, error) {
	var body bytes.Buffer
	err := brochureTmpl.Execute(&body, struct {
		From     string
		Category string
		Link     string
	}{c.fromName, categoryName, link})
	if err != nil {
		return "", fmt.Errorf("render brochure mail: %w", err)
	}
	return body.String(), nil
}
