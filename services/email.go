package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// EmailService delivers transactional mail through the Resend HTTP API.
type EmailService struct {
	apiKey    string
	fromEmail string
	client    *http.Client
}

func NewEmailService(apiKey, fromEmail string) *EmailService {
	return &EmailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

// SendOTP mails a password-reset code to the user.
func (s *EmailService) SendOTP(to, otp string) error {
	if s.apiKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: sans-serif; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: linear-gradient(135deg, #10b981 0%%, #059669 100%%); color: white; padding: 30px; border-radius: 10px 10px 0 0; }
        .content { background: #f8f9fa; padding: 30px; }
        .otp { font-size: 32px; font-weight: bold; letter-spacing: 8px; color: #059669; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>TaxPal Verification</h1>
        </div>
        <div class="content">
            <p>Use this code to reset your TaxPal password:</p>
            <p class="otp">%s</p>
            <p style="color: #e74c3c; margin-top: 30px;">If you did not request a reset, ignore this email.</p>
        </div>
    </div>
</body>
</html>
	`, otp)

	payload := map[string]interface{}{
		"from":    fmt.Sprintf("TaxPal <%s>", s.fromEmail),
		"to":      []string{to},
		"subject": "TaxPal OTP Verification",
		"html":    htmlBody,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest("POST", "https://api.resend.com/emails", bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to send email: status %d", resp.StatusCode)
	}

	return nil
}
