package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const sendGridURL = "https://api.sendgrid.com/v3/mail/send"

// sendGridTransport delivers mail through the SendGrid v3 API.
type sendGridTransport struct {
	apiKey     string
	from       string
	url        string
	httpClient *http.Client
}

func newSendGridTransport(apiKey, from string) *sendGridTransport {
	if from == "" {
		from = DefaultFrom
	}
	return &sendGridTransport{
		apiKey: apiKey,
		from:   from,
		url:    sendGridURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (t *sendGridTransport) name() string { return "SendGrid" }

type sendGridAddress struct {
	Email string `json:"email"`
}

type sendGridContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sendGridRequest struct {
	Personalizations []struct {
		To []sendGridAddress `json:"to"`
	} `json:"personalizations"`
	From    sendGridAddress   `json:"from"`
	Subject string            `json:"subject"`
	Content []sendGridContent `json:"content"`
}

func (t *sendGridTransport) attempt(ctx context.Context, recipient, subject, body string) (string, error) {
	contentType := "text/plain"
	if isHTML(body) {
		contentType = "text/html"
	}

	reqBody := sendGridRequest{
		From:    sendGridAddress{Email: t.from},
		Subject: subject,
		Content: []sendGridContent{{Type: contentType, Value: body}},
	}
	reqBody.Personalizations = append(reqBody.Personalizations, struct {
		To []sendGridAddress `json:"to"`
	}{To: []sendGridAddress{{Email: recipient}}})

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("SendGrid error: %v", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("SendGrid error: %v", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+t.apiKey)

	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("SendGrid error: %v", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted:
		return "Email sent successfully via SendGrid", nil
	default:
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("SendGrid error: %d: %s", resp.StatusCode, string(respBody))
	}
}
