package notify

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type Client struct {
	BaseURL    string
	Username   string
	Password   string
	SenderID   string
	HTTPClient *http.Client
}

type SendMessageRequest struct {
	Sender  string `json:"sender"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

type SendMessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		MessageID string `json:"message_id"`
		Status    string `json:"status"`
	} `json:"data"`
}

func NewClient(baseURL, username, password, senderID string) *Client {
	return &Client{
		BaseURL:  baseURL,
		Username: username,
		Password: password,
		SenderID: senderID,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Convert phone number from 0xxx format to +91xxx
func (c *Client) convertPhoneNumber(phone string) string {
	if strings.HasPrefix(phone, "0") {
		return "+91" + phone[1:]
	}
	if !strings.HasPrefix(phone, "+") {
		return "+91" + phone
	}
	return phone
}

// SendMessage sends a text through the SMS gateway.
func (c *Client) SendMessage(phone, message string) error {
	if phone == "" {
		return fmt.Errorf("no phone number to send to")
	}

	requestData := SendMessageRequest{
		Sender:  c.SenderID,
		Phone:   c.convertPhoneNumber(phone),
		Message: message,
	}

	jsonData, err := json.Marshal(requestData)
	if err != nil {
		return fmt.Errorf("failed to marshal request data: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/send", c.BaseURL)

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	// Basic Auth token
	auth := base64.StdEncoding.EncodeToString([]byte(c.Username + ":" + c.Password))
	req.Header.Set("Authorization", "Basic "+auth)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("gateway returned status %d: %s", resp.StatusCode, string(body))
	}

	var response SendMessageResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if !response.Success {
		return fmt.Errorf("gateway rejected message: %s", response.Message)
	}

	return nil
}
