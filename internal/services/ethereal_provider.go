// internal/services/ethereal_provider.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/Corphon/ItemShowcase/internal/models"
)

const defaultEtherealAPIURL = "https://api.nodemailer.com/user"

// EtherealProvider 调用 Ethereal 帐号接口创建一次性 SMTP 凭据
// 每次 Provision 都会申请一个全新的沙箱帐号，凭据只在当次询价内使用
type EtherealProvider struct {
	apiURL string
	client *http.Client
}

// NewEtherealProvider 创建 Ethereal 通道提供方
func NewEtherealProvider(apiURL string) *EtherealProvider {
	if apiURL == "" {
		apiURL = defaultEtherealAPIURL
	}
	return &EtherealProvider{
		apiURL: apiURL,
		client: &http.Client{},
	}
}

// etherealAccountResponse Ethereal 帐号接口的响应体
type etherealAccountResponse struct {
	Status string `json:"status"`
	User   string `json:"user"`
	Pass   string `json:"pass"`
	Web    string `json:"web"`
	SMTP   struct {
		Host   string `json:"host"`
		Port   int    `json:"port"`
		Secure bool   `json:"secure"`
	} `json:"smtp"`
	Error string `json:"error"`
}

// Provision 申请一个一次性投递通道
func (p *EtherealProvider) Provision(ctx context.Context) (*models.EnquiryChannel, error) {
	payload, err := json.Marshal(map[string]string{
		"requestor": "itemshowcase",
		"version":   "1.0.0",
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("ethereal account request failed(%d): %s", resp.StatusCode, string(body))
	}

	var account etherealAccountResponse
	if err := json.NewDecoder(resp.Body).Decode(&account); err != nil {
		return nil, fmt.Errorf("decode ethereal account response: %w", err)
	}

	if account.Error != "" {
		return nil, fmt.Errorf("ethereal account request rejected: %s", account.Error)
	}
	if account.User == "" || account.SMTP.Host == "" {
		return nil, fmt.Errorf("ethereal account response missing credentials")
	}

	return &models.EnquiryChannel{
		Host:   account.SMTP.Host,
		Port:   account.SMTP.Port,
		Secure: account.SMTP.Secure,
		User:   account.User,
		Pass:   account.Pass,
		Web:    account.Web,
	}, nil
}
