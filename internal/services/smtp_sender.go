// internal/services/smtp_sender.go
package services

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"time"

	"github.com/Corphon/ItemShowcase/internal/models"
)

// SMTPSender 通过标准 SMTP 协议投递邮件
// 连接、握手、数据传输共用同一个套接字截止时间，取
// 调用方上下文截止时间与 SocketTimeout 中更早的那个
type SMTPSender struct {
	SocketTimeout time.Duration
}

// NewSMTPSender 创建 SMTP 发送器
func NewSMTPSender(socketTimeout time.Duration) *SMTPSender {
	return &SMTPSender{
		SocketTimeout: socketTimeout,
	}
}

// Send 在指定通道上完成一次完整的 SMTP 事务
func (s *SMTPSender) Send(ctx context.Context, channel *models.EnquiryChannel, from, to string, msg []byte) error {
	addr := fmt.Sprintf("%s:%d", channel.Host, channel.Port)

	dialer := &net.Dialer{Timeout: s.SocketTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("SMTP connect to %s: %w", addr, err)
	}

	deadline := time.Now().Add(s.SocketTimeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	conn.SetDeadline(deadline)

	// secure 通道直接走隐式 TLS，否则在明文连接上尝试 STARTTLS
	if channel.Secure {
		conn = tls.Client(conn, &tls.Config{
			ServerName:         channel.Host,
			InsecureSkipVerify: true,
		})
	}

	client, err := smtp.NewClient(conn, channel.Host)
	if err != nil {
		conn.Close()
		return s.transportError(ctx, "SMTP client", err)
	}
	defer client.Close()

	if !channel.Secure {
		if ok, _ := client.Extension("STARTTLS"); ok {
			tlsCfg := &tls.Config{
				ServerName:         channel.Host,
				InsecureSkipVerify: true,
			}
			if err := client.StartTLS(tlsCfg); err != nil {
				return s.transportError(ctx, "STARTTLS", err)
			}
		}
	}

	if channel.User != "" {
		auth := smtp.PlainAuth("", channel.User, channel.Pass, channel.Host)
		if err := client.Auth(auth); err != nil {
			return s.transportError(ctx, "SMTP auth", err)
		}
	}

	if err := client.Mail(from); err != nil {
		return s.transportError(ctx, "MAIL FROM", err)
	}
	if err := client.Rcpt(to); err != nil {
		return s.transportError(ctx, "RCPT TO", err)
	}

	w, err := client.Data()
	if err != nil {
		return s.transportError(ctx, "DATA", err)
	}
	if _, err := w.Write(msg); err != nil {
		return s.transportError(ctx, "write", err)
	}
	if err := w.Close(); err != nil {
		return s.transportError(ctx, "DATA close", err)
	}

	return client.Quit()
}

// transportError 把套接字超时归一成上下文超时，方便上层区分超时和传输失败
func (s *SMTPSender) transportError(ctx context.Context, stage string, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
		return context.DeadlineExceeded
	}
	return fmt.Errorf("%s: %w", stage, err)
}
