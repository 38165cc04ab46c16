// internal/services/mail_service.go
package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Corphon/ItemShowcase/internal/config"
	apperrors "github.com/Corphon/ItemShowcase/internal/errors"
	"github.com/Corphon/ItemShowcase/internal/models"
	"github.com/Corphon/ItemShowcase/internal/utils"
)

// 询价通知的固定发件人身份
const (
	enquiryFromName = "Item Enquiry Bot"
	enquiryFromAddr = "no-reply@example.com"
)

// ChannelProvider 按需创建一次性邮件投递通道
// 生产实现面向 Ethereal 沙箱，接口化之后换成真实邮件服务商不需要改动发送逻辑
type ChannelProvider interface {
	Provision(ctx context.Context) (*models.EnquiryChannel, error)
}

// TransportSender 通过给定通道投递一封已组装好的邮件
type TransportSender interface {
	Send(ctx context.Context, channel *models.EnquiryChannel, from, to string, msg []byte) error
}

// MailService 负责物品询价通知的组装与发送
// 每次询价严格按 创建通道 -> 组装 -> 发送 执行，任一阶段失败即终止，不做自动重试：
// 询价由用户手动触发、重复触发无副作用，失败直接回报给用户重试即可
type MailService struct {
	Provider ChannelProvider
	Sender   TransportSender

	ProvisionTimeout time.Duration
	SendTimeout      time.Duration
}

// NewMailService 创建邮件服务
func NewMailService(cfg *config.Config) *MailService {
	return &MailService{
		Provider:         NewEtherealProvider(cfg.MailAPIURL),
		Sender:           NewSMTPSender(cfg.SocketTimeout),
		ProvisionTimeout: cfg.ProvisionTimeout,
		SendTimeout:      cfg.SendTimeout,
	}
}

// Notify 为指定物品发送一封询价通知邮件
// 调用方必须先确认物品存在；物品不存在属于调用方错误，这里不再检查
func (s *MailService) Notify(ctx context.Context, item *models.Item) (*models.EnquiryReceipt, error) {
	logger := utils.GetLogger()

	// 阶段1：创建一次性投递通道
	logger.Infof("正在创建询价邮件测试帐号...")
	provCtx, cancelProvision := context.WithTimeout(ctx, s.ProvisionTimeout)
	defer cancelProvision()

	channel, err := s.Provider.Provision(provCtx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || provCtx.Err() == context.DeadlineExceeded {
			logger.Errorf("创建测试帐号超时: %v", err)
			return nil, apperrors.NewTimeoutError(apperrors.CodeProvisioningTimeout,
				"Timeout creating test account", err)
		}
		logger.Errorf("创建测试帐号失败: %v", err)
		return nil, apperrors.NewNotificationError("",
			"Failed to create test account", err)
	}
	logger.Infof("测试帐号创建完成: %s", channel.User)

	// 阶段2：组装邮件（纯数据变换，不会失败，也不设超时）
	messageID := fmt.Sprintf("%s@ethereal.email", uuid.New().String())
	msg := composeEnquiryMessage(channel.User, messageID, item)

	// 阶段3：发送
	logger.Infof("正在发送询价邮件...")
	sendCtx, cancelSend := context.WithTimeout(ctx, s.SendTimeout)
	defer cancelSend()

	if err := s.Sender.Send(sendCtx, channel, enquiryFromAddr, channel.User, msg); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || sendCtx.Err() == context.DeadlineExceeded {
			logger.Errorf("发送询价邮件超时: %v", err)
			return nil, apperrors.NewTimeoutError(apperrors.CodeSendTimeout,
				"Timeout sending email", err)
		}
		logger.Errorf("发送询价邮件失败: %v", err)
		return nil, apperrors.NewNotificationError(apperrors.CodeSendFailure,
			"Failed to send email", err)
	}

	// 阶段4：返回可供人工查看的预览地址和邮件标识
	logger.Infof("询价邮件已发送: %s", messageID)
	return &models.EnquiryReceipt{
		Preview:   previewURL(channel, messageID),
		MessageID: fmt.Sprintf("<%s>", messageID),
	}, nil
}

// composeEnquiryMessage 组装询价通知邮件正文（RFC 5322 纯文本）
func composeEnquiryMessage(to, messageID string, item *models.Item) []byte {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("From: %s <%s>\r\n", enquiryFromName, enquiryFromAddr))
	buf.WriteString(fmt.Sprintf("To: %s\r\n", to))
	buf.WriteString(fmt.Sprintf("Subject: Enquiry for Item: %s\r\n", item.ItemName))
	buf.WriteString(fmt.Sprintf("Message-ID: <%s>\r\n", messageID))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(fmt.Sprintf("Someone enquired about the item: %s (%s)\r\n", item.ItemName, item.ItemType))
	buf.WriteString("\r\n")
	buf.WriteString(fmt.Sprintf("Description: %s\r\n", item.ItemDescription))
	return buf.Bytes()
}

// previewURL 拼出沙箱网页端可以直接打开的邮件预览地址
func previewURL(channel *models.EnquiryChannel, messageID string) string {
	web := strings.TrimSuffix(channel.Web, "/")
	if web == "" {
		web = "https://ethereal.email"
	}
	return fmt.Sprintf("%s/message/%s", web, messageID)
}
