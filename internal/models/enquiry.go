// internal/models/enquiry.go
package models

// EnquiryChannel 一次性邮件投递通道凭据
// 每次询价即时创建，发送完成后即废弃，不做持久化也不跨请求复用
type EnquiryChannel struct {
	Host   string `json:"host"`
	Port   int    `json:"port"`
	Secure bool   `json:"secure"`
	User   string `json:"user"`
	Pass   string `json:"pass"`
	Web    string `json:"web"`
}

// EnquiryReceipt 询价通知发送成功后的回执
type EnquiryReceipt struct {
	Preview   string `json:"preview"`
	MessageID string `json:"messageId"`
}
