// backend/internal/adapters/out/mail/order_confirmation_mailer.go
package mail

import (
	"context"
	"fmt"
	"strings"

	orderdom "tienda/internal/domain/order"
)

// OrderConfirmationMailer は checkout 完了時の
// 「注文確認メール送信用アウトバウンドポート」の具象実装で、
// 内部で EmailClient を利用してメール送信を行います。
//
//   - client       : SMTP / SendGrid などの具体的な EmailClient 実装
//   - fromAddress  : 送信元メールアドレス
//   - storeBaseURL : "https://tienda.example.com" のような Storefront のベースURL
type OrderConfirmationMailer struct {
	client       EmailClient
	fromAddress  string
	storeBaseURL string
}

func NewOrderConfirmationMailer(client EmailClient, fromAddress, storeBaseURL string) *OrderConfirmationMailer {
	base := strings.TrimRight(storeBaseURL, "/")
	return &OrderConfirmationMailer{
		client:       client,
		fromAddress:  fromAddress,
		storeBaseURL: base,
	}
}

// buildOrderURL は確認メール内に記載する URL を組み立てます。
// 仕様: https://tienda.example.com/pedido-confirmado/<orderId>
func (m *OrderConfirmationMailer) buildOrderURL(orderID string) string {
	return fmt.Sprintf("%s/pedido-confirmado/%s", m.storeBaseURL, strings.TrimSpace(orderID))
}

// SendOrderConfirmation satisfies usecase.ConfirmationMailer.
func (m *OrderConfirmationMailer) SendOrderConfirmation(ctx context.Context, o orderdom.Order) error {
	if m == nil || m.client == nil {
		return fmt.Errorf("order_confirmation_mailer: email client is nil")
	}

	to := strings.TrimSpace(o.CustomerInfo.Email)
	if to == "" {
		return fmt.Errorf("order_confirmation_mailer: customer email is empty")
	}

	subject := fmt.Sprintf("Confirmación de pedido %s", o.ID)
	body := m.buildBody(o)

	return m.client.Send(ctx, m.fromAddress, to, subject, body)
}

func (m *OrderConfirmationMailer) buildBody(o orderdom.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Hola %s,\n\n", o.CustomerInfo.Name)
	fmt.Fprintf(&b, "Hemos recibido tu pedido %s.\n\n", o.ID)

	for _, it := range o.Items {
		fmt.Fprintf(&b, "  %d x %s — %s\n", it.Quantity, it.Product.Name, it.Subtotal().StringFixed(2))
	}
	fmt.Fprintf(&b, "\nTotal: %s\n", o.TotalAmount.StringFixed(2))
	fmt.Fprintf(&b, "Estado: %s\n\n", orderdom.DisplayFor(o.Status).Label)

	if m.storeBaseURL != "" {
		fmt.Fprintf(&b, "Seguimiento: %s\n", m.buildOrderURL(o.ID))
	}

	return b.String()
}
