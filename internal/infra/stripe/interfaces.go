package stripe

import "context"

type GatewayInterface interface {
	CreateIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (*PaymentIntent, error)
	GetIntent(ctx context.Context, id string) (*PaymentIntent, error)
}

var _ GatewayInterface = (*Client)(nil)
