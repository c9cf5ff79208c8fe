package lightning

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/lightningnetwork/lnd/lnrpc"
	"github.com/lightningnetwork/lnd/lnrpc/invoicesrpc"
	"github.com/lightningnetwork/lnd/lnrpc/routerrpc"
	"github.com/lightningnetwork/lnd/macaroons"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"gopkg.in/macaroon.v2"

	"github.com/lnevm/bridge/pkg/helpers"
	"github.com/lnevm/bridge/pkg/logging"
)

// LNDConfig holds LND connection parameters.
type LNDConfig struct {
	Host         string
	TLSCertPath  string
	MacaroonPath string
}

// LNDClient implements Client against an LND node over gRPC.
type LNDClient struct {
	lnClient       lnrpc.LightningClient
	invoicesClient invoicesrpc.InvoicesClient
	routerClient   routerrpc.RouterClient
	conn           *grpc.ClientConn
	log            *logging.Logger
}

// NewLNDClient dials LND with TLS and macaroon credentials.
func NewLNDClient(cfg LNDConfig, log *logging.Logger) (*LNDClient, error) {
	creds, err := credentials.NewClientTLSFromFile(cfg.TLSCertPath, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load TLS cert: %w", err)
	}

	macBytes, err := os.ReadFile(cfg.MacaroonPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read macaroon: %w", err)
	}

	mac := &macaroon.Macaroon{}
	if err := mac.UnmarshalBinary(macBytes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal macaroon: %w", err)
	}

	macCreds, err := macaroons.NewMacaroonCredential(mac)
	if err != nil {
		return nil, fmt.Errorf("failed to create macaroon credential: %w", err)
	}

	opts := []grpc.DialOption{
		grpc.WithTransportCredentials(creds),
		grpc.WithPerRPCCredentials(macCreds),
	}

	conn, err := grpc.Dial(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to dial LND: %w", err)
	}

	return &LNDClient{
		lnClient:       lnrpc.NewLightningClient(conn),
		invoicesClient: invoicesrpc.NewInvoicesClient(conn),
		routerClient:   routerrpc.NewRouterClient(conn),
		conn:           conn,
		log:            log,
	}, nil
}

// Close closes the underlying connection.
func (c *LNDClient) Close() error {
	return c.conn.Close()
}

// NodePubkey returns the identity pubkey of the connected node.
func (c *LNDClient) NodePubkey(ctx context.Context) (string, error) {
	resp, err := c.lnClient.GetInfo(ctx, &lnrpc.GetInfoRequest{})
	if err != nil {
		return "", fmt.Errorf("failed to get node info: %w", err)
	}
	return resp.IdentityPubkey, nil
}

// CreateInvoice generates a standard invoice.
func (c *LNDClient) CreateInvoice(ctx context.Context, amountSats int64, memo string, expiry time.Duration) (*Invoice, error) {
	resp, err := c.lnClient.AddInvoice(ctx, &lnrpc.Invoice{
		Memo:   memo,
		Value:  amountSats,
		Expiry: int64(expiry.Seconds()),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add invoice: %w", err)
	}

	var hash [32]byte
	copy(hash[:], resp.RHash)

	now := time.Now()
	return &Invoice{
		PaymentRequest: resp.PaymentRequest,
		PaymentHash:    hash,
		Satoshis:       amountSats,
		Description:    memo,
		CreatedAt:      now,
		ExpiresAt:      now.Add(expiry),
	}, nil
}

// CreateHoldInvoice generates a hold invoice locked to the given hash.
func (c *LNDClient) CreateHoldInvoice(ctx context.Context, hash [32]byte, amountSats int64, memo string, expiry time.Duration) (*Invoice, error) {
	resp, err := c.invoicesClient.AddHoldInvoice(ctx, &invoicesrpc.AddHoldInvoiceRequest{
		Memo:   memo,
		Hash:   hash[:],
		Value:  amountSats,
		Expiry: int64(expiry.Seconds()),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add hold invoice: %w", err)
	}

	now := time.Now()
	return &Invoice{
		PaymentRequest: resp.PaymentRequest,
		PaymentHash:    hash,
		Satoshis:       amountSats,
		Description:    memo,
		CreatedAt:      now,
		ExpiresAt:      now.Add(expiry),
	}, nil
}

// SubscribeInvoice streams state updates for one invoice. The stream is
// re-established with exponential backoff on transient errors; the channel
// closes once the invoice settles or cancels.
func (c *LNDClient) SubscribeInvoice(ctx context.Context, hash [32]byte) (<-chan InvoiceUpdate, error) {
	updates := make(chan InvoiceUpdate)

	go func() {
		defer close(updates)

		bo := backoff.WithContext(backoff.NewExponentialBackOff(), ctx)
		err := backoff.Retry(func() error {
			stream, err := c.invoicesClient.SubscribeSingleInvoice(ctx, &invoicesrpc.SubscribeSingleInvoiceRequest{
				RHash: hash[:],
			})
			if err != nil {
				return err
			}

			for {
				invoice, err := stream.Recv()
				if err != nil {
					return err
				}

				update := InvoiceUpdate{
					PaymentHash: hash,
					AmountSats:  invoice.Value,
				}
				switch invoice.State {
				case lnrpc.Invoice_OPEN:
					update.State = InvoiceOpen
				case lnrpc.Invoice_ACCEPTED:
					update.State = InvoiceHeld
				case lnrpc.Invoice_SETTLED:
					update.State = InvoiceSettled
				case lnrpc.Invoice_CANCELED:
					update.State = InvoiceCanceled
				}

				select {
				case updates <- update:
				case <-ctx.Done():
					return backoff.Permanent(ctx.Err())
				}

				if update.State == InvoiceSettled || update.State == InvoiceCanceled {
					return nil
				}
			}
		}, bo)
		if err != nil && ctx.Err() == nil {
			c.log.Error("invoice subscription failed", "error", err)
		}
	}()

	return updates, nil
}

// SettleHoldInvoice settles a held invoice with its preimage.
func (c *LNDClient) SettleHoldInvoice(ctx context.Context, preimage [32]byte) error {
	if _, err := c.invoicesClient.SettleInvoice(ctx, &invoicesrpc.SettleInvoiceMsg{
		Preimage: preimage[:],
	}); err != nil {
		if strings.Contains(err.Error(), "already settled") {
			return ErrInvoiceAlreadySettled
		}
		return fmt.Errorf("failed to settle invoice: %w", err)
	}
	return nil
}

// CancelHoldInvoice cancels a hold invoice.
func (c *LNDClient) CancelHoldInvoice(ctx context.Context, hash [32]byte) error {
	if _, err := c.invoicesClient.CancelInvoice(ctx, &invoicesrpc.CancelInvoiceMsg{
		PaymentHash: hash[:],
	}); err != nil {
		return fmt.Errorf("failed to cancel invoice: %w", err)
	}
	return nil
}

// PayInvoice pays an invoice via the router and blocks until the payment
// reaches a terminal state. On success the settlement preimage is returned.
func (c *LNDClient) PayInvoice(ctx context.Context, paymentRequest string, maxFeeSats int64) ([32]byte, error) {
	stream, err := c.routerClient.SendPaymentV2(ctx, &routerrpc.SendPaymentRequest{
		PaymentRequest: paymentRequest,
		FeeLimitSat:    maxFeeSats,
		TimeoutSeconds: 60,
	})
	if err != nil {
		return [32]byte{}, fmt.Errorf("failed to send payment: %w", err)
	}

	for {
		payment, err := stream.Recv()
		if err != nil {
			return [32]byte{}, fmt.Errorf("payment stream error: %w", err)
		}

		switch payment.Status {
		case lnrpc.Payment_SUCCEEDED:
			preimage, err := preimageFromHex(payment.PaymentPreimage)
			if err != nil {
				return [32]byte{}, err
			}
			return preimage, nil
		case lnrpc.Payment_FAILED:
			return [32]byte{}, fmt.Errorf("%w: %s", ErrPaymentFailed, payment.FailureReason)
		}
	}
}

func preimageFromHex(s string) ([32]byte, error) {
	preimage, err := helpers.HexToHash32(s)
	if err != nil {
		return [32]byte{}, fmt.Errorf("invalid preimage in payment: %w", err)
	}
	return preimage, nil
}
