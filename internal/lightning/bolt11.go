package lightning

import (
	"fmt"
	"time"

	decodepay "github.com/fiatjaf/ln-decodepay"

	"github.com/lnevm/bridge/pkg/helpers"
)

// DecodeInvoice parses a BOLT11 payment request without contacting a node.
// Millisat amounts are truncated to whole satoshis.
func DecodeInvoice(paymentRequest string) (*Invoice, error) {
	bolt11, err := decodepay.Decodepay(paymentRequest)
	if err != nil {
		return nil, fmt.Errorf("failed to decode payment request: %w", err)
	}

	hash, err := helpers.HexToHash32(bolt11.PaymentHash)
	if err != nil {
		return nil, fmt.Errorf("invalid payment hash in invoice: %w", err)
	}

	createdAt := time.Unix(int64(bolt11.CreatedAt), 0)
	return &Invoice{
		PaymentRequest: paymentRequest,
		PaymentHash:    hash,
		Satoshis:       bolt11.MSatoshi / 1000,
		Description:    bolt11.Description,
		CreatedAt:      createdAt,
		ExpiresAt:      createdAt.Add(time.Duration(bolt11.Expiry) * time.Second),
	}, nil
}
