package bridge

// Message kinds exchanged with clients over the WebSocket connection.
const (
	KindInitiation        = "initiation"
	KindInitiationReceive = "initiation_receive"
	KindInvoice           = "invoice"
	KindHoldInvoice       = "hold_invoice"
	KindHoldContract      = "hold_contract"
	KindStatus            = "status"
)

// Status values carried by StatusResponse.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// SendRequest starts the Send flow: the client has escrowed on-chain value
// and wants the operator to pay its Lightning invoice.
type SendRequest struct {
	Kind       string `json:"kind"`
	ContractID string `json:"contractId"`
	Invoice    string `json:"lnInvoice"`
}

// ReceiveRequest starts the Receive flow: the client will pay a hold invoice
// and claim on-chain value by revealing the preimage of its hashlock.
type ReceiveRequest struct {
	Kind       string `json:"kind"`
	AmountSats int64  `json:"amount"`
	Recipient  string `json:"recipient"`
	Hashlock   string `json:"hashlock"`
}

// InvoiceResponse delivers a payable invoice to the client.
type InvoiceResponse struct {
	Kind    string `json:"kind"`
	Invoice string `json:"lnInvoice"`
}

// HoldContractResponse delivers the id of the escrow created for the client.
type HoldContractResponse struct {
	Kind       string `json:"kind"`
	ContractID string `json:"contractId"`
}

// StatusResponse is a terminal or error notice.
type StatusResponse struct {
	Kind    string `json:"kind"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

func statusError(message string) StatusResponse {
	return StatusResponse{Kind: KindStatus, Status: StatusError, Message: message}
}

func statusSuccess(message string) StatusResponse {
	return StatusResponse{Kind: KindStatus, Status: StatusSuccess, Message: message}
}
