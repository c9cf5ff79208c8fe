// Package htlc provides a Go client for the HashedTimelock smart contract.
// The client wraps the auto-generated bindings with a more user-friendly
// interface scoped to what the bridge needs: create, inspect, withdraw,
// refund.
package htlc

import (
	"context"
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/lnevm/bridge/pkg/helpers"
)

// ContractDetails holds the parsed state of one hashed-timelock contract.
type ContractDetails struct {
	Sender    common.Address
	Receiver  common.Address
	Amount    *big.Int
	Hashlock  [32]byte
	Timelock  *big.Int
	Withdrawn bool
	Refunded  bool
	Preimage  [32]byte
}

// IsSettled returns true once the contract has been withdrawn or refunded.
func (d *ContractDetails) IsSettled() bool {
	return d.Withdrawn || d.Refunded
}

// HasPreimage returns true if the preimage has been revealed on-chain.
// An all-zero preimage is the contract's "not revealed" sentinel.
func (d *ContractDetails) HasPreimage() bool {
	return !helpers.IsZeroBytes(d.Preimage[:])
}

// ExpiresAt returns the timelock as a wall-clock time.
func (d *ContractDetails) ExpiresAt() time.Time {
	if d.Timelock == nil {
		return time.Time{}
	}
	return time.Unix(d.Timelock.Int64(), 0)
}

// Client is a wrapper around the HashedTimelock contract bound to a single
// operator key.
type Client struct {
	client          *ethclient.Client
	contract        *HashedTimelock
	contractAddress common.Address
	chainID         *big.Int
	privateKey      *ecdsa.PrivateKey
	gasPrice        *big.Int // nil means node-suggested
}

// NewClient connects to the RPC endpoint and binds the contract.
// A non-zero gasPriceWei pins the gas price for all transactions.
func NewClient(rpcURL string, contractAddress common.Address, privateKey *ecdsa.PrivateKey, gasPriceWei int64) (*Client, error) {
	client, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}

	contract, err := NewHashedTimelock(contractAddress, client)
	if err != nil {
		return nil, fmt.Errorf("failed to bind contract: %w", err)
	}

	chainID, err := client.ChainID(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}

	c := &Client{
		client:          client,
		contract:        contract,
		contractAddress: contractAddress,
		chainID:         chainID,
		privateKey:      privateKey,
	}
	if gasPriceWei > 0 {
		c.gasPrice = big.NewInt(gasPriceWei)
	}
	return c, nil
}

// Close closes the underlying RPC connection.
func (c *Client) Close() {
	c.client.Close()
}

// ChainID returns the chain ID.
func (c *Client) ChainID() *big.Int {
	return c.chainID
}

// ContractAddress returns the contract address.
func (c *Client) ContractAddress() common.Address {
	return c.contractAddress
}

// OperatorAddress returns the address derived from the operator key.
func (c *Client) OperatorAddress() common.Address {
	return crypto.PubkeyToAddress(c.privateKey.PublicKey)
}

// =============================================================================
// Secret Helpers
// =============================================================================

// GenerateSecret creates a new 32-byte secret and its SHA256 hash.
func GenerateSecret() (secret [32]byte, hash [32]byte, err error) {
	_, err = rand.Read(secret[:])
	if err != nil {
		return [32]byte{}, [32]byte{}, fmt.Errorf("failed to generate random secret: %w", err)
	}
	hash = sha256.Sum256(secret[:])
	return secret, hash, nil
}

// HashPreimage computes the SHA256 hash of a preimage.
func HashPreimage(preimage [32]byte) [32]byte {
	return sha256.Sum256(preimage[:])
}

// VerifyPreimage checks whether a preimage matches a hashlock.
func VerifyPreimage(preimage, hashlock [32]byte) bool {
	return sha256.Sum256(preimage[:]) == hashlock
}

// =============================================================================
// View Functions
// =============================================================================

// HaveContract returns true if a contract with the given id exists.
func (c *Client) HaveContract(ctx context.Context, contractID [32]byte) (bool, error) {
	opts := &bind.CallOpts{Context: ctx}
	return c.contract.HaveContract(opts, contractID)
}

// GetContract returns the contract state.
func (c *Client) GetContract(ctx context.Context, contractID [32]byte) (*ContractDetails, error) {
	opts := &bind.CallOpts{Context: ctx}
	result, err := c.contract.GetContract(opts, contractID)
	if err != nil {
		return nil, fmt.Errorf("failed to get contract: %w", err)
	}

	return &ContractDetails{
		Sender:    result.Sender,
		Receiver:  result.Receiver,
		Amount:    result.Amount,
		Hashlock:  result.Hashlock,
		Timelock:  result.Timelock,
		Withdrawn: result.Withdrawn,
		Refunded:  result.Refunded,
		Preimage:  result.Preimage,
	}, nil
}

// =============================================================================
// Transactions
// =============================================================================

// NewContract locks amountWei for receiver behind the hashlock until the
// timelock, waits for the transaction to be mined, and returns the contract
// id emitted by the ledger.
func (c *Client) NewContract(
	ctx context.Context,
	receiver common.Address,
	hashlock [32]byte,
	timelock *big.Int,
	amountWei *big.Int,
) ([32]byte, common.Hash, error) {
	auth, err := c.newTransactor(ctx)
	if err != nil {
		return [32]byte{}, common.Hash{}, err
	}
	auth.Value = amountWei

	tx, err := c.contract.NewContract(auth, receiver, hashlock, timelock)
	if err != nil {
		return [32]byte{}, common.Hash{}, fmt.Errorf("newContract failed: %w", err)
	}

	receipt, err := bind.WaitMined(ctx, c.client, tx)
	if err != nil {
		return [32]byte{}, tx.Hash(), fmt.Errorf("failed waiting for newContract: %w", err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return [32]byte{}, tx.Hash(), fmt.Errorf("newContract reverted: %s", tx.Hash())
	}

	for _, log := range receipt.Logs {
		if log.Address != c.contractAddress {
			continue
		}
		event, err := c.contract.ParseLogHTLCNew(*log)
		if err != nil {
			continue
		}
		return event.ContractId, tx.Hash(), nil
	}

	return [32]byte{}, tx.Hash(), fmt.Errorf("no LogHTLCNew event in transaction %s", tx.Hash())
}

// Withdraw claims a contract by revealing its preimage. The revealed
// preimage becomes publicly visible on-chain.
func (c *Client) Withdraw(ctx context.Context, contractID [32]byte, preimage [32]byte) (common.Hash, error) {
	auth, err := c.newTransactor(ctx)
	if err != nil {
		return common.Hash{}, err
	}

	tx, err := c.contract.Withdraw(auth, contractID, preimage)
	if err != nil {
		return common.Hash{}, fmt.Errorf("withdraw failed: %w", err)
	}

	receipt, err := bind.WaitMined(ctx, c.client, tx)
	if err != nil {
		return tx.Hash(), fmt.Errorf("failed waiting for withdraw: %w", err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return tx.Hash(), fmt.Errorf("withdraw reverted: %s", tx.Hash())
	}

	return tx.Hash(), nil
}

// Refund reclaims a contract after its timelock has expired.
func (c *Client) Refund(ctx context.Context, contractID [32]byte) (common.Hash, error) {
	auth, err := c.newTransactor(ctx)
	if err != nil {
		return common.Hash{}, err
	}

	tx, err := c.contract.Refund(auth, contractID)
	if err != nil {
		return common.Hash{}, fmt.Errorf("refund failed: %w", err)
	}

	receipt, err := bind.WaitMined(ctx, c.client, tx)
	if err != nil {
		return tx.Hash(), fmt.Errorf("failed waiting for refund: %w", err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return tx.Hash(), fmt.Errorf("refund reverted: %s", tx.Hash())
	}

	return tx.Hash(), nil
}

// =============================================================================
// Event Watching
// =============================================================================

// NewContractEvent is a parsed LogHTLCNew event.
type NewContractEvent struct {
	ContractID [32]byte
	Sender     common.Address
	Receiver   common.Address
	Amount     *big.Int
	Hashlock   [32]byte
	Timelock   *big.Int
	TxHash     common.Hash
}

// WatchNewContracts subscribes to LogHTLCNew events. Pass nil receivers to
// watch all contracts.
func (c *Client) WatchNewContracts(ctx context.Context, receivers []common.Address) (<-chan *NewContractEvent, error) {
	ch := make(chan *HashedTimelockLogHTLCNew, 10)

	sub, err := c.contract.WatchLogHTLCNew(
		&bind.WatchOpts{Context: ctx},
		ch,
		nil, // contract ids
		nil, // senders
		receivers,
	)
	if err != nil {
		close(ch)
		return nil, fmt.Errorf("failed to watch LogHTLCNew: %w", err)
	}

	outCh := make(chan *NewContractEvent, 10)
	go func() {
		defer close(outCh)
		defer sub.Unsubscribe()

		for {
			select {
			case event := <-ch:
				if event == nil {
					return
				}
				outCh <- &NewContractEvent{
					ContractID: event.ContractId,
					Sender:     event.Sender,
					Receiver:   event.Receiver,
					Amount:     event.Amount,
					Hashlock:   event.Hashlock,
					Timelock:   event.Timelock,
					TxHash:     event.Raw.TxHash,
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return outCh, nil
}

// =============================================================================
// Internal Helpers
// =============================================================================

func (c *Client) newTransactor(ctx context.Context) (*bind.TransactOpts, error) {
	auth, err := bind.NewKeyedTransactorWithChainID(c.privateKey, c.chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	auth.Context = ctx
	if c.gasPrice != nil {
		auth.GasPrice = c.gasPrice
	}
	return auth, nil
}

// AddressFromPrivateKey derives the address from a private key.
func AddressFromPrivateKey(privateKey *ecdsa.PrivateKey) common.Address {
	return crypto.PubkeyToAddress(privateKey.PublicKey)
}

// ParsePrivateKey parses a hex-encoded private key.
func ParsePrivateKey(hexKey string) (*ecdsa.PrivateKey, error) {
	return crypto.HexToECDSA(hexKey)
}
