package usecase

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"paylock/services/ledger/internal/entity"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

const maxProofLength = 512

// PaymentClaim is what a payer asserts alongside a transaction proof.
type PaymentClaim struct {
	PostID  string
	UserID  string
	Payable *entity.Payable
	Proof   string
	Network string
}

// ProofVerifier checks a payment proof before the ledger commits it.
type ProofVerifier interface {
	Verify(ctx context.Context, claim PaymentClaim) error
}

// FormatProofVerifier trusts upstream settlement checks and only rejects malformed proofs.
type FormatProofVerifier struct{}

func (FormatProofVerifier) Verify(ctx context.Context, claim PaymentClaim) error {
	proof := claim.Proof
	if proof == "" {
		return fmt.Errorf("%w: transaction proof is required", entity.ErrPaymentProofInvalid)
	}
	if len(proof) > maxProofLength {
		return fmt.Errorf("%w: transaction proof is too long", entity.ErrPaymentProofInvalid)
	}
	for _, r := range proof {
		if r > unicode.MaxASCII || !unicode.IsPrint(r) || unicode.IsSpace(r) {
			return fmt.Errorf("%w: transaction proof contains invalid characters", entity.ErrPaymentProofInvalid)
		}
	}

	if strings.HasPrefix(proof, "0x") {
		raw, err := hexutil.Decode(proof)
		if err != nil || len(raw) == 0 {
			return fmt.Errorf("%w: malformed hex transaction hash", entity.ErrPaymentProofInvalid)
		}
		if len(raw) == common.HashLength && common.BytesToHash(raw) == (common.Hash{}) {
			return fmt.Errorf("%w: zero transaction hash", entity.ErrPaymentProofInvalid)
		}
	}
	return nil
}
