// Package ledger turns a council plan into an unsigned Stellar transaction.
package ledger

import (
	"errors"
	"fmt"

	"calcvoices/state/council"
	"github.com/stellar/go/txnbuild"
)

// ErrNothingToChange is returned for a plan that would not change the account.
var ErrNothingToChange = errors.New("nothing to change")

// Options are the transaction level settings.
type Options struct {
	BaseFee int64
	Memo    string
}

// Operations builds one set-options operation per signer change, then one for the master key
// weight and thresholds when the plan has a threshold step.
func Operations(plan council.Plan) ([]txnbuild.Operation, error) {
	var ops []txnbuild.Operation
	for _, c := range plan.Changes {
		if c.Weight > 255 {
			return nil, fmt.Errorf("signer %s: weight %d does not fit a threshold", c.Account, c.Weight)
		}
		ops = append(ops, &txnbuild.SetOptions{
			Signer: &txnbuild.Signer{Address: c.Account, Weight: txnbuild.Threshold(c.Weight)},
		})
	}
	if t := plan.Thresholds; t != nil {
		for _, v := range []uint32{t.MasterWeight, t.Low, t.Medium, t.High} {
			if v > 255 {
				return nil, fmt.Errorf("threshold %d does not fit a threshold", v)
			}
		}
		ops = append(ops, &txnbuild.SetOptions{
			MasterWeight:    txnbuild.NewThreshold(txnbuild.Threshold(t.MasterWeight)),
			LowThreshold:    txnbuild.NewThreshold(txnbuild.Threshold(t.Low)),
			MediumThreshold: txnbuild.NewThreshold(txnbuild.Threshold(t.Medium)),
			HighThreshold:   txnbuild.NewThreshold(txnbuild.Threshold(t.High)),
		})
	}
	return ops, nil
}

// Envelope builds the transaction for plan on top of the observed account and returns it as
// base64 XDR. The transaction is not signed.
func Envelope(plan council.Plan, observed council.Observed, opts Options) (string, error) {
	if plan.Empty() {
		return "", ErrNothingToChange
	}
	ops, err := Operations(plan)
	if err != nil {
		return "", err
	}
	tx, err := txnbuild.NewTransaction(txnbuild.TransactionParams{
		SourceAccount:        &txnbuild.SimpleAccount{AccountID: observed.Account, Sequence: observed.Sequence},
		IncrementSequenceNum: true,
		Operations:           ops,
		BaseFee:              opts.BaseFee,
		Memo:                 txnbuild.MemoText(opts.Memo),
		Preconditions:        txnbuild.Preconditions{TimeBounds: txnbuild.NewInfiniteTimeout()},
	})
	if err != nil {
		return "", fmt.Errorf("building transaction: %w", err)
	}
	b64, err := tx.Base64()
	if err != nil {
		return "", fmt.Errorf("encoding transaction: %w", err)
	}
	return b64, nil
}
