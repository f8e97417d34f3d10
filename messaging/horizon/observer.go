package horizon

import (
	"fmt"

	"calcvoices/state/council"
	"github.com/stellar/go/clients/horizonclient"
)

// Observe reads the current multisig configuration of the issuer account.
func (c *Client) Observe() (council.Observed, error) {
	a, err := c.api.AccountDetail(horizonclient.AccountRequest{AccountID: c.issuer})
	if err != nil {
		return council.Observed{}, fmt.Errorf("loading main account %s: %w", c.issuer, err)
	}
	seq, err := a.GetSequenceNumber()
	if err != nil {
		return council.Observed{}, fmt.Errorf("main account %s sequence: %w", c.issuer, err)
	}
	o := council.Observed{
		Account:  a.AccountID,
		Sequence: seq,
		Thresholds: council.Thresholds{
			Low:    uint32(a.Thresholds.LowThreshold),
			Medium: uint32(a.Thresholds.MedThreshold),
			High:   uint32(a.Thresholds.HighThreshold),
		},
	}
	for _, s := range a.Signers {
		if s.Key == c.issuer {
			o.MasterWeight = uint32(s.Weight)
			continue
		}
		o.Signers = append(o.Signers, council.Signer{Key: s.Key, Weight: uint32(s.Weight)})
	}
	return o, nil
}
