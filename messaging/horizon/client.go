// Package horizon adapts the Stellar Horizon API to the engine: token holder listing, lazy
// account loading and observation of the main account's signers.
package horizon

import (
	"fmt"
	"net/http"

	"calcvoices/engine/library"
	"calcvoices/state/accounts"
	"github.com/stellar/go/amount"
	"github.com/stellar/go/clients/horizonclient"
	hProtocol "github.com/stellar/go/protocols/horizon"
	"github.com/stellar/go/strkey"
)

// Data entry names carrying delegations. mtla_delegate applies to both graphs and wins over
// the graph specific entries.
const (
	DelegateKey         = "mtla_delegate"
	AssemblyDelegateKey = "mtla_a_delegate"
	CouncilDelegateKey  = "mtla_c_delegate"
)

const pageLimit = 200

// API is the subset of *horizonclient.Client the collaborators use.
type API interface {
	Accounts(request horizonclient.AccountsRequest) (hProtocol.AccountsPage, error)
	NextAccountsPage(page hProtocol.AccountsPage) (hProtocol.AccountsPage, error)
	AccountDetail(request horizonclient.AccountRequest) (hProtocol.Account, error)
}

// NewAPI returns a Horizon client for url.
func NewAPI(url string) *horizonclient.Client {
	return &horizonclient.Client{HorizonURL: url, HTTP: http.DefaultClient}
}

// ValidAccountID reports whether id is a well-formed ed25519 account id (G..., 56 chars).
func ValidAccountID(id library.Account) bool {
	return strkey.IsValidEd25519PublicKey(id)
}

// Client turns Horizon accounts into ingestion records for one token.
type Client struct {
	api    API
	token  string
	issuer library.Account
	log    library.Logger
}

func NewClient(api API, token string, issuer library.Account, log library.Logger) *Client {
	return &Client{api: api, token: token, issuer: issuer, log: library.OrNop(log)}
}

// Valid is ValidAccountID; every Horizon delegate entry is checked against it.
func (c *Client) Valid(id library.Account) bool {
	return ValidAccountID(id)
}

// Record converts a Horizon account. Balances are truncated to whole tokens.
func (c *Client) Record(a hProtocol.Account) accounts.Record {
	return accounts.Record{
		ID:               a.AccountID,
		Balance:          c.tokens(a),
		AssemblyDelegate: c.delegation(a, AssemblyDelegateKey),
		CouncilDelegate:  c.delegation(a, CouncilDelegateKey),
	}
}

func (c *Client) tokens(a hProtocol.Account) int64 {
	for _, b := range a.Balances {
		if b.Code != c.token || b.Issuer != c.issuer {
			continue
		}
		stroops, err := amount.ParseInt64(b.Balance)
		if err != nil {
			c.log.Warn("account %s: unparseable %s balance %q", a.AccountID, c.token, b.Balance)
			return 0
		}
		return stroops / amount.One
	}
	return 0
}

func (c *Client) delegation(a hProtocol.Account, key string) library.Account {
	for _, k := range []string{DelegateKey, key} {
		if _, ok := a.Data[k]; !ok {
			continue
		}
		v, err := a.GetData(k)
		if err != nil {
			c.log.Warn("account %s: bad data entry %s: %s", a.AccountID, k, err.Error())
			return ""
		}
		return string(v)
	}
	return ""
}

// Holders lists every account holding a trustline to the token, page by page.
func (c *Client) Holders() ([]accounts.Record, error) {
	page, err := c.api.Accounts(horizonclient.AccountsRequest{
		Asset: c.token + ":" + c.issuer,
		Limit: pageLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("listing %s holders: %w", c.token, err)
	}
	var records []accounts.Record
	for len(page.Embedded.Records) > 0 {
		c.log.Debug("fetched accounts page (%d records)", len(page.Embedded.Records))
		for _, a := range page.Embedded.Records {
			records = append(records, c.Record(a))
		}
		if len(page.Embedded.Records) < pageLimit {
			break
		}
		if page, err = c.api.NextAccountsPage(page); err != nil {
			return nil, fmt.Errorf("listing %s holders: %w", c.token, err)
		}
	}
	return records, nil
}
