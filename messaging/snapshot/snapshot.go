// Package snapshot is an offline account source: token holders, accounts only reachable
// through delegation, and the main account's signers, all read from one YAML document.
package snapshot

import (
	"fmt"
	"io"
	"os"

	"calcvoices/engine/library"
	"calcvoices/state/accounts"
	"calcvoices/state/council"
	"github.com/stellar/go/strkey"
	"gopkg.in/yaml.v3"
)

// Snapshot is the YAML document.
type Snapshot struct {
	Tokened  []accounts.Record `yaml:"holders"`
	Others   []accounts.Record `yaml:"others"` // loadable, but without a trustline
	Observed council.Observed  `yaml:"observed"`

	known map[library.Account]struct{}
}

// Decode reads a snapshot from r.
func Decode(r io.Reader) (*Snapshot, error) {
	var s Snapshot
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	s.known = make(map[library.Account]struct{}, len(s.Tokened)+len(s.Others))
	for _, list := range []struct {
		kind    string
		records []accounts.Record
	}{{"holder", s.Tokened}, {"account", s.Others}} {
		for i, rec := range list.records {
			if len(rec.ID) == 0 {
				return nil, fmt.Errorf("%s %d has no id", list.kind, i)
			}
			if rec.Balance < 0 {
				return nil, fmt.Errorf("%s %s has a negative balance", list.kind, rec.ID)
			}
			s.known[rec.ID] = struct{}{}
		}
	}
	return &s, nil
}

// Valid accepts Stellar account ids and the ids listed in the snapshot itself. Delegate
// entries failing it are dropped at ingestion.
func (s *Snapshot) Valid(id library.Account) bool {
	if _, ok := s.known[id]; ok {
		return true
	}
	return strkey.IsValidEd25519PublicKey(id)
}

// Open reads the snapshot file at path.
func Open(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Holders returns the token holders in document order.
func (s *Snapshot) Holders() ([]accounts.Record, error) {
	return s.Tokened, nil
}

// Load finds id among the holders and the other accounts.
func (s *Snapshot) Load(id library.Account) (accounts.Record, error) {
	for _, list := range [][]accounts.Record{s.Others, s.Tokened} {
		for _, rec := range list {
			if rec.ID == id {
				return rec, nil
			}
		}
	}
	return accounts.Record{}, fmt.Errorf("account %s not in snapshot", id)
}

// Observe returns the recorded signer configuration.
func (s *Snapshot) Observe() (council.Observed, error) {
	return s.Observed, nil
}
