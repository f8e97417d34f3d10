// Package report prints the human readable account of a run: one section per stage, tab
// separated, delegation trees indented one tab per level.
package report

import (
	"fmt"
	"io"
	"strings"

	"calcvoices/engine/library"
	"calcvoices/state/accounts"
	"calcvoices/state/council"
	"calcvoices/state/delegation"
	"calcvoices/state/power"
)

// Printer writes report sections to w. The first write error is kept and every later write
// is skipped.
type Printer struct {
	w   io.Writer
	err error
}

func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Err returns the first write error.
func (p *Printer) Err() error {
	return p.err
}

func (p *Printer) line(format string, a ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format+"\n", a...)
}

func (p *Printer) blank() {
	p.line("")
}

// Holders echoes the ingested accounts with their recorded delegation targets.
func (p *Printer) Holders(token string, holders []*accounts.Account) {
	p.line("Trustlines to %s:", token)
	for _, a := range holders {
		p.line("%s\t%d\t%s\t%s", a.ID, a.Balance, a.Intent(library.Assembly), a.Intent(library.Council))
	}
	p.blank()
}

// Resolution lists the delegations excised while resolving each graph.
func (p *Printer) Resolution(summaries []delegation.Summary) {
	for _, s := range summaries {
		p.line("Checking %s delegations: %d resolved, %d loaded", s.Graph, s.Resolved, s.Loaded)
		for _, b := range s.Broken {
			switch b.Reason {
			case delegation.Cycle:
				p.line("\t%s\t%s\tENDLESS LOOP!", b.Account, b.Target)
			default:
				p.line("\t%s\t%s\tunresolvable", b.Account, b.Target)
			}
		}
		p.blank()
	}
}

// tree prints the descendants of n, one tab per level, with value(n) after the id.
func (p *Printer) tree(n *power.Node, value func(*power.Node) int64) {
	n.Walk(func(depth int, d *power.Node) {
		p.line("%s%s\t%d", strings.Repeat("\t", depth), d.ID, value(d))
	})
}

func tokens(n *power.Node) int64 {
	return n.TokenPower()
}

func voices(n *power.Node) int64 {
	v := n.DelegatedVoices
	if n.OwnTokenAmount > 0 {
		v++
	}
	return v
}

// Assembly lists the assembly roots holding at least one voice, with their delegation trees.
func (p *Printer) Assembly(registry *accounts.Registry, ag *power.Aggregator) {
	p.line("Assembly voices:")
	for _, a := range registry.All() {
		if a.IsBroken(library.Assembly) || a.HasDelegate(library.Assembly) {
			continue
		}
		vp := ag.VoicePower(a.ID)
		if vp == 0 {
			continue
		}
		p.line("%s\t%d", a.ID, vp)
		if ag.DelegatedVoices(a.ID) > 0 {
			p.tree(ag.AssemblyTree(a.ID), voices)
		}
	}
	p.blank()
}

// Broken lists accounts whose council delegation was excised, with whatever was delegated
// to them.
func (p *Printer) Broken(part council.Partition, ag *power.Aggregator) {
	if len(part.Broken) == 0 {
		return
	}
	p.line("Broken delegations:")
	for _, a := range part.Broken {
		tp := ag.TokenPower(a.ID)
		p.line("%s\t%d", a.ID, tp)
		if tp == 0 {
			continue
		}
		p.tree(ag.CouncilTree(a.ID), tokens)
	}
	p.blank()
}

// Roots lists the accounts that do not delegate their council power.
func (p *Printer) Roots(part council.Partition, ag *power.Aggregator) {
	if len(part.Roots) == 0 {
		return
	}
	p.line("Without delegation:")
	for _, a := range part.Roots {
		p.line("%s\t%d", a.ID, ag.TokenPower(a.ID))
		if ag.DelegatedTokenAmount(a.ID) == 0 {
			continue
		}
		p.tree(ag.CouncilTree(a.ID), tokens)
	}
	p.blank()
}

// Expected lists the selected council with token power and signer weight.
func (p *Printer) Expected(members []council.Member) {
	p.line("Expected council:")
	for _, m := range members {
		p.line("%s\t%d\t%d", m.Account, m.TokenPower, m.Weight)
	}
	p.blank()
}

// Current lists the observed signers.
func (p *Printer) Current(observed council.Observed) {
	p.line("Current council:")
	for _, s := range observed.Signers {
		p.line("%s\t%d", s.Key, s.Weight)
	}
	p.blank()
}

// Marker describes a weight change: "new" for an added signer, otherwise the signed delta.
// Decreases use the minus sign U+2212.
func Marker(c council.SignerWeightChange) string {
	switch {
	case c.Previous == 0:
		return "new"
	case c.Weight < c.Previous:
		return fmt.Sprintf("−%d", c.Previous-c.Weight)
	default:
		return fmt.Sprintf("+%d", c.Weight-c.Previous)
	}
}

// Difference prints the plan's changes and the resulting threshold.
func (p *Printer) Difference(plan council.Plan) {
	p.line("Difference between expected and current:")
	for _, c := range plan.Changes {
		p.line("\t%s\t%d\t%s", c.Account, c.Weight, Marker(c))
	}
	if len(plan.Changes) == 0 {
		p.line("\tNo difference")
	}
	p.blank()
	p.line("Total voices: %d", plan.VoicesSum)
	p.line("Needed for multisig transaction: %d", plan.Threshold)
	p.blank()
}

// Envelope prints the transaction to submit, or that there is none.
func (p *Printer) Envelope(b64 string) {
	if len(b64) == 0 {
		p.line("Nothing to change.")
		return
	}
	p.line("%s", b64)
}
