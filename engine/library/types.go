package library

// Account is a Stellar account id (the G... strkey).
type Account = string

// Graph selects one of the two independent delegation overlays.
type Graph int

const (
	// Assembly is the one-voice-per-holder delegation graph.
	Assembly Graph = iota
	// Council is the token weighted delegation graph used to pick signers.
	Council
)

// Graphs lists every delegation graph in processing order.
var Graphs = []Graph{Assembly, Council}

func (g Graph) String() string {
	switch g {
	case Assembly:
		return "assembly"
	case Council:
		return "council"
	}
	return "unknown"
}
