package braid

// CutHashes is the lightweight wire representation of a candidate cut: the
// per-chain block hashes only, plus the peer the candidate was received from.
// Candidates are created by producers (peer handlers, local miner), consumed
// by the store's resolver and then discarded; they are never stored.
type CutHashes struct {
	ChainMap map[ChainID]BlockHash `json:"chainMap" msgpack:"chain_map"`
	// Origin identifies the peer that advertised the candidate. A nil origin
	// means the candidate was produced locally.
	Origin *PeerInfo `json:"origin,omitempty" msgpack:"origin,omitempty"`
}

// Local returns true if the candidate was produced by this node.
func (c *CutHashes) Local() bool {
	return c.Origin == nil
}

// PeerInfo identifies the remote peer a candidate originated from. The store
// treats it as opaque metadata; discovery and transport live elsewhere.
type PeerInfo struct {
	ID      string `json:"id" msgpack:"id"`
	Address string `json:"address" msgpack:"address"`
}
