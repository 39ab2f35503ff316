package cutdb

// Version discriminates chain-graph generations. Stores for different
// versions are incompatible: their graphs, genesis cuts and header stores
// differ.
type Version string

const (
	VersionMainnet     Version = "mainnet01"
	VersionTestnet     Version = "testnet04"
	VersionDevelopment Version = "development"
)

// VersionedCutDB pairs a version tag with a store instance. It exists only at
// the boundary where heterogeneous per-version instances must live in one
// collection; the store itself is version-agnostic.
type VersionedCutDB struct {
	Version Version
	DB      *CutDB
}

func NewVersionedCutDB(version Version, db *CutDB) VersionedCutDB {
	return VersionedCutDB{Version: version, DB: db}
}
