package derive

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// zidNamespace prefixes the hashed input so node fingerprints cannot
// collide with identity hashes minted elsewhere in a larger deployment.
const zidNamespace = "mesh_node_"

// NodeZID returns a node's stable 32-character hexadecimal identity for
// mesh configuration. The same node ID yields the same fingerprint on
// every run; the contract is determinism, not secrecy.
func NodeZID(nodeID string) string {
	h, err := blake2b.New(16, nil)
	if err != nil {
		// Only reachable with an oversized key; we pass none.
		panic(err)
	}
	h.Write([]byte(zidNamespace + nodeID))
	return hex.EncodeToString(h.Sum(nil))
}
