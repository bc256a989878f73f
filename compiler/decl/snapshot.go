package decl

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Snapshot encodes a declaration group into a compact binary form.
// Hosts use snapshots to persist the last generated group and to skip
// regeneration when the declarations have not changed.
func Snapshot(g *Group) ([]byte, error) {
	if g == nil {
		return nil, fmt.Errorf("decl: cannot snapshot nil group")
	}
	buf, err := msgpack.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("decl: snapshot group %q: %w", g.Name, err)
	}
	return buf, nil
}

// RestoreSnapshot decodes a group previously encoded with Snapshot.
func RestoreSnapshot(data []byte) (*Group, error) {
	g := &Group{}
	if err := msgpack.Unmarshal(data, g); err != nil {
		return nil, fmt.Errorf("decl: restore snapshot: %w", err)
	}
	return g, nil
}

// Fingerprint returns a stable hex digest of the group's snapshot
// encoding. Two groups with identical declarations, annotations, and
// ordering produce identical fingerprints.
func Fingerprint(g *Group) (string, error) {
	buf, err := Snapshot(g)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(buf)
	return hex.EncodeToString(sum[:]), nil
}
