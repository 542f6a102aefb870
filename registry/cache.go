package registry

import (
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
)

// cacheEnvelope is the on-disk shape of a compiled registry cache: the
// fingerprint of the source document the tags were compiled from, plus
// the compiled tag map itself. Storing the fingerprint alongside the
// tags lets LoadCache refuse a cache that no longer matches its source
// document instead of silently serving stale metadata.
type cacheEnvelope struct {
	Fingerprint [32]byte
	Tags        tagMap
}

// SaveCache serializes the registry's current snapshot to w as CBOR, so
// a later process can publish the compiled tag map via LoadCache instead
// of rebuilding it with Refresh.
func (r *Registry) SaveCache(w io.Writer) error {
	snap := r.snapshot.Load()
	if snap == nil {
		return errors.New("registry: no snapshot loaded to cache")
	}
	env := cacheEnvelope{Fingerprint: snap.fingerprint, Tags: snap.tags}
	enc, err := cbor.Marshal(env)
	if err != nil {
		return errors.Wrap(err, "registry: marshal cache")
	}
	_, err = w.Write(enc)
	return errors.Wrap(err, "registry: write cache")
}

// LoadCache loads a previously saved cache and, if its fingerprint
// matches doc's raw bytes, publishes it directly, skipping the tag-map
// build that Refresh performs. doc must already be parsed (ParseDocument
// or LoadDocument), so the XML parse itself is not skipped. It reports whether the cache was accepted; a
// mismatched or unreadable cache is not an error, just a cache miss, and
// the caller should fall back to Refresh(doc).
func (r *Registry) LoadCache(cacheData []byte, doc *Document) (bool, error) {
	var env cacheEnvelope
	if err := cbor.Unmarshal(cacheData, &env); err != nil {
		return false, nil
	}
	if env.Fingerprint != fingerprint(doc.Raw) {
		return false, nil
	}
	r.snapshot.Store(&snapshot{tags: env.Tags, fingerprint: env.Fingerprint})
	return true, nil
}

func fingerprint(raw []byte) [32]byte {
	return blake2b.Sum256(raw)
}
