package driver

import (
	"crypto/sha256"
)

// argsDigest hashes args with a separator that cannot occur in a flag.
func argsDigest(args []string) Digest {
	h := sha256.New()
	for _, a := range args {
		_, _ = h.Write([]byte(a))
		_, _ = h.Write([]byte{0})
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// combineDigest: H(content || dep1 || dep2 ...). deps are already in a
// deterministic order.
func combineDigest(content Digest, deps ...Digest) Digest {
	if len(deps) == 0 {
		return content
	}
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range deps {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
