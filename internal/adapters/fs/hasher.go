package fs

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"
	"go.trai.ch/zerr"
)

// Hasher fingerprints files and directory trees with XXHash. The
// fingerprint feeds the invalidation cache as a cheap change-detection key
// for generated trees (the built documentation site); the cache record
// itself stays SHA-256 over whatever bytes it is given.
type Hasher struct {
	walker *Walker
}

// NewHasher creates a new Hasher.
func NewHasher(walker *Walker) *Hasher {
	return &Hasher{walker: walker}
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}
	return hasher.Sum64(), nil
}

// Fingerprint computes a single deterministic hash over every file under
// root: relative path plus content hash, in sorted path order. Per-file
// hashing runs on a bounded worker pool; the combination into the final
// digest is sequential so the result is stable.
func (h *Hasher) Fingerprint(root string) (string, error) {
	if info, err := os.Stat(root); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to stat fingerprint root"), "path", root)
	} else if !info.IsDir() {
		return "", zerr.With(zerr.New("fingerprint root is not a directory"), "path", root)
	}

	var paths []string
	for path := range h.walker.WalkFiles(root, nil) {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	hashes := make([]uint64, len(paths))
	g := new(errgroup.Group)
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		g.Go(func() error {
			sum, err := h.ComputeFileHash(path)
			if err != nil {
				return err
			}
			hashes[i] = sum
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	digest := xxhash.New()
	for i, path := range paths {
		_, _ = digest.WriteString(path)
		_, _ = digest.Write([]byte{0})
		if err := binary.Write(digest, binary.LittleEndian, hashes[i]); err != nil {
			return "", zerr.Wrap(err, "failed to write hash to digest")
		}
	}
	return fmt.Sprintf("%016x", digest.Sum64()), nil
}
