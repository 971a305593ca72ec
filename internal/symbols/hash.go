package symbols

import (
	"github.com/cespare/xxhash/v2"
	"golang.org/x/text/unicode/norm"
)

// DefaultBuckets is the bucket count used when Options.Buckets is zero.
const DefaultBuckets = 101

// canonicalName folds equivalent Unicode spellings of an identifier together.
func canonicalName(name string) string {
	return norm.NFC.String(name)
}

func bucketIndex(name string, buckets int) int {
	return int(xxhash.Sum64String(name) % uint64(buckets))
}
