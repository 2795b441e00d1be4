// Package id generates run identifiers for the trade journal. Runs are
// identified by ULIDs so that listing them lexicographically is listing
// them in start-time order.
package id

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var gen = newGenerator()

type generator struct {
	mu      sync.Mutex
	entropy io.Reader
}

func newGenerator() *generator {
	// Seed from crypto/rand so the random component is unpredictable;
	// ulid.Monotonic keeps IDs within one millisecond strictly increasing.
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &generator{entropy: ulid.Monotonic(rand.New(rand.NewSource(seed)), 0)}
}

// New returns a fresh run ID.
func New() string {
	gen.mu.Lock()
	defer gen.mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(time.Now().UTC()), gen.entropy)
	if err != nil {
		panic(err)
	}
	return id.String()
}
