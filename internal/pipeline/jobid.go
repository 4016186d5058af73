package pipeline

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
	"time"
)

// Job IDs are ULIDs: a 48-bit millisecond timestamp followed by 80 bits
// of randomness, rendered as 26 Crockford Base32 characters. The
// timestamp prefix keeps IDs lexicographically sortable by submission
// time, which makes poll URLs and log lines easy to correlate.

const idAlphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

var idState struct {
	sync.Mutex
	lastMillis uint64
	seq        uint16
}

// newJobID returns a fresh sortable job identifier. IDs minted within
// the same millisecond carry an incrementing sequence in the first two
// random bytes, so ordering holds even under bursts.
func newJobID() string {
	idState.Lock()
	defer idState.Unlock()

	millis := uint64(time.Now().UnixMilli())
	if millis == idState.lastMillis {
		idState.seq++
	} else {
		idState.lastMillis = millis
		idState.seq = 0
	}

	var b [16]byte
	binary.BigEndian.PutUint64(b[:8], millis<<16)
	rand.Read(b[6:])
	binary.BigEndian.PutUint16(b[6:8], idState.seq)

	return encodeBase32(b)
}

// encodeBase32 renders 128 bits as 26 five-bit characters. 26*5 = 130,
// so the first character carries two leading zero pad bits.
func encodeBase32(b [16]byte) string {
	var out [26]byte
	for i := range out {
		out[i] = idAlphabet[fieldAt(b, i*5-2)]
	}
	return string(out[:])
}

// fieldAt extracts the 5 bits starting at bit offset off, MSB first;
// offsets before bit zero read as zeros.
func fieldAt(b [16]byte, off int) byte {
	var v byte
	for i := off; i < off+5; i++ {
		v <<= 1
		if i >= 0 && b[i/8]&(1<<(7-i%8)) != 0 {
			v |= 1
		}
	}
	return v
}
