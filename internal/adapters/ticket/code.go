package ticket

import (
	"encoding/base32"
	"strings"

	"golang.org/x/crypto/blake2b"

	"meetupticket/internal/domain"
)

// CodeLength is the number of characters in a ticket code.
const CodeLength = 6

var codeEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

type blakeCoder struct {
	key []byte
}

// NewCoder returns a TicketCoder deriving codes from a keyed BLAKE2b-256 hash of
// the participant id. The same key always yields the same code for an id.
func NewCoder(key string) domain.TicketCoder {
	k := []byte(key)
	if len(k) > blake2b.Size {
		sum := blake2b.Sum256(k)
		k = sum[:]
	}
	return &blakeCoder{key: k}
}

func (c *blakeCoder) Code(participantID string) string {
	h, err := blake2b.New256(c.key)
	if err != nil {
		// key length is bounded in NewCoder
		panic(err)
	}
	h.Write([]byte(participantID))
	return strings.ToUpper(codeEncoding.EncodeToString(h.Sum(nil))[:CodeLength])
}
