package drop

import (
	"github.com/meverselabs/mintdrop/common/hash"
)

var (
	tagCollection         = byte(0x01)
	tagDelegationRegistry = byte(0x02)
	tagPublicStage        = byte(0x03)
	tagCreatorPayouts     = byte(0x04)
	tagAllowListRoot      = byte(0x05)
	tagUsedDigest         = byte(0x06)

	tagFeeRecipientSet = byte(0x10)
	tagSignerSet       = byte(0x11)
	tagPayerSet        = byte(0x12)
	tagCallerSet       = byte(0x13)
)

func makeDropKey(key byte, body []byte) []byte {
	bs := make([]byte, 1+len(body))
	bs[0] = key
	copy(bs[1:], body[:])
	return bs
}

func makeUsedDigestKey(digest hash.Hash256) []byte {
	return makeDropKey(tagUsedDigest, digest.Bytes())
}
