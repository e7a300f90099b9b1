// Package hex renders digests as lowercase hexadecimal.
//
// Each input byte maps to exactly two characters through a 256-entry table
// of precomputed pairs; output has no separators and no prefix, and byte 0
// becomes the first two characters.
package hex

const digits = "0123456789abcdef"

// pairs[b] holds the two lowercase hex characters for byte b.
var pairs [256][2]byte

func init() {
	for i := range pairs {
		pairs[i] = [2]byte{digits[i>>4], digits[i&0x0f]}
	}
}

// EncodedLen returns the length of an encoding of n source bytes.
func EncodedLen(n int) int { return n * 2 }

// Encode writes the hex encoding of src into dst and returns the number of
// bytes written. dst must hold at least EncodedLen(len(src)) bytes.
func Encode(dst, src []byte) int {
	_ = dst[:EncodedLen(len(src))]
	for i, b := range src {
		p := pairs[b]
		dst[2*i] = p[0]
		dst[2*i+1] = p[1]
	}
	return EncodedLen(len(src))
}

// AppendEncode appends the hex encoding of src to dst.
func AppendEncode(dst, src []byte) []byte {
	for _, b := range src {
		p := pairs[b]
		dst = append(dst, p[0], p[1])
	}
	return dst
}

// EncodeToString returns the hex encoding of src.
func EncodeToString(src []byte) string {
	var stack [32]byte // digests are at most 16 bytes
	var dst []byte
	if EncodedLen(len(src)) <= len(stack) {
		dst = stack[:EncodedLen(len(src))]
	} else {
		dst = make([]byte, EncodedLen(len(src)))
	}
	Encode(dst, src)
	return string(dst)
}
