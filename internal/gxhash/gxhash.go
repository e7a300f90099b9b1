package gxhash

const vectorSize = 16

// keys is the fixed round-key schedule shared by compression and finalization.
var (
	key0 = state{0xF2784542, 0xB09D3E21, 0x89C222E5, 0xFC3BC28E}
	key1 = state{0x03FCE279, 0xCB6B2E9B, 0xB361DC58, 0x39132BD9}
	key2 = state{0xD0012E32, 0x689D2B7D, 0x5544B1B7, 0xC78B122B}
)

// Hash32 returns the 32-bit GxHash of b under seed.
func Hash32(b []byte, seed int64) uint32 {
	return hash(b, seed)[0]
}

// Hash64 returns the 64-bit GxHash of b under seed.
func Hash64(b []byte, seed int64) uint64 {
	s := hash(b, seed)
	return uint64(s[0]) | uint64(s[1])<<32
}

// Hash128 returns the 128-bit GxHash of b under seed as its low and high
// 64-bit halves.
func Hash128(b []byte, seed int64) (lo, hi uint64) {
	s := hash(b, seed)
	return uint64(s[0]) | uint64(s[1])<<32, uint64(s[2]) | uint64(s[3])<<32
}

// Sum returns the full 128-bit state in little-endian byte order. The 32- and
// 64-bit variants are prefixes of it.
func Sum(b []byte, seed int64) [16]byte {
	s := hash(b, seed)
	var out [16]byte
	for i, w := range s {
		out[4*i] = byte(w)
		out[4*i+1] = byte(w >> 8)
		out[4*i+2] = byte(w >> 16)
		out[4*i+3] = byte(w >> 24)
	}
	return out
}

func hash(b []byte, seed int64) state {
	return finalize(aesEnc(compressAll(b), splat64(uint64(seed))))
}

func finalize(s state) state {
	s = aesEnc(s, key0)
	s = aesEnc(s, key1)
	return aesEncLast(s, key2)
}

// partial loads n < 16 bytes zero-padded, then adds n to every byte so that
// inputs differing only in trailing zeros do not collide.
func partial(b []byte, n int) state {
	var buf [vectorSize]byte
	copy(buf[:], b[:n])
	return add8(load(buf[:]), splat32(uint32(uint8(n))*0x01010101))
}

func compressAll(b []byte) state {
	n := len(b)
	if n == 0 {
		return state{}
	}
	if n <= vectorSize {
		return partial(b, n)
	}

	var hv state
	p := 0
	if extra := n % vectorSize; extra == 0 {
		hv = load(b)
		p = vectorSize
	} else {
		// Lead with the partial vector so every following load is whole.
		hv = partial(b, extra)
		p = extra
	}

	v0 := load(b[p:])
	p += vectorSize

	if n > 2*vectorSize {
		v0 = aesEnc(v0, load(b[p:]))
		p += vectorSize

		if n > 3*vectorSize {
			v0 = aesEnc(v0, load(b[p:]))
			p += vectorSize

			if n > 4*vectorSize {
				hv = compressMany(b, p, hv)
			}
		}
	}

	return aesEncLast(hv, aesEnc(aesEnc(v0, key0), key1))
}

const unroll = 8

// compressMany folds single vectors into hv until the remainder is a whole
// number of eight-vector blocks, then runs the two-lane unrolled loop.
func compressMany(b []byte, p int, hv state) state {
	n := len(b)
	remaining := n - p
	unrolled := remaining / (vectorSize * unroll) * unroll
	singles := (remaining - unrolled*vectorSize) / vectorSize

	for i := 0; i < singles; i++ {
		hv = aesEnc(hv, load(b[p:]))
		p += vectorSize
	}

	return compress8(b, p, hv)
}

func compress8(b []byte, p int, hv state) state {
	n := len(b)
	var t1, t2 state
	lane1, lane2 := hv, hv

	for ; p < n; p += vectorSize * unroll {
		blk := b[p : p+vectorSize*unroll]

		tmp1 := aesEnc(load(blk[0:]), load(blk[32:]))
		tmp2 := aesEnc(load(blk[16:]), load(blk[48:]))

		tmp1 = aesEnc(tmp1, load(blk[64:]))
		tmp2 = aesEnc(tmp2, load(blk[80:]))

		tmp1 = aesEnc(tmp1, load(blk[96:]))
		tmp2 = aesEnc(tmp2, load(blk[112:]))

		t1 = add8(t1, key0)
		t2 = add8(t2, key1)

		lane1 = aesEncLast(aesEnc(tmp1, t1), lane1)
		lane2 = aesEncLast(aesEnc(tmp2, t2), lane2)
	}

	lenVec := splat32(uint32(n))
	lane1 = add8(lane1, lenVec)
	lane2 = add8(lane2, lenVec)

	return aesEnc(lane1, lane2)
}
