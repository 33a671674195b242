// Package aes256 implements the AES-256 block cipher (FIPS-197) from
// first principles: key schedule, ECB single-block transform, and a CBC
// wrapper built on top of it. It exists to decrypt/encrypt persisted
// conversion history, a concern unrelated to the lattice search core
// but colocated here because the core's server layer consumes it.
//
// No pack example or stdlib facade exposes a raw ECB primitive (Go's
// crypto/cipher deliberately omits one), so this is implemented
// directly against the FIPS-197 reference algorithm and verified
// against its Appendix C.3 test vectors.
package aes256

const (
	blockSize = 16
	nk        = 8  // key length in 32-bit words, AES-256
	nr        = 14 // number of rounds, AES-256
	nb        = 4  // block size in 32-bit words
	// KeyScheduleSize is the length in bytes of the expanded key
	// schedule MakeKeySchedule returns: (Nr+1) round keys of 16 bytes.
	KeyScheduleSize = (nr + 1) * blockSize
)

var sbox = [256]byte{
	0x63, 0x7c, 0x77, 0x7b, 0xf2, 0x6b, 0x6f, 0xc5, 0x30, 0x01, 0x67, 0x2b, 0xfe, 0xd7, 0xab, 0x76,
	0xca, 0x82, 0xc9, 0x7d, 0xfa, 0x59, 0x47, 0xf0, 0xad, 0xd4, 0xa2, 0xaf, 0x9c, 0xa4, 0x72, 0xc0,
	0xb7, 0xfd, 0x93, 0x26, 0x36, 0x3f, 0xf7, 0xcc, 0x34, 0xa5, 0xe5, 0xf1, 0x71, 0xd8, 0x31, 0x15,
	0x04, 0xc7, 0x23, 0xc3, 0x18, 0x96, 0x05, 0x9a, 0x07, 0x12, 0x80, 0xe2, 0xeb, 0x27, 0xb2, 0x75,
	0x09, 0x83, 0x2c, 0x1a, 0x1b, 0x6e, 0x5a, 0xa0, 0x52, 0x3b, 0xd6, 0xb3, 0x29, 0xe3, 0x2f, 0x84,
	0x53, 0xd1, 0x00, 0xed, 0x20, 0xfc, 0xb1, 0x5b, 0x6a, 0xcb, 0xbe, 0x39, 0x4a, 0x4c, 0x58, 0xcf,
	0xd0, 0xef, 0xaa, 0xfb, 0x43, 0x4d, 0x33, 0x85, 0x45, 0xf9, 0x02, 0x7f, 0x50, 0x3c, 0x9f, 0xa8,
	0x51, 0xa3, 0x40, 0x8f, 0x92, 0x9d, 0x38, 0xf5, 0xbc, 0xb6, 0xda, 0x21, 0x10, 0xff, 0xf3, 0xd2,
	0xcd, 0x0c, 0x13, 0xec, 0x5f, 0x97, 0x44, 0x17, 0xc4, 0xa7, 0x7e, 0x3d, 0x64, 0x5d, 0x19, 0x73,
	0x60, 0x81, 0x4f, 0xdc, 0x22, 0x2a, 0x90, 0x88, 0x46, 0xee, 0xb8, 0x14, 0xde, 0x5e, 0x0b, 0xdb,
	0xe0, 0x32, 0x3a, 0x0a, 0x49, 0x06, 0x24, 0x5c, 0xc2, 0xd3, 0xac, 0x62, 0x91, 0x95, 0xe4, 0x79,
	0xe7, 0xc8, 0x37, 0x6d, 0x8d, 0xd5, 0x4e, 0xa9, 0x6c, 0x56, 0xf4, 0xea, 0x65, 0x7a, 0xae, 0x08,
	0xba, 0x78, 0x25, 0x2e, 0x1c, 0xa6, 0xb4, 0xc6, 0xe8, 0xdd, 0x74, 0x1f, 0x4b, 0xbd, 0x8b, 0x8a,
	0x70, 0x3e, 0xb5, 0x66, 0x48, 0x03, 0xf6, 0x0e, 0x61, 0x35, 0x57, 0xb9, 0x86, 0xc1, 0x1d, 0x9e,
	0xe1, 0xf8, 0x98, 0x11, 0x69, 0xd9, 0x8e, 0x94, 0x9b, 0x1e, 0x87, 0xe9, 0xce, 0x55, 0x28, 0xdf,
	0x8c, 0xa1, 0x89, 0x0d, 0xbf, 0xe6, 0x42, 0x68, 0x41, 0x99, 0x2d, 0x0f, 0xb0, 0x54, 0xbb, 0x16,
}

var invSbox [256]byte

func init() {
	for i, v := range sbox {
		invSbox[v] = byte(i)
	}
}

var rcon = [15]byte{
	0x00, 0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x40, 0x80, 0x1b, 0x36, 0x6c, 0xd8, 0xab, 0x4d,
}

func gmul(a, b byte) byte {
	var p byte
	for b != 0 {
		if b&1 != 0 {
			p ^= a
		}
		hiBit := a & 0x80
		a <<= 1
		if hiBit != 0 {
			a ^= 0x1b
		}
		b >>= 1
	}
	return p
}

// MakeKeySchedule expands a 32-byte AES-256 key into the (Nr+1)*16-byte
// round key schedule TransformECB/InverseTransformECB consume.
func MakeKeySchedule(key [32]byte) []byte {
	w := make([][4]byte, nb*(nr+1))
	for i := 0; i < nk; i++ {
		w[i] = [4]byte{key[4*i], key[4*i+1], key[4*i+2], key[4*i+3]}
	}
	for i := nk; i < nb*(nr+1); i++ {
		temp := w[i-1]
		if i%nk == 0 {
			temp = subWord(rotWord(temp))
			temp[0] ^= rcon[i/nk]
		} else if nk > 6 && i%nk == 4 {
			temp = subWord(temp)
		}
		w[i] = xorWord(w[i-nk], temp)
	}

	schedule := make([]byte, KeyScheduleSize)
	for i, word := range w {
		copy(schedule[i*4:i*4+4], word[:])
	}
	return schedule
}

func rotWord(w [4]byte) [4]byte {
	return [4]byte{w[1], w[2], w[3], w[0]}
}

func subWord(w [4]byte) [4]byte {
	return [4]byte{sbox[w[0]], sbox[w[1]], sbox[w[2]], sbox[w[3]]}
}

func xorWord(a, b [4]byte) [4]byte {
	return [4]byte{a[0] ^ b[0], a[1] ^ b[1], a[2] ^ b[2], a[3] ^ b[3]}
}

// state is the 4x4 column-major byte matrix FIPS-197 operates on.
type state [4][4]byte

func toState(block []byte) state {
	var s state
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			s[r][c] = block[4*c+r]
		}
	}
	return s
}

func (s state) toBytes() [16]byte {
	var out [16]byte
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			out[4*c+r] = s[r][c]
		}
	}
	return out
}

func (s *state) addRoundKey(schedule []byte, round int) {
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			s[r][c] ^= schedule[round*16+4*c+r]
		}
	}
}

func (s *state) subBytes() {
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			s[r][c] = sbox[s[r][c]]
		}
	}
}

func (s *state) invSubBytes() {
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			s[r][c] = invSbox[s[r][c]]
		}
	}
}

func (s *state) shiftRows() {
	for r := 1; r < 4; r++ {
		row := s[r]
		var shifted [4]byte
		for c := 0; c < 4; c++ {
			shifted[c] = row[(c+r)%4]
		}
		s[r] = shifted
	}
}

func (s *state) invShiftRows() {
	for r := 1; r < 4; r++ {
		row := s[r]
		var shifted [4]byte
		for c := 0; c < 4; c++ {
			shifted[c] = row[(c-r+4)%4]
		}
		s[r] = shifted
	}
}

func (s *state) mixColumns() {
	for c := 0; c < 4; c++ {
		a0, a1, a2, a3 := s[0][c], s[1][c], s[2][c], s[3][c]
		s[0][c] = gmul(a0, 2) ^ gmul(a1, 3) ^ a2 ^ a3
		s[1][c] = a0 ^ gmul(a1, 2) ^ gmul(a2, 3) ^ a3
		s[2][c] = a0 ^ a1 ^ gmul(a2, 2) ^ gmul(a3, 3)
		s[3][c] = gmul(a0, 3) ^ a1 ^ a2 ^ gmul(a3, 2)
	}
}

func (s *state) invMixColumns() {
	for c := 0; c < 4; c++ {
		a0, a1, a2, a3 := s[0][c], s[1][c], s[2][c], s[3][c]
		s[0][c] = gmul(a0, 0x0e) ^ gmul(a1, 0x0b) ^ gmul(a2, 0x0d) ^ gmul(a3, 0x09)
		s[1][c] = gmul(a0, 0x09) ^ gmul(a1, 0x0e) ^ gmul(a2, 0x0b) ^ gmul(a3, 0x0d)
		s[2][c] = gmul(a0, 0x0d) ^ gmul(a1, 0x09) ^ gmul(a2, 0x0e) ^ gmul(a3, 0x0b)
		s[3][c] = gmul(a0, 0x0b) ^ gmul(a1, 0x0d) ^ gmul(a2, 0x09) ^ gmul(a3, 0x0e)
	}
}

// TransformECB encrypts a single 16-byte block under schedule, as
// produced by MakeKeySchedule.
func TransformECB(schedule []byte, block [16]byte) [16]byte {
	s := toState(block[:])
	s.addRoundKey(schedule, 0)
	for round := 1; round < nr; round++ {
		s.subBytes()
		s.shiftRows()
		s.mixColumns()
		s.addRoundKey(schedule, round)
	}
	s.subBytes()
	s.shiftRows()
	s.addRoundKey(schedule, nr)
	return s.toBytes()
}

// InverseTransformECB decrypts a single 16-byte block under schedule.
func InverseTransformECB(schedule []byte, block [16]byte) [16]byte {
	s := toState(block[:])
	s.addRoundKey(schedule, nr)
	for round := nr - 1; round >= 1; round-- {
		s.invShiftRows()
		s.invSubBytes()
		s.addRoundKey(schedule, round)
		s.invMixColumns()
	}
	s.invShiftRows()
	s.invSubBytes()
	s.addRoundKey(schedule, 0)
	return s.toBytes()
}

func xorBlock(a, b [16]byte) [16]byte {
	var out [16]byte
	for i := range out {
		out[i] = a[i] ^ b[i]
	}
	return out
}

// TransformCBC encrypts plaintext in 16-byte blocks under key with
// chaining initialized by iv. len(plaintext) must be a multiple of 16;
// callers are responsible for padding.
func TransformCBC(key [32]byte, iv [16]byte, plaintext []byte) []byte {
	schedule := MakeKeySchedule(key)
	ciphertext := make([]byte, len(plaintext))
	prev := iv
	for off := 0; off < len(plaintext); off += blockSize {
		var block [16]byte
		copy(block[:], plaintext[off:off+blockSize])
		chained := xorBlock(block, prev)
		enc := TransformECB(schedule, chained)
		copy(ciphertext[off:off+blockSize], enc[:])
		prev = enc
	}
	return ciphertext
}

// InverseTransformCBC decrypts ciphertext produced by TransformCBC with
// the same key and iv.
func InverseTransformCBC(key [32]byte, iv [16]byte, ciphertext []byte) []byte {
	schedule := MakeKeySchedule(key)
	plaintext := make([]byte, len(ciphertext))
	prev := iv
	for off := 0; off < len(ciphertext); off += blockSize {
		var block [16]byte
		copy(block[:], ciphertext[off:off+blockSize])
		dec := InverseTransformECB(schedule, block)
		plain := xorBlock(dec, prev)
		copy(plaintext[off:off+blockSize], plain[:])
		prev = block
	}
	return plaintext
}
