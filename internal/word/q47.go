package word

import (
	"math"
	"math/big"
)

// FloatToQ47 clamps x to [-1.0, 1.0-2^-47) and rounds x*2^47 to the nearest
// integer, returning the clamped Q47 word.
func FloatToQ47(x float64) Word {
	upper := 1.0 - 1.0/float64(int64(1)<<FracBits)
	if x >= 1.0 {
		x = upper
	}
	if x < -1.0 {
		x = -1.0
	}
	scaled := x * float64(int64(1)<<FracBits)
	return Clamp(Word(math.Round(scaled)))
}

// Q47ToFloat reinterprets a Q47 word as the real number it encodes.
func Q47ToFloat(v Word) float64 {
	return float64(v) / float64(int64(1)<<FracBits)
}

var (
	big96Min = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 95))
	big96Max = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 95), big.NewInt(1))
	big96Bit = new(big.Int).Lsh(big.NewInt(1), 96)
	big48Bit = new(big.Int).Lsh(big.NewInt(1), 48)
	mask48   = new(big.Int).Sub(big48Bit, big.NewInt(1))
)

// MulQ47Pair computes the full signed 96-bit Q94 product of two Q47 words,
// clamps it to the signed 96-bit range, and splits it into a (high, low)
// pair of signed 48-bit words such that the 96-bit two's-complement value
// of (high:low) equals the clamped product.
func MulQ47Pair(a, b Word) (high, low Word) {
	prod := new(big.Int).Mul(big.NewInt(int64(a)), big.NewInt(int64(b)))
	if prod.Cmp(big96Min) < 0 {
		prod.Set(big96Min)
	} else if prod.Cmp(big96Max) > 0 {
		prod.Set(big96Max)
	}

	bits := new(big.Int).Set(prod)
	if bits.Sign() < 0 {
		bits.Add(bits, big96Bit)
	}

	hi := new(big.Int).Rsh(bits, 48)
	hi.And(hi, mask48)
	lo := new(big.Int).And(bits, mask48)

	return FromTwosComplement(hi.Uint64()), FromTwosComplement(lo.Uint64())
}

// RoundQ94ToQ47 reconstructs the signed 96-bit Q94 value stored across
// (high, low), rounds it to the nearest Q47 integer away from zero, and
// clamps the result to the signed 48-bit range.
func RoundQ94ToQ47(high, low Word) Word {
	hb := new(big.Int).SetUint64(ToTwosComplement(high))
	lb := new(big.Int).SetUint64(ToTwosComplement(low))
	combined := new(big.Int).Lsh(hb, 48)
	combined.Or(combined, lb)
	combined.And(combined, new(big.Int).Sub(big96Bit, big.NewInt(1)))

	val := signed96(combined)

	half := new(big.Int).Lsh(big.NewInt(1), FracBits-1)
	if val.Sign() >= 0 {
		val.Add(val, half)
	} else {
		val.Sub(val, half)
	}
	val.Rsh(val, FracBits)

	if val.Cmp(big.NewInt(int64(Min))) < 0 {
		return Min
	}
	if val.Cmp(big.NewInt(int64(Max))) > 0 {
		return Max
	}
	return Word(val.Int64())
}

// DivQ47 computes floor((r1 << FracBits) / r2) as Q47 fixed-point division,
// clamped to the signed 48-bit range. r2 == 0 is the caller's responsibility
// to special-case; this function assumes a nonzero divisor.
func DivQ47(r1, r2 Word) Word {
	numerator := new(big.Int).Lsh(big.NewInt(int64(r1)), FracBits)
	denominator := big.NewInt(int64(r2))
	q := floorDivBig(numerator, denominator)

	if q.Cmp(big.NewInt(int64(Min))) < 0 {
		return Min
	}
	if q.Cmp(big.NewInt(int64(Max))) > 0 {
		return Max
	}
	return Word(q.Int64())
}

// floorDivBig returns a/b rounded toward negative infinity, matching
// Python's `//` operator (big.Int's Quo/Div implement truncated and
// Euclidean division respectively, neither of which is floor division).
func floorDivBig(a, b *big.Int) *big.Int {
	q, r := new(big.Int).QuoRem(a, b, new(big.Int))
	if r.Sign() != 0 && (r.Sign() < 0) != (b.Sign() < 0) {
		q.Sub(q, big.NewInt(1))
	}
	return q
}

func signed96(bits *big.Int) *big.Int {
	v := new(big.Int).Set(bits)
	top := new(big.Int).Lsh(big.NewInt(1), 95)
	if v.Cmp(top) >= 0 {
		v.Sub(v, big96Bit)
	}
	return v
}

// ShiftPair96 treats (r1:r2) as an unsigned 96-bit bit pattern and shifts it
// by count (clamped to [0, 95]; negative counts act as 0), returning the new
// (high, low) signed 48-bit halves.
func ShiftPair96(r1, r2 Word, left bool, count int64) (high, low Word) {
	if count < 0 {
		count = 0
	}
	if count > 95 {
		count = 95
	}
	hb := new(big.Int).SetUint64(ToTwosComplement(r1))
	lb := new(big.Int).SetUint64(ToTwosComplement(r2))
	combined := new(big.Int).Lsh(hb, 48)
	combined.Or(combined, lb)

	if left {
		combined.Lsh(combined, uint(count))
		combined.And(combined, new(big.Int).Sub(big96Bit, big.NewInt(1)))
	} else {
		combined.Rsh(combined, uint(count))
	}

	hi := new(big.Int).Rsh(combined, 48)
	hi.And(hi, mask48)
	lo := new(big.Int).And(combined, mask48)

	return FromTwosComplement(hi.Uint64()), FromTwosComplement(lo.Uint64())
}

// RotateR1 performs a circular rotation of r1's 48-bit pattern by count mod
// 48 positions.
func RotateR1(r1 Word, left bool, count int64) Word {
	n := count % 48
	if n < 0 {
		n += 48
	}
	if n == 0 {
		return r1
	}
	val := ToTwosComplement(r1)
	var rotated uint64
	if left {
		rotated = ((val << uint(n)) | (val >> uint(48-n))) & Mask
	} else {
		rotated = ((val >> uint(n)) | (val << uint(48-n))) & Mask
	}
	return FromTwosComplement(rotated)
}

const (
	fnvOffset64 uint64 = 0xcbf29ce484222325
	fnvPrime64  uint64 = 0x100000001b3
)

// FNV1a48 hashes name with 64-bit FNV-1a and truncates the digest to the
// low 48 bits, the identifier library function records are indexed by.
func FNV1a48(name string) uint64 {
	h := fnvOffset64
	for i := 0; i < len(name); i++ {
		h ^= uint64(name[i])
		h *= fnvPrime64
	}
	return h & Mask
}
