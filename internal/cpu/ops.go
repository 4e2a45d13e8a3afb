package cpu

import (
	"github.com/TheFausap/zerocpu-go/internal/tape"
	"github.com/TheFausap/zerocpu-go/internal/word"
)

func addrOf(raw uint64) (int64, error) {
	addr := word.FromTC36(raw)
	if addr < 0 {
		return 0, ErrNegativeAddress
	}
	return addr, nil
}

func opNOP(c *CPU, dev tape.Device, tag string, tapeIP int64, raw uint64) (int64, int, bool, error) {
	return nextIPSimple(tapeIP, 0), 0, false, nil
}

func opLoadR1(c *CPU, dev tape.Device, tag string, tapeIP int64, raw uint64) (int64, int, bool, error) {
	addr, err := addrOf(raw)
	if err != nil {
		return halted, 0, false, err
	}
	c.R1 = word.Word(dev.ReadWord(addr))
	return nextIPSimple(tapeIP, 0), 0, false, nil
}

func opLoadR2(c *CPU, dev tape.Device, tag string, tapeIP int64, raw uint64) (int64, int, bool, error) {
	addr, err := addrOf(raw)
	if err != nil {
		return halted, 0, false, err
	}
	c.R2 = word.Word(dev.ReadWord(addr))
	return nextIPSimple(tapeIP, 0), 0, false, nil
}

func opLoadR3(c *CPU, dev tape.Device, tag string, tapeIP int64, raw uint64) (int64, int, bool, error) {
	addr, err := addrOf(raw)
	if err != nil {
		return halted, 0, false, err
	}
	c.R3 = word.Word(dev.ReadWord(addr))
	return nextIPSimple(tapeIP, 0), 0, false, nil
}

func opStoreR1(c *CPU, dev tape.Device, tag string, tapeIP int64, raw uint64) (int64, int, bool, error) {
	addr, err := addrOf(raw)
	if err != nil {
		return halted, 0, false, err
	}
	dev.WriteWord(addr, int64(c.R1))
	return nextIPSimple(tapeIP, 0), 0, false, nil
}

func opStoreR3(c *CPU, dev tape.Device, tag string, tapeIP int64, raw uint64) (int64, int, bool, error) {
	addr, err := addrOf(raw)
	if err != nil {
		return halted, 0, false, err
	}
	dev.WriteWord(addr, int64(c.R3))
	return nextIPSimple(tapeIP, 0), 0, false, nil
}

func opSLoadR1(c *CPU, dev tape.Device, tag string, tapeIP int64, raw uint64) (int64, int, bool, error) {
	addr, err := addrOf(raw)
	if err != nil {
		return halted, 0, false, err
	}
	c.R1 = word.Word(c.Scratchpad.ReadWord(addr))
	return nextIPSimple(tapeIP, 0), 0, false, nil
}

func opSLoadR2(c *CPU, dev tape.Device, tag string, tapeIP int64, raw uint64) (int64, int, bool, error) {
	addr, err := addrOf(raw)
	if err != nil {
		return halted, 0, false, err
	}
	c.R2 = word.Word(c.Scratchpad.ReadWord(addr))
	return nextIPSimple(tapeIP, 0), 0, false, nil
}

func opSLoadR3(c *CPU, dev tape.Device, tag string, tapeIP int64, raw uint64) (int64, int, bool, error) {
	addr, err := addrOf(raw)
	if err != nil {
		return halted, 0, false, err
	}
	c.R3 = word.Word(c.Scratchpad.ReadWord(addr))
	return nextIPSimple(tapeIP, 0), 0, false, nil
}

func opClearR1(c *CPU, dev tape.Device, tag string, tapeIP int64, raw uint64) (int64, int, bool, error) {
	c.R1 = 0
	return nextIPSimple(tapeIP, 0), 0, false, nil
}

func opClearR2(c *CPU, dev tape.Device, tag string, tapeIP int64, raw uint64) (int64, int, bool, error) {
	c.R2 = 0
	return nextIPSimple(tapeIP, 0), 0, false, nil
}

func opClearR3(c *CPU, dev tape.Device, tag string, tapeIP int64, raw uint64) (int64, int, bool, error) {
	c.R3 = 0
	return nextIPSimple(tapeIP, 0), 0, false, nil
}

func opWriteTape(c *CPU, dev tape.Device, tag string, tapeIP int64, raw uint64) (int64, int, bool, error) {
	c.Paper.AppendWord(int64(c.R3))
	return nextIPSimple(tapeIP, 0), 0, false, nil
}

func opReadCard(c *CPU, dev tape.Device, tag string, tapeIP int64, raw uint64) (int64, int, bool, error) {
	if v, ok := c.cardReader.ReadNext(); ok {
		c.R3 = word.Word(v)
	}
	return nextIPSimple(tapeIP, 0), 0, false, nil
}

// -- ALU ---------------------------------------------------------------

func opAdd(c *CPU, dev tape.Device, tag string, tapeIP int64, raw uint64) (int64, int, bool, error) {
	c.R1 = word.Clamp(c.R1 + c.R2)
	return nextIPSimple(tapeIP, 0), 0, false, nil
}

func opNeg(c *CPU, dev tape.Device, tag string, tapeIP int64, raw uint64) (int64, int, bool, error) {
	c.R1 = word.Clamp(-c.R1)
	return nextIPSimple(tapeIP, 0), 0, false, nil
}

func opMul(c *CPU, dev tape.Device, tag string, tapeIP int64, raw uint64) (int64, int, bool, error) {
	hi, lo := word.MulQ47Pair(c.R2, c.R3)
	c.R1, c.R2 = hi, lo
	return nextIPSimple(tapeIP, 0), 0, false, nil
}

func opDiv(c *CPU, dev tape.Device, tag string, tapeIP int64, raw uint64) (int64, int, bool, error) {
	if c.R2 == 0 {
		if c.R1 >= 0 {
			c.R1 = word.Max
		} else {
			c.R1 = word.Min
		}
		c.noteAnomaly("DIV by zero, saturated")
	} else {
		c.R1 = word.DivQ47(c.R1, c.R2)
	}
	return nextIPSimple(tapeIP, 0), 0, false, nil
}

func opRound(c *CPU, dev tape.Device, tag string, tapeIP int64, raw uint64) (int64, int, bool, error) {
	c.R1 = word.RoundQ94ToQ47(c.R1, c.R2)
	c.R2 = 0
	return nextIPSimple(tapeIP, 0), 0, false, nil
}

func opAnd(c *CPU, dev tape.Device, tag string, tapeIP int64, raw uint64) (int64, int, bool, error) {
	c.R1 = word.FromTwosComplement(word.ToTwosComplement(c.R1) & word.ToTwosComplement(c.R2))
	return nextIPSimple(tapeIP, 0), 0, false, nil
}

func opOr(c *CPU, dev tape.Device, tag string, tapeIP int64, raw uint64) (int64, int, bool, error) {
	c.R1 = word.FromTwosComplement(word.ToTwosComplement(c.R1) | word.ToTwosComplement(c.R2))
	return nextIPSimple(tapeIP, 0), 0, false, nil
}

func opXor(c *CPU, dev tape.Device, tag string, tapeIP int64, raw uint64) (int64, int, bool, error) {
	c.R1 = word.FromTwosComplement(word.ToTwosComplement(c.R1) ^ word.ToTwosComplement(c.R2))
	return nextIPSimple(tapeIP, 0), 0, false, nil
}

func opShiftLeft(c *CPU, dev tape.Device, tag string, tapeIP int64, raw uint64) (int64, int, bool, error) {
	c.R1, c.R2 = word.ShiftPair96(c.R1, c.R2, true, word.FromTC36(raw))
	return nextIPSimple(tapeIP, 0), 0, false, nil
}

func opShiftRight(c *CPU, dev tape.Device, tag string, tapeIP int64, raw uint64) (int64, int, bool, error) {
	c.R1, c.R2 = word.ShiftPair96(c.R1, c.R2, false, word.FromTC36(raw))
	return nextIPSimple(tapeIP, 0), 0, false, nil
}

// -- control flow --------------------------------------------------------

func opSkip(c *CPU, dev tape.Device, tag string, tapeIP int64, raw uint64) (int64, int, bool, error) {
	if tapeIP == noIP {
		return halted, 0, false, nil
	}
	return tapeIP + 2, 0, false, nil
}

func opSkipIfZero(c *CPU, dev tape.Device, tag string, tapeIP int64, raw uint64) (int64, int, bool, error) {
	if c.R1 == 0 {
		return opSkip(c, dev, tag, tapeIP, raw)
	}
	return nextIPSimple(tapeIP, 0), 0, false, nil
}

func opSkipIfNonzero(c *CPU, dev tape.Device, tag string, tapeIP int64, raw uint64) (int64, int, bool, error) {
	if c.R1 != 0 {
		return opSkip(c, dev, tag, tapeIP, raw)
	}
	return nextIPSimple(tapeIP, 0), 0, false, nil
}

func opJump(c *CPU, dev tape.Device, tag string, tapeIP int64, raw uint64) (int64, int, bool, error) {
	target, err := addrOf(raw)
	if err != nil {
		return halted, 0, false, err
	}
	return target, 0, false, nil
}

func opTxr(c *CPU, dev tape.Device, tag string, tapeIP int64, raw uint64) (int64, int, bool, error) {
	target, err := addrOf(raw)
	if err != nil {
		return halted, 0, false, err
	}
	return target, 0, false, nil
}

func opHalt(c *CPU, dev tape.Device, tag string, tapeIP int64, raw uint64) (int64, int, bool, error) {
	return halted, 0, false, nil
}

// -- I/O realism ----------------------------------------------------------

func (c *CPU) devByCode(code int64) tape.Device {
	switch code {
	case 0:
		return c.Scratchpad
	case 1:
		return c.Library
	case 2:
		return c.Cards
	default:
		return nil
	}
}

func opRewind(c *CPU, dev tape.Device, tag string, tapeIP int64, raw uint64) (int64, int, bool, error) {
	if target := c.devByCode(word.FromTC36(raw)); target != nil {
		if r, ok := target.(tape.Rewinder); ok {
			r.Rewind()
		}
	}
	return nextIPSimple(tapeIP, 0), 0, false, nil
}

func opFF(c *CPU, dev tape.Device, tag string, tapeIP int64, raw uint64) (int64, int, bool, error) {
	devCode := int64((raw >> 24) & 0xFFF)
	count := int64(raw & 0xFFFFFF)
	if target := c.devByCode(devCode); target != nil {
		if ff, ok := target.(tape.FastForwarder); ok {
			ff.FastForward(count)
		}
	}
	return nextIPSimple(tapeIP, 0), 0, false, nil
}

func opStatus(c *CPU, dev tape.Device, tag string, tapeIP int64, raw uint64) (int64, int, bool, error) {
	var pos int64
	if target := c.devByCode(word.FromTC36(raw)); target != nil {
		if pr, ok := target.(tape.PositionReporter); ok {
			pos = pr.Position()
		}
	}
	c.R3 = word.Word(pos)
	return nextIPSimple(tapeIP, 0), 0, false, nil
}
