package cpu

import (
	"fmt"

	"github.com/TheFausap/zerocpu-go/internal/library"
	"github.com/TheFausap/zerocpu-go/internal/opcode"
	"github.com/TheFausap/zerocpu-go/internal/tape"
	"github.com/TheFausap/zerocpu-go/internal/word"
)

// opCall resolves a CALL target (possibly consuming a namehash and/or PB
// address immediate following the instruction word), applies PB argument
// passing, pushes the current (device, return-ip) onto the context stack,
// and switches the engine's current device to the target.
func opCall(c *CPU, dev tape.Device, tag string, tapeIP int64, raw uint64) (int64, int, bool, error) {
	mode, flags, value := opcode.UnpackCallOperand(raw)

	extras := 0
	var nameHash uint64
	if mode == opcode.CallModeLibName {
		bits, ok := dev.ReadBits(tapeIP + 1)
		if !ok {
			return halted, 0, false, fmt.Errorf("cpu: %w", ErrMissingNameHash)
		}
		nameHash = bits
		extras++
	}

	pbUsed := flags&opcode.CallFlagPB != 0
	var pbAddr int64
	if pbUsed {
		bits, ok := dev.ReadBits(tapeIP + 1 + int64(extras))
		if !ok {
			return halted, 0, false, fmt.Errorf("cpu: %w", ErrMissingPBAddr)
		}
		pbAddr = int64(word.FromTwosComplement(bits))
		extras++
	}

	if pbUsed {
		c.applyPB(pbAddr)
	}
	c.lastPBUsed = pbUsed

	var targetDev tape.Device
	var targetIP int64
	var err error
	switch mode {
	case opcode.CallModeScratchAbs:
		targetDev, targetIP = c.Scratchpad, int64(value)
	case opcode.CallModeLibAbs:
		targetDev, targetIP = c.Library, int64(value)
	case opcode.CallModeLibIdx:
		targetDev = c.Library
		targetIP, err = c.resolveLibIndex(int64(value))
	case opcode.CallModeLibName:
		targetDev = c.Library
		targetIP, err = c.resolveLibName(nameHash)
	default:
		return halted, 0, false, fmt.Errorf("cpu: %w: %d", ErrUnknownCallMode, mode)
	}
	if err != nil {
		return halted, 0, false, err
	}

	returnIP := tapeIP + 1 + int64(extras)
	c.ctxStack = append(c.ctxStack, ctxFrame{dev: dev, devTag: tag, returnIP: returnIP})
	c.currentDev = targetDev
	c.currentTag = c.deviceTag(targetDev)

	return targetIP, extras, true, nil
}

// opRet pops the context stack and resumes the caller. An empty stack halts
// the block, matching the reference engine's "RET with no caller" behavior.
func opRet(c *CPU, dev tape.Device, tag string, tapeIP int64, raw uint64) (int64, int, bool, error) {
	if len(c.ctxStack) == 0 {
		return halted, 0, false, nil
	}
	frame := c.ctxStack[len(c.ctxStack)-1]
	c.ctxStack = c.ctxStack[:len(c.ctxStack)-1]
	c.currentDev = frame.dev
	c.currentTag = frame.devTag
	return frame.returnIP, 0, true, nil
}

func (c *CPU) resolveLibIndex(value int64) (int64, error) {
	r, err := library.Open(c.Library)
	if err != nil {
		return 0, err
	}
	return r.ResolveIndex(value)
}

func (c *CPU) resolveLibName(hash uint64) (int64, error) {
	r, err := library.Open(c.Library)
	if err != nil {
		return 0, err
	}
	return r.ResolveName(hash)
}

// applyPB copies a parameter block's arguments into r1/r2/r3, and any
// arguments beyond the third into the PB shadow window, per the PB[0]=count,
// PB[1..]=args layout.
func (c *CPU) applyPB(pbAddr int64) {
	count := c.Scratchpad.ReadWord(pbAddr)
	if count < 0 {
		count = 0
	}
	if count >= 1 {
		c.R1 = word.Word(c.Scratchpad.ReadWord(pbAddr + 1))
	}
	if count >= 2 {
		c.R2 = word.Word(c.Scratchpad.ReadWord(pbAddr + 2))
	}
	if count >= 3 {
		c.R3 = word.Word(c.Scratchpad.ReadWord(pbAddr + 3))
	}
	extra := count - 3
	for i := int64(0); i < extra; i++ {
		v := c.Scratchpad.ReadWord(pbAddr + 4 + i)
		c.Scratchpad.WriteWord(PBShadowBase+i, v)
	}
}
