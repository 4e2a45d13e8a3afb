package cpu

import "github.com/TheFausap/zerocpu-go/internal/word"

// Boot runs the card-deck boot protocol: cards are processed in order
// starting at index 1; odd cards load r1, even cards execute their raw bits
// as an instruction on the scratchpad with no tape-resident ip. Boot ends
// when TXR transfers control (its target is then handed to ExecuteBlock) or
// the deck is exhausted.
func (c *CPU) Boot() error {
	idx := int64(1)
	for {
		val, ok := c.cardReader.ReadNext()
		if !ok {
			return nil
		}

		var startIP int64 = halted
		if idx%2 == 1 {
			c.R1 = word.Word(val)
		} else {
			bits := word.ToTwosComplement(word.Word(val))
			next, err := c.ExecuteEncoded(c.Scratchpad, word.FromTwosComplement(bits), noIP)
			if err != nil {
				return err
			}
			startIP = next
		}
		idx++

		if startIP != halted {
			return c.ExecuteBlock(c.Scratchpad, startIP)
		}
	}
}
