package display

import "strconv"

// Opcodes shared by the SSD1306 and SSD1327 controllers.
const (
	ssd1xxxSetContrast        = 0x81
	ssd1xxxScrollRight        = 0x26
	ssd1xxxScrollLeft         = 0x27
	ssd1xxxDeactivateScroll   = 0x2E
	ssd1xxxActivateScroll     = 0x2F
	ssd1xxxSetRemap           = 0xA0
	ssd1xxxSetInverseDisplay  = 0xA7
	ssd1xxxSetMultiplexRatio  = 0xA8
	ssd1xxxSetDisplayOff      = 0xAE
	ssd1xxxSetDisplayOn       = 0xAF
	ssd1xxxNoOp               = 0xE3
	ssd1xxxDummyByteZero      = 0x00
	ssd1xxxDummyByteOnes      = 0xFF
	ssd1xxxMaxContrast        = 0xFF
	ssd1xxxDefaultMaxTransfer = 4096
)

// commandSet holds the opcodes for the commands every controller family supports, with
// the same parameters, but not necessarily with the same opcode.
type commandSet struct {
	displayOn   byte
	displayOff  byte
	normal      byte
	inverse     byte
	contrast    byte // 1 parameter
	offset      byte // 1 parameter, display offset in rows
	startScroll byte
	stopScroll  byte
	noOp        byte
}

// ScrollSpeed is the interval between scroll steps, in frames.
type ScrollSpeed int

// Scroll intervals.
const (
	Scroll2Frames   ScrollSpeed = 2
	Scroll3Frames   ScrollSpeed = 3
	Scroll4Frames   ScrollSpeed = 4
	Scroll5Frames   ScrollSpeed = 5
	Scroll25Frames  ScrollSpeed = 25
	Scroll64Frames  ScrollSpeed = 64
	Scroll128Frames ScrollSpeed = 128
	Scroll256Frames ScrollSpeed = 256
)

// code is the 3-bit value of the scroll speed on the wire; unknown speeds use 5 frames.
func (s ScrollSpeed) code() byte {
	switch s {
	case Scroll5Frames:
		return 0x00
	case Scroll64Frames:
		return 0x01
	case Scroll128Frames:
		return 0x02
	case Scroll256Frames:
		return 0x03
	case Scroll3Frames:
		return 0x04
	case Scroll4Frames:
		return 0x05
	case Scroll25Frames:
		return 0x06
	case Scroll2Frames:
		return 0x07
	default:
		return 0x00
	}
}

func (s ScrollSpeed) String() string {
	switch s {
	case Scroll2Frames, Scroll3Frames, Scroll4Frames, Scroll5Frames,
		Scroll25Frames, Scroll64Frames, Scroll128Frames, Scroll256Frames:
		return strconv.Itoa(int(s)) + " frames"
	default:
		return "5 frames"
	}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
