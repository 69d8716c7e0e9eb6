package smf

import "fmt"

// controllerNames maps a Control Change controller number to its
// human-readable name, per the MIDI 1.0 controller assignment table.
var controllerNames = map[uint8]string{
	0:   "Bank Select (MSB)",
	1:   "Modulation Wheel (MSB)",
	2:   "Breath Controller (MSB)",
	4:   "Foot Controller (MSB)",
	5:   "Portamento Time (MSB)",
	6:   "Data Entry (MSB)",
	7:   "Channel Volume (MSB)",
	8:   "Balance (MSB)",
	10:  "Pan (MSB)",
	11:  "Expression Controller (MSB)",
	12:  "Effect Control 1 (MSB)",
	13:  "Effect Control 2 (MSB)",
	16:  "General Purpose Controller 1 (MSB)",
	17:  "General Purpose Controller 2 (MSB)",
	18:  "General Purpose Controller 3 (MSB)",
	19:  "General Purpose Controller 4 (MSB)",
	32:  "Bank Select (LSB)",
	33:  "Modulation Wheel (LSB)",
	34:  "Breath Controller (LSB)",
	36:  "Foot Controller (LSB)",
	37:  "Portamento Time (LSB)",
	38:  "Data Entry (LSB)",
	39:  "Channel Volume (LSB)",
	40:  "Balance (LSB)",
	42:  "Pan (LSB)",
	43:  "Expression Controller (LSB)",
	44:  "Effect Control 1 (LSB)",
	45:  "Effect Control 2 (LSB)",
	64:  "Damper Pedal (Sustain)",
	65:  "Portamento On/Off",
	66:  "Sostenuto",
	67:  "Soft Pedal",
	68:  "Legato Footswitch",
	69:  "Hold 2",
	70:  "Sound Controller 1 (Sound Variation)",
	71:  "Sound Controller 2 (Timbre/Harmonic Intensity)",
	72:  "Sound Controller 3 (Release Time)",
	73:  "Sound Controller 4 (Attack Time)",
	74:  "Sound Controller 5 (Brightness)",
	75:  "Sound Controller 6",
	76:  "Sound Controller 7",
	77:  "Sound Controller 8",
	78:  "Sound Controller 9",
	79:  "Sound Controller 10",
	80:  "General Purpose Controller 5",
	81:  "General Purpose Controller 6",
	82:  "General Purpose Controller 7",
	83:  "General Purpose Controller 8",
	84:  "Portamento Control",
	91:  "Effects 1 Depth (Reverb Send)",
	92:  "Effects 2 Depth (Tremolo Depth)",
	93:  "Effects 3 Depth (Chorus Send)",
	94:  "Effects 4 Depth (Detune Depth)",
	95:  "Effects 5 Depth (Phaser Depth)",
	96:  "Data Increment",
	97:  "Data Decrement",
	98:  "NRPN (LSB)",
	99:  "NRPN (MSB)",
	100: "RPN (LSB)",
	101: "RPN (MSB)",
	120: "All Sound Off",
	121: "Reset All Controllers",
	122: "Local Control On/Off",
	123: "All Notes Off",
	124: "Omni Mode Off",
	125: "Omni Mode On",
	126: "Mono Mode On",
	127: "Poly Mode On",
}

// ControllerName returns the human name for a Control Change controller
// number, or a fallback string for unassigned codes.
func ControllerName(controller uint8) string {
	if name, ok := controllerNames[controller]; ok {
		return name
	}
	return fmt.Sprintf("Unknown Controller: %d", controller)
}

// manufacturerNames maps a one-byte SysEx manufacturer ID to its
// registered name.
var manufacturerNames = map[uint8]string{
	0x01: "Sequential Circuits",
	0x02: "Big Briar",
	0x04: "Moog",
	0x06: "Passport Designs",
	0x07: "Lexicon",
	0x09: "New England Digital",
	0x0A: "K-Muse",
	0x0B: "Stepp",
	0x0C: "Fender",
	0x0D: "Gulbransen",
	0x0F: "Emu Systems",
	0x10: "Oberheim",
	0x11: "Apple",
	0x14: "Digital Music Corp",
	0x15: "IVL Technologies",
	0x16: "Synthaxe",
	0x18: "Peavey",
	0x1A: "IBM",
	0x1B: "Wersi",
	0x1D: "Clarity",
	0x1E: "Passac",
	0x1F: "Dynacord",
	0x20: "Bon Tempi",
	0x22: "Solina",
	0x24: "Hohner",
	0x25: "Twister",
	0x26: "Solton",
	0x29: "PPG",
	0x40: "Kawai",
	0x41: "Roland",
	0x42: "Korg",
	0x43: "Yamaha",
	0x44: "Casio",
	0x46: "Kamiya Studio",
	0x47: "Akai",
	0x48: "Japan MIDI",
	0x49: "Fostex",
	0x4A: "Zoom",
	0x4C: "Matsushita",
	0x4D: "Fujitsu",
	0x4E: "Sony",
	0x4F: "Nisshin Onpa",
	0x50: "Teac",
	0x52: "Matsushita Communication",
	0x53: "Ricoh",
	0x54: "Hitachi",
	0x55: "Nec",
	0x56: "Aleph Enterprise",
	0x57: "Aoki",
	0x58: "Venture Music",
	0x59: "Viscount",
	0x5A: "Soundtech",
	0x5B: "Korg USA",
	0x7D: "Non-commercial/educational",
	0x7E: "Universal Non-Real Time",
	0x7F: "Universal Real Time",
}

// ManufacturerName returns the human name for a one-byte SysEx
// manufacturer ID, or a fallback hex string for unassigned codes.
func ManufacturerName(id uint8) string {
	if name, ok := manufacturerNames[id]; ok {
		return name
	}
	return fmt.Sprintf("Unknown Manufacturer: 0x%02X", id)
}

// keyNames is the fixed 15-entry lookup table for a Key Signature meta
// event's signed sharps/flats count. The same table names the tonic
// regardless of major/minor mode; the event's Mode field carries that
// distinction separately.
var keyNames = map[int8]string{
	-7: "Cb", -6: "Gb", -5: "Db", -4: "Ab", -3: "Eb", -2: "Bb", -1: "F",
	0: "C",
	1: "G", 2: "D", 3: "A", 4: "E", 5: "B", 6: "F#", 7: "C#",
}

// keySignatureName returns the key name for a signed sharps/flats count.
func keySignatureName(sf int8) string {
	if name, ok := keyNames[sf]; ok {
		return name
	}
	return "Unknown"
}

// frameRateFromBits decodes the 2-bit frame rate code packed into bits
// 5-6 of an SMPTE Offset meta event's hour byte.
func frameRateFromBits(bits uint8) FrameRate {
	switch bits & 0x03 {
	case 0:
		return FrameRate24
	case 1:
		return FrameRate25
	case 2:
		return FrameRate2997
	default:
		return FrameRate30
	}
}

func frameRateBits(f FrameRate) uint8 {
	switch f {
	case FrameRate24:
		return 0
	case FrameRate25:
		return 1
	case FrameRate2997:
		return 2
	default:
		return 3
	}
}
