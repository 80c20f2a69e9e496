package exercise

// Kind identifies one of the twelve exercise variants.
type Kind string

const (
	KindTrace       Kind = "trace"
	KindBugHunt     Kind = "bug"
	KindScramble    Kind = "scramble"
	KindVideo       Kind = "video"
	KindOutput      Kind = "output"
	KindFillGap     Kind = "fillgap"
	KindPairMatch   Kind = "pair"
	KindRefactor    Kind = "refactor"
	KindErrorDecode Kind = "errordecode"
	KindTerminal    Kind = "terminal"
	KindAlgoStep    Kind = "algostep"
	KindRealWorld   Kind = "realworld"
)

// AllKinds returns every exercise kind in display order.
func AllKinds() []Kind {
	return []Kind{
		KindTrace, KindBugHunt, KindScramble, KindVideo,
		KindOutput, KindFillGap, KindPairMatch, KindRefactor,
		KindErrorDecode, KindTerminal, KindAlgoStep, KindRealWorld,
	}
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	for _, known := range AllKinds() {
		if k == known {
			return true
		}
	}
	return false
}

// DisplayName returns a human-readable label for the kind.
func (k Kind) DisplayName() string {
	switch k {
	case KindTrace:
		return "Trace the Variable"
	case KindBugHunt:
		return "Bug Hunt"
	case KindScramble:
		return "Code Scramble"
	case KindVideo:
		return "Video Byte"
	case KindOutput:
		return "Predict the Output"
	case KindFillGap:
		return "Fill the Gap"
	case KindPairMatch:
		return "Pair Match"
	case KindRefactor:
		return "Refactor"
	case KindErrorDecode:
		return "Error Decoder"
	case KindTerminal:
		return "Terminal"
	case KindAlgoStep:
		return "Algorithm Stepper"
	case KindRealWorld:
		return "Real World"
	default:
		return string(k)
	}
}

// Icon returns the display icon for the kind.
func (k Kind) Icon() string {
	switch k {
	case KindTrace:
		return "🔍"
	case KindBugHunt:
		return "🐛"
	case KindScramble:
		return "🧩"
	case KindVideo:
		return "🎬"
	case KindOutput:
		return "🖥️"
	case KindFillGap:
		return "✏️"
	case KindPairMatch:
		return "🔗"
	case KindRefactor:
		return "♻️"
	case KindErrorDecode:
		return "🚨"
	case KindTerminal:
		return "⌨️"
	case KindAlgoStep:
		return "🪜"
	case KindRealWorld:
		return "🌍"
	default:
		return "•"
	}
}
