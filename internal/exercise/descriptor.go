package exercise

import (
	"encoding/json"
	"fmt"
)

// Descriptor is one unit of lesson content. It wraps exactly one payload
// variant and is immutable once loaded.
type Descriptor struct {
	Payload Payload
}

// New wraps a payload in a Descriptor.
func New(p Payload) Descriptor {
	return Descriptor{Payload: p}
}

// Kind returns the payload's kind, or "" for an empty descriptor.
func (d Descriptor) Kind() Kind {
	if d.Payload == nil {
		return ""
	}
	return d.Payload.Kind()
}

// Prompt returns the text shown above the exercise.
func (d Descriptor) Prompt() string {
	switch p := d.Payload.(type) {
	case Trace:
		return p.Prompt
	case BugHunt:
		return p.Prompt
	case Scramble:
		return p.Prompt
	case Video:
		return p.Title
	case OutputPredict:
		return p.Prompt
	case FillGap:
		return p.Prompt
	case PairMatch:
		return p.Prompt
	case Refactor:
		return p.Prompt
	case ErrorDecode:
		return p.Prompt
	case TerminalSim:
		return p.Prompt
	case AlgoStep:
		return p.Prompt
	case RealWorld:
		return p.Prompt
	}
	return ""
}

// Validate checks the payload.
func (d Descriptor) Validate() error {
	if d.Payload == nil {
		return fmt.Errorf("%w: empty descriptor", ErrInvalid)
	}
	return d.Payload.Validate()
}

type envelope struct {
	Type Kind `json:"type"`
}

// UnmarshalJSON decodes a descriptor, dispatching on its "type" field.
func (d *Descriptor) UnmarshalJSON(b []byte) error {
	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return fmt.Errorf("decode exercise type: %w", err)
	}

	var (
		p   Payload
		err error
	)
	switch env.Type {
	case KindTrace:
		p, err = decode[Trace](b)
	case KindBugHunt:
		p, err = decode[BugHunt](b)
	case KindScramble:
		p, err = decode[Scramble](b)
	case KindVideo:
		p, err = decode[Video](b)
	case KindOutput:
		p, err = decode[OutputPredict](b)
	case KindFillGap:
		p, err = decode[FillGap](b)
	case KindPairMatch:
		p, err = decode[PairMatch](b)
	case KindRefactor:
		p, err = decode[Refactor](b)
	case KindErrorDecode:
		p, err = decode[ErrorDecode](b)
	case KindTerminal:
		p, err = decode[TerminalSim](b)
	case KindAlgoStep:
		p, err = decode[AlgoStep](b)
	case KindRealWorld:
		p, err = decode[RealWorld](b)
	default:
		return fmt.Errorf("unknown exercise type %q", env.Type)
	}
	if err != nil {
		return fmt.Errorf("decode %s exercise: %w", env.Type, err)
	}
	d.Payload = p
	return nil
}

func decode[T Payload](b []byte) (Payload, error) {
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// MarshalJSON encodes the payload fields alongside a "type" field.
func (d Descriptor) MarshalJSON() ([]byte, error) {
	if d.Payload == nil {
		return nil, fmt.Errorf("%w: empty descriptor", ErrInvalid)
	}
	body, err := json.Marshal(d.Payload)
	if err != nil {
		return nil, err
	}
	typ, err := json.Marshal(d.Payload.Kind())
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(body)+len(typ)+10)
	out = append(out, `{"type":`...)
	out = append(out, typ...)
	if len(body) > 2 {
		out = append(out, ',')
	}
	return append(out, body[1:]...), nil
}
