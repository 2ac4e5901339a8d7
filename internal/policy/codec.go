package policy

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/cartridge/tictactoe-rl/internal/board"
)

// FormatVersion is written into every encoded table.
const FormatVersion = 1

// Wire layout, protobuf encoded:
//
//	1: varint  format version
//	2: varint  start weight at generation
//	3: bytes   packed varints, board.Cells weights per key in key order
const (
	fieldVersion     protowire.Number = 1
	fieldStartWeight protowire.Number = 2
	fieldWeights     protowire.Number = 3
)

const numWeights = board.NumStates * board.Cells

var ErrCorrupt = errors.New("corrupt policy data")

// MarshalBinary encodes the whole table.
func (t *Table) MarshalBinary() ([]byte, error) {
	packed := make([]byte, 0, numWeights+numWeights/8)
	for k := range t.weights {
		for _, w := range t.weights[k] {
			if w < 0 {
				return nil, fmt.Errorf("%w: state %s has negative weight %d", ErrInvalid, board.Key(k), w)
			}
			packed = protowire.AppendVarint(packed, uint64(w))
		}
	}

	b := make([]byte, 0, len(packed)+16)
	b = protowire.AppendTag(b, fieldVersion, protowire.VarintType)
	b = protowire.AppendVarint(b, FormatVersion)
	b = protowire.AppendTag(b, fieldStartWeight, protowire.VarintType)
	b = protowire.AppendVarint(b, StartWeight)
	b = protowire.AppendTag(b, fieldWeights, protowire.BytesType)
	b = protowire.AppendBytes(b, packed)

	return b, nil
}

// UnmarshalBinary replaces t with the decoded table. Data that does not
// decode to a valid table yields ErrCorrupt and leaves t untouched.
func (t *Table) UnmarshalBinary(data []byte) error {
	var (
		version    uint64
		packed     []byte
		hasWeights bool
	)

	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return fmt.Errorf("%w: %v", ErrCorrupt, protowire.ParseError(n))
		}
		data = data[n:]

		switch {
		case num == fieldVersion && typ == protowire.VarintType:
			version, n = protowire.ConsumeVarint(data)
		case num == fieldStartWeight && typ == protowire.VarintType:
			_, n = protowire.ConsumeVarint(data)
		case num == fieldWeights && typ == protowire.BytesType:
			packed, n = protowire.ConsumeBytes(data)
			hasWeights = true
		default:
			n = protowire.ConsumeFieldValue(num, typ, data)
		}
		if n < 0 {
			return fmt.Errorf("%w: field %d: %v", ErrCorrupt, num, protowire.ParseError(n))
		}
		data = data[n:]
	}

	if version != FormatVersion {
		return fmt.Errorf("%w: unsupported format version %d", ErrCorrupt, version)
	}
	if !hasWeights {
		return fmt.Errorf("%w: no weights", ErrCorrupt)
	}

	decoded := &Table{}
	for i := 0; i < numWeights; i++ {
		v, n := protowire.ConsumeVarint(packed)
		if n < 0 {
			return fmt.Errorf("%w: weight %d of %d: %v", ErrCorrupt, i, numWeights, protowire.ParseError(n))
		}
		if v > 1<<31-1 {
			return fmt.Errorf("%w: weight %d overflows", ErrCorrupt, i)
		}
		decoded.weights[i/board.Cells][i%board.Cells] = int32(v)
		packed = packed[n:]
	}
	if len(packed) != 0 {
		return fmt.Errorf("%w: %d trailing bytes after weights", ErrCorrupt, len(packed))
	}

	if err := decoded.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	t.weights = decoded.weights
	return nil
}
