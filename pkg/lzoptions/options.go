// Package lzoptions encodes LayerZero v2 type 3 message options, the
// executor instructions attached to a relay quote or send.
package lzoptions

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

const (
	// TypeThree is the options format version
	TypeThree uint16 = 3

	// ExecutorWorkerID identifies executor options
	ExecutorWorkerID uint8 = 1

	OptionTypeLzReceive        uint8 = 1
	OptionTypeNativeDrop       uint8 = 2
	OptionTypeCompose          uint8 = 3
	OptionTypeOrderedExecution uint8 = 4
)

var maxUint128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

type workerOption struct {
	workerID   uint8
	optionType uint8
	params     []byte
}

// Options accumulates worker options in insertion order
type Options struct {
	options []workerOption
	err     error
}

// New returns an empty type 3 options builder
func New() *Options {
	return &Options{}
}

// AddExecutorLzReceiveOption sets the gas (and optional value) the executor
// forwards to lzReceive on the destination
func (o *Options) AddExecutorLzReceiveOption(gas, value *big.Int) *Options {
	params := o.uint128(gas)
	if value != nil && value.Sign() != 0 {
		params = append(params, o.uint128(value)...)
	}
	return o.add(ExecutorWorkerID, OptionTypeLzReceive, params)
}

// AddExecutorNativeDropOption airdrops amount of native currency to receiver
func (o *Options) AddExecutorNativeDropOption(amount *big.Int, receiver common.Address) *Options {
	params := o.uint128(amount)
	params = append(params, common.LeftPadBytes(receiver.Bytes(), 32)...)
	return o.add(ExecutorWorkerID, OptionTypeNativeDrop, params)
}

// AddExecutorComposeOption sets gas and value for the compose call at index
func (o *Options) AddExecutorComposeOption(index uint16, gas, value *big.Int) *Options {
	params := binary.BigEndian.AppendUint16(nil, index)
	params = append(params, o.uint128(gas)...)
	if value != nil && value.Sign() != 0 {
		params = append(params, o.uint128(value)...)
	}
	return o.add(ExecutorWorkerID, OptionTypeCompose, params)
}

// AddExecutorOrderedExecutionOption asks for nonce ordered delivery
func (o *Options) AddExecutorOrderedExecutionOption() *Options {
	return o.add(ExecutorWorkerID, OptionTypeOrderedExecution, nil)
}

// Bytes encodes the options as
// uint16 type | (uint8 worker | uint16 size | uint8 optionType | params)*
func (o *Options) Bytes() ([]byte, error) {
	if o.err != nil {
		return nil, o.err
	}

	out := binary.BigEndian.AppendUint16(nil, TypeThree)
	for _, opt := range o.options {
		out = append(out, opt.workerID)
		out = binary.BigEndian.AppendUint16(out, uint16(len(opt.params)+1))
		out = append(out, opt.optionType)
		out = append(out, opt.params...)
	}
	return out, nil
}

// Hex returns the 0x prefixed encoding
func (o *Options) Hex() (string, error) {
	b, err := o.Bytes()
	if err != nil {
		return "", err
	}
	return hexutil.Encode(b), nil
}

func (o *Options) add(workerID, optionType uint8, params []byte) *Options {
	o.options = append(o.options, workerOption{
		workerID:   workerID,
		optionType: optionType,
		params:     params,
	})
	return o
}

func (o *Options) uint128(v *big.Int) []byte {
	if v == nil {
		v = new(big.Int)
	}
	if v.Sign() < 0 || v.Cmp(maxUint128) > 0 {
		if o.err == nil {
			o.err = fmt.Errorf("value %s does not fit in uint128", v)
		}
		return make([]byte, 16)
	}
	return common.LeftPadBytes(v.Bytes(), 16)
}
