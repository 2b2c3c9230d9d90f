package types

import (
	"math/big"

	"github.com/meverselabs/mintdrop/common"
)

// Context is an intermediate in-memory state for a single transaction boundary.
// All contract and account data written through it lands in one keyed store,
// with a journal so a snapshot can be reverted when an invocation fails.
type Context struct {
	chainID       *big.Int
	targetHeight  uint32
	lastTimestamp uint64
	data          map[string][]byte
	journal       []journalEntry
	events        []*Event
	marks         []snapshotMark
}

type journalEntry struct {
	key     string
	prev    []byte
	existed bool
}

type snapshotMark struct {
	journalLen int
	eventsLen  int
}

// NewContext returns a Context
func NewContext(chainID *big.Int) *Context {
	return &Context{
		chainID: chainID,
		data:    map[string][]byte{},
	}
}

// ChainID returns the id of the chain
func (ctx *Context) ChainID() *big.Int {
	return ctx.chainID
}

// TargetHeight returns the recorded target height of the context
func (ctx *Context) TargetHeight() uint32 {
	return ctx.targetHeight
}

// LastTimestamp returns the recorded prev timestamp of the context in unix seconds
func (ctx *Context) LastTimestamp() uint64 {
	return ctx.lastTimestamp
}

// NextContext advances the context to the next height with the given timestamp
func (ctx *Context) NextContext(Timestamp uint64) *Context {
	ctx.targetHeight++
	ctx.lastTimestamp = Timestamp
	return ctx
}

func makeDataKey(cont common.Address, addr common.Address, name []byte) string {
	bs := make([]byte, common.AddressLength*2+len(name))
	copy(bs, cont[:])
	copy(bs[common.AddressLength:], addr[:])
	copy(bs[common.AddressLength*2:], name)
	return string(bs)
}

// Data returns the stored data of the contract scope
func (ctx *Context) Data(cont common.Address, addr common.Address, name []byte) []byte {
	return ctx.data[makeDataKey(cont, addr, name)]
}

// SetData inserts the data to the contract scope; an empty value deletes the key
func (ctx *Context) SetData(cont common.Address, addr common.Address, name []byte, value []byte) {
	key := makeDataKey(cont, addr, name)
	prev, existed := ctx.data[key]
	ctx.journal = append(ctx.journal, journalEntry{key: key, prev: prev, existed: existed})
	if len(value) == 0 {
		delete(ctx.data, key)
	} else {
		ctx.data[key] = value
	}
}

// EmitEvent creates the event to the top snapshot
func (ctx *Context) EmitEvent(e *Event) error {
	ctx.events = append(ctx.events, e)
	return nil
}

// Events returns the events emitted so far
func (ctx *Context) Events() []*Event {
	return ctx.events
}

// Snapshot push a snapshot and returns the snapshot number of it
func (ctx *Context) Snapshot() int {
	ctx.marks = append(ctx.marks, snapshotMark{
		journalLen: len(ctx.journal),
		eventsLen:  len(ctx.events),
	})
	return len(ctx.marks)
}

// Revert removes snapshots after the snapshot number and undoes their writes
func (ctx *Context) Revert(sn int) {
	if len(ctx.marks) < sn {
		return
	}
	mark := ctx.marks[sn-1]
	for i := len(ctx.journal) - 1; i >= mark.journalLen; i-- {
		entry := ctx.journal[i]
		if entry.existed {
			ctx.data[entry.key] = entry.prev
		} else {
			delete(ctx.data, entry.key)
		}
	}
	ctx.journal = ctx.journal[:mark.journalLen]
	ctx.events = ctx.events[:mark.eventsLen]
	ctx.marks = ctx.marks[:sn-1]
}

// Commit apply snapshots to the top after the snapshot number
func (ctx *Context) Commit(sn int) {
	if len(ctx.marks) < sn {
		return
	}
	ctx.marks = ctx.marks[:sn-1]
}
