package wishbone

import (
	"github.com/buslab/wishbone/sim"
)

var transReqByteOverhead = 12
var transRspByteOverhead = 4

// A TransReq asks a bus master to run one single READ or WRITE cycle.
type TransReq struct {
	sim.MsgMeta

	Addr       uint64
	Data       uint64
	IsWrite    bool
	ByteEnable uint64
}

// Meta returns the meta data attached to the request.
func (r *TransReq) Meta() *sim.MsgMeta {
	return &r.MsgMeta
}

// TransReqBuilder can build transaction requests.
type TransReqBuilder struct {
	src, dst   sim.RemotePort
	addr, data uint64
	isWrite    bool
	byteEnable uint64
}

// WithSrc sets the source of the request to build.
func (b TransReqBuilder) WithSrc(src sim.RemotePort) TransReqBuilder {
	b.src = src
	return b
}

// WithDst sets the destination of the request to build.
func (b TransReqBuilder) WithDst(dst sim.RemotePort) TransReqBuilder {
	b.dst = dst
	return b
}

// WithAddr sets the address the cycle accesses.
func (b TransReqBuilder) WithAddr(addr uint64) TransReqBuilder {
	b.addr = addr
	return b
}

// WithData sets the data a WRITE cycle carries.
func (b TransReqBuilder) WithData(data uint64) TransReqBuilder {
	b.data = data
	return b
}

// AsWrite marks the cycle as a WRITE cycle.
func (b TransReqBuilder) AsWrite() TransReqBuilder {
	b.isWrite = true
	return b
}

// WithByteEnable sets the active byte lanes of the cycle.
func (b TransReqBuilder) WithByteEnable(lanes uint64) TransReqBuilder {
	b.byteEnable = lanes
	return b
}

// Build creates a new TransReq.
func (b TransReqBuilder) Build() *TransReq {
	r := &TransReq{}
	r.ID = sim.GetIDGenerator().Generate()
	r.Src = b.src
	r.Dst = b.dst
	r.TrafficBytes = transReqByteOverhead
	r.Addr = b.addr
	r.Data = b.data
	r.IsWrite = b.isWrite
	r.ByteEnable = b.byteEnable
	return r
}

// A TransRsp carries the data captured when a cycle terminates. It is valid
// for exactly one tick on the master that produced it.
type TransRsp struct {
	sim.MsgMeta

	RespondTo string
	Data      uint64
}

// Meta returns the meta data attached to the response.
func (r *TransRsp) Meta() *sim.MsgMeta {
	return &r.MsgMeta
}

// GetRspTo returns the ID of the request the response responds to.
func (r *TransRsp) GetRspTo() string {
	return r.RespondTo
}

// TransRspBuilder can build transaction responses.
type TransRspBuilder struct {
	src, dst sim.RemotePort
	rspTo    string
	data     uint64
}

// WithSrc sets the source of the response to build.
func (b TransRspBuilder) WithSrc(src sim.RemotePort) TransRspBuilder {
	b.src = src
	return b
}

// WithDst sets the destination of the response to build.
func (b TransRspBuilder) WithDst(dst sim.RemotePort) TransRspBuilder {
	b.dst = dst
	return b
}

// WithRspTo sets the ID of the request the response responds to.
func (b TransRspBuilder) WithRspTo(id string) TransRspBuilder {
	b.rspTo = id
	return b
}

// WithData sets the data captured from the slave.
func (b TransRspBuilder) WithData(data uint64) TransRspBuilder {
	b.data = data
	return b
}

// Build creates a new TransRsp.
func (b TransRspBuilder) Build() *TransRsp {
	r := &TransRsp{}
	r.ID = sim.GetIDGenerator().Generate()
	r.Src = b.src
	r.Dst = b.dst
	r.TrafficBytes = transRspByteOverhead
	r.RespondTo = b.rspTo
	r.Data = b.data
	return r
}
