package deferred

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucmd"
	"github.com/gogpu/gpucmd/arena"
	"github.com/gogpu/gpucmd/packet"
	"github.com/gogpu/gpucmd/refcount"
)

// DefaultBlockSize is the arena block size used unless overridden with
// WithBlockSize. Large enough that typical recordings fit in one or two
// blocks, small enough that an idle buffer is cheap.
const DefaultBlockSize = 64 << 10

func init() {
	gpucmd.Register("deferred", func() gpucmd.CommandBuffer {
		return New()
	})
}

// scope tracks which recording scope, if any, is currently open.
type scope uint8

const (
	scopeNone scope = iota
	scopeTransfer
	scopeCompute
	scopeRender
)

var scopeNames = [...]string{
	scopeNone:     "none",
	scopeTransfer: "transfer",
	scopeCompute:  "compute",
	scopeRender:   "render",
}

// CommandBuffer records GPU commands into a tagged binary stream instead of
// executing them, for replay onto a real backend later. It implements
// gpucmd.CommandBuffer and registers itself under the name "deferred".
//
// Lifecycle: record scopes, then Finish to seal, then Replay any number of
// times, then Reset to record again (or Close to tear down). Every resource
// a command references is retained on first use and released by Reset or
// Close, so the recording stays valid even if the application drops its own
// references. Release happens at Reset, not at GPU completion: callers must
// not Reset a buffer whose previous replay is still executing.
//
// Recording and replay are single-goroutine; see gpucmd.CommandBuffer.
type CommandBuffer struct {
	arena *arena.Arena
	w     *packet.Writer

	// deps is the dependency table: one retained reference per distinct
	// resource, in first-use order. Slots index this table and slotByID
	// dedupes by resource identity.
	deps     []gpucmd.Resource
	slotByID map[uint64]uint32

	scope      scope
	active     any // encoder returned by the open scope's Begin
	passOpen   bool
	activePass any // encoder returned by BeginRenderPass
	queues     gpucmd.QueueClassMask

	err    error
	sealed bool
	seal   uint64
	closed bool
}

// Option configures a CommandBuffer.
type Option func(*config)

type config struct {
	blockSize int
	maxBlocks int
}

// WithBlockSize sets the arena block size in bytes. Individual commands and
// trailing argument spans must each fit in one block.
func WithBlockSize(n int) Option {
	return func(c *config) { c.blockSize = n }
}

// WithMaxBlocks caps command storage at n blocks. When the cap is hit,
// recording fails with gpucmd.ErrStorageExhausted (surfaced via Err) instead
// of growing. Zero means unbounded.
func WithMaxBlocks(n int) Option {
	return func(c *config) { c.maxBlocks = n }
}

// New creates an empty deferred command buffer.
func New(opts ...Option) *CommandBuffer {
	cfg := config{blockSize: DefaultBlockSize}
	for _, opt := range opts {
		opt(&cfg)
	}
	a := arena.New(cfg.blockSize, arena.WithMaxBlocks(cfg.maxBlocks))
	return &CommandBuffer{
		arena:    a,
		w:        packet.NewWriter(a),
		slotByID: make(map[uint64]uint32),
	}
}

// ---- gpucmd.CommandBuffer ----

// BeginTransferCommands opens a transfer scope.
func (b *CommandBuffer) BeginTransferCommands() gpucmd.TransferEncoder {
	b.beginScope(scopeTransfer, gpucmd.QueueTransfer)
	emit(b, cmdBeginTransfer, struct{}{})
	enc := &transferEncoder{b: b}
	b.active = enc
	return enc
}

// EndTransferCommands closes the transfer scope.
func (b *CommandBuffer) EndTransferCommands(enc gpucmd.TransferEncoder) {
	b.endScope(scopeTransfer, enc)
	emit(b, cmdEndTransfer, struct{}{})
	enc.(*transferEncoder).done = true
}

// BeginComputeCommands opens a compute scope.
func (b *CommandBuffer) BeginComputeCommands() gpucmd.ComputeEncoder {
	b.beginScope(scopeCompute, gpucmd.QueueCompute)
	emit(b, cmdBeginCompute, struct{}{})
	enc := &computeEncoder{transferEncoder{b: b}}
	b.active = enc
	return enc
}

// EndComputeCommands closes the compute scope.
func (b *CommandBuffer) EndComputeCommands(enc gpucmd.ComputeEncoder) {
	b.endScope(scopeCompute, enc)
	emit(b, cmdEndCompute, struct{}{})
	enc.(*computeEncoder).done = true
}

// BeginRenderCommands opens a render scope. A nil desc is treated as a zero
// gpucmd.RenderDescriptor.
func (b *CommandBuffer) BeginRenderCommands(desc *gpucmd.RenderDescriptor) gpucmd.RenderEncoder {
	if desc == nil {
		desc = &gpucmd.RenderDescriptor{}
	}
	classes := gpucmd.QueueRender
	if desc.Present {
		classes |= gpucmd.QueuePresent
	}
	b.beginScope(scopeRender, classes)
	emit(b, cmdBeginRender, beginRenderCmd{
		Present:  packBool(desc.Present),
		LabelLen: uint32(len(desc.Label)),
	})
	emitData(b, []byte(desc.Label))
	enc := &renderEncoder{computeEncoder{transferEncoder{b: b}}}
	b.active = enc
	return enc
}

// EndRenderCommands closes the render scope. Panics if a render pass begun
// inside the scope is still open.
func (b *CommandBuffer) EndRenderCommands(enc gpucmd.RenderEncoder) {
	if b.passOpen {
		panic("deferred: EndRenderCommands with an open render pass")
	}
	b.endScope(scopeRender, enc)
	emit(b, cmdEndRender, struct{}{})
	enc.(*renderEncoder).done = true
}

// QueueClasses returns the accumulated queue-class mask.
func (b *CommandBuffer) QueueClasses() gpucmd.QueueClassMask { return b.queues }

// Err returns the first recording failure, or nil.
func (b *CommandBuffer) Err() error { return b.err }

// Reset discards the recording, releases every retained resource, and
// returns the buffer to its freshly created state. Storage blocks are
// recycled, so a steady-state record/replay/reset loop stops allocating.
func (b *CommandBuffer) Reset() {
	b.checkOpen()
	if b.scope != scopeNone {
		panic("deferred: Reset inside an open " + scopeNames[b.scope] + " scope")
	}
	head := b.w.Head()
	b.w.Reset()
	b.arena.Reclaim(head)
	b.releaseDeps()
	b.queues = 0
	b.err = nil
	b.sealed = false
	b.seal = 0
	b.active = nil
	b.activePass = nil
}

// ---- sealing and replay ----

// Finish seals the recording for replay and returns the first recording
// failure, if any. No scope may be open. After Finish the buffer is
// immutable until Reset; beginning a new scope panics.
func (b *CommandBuffer) Finish() error {
	b.checkOpen()
	if b.scope != scopeNone {
		panic("deferred: Finish inside an open " + scopeNames[b.scope] + " scope")
	}
	if b.sealed {
		panic("deferred: Finish called twice")
	}
	b.sealed = true
	b.seal = packet.Checksum(b.w.Head())
	gpucmd.Logger().Debug("deferred: recording finished",
		"queues", b.queues.String(),
		"resources", len(b.deps),
		"blocks", b.w.Blocks(),
		"err", b.err)
	return b.err
}

// Reader returns a fresh reader over the recorded stream, for diagnostics
// and tests. The stream layout is private to this package.
func (b *CommandBuffer) Reader() *packet.Reader {
	return packet.NewReader(b.w.Head())
}

// Close releases all retained resources and drops command storage. The
// buffer is unusable afterwards; any further method call panics.
func (b *CommandBuffer) Close() {
	b.checkOpen()
	if b.scope != scopeNone {
		panic("deferred: Close inside an open " + scopeNames[b.scope] + " scope")
	}
	head := b.w.Head()
	b.w.Reset()
	b.arena.Reclaim(head)
	b.arena.Reset()
	b.releaseDeps()
	b.closed = true
}

// ---- internals ----

func (b *CommandBuffer) checkOpen() {
	if b.closed {
		panic("deferred: use of closed command buffer")
	}
}

func (b *CommandBuffer) beginScope(s scope, classes gpucmd.QueueClass) {
	b.checkOpen()
	if b.sealed {
		panic("deferred: recording after Finish (Reset first)")
	}
	if b.scope != scopeNone {
		panic("deferred: begin " + scopeNames[s] + " scope while " +
			scopeNames[b.scope] + " scope is open")
	}
	b.scope = s
	b.queues |= gpucmd.QueueClassMask(classes)
}

func (b *CommandBuffer) endScope(s scope, enc any) {
	b.checkOpen()
	if b.scope != s {
		panic("deferred: end " + scopeNames[s] + " scope while " +
			scopeNames[b.scope] + " scope is open")
	}
	if enc == nil || enc != b.active {
		panic("deferred: End called with an encoder from a different scope")
	}
	b.scope = scopeNone
	b.active = nil
}

// slot retains r on first sight and returns its dependency-table slot.
// Repeat references to the same resource reuse the slot without retaining
// again. A nil resource, typed or not, maps to InvalidSlot.
func (b *CommandBuffer) slot(r gpucmd.Resource) uint32 {
	if refcount.IsNil(r) {
		return InvalidSlot
	}
	id := gpucmd.ResourceID(r)
	if s, ok := b.slotByID[id]; ok {
		return s
	}
	r.Retain()
	s := uint32(len(b.deps))
	b.deps = append(b.deps, r)
	b.slotByID[id] = s
	return s
}

// resource returns the dependency at slot s, or nil for InvalidSlot.
func (b *CommandBuffer) resource(s uint32) gpucmd.Resource {
	if s == InvalidSlot {
		return nil
	}
	return b.deps[s]
}

func (b *CommandBuffer) releaseDeps() {
	for i, r := range b.deps {
		refcount.Release(r)
		b.deps[i] = nil
	}
	b.deps = b.deps[:0]
	clear(b.slotByID)
}

// fail records the first failure and makes all subsequent recording calls
// no-ops. Arena exhaustion is translated to the package-level sentinel so
// callers can match it with errors.Is.
func (b *CommandBuffer) fail(err error) {
	if b.err != nil {
		return
	}
	if errors.Is(err, arena.ErrExhausted) {
		err = fmt.Errorf("%w: %v", gpucmd.ErrStorageExhausted, err)
	}
	b.err = err
	gpucmd.Logger().Error("deferred: recording failed", "err", err)
}

// emit appends one command record, diverting failures into the sticky error.
func emit[T any](b *CommandBuffer, tag packet.Tag, payload T) {
	if b.err != nil {
		return
	}
	if err := packet.WriteCommand(b.w, tag, payload); err != nil {
		b.fail(err)
	}
}

// emitArray appends a trailing argument span for the preceding command.
func emitArray[T any](b *CommandBuffer, items []T) {
	if b.err != nil {
		return
	}
	if err := packet.WriteArray(b.w, items); err != nil {
		b.fail(err)
	}
}

func emitData(b *CommandBuffer, p []byte) {
	if b.err != nil {
		return
	}
	if err := b.w.WriteData(p); err != nil {
		b.fail(err)
	}
}

func packBool(v bool) uint32 {
	if v {
		return 1
	}
	return 0
}
