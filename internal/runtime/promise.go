package runtime

// PromiseState is the three-state lifecycle of a Promise.
type PromiseState int

const (
	Pending PromiseState = iota
	Fulfilled
	Rejected
)

// Promise is the default host promise: cooperative, single-threaded,
// resolved synchronously within the same evaluation step that
// settles it. Calls to an `async function` return this type, and it is the
// only promise type the evaluator's await handling recognizes; any other
// value, a HostOpaque included, passes through await unchanged.
type Promise struct {
	state     PromiseState
	result    Value
	onFulfill []func(Value)
	onReject  []func(Value)
}

func NewPromise() *Promise { return &Promise{state: Pending} }

func (*Promise) TypeName() string { return "object" }
func (*Promise) value()           {}

// State reports the promise's current settlement.
func (p *Promise) State() PromiseState { return p.state }

// Result returns the fulfillment value or rejection reason once settled.
func (p *Promise) Result() Value { return p.result }

// Resolve settles p as fulfilled with v, unless v is itself a pending
// promise, in which case p adopts its eventual outcome (promise chaining).
// A call on an already-settled promise is a no-op, matching the host
// language's once-only settlement rule.
func (p *Promise) Resolve(v Value) {
	if p.state != Pending {
		return
	}
	if inner, ok := v.(*Promise); ok {
		inner.Then(p.Resolve, p.Reject)
		return
	}
	p.state = Fulfilled
	p.result = v
	fs := p.onFulfill
	p.onFulfill, p.onReject = nil, nil
	for _, f := range fs {
		f(v)
	}
}

// Reject settles p as rejected with reason.
func (p *Promise) Reject(reason Value) {
	if p.state != Pending {
		return
	}
	p.state = Rejected
	p.result = reason
	rs := p.onReject
	p.onFulfill, p.onReject = nil, nil
	for _, r := range rs {
		r(reason)
	}
}

// Then registers continuations, invoking the matching one immediately if
// p has already settled. Both callbacks run synchronously on the calling
// goroutine. Await is a plain read rather than a real suspension: the
// evaluator's await handling inspects State and Result directly and
// faults on a promise that is still pending.
func (p *Promise) Then(onFulfill, onReject func(Value)) {
	switch p.state {
	case Fulfilled:
		onFulfill(p.result)
	case Rejected:
		onReject(p.result)
	default:
		p.onFulfill = append(p.onFulfill, onFulfill)
		p.onReject = append(p.onReject, onReject)
	}
}
