// Package dispatcher serializes orders from many producers onto a single
// goroutine that owns the order book.
package dispatcher

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/joripage/matching-engine/pkg/orderbook"
	"go.uber.org/zap"
)

const defaultQueueSize = 1 << 16

type request struct {
	order *orderbook.Order // nil asks for a snapshot
	reply chan response
}

type response struct {
	err      error
	snapshot orderbook.Snapshot
}

type Dispatcher struct {
	book    *orderbook.OrderBook
	inbound chan *request

	started   atomic.Bool
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// New wraps book. After Start the book must only be reached through the
// dispatcher.
func New(book *orderbook.OrderBook, queueSize int) *Dispatcher {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	return &Dispatcher{
		book:    book,
		inbound: make(chan *request, queueSize),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Start launches the consumer goroutine. It stops on Close or when ctx is
// cancelled, after processing what is already queued.
func (d *Dispatcher) Start(ctx context.Context) {
	if !d.started.CompareAndSwap(false, true) {
		return
	}
	go d.runDispatcher(ctx)
}

func (d *Dispatcher) runDispatcher(ctx context.Context) {
	defer close(d.done)
	zap.S().Debugw("dispatcher started", "queue_size", cap(d.inbound))

	for {
		select {
		case req := <-d.inbound:
			d.handle(req)
		case <-d.quit:
			d.drain()
			zap.S().Debug("dispatcher stopped")
			return
		case <-ctx.Done():
			d.closeOnce.Do(func() { close(d.quit) })
			d.drain()
			zap.S().Debugw("dispatcher stopped", "err", ctx.Err())
			return
		}
	}
}

func (d *Dispatcher) drain() {
	for {
		select {
		case req := <-d.inbound:
			d.handle(req)
		default:
			return
		}
	}
}

func (d *Dispatcher) handle(req *request) {
	var resp response
	if req.order != nil {
		resp.err = d.book.Submit(*req.order)
	} else {
		resp.snapshot = d.book.Snapshot()
	}
	req.reply <- resp
}

// Submit queues order and waits until the book has processed it.
func (d *Dispatcher) Submit(ctx context.Context, order orderbook.Order) error {
	resp, err := d.call(ctx, &request{order: &order, reply: make(chan response, 1)})
	if err != nil {
		return err
	}
	return resp.err
}

// Snapshot reads the book through the queue, so it observes every order
// submitted before it.
func (d *Dispatcher) Snapshot(ctx context.Context) (orderbook.Snapshot, error) {
	resp, err := d.call(ctx, &request{reply: make(chan response, 1)})
	return resp.snapshot, err
}

func (d *Dispatcher) call(ctx context.Context, req *request) (response, error) {
	select {
	case <-d.quit:
		return response{}, ErrDispatcherClosed
	default:
	}

	select {
	case d.inbound <- req:
	case <-d.quit:
		return response{}, ErrDispatcherClosed
	case <-ctx.Done():
		return response{}, ctx.Err()
	}

	select {
	case resp := <-req.reply:
		return resp, nil
	case <-d.done:
		select {
		case resp := <-req.reply:
			return resp, nil
		default:
			return response{}, ErrDispatcherClosed
		}
	case <-ctx.Done():
		return response{}, ctx.Err()
	}
}

// Close stops accepting requests and waits for queued ones to finish. On a
// dispatcher that was never started it also releases callers already waiting
// on a queued request, and a later Start is a no-op.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() { close(d.quit) })
	if d.started.CompareAndSwap(false, true) {
		close(d.done)
		return
	}
	<-d.done
}
