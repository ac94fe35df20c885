package service

import (
	"context"
	"docs-portal/internal/model"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

// SearchFunc : выполнение одного поиска
type SearchFunc func(ctx context.Context, query string) ([]model.Document, error)

// SearchResult : ответ на поиск с номером, под которым он был запущен
type SearchResult struct {
	Seq       uint64
	Query     string
	Documents []model.Document
	Err       error
}

// Stopper : таймер, который можно отменить. *time.Timer подходит
type Stopper interface {
	Stop() bool
}

// AfterFunc : планирование вызова f через d
type AfterFunc func(d time.Duration, f func()) Stopper

type DebouncerOption func(*SearchDebouncer)

// WithAfterFunc : подмена таймера, используется в тестах
func WithAfterFunc(afterFunc AfterFunc) DebouncerOption {
	return func(d *SearchDebouncer) {
		d.afterFunc = afterFunc
	}
}

// SearchDebouncer : поиск по мере ввода.
// Каждый ввод перезапускает таймер, поиск запускается только после паузы.
// Пустой запрос показывает все документы, запрос короче minLength пропускается.
// Доставляется только ответ последнего запущенного поиска, устаревшие отбрасываются.
// Submit и Flush во время доставки (в том числе из самого deliver) запускают поиск в отдельной горутине
type SearchDebouncer struct {
	ctx       context.Context
	delay     time.Duration
	minLength int
	search    SearchFunc
	deliver   func(SearchResult)
	afterFunc AfterFunc

	mu         sync.Mutex
	timer      Stopper
	seq        uint64
	stopped    bool
	pending    string
	hasPending bool
	generation uint64
	delivering bool

	deliverMu sync.Mutex
}

func NewSearchDebouncer(ctx context.Context, delay time.Duration, minLength int, search SearchFunc, deliver func(SearchResult), opts ...DebouncerOption) *SearchDebouncer {
	d := &SearchDebouncer{
		ctx:       ctx,
		delay:     delay,
		minLength: minLength,
		search:    search,
		deliver:   deliver,
		afterFunc: func(delay time.Duration, f func()) Stopper {
			return time.AfterFunc(delay, f)
		},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Input : новое значение поля поиска
func (d *SearchDebouncer) Input(query string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.generation++
	generation := d.generation
	d.pending, d.hasPending = query, true
	d.timer = d.afterFunc(d.delay, func() {
		d.flush(generation)
	})
}

// Submit : поиск сразу, без ожидания паузы (Enter)
func (d *SearchDebouncer) Submit(query string) {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.cancelPending()
	delivering := d.delivering
	d.mu.Unlock()

	d.run(query, delivering)
}

// Flush : ожидающий ввод ищется сразу, без ожидания паузы (конец ввода)
func (d *SearchDebouncer) Flush() {
	d.mu.Lock()
	generation := d.generation
	d.mu.Unlock()

	d.flush(generation)
}

// Stop : отменяет ожидающий поиск, ответы уже запущенных поисков больше не доставляются
func (d *SearchDebouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	d.cancelPending()
}

// flush : поиск ввода с номером generation, если он еще не выполнен и не заменен новым
func (d *SearchDebouncer) flush(generation uint64) {
	d.mu.Lock()
	if d.stopped || d.hasPending == false || generation != d.generation {
		d.mu.Unlock()
		return
	}
	query := d.pending
	d.cancelPending()
	delivering := d.delivering
	d.mu.Unlock()

	d.run(query, delivering)
}

// cancelPending : вызывается под mu
func (d *SearchDebouncer) cancelPending() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending, d.hasPending = "", false
}

// run : deliverMu занят, пока идет доставка, поэтому повторный вход уходит в горутину
func (d *SearchDebouncer) run(query string, delivering bool) {
	if delivering {
		go d.fire(query)
		return
	}
	d.fire(query)
}

func (d *SearchDebouncer) fire(query string) {
	query = strings.TrimSpace(query)
	if query != "" && utf8.RuneCountInString(query) < d.minLength {
		return
	}

	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.seq++
	seq := d.seq
	d.mu.Unlock()

	docs, err := d.search(d.ctx, query)

	d.deliverMu.Lock()
	defer d.deliverMu.Unlock()

	d.mu.Lock()
	latest := seq == d.seq && d.stopped == false
	d.delivering = latest
	d.mu.Unlock()

	if latest == false {
		return
	}
	defer func() {
		d.mu.Lock()
		d.delivering = false
		d.mu.Unlock()
	}()
	d.deliver(SearchResult{Seq: seq, Query: query, Documents: docs, Err: err})
}
