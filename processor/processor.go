// Package processor implements the mutation engine over batch documents.
// Every operation is a full read-modify-write cycle: load the entire text,
// validate and assemble it, apply exactly one mutation, recompute the
// footer, and overwrite the destination in one store call. A failure at any
// point before the store leaves the destination untouched; no retries
// happen anywhere.
//
// The engine takes no lock on the backing store. Two operations racing
// against the same destination end in an unspecified last-writer-wins
// outcome; that is a stated limitation, not a guarantee.
package processor

import (
	"context"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mwalczak/flatbatch/document"
	"github.com/mwalczak/flatbatch/record"
	"github.com/mwalczak/flatbatch/storage"
	"github.com/mwalczak/flatbatch/telemetry"
)

// DefaultDelimiter terminates every rendered line.
const DefaultDelimiter = "\n"

// Processor edits one batch document at a time through a storage provider.
type Processor struct {
	delimiter string
	limits    document.Limits
	storage   storage.Storage
}

// Option configures a Processor.
type Option func(*Processor)

// WithDelimiter sets the line delimiter used when splitting and rendering.
func WithDelimiter(delimiter string) Option {
	return func(p *Processor) {
		p.delimiter = delimiter
	}
}

// WithLineLength sets the maximum rendered line length, delimiter included.
func WithLineLength(length int) Option {
	return func(p *Processor) {
		p.limits.LineLength = length
	}
}

// WithMaxTransactions caps the number of transactions a document may hold.
func WithMaxTransactions(max int) Option {
	return func(p *Processor) {
		p.limits.MaxTransactions = max
	}
}

// WithStorage substitutes the text storage provider.
func WithStorage(s storage.Storage) Option {
	return func(p *Processor) {
		p.storage = s
	}
}

// New creates a Processor with the given options. Defaults: newline
// delimiter, 121-byte lines, 20000 transactions, filesystem storage.
func New(opts ...Option) *Processor {
	p := &Processor{
		delimiter: DefaultDelimiter,
		limits:    document.DefaultLimits(),
		storage:   storage.File{},
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Read loads, validates, and assembles the document stored under path.
func (p *Processor) Read(ctx context.Context, path string) (*document.Document, error) {
	if path == "" {
		return nil, NewInputError("path", path, "no file path provided")
	}

	lines, err := p.load(ctx, path)
	if err != nil {
		return nil, err
	}

	return p.assemble(ctx, lines)
}

// UpdateTransaction replaces the transaction at position id, keeping its
// counter. A currency change is permitted and emitted as an event on the
// context's telemetry sink, never rejected. The footer is recomputed from
// the full transaction run.
func (p *Processor) UpdateTransaction(ctx context.Context, path string, id int, amount decimal.Decimal, currency record.Currency) error {
	if id < 1 || id > p.limits.MaxTransactions {
		return NewInputError("id", strconv.Itoa(id), "must be between 1 and "+strconv.Itoa(p.limits.MaxTransactions))
	}

	doc, err := p.Read(ctx, path)
	if err != nil {
		return err
	}

	if id > doc.Footer.TotalCounter {
		return NewInputError("id", strconv.Itoa(id), "not present in the document")
	}

	replacement, err := record.NewTransaction(id, amount, currency)
	if err != nil {
		return err
	}

	if prior := doc.Transactions[id-1]; prior.Currency != replacement.Currency {
		telemetry.SinkFromContext(ctx).Emit(telemetry.Event{
			Name: "currency.changed",
			Fields: []telemetry.Field{
				{Key: "id", Value: strconv.Itoa(id)},
				{Key: "from", Value: string(prior.Currency)},
				{Key: "to", Value: string(replacement.Currency)},
			},
		})
	}

	doc.Transactions[id-1] = replacement

	return p.rewrite(ctx, path, doc)
}

// AddTransaction appends a transaction with the next counter and recomputes
// the footer. Fails with a *CapacityError once the document holds the
// configured maximum.
func (p *Processor) AddTransaction(ctx context.Context, path string, amount decimal.Decimal, currency record.Currency) error {
	doc, err := p.Read(ctx, path)
	if err != nil {
		return err
	}

	if doc.Footer.TotalCounter == p.limits.MaxTransactions {
		return NewCapacityError(p.limits.MaxTransactions)
	}

	appended, err := record.NewTransaction(doc.Footer.TotalCounter+1, amount, currency)
	if err != nil {
		return err
	}
	doc.Transactions = append(doc.Transactions, appended)

	return p.rewrite(ctx, path, doc)
}

// DeleteTransaction removes the transaction at position id. Every remaining
// transaction numbered above id has its counter decremented by one, keeping
// the sequence contiguous, and the footer is recomputed.
func (p *Processor) DeleteTransaction(ctx context.Context, path string, id int) error {
	doc, err := p.Read(ctx, path)
	if err != nil {
		return err
	}

	if id < 1 || id > doc.Footer.TotalCounter {
		return NewInputError("id", strconv.Itoa(id), "must be between 1 and "+strconv.Itoa(doc.Footer.TotalCounter))
	}

	doc.Transactions = append(doc.Transactions[:id-1], doc.Transactions[id:]...)
	for i := id - 1; i < len(doc.Transactions); i++ {
		doc.Transactions[i].Counter--
	}

	return p.rewrite(ctx, path, doc)
}

// UpdateHeader merges the supplied fields into the stored header. An empty
// update short-circuits without touching storage at all.
func (p *Processor) UpdateHeader(ctx context.Context, path string, update record.HeaderUpdate) error {
	if update.IsEmpty() {
		return nil
	}

	doc, err := p.Read(ctx, path)
	if err != nil {
		return err
	}

	header, err := update.Apply(doc.Header)
	if err != nil {
		return err
	}
	doc.Header = header

	return p.rewrite(ctx, path, doc)
}

// Create builds a document from a caller-supplied header and transaction
// run, derives the footer, and unconditionally overwrites the destination.
// No existing content is read.
func (p *Processor) Create(ctx context.Context, path string, header record.Header, transactions []record.Transaction) error {
	if path == "" {
		return NewInputError("path", path, "no file path provided")
	}

	doc, err := document.New(header, transactions)
	if err != nil {
		return err
	}

	return p.rewrite(ctx, path, doc)
}

// load fetches the stored text and splits it into delimiter-separated
// lines, with surrounding whitespace stripped off the whole text first.
func (p *Processor) load(ctx context.Context, path string) ([]string, error) {
	timer := telemetry.CollectorFromContext(ctx).Start("load")
	defer timer.End()

	text, err := p.storage.Load(path)
	if err != nil {
		return nil, err
	}

	return strings.Split(strings.TrimSpace(text), p.delimiter), nil
}

// assemble runs the structural pre-check and slices the lines into a typed
// document.
func (p *Processor) assemble(ctx context.Context, lines []string) (*document.Document, error) {
	timer := telemetry.CollectorFromContext(ctx).Start("assemble")
	defer timer.End()

	if err := document.Validate(lines, p.limits); err != nil {
		return nil, err
	}

	return document.Assemble(lines)
}

// rewrite recomputes the footer, serializes the whole document, and
// replaces the destination in one store call.
func (p *Processor) rewrite(ctx context.Context, path string, doc *document.Document) error {
	footer, err := document.DeriveFooter(doc.Transactions)
	if err != nil {
		return err
	}
	doc.Footer = footer

	text, err := document.Serialize(doc, p.delimiter)
	if err != nil {
		return err
	}

	timer := telemetry.CollectorFromContext(ctx).Start("store")
	defer timer.End()

	return p.storage.Store(path, text)
}
