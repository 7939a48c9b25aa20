package processor

import (
	"context"
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"

	"github.com/mwalczak/flatbatch/document"
	"github.com/mwalczak/flatbatch/record"
	"github.com/mwalczak/flatbatch/storage"
	"github.com/mwalczak/flatbatch/telemetry"
)

const path = "batch.txt"

// captureSink records emitted events for assertions.
type captureSink struct {
	events []telemetry.Event
}

func (s *captureSink) Emit(event telemetry.Event) {
	s.events = append(s.events, event)
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()

	d, err := decimal.NewFromString(s)
	assert.NoError(t, err)
	return d
}

// seed stores a freshly built document with the given transaction amounts,
// all in USD.
func seed(t *testing.T, store *storage.Memory, amounts ...string) {
	t.Helper()

	header, err := record.NewHeader("John", "Doe", "Smith", "123 Main Street")
	assert.NoError(t, err)

	transactions := make([]record.Transaction, 0, len(amounts))
	for i, amount := range amounts {
		txn, err := record.NewTransaction(i+1, mustDecimal(t, amount), record.USD)
		assert.NoError(t, err)
		transactions = append(transactions, txn)
	}

	doc, err := document.New(header, transactions)
	assert.NoError(t, err)

	text, err := document.Serialize(doc, "\n")
	assert.NoError(t, err)

	assert.NoError(t, store.Store(path, text))
	store.Loads, store.Stores = 0, 0
}

func assertContiguous(t *testing.T, doc *document.Document) {
	t.Helper()

	for i, txn := range doc.Transactions {
		assert.Equal(t, i+1, txn.Counter)
	}
	assert.Equal(t, len(doc.Transactions), doc.Footer.TotalCounter)

	sum := decimal.Zero
	for _, txn := range doc.Transactions {
		sum = sum.Add(txn.Amount)
	}
	assert.Equal(t, record.NormalizeAmount(sum).StringFixed(2), doc.Footer.ControlSum.StringFixed(2))
}

func TestReadEmptyPath(t *testing.T) {
	p := New(WithStorage(storage.NewMemory()))

	_, err := p.Read(context.Background(), "")
	var inputErr *InputError
	assert.True(t, errors.As(err, &inputErr))
}

func TestReadMissingFile(t *testing.T) {
	p := New(WithStorage(storage.NewMemory()))

	_, err := p.Read(context.Background(), path)
	var readErr *storage.ReadError
	assert.True(t, errors.As(err, &readErr))
}

func TestReadSeededDocument(t *testing.T) {
	store := storage.NewMemory()
	seed(t, store, "1.00")
	p := New(WithStorage(store))

	doc, err := p.Read(context.Background(), path)
	assert.NoError(t, err)

	assert.Equal(t, "John", doc.Header.Name)
	assert.Equal(t, 1, doc.Footer.TotalCounter)
	assert.Equal(t, "1.00", doc.Footer.ControlSum.StringFixed(2))
}

func TestAddTransaction(t *testing.T) {
	store := storage.NewMemory()
	seed(t, store, "1.00", "2.00")
	p := New(WithStorage(store))

	err := p.AddTransaction(context.Background(), path, mustDecimal(t, "3.50"), record.EUR)
	assert.NoError(t, err)

	doc, err := p.Read(context.Background(), path)
	assert.NoError(t, err)

	assert.Equal(t, 3, doc.Footer.TotalCounter)
	assert.Equal(t, 3, doc.Transactions[2].Counter)
	assert.Equal(t, record.EUR, doc.Transactions[2].Currency)
	assert.Equal(t, "6.50", doc.Footer.ControlSum.StringFixed(2))
	assertContiguous(t, doc)
}

func TestAddTransactionCapacity(t *testing.T) {
	store := storage.NewMemory()
	seed(t, store, "1.00", "2.00")
	p := New(WithStorage(store), WithMaxTransactions(2))

	err := p.AddTransaction(context.Background(), path, mustDecimal(t, "3.00"), record.USD)
	var capacityErr *CapacityError
	assert.True(t, errors.As(err, &capacityErr))
	assert.Equal(t, 2, capacityErr.Limit)
	assert.Equal(t, 0, store.Stores)

	// The boundary only applies to additions; updates and deletes still work.
	assert.NoError(t, p.UpdateTransaction(context.Background(), path, 2, mustDecimal(t, "9.99"), record.USD))
	assert.NoError(t, p.DeleteTransaction(context.Background(), path, 1))
}

func TestUpdateTransaction(t *testing.T) {
	store := storage.NewMemory()
	seed(t, store, "1.00", "2.00")
	p := New(WithStorage(store))

	err := p.UpdateTransaction(context.Background(), path, 2, mustDecimal(t, "10.00"), record.USD)
	assert.NoError(t, err)

	doc, err := p.Read(context.Background(), path)
	assert.NoError(t, err)

	assert.Equal(t, 2, doc.Transactions[1].Counter)
	assert.Equal(t, "10.00", doc.Transactions[1].Amount.StringFixed(2))
	assert.Equal(t, "11.00", doc.Footer.ControlSum.StringFixed(2))
	assertContiguous(t, doc)
}

func TestUpdateTransactionBadID(t *testing.T) {
	store := storage.NewMemory()
	seed(t, store, "1.00")
	p := New(WithStorage(store), WithMaxTransactions(100))

	tests := []struct {
		name     string
		id       int
		wantLoad int
	}{
		{name: "zero id", id: 0, wantLoad: 0},
		{name: "negative id", id: -2, wantLoad: 0},
		{name: "beyond maximum", id: 101, wantLoad: 0},
		{name: "not present", id: 5, wantLoad: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store.Loads, store.Stores = 0, 0

			err := p.UpdateTransaction(context.Background(), path, tt.id, mustDecimal(t, "1.00"), record.USD)
			var inputErr *InputError
			assert.True(t, errors.As(err, &inputErr))
			assert.Equal(t, "id", inputErr.Argument)

			// Range violations are rejected before any I/O.
			assert.Equal(t, tt.wantLoad, store.Loads)
			assert.Equal(t, 0, store.Stores)
		})
	}
}

func TestUpdateTransactionCurrencyChangeEmitsEvent(t *testing.T) {
	store := storage.NewMemory()
	seed(t, store, "1.00")
	p := New(WithStorage(store))

	sink := &captureSink{}
	ctx := telemetry.WithSink(context.Background(), sink)

	assert.NoError(t, p.UpdateTransaction(ctx, path, 1, mustDecimal(t, "1.00"), record.EUR))

	assert.Equal(t, 1, len(sink.events))
	assert.Equal(t, "currency.changed", sink.events[0].Name)
	assert.Equal(t, []telemetry.Field{
		{Key: "id", Value: "1"},
		{Key: "from", Value: "USD"},
		{Key: "to", Value: "EUR"},
	}, sink.events[0].Fields)

	// Same currency again: no event, the change still goes through.
	assert.NoError(t, p.UpdateTransaction(ctx, path, 1, mustDecimal(t, "2.00"), record.EUR))
	assert.Equal(t, 1, len(sink.events))
}

func TestDeleteTransactionShiftsCounters(t *testing.T) {
	store := storage.NewMemory()
	seed(t, store, "1.00", "2.00", "3.00", "4.00")
	p := New(WithStorage(store))

	assert.NoError(t, p.DeleteTransaction(context.Background(), path, 2))

	doc, err := p.Read(context.Background(), path)
	assert.NoError(t, err)

	assert.Equal(t, 3, len(doc.Transactions))
	assert.Equal(t, "1.00", doc.Transactions[0].Amount.StringFixed(2))
	assert.Equal(t, "3.00", doc.Transactions[1].Amount.StringFixed(2))
	assert.Equal(t, "4.00", doc.Transactions[2].Amount.StringFixed(2))
	assert.Equal(t, "8.00", doc.Footer.ControlSum.StringFixed(2))
	assertContiguous(t, doc)
}

func TestDeleteFirstOfTwo(t *testing.T) {
	store := storage.NewMemory()
	seed(t, store, "1.00", "99.95")
	p := New(WithStorage(store))

	assert.NoError(t, p.DeleteTransaction(context.Background(), path, 1))

	doc, err := p.Read(context.Background(), path)
	assert.NoError(t, err)

	assert.Equal(t, 1, len(doc.Transactions))
	assert.Equal(t, 1, doc.Transactions[0].Counter)
	assert.Equal(t, "99.95", doc.Transactions[0].Amount.StringFixed(2))
	assert.Equal(t, "99.95", doc.Footer.ControlSum.StringFixed(2))
}

func TestDeleteTransactionBadID(t *testing.T) {
	store := storage.NewMemory()
	seed(t, store, "1.00", "2.00")
	p := New(WithStorage(store))

	for _, id := range []int{0, -1, 3} {
		err := p.DeleteTransaction(context.Background(), path, id)
		var inputErr *InputError
		assert.True(t, errors.As(err, &inputErr))
	}
	assert.Equal(t, 0, store.Stores)
}

func TestUpdateHeader(t *testing.T) {
	store := storage.NewMemory()
	seed(t, store, "1.00")
	p := New(WithStorage(store))

	name := "jane"
	address := "456 oak avenue"
	err := p.UpdateHeader(context.Background(), path, record.HeaderUpdate{Name: &name, Address: &address})
	assert.NoError(t, err)

	doc, err := p.Read(context.Background(), path)
	assert.NoError(t, err)

	assert.Equal(t, "Jane", doc.Header.Name)
	assert.Equal(t, "Doe", doc.Header.Surname)
	assert.Equal(t, "456 Oak Avenue", doc.Header.Address)
}

func TestUpdateHeaderNoOpSkipsStorage(t *testing.T) {
	store := storage.NewMemory()
	seed(t, store, "1.00")
	p := New(WithStorage(store))

	empty := ""
	err := p.UpdateHeader(context.Background(), path, record.HeaderUpdate{Name: &empty})
	assert.NoError(t, err)

	assert.Equal(t, 0, store.Loads)
	assert.Equal(t, 0, store.Stores)
}

func TestCreateOverwrites(t *testing.T) {
	store := storage.NewMemory()
	seed(t, store, "1.00", "2.00", "3.00")
	p := New(WithStorage(store))

	header, err := record.NewHeader("Anna", "Nowak", "Maria", "1 Long Street")
	assert.NoError(t, err)

	txn, err := record.NewTransaction(1, mustDecimal(t, "7.77"), record.PLN)
	assert.NoError(t, err)

	assert.NoError(t, p.Create(context.Background(), path, header, []record.Transaction{txn}))

	// Create never reads the previous content.
	assert.Equal(t, 0, store.Loads)

	doc, err := p.Read(context.Background(), path)
	assert.NoError(t, err)

	assert.Equal(t, "Anna", doc.Header.Name)
	assert.Equal(t, 1, doc.Footer.TotalCounter)
	assert.Equal(t, "7.77", doc.Footer.ControlSum.StringFixed(2))
}

func TestCreateRejectsBrokenSequence(t *testing.T) {
	store := storage.NewMemory()
	p := New(WithStorage(store))

	header, err := record.NewHeader("Anna", "Nowak", "Maria", "1 Long Street")
	assert.NoError(t, err)

	txn, err := record.NewTransaction(2, mustDecimal(t, "7.77"), record.PLN)
	assert.NoError(t, err)

	err = p.Create(context.Background(), path, header, []record.Transaction{txn})
	assert.Error(t, err)
	assert.Equal(t, 0, store.Stores)
}

func TestFailureLeavesDocumentUntouched(t *testing.T) {
	store := storage.NewMemory()
	seed(t, store, "1.00")

	// Corrupt the stored footer so every read-modify-write fails in parse.
	corrupted := store.Texts[path]
	store.Texts[path] = corrupted[:len(corrupted)-121] + "9" + corrupted[len(corrupted)-120:]
	before := store.Texts[path]

	p := New(WithStorage(store))

	err := p.AddTransaction(context.Background(), path, mustDecimal(t, "2.00"), record.USD)
	assert.Error(t, err)

	assert.Equal(t, 0, store.Stores)
	assert.Equal(t, before, store.Texts[path])
}
