// Package ledger holds the salary text and the ordered debt entries entered by
// a user and keeps an affordability result in step with them.
//
// Every mutating call recomputes the result synchronously and then notifies
// subscribers, so Result always reflects the latest state. A Ledger is owned
// by a single goroutine and does no locking.
package ledger

import (
	"github.com/google/uuid"
	"github.com/iwvelando/house-affordability/internal/affordability"
	"go.uber.org/zap"
)

// Field names an editable attribute of a debt entry.
type Field string

// Editable entry fields.
const (
	FieldCategory Field = "category"
	FieldAmount   Field = "amount"
)

// IDGenerator produces identifiers for new entries. Identifiers must be
// unique within a ledger; nothing assumes they are ordered.
type IDGenerator func() string

// Snapshot is the observable state of a ledger at one instant.
type Snapshot struct {
	Salary    string                    `json:"salary" yaml:"salary"`
	Entries   []affordability.DebtEntry `json:"entries" yaml:"entries"`
	TotalDebt float64                   `json:"totalDebt" yaml:"totalDebt"`
	Result    affordability.Result      `json:"result" yaml:"result"`
}

// Ledger is the state container behind the calculator.
type Ledger struct {
	logger      *zap.Logger
	newID       IDGenerator
	salary      string
	entries     []affordability.DebtEntry
	result      affordability.Result
	subscribers []*subscriber
}

type subscriber struct {
	notify func(Snapshot)
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithLogger attaches a logger for debug tracing of mutations.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Ledger) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithIDGenerator replaces the default UUID generator.
func WithIDGenerator(gen IDGenerator) Option {
	return func(l *Ledger) {
		if gen != nil {
			l.newID = gen
		}
	}
}

// New creates an empty ledger whose result is the pending sentinel.
func New(opts ...Option) *Ledger {
	l := &Ledger{
		logger: zap.NewNop(),
		newID:  uuid.NewString,
		result: affordability.PendingResult,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// SetSalary replaces the monthly salary text.
func (l *Ledger) SetSalary(text string) {
	l.salary = text
	l.recompute("ledger.SetSalary")
}

// AddEntry appends a new entry with the default category and no amount.
func (l *Ledger) AddEntry() affordability.DebtEntry {
	entry := affordability.DebtEntry{
		ID:       l.uniqueID(),
		Category: affordability.DefaultCategory,
	}
	l.entries = append(l.entries, entry)
	l.recompute("ledger.AddEntry")
	return entry
}

// Draft carries preset values for an entry that is about to be added.
type Draft struct {
	Category   affordability.Category
	AmountText string
}

// Append adds an entry and then applies the draft values through the regular
// update path, exactly as interactive input would.
func (l *Ledger) Append(d Draft) affordability.DebtEntry {
	entry := l.AddEntry()
	if d.Category != "" {
		l.UpdateCategory(entry.ID, d.Category)
	}
	if d.AmountText != "" {
		l.UpdateAmount(entry.ID, d.AmountText)
	}
	stored, _ := l.Entry(entry.ID)
	return stored
}

// RemoveEntry deletes the entry with the given id. Unknown ids are ignored.
func (l *Ledger) RemoveEntry(id string) {
	if i := l.indexOf(id); i >= 0 {
		l.entries = append(l.entries[:i:i], l.entries[i+1:]...)
	} else {
		l.logger.Debug("remove ignored for unknown entry",
			zap.String("op", "ledger.RemoveEntry"),
			zap.String("id", id),
		)
	}
	l.recompute("ledger.RemoveEntry")
}

// UpdateEntry sets one field of the entry with the given id. Unknown ids and
// fields, and categories outside the closed set, leave the ledger unchanged.
func (l *Ledger) UpdateEntry(id string, field Field, value string) {
	op := "ledger.UpdateEntry"

	i := l.indexOf(id)
	switch {
	case i < 0:
		l.logger.Debug("update ignored for unknown entry",
			zap.String("op", op),
			zap.String("id", id),
		)
	case field == FieldAmount:
		l.entries[i].AmountText = value
	case field == FieldCategory:
		category := affordability.Category(value)
		if !category.Valid() {
			l.logger.Debug("update ignored for unknown category",
				zap.String("op", op),
				zap.String("id", id),
				zap.String("category", value),
			)
			break
		}
		l.entries[i].Category = category
	default:
		l.logger.Debug("update ignored for unknown field",
			zap.String("op", op),
			zap.String("field", string(field)),
		)
	}
	l.recompute(op)
}

// UpdateCategory sets the category of the entry with the given id.
func (l *Ledger) UpdateCategory(id string, category affordability.Category) {
	l.UpdateEntry(id, FieldCategory, string(category))
}

// UpdateAmount sets the raw amount text of the entry with the given id.
func (l *Ledger) UpdateAmount(id string, text string) {
	l.UpdateEntry(id, FieldAmount, text)
}

// ClearAll empties the salary and removes every entry.
func (l *Ledger) ClearAll() {
	l.salary = ""
	l.entries = nil
	l.recompute("ledger.ClearAll")
}

// Salary returns the current salary text.
func (l *Ledger) Salary() string {
	return l.salary
}

// Entries returns a copy of the entries in insertion order.
func (l *Ledger) Entries() []affordability.DebtEntry {
	return append([]affordability.DebtEntry(nil), l.entries...)
}

// Entry looks up an entry by id.
func (l *Ledger) Entry(id string) (affordability.DebtEntry, bool) {
	if i := l.indexOf(id); i >= 0 {
		return l.entries[i], true
	}
	return affordability.DebtEntry{}, false
}

// Len returns the number of entries.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// TotalDebt returns the sum of the parsed entry amounts.
func (l *Ledger) TotalDebt() float64 {
	return affordability.TotalDebt(l.entries)
}

// Result returns the result of the last recompute.
func (l *Ledger) Result() affordability.Result {
	return l.result
}

// Snapshot captures the current state for rendering.
func (l *Ledger) Snapshot() Snapshot {
	entries := l.Entries()
	if entries == nil {
		entries = []affordability.DebtEntry{}
	}
	return Snapshot{
		Salary:    l.salary,
		Entries:   entries,
		TotalDebt: l.TotalDebt(),
		Result:    l.result,
	}
}

// Subscribe registers fn to be called after every recompute, in
// subscription order. The returned function removes the subscription.
func (l *Ledger) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	sub := &subscriber{notify: fn}
	l.subscribers = append(l.subscribers, sub)

	return func() {
		for i, s := range l.subscribers {
			if s == sub {
				l.subscribers = append(l.subscribers[:i:i], l.subscribers[i+1:]...)
				return
			}
		}
	}
}

func (l *Ledger) recompute(op string) {
	l.result = affordability.Compute(l.salary, l.entries)

	l.logger.Debug("recomputed affordability",
		zap.String("op", op),
		zap.Int("entries", len(l.entries)),
		zap.Float64("dti", l.result.DebtToIncomeRatio),
		zap.String("tier", l.result.Tier.String()),
	)

	if len(l.subscribers) == 0 {
		return
	}
	snapshot := l.Snapshot()
	for _, sub := range append([]*subscriber(nil), l.subscribers...) {
		sub.notify(snapshot)
	}
}

func (l *Ledger) indexOf(id string) int {
	for i, entry := range l.entries {
		if entry.ID == id {
			return i
		}
	}
	return -1
}

// uniqueID guards against a generator handing out an id already in use.
func (l *Ledger) uniqueID() string {
	id := l.newID()
	for l.indexOf(id) >= 0 {
		id = l.newID()
	}
	return id
}
