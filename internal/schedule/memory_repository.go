package schedule

import (
	"context"
	"sync"
)

// MemoryRepository keeps availability rows in process memory. Transactions
// hold the store lock for their whole duration and commit by swapping in
// their working copy.
type MemoryRepository struct {
	mu    sync.Mutex
	table memoryTable
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) CountForDate(ctx context.Context, date string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.table.count(date), nil
}

func (r *MemoryRepository) InsertRow(ctx context.Context, doctor Doctor, date, slot, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.table.insert(doctor, date, slot, status)
	return nil
}

func (r *MemoryRepository) QueryByDate(ctx context.Context, date string) ([]AvailabilitySlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.table.query(date), nil
}

func (r *MemoryRepository) UpdateStatus(ctx context.Context, doctor, date, slot, status string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.table.update(doctor, date, slot, status), nil
}

func (r *MemoryRepository) LockDate(ctx context.Context, date string) error {
	return nil
}

func (r *MemoryRepository) InTx(ctx context.Context, fn func(ctx context.Context, tx Repository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx := &memoryTx{table: r.table.clone()}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	r.table = tx.table
	return nil
}

type memoryTx struct {
	table memoryTable
}

func (t *memoryTx) CountForDate(ctx context.Context, date string) (int, error) {
	return t.table.count(date), nil
}

func (t *memoryTx) InsertRow(ctx context.Context, doctor Doctor, date, slot, status string) error {
	t.table.insert(doctor, date, slot, status)
	return nil
}

func (t *memoryTx) QueryByDate(ctx context.Context, date string) ([]AvailabilitySlot, error) {
	return t.table.query(date), nil
}

func (t *memoryTx) UpdateStatus(ctx context.Context, doctor, date, slot, status string) (int64, error) {
	return t.table.update(doctor, date, slot, status), nil
}

func (t *memoryTx) LockDate(ctx context.Context, date string) error {
	return nil
}

func (t *memoryTx) InTx(ctx context.Context, fn func(ctx context.Context, tx Repository) error) error {
	return fn(ctx, t)
}

type memoryTable struct {
	rows   []AvailabilitySlot
	nextID int64
}

func (m *memoryTable) clone() memoryTable {
	return memoryTable{
		rows:   append([]AvailabilitySlot(nil), m.rows...),
		nextID: m.nextID,
	}
}

func (m *memoryTable) count(date string) int {
	n := 0
	for _, row := range m.rows {
		if row.Date == date {
			n++
		}
	}
	return n
}

func (m *memoryTable) find(doctor, date, slot string) int {
	for i, row := range m.rows {
		if row.Name == doctor && row.Date == date && row.TimeSlot == slot {
			return i
		}
	}
	return -1
}

func (m *memoryTable) insert(doctor Doctor, date, slot, status string) {
	if m.find(doctor.Name, date, slot) >= 0 {
		return
	}
	m.nextID++
	m.rows = append(m.rows, AvailabilitySlot{
		ID:       m.nextID,
		Doctor:   doctor,
		Date:     date,
		TimeSlot: slot,
		Status:   status,
	})
}

func (m *memoryTable) query(date string) []AvailabilitySlot {
	var out []AvailabilitySlot
	for _, row := range m.rows {
		if row.Date == date {
			out = append(out, row)
		}
	}
	return out
}

func (m *memoryTable) update(doctor, date, slot, status string) int64 {
	i := m.find(doctor, date, slot)
	if i < 0 {
		return 0
	}
	m.rows[i].Status = status
	return 1
}
