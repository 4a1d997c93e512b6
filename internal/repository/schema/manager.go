package schema

import (
	"sync"

	"infograph-be/internal/model"

	"gorm.io/gorm"
)

// Manager owns table creation. DDL is idempotent and safe under concurrent
// first use: existence is tracked per table, guarded by a per-table lock,
// and re-checked after the lock is acquired.
type Manager struct {
	db *gorm.DB

	mu         sync.Mutex
	tableLocks map[string]*sync.Mutex
	created    map[string]bool
}

func NewManager(db *gorm.DB) *Manager {
	return &Manager{
		db:         db,
		tableLocks: make(map[string]*sync.Mutex),
		created:    make(map[string]bool),
	}
}

func (m *Manager) tableLock(tableName string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	lock, ok := m.tableLocks[tableName]
	if !ok {
		lock = &sync.Mutex{}
		m.tableLocks[tableName] = lock
	}
	return lock
}

func (m *Manager) isCreated(tableName string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.created[tableName]
}

func (m *Manager) markCreated(tableName string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created[tableName] = true
}

// EnsureTable migrates the table for prototype once per process.
func (m *Manager) EnsureTable(tableName string, prototype interface{}) error {
	if m.isCreated(tableName) {
		return nil
	}
	lock := m.tableLock(tableName)
	lock.Lock()
	defer lock.Unlock()
	if m.isCreated(tableName) {
		return nil
	}
	if err := m.db.AutoMigrate(prototype); err != nil {
		return err
	}
	m.markCreated(tableName)
	return nil
}

// EnsureAll creates every table this service persists to.
func (m *Manager) EnsureAll() error {
	tables := []struct {
		name      string
		prototype interface{}
	}{
		{model.User{}.TableName(), &model.User{}},
		{model.ResearchSession{}.TableName(), &model.ResearchSession{}},
		{model.Source{}.TableName(), &model.Source{}},
		{model.Message{}.TableName(), &model.Message{}},
		{model.Infographic{}.TableName(), &model.Infographic{}},
	}
	for _, t := range tables {
		if err := m.EnsureTable(t.name, t.prototype); err != nil {
			return err
		}
	}
	return nil
}
