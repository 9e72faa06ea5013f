package bot

import (
	"sync"

	"github.com/kapitalpro/invest_bot/internal/model"
)

// StateTable хранит диалоги согласования по идентификатору администратора.
// Таблицей владеет только state machine бота; обновления выполняются из
// одного обработчика за раз, поэтому блокировка защищает лишь саму мапу.
type StateTable struct {
	mu      sync.Mutex
	entries map[string]*model.Conversation
}

func NewStateTable() *StateTable {
	return &StateTable{
		entries: make(map[string]*model.Conversation),
	}
}

func (t *StateTable) Get(adminID string) (*model.Conversation, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	conv, ok := t.entries[adminID]
	return conv, ok
}

// Set безусловно вытесняет предыдущий диалог администратора.
func (t *StateTable) Set(adminID string, conv *model.Conversation) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[adminID] = conv
}

func (t *StateTable) Clear(adminID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.entries, adminID)
}
