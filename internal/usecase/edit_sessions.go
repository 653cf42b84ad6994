package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/DRSN-tech/catalog-editor/internal/domain"
	"github.com/DRSN-tech/catalog-editor/pkg/e"
	"github.com/DRSN-tech/catalog-editor/pkg/logger"
	"github.com/google/uuid"
)

// EditSession — открытое редактирование, доступное по идентификатору сессии.
type EditSession struct {
	ID        string
	Workflow  *EditWorkflow
	lastSeen  atomic.Int64 // unix nano последнего обращения
	refreshed atomic.Bool
}

// Refreshed сообщает, уведомлены ли потребители списка товаров после сохранения.
func (s *EditSession) Refreshed() bool {
	return s.refreshed.Load()
}

func (s *EditSession) touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

// EditSessions хранит открытые редактирования шлюза.
// Каждое редактирование принадлежит своей сессии; после сохранения или отмены сессия удаляется.
// Сессии без обращений дольше idleTTL отменяются фоновой очисткой. idleTTL 0 отключает очистку.
type EditSessions struct {
	mu       sync.RWMutex
	sessions map[string]*EditSession
	api      CatalogAPI
	refresh  *RefreshNotifier
	logger   logger.Logger
	idleTTL  time.Duration
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewEditSessions(api CatalogAPI, refresh *RefreshNotifier, logger logger.Logger, idleTTL time.Duration) *EditSessions {
	return &EditSessions{
		sessions: make(map[string]*EditSession),
		api:      api,
		refresh:  refresh,
		logger:   logger,
		idleTTL:  idleTTL,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
}

// Open создаёт сессию редактирования для снимка товара.
func (s *EditSessions) Open(ctx context.Context, product *domain.Product) (*EditSession, error) {
	const op = "EditSessions.Open"

	if product == nil || product.ID <= 0 {
		return nil, e.Wrap(op, e.ErrInvalidProductID)
	}

	session := &EditSession{ID: uuid.NewString()}
	session.touch(s.now())
	callbacks := Callbacks{
		OnSave: func(ctx context.Context) {
			if s.refresh != nil {
				session.refreshed.Store(s.refresh.ProductChanged(ctx, product.ID, session.Workflow.State().Draft()))
			}
		},
		OnClose: func(ctx context.Context) {
			s.remove(session.ID)
		},
	}

	// Сообщение об итоге отправки шлюз возвращает в теле ответа, здесь оно только логируется
	ack := AcknowledgerFunc(func(_ context.Context, message string) {
		s.logger.Infof("edit session %s: %s", session.ID, message)
	})

	session.Workflow = NewEditWorkflow(ctx, product, callbacks, s.api, ack, s.logger)

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	s.logger.Debugf("edit session %s opened for product %d", session.ID, product.ID)

	return session, nil
}

func (s *EditSessions) Get(id string) (*EditSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, e.Wrap(id, e.ErrSessionNotFound)
	}
	session.touch(s.now())

	return session, nil
}

// Cancel закрывает редактирование без сохранения и удаляет сессию.
func (s *EditSessions) Cancel(id string) error {
	session, err := s.Get(id)
	if err != nil {
		return err
	}

	session.Workflow.Cancel()
	s.remove(id)

	return nil
}

func (s *EditSessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}

func (s *EditSessions) remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
}

// EvictIdle отменяет и удаляет сессии, к которым не обращались дольше idleTTL на момент now.
// Возвращает число удалённых сессий.
func (s *EditSessions) EvictIdle(now time.Time) int {
	if s.idleTTL <= 0 {
		return 0
	}

	deadline := now.Add(-s.idleTTL).UnixNano()

	s.mu.Lock()
	expired := make([]*EditSession, 0)
	for id, session := range s.sessions {
		// Отправка в процессе: сессию удалит OnClose или следующий проход
		if session.Workflow.busy.Load() {
			continue
		}
		if session.lastSeen.Load() < deadline {
			expired = append(expired, session)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, session := range expired {
		session.Workflow.Cancel()
		s.logger.Infof("edit session %s for product %d expired", session.ID, session.Workflow.ProductID())
	}

	return len(expired)
}

// Start запускает фоновую очистку простаивающих сессий с периодом interval.
func (s *EditSessions) Start(interval time.Duration) {
	if s.idleTTL <= 0 || interval <= 0 {
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.EvictIdle(s.now())
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop останавливает фоновую очистку.
func (s *EditSessions) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
	s.wg.Wait()
}
