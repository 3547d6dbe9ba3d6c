package services

import (
	"context"
	"errors"
	"sync"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/viniapp/viniapp-node/internal/core/domain"
	"github.com/viniapp/viniapp-node/internal/db"
	"github.com/viniapp/viniapp-node/internal/repositories"
)

var errFakeStorage = errors.New("fake storage does not run sql")

// fakeRepo keeps viniapps in memory. It ignores the connection it receives.
type fakeRepo struct {
	mu       sync.Mutex
	apps     map[int64]domain.Viniapp
	nextID   int64
	history  map[int64][]domain.ViniappStatus
	getErr   error
	existErr error
	// statusErr fails UpdateStatus for the given statuses
	statusErr map[domain.ViniappStatus]error
	// afterSlugCheck runs after every ExistsBySlug lookup, outside the lock
	afterSlugCheck func(slug string, taken bool)
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{apps: map[int64]domain.Viniapp{}, history: map[int64][]domain.ViniappStatus{}}
}

func (r *fakeRepo) Save(_ context.Context, _ db.Querier, app *domain.Viniapp) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.apps {
		if stored.TransactionHash == app.TransactionHash {
			return 0, repositories.ErrDuplicatedTransactionHash
		}
		if stored.Slug == app.Slug {
			return 0, repositories.ErrDuplicatedSlug
		}
	}
	r.nextID++
	app.ID = r.nextID
	r.apps[app.ID] = *app
	return app.ID, nil
}

func (r *fakeRepo) GetByID(_ context.Context, _ db.Querier, id int64) (*domain.Viniapp, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	app, ok := r.apps[id]
	if !ok {
		return nil, repositories.ErrViniappDoesNotExist
	}
	return &app, nil
}

func (r *fakeRepo) ExistsByTransactionHash(_ context.Context, _ db.Querier, transactionHash string) (bool, error) {
	return r.exists(func(app domain.Viniapp) bool { return app.TransactionHash == transactionHash })
}

func (r *fakeRepo) ExistsBySlug(_ context.Context, _ db.Querier, slug string) (bool, error) {
	taken, err := r.exists(func(app domain.Viniapp) bool { return app.Slug == slug })
	if err == nil && r.afterSlugCheck != nil {
		r.afterSlugCheck(slug, taken)
	}
	return taken, err
}

func (r *fakeRepo) exists(match func(domain.Viniapp) bool) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.existErr != nil {
		return false, r.existErr
	}
	for _, app := range r.apps {
		if match(app) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) UpdateWallet(_ context.Context, _ db.Querier, id int64, address, encryptedPrivateKey, signer string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[id]
	if !ok {
		return repositories.ErrViniappDoesNotExist
	}
	app.WalletAddress = &address
	app.WalletPrivateKey = &encryptedPrivateKey
	app.WalletSigner = &signer
	r.apps[id] = app
	return nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, _ db.Querier, id int64, status domain.ViniappStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.statusErr[status]; err != nil {
		return err
	}
	app, ok := r.apps[id]
	if !ok {
		return repositories.ErrViniappDoesNotExist
	}
	app.Status = status
	r.apps[id] = app
	r.history[id] = append(r.history[id], status)
	return nil
}

func (r *fakeRepo) seed(app domain.Viniapp) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	app.ID = r.nextID
	r.apps[app.ID] = app
	return app.ID
}

func (r *fakeRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.apps)
}

func (r *fakeRepo) statusHistory(id int64) []domain.ViniappStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.ViniappStatus(nil), r.history[id]...)
}

func (r *fakeRepo) snapshot() (map[int64]domain.Viniapp, int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	apps := make(map[int64]domain.Viniapp, len(r.apps))
	for k, v := range r.apps {
		apps[k] = v
	}
	return apps, r.nextID
}

func (r *fakeRepo) restore(apps map[int64]domain.Viniapp, nextID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.apps = apps
	r.nextID = nextID
}

// fakeStorage rolls the fakeRepo back when a transaction function fails
type fakeStorage struct {
	repo *fakeRepo
}

type fakeTx struct {
	pgx.Tx
}

func (s *fakeStorage) BeginFunc(_ context.Context, f func(pgx.Tx) error) error {
	apps, nextID := s.repo.snapshot()
	if err := f(fakeTx{}); err != nil {
		s.repo.restore(apps, nextID)
		return err
	}
	return nil
}

func (s *fakeStorage) Exec(_ context.Context, _ string, _ ...interface{}) (pgconn.CommandTag, error) {
	return nil, errFakeStorage
}

func (s *fakeStorage) QueryRow(_ context.Context, _ string, _ ...interface{}) pgx.Row {
	return nil
}

type scheduledStep struct {
	ViniappID int64
	Step      domain.PipelineStep
}

// queueScheduler keeps scheduled steps so tests can run them inline
type queueScheduler struct {
	mu    sync.Mutex
	steps []scheduledStep
	err   error
}

func (q *queueScheduler) Schedule(_ context.Context, viniappID int64, step domain.PipelineStep) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.steps = append(q.steps, scheduledStep{ViniappID: viniappID, Step: step})
	return nil
}

func (q *queueScheduler) pop() (scheduledStep, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.steps) == 0 {
		return scheduledStep{}, false
	}
	s := q.steps[0]
	q.steps = q.steps[1:]
	return s, true
}

func (q *queueScheduler) scheduled() []scheduledStep {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]scheduledStep(nil), q.steps...)
}
