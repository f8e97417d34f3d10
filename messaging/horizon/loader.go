package horizon

import (
	"context"

	"calcvoices/engine/library"
	"calcvoices/state/accounts"
	"github.com/sasha-s/go-deadlock"
	"github.com/stellar/go/clients/horizonclient"
	"golang.org/x/sync/errgroup"
)

type loaded struct {
	record accounts.Record
	err    error
}

// Loader fetches single accounts on demand and remembers the outcome, failures included.
type Loader struct {
	client *Client
	cache  map[library.Account]loaded
	mutex  *deadlock.Mutex
}

func NewLoader(client *Client) *Loader {
	return &Loader{
		client: client,
		cache:  make(map[library.Account]loaded),
		mutex:  &deadlock.Mutex{},
	}
}

// Load returns the record for id. Not found and transport errors are both returned as errors.
func (l *Loader) Load(id library.Account) (accounts.Record, error) {
	l.mutex.Lock()
	if hit, ok := l.cache[id]; ok {
		l.mutex.Unlock()
		return hit.record, hit.err
	}
	l.mutex.Unlock()

	rec, err := l.fetch(id)

	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.cache[id] = loaded{record: rec, err: err}
	return rec, err
}

func (l *Loader) fetch(id library.Account) (accounts.Record, error) {
	a, err := l.client.api.AccountDetail(horizonclient.AccountRequest{AccountID: id})
	if err != nil {
		if horizonclient.IsNotFoundError(err) {
			l.client.log.Debug("account %s does not exist", id)
		} else {
			l.client.log.Warn("loading account %s: %s", id, err.Error())
		}
		return accounts.Record{}, err
	}
	return l.client.Record(a), nil
}

// Warm loads ids concurrently, at most workers at a time, so that resolution mostly hits the
// cache. Individual failures are cached, not returned; only cancellation is an error.
func (l *Loader) Warm(ctx context.Context, ids []library.Account, workers int) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, _ = l.Load(id)
			return nil
		})
	}
	return g.Wait()
}
