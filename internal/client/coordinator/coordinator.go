// Package coordinator orchestrates session bootstrap and data
// synchronization: it reads the cached session, fetches all dependent
// resources concurrently, and exposes one consistent snapshot to every
// consumer.
package coordinator

import (
	"context"
	"sync"

	"github.com/ecosync/ecosync-cli/internal/client/api"
	"github.com/ecosync/ecosync-cli/internal/client/models"
	"github.com/ecosync/ecosync-cli/internal/client/session"
	"github.com/ecosync/ecosync-cli/internal/logging"
)

// listLimit is how many posts / lost items a sync pulls.
const listLimit = 25

// Snapshot is the atomic bundle exposed to views. It is replaced as one unit
// after all fetches settle, so consumers never observe a torn combination of
// old posts with new credits.
type Snapshot struct {
	User      *models.Session
	Posts     []models.Post
	LostItems []models.LostItem
	Credits   int
	Settings  models.Settings
	Loading   bool
}

// Coordinator is the single writer of the in-memory snapshot. Bootstrap and
// Refresh share one synchronization path; a fetch failure degrades the
// affected resource to its empty default instead of aborting the sync.
type Coordinator struct {
	api      api.Client
	sessions session.Repository
	log      logging.Logger

	mu        sync.Mutex
	snap      Snapshot
	gen       uint64
	closed    bool
	listeners map[int]func(Snapshot)
	nextID    int
}

func New(client api.Client, sessions session.Repository, log logging.Logger) *Coordinator {
	return &Coordinator{
		api:       client,
		sessions:  sessions,
		log:       log,
		snap:      Snapshot{Loading: true, Posts: []models.Post{}, LostItems: []models.LostItem{}},
		listeners: map[int]func(Snapshot){},
	}
}

// Snapshot returns the current snapshot. The session is copied; slices are
// shared and must be treated as read-only by consumers.
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap.clone()
}

// OnChange registers a listener invoked with every published snapshot. The
// returned func unsubscribes it.
func (c *Coordinator) OnChange(fn func(Snapshot)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners, id)
	}
}

// Bootstrap performs the initial synchronization. Loading transitions to
// false once the attempt completes, whether or not individual fetches
// succeeded.
func (c *Coordinator) Bootstrap(ctx context.Context) {
	c.sync(ctx)
}

// Refresh repeats the bootstrap sequence. Callers trigger it after any
// mutation (upload, redeem, settings save, moderation action); there is no
// automatic re-fetch.
func (c *Coordinator) Refresh(ctx context.Context) {
	c.sync(ctx)
}

// Close detaches the coordinator: snapshots from syncs still in flight are
// discarded rather than applied.
func (c *Coordinator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *Coordinator) sync(ctx context.Context) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.gen++
	gen := c.gen
	c.snap.Loading = true
	loading := c.snap.clone()
	c.mu.Unlock()
	c.notify(loading)

	sess, err := c.sessions.Read(ctx)
	if err != nil {
		c.log.Warn(ctx, "session read failed", "error", err)
		sess = nil
	}

	next := Snapshot{
		Posts:     []models.Post{},
		LostItems: []models.LostItem{},
	}

	if sess != nil {
		next = c.fetchAll(ctx, sess)
	}

	c.mu.Lock()
	if c.closed || gen != c.gen {
		// A newer sync started (or the coordinator was torn down) while this
		// one was in flight; its result is stale.
		c.mu.Unlock()
		return
	}
	c.snap = next
	published := next.clone()
	c.mu.Unlock()
	c.notify(published)
}

// fetchAll issues the four resource fetches concurrently and merges the
// results. Each failure is logged and replaced with the resource's empty
// default; partial failure is tolerated, never fatal.
func (c *Coordinator) fetchAll(ctx context.Context, sess *models.Session) Snapshot {
	var (
		wg       sync.WaitGroup
		posts    []models.Post
		items    []models.LostItem
		credits  int
		settings models.Settings
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		p, err := c.api.ListPosts(ctx, listLimit)
		if err != nil {
			c.log.Warn(ctx, "posts fetch failed", "error", err)
			return
		}
		posts = p
	}()
	go func() {
		defer wg.Done()
		li, err := c.api.ListLostItems(ctx, listLimit)
		if err != nil {
			c.log.Warn(ctx, "lost items fetch failed", "error", err)
			return
		}
		items = li
	}()
	go func() {
		defer wg.Done()
		n, err := c.api.GetCredits(ctx, sess.UID)
		if err != nil {
			c.log.Warn(ctx, "credits fetch failed", "error", err)
			return
		}
		credits = n
	}()
	go func() {
		defer wg.Done()
		s, err := c.api.GetSettings(ctx, sess.UID)
		if err != nil {
			c.log.Warn(ctx, "settings fetch failed", "error", err)
			return
		}
		settings = *s
	}()
	wg.Wait()

	if posts == nil {
		posts = []models.Post{}
	}
	if items == nil {
		items = []models.LostItem{}
	}

	user := sess.Clone()

	// The server is authoritative for the username: a non-empty fetched
	// value overwrites the cached session. This is the only case where
	// remote data writes back into local session state. The write goes to
	// a freshly read session, not the copy taken at sync start; a login or
	// logout that landed while the fetches were in flight must not lose
	// its token.
	if settings.Username != "" && settings.Username != user.Username {
		user.Username = settings.Username
		fresh, err := c.sessions.Read(ctx)
		switch {
		case err != nil:
			c.log.Warn(ctx, "session re-read failed", "error", err)
		case fresh == nil:
			// signed out mid-sync; nothing to update
		default:
			fresh.Username = settings.Username
			if err := c.sessions.Write(ctx, fresh); err != nil {
				c.log.Warn(ctx, "session username sync failed", "error", err)
			}
		}
	}

	return Snapshot{
		User:      user,
		Posts:     posts,
		LostItems: items,
		Credits:   credits,
		Settings:  settings,
	}
}

func (c *Coordinator) notify(snap Snapshot) {
	c.mu.Lock()
	fns := make([]func(Snapshot), 0, len(c.listeners))
	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

func (s Snapshot) clone() Snapshot {
	s.User = s.User.Clone()
	return s
}
