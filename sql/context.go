package sql

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// Context carries the per-query state: cancellation, session variables
// and a structured logger. It
// embeds context.Context the way dolthub/go-mysql-server's sql.Context does, so it
// composes with anything that takes a standard context.
type Context struct {
	context.Context

	session   *Session
	log       *logrus.Entry
	canceled  int32
	statistics *Statistics
}

// Statistics accumulates execution-time counters, notably
// unreadable_data_blobs (a read failure on one blob is counted and
// skipped rather than failing the query).
type Statistics struct {
	mu                  sync.Mutex
	UnreadableDataBlobs int64
	MorselsProduced     int64
	RowsProduced        int64
}

func (s *Statistics) IncUnreadableBlobs() {
	s.mu.Lock()
	s.UnreadableDataBlobs++
	s.mu.Unlock()
}

func (s *Statistics) AddMorsel(rows int64) {
	s.mu.Lock()
	s.MorselsProduced++
	s.RowsProduced += rows
	s.mu.Unlock()
}

// Session holds the `@name` user variables and `@@name` session/system
// variables of BindingContext.connection.variables.
type Session struct {
	mu          sync.RWMutex
	userVars    map[string]value
	sessionVars map[string]value
}

type value struct {
	typ Type
	val interface{}
}

// NewSession returns an empty Session.
func NewSession() *Session {
	return &Session{
		userVars:    make(map[string]value),
		sessionVars: make(map[string]value),
	}
}

// SetUserVariable sets `@name`.
func (s *Session) SetUserVariable(name string, typ Type, v interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userVars[name] = value{typ: typ, val: v}
}

// GetUserVariable returns `@name`, or (Null, nil) if unset.
func (s *Session) GetUserVariable(name string) (Type, interface{}) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.userVars[name]; ok {
		return v.typ, v.val
	}
	return Null, nil
}

// SessionVariableNames returns every `@@name` currently set, paired with
// its value rendered as a string, both ordered by name — used by
// SHOW VARIABLES.
func (s *Session) SessionVariableNames() (names []string, values []string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for name := range s.sessionVars {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		values = append(values, fmt.Sprint(s.sessionVars[name].val))
	}
	return names, values
}

// SetSessionVariable sets `@@name`.
func (s *Session) SetSessionVariable(name string, typ Type, v interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessionVars[name] = value{typ: typ, val: v}
}

// GetSessionVariable returns `@@name` and whether it was found.
func (s *Session) GetSessionVariable(name string) (Type, interface{}, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.sessionVars[name]
	return v.typ, v.val, ok
}

// NewEmptyContext returns a Context with a fresh Session, a background
// context.Context, and a default logger — the zero-configuration
// construction path used pervasively in tests, mirroring dolthub/go-mysql-server's
// sql.NewEmptyContext.
func NewEmptyContext() *Context {
	return NewContext(context.Background(), NewSession(), logrus.NewEntry(logrus.StandardLogger()))
}

// NewContext builds a Context over an existing standard context, session
// and logger.
func NewContext(ctx context.Context, session *Session, log *logrus.Entry) *Context {
	return &Context{Context: ctx, session: session, log: log, statistics: &Statistics{}}
}

// Session returns the query's session variable store.
func (c *Context) Session() *Session { return c.session }

// Log returns the structured logger for this query.
func (c *Context) Log() *logrus.Entry { return c.log }

// Statistics returns the execution counters for this query.
func (c *Context) Statistics() *Statistics { return c.statistics }

// Cancel marks the query canceled. Operators consult Canceled at morsel
// boundaries per cooperative cancellation model.
func (c *Context) Cancel() { atomic.StoreInt32(&c.canceled, 1) }

// Canceled reports whether Cancel has been called.
func (c *Context) Canceled() bool { return atomic.LoadInt32(&c.canceled) == 1 }

// WithLog returns a copy of the Context using a different logger, e.g. to
// attach per-operator fields.
func (c *Context) WithLog(log *logrus.Entry) *Context {
	return &Context{Context: c.Context, session: c.session, log: log, statistics: c.statistics, canceled: c.canceled}
}
