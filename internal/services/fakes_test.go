package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/pr-poehali-dev/ai-programmer-disol/internal/domain/chat"
	"github.com/pr-poehali-dev/ai-programmer-disol/internal/domain/project"
	"github.com/pr-poehali-dev/ai-programmer-disol/internal/llm"
	disol_errors "github.com/pr-poehali-dev/ai-programmer-disol/pkg/errors"

	"github.com/google/uuid"
)

// memoryStore backs the fake repositories. Timestamps advance one
// millisecond per insert so ordering is deterministic.
type memoryStore struct {
	mu       sync.Mutex
	clock    time.Time
	sessions map[uuid.UUID]chat.Session
	messages []chat.Message
	projects []project.Project
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		clock:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		sessions: make(map[uuid.UUID]chat.Session),
	}
}

func (m *memoryStore) tick() time.Time {
	m.clock = m.clock.Add(time.Millisecond)
	return m.clock
}

type fakeSessionRepo struct{ store *memoryStore }

func (r *fakeSessionRepo) Create(ctx context.Context, s *chat.Session) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	now := r.store.tick()
	s.CreatedAt, s.UpdatedAt = now, now
	r.store.sessions[s.ID] = *s
	return nil
}

func (r *fakeSessionRepo) GetUserSessions(ctx context.Context, userID string) ([]chat.Session, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []chat.Session
	for _, s := range r.store.sessions {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

type fakeMessageRepo struct{ store *memoryStore }

func (r *fakeMessageRepo) Create(ctx context.Context, msg *chat.Message) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.sessions[msg.SessionID]; !ok {
		return disol_errors.ErrNotFound
	}
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	msg.CreatedAt = r.store.tick()
	r.store.messages = append(r.store.messages, *msg)
	return nil
}

func (r *fakeMessageRepo) GetSessionMessages(ctx context.Context, sessionID uuid.UUID) ([]chat.Message, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []chat.Message
	for _, msg := range r.store.messages {
		if msg.SessionID == sessionID {
			out = append(out, msg)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeMessageRepo) GetRecentMessages(ctx context.Context, sessionID uuid.UUID, limit int) ([]chat.Message, error) {
	all, _ := r.GetSessionMessages(ctx, sessionID)
	out := make([]chat.Message, 0, limit)
	for i := len(all) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, all[i])
	}
	return out, nil
}

type fakeProjectRepo struct {
	store *memoryStore
	err   error
}

func (r *fakeProjectRepo) Create(ctx context.Context, p *project.Project) error {
	if r.err != nil {
		return r.err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = r.store.tick()
	r.store.projects = append(r.store.projects, *p)
	return nil
}

func (r *fakeProjectRepo) GetUserProjects(ctx context.Context, userID, projectType string) ([]project.Project, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []project.Project
	for i := len(r.store.projects) - 1; i >= 0; i-- {
		p := r.store.projects[i]
		if p.UserID == userID && (projectType == "" || p.Type == projectType) {
			out = append(out, p)
		}
	}
	return out, nil
}

// fakeProvider records every call and answers with reply or err.
type fakeProvider struct {
	reply string
	err   error
	calls []fakeCall
}

type fakeCall struct {
	history []llm.Message
	options llm.Options
}

func (p *fakeProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	cp := append([]llm.Message(nil), history...)
	p.calls = append(p.calls, fakeCall{history: cp, options: llm.Apply(llm.Options{}, opts...)})
	if p.err != nil {
		return "", p.err
	}
	return p.reply, nil
}

type fakeImages struct {
	image []byte
	err   error
	calls int
}

func (f *fakeImages) TextToImage(ctx context.Context, prompt string) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.image, nil
}

type fakeObjectStore struct {
	configErr error
	putErr    error
	objects   map[string][]byte
	types     map[string]string
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeObjectStore) Configured() error { return f.configErr }

func (f *fakeObjectStore) PutObject(ctx context.Context, key string, body []byte, contentType string) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.objects[key] = body
	f.types[key] = contentType
	return nil
}

func (f *fakeObjectStore) FileURL(key string) string {
	return "https://cdn.example/projects/AK/bucket/" + key
}

var errBoom = errors.New("boom")
