package resolve

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sells-group/platleague/internal/browser"
)

type fakeSnapshot struct {
	items    []browser.ListItem
	itemsErr error
	text     string
	profile  browser.Profile
}

func (f *fakeSnapshot) ListItemsWithLinks(context.Context) ([]browser.ListItem, error) {
	return f.items, f.itemsErr
}

func (f *fakeSnapshot) VisibleText(context.Context) (string, error) { return f.text, nil }

func (f *fakeSnapshot) Profile(context.Context) (browser.Profile, error) { return f.profile, nil }

type fakeSession struct {
	pages   map[string]*fakeSnapshot
	openErr map[string]error
	opened  []string
	closes  int
}

func newFakeSession() *fakeSession {
	return &fakeSession{pages: map[string]*fakeSnapshot{}, openErr: map[string]error{}}
}

func (s *fakeSession) Open(_ context.Context, u string, _ browser.ReadyCondition) (browser.Snapshot, error) {
	s.opened = append(s.opened, u)
	if err := s.openErr[u]; err != nil {
		return nil, err
	}
	if p, ok := s.pages[u]; ok {
		return p, nil
	}
	return &fakeSnapshot{}, nil
}

func (s *fakeSession) Close() error {
	s.closes++
	return nil
}

type fakeLauncher struct {
	session  *fakeSession
	err      error
	launches int
}

func (l *fakeLauncher) Launch(context.Context) (browser.Session, error) {
	l.launches++
	if l.err != nil {
		return nil, l.err
	}
	return l.session, nil
}

type mockNamer struct {
	mock.Mock
}

func (m *mockNamer) Correct(ctx context.Context, query string) (string, bool) {
	args := m.Called(ctx, query)
	return args.String(0), args.Bool(1)
}

func item(title, href, text string) browser.ListItem {
	return browser.ListItem{LinkTitle: title, Href: href, Text: text}
}
