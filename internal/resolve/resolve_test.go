package resolve

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/platleague/internal/browser"
	"github.com/sells-group/platleague/internal/model"
)

func newTestResolver(session *fakeSession, namer NameCorrector) (*Resolver, *fakeLauncher) {
	l := &fakeLauncher{session: session}
	return New(Config{}, l, namer), l
}

func TestResolve_NarrowsUntilOneWordMatches(t *testing.T) {
	s := newFakeSession()
	r, _ := newTestResolver(s, nil)

	s.pages[r.SearchURL("dark souls remastered")] = &fakeSnapshot{}
	s.pages[r.SearchURL("dark souls")] = &fakeSnapshot{items: []browser.ListItem{
		item("Dark Souls", "https://howlongtobeat.com/game/2224", "Dark Souls\nSolo --"),
	}}
	s.pages[r.SearchURL("dark")] = &fakeSnapshot{items: []browser.ListItem{
		item("Darkest Dungeon", "https://howlongtobeat.com/game/2231", "Darkest Dungeon\nMain Story 53 Hours\nCompletionist 101 Hours"),
	}}

	got := r.Resolve(context.Background(), "dark souls remastered")

	assert.Equal(t, []string{
		r.SearchURL("dark souls remastered"),
		r.SearchURL("dark souls"),
		r.SearchURL("dark"),
	}, s.opened)
	require.Len(t, got, 1)
	assert.Equal(t, "Darkest Dungeon", got[0].GameName)
	assert.InDelta(t, 101.0, got[0].Hours, 0.001)
	assert.Equal(t, 1, s.closes)
}

func TestResolve_ExhaustionReturnsEmpty(t *testing.T) {
	s := newFakeSession()
	r, _ := newTestResolver(s, nil)

	got := r.Resolve(context.Background(), "no such game")

	require.NotNil(t, got)
	assert.Empty(t, got)
	assert.Len(t, s.opened, 3)
	assert.Equal(t, 1, s.closes)
}

func TestResolve_RepeatedSpacesNarrowByWord(t *testing.T) {
	s := newFakeSession()
	r, _ := newTestResolver(s, nil)

	got := r.Resolve(context.Background(), "no   such\tgame")

	assert.Empty(t, got)
	assert.Equal(t, []string{
		r.SearchURL("no such game"),
		r.SearchURL("no such"),
		r.SearchURL("no"),
	}, s.opened)
}

func TestResolve_FirstAttemptWins(t *testing.T) {
	s := newFakeSession()
	r, _ := newTestResolver(s, nil)
	s.pages[r.SearchURL("celeste")] = &fakeSnapshot{items: []browser.ListItem{
		item("Celeste", "https://howlongtobeat.com/game/42818", "Celeste\nMain Story 8 Hours\nMain + Extras 19½ Hours"),
	}}

	got := r.Resolve(context.Background(), "  celeste ")

	require.Len(t, got, 1)
	assert.InDelta(t, 19.5, got[0].Hours, 0.001)
	assert.Equal(t, model.PlaceholderImage, got[0].ImageURL)
	assert.Len(t, s.opened, 1)
}

func TestResolve_UsesCorrectedName(t *testing.T) {
	s := newFakeSession()
	namer := new(mockNamer)
	namer.On("Correct", mock.Anything, "hollow night").Return("Hollow Knight", true)
	r, _ := newTestResolver(s, namer)
	s.pages[r.SearchURL("Hollow Knight")] = &fakeSnapshot{items: []browser.ListItem{
		item("Hollow Knight", "https://howlongtobeat.com/game/26286", "Hollow Knight\nCompletionist 63 Hours"),
	}}

	got := r.Resolve(context.Background(), "hollow night")

	require.Len(t, got, 1)
	assert.Equal(t, "Hollow Knight", got[0].GameName)
	assert.Equal(t, []string{r.SearchURL("Hollow Knight")}, s.opened)
	namer.AssertExpectations(t)
}

func TestResolve_FallsBackToOriginalQuery(t *testing.T) {
	s := newFakeSession()
	namer := new(mockNamer)
	namer.On("Correct", mock.Anything, "hades").Return("", false)
	r, _ := newTestResolver(s, namer)

	r.Resolve(context.Background(), "hades")

	assert.Equal(t, []string{r.SearchURL("hades")}, s.opened)
}

func TestResolve_DirectLinkBypass(t *testing.T) {
	s := newFakeSession()
	namer := new(mockNamer)
	r, l := newTestResolver(s, namer)

	link := "https://howlongtobeat.com/game/68151"
	s.pages[link] = &fakeSnapshot{
		text:    "Elden Ring\nMain Story\n 59½ Hours\nCompletionist\n 133 Hours",
		profile: browser.Profile{Title: "Elden Ring", ImageURL: "https://img/elden.jpg"},
	}

	got := r.Resolve(context.Background(), "  "+link+"  ")

	namer.AssertNotCalled(t, "Correct", mock.Anything, mock.Anything)
	assert.Equal(t, []string{link}, s.opened)
	assert.Equal(t, 1, l.launches)
	assert.Equal(t, 1, s.closes)
	require.Len(t, got, 1)
	assert.Equal(t, model.ResolvedGame{
		GameName: "Elden Ring",
		Hours:    133,
		ImageURL: "https://img/elden.jpg",
		URL:      link,
	}, got[0])
}

func TestResolve_DirectLinkDefaults(t *testing.T) {
	s := newFakeSession()
	r, _ := newTestResolver(s, nil)
	link := "https://howlongtobeat.com/game/1"
	s.pages[link] = &fakeSnapshot{text: "Main Story 12 Hours"}

	got := r.Resolve(context.Background(), link)

	require.Len(t, got, 1)
	assert.Equal(t, UnknownTitle, got[0].GameName)
	assert.Equal(t, model.PlaceholderImage, got[0].ImageURL)
}

func TestResolve_DirectLinkWithoutHours(t *testing.T) {
	s := newFakeSession()
	r, _ := newTestResolver(s, nil)
	link := "https://howlongtobeat.com/game/2"
	s.pages[link] = &fakeSnapshot{text: "Coming soon", profile: browser.Profile{Title: "Unreleased"}}

	got := r.Resolve(context.Background(), link)

	assert.Empty(t, got)
	assert.Equal(t, 1, s.closes)
}

func TestResolve_NavigationFailureReleasesSession(t *testing.T) {
	s := newFakeSession()
	r, _ := newTestResolver(s, nil)
	s.openErr[r.SearchURL("portal two")] = errors.New("net::ERR_NAME_NOT_RESOLVED")

	got := r.Resolve(context.Background(), "portal two")

	assert.Empty(t, got)
	assert.Len(t, s.opened, 1, "navigation failure is fatal, no narrowing")
	assert.Equal(t, 1, s.closes)
}

func TestResolve_DirectNavigationFailureReleasesSession(t *testing.T) {
	s := newFakeSession()
	r, _ := newTestResolver(s, nil)
	link := "https://howlongtobeat.com/game/3"
	s.openErr[link] = errors.New("navigation failed")

	assert.Empty(t, r.Resolve(context.Background(), link))
	assert.Equal(t, 1, s.closes)
}

func TestResolve_SettleTimeoutNarrows(t *testing.T) {
	s := newFakeSession()
	r, _ := newTestResolver(s, nil)
	s.openErr[r.SearchURL("outer wilds")] = browser.ErrSettleTimeout
	s.pages[r.SearchURL("outer")] = &fakeSnapshot{items: []browser.ListItem{
		item("Outer Wilds", "https://howlongtobeat.com/game/61015", "Outer Wilds\nCompletionist 26 Hours"),
	}}

	got := r.Resolve(context.Background(), "outer wilds")

	require.Len(t, got, 1)
	assert.Equal(t, "Outer Wilds", got[0].GameName)
	assert.Len(t, s.opened, 2)
}

func TestResolve_LaunchFailure(t *testing.T) {
	l := &fakeLauncher{err: errors.New("chrome not found")}
	r := New(Config{}, l, nil)

	got := r.Resolve(context.Background(), "celeste")

	require.NotNil(t, got)
	assert.Empty(t, got)
	assert.Equal(t, 1, l.launches)
}

func TestResolve_EmptyQuery(t *testing.T) {
	s := newFakeSession()
	r, l := newTestResolver(s, nil)

	assert.Empty(t, r.Resolve(context.Background(), "   "))
	assert.Zero(t, l.launches)
}

func TestResolve_UnreadableListIsEmptyAttempt(t *testing.T) {
	s := newFakeSession()
	r, _ := newTestResolver(s, nil)
	s.pages[r.SearchURL("a b")] = &fakeSnapshot{itemsErr: errors.New("eval failed")}

	assert.Empty(t, r.Resolve(context.Background(), "a b"))
	assert.Len(t, s.opened, 2)
}

func TestResolve_DedupAndCap(t *testing.T) {
	s := newFakeSession()
	r, _ := newTestResolver(s, nil)
	items := []browser.ListItem{
		item("Zelda", "https://howlongtobeat.com/game/1", "Zelda\nMain Story 10 Hours"),
		item("Zelda", "https://howlongtobeat.com/game/999", "Zelda\nMain Story 99 Hours"),
	}
	for _, name := range []string{"Zelda II", "Zelda III", "Zelda IV", "Zelda V", "Zelda VI"} {
		items = append(items, item(name, "https://howlongtobeat.com/game/x", name+"\nMain Story 20 Hours"))
	}
	s.pages[r.SearchURL("zelda")] = &fakeSnapshot{items: items}

	got := r.Resolve(context.Background(), "zelda")

	require.Len(t, got, 5)
	assert.Equal(t, "Zelda", got[0].GameName)
	assert.InDelta(t, 10.0, got[0].Hours, 0.001)
	assert.Equal(t, "https://howlongtobeat.com/game/1", got[0].URL)
	assert.Equal(t, "Zelda V", got[4].GameName)
}

func TestSearchURL(t *testing.T) {
	r := New(Config{BaseURL: "https://howlongtobeat.com/"}, &fakeLauncher{}, nil)
	assert.Equal(t, "https://howlongtobeat.com/?q=Ori%20%26%20the%20Blind%20Forest", r.SearchURL("Ori & the Blind Forest"))
}

func TestIsDirectLink(t *testing.T) {
	assert.True(t, IsDirectLink("https://howlongtobeat.com/game/10270"))
	assert.True(t, IsDirectLink(" howlongtobeat.com/game/10270 "))
	assert.False(t, IsDirectLink("https://howlongtobeat.com/?q=hades"))
	assert.False(t, IsDirectLink("hades"))
}
