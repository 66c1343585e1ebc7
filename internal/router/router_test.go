package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/currimap/internal/screen"
)

// fakeScreen records how the router drives it.
type fakeScreen struct {
	name  string
	inits int
	got   []tea.Msg
}

func (f *fakeScreen) Init() tea.Cmd {
	f.inits++
	return nil
}

func (f *fakeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	f.got = append(f.got, msg)
	return f, nil
}

func (f *fakeScreen) View(int, int) string { return f.name }
func (f *fakeScreen) Title() string        { return f.name }

// titles lists the stack bottom to top.
func titles(r *Router) []string {
	var out []string
	for _, s := range r.stack {
		out = append(out, s.Title())
	}
	return out
}

func TestNavigationMessages(t *testing.T) {
	home := &fakeScreen{name: "home"}
	tests := []struct {
		name string
		msgs func() []tea.Msg
		want []string
	}{
		{
			name: "push",
			msgs: func() []tea.Msg { return []tea.Msg{PushScreenMsg{Screen: &fakeScreen{name: "map"}}} },
			want: []string{"home", "map"},
		},
		{
			name: "push then pop",
			msgs: func() []tea.Msg {
				return []tea.Msg{PushScreenMsg{Screen: &fakeScreen{name: "map"}}, PopScreenMsg{}}
			},
			want: []string{"home"},
		},
		{
			name: "pop at bottom",
			msgs: func() []tea.Msg { return []tea.Msg{PopScreenMsg{}, PopScreenMsg{}} },
			want: []string{"home"},
		},
		{
			name: "replace keeps depth",
			msgs: func() []tea.Msg {
				return []tea.Msg{
					PushScreenMsg{Screen: &fakeScreen{name: "map"}},
					PushScreenMsg{Screen: &fakeScreen{name: "detail"}},
					ReplaceScreenMsg{Screen: &fakeScreen{name: "grade"}},
				}
			},
			want: []string{"home", "map", "grade"},
		},
		{
			name: "replace the root",
			msgs: func() []tea.Msg { return []tea.Msg{ReplaceScreenMsg{Screen: &fakeScreen{name: "history"}}} },
			want: []string{"history"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(home)
			for _, msg := range tt.msgs() {
				r.Update(msg)
			}
			assert.Equal(t, tt.want, titles(r))
			assert.Equal(t, len(tt.want), r.Depth())
			assert.Equal(t, tt.want[len(tt.want)-1], r.View(80, 24))
		})
	}
}

func TestPushAndReplaceRunInit(t *testing.T) {
	r := New(&fakeScreen{name: "home"})
	detail := &fakeScreen{name: "detail"}
	grade := &fakeScreen{name: "grade"}

	r.Push(detail)
	r.Replace(grade)

	assert.Equal(t, 1, detail.inits)
	assert.Equal(t, 1, grade.inits)
	assert.Same(t, grade, r.Active())
}

func TestPopDeliversScreenPopped(t *testing.T) {
	mapScreen := &fakeScreen{name: "map"}
	r := New(&fakeScreen{name: "home"})
	r.Push(mapScreen)
	r.Push(&fakeScreen{name: "detail"})
	r.Replace(&fakeScreen{name: "grade"})

	cmd := r.Pop()
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, ScreenPoppedMsg{}, msg)

	// The app feeds the message back; the uncovered map receives it.
	r.Update(msg)
	assert.Same(t, mapScreen, r.Active())
	assert.Equal(t, []tea.Msg{ScreenPoppedMsg{}}, mapScreen.got)
}

func TestPopAtBottomReturnsNoCmd(t *testing.T) {
	r := New(&fakeScreen{name: "home"})
	assert.Nil(t, r.Pop())
	assert.Equal(t, 1, r.Depth())
}

func TestUpdateForwardsToActiveOnly(t *testing.T) {
	home := &fakeScreen{name: "home"}
	top := &fakeScreen{name: "map"}
	r := New(home)
	r.Push(top)

	key := tea.KeyPressMsg{Code: 'x', Text: "x"}
	r.Update(key)

	assert.Empty(t, home.got)
	assert.Equal(t, []tea.Msg{key}, top.got)
}

func TestEmptyRouter(t *testing.T) {
	r := &Router{}
	assert.Nil(t, r.Active())
	assert.Nil(t, r.Update(tea.KeyPressMsg{Code: tea.KeyEnter}))
	assert.Equal(t, "", r.View(80, 24))

	r.Replace(&fakeScreen{name: "home"})
	assert.Equal(t, []string{"home"}, titles(r))
}
