package levels

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/matteflyt/internal/router"
	"github.com/abhisek/matteflyt/internal/screens/diploma"
	"github.com/abhisek/matteflyt/internal/screens/play"
	"github.com/abhisek/matteflyt/internal/screens/screentest"
)

func press(s *LevelsScreen, k tea.KeyPressMsg) tea.Cmd {
	_, cmd := s.Update(k)
	return cmd
}

var (
	down  = tea.KeyPressMsg{Code: tea.KeyDown}
	up    = tea.KeyPressMsg{Code: tea.KeyUp}
	enter = tea.KeyPressMsg{Code: tea.KeyEnter}
	dKey  = tea.KeyPressMsg{Code: 'd', Text: "d"}
)

func TestLevelsScreen_CursorStartsOnNextPlayable(t *testing.T) {
	deps, _ := screentest.Deps()
	screentest.Master(deps, 0, 1)
	s := New(deps)
	if got := s.levels[s.cursor].ID; got != 2 {
		t.Errorf("cursor on level %d, want 2", got)
	}
}

func TestLevelsScreen_Navigation(t *testing.T) {
	deps, _ := screentest.Deps()
	s := New(deps)
	press(s, up)
	if s.cursor != 0 {
		t.Errorf("cursor = %d, want 0 at top", s.cursor)
	}
	press(s, down)
	press(s, down)
	if s.cursor != 2 {
		t.Errorf("cursor = %d, want 2", s.cursor)
	}
	for i := 0; i < 50; i++ {
		press(s, down)
	}
	if s.cursor != len(s.levels)-1 {
		t.Errorf("cursor = %d, want clamped at %d", s.cursor, len(s.levels)-1)
	}
}

func TestLevelsScreen_EnterUnlockedPushesPlay(t *testing.T) {
	deps, _ := screentest.Deps()
	s := New(deps)
	cmd := press(s, enter)
	if cmd == nil {
		t.Fatal("expected push command for unlocked level")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if _, ok := msg.Screen.(*play.PlayScreen); !ok {
		t.Errorf("expected *play.PlayScreen, got %T", msg.Screen)
	}
}

func TestLevelsScreen_EnterLockedShowsNotice(t *testing.T) {
	deps, _ := screentest.Deps()
	s := New(deps)
	// Level 4 follows the always-open tutorial levels and starts locked.
	s.cursor = s.indexOf(4)
	if cmd := press(s, enter); cmd != nil {
		t.Error("expected no command for locked level")
	}
	if !strings.Contains(s.View(100, 30), "Låst") {
		t.Error("expected lock notice in view")
	}
	press(s, down)
	if s.notice != "" {
		t.Error("expected notice cleared after moving")
	}
}

func TestLevelsScreen_DiplomaRequiresCompletion(t *testing.T) {
	deps, _ := screentest.Deps()
	s := New(deps)
	if cmd := press(s, dKey); cmd != nil {
		t.Error("expected no diploma before completion")
	}

	screentest.MasterAll(deps)
	s.Resume()
	cmd := press(s, dKey)
	if cmd == nil {
		t.Fatal("expected diploma push after completion")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if _, ok := msg.Screen.(*diploma.DiplomaScreen); !ok {
		t.Errorf("expected *diploma.DiplomaScreen, got %T", msg.Screen)
	}
}

func TestLevelsScreen_ResumeRefreshesLocks(t *testing.T) {
	deps, _ := screentest.Deps()
	s := New(deps)
	if s.gate.IsUnlocked(4) {
		t.Fatal("level 4 should start locked")
	}
	screentest.Master(deps, 3)
	s.Resume()
	if !s.gate.IsUnlocked(4) {
		t.Error("expected level 4 unlocked after resume")
	}
}

func TestLevelsScreen_ViewScrolls(t *testing.T) {
	deps, _ := screentest.Deps()
	s := New(deps)
	for i := 0; i < len(s.levels); i++ {
		press(s, down)
	}
	view := s.View(100, 8)
	last := s.levels[len(s.levels)-1]
	if !strings.Contains(view, last.Name) {
		t.Errorf("expected last level %q visible after scrolling", last.Name)
	}
	if s.scrollOffset == 0 {
		t.Error("expected a scroll offset")
	}
}

func TestLevelsScreen_KeyHints(t *testing.T) {
	deps, _ := screentest.Deps()
	s := New(deps)
	if n := len(s.KeyHints()); n != 3 {
		t.Errorf("KeyHints length = %d, want 3", n)
	}
	screentest.MasterAll(deps)
	s.Resume()
	if n := len(s.KeyHints()); n != 4 {
		t.Errorf("KeyHints length = %d, want 4 with diploma", n)
	}
}
