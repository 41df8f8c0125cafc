package lua

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	lua "github.com/yuin/gopher-lua"
)

func newTestState(t *testing.T, opts ...StateOption) *State {
	t.Helper()
	s, err := NewState(opts...)
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestDoString(t *testing.T) {
	s := newTestState(t)
	if err := s.DoString(context.Background(), "x = 1 + 2"); err != nil {
		t.Fatal(err)
	}
	if got := s.GetGlobal("x"); got != lua.LNumber(3) {
		t.Errorf("x = %v, want 3", got)
	}
	if err := s.DoString(context.Background(), "error('boom')"); err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("error = %v, want boom", err)
	}
}

func TestDoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.lua")
	if err := os.WriteFile(path, []byte("answer = string.rep('a', 3)"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := newTestState(t)
	if err := s.DoFile(context.Background(), path); err != nil {
		t.Fatal(err)
	}
	if got := s.GetGlobal("answer"); got != lua.LString("aaa") {
		t.Errorf("answer = %v", got)
	}
}

func TestCall(t *testing.T) {
	s := newTestState(t)
	if err := s.DoString(context.Background(), "function add(a, b) return a + b, 'done' end"); err != nil {
		t.Fatal(err)
	}
	got, err := s.Call(context.Background(), "add", lua.LNumber(2), lua.LNumber(5))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != lua.LNumber(7) || got[1] != lua.LString("done") {
		t.Errorf("Call = %v", got)
	}
	if _, err := s.Call(context.Background(), "missing"); err == nil {
		t.Error("Call of a missing function succeeded")
	}
}

func TestPrint(t *testing.T) {
	var out bytes.Buffer
	s := newTestState(t, WithOutput(&out))
	if err := s.DoString(context.Background(), "print('a', 1, true)"); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "a\t1\ttrue\n" {
		t.Errorf("print output = %q", got)
	}
}

func TestSandbox(t *testing.T) {
	s := newTestState(t)
	tests := []struct {
		name string
		code string
	}{
		{"dofile", "dofile('/etc/passwd')"},
		{"loadstring", "loadstring('return 1')()"},
		{"io", "io.write('x')"},
		{"os", "os.exit(1)"},
		{"require io", "require('io')"},
		{"require file", "require('somewhere')"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.DoString(context.Background(), tt.code); err == nil {
				t.Errorf("%s succeeded", tt.code)
			}
		})
	}

	if err := s.DoString(context.Background(), "local m = require('math'); y = m.floor(2.5)"); err != nil {
		t.Errorf("require math: %v", err)
	}
}

func TestPreloadModule(t *testing.T) {
	s := newTestState(t)
	s.PreloadModule("edittable.greet", func(L *lua.LState) int {
		mod := L.NewTable()
		L.SetField(mod, "name", lua.LString("cells"))
		L.Push(mod)
		return 1
	})
	if err := s.DoString(context.Background(), "name = require('edittable.greet').name"); err != nil {
		t.Fatal(err)
	}
	if got := s.GetGlobal("name"); got != lua.LString("cells") {
		t.Errorf("name = %v", got)
	}
}

func TestExecutionTimeout(t *testing.T) {
	s := newTestState(t, WithExecutionTimeout(50*time.Millisecond))
	err := s.DoString(context.Background(), "while true do end")
	if !errors.Is(err, ErrExecutionTimeout) {
		t.Errorf("error = %v, want ErrExecutionTimeout", err)
	}
	// The state stays usable.
	if err := s.DoString(context.Background(), "z = 1"); err != nil {
		t.Errorf("after timeout: %v", err)
	}
}

func TestCanceledContext(t *testing.T) {
	s := newTestState(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.DoString(ctx, "while true do end"); err == nil {
		t.Error("canceled execution succeeded")
	}
}

func TestClosed(t *testing.T) {
	s, err := NewState()
	if err != nil {
		t.Fatal(err)
	}
	s.Close()
	if !s.IsClosed() {
		t.Error("IsClosed = false")
	}
	if err := s.DoString(context.Background(), "x = 1"); !errors.Is(err, ErrStateClosed) {
		t.Errorf("error = %v, want ErrStateClosed", err)
	}
	if s.GetGlobal("x") != lua.LNil {
		t.Error("GetGlobal on closed state")
	}
}
