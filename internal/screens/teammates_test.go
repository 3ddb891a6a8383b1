package screens

import (
	"errors"
	"strings"
	"testing"

	"github.com/quartershq/quarters/internal/api"
	"github.com/quartershq/quarters/internal/nav"
)

func catalog() []api.Agent {
	return []api.Agent{
		{Key: "scout", Name: "Scout"},
		{Key: "writer", Name: "Writer"},
		{Key: "coder", Name: "Coder", Hired: true},
	}
}

func TestTeammates_AddByPosition(t *testing.T) {
	backend := &fakeAPI{agents: catalog()}
	con := &fakeConsole{lines: []string{"add 2"}}
	h, _ := newTestHandlers(t, backend, con)

	action := h.Handle(nav.Teammates{})
	if _, ok := action.(nav.Stay); !ok {
		t.Fatalf("action = %T, want Stay", action)
	}
	if len(backend.manageCalls) != 1 || backend.manageCalls[0] != "writer:add" {
		t.Errorf("manage calls = %v, want [writer:add]", backend.manageCalls)
	}
}

func TestTeammates_RemoveByKey(t *testing.T) {
	backend := &fakeAPI{agents: catalog()}
	con := &fakeConsole{lines: []string{"remove CODER"}}
	h, _ := newTestHandlers(t, backend, con)

	action := h.Handle(nav.Teammates{})
	if _, ok := action.(nav.Stay); !ok {
		t.Fatalf("action = %T, want Stay", action)
	}
	if len(backend.manageCalls) != 1 || backend.manageCalls[0] != "coder:remove" {
		t.Errorf("manage calls = %v, want [coder:remove]", backend.manageCalls)
	}
}

func TestTeammates_UnknownTargetStaysWithoutCall(t *testing.T) {
	backend := &fakeAPI{agents: catalog()}
	con := &fakeConsole{lines: []string{"add unknownkey", "/back"}}
	h, _ := newTestHandlers(t, backend, con)

	action := h.Handle(nav.Teammates{})
	if _, ok := action.(nav.Back); !ok {
		t.Fatalf("action = %T, want Back", action)
	}
	if len(backend.manageCalls) != 0 {
		t.Errorf("manage calls = %v, want none", backend.manageCalls)
	}
	if !strings.Contains(con.lastRender(), "No matching agent found") {
		t.Errorf("render missing no-match note:\n%s", con.lastRender())
	}
}

func TestTeammates_ManageFailureAnnotates(t *testing.T) {
	backend := &fakeAPI{agents: catalog(), manageErr: errors.New("quota reached")}
	con := &fakeConsole{lines: []string{"add 1", "/back"}}
	h, _ := newTestHandlers(t, backend, con)

	action := h.Handle(nav.Teammates{})
	if _, ok := action.(nav.Back); !ok {
		t.Fatalf("action = %T, want Back", action)
	}
	if len(con.failures) == 0 {
		t.Error("no error flash shown for failed manage call")
	}
	if !strings.Contains(con.lastRender(), "quota reached") {
		t.Errorf("render missing failure detail:\n%s", con.lastRender())
	}
}

func TestTeammates_FetchFailureGoesBack(t *testing.T) {
	backend := &fakeAPI{agentsErr: errors.New("boom")}
	con := &fakeConsole{}
	h, _ := newTestHandlers(t, backend, con)

	action := h.Handle(nav.Teammates{})
	if _, ok := action.(nav.Back); !ok {
		t.Fatalf("action = %T, want Back", action)
	}
	if len(con.failures) == 0 {
		t.Error("no error flash shown for failed fetch")
	}
}

func TestTeammates_RefreshStays(t *testing.T) {
	backend := &fakeAPI{agents: catalog()}
	con := &fakeConsole{lines: []string{"/refresh"}}
	h, _ := newTestHandlers(t, backend, con)

	action := h.Handle(nav.Teammates{})
	if _, ok := action.(nav.Stay); !ok {
		t.Errorf("action = %T, want Stay", action)
	}
}
