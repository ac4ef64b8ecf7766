package controller

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/hailam/chesscore/internal/middleware"
	"github.com/hailam/chesscore/internal/service"
)

func newApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	Register(app, service.NewGameService(service.NewGameManager(nil, 1<<10), 2))
	return app
}

// call sends a request as player and decodes the JSON reply into out.
func call(t *testing.T, app *fiber.App, method, path, player, body string, out any) int {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if player != "" {
		req.Header.Set(middleware.PlayerHeader, player)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("%s %s: decode: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

func createGame(t *testing.T, app *fiber.App, body string) string {
	t.Helper()
	var created struct {
		GameID string `json:"game_id"`
	}
	if code := call(t, app, http.MethodPost, "/api/game", "", body, &created); code != fiber.StatusCreated {
		t.Fatalf("create status = %d", code)
	}
	return created.GameID
}

type moveReply struct {
	Outcome string            `json:"outcome"`
	Move    string            `json:"move"`
	State   service.GameState `json:"state"`
	Error   string            `json:"error"`
}

func TestPlayerIDIssued(t *testing.T) {
	app := newApp(t)
	req := httptest.NewRequest(http.MethodPost, "/api/game", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.Header.Get(middleware.PlayerHeader) == "" {
		t.Error("no player id issued")
	}

	req = httptest.NewRequest(http.MethodPost, "/api/game?playerId=alice", nil)
	resp, _ = app.Test(req, -1)
	if got := resp.Header.Get(middleware.PlayerHeader); got != "alice" {
		t.Errorf("player id = %q, want alice", got)
	}
}

func TestGameRoutes(t *testing.T) {
	app := newApp(t)
	id := createGame(t, app, "")
	base := "/api/game/" + id

	var st service.GameState
	if code := call(t, app, http.MethodGet, base, "", "", &st); code != fiber.StatusOK || st.ID != id {
		t.Fatalf("get state = %d, %+v", code, st)
	}

	var joined struct {
		Color string `json:"color"`
	}
	call(t, app, http.MethodPost, base+"/join", "alice", "", &joined)
	if joined.Color != "White" {
		t.Errorf("alice joined as %q", joined.Color)
	}
	call(t, app, http.MethodPost, base+"/join", "bob", "", &joined)
	if joined.Color != "Black" {
		t.Errorf("bob joined as %q", joined.Color)
	}
	if code := call(t, app, http.MethodPost, base+"/join", "carol", "", nil); code != fiber.StatusConflict {
		t.Errorf("third join status = %d", code)
	}

	t.Run("Move", func(t *testing.T) {
		var res moveReply
		if code := call(t, app, http.MethodPost, base+"/move", "bob", `{"from":"e2","to":"e4"}`, &res); code != fiber.StatusForbidden {
			t.Errorf("bob moving white: status %d", code)
		}
		res = moveReply{}
		if code := call(t, app, http.MethodPost, base+"/move", "alice", `{"from":"e2","to":"e4"}`, &res); code != fiber.StatusOK {
			t.Fatalf("move status = %d: %s", code, res.Error)
		}
		if res.Outcome != "applied" || res.Move != "e2e4" || res.State.SideToMove.String() != "Black" {
			t.Errorf("move reply = %+v", res)
		}
		if code := call(t, app, http.MethodPost, base+"/move", "bob", `{"from":"e7","to":"z9"}`, nil); code != fiber.StatusBadRequest {
			t.Errorf("bad cell status = %d", code)
		}
	})

	t.Run("Click", func(t *testing.T) {
		var res moveReply
		call(t, app, http.MethodPost, base+"/click", "bob", `{"cell":"d7"}`, &res)
		if res.Outcome != "selected" || res.State.Pending == nil || len(res.State.Pending.Destinations) != 2 {
			t.Fatalf("click d7 = %+v", res)
		}
		res = moveReply{}
		call(t, app, http.MethodPost, base+"/click", "bob", `{"cell":"d5"}`, &res)
		if res.Outcome != "applied" {
			t.Errorf("click d5 = %s", res.Outcome)
		}
	})

	t.Run("Attacks", func(t *testing.T) {
		var out struct {
			Attacks []string `json:"attacks"`
		}
		call(t, app, http.MethodGet, base+"/attacks/e4", "", "", &out)
		if len(out.Attacks) != 2 {
			t.Errorf("e4 attacks = %v", out.Attacks)
		}
		if code := call(t, app, http.MethodGet, base+"/attacks/k9", "", "", nil); code != fiber.StatusBadRequest {
			t.Errorf("bad cell status = %d", code)
		}
	})

	t.Run("Eval", func(t *testing.T) {
		var ev service.Evaluation
		if code := call(t, app, http.MethodGet, base+"/eval", "", "", &ev); code != fiber.StatusOK {
			t.Fatalf("eval status = %d", code)
		}
		if ev.Material != 0 {
			t.Errorf("material = %d, want 0", ev.Material)
		}
	})

	t.Run("Undo", func(t *testing.T) {
		var out struct {
			Undone bool              `json:"undone"`
			State  service.GameState `json:"state"`
		}
		if code := call(t, app, http.MethodPost, base+"/undo", "mallory", "", nil); code != fiber.StatusForbidden {
			t.Errorf("stranger undo status = %d", code)
		}
		call(t, app, http.MethodPost, base+"/undo", "alice", "", &out)
		if !out.Undone || len(out.State.Moves) != 1 {
			t.Errorf("undo = %+v", out)
		}
	})
}

func TestEngineRoute(t *testing.T) {
	app := newApp(t)
	id := createGame(t, app, `{"fen":"6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1"}`)

	var res moveReply
	if code := call(t, app, http.MethodPost, "/api/game/"+id+"/engine", "", `{"depth":2}`, &res); code != fiber.StatusOK {
		t.Fatalf("engine status = %d: %s", code, res.Error)
	}
	if res.Move != "a1a8" || !res.State.Checkmated {
		t.Errorf("engine reply = %+v", res)
	}
}

func TestErrors(t *testing.T) {
	app := newApp(t)

	var out struct {
		Error string `json:"error"`
	}
	if code := call(t, app, http.MethodGet, "/api/game/missing", "", "", &out); code != fiber.StatusNotFound || out.Error == "" {
		t.Errorf("missing game = %d %q", code, out.Error)
	}
	if code := call(t, app, http.MethodPost, "/api/game", "", `{"fen":"nonsense"}`, nil); code != fiber.StatusBadRequest {
		t.Errorf("bad fen status = %d", code)
	}
	if code := call(t, app, http.MethodPost, "/api/game", "", `{"fen":`, nil); code != fiber.StatusBadRequest {
		t.Errorf("malformed body status = %d", code)
	}
	if code := call(t, app, http.MethodGet, "/ws/game/missing", "", "", nil); code != fiber.StatusUpgradeRequired {
		t.Errorf("plain GET on websocket route = %d", code)
	}
}
