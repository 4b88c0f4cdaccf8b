package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/courtcraft/mocktrial/internal/transcribe"
	"github.com/courtcraft/mocktrial/internal/trial"
)

// stubJudge returns a fixed verdict without any network.
type stubJudge struct {
	verdict string
}

func (s *stubJudge) RequestVerdict(context.Context, *trial.Session) string { return s.verdict }

// stubRecognizer stands in for the speech-to-text collaborator behind the
// transcription gate.
type stubRecognizer struct {
	text string
	err  error
}

func (s *stubRecognizer) Transcribe(context.Context, []byte, string) (string, error) {
	return s.text, s.err
}

const validArgument = "the defendant broke the rules because everyone deserves respect"

func newTestApp(t *testing.T, rec *stubRecognizer) *fiber.App {
	t.Helper()
	if rec == nil {
		rec = &stubRecognizer{}
	}
	h := New(
		NewRegistry(),
		&stubJudge{verdict: "Defense wins on the merits."},
		transcribe.NewService(rec),
		trial.NewHintSource(1),
		"en",
		2,
	)
	app := fiber.New()
	h.Register(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading response: %v", err)
	}
	return resp, data
}

func createSession(t *testing.T, app *fiber.App) sessionView {
	t.Helper()
	resp, data := doJSON(t, app, http.MethodPost, "/api/sessions", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create session: status %d: %s", resp.StatusCode, data)
	}
	var view sessionView
	if err := json.Unmarshal(data, &view); err != nil {
		t.Fatalf("decoding session: %v", err)
	}
	return view
}

func TestCreateSession(t *testing.T) {
	app := newTestApp(t, nil)
	view := createSession(t, app)

	if view.ID == "" {
		t.Error("session id is empty")
	}
	if len(view.Rounds) != 2 {
		t.Errorf("rounds = %d, want 2", len(view.Rounds))
	}
	if view.Prosecutor.Level.Tier != 1 {
		t.Errorf("starting tier = %d, want 1", view.Prosecutor.Level.Tier)
	}
}

func TestGetUnknownSession(t *testing.T) {
	app := newTestApp(t, nil)
	resp, _ := doJSON(t, app, http.MethodGet, "/api/sessions/nope", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestSubmitArgument(t *testing.T) {
	app := newTestApp(t, nil)
	view := createSession(t, app)

	resp, data := doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/sessions/%s/rounds/1/argument", view.ID),
		map[string]string{"team": "prosecutor", "text": validArgument})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, data)
	}

	var result submitView
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	if result.Score != 50 {
		t.Errorf("score = %d, want 50 (evidence + value keywords)", result.Score)
	}
	if result.Awarded != 10 {
		t.Errorf("awarded = %d, want 10", result.Awarded)
	}

	_, data = doJSON(t, app, http.MethodGet, "/api/sessions/"+view.ID, nil)
	var after sessionView
	if err := json.Unmarshal(data, &after); err != nil {
		t.Fatalf("decoding session: %v", err)
	}
	if after.Rounds[0].Prosecutor != validArgument {
		t.Error("argument not stored in round 1")
	}
	if after.Prosecutor.Points != 10 {
		t.Errorf("points = %d, want 10", after.Prosecutor.Points)
	}
}

func TestSubmitArgumentValidation(t *testing.T) {
	app := newTestApp(t, nil)
	view := createSession(t, app)

	// Too short through the gated save path.
	resp, _ := doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/sessions/%s/rounds/1/argument", view.ID),
		map[string]string{"team": "prosecutor", "text": "short"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("short text status = %d, want 400", resp.StatusCode)
	}

	// Unknown team.
	resp, _ = doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/sessions/%s/rounds/1/argument", view.ID),
		map[string]string{"team": "jury", "text": validArgument})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("unknown team status = %d, want 400", resp.StatusCode)
	}

	// Out-of-range round.
	resp, _ = doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/sessions/%s/rounds/9/argument", view.ID),
		map[string]string{"team": "prosecutor", "text": validArgument})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad round status = %d, want 400", resp.StatusCode)
	}
}

func TestRoundManagement(t *testing.T) {
	app := newTestApp(t, nil)
	view := createSession(t, app)
	base := "/api/sessions/" + view.ID

	// Grow to 3 rounds, then remove down to the floor.
	resp, data := doJSON(t, app, http.MethodPost, base+"/rounds", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("append: status %d: %s", resp.StatusCode, data)
	}

	for i := 0; i < 2; i++ {
		resp, data = doJSON(t, app, http.MethodDelete, base+"/rounds/last", nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("remove: status %d: %s", resp.StatusCode, data)
		}
	}
	// One round left: the floor holds.
	resp, _ = doJSON(t, app, http.MethodDelete, base+"/rounds/last", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("floor removal status = %d, want 400", resp.StatusCode)
	}

	resp, data = doJSON(t, app, http.MethodPut, base+"/rounds/count", map[string]int{"count": 4})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("resize: status %d: %s", resp.StatusCode, data)
	}
	var after sessionView
	if err := json.Unmarshal(data, &after); err != nil {
		t.Fatalf("decoding session: %v", err)
	}
	if len(after.Rounds) != 4 {
		t.Errorf("rounds = %d, want 4", len(after.Rounds))
	}

	resp, _ = doJSON(t, app, http.MethodPut, base+"/rounds/current", map[string]int{"round": 3})
	if resp.StatusCode != http.StatusOK {
		t.Errorf("select round status = %d", resp.StatusCode)
	}
}

func TestVerdictEndpoint(t *testing.T) {
	app := newTestApp(t, nil)
	view := createSession(t, app)

	resp, data := doJSON(t, app, http.MethodPost, "/api/sessions/"+view.ID+"/verdict", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, data)
	}
	var body struct {
		Verdict string `json:"verdict"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		t.Fatalf("decoding verdict: %v", err)
	}
	if body.Verdict != "Defense wins on the merits." {
		t.Errorf("verdict = %q", body.Verdict)
	}

	// The verdict is stored on the session.
	_, data = doJSON(t, app, http.MethodGet, "/api/sessions/"+view.ID, nil)
	var after sessionView
	if err := json.Unmarshal(data, &after); err != nil {
		t.Fatalf("decoding session: %v", err)
	}
	if after.Verdict != body.Verdict {
		t.Error("verdict not persisted on session")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	app := newTestApp(t, nil)
	source := createSession(t, app)

	doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/sessions/%s/rounds/1/argument", source.ID),
		map[string]string{"team": "defender", "text": validArgument})

	resp, exported := doJSON(t, app, http.MethodGet, "/api/sessions/"+source.ID+"/export", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("export: status %d", resp.StatusCode)
	}

	target := createSession(t, app)
	req := httptest.NewRequest(http.MethodPost, "/api/sessions/"+target.ID+"/import", bytes.NewReader(exported))
	req.Header.Set("Content-Type", "application/json")
	importResp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	data, _ := io.ReadAll(importResp.Body)
	if importResp.StatusCode != http.StatusOK {
		t.Fatalf("import: status %d: %s", importResp.StatusCode, data)
	}

	var after sessionView
	if err := json.Unmarshal(data, &after); err != nil {
		t.Fatalf("decoding session: %v", err)
	}
	if after.Rounds[0].Defender != validArgument {
		t.Error("imported round text missing")
	}
	if after.Defender.Points != 10 {
		t.Errorf("imported points = %d, want 10", after.Defender.Points)
	}
}

func TestImportRejectsMissingRounds(t *testing.T) {
	app := newTestApp(t, nil)
	view := createSession(t, app)

	req := httptest.NewRequest(http.MethodPost, "/api/sessions/"+view.ID+"/import", strings.NewReader(`{"case": "x"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestTranscribeTrivialAudio(t *testing.T) {
	app := newTestApp(t, &stubRecognizer{text: "should never be reached"})
	view := createSession(t, app)

	// Below the non-trivial threshold: empty transcription, no error.
	req := httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/api/sessions/%s/rounds/1/transcription?team=prosecutor", view.ID),
		bytes.NewReader(make([]byte, 100)))
	resp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("transcribe: %v", err)
	}
	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, data)
	}
	var body struct {
		Text    string `json:"text"`
		Warning string `json:"warning"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if body.Text != "" || body.Warning != "" {
		t.Errorf("body = %+v, want empty text and no warning", body)
	}
}

func TestTranscribeAppliesAndScores(t *testing.T) {
	app := newTestApp(t, &stubRecognizer{text: "ok"})
	view := createSession(t, app)

	// "ok" is under the manual minimum length: the transcription path must
	// accept it anyway.
	req := httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/api/sessions/%s/rounds/1/transcription?team=defender", view.ID),
		bytes.NewReader(make([]byte, 2000)))
	resp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("transcribe: %v", err)
	}
	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, data)
	}

	_, data = doJSON(t, app, http.MethodGet, "/api/sessions/"+view.ID, nil)
	var after sessionView
	if err := json.Unmarshal(data, &after); err != nil {
		t.Fatalf("decoding session: %v", err)
	}
	if after.Rounds[0].Defender != "ok" {
		t.Errorf("round text = %q, want ok", after.Rounds[0].Defender)
	}
	if after.Defender.Points != 10 {
		t.Errorf("points = %d, want 10", after.Defender.Points)
	}
}

func TestTranscribeCollaboratorFailureIsRecovered(t *testing.T) {
	app := newTestApp(t, &stubRecognizer{err: fmt.Errorf("boom: audio_too_short")})
	view := createSession(t, app)

	req := httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/api/sessions/%s/rounds/1/transcription?team=prosecutor", view.ID),
		bytes.NewReader(make([]byte, 2000)))
	resp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("transcribe: %v", err)
	}
	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200 (failure is recovered): %s", resp.StatusCode, data)
	}
	var body struct {
		Text    string `json:"text"`
		Warning string `json:"warning"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if body.Text != "" {
		t.Errorf("text = %q, want empty", body.Text)
	}
	if body.Warning != "too short" {
		t.Errorf("warning = %q, want %q", body.Warning, "too short")
	}
}

func TestResetSession(t *testing.T) {
	app := newTestApp(t, nil)
	view := createSession(t, app)
	base := "/api/sessions/" + view.ID

	doJSON(t, app, http.MethodPost, base+"/rounds/1/argument",
		map[string]string{"team": "prosecutor", "text": validArgument})
	doJSON(t, app, http.MethodPut, base+"/case", map[string]string{"case": "a case"})

	resp, data := doJSON(t, app, http.MethodPost, base+"/reset", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var after sessionView
	if err := json.Unmarshal(data, &after); err != nil {
		t.Fatalf("decoding session: %v", err)
	}
	if after.Case != "" || after.Prosecutor.Points != 0 || len(after.Rounds) != 2 {
		t.Errorf("session not reset: %+v", after)
	}
}

func TestSampleCasesAndHints(t *testing.T) {
	app := newTestApp(t, nil)
	view := createSession(t, app)

	resp, data := doJSON(t, app, http.MethodGet, "/api/cases", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("cases: status %d", resp.StatusCode)
	}
	var cases []trial.SampleCase
	if err := json.Unmarshal(data, &cases); err != nil {
		t.Fatalf("decoding cases: %v", err)
	}
	if len(cases) != 3 {
		t.Errorf("cases = %d, want 3", len(cases))
	}

	resp, data = doJSON(t, app, http.MethodPost, "/api/sessions/"+view.ID+"/case/sample", map[string]int{"index": 1})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("load sample: status %d: %s", resp.StatusCode, data)
	}

	_, data = doJSON(t, app, http.MethodGet, "/api/sessions/"+view.ID, nil)
	var after sessionView
	if err := json.Unmarshal(data, &after); err != nil {
		t.Fatalf("decoding session: %v", err)
	}
	if after.Case != cases[1].Summary {
		t.Error("sample case not applied")
	}

	resp, data = doJSON(t, app, http.MethodGet, "/api/sessions/"+view.ID+"/hint?team=defender", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("hint: status %d", resp.StatusCode)
	}
	var hint struct {
		Hint string `json:"hint"`
	}
	if err := json.Unmarshal(data, &hint); err != nil {
		t.Fatalf("decoding hint: %v", err)
	}
	if hint.Hint == "" {
		t.Error("empty hint")
	}
}

func TestDeleteSession(t *testing.T) {
	app := newTestApp(t, nil)
	view := createSession(t, app)

	resp, _ := doJSON(t, app, http.MethodDelete, "/api/sessions/"+view.ID, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", resp.StatusCode)
	}
	resp, _ = doJSON(t, app, http.MethodGet, "/api/sessions/"+view.ID, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}
