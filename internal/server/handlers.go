package server

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/courtcraft/mocktrial/internal/transcribe"
	"github.com/courtcraft/mocktrial/internal/trial"
)

// VerdictRequester is satisfied by judge.Orchestrator.
type VerdictRequester interface {
	RequestVerdict(ctx context.Context, s *trial.Session) string
}

// Transcriber is satisfied by transcribe.Service.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, language string) (string, error)
}

// Handler wires the trial core to fiber routes.
type Handler struct {
	registry    *Registry
	judge       VerdictRequester
	transcriber Transcriber
	hints       *trial.HintSource
	language    string
	roundCount  int
}

// New creates a Handler. roundCount sizes freshly created sessions.
func New(registry *Registry, judge VerdictRequester, transcriber Transcriber, hints *trial.HintSource, language string, roundCount int) *Handler {
	return &Handler{
		registry:    registry,
		judge:       judge,
		transcriber: transcriber,
		hints:       hints,
		language:    language,
		roundCount:  roundCount,
	}
}

// Register mounts all routes under /api.
func (h *Handler) Register(app *fiber.App) {
	api := app.Group("/api")
	api.Get("/cases", h.ListCases)
	api.Post("/sessions", h.CreateSession)
	api.Get("/sessions/:id", h.GetSession)
	api.Delete("/sessions/:id", h.DeleteSession)
	api.Post("/sessions/:id/reset", h.ResetSession)
	api.Put("/sessions/:id/case", h.SetCase)
	api.Post("/sessions/:id/case/sample", h.LoadSampleCase)
	api.Post("/sessions/:id/rounds", h.AppendRound)
	api.Delete("/sessions/:id/rounds/last", h.RemoveLastRound)
	api.Put("/sessions/:id/rounds/count", h.ResizeRounds)
	api.Put("/sessions/:id/rounds/current", h.SelectRound)
	api.Post("/sessions/:id/rounds/:round/argument", h.SubmitArgument)
	api.Delete("/sessions/:id/rounds/:round/argument", h.ClearArgument)
	api.Post("/sessions/:id/rounds/:round/transcription", h.Transcribe)
	api.Post("/sessions/:id/verdict", h.RequestVerdict)
	api.Get("/sessions/:id/export", h.Export)
	api.Post("/sessions/:id/import", h.Import)
	api.Get("/sessions/:id/hint", h.Hint)
}

// ListCases returns the sample case catalog.
func (h *Handler) ListCases(c *fiber.Ctx) error {
	return c.JSON(trial.SampleCases())
}

// CreateSession starts a new session and returns its initial state.
func (h *Handler) CreateSession(c *fiber.Ctx) error {
	id := h.registry.Create(h.roundCount)
	return h.respondSession(c, id)
}

// GetSession returns a session's live state.
func (h *Handler) GetSession(c *fiber.Ctx) error {
	return h.respondSession(c, c.Params("id"))
}

// DeleteSession tears a session down.
func (h *Handler) DeleteSession(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.registry.With(id, func(*trial.Session) error { return nil }); err != nil {
		return respondError(c, err)
	}
	h.registry.Delete(id)
	return c.SendStatus(fiber.StatusNoContent)
}

// ResetSession clears rounds, case, ledger and verdict, the "new trial"
// action.
func (h *Handler) ResetSession(c *fiber.Ctx) error {
	id := c.Params("id")
	err := h.registry.With(id, func(s *trial.Session) error {
		s.Reset()
		return nil
	})
	if err != nil {
		return respondError(c, err)
	}
	return h.respondSession(c, id)
}

// SetCase replaces the case summary with free text.
func (h *Handler) SetCase(c *fiber.Ctx) error {
	var body struct {
		Case string `json:"case"`
	}
	if err := c.BodyParser(&body); err != nil {
		return respondBadRequest(c, "malformed body")
	}
	id := c.Params("id")
	err := h.registry.With(id, func(s *trial.Session) error {
		s.CaseSummary = body.Case
		return nil
	})
	if err != nil {
		return respondError(c, err)
	}
	return h.respondSession(c, id)
}

// LoadSampleCase applies a catalog case to the session.
func (h *Handler) LoadSampleCase(c *fiber.Ctx) error {
	var body struct {
		Index int `json:"index"`
	}
	if err := c.BodyParser(&body); err != nil {
		return respondBadRequest(c, "malformed body")
	}
	var loaded trial.SampleCase
	err := h.registry.With(c.Params("id"), func(s *trial.Session) error {
		var err error
		loaded, err = s.LoadSampleCase(body.Index)
		return err
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(loaded)
}

// AppendRound adds an empty round at the tail.
func (h *Handler) AppendRound(c *fiber.Ctx) error {
	id := c.Params("id")
	err := h.registry.With(id, func(s *trial.Session) error {
		s.Rounds.AppendRound()
		return nil
	})
	if err != nil {
		return respondError(c, err)
	}
	return h.respondSession(c, id)
}

// RemoveLastRound drops the tail round; the last remaining round stays.
func (h *Handler) RemoveLastRound(c *fiber.Ctx) error {
	id := c.Params("id")
	removed := false
	err := h.registry.With(id, func(s *trial.Session) error {
		removed = s.Rounds.RemoveLastRound()
		if s.CurrentRound() > s.Rounds.Len() {
			return s.SelectRound(s.Rounds.Len())
		}
		return nil
	})
	if err != nil {
		return respondError(c, err)
	}
	if !removed {
		return respondBadRequest(c, "at least one round must remain")
	}
	return h.respondSession(c, id)
}

// ResizeRounds grows or truncates the round sequence.
func (h *Handler) ResizeRounds(c *fiber.Ctx) error {
	var body struct {
		Count int `json:"count"`
	}
	if err := c.BodyParser(&body); err != nil {
		return respondBadRequest(c, "malformed body")
	}
	id := c.Params("id")
	err := h.registry.With(id, func(s *trial.Session) error {
		if err := s.Rounds.Resize(body.Count); err != nil {
			return err
		}
		if s.CurrentRound() > s.Rounds.Len() {
			return s.SelectRound(s.Rounds.Len())
		}
		return nil
	})
	if err != nil {
		return respondError(c, err)
	}
	return h.respondSession(c, id)
}

// SelectRound moves the class to another round (a combo reset boundary).
func (h *Handler) SelectRound(c *fiber.Ctx) error {
	var body struct {
		Round int `json:"round"`
	}
	if err := c.BodyParser(&body); err != nil {
		return respondBadRequest(c, "malformed body")
	}
	id := c.Params("id")
	err := h.registry.With(id, func(s *trial.Session) error {
		return s.SelectRound(body.Round)
	})
	if err != nil {
		return respondError(c, err)
	}
	return h.respondSession(c, id)
}

// SubmitArgument saves a typed argument through the gated path and scores it.
func (h *Handler) SubmitArgument(c *fiber.Ctx) error {
	var body struct {
		Team string `json:"team"`
		Text string `json:"text"`
	}
	if err := c.BodyParser(&body); err != nil {
		return respondBadRequest(c, "malformed body")
	}
	team, err := trial.ParseTeam(body.Team)
	if err != nil {
		return respondError(c, err)
	}

	var result *trial.SubmitResult
	err = h.registry.With(c.Params("id"), func(s *trial.Session) error {
		round, err := roundParam(c, s)
		if err != nil {
			return err
		}
		result, err = s.SubmitArgument(team, round, body.Text)
		return err
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(viewSubmit(result))
}

// ClearArgument blanks one team's text in a round.
func (h *Handler) ClearArgument(c *fiber.Ctx) error {
	team, err := trial.ParseTeam(c.Query("team"))
	if err != nil {
		return respondError(c, err)
	}
	id := c.Params("id")
	err = h.registry.With(id, func(s *trial.Session) error {
		round, err := roundParam(c, s)
		if err != nil {
			return err
		}
		s.Rounds.ClearText(round, team)
		return nil
	})
	if err != nil {
		return respondError(c, err)
	}
	return h.respondSession(c, id)
}

// Transcribe runs uploaded audio through the gate and the speech-to-text
// collaborator, then applies the result via the ungated path. Collaborator
// failures come back as an empty transcription plus a warning, never an
// error.
func (h *Handler) Transcribe(c *fiber.Ctx) error {
	team, err := trial.ParseTeam(c.Query("team"))
	if err != nil {
		return respondError(c, err)
	}

	text, terr := h.transcriber.Transcribe(c.UserContext(), c.Body(), h.language)
	warning := ""
	var tre *transcribe.TranscriptionError
	if errors.As(terr, &tre) {
		text = ""
		warning = tre.Kind.String()
	} else if terr != nil {
		text = ""
		warning = "transcription failed"
	}

	var result *trial.SubmitResult
	err = h.registry.With(c.Params("id"), func(s *trial.Session) error {
		round, err := roundParam(c, s)
		if err != nil {
			return err
		}
		result = s.ApplyTranscript(team, round, text)
		return nil
	})
	if err != nil {
		return respondError(c, err)
	}

	resp := fiber.Map{"text": text, "warning": warning}
	if result != nil {
		resp["result"] = viewSubmit(result)
	}
	return c.JSON(resp)
}

// RequestVerdict asks the judge for a verdict and stores it on the session.
// The orchestrator already guarantees a usable verdict.
func (h *Handler) RequestVerdict(c *fiber.Ctx) error {
	var verdict string
	err := h.registry.With(c.Params("id"), func(s *trial.Session) error {
		verdict = h.judge.RequestVerdict(c.UserContext(), s)
		s.Verdict = verdict
		return nil
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"verdict": verdict})
}

// Export returns the session snapshot.
func (h *Handler) Export(c *fiber.Ctx) error {
	var snap trial.Snapshot
	err := h.registry.With(c.Params("id"), func(s *trial.Session) error {
		snap = s.Snapshot()
		return nil
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(snap)
}

// Import replaces session state from an exported snapshot.
func (h *Handler) Import(c *fiber.Ctx) error {
	snap, err := trial.ParseSnapshot(c.Body())
	if err != nil {
		return respondError(c, err)
	}
	id := c.Params("id")
	err = h.registry.With(id, func(s *trial.Session) error {
		return s.Restore(snap)
	})
	if err != nil {
		return respondError(c, err)
	}
	return h.respondSession(c, id)
}

// Hint returns one coaching hint for the team.
func (h *Handler) Hint(c *fiber.Ctx) error {
	team, err := trial.ParseTeam(c.Query("team"))
	if err != nil {
		return respondError(c, err)
	}
	// Hint selection shares no session state; the registry lookup just
	// confirms the session exists.
	if err := h.registry.With(c.Params("id"), func(*trial.Session) error { return nil }); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"hint": h.hints.Hint(team)})
}

func (h *Handler) respondSession(c *fiber.Ctx, id string) error {
	var view sessionView
	err := h.registry.With(id, func(s *trial.Session) error {
		view = viewSession(id, s)
		return nil
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(view)
}

// roundParam validates the :round path parameter against the session. The
// typed store panics on bad indexes, so every external index is checked here
// first.
func roundParam(c *fiber.Ctx, s *trial.Session) (int, error) {
	round, err := strconv.Atoi(c.Params("round"))
	if err != nil || round < 1 || round > s.Rounds.Len() {
		return 0, &trial.ValidationError{Field: "round", Reason: "out of range"}
	}
	return round, nil
}

func respondError(c *fiber.Ctx, err error) error {
	var ve *trial.ValidationError
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "session not found"})
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ve.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

func respondBadRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}
