package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/multierr"

	perrors "github.com/matzehuels/panelayout/pkg/errors"
	pkgio "github.com/matzehuels/panelayout/pkg/io"
	"github.com/matzehuels/panelayout/pkg/layout"
	"github.com/matzehuels/panelayout/pkg/pipeline"
	"github.com/matzehuels/panelayout/pkg/session"
)

// opRoutes are the single-op edit endpoints, each named after its op.
var opRoutes = []pkgio.OpKind{
	pkgio.OpResize,
	pkgio.OpCorner,
	pkgio.OpScale,
	pkgio.OpScaleTo,
	pkgio.OpRemove,
	pkgio.OpInsert,
	pkgio.OpDrag,
	pkgio.OpSwap,
}

// formatRequest is the body of POST /v1/format.
type formatRequest struct {
	Draft   layout.Draft `json:"draft"`
	Width   float64      `json:"width"`
	Height  float64      `json:"height"`
	RootKey string       `json:"root_key,omitempty"`
}

// snapshotResponse carries a snapshot in the form ReadLayout accepts.
type snapshotResponse struct {
	Layout layout.Draft `json:"layout"`
	Cached bool         `json:"cached,omitempty"`
}

// positionsRequest is the body of POST /v1/positions.
type positionsRequest struct {
	Layout     layout.Draft `json:"layout"`
	Containers bool         `json:"containers,omitempty"`
	Handles    bool         `json:"handles,omitempty"`
}

// checkResponse lists invariant violations; it is empty for a valid
// snapshot.
type checkResponse struct {
	Valid      bool     `json:"valid"`
	Violations []string `json:"violations"`
}

// opRequest is the body of the single-op endpoints: a snapshot plus the
// fields of the op, flattened. The op kind comes from the route.
type opRequest struct {
	Layout layout.Draft `json:"layout"`
	pkgio.Op
}

// opResponse reports a single edit.
type opResponse struct {
	Layout  layout.Draft `json:"layout"`
	Applied layout.Size  `json:"applied"`
	Changed bool         `json:"changed"`
}

// applyRequest is the body of POST /v1/apply.
type applyRequest struct {
	Layout layout.Draft `json:"layout"`
	Ops    []pkgio.Op   `json:"ops"`
}

// applyResponse reports a replayed script.
type applyResponse struct {
	Layout layout.Draft          `json:"layout"`
	Steps  []pipeline.StepResult `json:"steps"`
}

// gestureBeginRequest is the body of POST /v1/gestures.
type gestureBeginRequest struct {
	Layout layout.Draft `json:"layout"`
	session.Spec
}

// gestureUpdateRequest is the body of PATCH /v1/gestures/{id}: the total
// pointer offset since the gesture began.
type gestureUpdateRequest struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

// gestureResponse describes a running gesture.
type gestureResponse struct {
	ID        string       `json:"id"`
	Kind      session.Kind `json:"kind"`
	Layout    layout.Draft `json:"layout"`
	Offset    layout.Size  `json:"offset"`
	Applied   layout.Size  `json:"applied"`
	ExpiresAt time.Time    `json:"expires_at"`
}

func (s *Server) handleFormat(w http.ResponseWriter, r *http.Request) (int, error) {
	var req formatRequest
	if err := decode(r, &req); err != nil {
		return 0, err
	}
	l, hit, err := s.runner.FormatWithCacheInfo(r.Context(), req.Draft, pipeline.Options{
		Width:   req.Width,
		Height:  req.Height,
		RootKey: req.RootKey,
	})
	if err != nil {
		return 0, err
	}
	writeJSON(w, http.StatusOK, snapshotResponse{Layout: layout.DraftOf(l.Root()), Cached: hit})
	return http.StatusOK, nil
}

func (s *Server) handlePositions(w http.ResponseWriter, r *http.Request) (int, error) {
	var req positionsRequest
	if err := decode(r, &req); err != nil {
		return 0, err
	}
	l, err := layout.FromDraft(req.Layout)
	if err != nil {
		return 0, err
	}
	w.Header().Set(contentTypeHeader, contentTypeJSON)
	if err := pkgio.WritePositions(w, l, pkgio.PositionOptions{Containers: req.Containers, Handles: req.Handles}); err != nil {
		return http.StatusInternalServerError, err
	}
	return http.StatusOK, nil
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) (int, error) {
	var req positionsRequest
	if err := decode(r, &req); err != nil {
		return 0, err
	}
	resp := checkResponse{Violations: []string{}}
	l, err := layout.FromDraft(req.Layout)
	if err == nil {
		err = layout.Check(l, s.runner.Engine.Constraints())
	}
	for _, e := range multierr.Errors(err) {
		resp.Violations = append(resp.Violations, e.Error())
	}
	resp.Valid = len(resp.Violations) == 0
	writeJSON(w, http.StatusOK, resp)
	return http.StatusOK, nil
}

// handleOp returns the handler for one single-op endpoint.
func (s *Server) handleOp(kind pkgio.OpKind) func(http.ResponseWriter, *http.Request) (int, error) {
	return func(w http.ResponseWriter, r *http.Request) (int, error) {
		var req opRequest
		if err := decode(r, &req); err != nil {
			return 0, err
		}
		l, err := layout.FromDraft(req.Layout)
		if err != nil {
			return 0, err
		}
		req.Op.Op = kind
		next, res, err := pipeline.ApplyOp(s.runner.Engine, l, req.Op)
		if err != nil {
			return 0, err
		}
		writeJSON(w, http.StatusOK, opResponse{
			Layout:  layout.DraftOf(next.Root()),
			Applied: res.Applied,
			Changed: res.Changed,
		})
		return http.StatusOK, nil
	}
}

func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) (int, error) {
	var req applyRequest
	if err := decode(r, &req); err != nil {
		return 0, err
	}
	l, err := layout.FromDraft(req.Layout)
	if err != nil {
		return 0, err
	}
	next, steps, _, err := s.runner.ReplayWithCacheInfo(r.Context(), l, pipeline.Options{Ops: req.Ops})
	if err != nil {
		return 0, err
	}
	if steps == nil {
		steps = []pipeline.StepResult{}
	}
	writeJSON(w, http.StatusOK, applyResponse{Layout: layout.DraftOf(next.Root()), Steps: steps})
	return http.StatusOK, nil
}

func (s *Server) handleGestureBegin(w http.ResponseWriter, r *http.Request) (int, error) {
	var req gestureBeginRequest
	if err := decode(r, &req); err != nil {
		return 0, err
	}
	l, err := layout.FromDraft(req.Layout)
	if err != nil {
		return 0, err
	}
	g, err := s.gestures.Begin(r.Context(), req.Spec, l)
	if err != nil {
		return 0, err
	}
	w.Header().Set("Location", "/v1/gestures/"+g.ID)
	writeJSON(w, http.StatusCreated, gestureView(g))
	return http.StatusCreated, nil
}

func (s *Server) handleGestureUpdate(w http.ResponseWriter, r *http.Request) (int, error) {
	var req gestureUpdateRequest
	if err := decode(r, &req); err != nil {
		return 0, err
	}
	g, err := s.gestures.Update(r.Context(), chi.URLParam(r, "id"), layout.Size{Width: req.DX, Height: req.DY})
	if err != nil {
		return 0, err
	}
	writeJSON(w, http.StatusOK, gestureView(g))
	return http.StatusOK, nil
}

func (s *Server) handleGestureEnd(w http.ResponseWriter, r *http.Request) (int, error) {
	l, err := s.gestures.End(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return 0, err
	}
	writeJSON(w, http.StatusOK, snapshotResponse{Layout: layout.DraftOf(l.Root())})
	return http.StatusOK, nil
}

func (s *Server) handleGestureCancel(w http.ResponseWriter, r *http.Request) (int, error) {
	l, err := s.gestures.Cancel(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return 0, err
	}
	writeJSON(w, http.StatusOK, snapshotResponse{Layout: layout.DraftOf(l.Root())})
	return http.StatusOK, nil
}

func gestureView(g *session.Gesture) gestureResponse {
	return gestureResponse{
		ID:        g.ID,
		Kind:      g.Spec.Kind,
		Layout:    layout.DraftOf(g.Live.Root()),
		Offset:    g.Offset,
		Applied:   g.Applied,
		ExpiresAt: g.ExpiresAt,
	}
}

// decode reads a JSON request body into v, rejecting unknown fields.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return perrors.Wrap(perrors.ErrCodeInvalidFormat, err, "decode request")
	}
	return nil
}
