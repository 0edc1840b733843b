package web

import (
	"encoding/json"
	"net/http"

	"github.com/paulmach/orb/geojson"

	"indiamap/internal/featurestore"
	"indiamap/internal/geo"
	"indiamap/internal/interaction"
	"indiamap/internal/theme"
)

// jsonOK writes v as a JSON 200 response.
func jsonOK(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	// Allow localhost browser access; no auth on this server.
	w.Header().Set("Access-Control-Allow-Origin", "*")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// response already started; can't write error header
		_ = err
	}
}

// jsonError writes a JSON error response with the given HTTP status code.
func jsonError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	// Allow localhost browser access; no auth on this server.
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": msg}); err != nil {
		_ = err
	}
}

// requireSnapshot returns the loaded dataset. Before load it writes a 503
// response and returns nil.
func (s *Server) requireSnapshot(w http.ResponseWriter) *featurestore.Snapshot {
	snap, ok := s.a.Store().Snapshot()
	if !ok {
		msg := "dataset not loaded"
		if err := s.a.Store().Err(); err != nil {
			msg = "dataset failed to load: " + err.Error()
		}
		jsonError(w, http.StatusServiceUnavailable, msg)
		return nil
	}
	return snap
}

type themeDTO struct {
	Theme   string `json:"theme"`
	Class   string `json:"class"`
	TileURL string `json:"tile_url"`
}

func themeDTOFor(t theme.Theme) themeDTO {
	return themeDTO{Theme: t.String(), Class: t.Class(), TileURL: t.TileURL()}
}

type featureDTO struct {
	ID    string            `json:"id"`
	Name  string            `json:"name"`
	ISO   string            `json:"iso"`
	State string            `json:"state"`
	Style interaction.Style `json:"style"`
}

func (s *Server) featureDTOFor(f *geo.Feature, styles map[string]interaction.Style) featureDTO {
	state, _ := s.a.Session().State(f.ID)
	st, ok := styles[f.ID]
	if !ok {
		st = interaction.Resolve(state)
	}
	return featureDTO{
		ID:    f.ID,
		Name:  f.Attributes.Name(),
		ISO:   f.Attributes.ISO(),
		State: state.String(),
		Style: st,
	}
}

// handleGetStatus reports the dataset lifecycle, the theme and the current
// selection.
func (s *Server) handleGetStatus(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status   string       `json:"status"`
		Source   string       `json:"source"`
		Error    string       `json:"error,omitempty"`
		Features int          `json:"features"`
		Theme    themeDTO     `json:"theme"`
		Selected *geo.Details `json:"selected"`
		Port     int          `json:"port"`
	}

	store := s.a.Store()
	resp := response{
		Status: store.Status().String(),
		Source: store.Source(),
		Theme:  themeDTOFor(s.a.Session().Theme()),
		Port:   s.port,
	}
	if err := store.Err(); err != nil {
		resp.Error = err.Error()
	}
	if snap, ok := store.Snapshot(); ok {
		resp.Features = len(snap.Features())
	}
	if f := s.a.Session().Details(); f != nil {
		d := f.Details()
		resp.Selected = &d
	}
	jsonOK(w, resp)
}

// handleGetDataset returns the FeatureCollection with each feature's ID set
// to the identifier used by the rest of the API.
func (s *Server) handleGetDataset(w http.ResponseWriter, r *http.Request) {
	snap := s.requireSnapshot(w)
	if snap == nil {
		return
	}
	raw := snap.Raw()
	fc := geojson.NewFeatureCollection()
	for i, f := range snap.Features() {
		gf := geojson.NewFeature(raw.Features[i].Geometry)
		gf.ID = f.ID
		gf.Properties = raw.Features[i].Properties
		fc.Append(gf)
	}
	jsonOK(w, fc)
}

// handleListFeatures lists every feature with its interaction state and
// current style.
func (s *Server) handleListFeatures(w http.ResponseWriter, r *http.Request) {
	snap := s.requireSnapshot(w)
	if snap == nil {
		return
	}
	styles := s.a.Session().Styles()
	out := make([]featureDTO, 0, len(snap.Features()))
	for _, f := range snap.Features() {
		out = append(out, s.featureDTOFor(f, styles))
	}
	jsonOK(w, out)
}

// handleGetFeature returns one feature with its panel details.
func (s *Server) handleGetFeature(w http.ResponseWriter, r *http.Request) {
	snap := s.requireSnapshot(w)
	if snap == nil {
		return
	}
	f, ok := snap.Lookup(r.PathValue("id"))
	if !ok {
		jsonError(w, http.StatusNotFound, "unknown feature")
		return
	}
	type response struct {
		featureDTO
		Details geo.Details `json:"details"`
	}
	jsonOK(w, response{
		featureDTO: s.featureDTOFor(f, s.a.Session().Styles()),
		Details:    f.Details(),
	})
}

// handlePointer dispatches hover, leave or click for a feature. Unknown
// feature IDs are not an error; they report applied=false.
func (s *Server) handlePointer(w http.ResponseWriter, r *http.Request) {
	var ev interaction.Event
	switch r.PathValue("event") {
	case "hover":
		ev = interaction.PointerEnter
	case "leave":
		ev = interaction.PointerLeave
	case "click":
		ev = interaction.PointerClick
	default:
		jsonError(w, http.StatusBadRequest, "event must be hover, leave or click")
		return
	}
	if s.requireSnapshot(w) == nil {
		return
	}
	applied := s.a.Session().Dispatch(r.PathValue("id"), ev)
	jsonOK(w, map[string]bool{"applied": applied})
}

// handleToggleTheme flips the theme for every sink.
func (s *Server) handleToggleTheme(w http.ResponseWriter, r *http.Request) {
	t := s.a.Session().ToggleTheme()
	jsonOK(w, themeDTOFor(t))
}
