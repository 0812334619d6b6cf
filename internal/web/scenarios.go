package web

import (
	"net/http"

	"github.com/peterkuimelis/tcgadvisor/internal/advisor"
)

// ScenarioInfo is the JSON representation of a scenario for the /api/scenarios endpoint.
type ScenarioInfo struct {
	Number int      `json:"number"`
	Name   string   `json:"name"`
	Mode   string   `json:"mode,omitempty"`
	Hand   []string `json:"hand"`
	Field  []string `json:"field"`
	Enemy  []string `json:"enemy"`
}

func (s *Server) handleScenarios(w http.ResponseWriter, r *http.Request) {
	scenarios, err := advisor.ParseScenarioFile(s.scenariosFile)
	if err != nil {
		s.logger.Error().Err(err).Str("file", s.scenariosFile).Msg("could not read scenarios")
		writeError(w, http.StatusInternalServerError, "could not read scenarios file")
		return
	}

	infos := []ScenarioInfo{}
	for i, sc := range scenarios {
		req := sc.Request()
		infos = append(infos, ScenarioInfo{
			Number: i + 1,
			Name:   sc.Name,
			Mode:   sc.Mode,
			Hand:   req.InitialHand,
			Field:  req.UserField,
			Enemy:  req.EnemyCards,
		})
	}
	writeJSON(w, http.StatusOK, infos)
}
