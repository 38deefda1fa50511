package solver

import (
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/domino14/crossfill/grid"
)

// LogDecision is one search decision in the solve log: which slot was
// picked at which depth, and the candidate words in the order they will
// be tried. Concatenated decisions form one YAML list.
type LogDecision struct {
	Slot       string   `json:"slot" yaml:"slot"`
	Depth      int      `json:"depth" yaml:"depth"`
	Candidates []string `json:"candidates" yaml:"candidates"`
}

func (s *Solver) logDecision(slot grid.Slot, depth int, cands []string) {
	if s.logStream == nil {
		return
	}
	out, err := yaml.Marshal([]LogDecision{{
		Slot:       slot.String(),
		Depth:      depth,
		Candidates: cands,
	}})
	if err != nil {
		log.Err(err).Msg("marshalling-solve-log")
		return
	}
	s.logStream.Write(out)
}
