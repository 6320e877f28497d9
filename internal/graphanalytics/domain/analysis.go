package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// AnalysisType names one of the dispatchable analyses on the agent
// surface. The set is closed; anything else is rejected at decode time.
type AnalysisType string

const (
	AnalysisPathfinding   AnalysisType = "PATHFINDING"
	AnalysisCentrality    AnalysisType = "CENTRALITY"
	AnalysisCommunity     AnalysisType = "COMMUNITY"
	AnalysisVulnerability AnalysisType = "VULNERABILITY"
)

// PathfindingParams selects a source/target route analysis.
type PathfindingParams struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// CentralityParams selects a rank-centrality analysis.
type CentralityParams struct {
	TopN *int `json:"top_n"`
}

// VulnerabilityParams selects a single-point-of-failure scan.
type VulnerabilityParams struct {
	MinImpact *int `json:"min_impact"`
}

// AnalysisRequest is the decoded form of an agent dispatch: exactly one
// of the parameter fields matching Type is populated.
type AnalysisRequest struct {
	Type          AnalysisType
	Pathfinding   *PathfindingParams
	Centrality    *CentralityParams
	Vulnerability *VulnerabilityParams
}

// ParseAnalysisRequest decodes a named analysis plus its raw parameter
// payload into the closed variant type. Unknown names and malformed
// payloads fail here, before any dispatch happens.
func ParseAnalysisRequest(analysisType string, params json.RawMessage) (*AnalysisRequest, error) {
	if len(params) == 0 {
		params = json.RawMessage("{}")
	}

	switch AnalysisType(strings.ToUpper(strings.TrimSpace(analysisType))) {
	case AnalysisPathfinding:
		var p PathfindingParams
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, fmt.Errorf("%w: malformed pathfinding parameters: %v", ErrInvalidArgument, err)
		}
		return &AnalysisRequest{Type: AnalysisPathfinding, Pathfinding: &p}, nil

	case AnalysisCentrality:
		var p CentralityParams
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, fmt.Errorf("%w: malformed centrality parameters: %v", ErrInvalidArgument, err)
		}
		return &AnalysisRequest{Type: AnalysisCentrality, Centrality: &p}, nil

	case AnalysisCommunity:
		return &AnalysisRequest{Type: AnalysisCommunity}, nil

	case AnalysisVulnerability:
		var p VulnerabilityParams
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, fmt.Errorf("%w: malformed vulnerability parameters: %v", ErrInvalidArgument, err)
		}
		return &AnalysisRequest{Type: AnalysisVulnerability, Vulnerability: &p}, nil
	}

	return nil, fmt.Errorf("%w: unknown analysis type %q", ErrInvalidArgument, analysisType)
}
