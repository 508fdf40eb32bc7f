package range_selection

import (
	"github.com/m04kA/SMC-CharterService/internal/selection"
	"github.com/m04kA/SMC-CharterService/pkg/types"
)

// CreateSessionRequest HTTP request model.
// assetIds не указан - выбор по всему флоту
type CreateSessionRequest struct {
	AssetIDs *[]int64 `json:"assetIds,omitempty"`
}

// ClickRequest HTTP request model
type ClickRequest struct {
	Date string `json:"date"` // "2025-06-01"
	Part string `json:"part"` // игнорируется, пока выбрана начальная дата
}

// SessionResponse HTTP response model
type SessionResponse struct {
	ID         string      `json:"id"`
	State      string      `json:"state"`
	Part       string      `json:"part,omitempty"`
	Anchor     *types.Date `json:"anchor,omitempty"`
	Start      *types.Date `json:"start,omitempty"`
	End        *types.Date `json:"end,omitempty"`
	AnchorPool []int64     `json:"anchorPool"`
	AssetIDs   []int64     `json:"assetIds"`

	Candidate         *types.Date `json:"candidate,omitempty"`
	CandidateFeasible bool        `json:"candidateFeasible"`
}

// EndDateResponse HTTP response model
type EndDateResponse struct {
	Date     types.Date `json:"date"`
	Feasible bool       `json:"feasible"`
}

// FromSnapshot конвертирует состояние сессии в HTTP response
func FromSnapshot(s *selection.Snapshot) *SessionResponse {
	resp := &SessionResponse{
		ID:                s.ID,
		State:             string(s.State),
		Part:              string(s.Part),
		Anchor:            s.Anchor,
		Start:             s.Start,
		End:               s.End,
		AnchorPool:        s.AnchorPool,
		AssetIDs:          s.Assets,
		Candidate:         s.Candidate,
		CandidateFeasible: s.CandidateFeasible,
	}
	if resp.AnchorPool == nil {
		resp.AnchorPool = []int64{}
	}
	if resp.AssetIDs == nil {
		resp.AssetIDs = []int64{}
	}
	return resp
}
