package biz

import "tumble/internal/slot"

// SpinStarted is the payload of event.SpinStarted.
type SpinStarted struct {
	Spin int `json:"spin"`
}

// BoardDropped is the payload of event.BoardDropped.
type BoardDropped struct {
	Spin           int        `json:"spin"`
	Board          *slot.Grid `json:"board"`
	ForcedBlob     bool       `json:"forcedBlob"`
	ForcedScatters bool       `json:"forcedScatters"`
}

// ClusterResolved is the payload of event.ClusterResolved.
type ClusterResolved struct {
	Spin     int            `json:"spin"`
	Step     int            `json:"step"`
	Clusters []slot.Cluster `json:"clusters"`
	HasWild  bool           `json:"hasWild"`
	Cleared  int            `json:"cleared"`
}

// BoardCollapsed is the payload of event.BoardCollapsed.
type BoardCollapsed struct {
	Spin  int        `json:"spin"`
	Step  int        `json:"step"`
	Board *slot.Grid `json:"board"`
}

// BonusTriggered is the payload of event.BonusTriggered.
type BonusTriggered struct {
	Spin     int `json:"spin"`
	Scatters int `json:"scatters"`
}

// SpinSettled is the payload of event.SpinSettled. TotalWin is the number
// of cells cleared over the whole spin; paytable math lives elsewhere.
type SpinSettled struct {
	Spin      int  `json:"spin"`
	TotalWin  int  `json:"totalWin"`
	Cascades  int  `json:"cascades"`
	Streak    int  `json:"streak"`
	Bonus     bool `json:"bonus"`
	Truncated bool `json:"truncated,omitempty"`
}

// Step is one pass of explode then collapse.
type Step struct {
	Clusters []slot.Cluster `json:"clusters"`
	HasWild  bool           `json:"hasWild"`
	Cleared  int            `json:"cleared"`
	Board    *slot.Grid     `json:"board"` // after collapse and refill
}

// Outcome is the full record of one spin.
type Outcome struct {
	Spin           int        `json:"spin"`
	Initial        *slot.Grid `json:"initial"`
	ForcedBlob     bool       `json:"forcedBlob"`
	ForcedScatters bool       `json:"forcedScatters"`
	Steps          []Step     `json:"steps"`
	Final          *slot.Grid `json:"final"`
	Scatters       int        `json:"scatters"`
	Bonus          bool       `json:"bonus"`
	Streak         int        `json:"streak"`
	Truncated      bool       `json:"truncated,omitempty"`
}

// Win reports whether at least one cluster was resolved.
func (o *Outcome) Win() bool { return len(o.Steps) > 0 }

// Cleared is the number of cells removed over all steps.
func (o *Outcome) Cleared() int {
	n := 0
	for _, s := range o.Steps {
		n += s.Cleared
	}
	return n
}
