package event

// Topic names a notification on the bus.
type Topic string

const (
	// SpinRequested asks the orchestrator to start a spin.
	// Producer: presentation | Consumer: orchestrator | Payload: nil
	SpinRequested Topic = "spin-requested"

	// SpinStarted marks the beginning of a spin, after the ready gate closed.
	// Producer: orchestrator | Payload: biz.SpinStarted
	SpinStarted Topic = "spin-started"

	// BoardDropped carries the freshly generated board.
	// Producer: orchestrator | Payload: biz.BoardDropped
	BoardDropped Topic = "board-dropped"

	// Anticipate fires once per spin before the first explosion.
	// Producer: orchestrator | Payload: nil
	Anticipate Topic = "anticipate"

	// ClusterResolved carries the clusters removed in one cascade step.
	// Producer: orchestrator | Payload: biz.ClusterResolved
	ClusterResolved Topic = "cluster-resolved"

	// BoardCollapsed carries the board after gravity and refill.
	// Producer: orchestrator | Payload: biz.BoardCollapsed
	BoardCollapsed Topic = "board-collapsed"

	// BonusTriggered fires when the settled board holds enough scatters.
	// Producer: orchestrator | Payload: biz.BonusTriggered
	BonusTriggered Topic = "bonus-triggered"

	// SpinSettled closes a spin.
	// Producer: orchestrator | Payload: biz.SpinSettled
	SpinSettled Topic = "spin-settled"

	// Acknowledgements, one per suspension point of the orchestrator.
	// Producer: presentation | Payload: nil
	DropFinished     Topic = "drop-finished"
	ExplodeFinished  Topic = "explode-finished"
	CollapseFinished Topic = "collapse-finished"
)

// Inbound lists the topics presentation may publish.
var Inbound = []Topic{SpinRequested, DropFinished, ExplodeFinished, CollapseFinished}

// Envelope is the wire form of a notification leaving the process.
type Envelope struct {
	Topic   Topic `json:"topic"`
	Payload any   `json:"payload,omitempty"`
	Time    int64 `json:"ts"`
}
