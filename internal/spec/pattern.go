package spec

// Pattern is the interaction pattern of an operation.
type Pattern uint8

const (
	PatternSend Pattern = iota
	PatternSubmit
	PatternRequest
	PatternInvoke
	PatternProgress
	PatternPubSub
)

func (p Pattern) String() string {
	switch p {
	case PatternSend:
		return "SEND"
	case PatternSubmit:
		return "SUBMIT"
	case PatternRequest:
		return "REQUEST"
	case PatternInvoke:
		return "INVOKE"
	case PatternProgress:
		return "PROGRESS"
	case PatternPubSub:
		return "PUBSUB"
	default:
		return "UNKNOWN"
	}
}

// Keyword returns the lower-case keyword used in MOSDL output.
func (p Pattern) Keyword() string {
	switch p {
	case PatternSend:
		return "send"
	case PatternSubmit:
		return "submit"
	case PatternRequest:
		return "request"
	case PatternInvoke:
		return "invoke"
	case PatternProgress:
		return "progress"
	case PatternPubSub:
		return "pubsub"
	default:
		return "unknown"
	}
}

// Stages returns the fixed message stage sequence of the pattern. The length
// of Operation.Messages must equal the length of this slice.
func (p Pattern) Stages() []Stage {
	switch p {
	case PatternSend:
		return []Stage{StageSend}
	case PatternSubmit:
		return []Stage{StageSubmit}
	case PatternRequest:
		return []Stage{StageRequest, StageRequestResponse}
	case PatternInvoke:
		return []Stage{StageInvoke, StageInvokeAck, StageInvokeResponse}
	case PatternProgress:
		return []Stage{StageProgress, StageProgressAck, StageProgressUpdate, StageProgressResponse}
	case PatternPubSub:
		return []Stage{StagePubSubPublish}
	default:
		return nil
	}
}

// CanThrow reports whether operations of this pattern may declare errors.
// SEND is fire-and-forget: there is no return leg to carry an error.
func (p Pattern) CanThrow() bool {
	return p != PatternSend
}
