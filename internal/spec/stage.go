package spec

import "strings"

// Stage identifies one message stage of an interaction pattern.
type Stage uint8

const (
	StageSend Stage = iota
	StageSubmit
	StageRequest
	StageRequestResponse
	StageInvoke
	StageInvokeAck
	StageInvokeResponse
	StageProgress
	StageProgressAck
	StageProgressUpdate
	StageProgressResponse
	StagePubSubPublish
	StagePubSubNotify
)

var stageNames = [...]string{
	StageSend:             "SEND",
	StageSubmit:           "SUBMIT",
	StageRequest:          "REQUEST",
	StageRequestResponse:  "REQUEST_RESPONSE",
	StageInvoke:           "INVOKE",
	StageInvokeAck:        "INVOKE_ACK",
	StageInvokeResponse:   "INVOKE_RESPONSE",
	StageProgress:         "PROGRESS",
	StageProgressAck:      "PROGRESS_ACK",
	StageProgressUpdate:   "PROGRESS_UPDATE",
	StageProgressResponse: "PROGRESS_RESPONSE",
	StagePubSubPublish:    "PUBSUB_PUBLISH",
	StagePubSubNotify:     "PUBSUB_NOTIFY",
}

func (s Stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return "UNKNOWN"
}

// Tag returns the documentation tag of the stage: the last underscore
// separated token of the stage name, lower-cased. REQUEST_RESPONSE yields
// "response", PROGRESS_UPDATE yields "update", SEND yields "send".
func (s Stage) Tag() string {
	name := s.String()
	if idx := strings.LastIndexByte(name, '_'); idx >= 0 {
		name = name[idx+1:]
	}
	return strings.ToLower(name)
}
