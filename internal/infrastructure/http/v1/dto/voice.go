package dto

import "simrs/internal/domain/voice"

// VoiceActionRequest dispatches one assistant action inside a session.
type VoiceActionRequest struct {
	Token  string       `json:"token"`
	Action voice.Action `json:"action"`
}
